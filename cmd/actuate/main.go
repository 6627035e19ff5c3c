// Command actuate composes scene documents into an entity world.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/actuate/cmd/actuate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
