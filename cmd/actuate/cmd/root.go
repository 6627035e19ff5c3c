// Package cmd implements the actuate CLI commands.
//
// A root command dispatches to subcommands (run, version). Subcommands add
// themselves to the root from init.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "actuate",
	Short: "Actuate - declarative entity composition",
	Long: `Actuate composes declarative scene documents into an entity world.
Spawn composables create their entity once, update it in place on later
passes and nest into a parent/child hierarchy.

Use "actuate <command> --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return rootCmd.Execute()
}
