package scene

import (
	"fmt"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"
)

// Name is attached to every entity loaded from a scene.
type Name string

// Label is a text label.
type Label struct {
	Text string `yaml:"text"`
}

// Position is a 2D position.
type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Tags is a list of free-form tags.
type Tags []string

// CloneComponent copies the tag list so entities never share it.
func (t Tags) CloneComponent() any {
	return slices.Clone(t)
}

// Decoder turns the YAML value of one component into a component value.
type Decoder func(node *yaml.Node) (any, error)

// Registry maps component names used in scene documents to decoders.
type Registry struct {
	decoders map[string]Decoder
}

// NewRegistry returns a registry holding the built-in components
// "label", "position" and "tags".
func NewRegistry() *Registry {
	r := &Registry{decoders: make(map[string]Decoder)}
	Register[Label](r, "label")
	Register[Position](r, "position")
	Register[Tags](r, "tags")
	return r
}

// Register adds a decoder for name, replacing any previous one.
func (r *Registry) Register(name string, dec Decoder) {
	r.decoders[name] = dec
}

// Names returns the registered component names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.decoders))
	for name := range r.decoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds a decoder that decodes the YAML value into a T.
func Register[T any](r *Registry, name string) {
	r.Register(name, func(node *yaml.Node) (any, error) {
		var v T
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	})
}

func (r *Registry) decode(name string, node *yaml.Node) (any, error) {
	dec, ok := r.decoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown component %q", name)
	}
	v, err := dec(node)
	if err != nil {
		return nil, fmt.Errorf("component %q: %w", name, err)
	}
	return v, nil
}
