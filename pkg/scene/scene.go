// Package scene loads declarative scene documents and turns them into
// nested spawn composables.
//
// A scene document is YAML:
//
//	name: demo
//	entities:
//	  - name: root
//	    components:
//	      label: {text: "Root"}
//	      position: {x: 0, y: 0}
//	    children:
//	      - name: child
//	        components:
//	          tags: [enemy]
//
// Every entity gets a Name component. Component keys are resolved through a
// Registry.
package scene

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/actuate/pkg/compose"
	"github.com/go-drift/actuate/pkg/ecs"
	"github.com/go-drift/actuate/pkg/errors"
	"github.com/go-drift/actuate/pkg/spawn"
)

type document struct {
	Name     string         `yaml:"name"`
	Entities []documentNode `yaml:"entities"`
}

type documentNode struct {
	Name       string         `yaml:"name"`
	Components yaml.Node      `yaml:"components"`
	Children   []documentNode `yaml:"children"`
}

// Scene is a decoded scene document.
type Scene struct {
	Name  string
	Roots []*Node
}

// Node is one entity of a scene.
type Node struct {
	Name       string
	Components []any
	Children   []*Node
}

// Load decodes a scene document from r.
func Load(r io.Reader, reg *Registry) (*Scene, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, &errors.ActuateError{Op: "scene.Load", Kind: errors.KindScene, Err: err}
	}

	s := &Scene{Name: doc.Name}
	for i, dn := range doc.Entities {
		n, err := buildNode(reg, dn, "", i)
		if err != nil {
			return nil, &errors.ActuateError{Op: "scene.Load", Kind: errors.KindScene, Err: err}
		}
		s.Roots = append(s.Roots, n)
	}
	return s, nil
}

// LoadFile decodes the scene document at path.
func LoadFile(path string, reg *Registry) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene: %w", err)
	}
	defer f.Close()
	return Load(f, reg)
}

func buildNode(reg *Registry, dn documentNode, parentPath string, index int) (*Node, error) {
	name := dn.Name
	if name == "" {
		name = "#" + strconv.Itoa(index)
	}
	path := name
	if parentPath != "" {
		path = parentPath + "/" + name
	}

	n := &Node{Name: name}
	switch dn.Components.Kind {
	case 0: // absent
	case yaml.MappingNode:
		content := dn.Components.Content
		for i := 0; i+1 < len(content); i += 2 {
			c, err := reg.decode(content[i].Value, content[i+1])
			if err != nil {
				return nil, fmt.Errorf("entity %s: %w", path, err)
			}
			n.Components = append(n.Components, c)
		}
	default:
		return nil, fmt.Errorf("entity %s: components must be a mapping (line %d)", path, dn.Components.Line)
	}

	for i, child := range dn.Children {
		c, err := buildNode(reg, child, path, i)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, c)
	}
	return n, nil
}

// Len returns the number of entities in the scene.
func (s *Scene) Len() int {
	total := 0
	var count func(n *Node)
	count = func(n *Node) {
		total++
		for _, c := range n.Children {
			count(c)
		}
	}
	for _, r := range s.Roots {
		count(r)
	}
	return total
}

// Composable returns the scene as nested Spawn composables. onSpawn, if not
// nil, is called once for every entity created.
func (s *Scene) Composable(onSpawn func(ecs.EntityMut)) compose.Composable {
	roots := make(compose.Group, 0, len(s.Roots))
	for _, r := range s.Roots {
		roots = append(roots, r.composable(onSpawn))
	}
	return roots
}

func (n *Node) composable(onSpawn func(ecs.EntityMut)) compose.Composable {
	components := append([]any{Name(n.Name)}, n.Components...)
	sp := spawn.New(components...)
	if onSpawn != nil {
		sp = sp.OnSpawn(onSpawn)
	}
	if len(n.Children) > 0 {
		children := make([]compose.Composable, 0, len(n.Children))
		for _, c := range n.Children {
			children = append(children, c.composable(onSpawn))
		}
		sp = sp.Content(children...)
	}
	return sp
}
