package scene

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/actuate/pkg/ecs"
	"github.com/go-drift/actuate/pkg/errors"
	"github.com/go-drift/actuate/pkg/spawn"
)

func TestLoadFile(t *testing.T) {
	s, err := LoadFile("testdata/demo.yaml", NewRegistry())
	require.NoError(t, err)

	assert.Equal(t, "demo", s.Name)
	assert.Equal(t, 4, s.Len())
	require.Len(t, s.Roots, 2)

	root := s.Roots[0]
	assert.Equal(t, "root", root.Name)
	assert.Equal(t, []any{Label{Text: "Root"}, Position{X: 1, Y: 2}}, root.Components)
	require.Len(t, root.Children, 2)
	assert.Equal(t, []any{Tags{"enemy", "boss"}}, root.Children[0].Components)
	assert.Empty(t, root.Children[1].Components)
}

func TestLoad_UnknownComponent(t *testing.T) {
	doc := `
entities:
  - name: root
    children:
      - name: child
        components:
          velocity: {x: 1}
`
	_, err := Load(strings.NewReader(doc), NewRegistry())
	require.Error(t, err)

	var ae *errors.ActuateError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, errors.KindScene, ae.Kind)
	assert.Contains(t, err.Error(), `entity root/child: unknown component "velocity"`)
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load(strings.NewReader("entites: []\n"), NewRegistry())
	assert.Error(t, err)
}

func TestLoad_ComponentsMustBeMapping(t *testing.T) {
	_, err := Load(strings.NewReader("entities:\n  - components: [a]\n"), NewRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entity #0: components must be a mapping")
}

func TestLoad_Empty(t *testing.T) {
	s, err := Load(strings.NewReader(""), NewRegistry())
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

type health struct {
	HP int `yaml:"hp"`
}

func TestRegister_CustomComponent(t *testing.T) {
	reg := NewRegistry()
	Register[health](reg, "health")
	assert.Contains(t, reg.Names(), "health")

	s, err := Load(strings.NewReader("entities:\n  - components: {health: {hp: 9}}\n"), reg)
	require.NoError(t, err)
	assert.Equal(t, []any{health{HP: 9}}, s.Roots[0].Components)
}

func TestRegister_DecoderError(t *testing.T) {
	reg := NewRegistry()
	reg.Register("broken", func(*yaml.Node) (any, error) {
		return nil, assert.AnError
	})

	_, err := Load(strings.NewReader("entities:\n  - components: {broken: 1}\n"), reg)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestScene_ComposesHierarchy(t *testing.T) {
	s, err := LoadFile("testdata/demo.yaml", NewRegistry())
	require.NoError(t, err)

	world := ecs.NewWorld()
	spawned := 0
	c := spawn.NewComposer(world, s.Composable(func(ecs.EntityMut) { spawned++ }))
	defer c.Close()
	c.Compose()
	c.Compose()

	assert.Equal(t, 4, spawned)
	assert.Equal(t, 4, world.Len())

	var lines []string
	world.Walk(func(e ecs.Entity, depth int) bool {
		n, _ := ecs.Get[Name](world, e)
		lines = append(lines, strings.Repeat(" ", depth)+string(n))
		return true
	})
	assert.Equal(t, []string{"root", " left", " right", "loner"}, lines)

	left := world.Entity(world.Entities()[1])
	tags, ok := ecs.Get[Tags](world, left.ID())
	require.True(t, ok)
	assert.Equal(t, Tags{"enemy", "boss"}, tags)
}
