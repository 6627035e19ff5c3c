package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddChild(t *testing.T) {
	w := NewWorld()
	parent := w.Spawn()
	child := w.Spawn()

	w.Entity(parent).AddChild(child)

	p, ok := w.Entity(child).Parent()
	require.True(t, ok)
	assert.Equal(t, parent, p)
	assert.Equal(t, []Entity{child}, w.Entity(parent).Children())
}

func TestAddChildIsIdempotent(t *testing.T) {
	w := NewWorld()
	parent := w.Spawn()
	child := w.Spawn()

	w.Entity(parent).AddChild(child).AddChild(child)

	assert.Equal(t, []Entity{child}, w.Entity(parent).Children())
}

func TestAddChildReparents(t *testing.T) {
	w := NewWorld()
	a := w.Spawn()
	b := w.Spawn()
	child := w.Spawn()

	w.Entity(a).AddChild(child)
	w.Entity(b).AddChild(child)

	assert.Empty(t, w.Entity(a).Children())
	assert.False(t, Has[Children](w, a))
	p, _ := w.Entity(child).Parent()
	assert.Equal(t, b, p)
}

func TestAddChildSelfPanics(t *testing.T) {
	w := NewWorld()
	e := w.Spawn()
	assert.Panics(t, func() { w.Entity(e).AddChild(e) })
}

func TestDespawnIsRecursive(t *testing.T) {
	w := NewWorld()
	root := w.Spawn()
	mid := w.Spawn()
	leaf := w.Spawn()
	w.Entity(root).AddChild(mid)
	w.Entity(mid).AddChild(leaf)

	w.Entity(mid).Despawn()

	assert.True(t, w.Alive(root))
	assert.False(t, w.Alive(mid))
	assert.False(t, w.Alive(leaf))
	assert.Empty(t, w.Entity(root).Children())
}

func TestWalk(t *testing.T) {
	w := NewWorld()
	root := w.Spawn()
	a := w.Spawn()
	b := w.Spawn()
	other := w.Spawn()
	w.Entity(root).AddChild(a).AddChild(b)

	type visit struct {
		e     Entity
		depth int
	}
	var got []visit
	w.Walk(func(e Entity, depth int) bool {
		got = append(got, visit{e, depth})
		return true
	})

	assert.Equal(t, []visit{{root, 0}, {a, 1}, {b, 1}, {other, 0}}, got)
}

func TestWalkSkipsDescendants(t *testing.T) {
	w := NewWorld()
	root := w.Spawn()
	w.Entity(root).AddChild(w.Spawn())

	count := 0
	w.Walk(func(e Entity, depth int) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}
