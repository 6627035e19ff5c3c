package ecs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type position struct{ X, Y int }

type label struct{ Text string }

type tags struct{ Values []string }

func (t tags) CloneComponent() any {
	return tags{Values: append([]string(nil), t.Values...)}
}

func TestSpawnAndGet(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(position{X: 1, Y: 2}, label{Text: "a"})

	require.True(t, w.Alive(e))
	assert.Equal(t, 1, w.Len())

	pos, ok := Get[position](w, e)
	require.True(t, ok)
	assert.Equal(t, position{X: 1, Y: 2}, pos)
	assert.True(t, Has[label](w, e))
	assert.False(t, Has[tags](w, e))
}

func TestNullEntityIsNeverAlive(t *testing.T) {
	w := NewWorld()
	w.Spawn()

	assert.True(t, Null.IsNull())
	assert.False(t, w.Alive(Null))
	assert.Equal(t, "null", Null.String())
}

func TestInsertOverwritesWithoutRemoving(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(position{X: 1}, label{Text: "keep"})

	w.Entity(e).Insert(position{X: 2})

	pos, _ := Get[position](w, e)
	assert.Equal(t, 2, pos.X)
	lbl, ok := Get[label](w, e)
	require.True(t, ok)
	assert.Equal(t, "keep", lbl.Text)
}

func TestInsertFlattensBundles(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(Bundle{position{X: 3}, Bundle{label{Text: "nested"}}}, nil)

	assert.True(t, Has[position](w, e))
	assert.True(t, Has[label](w, e))
}

func TestInsertClonesCloners(t *testing.T) {
	w := NewWorld()
	src := tags{Values: []string{"a"}}
	e := w.Spawn(src)

	src.Values[0] = "mutated"

	got, _ := Get[tags](w, e)
	assert.Equal(t, []string{"a"}, got.Values)
}

func TestRemove(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(position{}, label{})

	assert.True(t, Remove[position](w.Entity(e)))
	assert.False(t, Remove[position](w.Entity(e)))
	assert.False(t, Has[position](w, e))
	assert.True(t, Has[label](w, e))
}

func TestEntityMut_Remove(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(position{X: 1}, label{Text: "a"}, tags{})

	w.Entity(e).Remove(position{}, Bundle{label{}, nil})

	assert.False(t, Has[position](w, e))
	assert.False(t, Has[label](w, e))
	assert.True(t, Has[tags](w, e))
	assert.Panics(t, func() {
		w.Entity(e).Despawn()
		w.Entity(e).Remove(tags{})
	})
}

func TestRelease_RetiresExhaustedSlot(t *testing.T) {
	w := NewWorld()
	e := w.Spawn()
	w.metas[e.Index()].generation = math.MaxUint32 - 1
	stale := Entity{index: e.Index(), generation: math.MaxUint32 - 1}

	w.Entity(stale).Despawn()
	last := w.Spawn()
	require.Equal(t, e.Index(), last.Index())
	require.Equal(t, uint32(math.MaxUint32), last.Generation())

	w.Entity(last).Despawn()
	next := w.Spawn()

	assert.NotEqual(t, e.Index(), next.Index(), "exhausted slot must not be reused")
	assert.False(t, next.IsNull())
	assert.False(t, w.Alive(last))
	assert.Equal(t, 1, w.Len())
}

func TestComponentsSortedByType(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(position{}, label{})

	comps := Components(w, e)
	require.Len(t, comps, 2)
	assert.IsType(t, label{}, comps[0])
	assert.IsType(t, position{}, comps[1])
}

func TestGenerationalReuse(t *testing.T) {
	w := NewWorld()
	first := w.Spawn(label{Text: "first"})
	w.Entity(first).Despawn()

	second := w.Spawn(label{Text: "second"})

	assert.Equal(t, first.Index(), second.Index())
	assert.NotEqual(t, first, second)
	assert.False(t, w.Alive(first))
	assert.True(t, w.Alive(second))
	_, ok := Get[label](w, first)
	assert.False(t, ok)
}

func TestEntityPanicsForDeadEntity(t *testing.T) {
	w := NewWorld()
	e := w.Spawn()
	w.Entity(e).Despawn()

	defer func() {
		r := recover()
		err, ok := r.(*NoSuchEntityError)
		require.True(t, ok, "recovered %T", r)
		assert.Equal(t, e, err.Entity)
		assert.Contains(t, err.Error(), "does not exist")
	}()
	w.Entity(e)
	t.Error("expected panic")
}

func TestTryEntity(t *testing.T) {
	w := NewWorld()
	e := w.Spawn()

	em, err := w.TryEntity(e)
	require.NoError(t, err)
	assert.Equal(t, e, em.ID())

	_, err = w.TryEntity(Null)
	var nse *NoSuchEntityError
	assert.ErrorAs(t, err, &nse)
}

func TestEntitiesOrderedByIndex(t *testing.T) {
	w := NewWorld()
	a := w.Spawn()
	b := w.Spawn()
	c := w.Spawn()
	w.Entity(b).Despawn()

	assert.Equal(t, []Entity{a, c}, w.Entities())
}
