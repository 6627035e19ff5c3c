package ecs

import (
	"cmp"
	"math"
	"reflect"
	"slices"
)

type entityMeta struct {
	generation uint32
	alive      bool
}

// World stores entities, their components and their observers.
type World struct {
	metas      []entityMeta
	components []map[reflect.Type]any
	free       []uint32
	live       int

	observers     map[Entity][]*observer
	observerOwner map[ObserverID]Entity
	nextObserver  ObserverID
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{
		observers:     make(map[Entity][]*observer),
		observerOwner: make(map[ObserverID]Entity),
	}
}

// Spawn allocates a new entity holding the given components.
func (w *World) Spawn(components ...any) Entity {
	e := w.alloc()
	w.insert(e, components)
	return e
}

// Alive reports whether e refers to a live entity.
func (w *World) Alive(e Entity) bool {
	if e.IsNull() || int(e.index) >= len(w.metas) {
		return false
	}
	meta := w.metas[e.index]
	return meta.alive && meta.generation == e.generation
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.live
}

// Entities returns the live entities ordered by index.
func (w *World) Entities() []Entity {
	out := make([]Entity, 0, w.live)
	for i, meta := range w.metas {
		if meta.alive {
			out = append(out, Entity{index: uint32(i), generation: meta.generation})
		}
	}
	return out
}

// Entity returns a mutable handle to e.
// It panics with *NoSuchEntityError if e is not alive.
func (w *World) Entity(e Entity) EntityMut {
	w.mustAlive("Entity", e)
	return EntityMut{world: w, entity: e}
}

// TryEntity is like Entity but returns an error instead of panicking.
func (w *World) TryEntity(e Entity) (EntityMut, error) {
	if !w.Alive(e) {
		return EntityMut{}, &NoSuchEntityError{Op: "TryEntity", Entity: e}
	}
	return EntityMut{world: w, entity: e}, nil
}

// Get returns the component of type T on e.
func Get[T any](w *World, e Entity) (T, bool) {
	var zero T
	if !w.Alive(e) {
		return zero, false
	}
	v, ok := w.components[e.index][reflect.TypeFor[T]()]
	if !ok {
		return zero, false
	}
	return v.(T), true
}

// Has reports whether e carries a component of type T.
func Has[T any](w *World, e Entity) bool {
	_, ok := Get[T](w, e)
	return ok
}

// Remove deletes the component of type T from the entity.
// It reports whether a component was removed.
func Remove[T any](em EntityMut) bool {
	em.world.mustAlive("Remove", em.entity)
	return em.world.remove(em.entity, reflect.TypeFor[T]())
}

// Components returns the components of e sorted by type name.
func Components(w *World, e Entity) []any {
	if !w.Alive(e) {
		return nil
	}
	comps := w.components[e.index]
	out := make([]any, 0, len(comps))
	for _, c := range comps {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b any) int {
		return cmp.Compare(reflect.TypeOf(a).String(), reflect.TypeOf(b).String())
	})
	return out
}

func (w *World) alloc() Entity {
	w.live++
	if n := len(w.free); n > 0 {
		index := w.free[n-1]
		w.free = w.free[:n-1]
		meta := &w.metas[index]
		meta.alive = true
		w.components[index] = make(map[reflect.Type]any)
		return Entity{index: index, generation: meta.generation}
	}
	index := uint32(len(w.metas))
	w.metas = append(w.metas, entityMeta{generation: 1, alive: true})
	w.components = append(w.components, make(map[reflect.Type]any))
	return Entity{index: index, generation: 1}
}

func (w *World) insert(e Entity, components []any) {
	comps := w.components[e.index]
	for _, c := range components {
		switch v := c.(type) {
		case nil:
			continue
		case Bundle:
			w.insert(e, v)
			continue
		case Cloner:
			c = v.CloneComponent()
		}
		comps[reflect.TypeOf(c)] = c
	}
}

func (w *World) remove(e Entity, typ reflect.Type) bool {
	comps := w.components[e.index]
	if _, ok := comps[typ]; !ok {
		return false
	}
	delete(comps, typ)
	return true
}

func (w *World) removeAll(e Entity, components []any) {
	for _, c := range components {
		switch v := c.(type) {
		case nil:
		case Bundle:
			w.removeAll(e, v)
		default:
			w.remove(e, reflect.TypeOf(c))
		}
	}
}

// release frees the slot of e. A slot whose generation is exhausted is
// retired instead of reused, so a stale handle can never match it again.
func (w *World) release(e Entity) {
	meta := &w.metas[e.index]
	meta.alive = false
	w.components[e.index] = nil
	if meta.generation < math.MaxUint32 {
		meta.generation++
		w.free = append(w.free, e.index)
	}
	w.live--
	for _, o := range w.observers[e] {
		delete(w.observerOwner, o.id)
	}
	delete(w.observers, e)
}

func (w *World) mustAlive(op string, e Entity) {
	if !w.Alive(e) {
		panic(&NoSuchEntityError{Op: op, Entity: e})
	}
}

// EntityMut is a live handle to one entity of a World.
type EntityMut struct {
	world  *World
	entity Entity
}

// ID returns the entity the handle refers to.
func (em EntityMut) ID() Entity {
	return em.entity
}

// World returns the world the entity lives in.
func (em EntityMut) World() *World {
	return em.world
}

// Alive reports whether the entity is still alive.
func (em EntityMut) Alive() bool {
	return em.world != nil && em.world.Alive(em.entity)
}

// Insert adds or overwrites components on the entity. Components of other
// types are left untouched.
func (em EntityMut) Insert(components ...any) EntityMut {
	em.world.mustAlive("Insert", em.entity)
	em.world.insert(em.entity, components)
	return em
}

// Remove deletes the components with the same dynamic types as the given
// values. The values themselves are ignored; a Bundle is flattened.
func (em EntityMut) Remove(components ...any) EntityMut {
	em.world.mustAlive("Remove", em.entity)
	em.world.removeAll(em.entity, components)
	return em
}

// Despawn removes the entity, its descendants and their observers.
func (em EntityMut) Despawn() {
	w := em.world
	w.mustAlive("Despawn", em.entity)
	if parent, ok := Get[Parent](w, em.entity); ok && w.Alive(parent.Entity) {
		w.detachChild(parent.Entity, em.entity)
	}
	w.despawnRecursive(em.entity)
}

func (w *World) despawnRecursive(e Entity) {
	if children, ok := Get[Children](w, e); ok {
		for _, child := range children.Entities {
			if w.Alive(child) {
				w.despawnRecursive(child)
			}
		}
	}
	w.release(e)
}
