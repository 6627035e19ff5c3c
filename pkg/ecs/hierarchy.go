package ecs

import (
	"reflect"
	"slices"
)

var (
	typeParent   = reflect.TypeFor[Parent]()
	typeChildren = reflect.TypeFor[Children]()
)

// Parent points at the entity's parent.
type Parent struct {
	Entity Entity
}

// Children lists an entity's children in insertion order.
// The slice must be treated as read-only.
type Children struct {
	Entities []Entity
}

// AddChild makes child a child of the entity, detaching it from any previous
// parent first.
func (em EntityMut) AddChild(child Entity) EntityMut {
	w := em.world
	w.mustAlive("AddChild", em.entity)
	w.mustAlive("AddChild", child)
	if child == em.entity {
		panic("ecs: AddChild: entity " + child.String() + " cannot be its own child")
	}

	if old, ok := Get[Parent](w, child); ok {
		if old.Entity == em.entity {
			return em
		}
		if w.Alive(old.Entity) {
			w.detachChild(old.Entity, child)
		}
	}

	children, _ := Get[Children](w, em.entity)
	w.components[em.entity.index][typeChildren] = Children{
		Entities: append(slices.Clip(children.Entities), child),
	}
	w.components[child.index][typeParent] = Parent{Entity: em.entity}
	return em
}

// Parent returns the entity's parent, if any.
func (em EntityMut) Parent() (Entity, bool) {
	p, ok := Get[Parent](em.world, em.entity)
	return p.Entity, ok
}

// Children returns a copy of the entity's children.
func (em EntityMut) Children() []Entity {
	c, _ := Get[Children](em.world, em.entity)
	return slices.Clone(c.Entities)
}

func (w *World) detachChild(parent, child Entity) {
	comps := w.components[parent.index]
	children, ok := comps[typeChildren].(Children)
	if ok {
		kept := slices.DeleteFunc(slices.Clone(children.Entities), func(e Entity) bool {
			return e == child
		})
		if len(kept) == 0 {
			delete(comps, typeChildren)
		} else {
			comps[typeChildren] = Children{Entities: kept}
		}
	}
	if w.Alive(child) {
		delete(w.components[child.index], typeParent)
	}
}

// Walk visits live entities depth-first, starting from the roots (entities
// without a parent) in index order. Returning false from visit skips the
// entity's descendants.
func (w *World) Walk(visit func(e Entity, depth int) bool) {
	var walk func(e Entity, depth int)
	walk = func(e Entity, depth int) {
		if !visit(e, depth) {
			return
		}
		children, _ := Get[Children](w, e)
		for _, child := range children.Entities {
			if w.Alive(child) {
				walk(child, depth+1)
			}
		}
	}
	for _, e := range w.Entities() {
		if !Has[Parent](w, e) {
			walk(e, 0)
		}
	}
}
