package ecs

import (
	"reflect"
	"slices"
)

// ObserverID identifies an attached observer.
type ObserverID uint64

// Trigger carries an event to an observer.
type Trigger[E any] struct {
	// Event is the emitted value.
	Event E
	// Target is the entity the observer is attached to.
	Target Entity
}

// ObserverFunc handles events of type E targeted at an entity.
type ObserverFunc[E any] func(trigger Trigger[E], world *World)

type observer struct {
	id    ObserverID
	event reflect.Type
	run   func(event any, target Entity, w *World)
}

// Observe attaches fn to the entity. It runs every time an event of type E
// is emitted at the entity, until Unobserve is called or the entity is
// despawned.
func Observe[E any](em EntityMut, fn ObserverFunc[E]) ObserverID {
	w := em.world
	w.mustAlive("Observe", em.entity)

	w.nextObserver++
	o := &observer{
		id:    w.nextObserver,
		event: reflect.TypeFor[E](),
		run: func(event any, target Entity, w *World) {
			fn(Trigger[E]{Event: event.(E), Target: target}, w)
		},
	}
	w.observers[em.entity] = append(w.observers[em.entity], o)
	w.observerOwner[o.id] = em.entity
	return o.id
}

// Unobserve detaches an observer. It reports whether the observer was
// attached.
func Unobserve(w *World, id ObserverID) bool {
	owner, ok := w.observerOwner[id]
	if !ok {
		return false
	}
	delete(w.observerOwner, id)
	w.observers[owner] = slices.DeleteFunc(w.observers[owner], func(o *observer) bool {
		return o.id == id
	})
	if len(w.observers[owner]) == 0 {
		delete(w.observers, owner)
	}
	return true
}

// ObserverCount returns the number of observers attached to e.
func (w *World) ObserverCount(e Entity) int {
	return len(w.observers[e])
}

// Emit dispatches event to the observers of each target, in attachment
// order. Dead targets are skipped. Observers attached or detached while the
// event is dispatched take effect for the next emit, except that a detached
// observer is never run. Emit returns the number of observers that ran.
func Emit[E any](w *World, event E, targets ...Entity) int {
	typ := reflect.TypeFor[E]()
	ran := 0
	for _, target := range targets {
		if !w.Alive(target) {
			continue
		}
		for _, o := range slices.Clone(w.observers[target]) {
			if o.event != typ {
				continue
			}
			if _, attached := w.observerOwner[o.id]; !attached {
				continue
			}
			o.run(event, target, w)
			ran++
		}
	}
	return ran
}
