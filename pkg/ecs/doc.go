// Package ecs provides the entity-component object graph that composables
// reconcile against.
//
// A World owns entities and the components attached to them. Components are
// plain Go values keyed by their dynamic type: inserting a value of a type the
// entity already has overwrites it, and nothing else on the entity changes.
//
//	w := ecs.NewWorld()
//	e := w.Spawn(Position{X: 1}, Label{Text: "player"})
//	w.Entity(e).Insert(Position{X: 2})
//	pos, _ := ecs.Get[Position](w, e)
//
// # Hierarchy
//
// EntityMut.AddChild links two entities through the Parent and Children
// components. Despawning an entity despawns its descendants.
//
// # Observers
//
// Observers are callbacks attached to an entity for one event type. Emit
// dispatches an event to the observers of each target entity:
//
//	ecs.Observe(w.Entity(button), func(t ecs.Trigger[Click], w *ecs.World) {
//	    // handle click
//	})
//	ecs.Emit(w, Click{}, button)
//
// # Concurrency
//
// World is NOT thread-safe. Mutation and dispatch must happen on a single
// goroutine, or be serialized by the caller.
package ecs
