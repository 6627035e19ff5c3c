package spawn

import (
	"slices"
	"sync"

	"github.com/go-drift/actuate/pkg/compose"
	"github.com/go-drift/actuate/pkg/ecs"
)

// SpawnFunc creates or updates the bound entity. When *entity is ecs.Null it
// must spawn a new entity and store it in *entity; otherwise it must only
// insert its components into *entity.
type SpawnFunc func(world *ecs.World, entity *ecs.Entity)

// attachFunc attaches one observer to the entity and returns its id.
type attachFunc func(em ecs.EntityMut, b observerBinding) ecs.ObserverID

// onceSlot holds a callback that can be taken at most once. Each scope
// keeps its own slot.
type onceSlot struct {
	mu sync.Mutex
	fn func(ecs.EntityMut)
}

func (o *onceSlot) take() func(ecs.EntityMut) {
	if o == nil {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	fn := o.fn
	o.fn = nil
	return fn
}

// Spawn is a composable that binds its scope to one entity. Builder methods
// return modified copies; the receiver is never changed.
type Spawn struct {
	spawnFn   SpawnFunc
	content   []compose.Composable
	target    ecs.Entity
	onSpawn   func(ecs.EntityMut)
	onInsert  []func(ecs.EntityMut)
	observers []attachFunc
}

// New returns a Spawn that spawns an entity holding components. On later
// evaluations the same components are inserted again, overwriting the
// entity's components of the same types.
//
// Components implementing ecs.Cloner are cloned on every insert, so the
// entity never shares memory with the values captured here.
func New(components ...any) Spawn {
	bundle := slices.Clone(components)
	return Spawn{
		spawnFn: func(world *ecs.World, entity *ecs.Entity) {
			if entity.IsNull() {
				*entity = world.Spawn(bundle...)
				return
			}
			world.Entity(*entity).Insert(bundle...)
		},
	}
}

// FromFunc returns a Spawn driven by a custom SpawnFunc.
func FromFunc(fn SpawnFunc) Spawn {
	return Spawn{spawnFn: fn}
}

// Target binds the Spawn to an existing entity instead of creating one.
// A targeted Spawn is not parented to the enclosing Spawn.
func (sp Spawn) Target(entity ecs.Entity) Spawn {
	sp.target = entity
	return sp
}

// Content sets the composables nested beneath the entity.
func (sp Spawn) Content(children ...compose.Composable) Spawn {
	sp.content = slices.Clone(children)
	return sp
}

// OnSpawn sets a callback run once per scope, after the entity is first
// bound and the OnInsert hooks have run. Mounting the same Spawn value in a
// new scope runs it again for that scope's entity.
func (sp Spawn) OnSpawn(fn func(ecs.EntityMut)) Spawn {
	sp.onSpawn = fn
	return sp
}

// OnInsert adds a callback run after every create or update.
func (sp Spawn) OnInsert(fn func(ecs.EntityMut)) Spawn {
	sp.onInsert = append(slices.Clip(sp.onInsert), fn)
	return sp
}

// Observe adds an observer for events of type E targeted at the entity. The
// observer is attached once, on the first evaluation.
func Observe[E any](sp Spawn, fn ecs.ObserverFunc[E]) Spawn {
	sp.observers = append(slices.Clip(sp.observers), func(em ecs.EntityMut, b observerBinding) ecs.ObserverID {
		return ecs.Observe(em, guarded(b, fn))
	})
	return sp
}

func (sp Spawn) contentComposable() compose.Composable {
	switch len(sp.content) {
	case 0:
		return nil
	case 1:
		return sp.content[0]
	default:
		return compose.Group(sp.content)
	}
}
