// Package spawn binds composables to entities of an ecs.World.
//
// A Spawn composable creates its entity on the first evaluation of its scope
// and updates the same entity in place on every later evaluation:
//
//	type healthBar struct{ hp int }
//
//	func (h healthBar) Compose(s *compose.Scope) compose.Composable {
//	    return spawn.New(Health{HP: h.hp}, Label{Text: "hp"})
//	}
//
// Spawns nested through Content become children of the entity of the
// nearest enclosing Spawn, mirroring the composition tree in the world's
// hierarchy. Target binds the composable to an existing entity instead; such
// a Spawn is not parented automatically but still parents its content.
//
// # Hooks
//
// Per evaluation the order is fixed: create or update the entity, run the
// OnInsert hooks in registration order, then on the first evaluation only
// run the OnSpawn hook, attach the observers and link the entity to its
// parent.
//
// # Observers
//
// Observers registered with Observe outlive the evaluation that attached
// them: the world stores them and dispatches to them later. Each observer is
// tied to a Guard owned by its scope and cleared when that scope is torn
// down. The observers are detached from the world at the same time; should the world
// still dispatch to one afterwards, the observer panics with
// *errors.GuardViolationError instead of running.
//
// # Composer
//
// A Composer owns the world-aware composition root. Spawn composables only
// work beneath one:
//
//	world := ecs.NewWorld()
//	c := spawn.NewComposer(world, app{})
//	c.Compose()
//	defer c.Close()
package spawn
