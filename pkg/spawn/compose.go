package spawn

import (
	"github.com/go-drift/actuate/pkg/compose"
	"github.com/go-drift/actuate/pkg/ecs"
)

// Compose binds the scope to its entity. See the package documentation for
// the order in which hooks run.
func (sp Spawn) Compose(s *compose.Scope) compose.Composable {
	rc := UseRuntime(s)
	parent, parentErr := compose.UseContext[SpawnContext](s)

	initial := compose.UseRef(s, func() bool { return true })
	guard := compose.UseRef(s, NewGuard)
	onSpawn := compose.UseRef(s, func() *onceSlot { return &onceSlot{fn: sp.onSpawn} })
	attached := compose.UseRef(s, func() []ecs.ObserverID { return nil })

	entity := UseBundle(s, func(world *ecs.World, entity *ecs.Entity) {
		if !sp.target.IsNull() {
			*entity = sp.target
		}
		created := entity.IsNull()

		sp.spawnFn(world, entity)
		if created {
			rc.Metrics.create()
			s.Logger().Debug().Stringer("entity", *entity).Msg("spawned entity")
		} else {
			rc.Metrics.update()
		}

		em := world.Entity(*entity)
		for _, fn := range sp.onInsert {
			fn(em)
		}

		if !*initial {
			return
		}
		if fn := (*onSpawn).take(); fn != nil {
			fn(em)
		}
		(*guard).bind(s.ID().String(), *entity, violationHook(rc))
		binding := observerBinding{guard: *guard, runtime: rc}
		for _, attach := range sp.observers {
			*attached = append(*attached, attach(em, binding))
		}
		*initial = false
	})

	compose.UseProvider(s, func() SpawnContext {
		if sp.target.IsNull() && parentErr == nil {
			rc.World.Entity(parent.ParentEntity).AddChild(entity)
		}
		return SpawnContext{ParentEntity: entity}
	})

	compose.UseDrop(s, func() {
		if (*guard).Clear() {
			s.Logger().Debug().Stringer("entity", entity).Msg("observer guard cleared")
		}
		for _, id := range *attached {
			ecs.Unobserve(rc.World, id)
		}
		*attached = nil
	})

	return sp.contentComposable()
}
