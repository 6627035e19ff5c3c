package spawn

import (
	"github.com/rs/zerolog"

	"github.com/go-drift/actuate/pkg/compose"
	"github.com/go-drift/actuate/pkg/ecs"
	"github.com/go-drift/actuate/pkg/errors"
)

// RuntimeContext is provided by the Composer to every scope beneath it.
type RuntimeContext struct {
	World   *ecs.World
	Metrics *Metrics
	Logger  zerolog.Logger
}

// SpawnContext is published by each Spawn for its content: the entity that
// nested Spawns parent themselves to.
type SpawnContext struct {
	ParentEntity ecs.Entity
}

// UseRuntime returns the RuntimeContext of the enclosing Composer.
// It panics if the scope is not composed beneath a Composer.
func UseRuntime(s *compose.Scope) RuntimeContext {
	rc, err := compose.UseContext[RuntimeContext](s)
	if err != nil {
		panic(&errors.ActuateError{
			Op:    "spawn.UseRuntime",
			Kind:  errors.KindContext,
			Scope: s.ID().String(),
			Err:   err,
		})
	}
	return rc
}

// UseWorld returns the world of the enclosing Composer.
func UseWorld(s *compose.Scope) *ecs.World {
	return UseRuntime(s).World
}

// UseBundle calls fn on every evaluation with the world and the scope's
// entity cell, and returns the cell's value afterwards. The cell starts as
// ecs.Null; fn is expected to fill it on the first call and must never reset
// it to ecs.Null once set.
func UseBundle(s *compose.Scope, fn func(world *ecs.World, entity *ecs.Entity)) ecs.Entity {
	world := UseWorld(s)
	cell := compose.UseRef(s, func() ecs.Entity { return ecs.Null })
	prev := *cell
	fn(world, cell)
	if !prev.IsNull() && cell.IsNull() {
		panic("spawn: UseBundle: entity cell reset to null after " + prev.String())
	}
	return *cell
}
