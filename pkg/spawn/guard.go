package spawn

import (
	"sync"
	"time"

	"github.com/go-drift/actuate/pkg/ecs"
	"github.com/go-drift/actuate/pkg/errors"
)

// Guard is a liveness flag shared between a scope and the observers it
// attached. It starts alive and is cleared exactly once, when the scope is
// torn down. Every scope owns its own guard.
type Guard struct {
	mu    sync.Mutex
	alive bool

	scope       string
	entity      ecs.Entity
	onViolation func(*errors.GuardViolationError)
}

// NewGuard returns an alive guard.
func NewGuard() *Guard {
	return &Guard{alive: true}
}

// Alive reports whether the owning scope is still live.
func (g *Guard) Alive() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.alive
}

// Clear marks the owning scope as gone. It reports whether this call
// performed the transition; later calls are no-ops.
func (g *Guard) Clear() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.alive {
		return false
	}
	g.alive = false
	return true
}

// Enter returns if the guard is alive. Otherwise it panics with an
// *errors.GuardViolationError for op, after passing the violation to the
// guard's violation hook and to the global error handler.
//
// The lock is released before Enter returns, so the guarded code may tear
// down the owning scope.
func (g *Guard) Enter(op string) {
	g.mu.Lock()
	alive, scope, entity, hook := g.alive, g.scope, g.entity, g.onViolation
	g.mu.Unlock()
	if alive {
		return
	}

	violation := &errors.GuardViolationError{
		Op:         op,
		Scope:      scope,
		StackTrace: errors.CaptureStack(),
		Timestamp:  time.Now(),
	}
	if !entity.IsNull() {
		violation.Entity = entity.String()
	}
	if hook != nil {
		hook(violation)
	}
	errors.ReportViolation(violation)
	panic(violation)
}

// bind records what the guard protects, for violation reports.
func (g *Guard) bind(scope string, entity ecs.Entity, onViolation func(*errors.GuardViolationError)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scope = scope
	g.entity = entity
	g.onViolation = onViolation
}

// violationHook counts and logs a violation through the runtime context.
func violationHook(rc RuntimeContext) func(*errors.GuardViolationError) {
	return func(v *errors.GuardViolationError) {
		rc.Metrics.guardViolation()
		rc.Logger.Error().
			Str("op", v.Op).
			Str("scope", v.Scope).
			Str("entity", v.Entity).
			Msg("observer called after its scope was dropped")
	}
}

// observerBinding is what an observer needs from the scope that attaches it.
type observerBinding struct {
	guard   *Guard
	runtime RuntimeContext
}

// guarded wraps fn so that it refuses to run once the binding's guard has
// been cleared. The world may keep the returned function indefinitely.
func guarded[E any](b observerBinding, fn ecs.ObserverFunc[E]) ecs.ObserverFunc[E] {
	return func(trigger ecs.Trigger[E], world *ecs.World) {
		b.guard.Enter("spawn.observer")
		b.runtime.Metrics.observerRun()
		fn(trigger, world)
	}
}
