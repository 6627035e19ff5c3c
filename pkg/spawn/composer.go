package spawn

import (
	"github.com/rs/zerolog"

	"github.com/go-drift/actuate/pkg/compose"
	"github.com/go-drift/actuate/pkg/ecs"
)

// Composer drives a composition whose Spawn composables write to a world.
type Composer struct {
	world   *ecs.World
	metrics *Metrics
	logger  zerolog.Logger
	runtime *compose.Runtime
}

// Option configures a Composer.
type Option func(*Composer)

// WithMetrics records spawn activity in m.
func WithMetrics(m *Metrics) Option {
	return func(c *Composer) {
		c.metrics = m
	}
}

// WithLogger sets the logger for the composer and its runtime.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Composer) {
		c.logger = logger
	}
}

// NewComposer creates a composer that composes root against world.
func NewComposer(world *ecs.World, root compose.Composable, opts ...Option) *Composer {
	c := &Composer{
		world:  world,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.runtime = compose.NewRuntime(c.wrap(root), compose.WithLogger(c.logger))
	return c
}

// World returns the world the composer writes to.
func (c *Composer) World() *ecs.World {
	return c.world
}

// Runtime returns the underlying composition runtime.
func (c *Composer) Runtime() *compose.Runtime {
	return c.runtime
}

// Compose runs one composition pass.
func (c *Composer) Compose() {
	c.runtime.Compose()
}

// Update replaces the root composable and runs a composition pass.
func (c *Composer) Update(root compose.Composable) {
	c.runtime.Update(c.wrap(root))
}

// Flush re-evaluates scopes marked with MarkNeedsCompose.
func (c *Composer) Flush() {
	c.runtime.Flush()
}

// Close tears down the composition. Entities stay in the world; their
// observers are detached.
func (c *Composer) Close() {
	c.runtime.Close()
}

func (c *Composer) wrap(root compose.Composable) compose.Composable {
	return runtimeRoot{
		ctx: RuntimeContext{
			World:   c.world,
			Metrics: c.metrics,
			Logger:  c.logger,
		},
		content: root,
	}
}

// runtimeRoot publishes the RuntimeContext above the user's root.
type runtimeRoot struct {
	ctx     RuntimeContext
	content compose.Composable
}

func (r runtimeRoot) Compose(s *compose.Scope) compose.Composable {
	compose.UseProvider(s, func() RuntimeContext { return r.ctx })
	return r.content
}
