package compose

import (
	"slices"
	"sync"

	"github.com/rs/zerolog"
)

// Runtime owns a composition tree and schedules its re-evaluation.
type Runtime struct {
	root   Composable
	scope  *Scope
	logger zerolog.Logger

	dirty    []*Scope
	dirtySet map[*Scope]bool
	mu       sync.Mutex

	// OnNeedsCompose is called when a scope is newly scheduled, so hosts
	// driving Flush on demand know another pass is required.
	OnNeedsCompose func()
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger zerolog.Logger) Option {
	return func(rt *Runtime) {
		rt.logger = logger
	}
}

// NewRuntime creates a runtime for root. Nothing is evaluated until Compose.
func NewRuntime(root Composable, opts ...Option) *Runtime {
	rt := &Runtime{
		root:   root,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Root returns the root scope, or nil before the first Compose.
func (rt *Runtime) Root() *Scope {
	return rt.scope
}

// Compose evaluates the tree. The first call mounts the root; later calls
// re-evaluate every scope top-down, reusing matched scopes.
func (rt *Runtime) Compose() {
	switch {
	case rt.scope != nil && canUpdate(rt.scope.me, rt.root):
		rt.scope.update(rt.root)
	case rt.root == nil:
		rt.Close()
	default:
		if rt.scope != nil {
			rt.scope.unmount()
		}
		rt.scope = newScope(rt, nil, rt.root)
		rt.scope.mount()
	}
}

// Update replaces the root composable and re-evaluates the tree.
func (rt *Runtime) Update(root Composable) {
	rt.root = root
	rt.Compose()
}

// Flush re-evaluates the scopes marked with MarkNeedsCompose, shallowest
// first. Scopes scheduled during the flush are evaluated before it returns.
func (rt *Runtime) Flush() {
	for {
		rt.mu.Lock()
		if len(rt.dirty) == 0 {
			rt.mu.Unlock()
			return
		}

		slices.SortFunc(rt.dirty, func(a, b *Scope) int {
			return a.depth - b.depth
		})

		dirty := rt.dirty
		rt.dirty = nil
		clear(rt.dirtySet)
		rt.mu.Unlock()

		for _, s := range dirty {
			if !s.mounted {
				continue
			}
			s.dirty = true
			s.rebuild()
		}
	}
}

// NeedsFlush reports whether scopes are waiting to be re-evaluated.
func (rt *Runtime) NeedsFlush() bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return len(rt.dirty) > 0
}

// Close tears down the whole tree. The runtime can be composed again
// afterwards, starting from fresh scopes.
func (rt *Runtime) Close() {
	if rt.scope != nil {
		rt.scope.unmount()
		rt.scope = nil
	}
	rt.mu.Lock()
	rt.dirty = nil
	clear(rt.dirtySet)
	rt.mu.Unlock()
}

func (rt *Runtime) schedule(s *Scope) {
	added := func() bool {
		rt.mu.Lock()
		defer rt.mu.Unlock()
		if rt.dirtySet[s] {
			return false
		}
		if rt.dirtySet == nil {
			rt.dirtySet = make(map[*Scope]bool)
		}
		rt.dirtySet[s] = true
		rt.dirty = append(rt.dirty, s)
		return true
	}()

	if added && rt.OnNeedsCompose != nil {
		rt.OnNeedsCompose()
	}
}
