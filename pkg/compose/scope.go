package compose

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Scope is one evaluated instance of a Composable. It owns the hook state of
// that instance and lives until the composable is removed from the tree or
// the runtime is closed.
type Scope struct {
	id       uuid.UUID
	runtime  *Runtime
	parent   *Scope
	depth    int
	me       Composable
	children []*Scope

	slots []any
	slot  int

	contexts map[reflect.Type]any

	mounted bool
	dirty   bool

	mu       sync.Mutex
	drops    []*dropCell
	disposed bool
}

func newScope(rt *Runtime, parent *Scope, c Composable) *Scope {
	s := &Scope{
		id:      uuid.New(),
		runtime: rt,
		parent:  parent,
		me:      c,
	}
	if parent != nil {
		s.depth = parent.depth + 1
	}
	return s
}

// ID returns the unique id of the scope.
func (s *Scope) ID() uuid.UUID {
	return s.id
}

// Depth returns the distance from the root scope.
func (s *Scope) Depth() int {
	return s.depth
}

// Logger returns the runtime logger annotated with the scope id.
func (s *Scope) Logger() *zerolog.Logger {
	logger := s.runtime.logger.With().Str("scope", s.id.String()).Logger()
	return &logger
}

// Me returns the composable the scope currently evaluates.
func (s *Scope) Me() Composable {
	return s.me
}

// IsDisposed reports whether the scope has been torn down.
func (s *Scope) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// MarkNeedsCompose schedules the scope for re-evaluation on the next
// Runtime.Flush. Safe to call from any goroutine.
func (s *Scope) MarkNeedsCompose() {
	if s.runtime != nil {
		s.runtime.schedule(s)
	}
}

func (s *Scope) mount() {
	s.mounted = true
	s.dirty = true
	s.runtime.logger.Debug().
		Str("scope", s.id.String()).
		Str("composable", typeName(s.me)).
		Int("depth", s.depth).
		Msg("mount")
	s.rebuild()
}

func (s *Scope) update(next Composable) {
	s.me = next
	s.dirty = true
	s.rebuild()
}

func (s *Scope) rebuild() {
	if !s.dirty || !s.mounted {
		return
	}
	s.dirty = false

	var content []Composable
	if g, ok := s.me.(Group); ok {
		content = contentOf(g)
	} else {
		s.slot = 0
		out := s.me.Compose(s)
		if s.slot != len(s.slots) {
			panic(fmt.Sprintf("compose: %s called %d hooks, previous evaluation called %d",
				typeName(s.me), s.slot, len(s.slots)))
		}
		content = contentOf(out)
	}

	updated := make([]*Scope, 0, len(content))
	for index, c := range content {
		var existing *Scope
		if index < len(s.children) {
			existing = s.children[index]
		}
		if child := updateChild(existing, c, s); child != nil {
			updated = append(updated, child)
		}
	}
	for i := len(content); i < len(s.children); i++ {
		s.children[i].unmount()
	}
	s.children = updated
}

// unmount tears down the children first, then this scope's drop callbacks
// in reverse registration order.
func (s *Scope) unmount() {
	s.mounted = false
	for i := len(s.children) - 1; i >= 0; i-- {
		s.children[i].unmount()
	}
	s.children = nil
	s.runDrops()
	s.runtime.logger.Debug().
		Str("scope", s.id.String()).
		Str("composable", typeName(s.me)).
		Msg("unmount")
}

func (s *Scope) runDrops() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	drops := s.drops
	s.drops = nil
	s.mu.Unlock()

	for i := len(drops) - 1; i >= 0; i-- {
		if fn := drops[i].fn; fn != nil {
			fn()
		}
	}
}

func updateChild(existing *Scope, c Composable, parent *Scope) *Scope {
	if c == nil {
		if existing != nil {
			existing.unmount()
		}
		return nil
	}
	if existing != nil && canUpdate(existing.me, c) {
		existing.update(c)
		return existing
	}
	if existing != nil {
		existing.unmount()
	}
	child := newScope(parent.runtime, parent, c)
	child.mount()
	return child
}

func typeName(c Composable) string {
	if c == nil {
		return "<nil>"
	}
	return reflect.TypeOf(c).String()
}
