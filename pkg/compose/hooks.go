package compose

import (
	"fmt"
	"reflect"

	"github.com/go-drift/actuate/pkg/errors"
)

// nextSlot returns the hook state at the scope's current slot, creating it
// with init on the first evaluation.
func nextSlot[T any](s *Scope, hook string, init func() T) T {
	index := s.slot
	s.slot++
	if index < len(s.slots) {
		v, ok := s.slots[index].(T)
		if !ok {
			panic(fmt.Sprintf("compose: %s called out of order in %s: slot %d holds %T",
				hook, typeName(s.me), index, s.slots[index]))
		}
		return v
	}
	v := init()
	s.slots = append(s.slots, v)
	return v
}

// UseRef returns a cell initialized by init on the first evaluation of the
// scope. The same pointer is returned on every later evaluation.
//
// Example:
//
//	func (c counter) Compose(s *compose.Scope) compose.Composable {
//	    renders := compose.UseRef(s, func() int { return 0 })
//	    *renders++
//	    return nil
//	}
func UseRef[T any](s *Scope, init func() T) *T {
	return nextSlot(s, "UseRef", func() *T {
		v := init()
		return &v
	})
}

type provided[T any] struct {
	value T
}

// UseProvider publishes the value returned by init to the scope's
// descendants. init runs on the first evaluation only; the published value
// never changes for the life of the scope.
func UseProvider[T any](s *Scope, init func() T) T {
	p := nextSlot(s, "UseProvider", func() *provided[T] {
		v := init()
		if s.contexts == nil {
			s.contexts = make(map[reflect.Type]any)
		}
		s.contexts[reflect.TypeFor[T]()] = v
		return &provided[T]{value: v}
	})
	return p.value
}

// UseContext returns the value of type T provided by the nearest ancestor
// scope. A scope never sees its own provider. If no ancestor provides T the
// returned error wraps errors.ErrContextNotFound.
func UseContext[T any](s *Scope) (T, error) {
	typ := reflect.TypeFor[T]()
	for current := s.parent; current != nil; current = current.parent {
		if v, ok := current.contexts[typ]; ok {
			return v.(T), nil
		}
	}
	var zero T
	return zero, &errors.ContextError{Type: typ.String()}
}

type dropCell struct {
	fn func()
}

// UseDrop registers fn to run exactly once when the scope is discarded.
// Later evaluations replace the callback with their fn.
func UseDrop(s *Scope, fn func()) {
	cell := nextSlot(s, "UseDrop", func() *dropCell {
		cell := &dropCell{}
		s.mu.Lock()
		s.drops = append(s.drops, cell)
		s.mu.Unlock()
		return cell
	})
	s.mu.Lock()
	cell.fn = fn
	s.mu.Unlock()
}
