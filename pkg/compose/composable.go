package compose

import "reflect"

// Composable describes part of a composition.
type Composable interface {
	// Compose evaluates the composable in s and returns its content.
	// A nil result means no content.
	Compose(s *Scope) Composable
}

// Keyed is implemented by composables that carry an identity key. Two
// composables of the same type with different keys never share a scope.
type Keyed interface {
	Key() any
}

// Func adapts a function to a Composable.
type Func func(s *Scope) Composable

// Compose calls f.
func (f Func) Compose(s *Scope) Composable {
	return f(s)
}

// Group composes its elements as positional siblings. A Group's scope has no
// hooks of its own.
type Group []Composable

// Compose returns nil; the runtime composes the elements directly.
func (g Group) Compose(s *Scope) Composable {
	return nil
}

// contentOf flattens a Compose result into child composables.
func contentOf(c Composable) []Composable {
	if c == nil {
		return nil
	}
	if g, ok := c.(Group); ok {
		out := make([]Composable, 0, len(g))
		for _, item := range g {
			if item != nil {
				out = append(out, item)
			}
		}
		return out
	}
	return []Composable{c}
}

func canUpdate(existing, next Composable) bool {
	if existing == nil || next == nil {
		return false
	}
	if reflect.TypeOf(existing) != reflect.TypeOf(next) {
		return false
	}
	return reflect.DeepEqual(keyOf(existing), keyOf(next))
}

func keyOf(c Composable) any {
	if k, ok := c.(Keyed); ok {
		return k.Key()
	}
	return nil
}
