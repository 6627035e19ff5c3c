// Package compose provides the composition runtime: composables, the scopes
// they are evaluated in, and the per-scope hooks they use to keep state
// across re-evaluations.
//
// A Composable is an immutable description. Each time its scope is
// (re-)evaluated, Compose is called with the scope and returns the content to
// compose beneath it:
//
//	type greeting struct{ name string }
//
//	func (g greeting) Compose(s *compose.Scope) compose.Composable {
//	    count := compose.UseRef(s, func() int { return 0 })
//	    *count++
//	    return nil
//	}
//
// Children are matched to the previous evaluation by position, dynamic type
// and, for composables implementing Keyed, key. A matched child keeps its
// scope and hook state; an unmatched one is torn down and a new scope is
// mounted in its place.
//
// # Hooks
//
// Hooks are identified by call order, so a composable must call the same
// hooks in the same order on every evaluation.
//
//   - UseRef returns a lazily-initialized cell that survives re-evaluation.
//   - UseProvider publishes a value to descendants; UseContext reads the
//     nearest one provided by an ancestor.
//   - UseDrop registers a callback run once when the scope is discarded.
//
// # Scheduling
//
// Runtime.Compose evaluates the whole tree. Scope.MarkNeedsCompose queues a
// single scope for the next Runtime.Flush. Evaluation is synchronous and
// single-threaded; only MarkNeedsCompose may be called from other goroutines.
package compose
