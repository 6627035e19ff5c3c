// Package errors provides structured error handling for actuate.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrContextNotFound is returned (wrapped in a ContextError) when a scope asks
// for a context value that no ancestor provides.
var ErrContextNotFound = errors.New("context not found")

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindCompose indicates a failure while evaluating a composable.
	KindCompose
	// KindContext indicates a missing or mistyped context value.
	KindContext
	// KindContract indicates a violated runtime contract, such as an observer
	// running after its scope was torn down.
	KindContract
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindScene indicates a scene document that could not be decoded.
	KindScene
)

func (k ErrorKind) String() string {
	switch k {
	case KindCompose:
		return "compose"
	case KindContext:
		return "context"
	case KindContract:
		return "contract"
	case KindPanic:
		return "panic"
	case KindScene:
		return "scene"
	default:
		return "unknown"
	}
}

// ActuateError represents a structured error in actuate.
type ActuateError struct {
	// Op is the operation that failed (e.g., "scene.Load").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Scope is the id of the composition scope involved, if any.
	Scope string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ActuateError) Error() string {
	if e.Scope != "" {
		return fmt.Sprintf("%s [%s] scope=%s: %v", e.Op, e.Kind, e.Scope, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ActuateError) Unwrap() error {
	return e.Err
}

// GuardViolationError is raised when a deferred callback runs after the scope
// that registered it was torn down. It is never recovered by actuate.
type GuardViolationError struct {
	// Op names the callback that fired (e.g., "spawn.observer").
	Op string
	// Entity is the entity the callback was attached to.
	Entity string
	// Scope is the id of the torn-down scope.
	Scope string
	// StackTrace contains the call stack at the time of the violation.
	StackTrace string
	// Timestamp is when the violation occurred.
	Timestamp time.Time
}

func (e *GuardViolationError) Error() string {
	msg := fmt.Sprintf("%s called after its scope was dropped", e.Op)
	if e.Entity != "" {
		msg += " (entity " + e.Entity + ")"
	}
	if e.Scope != "" {
		msg += " (scope " + e.Scope + ")"
	}
	return msg
}

// ContextError reports a context lookup that found no provider.
type ContextError struct {
	// Type is the name of the requested context type.
	Type string
}

func (e *ContextError) Error() string {
	return fmt.Sprintf("%v: %s", ErrContextNotFound, e.Type)
}

func (e *ContextError) Unwrap() error {
	return ErrContextNotFound
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "compose.Runtime.Close").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by actuate.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ActuateError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleViolation is called just before a contract violation panics.
	HandleViolation(err *GuardViolationError)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
