package errors

import (
	"os"

	"github.com/rs/zerolog"
)

// LogHandler is an ErrorHandler that logs errors through zerolog.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Logger receives the records. The zero value is replaced by a stderr logger.
	Logger zerolog.Logger
}

// NewLogHandler returns a LogHandler writing to stderr.
func NewLogHandler(verbose bool) *LogHandler {
	return &LogHandler{
		Verbose: verbose,
		Logger:  zerolog.New(os.Stderr).With().Timestamp().Logger(),
	}
}

// HandleError logs an ActuateError.
func (h *LogHandler) HandleError(err *ActuateError) {
	if err == nil {
		return
	}
	ev := h.Logger.Error().Str("op", err.Op).Stringer("kind", err.Kind).AnErr("error", err.Err)
	if err.Scope != "" {
		ev = ev.Str("scope", err.Scope)
	}
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("actuate error")
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	ev := h.Logger.Error().Interface("value", err.Value)
	if err.Op != "" {
		ev = ev.Str("op", err.Op)
	}
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("actuate panic")
}

// HandleViolation logs a GuardViolationError.
func (h *LogHandler) HandleViolation(err *GuardViolationError) {
	if err == nil {
		return
	}
	ev := h.Logger.Error().Str("op", err.Op).Str("entity", err.Entity).Str("scope", err.Scope)
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg(err.Error())
}
