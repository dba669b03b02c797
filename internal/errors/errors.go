package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a result mismatch between strategies.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ReductionError encapsulates a reduction failure while preserving the
// original cause. This allows for structured error handling and inspection
// of what went wrong during a sum computation.
type ReductionError struct {
	// Strategy is the name of the reduction strategy that failed.
	Strategy string
	// Cause is the underlying error that triggered this reduction error.
	Cause error
}

// Error returns a message naming the failed strategy and its cause.
func (e ReductionError) Error() string {
	return fmt.Sprintf("reduction %q failed: %v", e.Strategy, e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e ReductionError) Unwrap() error { return e.Cause }

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// PanicError represents a panic captured at a worker goroutine boundary.
// A worker terminating abnormally while holding a lock poisons the lock in
// the source model; Go has no lock poisoning, so the panic is recovered
// exactly once at the worker boundary and surfaced as this error. It is
// never retried and never produces a partial result.
type PanicError struct {
	// Value is the value the worker panicked with.
	Value any
	// Stack is the worker goroutine's stack at the time of the panic.
	Stack []byte
}

// NewPanicError captures the current stack and wraps the recovered value.
//
// Parameters:
//   - v: The value recovered from the panicking goroutine.
//
// Returns:
//   - *PanicError: A new PanicError carrying the value and stack trace.
func NewPanicError(v any) *PanicError {
	return &PanicError{Value: v, Stack: debug.Stack()}
}

// Error returns a message describing the captured panic.
func (e *PanicError) Error() string {
	return fmt.Sprintf("worker panicked: %v", e.Value)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ColorProvider supplies ANSI color codes to error reporting so that the
// presentation theme stays decoupled from error classification. A nil
// provider disables colorization.
type ColorProvider interface {
	// ErrorColor returns the escape code for error text.
	ErrorColor() string
	// WarnColor returns the escape code for warning text.
	WarnColor() string
	// Reset returns the escape code that clears formatting.
	Reset() string
}

// HandleReductionError reports a reduction failure to the given writer and
// maps it to the appropriate process exit code.
//
// Parameters:
//   - err: The error to classify and report.
//   - limit: The configured timeout, used to phrase deadline messages.
//   - out: The writer for the error report.
//   - colors: The color provider for the report (nil for plain text).
//
// Returns:
//   - int: The exit code corresponding to the error class.
func HandleReductionError(err error, limit time.Duration, out io.Writer, colors ColorProvider) int {
	errC, warnC, reset := "", "", ""
	if colors != nil {
		errC, warnC, reset = colors.ErrorColor(), colors.WarnColor(), colors.Reset()
	}

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%sTimeout: the operation did not complete within %s.%s\n", warnC, limit, reset)
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sCanceled: the operation was interrupted.%s\n", warnC, reset)
		return ExitErrorCanceled
	default:
		var cfgErr ConfigError
		var valErr ValidationError
		if errors.As(err, &cfgErr) || errors.As(err, &valErr) {
			fmt.Fprintf(out, "%sConfiguration error: %v%s\n", errC, err, reset)
			return ExitErrorConfig
		}
		fmt.Fprintf(out, "%sError: %v%s\n", errC, err, reset)
		return ExitErrorGeneric
	}
}
