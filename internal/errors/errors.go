package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agbru/zzint"
)

// Application exit codes define the standard exit statuses for the
// application. These codes signal the outcome of the program execution to
// the OS and mirror the engine's error taxonomy.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Generic error.
	ExitErrorTimeout  = 2   // The operation timed out.
	ExitErrorInvalid  = 3   // An operand or expression was invalid.
	ExitErrorConfig   = 4   // Configuration error.
	ExitErrorRange    = 5   // A result or buffer exceeded its range.
	ExitErrorMemory   = 6   // Digit storage could not be allocated.
	ExitErrorCanceled = 130 // The operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags
// or values. It indicates that the application cannot proceed due to
// incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// EvalError encapsulates an expression evaluation error while preserving
// the original cause, which is usually one of the engine sentinels.
type EvalError struct {
	// Expr is the expression that failed.
	Expr string
	// Cause is the underlying error.
	Cause error
}

// Error returns a message naming the failed expression and its cause.
func (e EvalError) Error() string {
	return fmt.Sprintf("evaluating %q: %v", e.Expr, e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e EvalError) Unwrap() error { return e.Cause }

// TimeoutError represents an evaluation timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies
// which field failed validation and provides a human-readable explanation.
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

// MemoryError represents an exhausted digit-storage budget. It captures
// the configured budget for diagnostic purposes.
type MemoryError struct {
	// BudgetWords is the configured digit budget in 64-bit words.
	BudgetWords int64
}

// Error returns a formatted message describing the memory error.
func (e MemoryError) Error() string {
	return fmt.Sprintf("digit storage exhausted (budget: %d words)", e.BudgetWords)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline
// exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to the application exit code, unwrapping as
// needed.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, zzint.ErrInvalidValue):
		return ExitErrorInvalid
	case errors.Is(err, zzint.ErrRangeExceeded):
		return ExitErrorRange
	case errors.Is(err, zzint.ErrOutOfMemory):
		return ExitErrorMemory
	}
	var (
		cfgErr ConfigError
		valErr ValidationError
		toErr  TimeoutError
		memErr MemoryError
	)
	switch {
	case errors.As(err, &cfgErr), errors.As(err, &valErr):
		return ExitErrorConfig
	case errors.As(err, &toErr):
		return ExitErrorTimeout
	case errors.As(err, &memErr):
		return ExitErrorMemory
	}
	return ExitErrorGeneric
}
