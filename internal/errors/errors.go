package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2
	ExitErrorMismatch = 3 // engines disagree on a result
	ExitErrorConfig   = 4
	ExitErrorInput    = 5 // malformed operand or expression
	ExitErrorCanceled = 130
)

// ConfigError reports invalid flags or environment values. The
// application cannot start until the user fixes them.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError attributes an evaluation failure to the engine that
// produced it. Its message is that of the cause.
type CalculationError struct {
	// Engine is the registry name of the failing engine.
	Engine string
	// Cause is the error returned by the engine.
	Cause error
}

func (e CalculationError) Error() string { return e.Cause.Error() }

// Unwrap returns the engine error.
func (e CalculationError) Unwrap() error { return e.Cause }

// OperandError reports an operand that could not be turned into an integer,
// such as a malformed decimal string or a shift count out of range.
type OperandError struct {
	// Operand is the name of the offending operand ("a" or "b").
	Operand string
	// Value is the rejected input.
	Value string
	// Cause is the underlying parse error.
	Cause error
}

func (e OperandError) Error() string {
	return fmt.Sprintf("invalid operand %s=%q: %v", e.Operand, e.Value, e.Cause)
}

// Unwrap returns the parse error.
func (e OperandError) Unwrap() error { return e.Cause }

// ServerError reports a failure of the HTTP server, such as a port that
// cannot be bound or a shutdown that exceeded its deadline.
type ServerError struct {
	Message string
	Cause   error
}

func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error, if any.
func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a ServerError with a message and optional cause.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// IsContextError reports whether err stems from a canceled or expired
// context rather than from the evaluation itself.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
