package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
)

// ColorProvider supplies the escape sequences used to highlight error
// messages. A nil ColorProvider prints plain text.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// plainColors is used when no ColorProvider is given.
type plainColors struct{}

func (plainColors) Red() string    { return "" }
func (plainColors) Yellow() string { return "" }
func (plainColors) Reset() string  { return "" }

// ExitCodeFor maps an error to the process exit code that best describes it.
//
// Parameters:
//   - err: The error to classify. A nil error maps to ExitSuccess.
//
// Returns:
//   - int: The exit code.
func ExitCodeFor(err error) int {
	var (
		configErr  ConfigError
		operandErr OperandError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &configErr):
		return ExitErrorConfig
	case errors.As(err, &operandErr), errors.Is(err, bigint.ErrMalformedInput):
		return ExitErrorInput
	default:
		return ExitErrorGeneric
	}
}

// HandleCalculationError prints a diagnostic for an evaluation error and
// returns the matching exit code.
//
// Parameters:
//   - err: The error returned by the evaluation. nil means success.
//   - duration: How long the evaluation ran before failing.
//   - out: The writer receiving the diagnostic.
//   - colors: Highlighting for the message; may be nil.
//
// Returns:
//   - int: The exit code from ExitCodeFor.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = plainColors{}
	}

	code := ExitCodeFor(err)
	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sEvaluation timed out after %s.%s\n", colors.Yellow(), duration, colors.Reset())
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sEvaluation canceled after %s.%s\n", colors.Yellow(), duration, colors.Reset())
	default:
		if errors.Is(err, bigint.ErrDivisionByZero) {
			fmt.Fprintf(out, "%sError: division by zero.%s\n", colors.Red(), colors.Reset())
			break
		}
		fmt.Fprintf(out, "%sError: %v%s\n", colors.Red(), err, colors.Reset())
	}
	return code
}
