package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/agbru/bigcalc/internal/bigint"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	err := NewConfigError("unrecognized engine: '%s'", "abacus")
	if err.Error() != "unrecognized engine: 'abacus'" {
		t.Errorf("Error() = %q", err.Error())
	}

	var cfgErr ConfigError
	if !errors.As(fmt.Errorf("parse: %w", err), &cfgErr) {
		t.Fatal("errors.As should find a wrapped ConfigError")
	}
	if cfgErr.Message != "unrecognized engine: 'abacus'" {
		t.Errorf("Message = %q", cfgErr.Message)
	}
}

func TestCalculationError(t *testing.T) {
	t.Parallel()
	err := error(CalculationError{Engine: "native", Cause: bigint.ErrDivisionByZero})

	if err.Error() != bigint.ErrDivisionByZero.Error() {
		t.Errorf("Error() = %q, want the cause's message", err.Error())
	}
	if !errors.Is(err, bigint.ErrDivisionByZero) {
		t.Error("errors.Is should see through CalculationError")
	}
	var calcErr CalculationError
	if !errors.As(err, &calcErr) || calcErr.Engine != "native" {
		t.Errorf("errors.As = %+v, want engine native", calcErr)
	}
}

func TestOperandError(t *testing.T) {
	t.Parallel()
	_, parseErr := bigint.Parse("12x4")
	if parseErr == nil {
		t.Fatal("Parse should reject 12x4")
	}
	err := error(OperandError{Operand: "b", Value: "12x4", Cause: parseErr})

	want := fmt.Sprintf("invalid operand b=%q: %v", "12x4", parseErr)
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, bigint.ErrMalformedInput) {
		t.Error("OperandError should unwrap to ErrMalformedInput")
	}

	nested := CalculationError{Engine: "big", Cause: err}
	var opErr OperandError
	if !errors.As(nested, &opErr) || opErr.Operand != "b" {
		t.Errorf("errors.As through CalculationError = %+v", opErr)
	}
}

func TestServerError(t *testing.T) {
	t.Parallel()
	cause := errors.New("address already in use")
	tests := []struct {
		err  error
		want string
	}{
		{NewServerError("listen on :8080", cause), "listen on :8080: address already in use"},
		{NewServerError("shutdown timed out", nil), "shutdown timed out"},
	}
	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
		}
	}
	if !errors.Is(tests[0].err, cause) {
		t.Error("ServerError should unwrap to its cause")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, true},
		{"deadline", context.DeadlineExceeded, true},
		{"wrapped deadline", CalculationError{Engine: "gmp", Cause: context.DeadlineExceeded}, true},
		{"division by zero", bigint.ErrDivisionByZero, false},
	}
	for _, tt := range tests {
		if got := IsContextError(tt.err); got != tt.want {
			t.Errorf("%s: IsContextError = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestExitCodesAreDistinct(t *testing.T) {
	t.Parallel()
	seen := map[int]bool{}
	for _, code := range []int{ExitSuccess, ExitErrorGeneric, ExitErrorTimeout, ExitErrorMismatch, ExitErrorConfig, ExitErrorInput, ExitErrorCanceled} {
		if seen[code] {
			t.Errorf("exit code %d is used twice", code)
		}
		seen[code] = true
	}
}
