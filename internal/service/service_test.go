package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/engine"
)

type countingRecorder struct {
	mu     sync.Mutex
	calls  int
	errors int
}

func (r *countingRecorder) ObserveEvaluation(_, _ string, _ time.Duration, _ int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if err != nil {
		r.errors++
	}
}

func TestNewEvaluationService(t *testing.T) {
	t.Parallel()
	svc := NewEvaluationService(engine.NewDefaultFactory(), 1000)
	if svc.maxDigits != 1000 {
		t.Errorf("maxDigits = %d, want 1000", svc.maxDigits)
	}
	if svc.recorder != nil {
		t.Error("recorder should default to nil")
	}
	if len(svc.Engines()) == 0 {
		t.Error("Engines() should list the default engines")
	}
}

func TestEvaluationService_Evaluate(t *testing.T) {
	t.Parallel()
	rec := &countingRecorder{}
	svc := NewEvaluationService(engine.NewDefaultFactory(), 0, WithRecorder(rec))

	expr := engine.Expression{Op: engine.OpAdd, A: "12345678901234567890", B: "98765432109876543210"}
	res, err := svc.Evaluate(context.Background(), "native", expr)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.Engine != "native" {
		t.Errorf("Engine = %q, want native", res.Engine)
	}
	if got, want := res.Result.Value, "111111111011111111100"; got != want {
		t.Errorf("Value = %s, want %s", got, want)
	}
	if rec.calls != 1 {
		t.Errorf("recorder calls = %d, want 1", rec.calls)
	}
}

func TestEvaluationService_EvaluateErrors(t *testing.T) {
	t.Parallel()
	svc := NewEvaluationService(engine.NewDefaultFactory(), 5)

	tests := []struct {
		name   string
		engine string
		expr   engine.Expression
		is     error
	}{
		{"digit limit on a", "native", engine.Expression{Op: engine.OpAdd, A: "123456", B: "1"}, ErrMaxDigitsExceeded},
		{"digit limit on b", "native", engine.Expression{Op: engine.OpAdd, A: "1", B: "-123456"}, ErrMaxDigitsExceeded},
		{"missing operand", "native", engine.Expression{Op: engine.OpAdd, A: "1"}, engine.ErrInvalidExpression},
		{"division by zero", "native", engine.Expression{Op: engine.OpDiv, A: "1", B: "0"}, bigint.ErrDivisionByZero},
		{"malformed operand", "big", engine.Expression{Op: engine.OpMul, A: "12a", B: "2"}, bigint.ErrMalformedInput},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := svc.Evaluate(context.Background(), tt.engine, tt.expr)
			if !errors.Is(err, tt.is) {
				t.Fatalf("err = %v, want %v", err, tt.is)
			}
			if res.Err == nil {
				t.Error("result should carry the error")
			}
		})
	}

	t.Run("unknown engine", func(t *testing.T) {
		t.Parallel()
		if _, err := svc.Evaluate(context.Background(), "abacus", engine.Expression{Op: engine.OpNeg, A: "1"}); err == nil {
			t.Error("expected an error for an unknown engine")
		}
	})

	t.Run("negative sign does not count as a digit", func(t *testing.T) {
		t.Parallel()
		res, err := svc.Evaluate(context.Background(), "native", engine.Expression{Op: engine.OpNeg, A: "-12345"})
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if res.Result.Value != "12345" {
			t.Errorf("Value = %s, want 12345", res.Result.Value)
		}
	})
}

func TestEvaluationService_Compare(t *testing.T) {
	t.Parallel()
	rec := &countingRecorder{}
	factory := engine.NewDefaultFactory()
	svc := NewEvaluationService(factory, 0, WithRecorder(rec))

	results, err := svc.Compare(context.Background(), engine.Expression{Op: engine.OpRsh, A: "-8", B: "3"})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(results) != len(factory.List()) {
		t.Fatalf("got %d results, want %d", len(results), len(factory.List()))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("%s: %v", r.Engine, r.Err)
			continue
		}
		if r.Result.Value != "0" {
			t.Errorf("%s: -8 >> 3 = %s, want 0", r.Engine, r.Result.Value)
		}
	}
	if rec.calls != len(results) {
		t.Errorf("recorder calls = %d, want %d", rec.calls, len(results))
	}
}

func TestEvaluationService_CompareRejectsInvalidInput(t *testing.T) {
	t.Parallel()
	svc := NewEvaluationService(engine.NewDefaultFactory(), 3)
	results, err := svc.Compare(context.Background(), engine.Expression{Op: engine.OpMul, A: "1000", B: "2"})
	if !errors.Is(err, ErrMaxDigitsExceeded) {
		t.Fatalf("err = %v, want ErrMaxDigitsExceeded", err)
	}
	if results != nil {
		t.Errorf("results = %v, want nil", results)
	}
}

func TestEvaluationService_CompareEmptyFactory(t *testing.T) {
	t.Parallel()
	svc := NewEvaluationService(engine.NewFactory(), 0)
	if _, err := svc.Compare(context.Background(), engine.Expression{Op: engine.OpNeg, A: "1"}); err == nil {
		t.Error("expected an error with no engines registered")
	}
}

func TestEvaluationService_Canceled(t *testing.T) {
	t.Parallel()
	svc := NewEvaluationService(engine.NewDefaultFactory(), 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Evaluate(ctx, "native", engine.Expression{Op: engine.OpMul, A: "3", B: "4"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestEvaluationService_DigitLimitMatchesValidate(t *testing.T) {
	t.Parallel()
	const limit = 4
	svc := NewEvaluationService(engine.NewDefaultFactory(), limit)

	exprs := []engine.Expression{
		{Op: engine.OpAdd, A: "9999", B: "1"},
		{Op: engine.OpAdd, A: "10000", B: "1"},
		{Op: engine.OpSub, A: "-9999", B: "-1"},
		{Op: engine.OpSub, A: "1", B: "-10000"},
		{Op: engine.OpNeg, A: "-12345"},
	}
	for _, expr := range exprs {
		_, err := svc.Evaluate(context.Background(), "native", expr)
		rejected := errors.Is(err, ErrMaxDigitsExceeded)
		if wantRejected := expr.Validate(limit) != nil; rejected != wantRejected {
			t.Errorf("%s: service rejected = %v, Validate rejected = %v", expr, rejected, wantRejected)
		}
	}
}
