// Package service exposes expression evaluation behind a small interface
// shared by the HTTP server and other front ends. It owns input limits,
// engine lookup and metric recording so callers only deal with requests
// and results.
package service

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/agbru/bigcalc/internal/engine"
	"github.com/agbru/bigcalc/internal/orchestration"
)

// ErrMaxDigitsExceeded is returned when an operand is longer than the
// configured digit limit.
var ErrMaxDigitsExceeded = errors.New("operand exceeds the maximum number of digits")

// Service evaluates expressions.
type Service interface {
	// Evaluate computes expr with the named engine.
	Evaluate(ctx context.Context, engineName string, expr engine.Expression) (orchestration.EvaluationResult, error)
	// Compare computes expr with every registered engine. The results are
	// sorted with successes first.
	Compare(ctx context.Context, expr engine.Expression) ([]orchestration.EvaluationResult, error)
	// Engines lists the registered engine names.
	Engines() []string
}

// EvaluationService implements Service on top of an engine factory.
type EvaluationService struct {
	factory   engine.Factory
	maxDigits int
	recorder  orchestration.Recorder
	logger    zerolog.Logger
}

var _ Service = (*EvaluationService)(nil)

// Option configures an EvaluationService.
type Option func(*EvaluationService)

// WithRecorder records every evaluation in r.
func WithRecorder(r orchestration.Recorder) Option {
	return func(s *EvaluationService) { s.recorder = r }
}

// WithLogger sets the logger used for per-evaluation debug entries.
func WithLogger(l zerolog.Logger) Option {
	return func(s *EvaluationService) { s.logger = l }
}

// NewEvaluationService returns a service resolving engines in factory.
// maxDigits bounds operand length; 0 disables the check.
func NewEvaluationService(factory engine.Factory, maxDigits int, opts ...Option) *EvaluationService {
	s := &EvaluationService{
		factory:   factory,
		maxDigits: maxDigits,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Engines implements Service.
func (s *EvaluationService) Engines() []string {
	return s.factory.List()
}

// Evaluate implements Service. A failed evaluation is returned both in the
// result and as the error.
func (s *EvaluationService) Evaluate(ctx context.Context, engineName string, expr engine.Expression) (orchestration.EvaluationResult, error) {
	if err := s.validate(expr); err != nil {
		return orchestration.EvaluationResult{Engine: engineName, Err: err}, err
	}
	eng, err := s.factory.Get(engineName)
	if err != nil {
		return orchestration.EvaluationResult{Engine: engineName, Err: err}, err
	}
	res := s.run(ctx, []engine.Engine{eng}, expr)[0]
	return res, res.Err
}

// Compare implements Service. Engine failures are reported per result;
// the error is reserved for invalid input.
func (s *EvaluationService) Compare(ctx context.Context, expr engine.Expression) ([]orchestration.EvaluationResult, error) {
	if err := s.validate(expr); err != nil {
		return nil, err
	}
	engines, err := orchestration.GetEnginesToRun(orchestration.AllEngines, s.factory)
	if err != nil {
		return nil, err
	}
	results := s.run(ctx, engines, expr)
	orchestration.SortResults(results)
	return results, nil
}

func (s *EvaluationService) run(ctx context.Context, engines []engine.Engine, expr engine.Expression) []orchestration.EvaluationResult {
	opts := []orchestration.ExecOption{orchestration.WithLogger(s.logger)}
	if s.recorder != nil {
		opts = append(opts, orchestration.WithRecorder(s.recorder))
	}
	return orchestration.ExecuteEvaluations(ctx, engines, expr, orchestration.NullProgressReporter{}, io.Discard, opts...)
}

func (s *EvaluationService) validate(expr engine.Expression) error {
	if n := expr.OperandDigits(); s.maxDigits > 0 && n > s.maxDigits {
		return fmt.Errorf("%w: %d digits, limit is %d", ErrMaxDigitsExceeded, n, s.maxDigits)
	}
	return expr.Validate(0)
}
