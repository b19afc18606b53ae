package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/bigcalc/internal/engine"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// ProgressBufferMultiplier sizes the progress channel per engine. Each
// engine sends two updates, so the channel never blocks an evaluation.
const ProgressBufferMultiplier = 2

// Recorder receives one observation per finished evaluation.
// *metrics.Registry implements it.
type Recorder interface {
	ObserveEvaluation(engine, op string, d time.Duration, bits int, err error)
}

type execOptions struct {
	recorder Recorder
	logger   zerolog.Logger
}

// ExecOption configures ExecuteEvaluations.
type ExecOption func(*execOptions)

// WithRecorder records every evaluation in r.
func WithRecorder(r Recorder) ExecOption {
	return func(o *execOptions) { o.recorder = r }
}

// WithLogger logs every evaluation at debug level.
func WithLogger(l zerolog.Logger) ExecOption {
	return func(o *execOptions) { o.logger = l }
}

// ExecuteEvaluations evaluates expr on every engine concurrently and
// returns the results in engine order. Individual failures are reported in
// the results; they do not cancel the other engines.
func ExecuteEvaluations(ctx context.Context, engines []engine.Engine, expr engine.Expression, reporter ProgressReporter, out io.Writer, opts ...ExecOption) []EvaluationResult {
	o := execOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	tracer := otel.Tracer("bigcalc/orchestration")
	ctx, span := tracer.Start(ctx, "ExecuteEvaluations")
	span.SetAttributes(
		attribute.String("op", expr.Op.String()),
		attribute.Int("engines", len(engines)),
	)
	defer span.End()

	g, ctx := errgroup.WithContext(ctx)
	results := make([]EvaluationResult, len(engines))
	progressChan := make(chan ProgressUpdate, len(engines)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(engines), out)

	for i, e := range engines {
		idx, eng := i, e
		g.Go(func() error {
			results[idx] = evaluateOne(ctx, eng, idx, expr, progressChan, &o)
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

func evaluateOne(ctx context.Context, eng engine.Engine, idx int, expr engine.Expression, progressChan chan<- ProgressUpdate, o *execOptions) EvaluationResult {
	ctx, span := otel.Tracer("bigcalc/orchestration").Start(ctx, "Evaluate")
	span.SetAttributes(attribute.String("engine", eng.Name()))
	defer span.End()

	progressChan <- ProgressUpdate{EngineIndex: idx, Engine: eng.Name(), Value: 0}
	start := time.Now()
	res, err := eng.Evaluate(ctx, expr)
	elapsed := time.Since(start)
	progressChan <- ProgressUpdate{EngineIndex: idx, Engine: eng.Name(), Value: 1}

	switch {
	case err == nil:
		span.SetAttributes(attribute.Int("result.bits", res.Bits))
	case apperrors.IsContextError(err):
		span.SetAttributes(attribute.Bool("interrupted", true))
		span.SetStatus(codes.Error, err.Error())
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if o.recorder != nil {
		o.recorder.ObserveEvaluation(eng.Name(), expr.Op.String(), elapsed, res.Bits, err)
	}
	o.logger.Debug().
		Str("engine", eng.Name()).
		Str("op", expr.Op.String()).
		Dur("duration", elapsed).
		Int("bits", res.Bits).
		AnErr("error", err).
		Msg("evaluation finished")

	if err != nil {
		err = apperrors.CalculationError{Engine: eng.Name(), Cause: err}
	}
	return EvaluationResult{Engine: eng.Name(), Result: res, Duration: elapsed, Err: err}
}

// SortResults orders results with successes first, each group by
// ascending duration.
func SortResults(results []EvaluationResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})
}

// Consistent reports whether every successful result carries the same
// value, and returns the fastest successful result. ok is false when no
// engine succeeded.
func Consistent(results []EvaluationResult) (best EvaluationResult, ok, consistent bool) {
	consistent = true
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if !ok {
			best, ok = r, true
			continue
		}
		if r.Result != best.Result {
			consistent = false
		}
		if r.Duration < best.Duration {
			best = r
		}
	}
	return best, ok, consistent
}

// FirstError returns the first error among results, if any.
func FirstError(results []EvaluationResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// AnalyzeComparisonResults sorts the results, prints the comparison table
// and checks that every successful engine agrees. It returns the process
// exit code.
func AnalyzeComparisonResults(results []EvaluationResult, expr engine.Expression, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	SortResults(results)
	presenter.PresentComparisonTable(results, out)

	best, ok, consistent := Consistent(results)
	if !ok {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No engine could evaluate the expression.\n")
		return errHandler.HandleError(FirstError(results), 0, out)
	}
	if !consistent {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The engines disagree on the result.\n")
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(best, expr, opts, out)
	return apperrors.ExitSuccess
}
