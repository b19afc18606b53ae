package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/bigcalc/internal/engine"
)

// EvaluationResult is the outcome of evaluating an expression on one engine.
type EvaluationResult struct {
	// Engine is the registry name of the engine.
	Engine string
	// Result holds the value. It is the zero Result if Err is set.
	Result engine.Result
	// Duration is the wall time of the evaluation.
	Duration time.Duration
	// Err is the evaluation error, if any.
	Err error
}

// ProgressUpdate reports the state of one engine. Value is 0 when the
// engine starts and 1 once it has finished, successfully or not.
type ProgressUpdate struct {
	EngineIndex int
	Engine      string
	Value       float64
}

// PresentationOptions configures how a result is presented.
type PresentationOptions struct {
	Verbose   bool
	Details   bool
	ShowValue bool
	Dump      bool
}

// ProgressReporter displays progress while engines run.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed, then
	// calls wg.Done. It runs on its own goroutine.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numEngines int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numEngines int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numEngines int, out io.Writer) {
	f(wg, progressChan, numEngines, out)
}

// NullProgressReporter drains the progress channel without output. It is
// used in quiet mode and by the server.
type NullProgressReporter struct{}

// DisplayProgress implements ProgressReporter.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders evaluation results.
type ResultPresenter interface {
	// PresentComparisonTable displays one row per engine.
	PresentComparisonTable(results []EvaluationResult, out io.Writer)
	// PresentResult displays the agreed result of expr.
	PresentResult(result EvaluationResult, expr engine.Expression, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler reports an evaluation error and returns the exit code.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
