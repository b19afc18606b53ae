package orchestration

import (
	"time"

	"github.com/agbru/bigcalc/internal/format"
)

// ProgressAggregator folds per-engine updates into an overall progress
// value and a remaining-time estimate. The CLI and the TUI share it.
type ProgressAggregator struct {
	state      *format.ProgressWithETA
	numEngines int
	done       int
	seen       []bool
}

// NewProgressAggregator returns nil if numEngines <= 0.
func NewProgressAggregator(numEngines int) *ProgressAggregator {
	if numEngines <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:      format.NewProgressWithETA(numEngines),
		numEngines: numEngines,
		seen:       make([]bool, numEngines),
	}
}

// AggregatedProgress is the state after applying one update.
type AggregatedProgress struct {
	EngineIndex     int
	Engine          string
	Value           float64
	AverageProgress float64
	Completed       int
	ETA             time.Duration
}

// Update applies a single progress update.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.EngineIndex, update.Value)
	if update.Value >= 1 && update.EngineIndex >= 0 && update.EngineIndex < a.numEngines && !a.seen[update.EngineIndex] {
		a.seen[update.EngineIndex] = true
		a.done++
	}
	return AggregatedProgress{
		EngineIndex:     update.EngineIndex,
		Engine:          update.Engine,
		Value:           update.Value,
		AverageProgress: avg,
		Completed:       a.done,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average progress.
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current estimate.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// Completed returns the number of engines that have finished.
func (a *ProgressAggregator) Completed() int { return a.done }

// NumEngines returns the number of engines being tracked.
func (a *ProgressAggregator) NumEngines() int { return a.numEngines }

// IsMultiEngine reports whether more than one engine is tracked.
func (a *ProgressAggregator) IsMultiEngine() bool { return a.numEngines > 1 }

// DrainChannel discards updates until the channel is closed.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
