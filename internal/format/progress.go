package format

import (
	"fmt"
	"strings"
	"time"
)

// maxETA caps remaining-time estimates.
const maxETA = 24 * time.Hour

// ProgressState holds the progress of each concurrently running engine.
type ProgressState struct {
	progresses []float64
	numEngines int
}

// NewProgressState tracks numEngines progress slots.
func NewProgressState(numEngines int) *ProgressState {
	return &ProgressState{
		progresses: make([]float64, numEngines),
		numEngines: numEngines,
	}
}

// Update records the progress of the engine at index. Out of range indices
// are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage returns the mean progress across all engines.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numEngines == 0 {
		return 0.0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numEngines)
}

// ProgressWithETA extends ProgressState with a remaining-time estimate
// derived from an exponentially smoothed progress rate.
type ProgressWithETA struct {
	*ProgressState
	startTime    time.Time
	lastUpdate   time.Time
	lastProgress float64
	progressRate float64 // progress per second
}

// NewProgressWithETA tracks numEngines progress slots with ETA estimation.
func NewProgressWithETA(numEngines int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(numEngines),
		startTime:     now,
		lastUpdate:    now,
	}
}

// UpdateWithETA records a progress value and returns the average progress
// together with the current estimate. The estimate is 0 until enough time
// and progress have accumulated.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (progress float64, eta time.Duration) {
	p.Update(index, value)
	progress = p.CalculateAverage()

	now := time.Now()
	elapsed := now.Sub(p.startTime)
	if elapsed < 100*time.Millisecond || progress <= 0.001 {
		p.lastUpdate = now
		p.lastProgress = progress
		return progress, 0
	}

	if since := now.Sub(p.lastUpdate).Seconds(); since > 0.05 {
		if delta := progress - p.lastProgress; delta > 0 {
			instant := delta / since
			if p.progressRate > 0 {
				p.progressRate = 0.7*p.progressRate + 0.3*instant
			} else {
				p.progressRate = progress / elapsed.Seconds()
			}
		}
		p.lastUpdate = now
		p.lastProgress = progress
	}

	return progress, p.estimate(progress)
}

// GetETA returns the current estimate without recording progress.
func (p *ProgressWithETA) GetETA() time.Duration {
	return p.estimate(p.CalculateAverage())
}

func (p *ProgressWithETA) estimate(progress float64) time.Duration {
	if p.progressRate <= 0 || progress >= 1.0 {
		return 0
	}
	eta := time.Duration((1.0 - progress) / p.progressRate * float64(time.Second))
	if eta > maxETA {
		eta = maxETA
	}
	return eta
}

// ProgressBar renders progress, clamped to [0, 1], as a bar of length
// characters.
func ProgressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// FormatProgressBarWithETA renders "45.00% [████░░░░] ETA: 2m30s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("%6.2f%% [%s] ETA: %s", progress*100, ProgressBar(progress, width), FormatETA(eta))
}
