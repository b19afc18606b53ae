// Package cli implements the command-line front end: progress display,
// result rendering, the interactive REPL and shell completion scripts.
package cli

//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
)

const (
	// TruncationLimit is the digit count above which a value is shortened
	// unless verbose output is requested.
	TruncationLimit = 100
	// DisplayEdges is the number of digits kept at each end of a
	// truncated value.
	DisplayEdges = 25
	// ProgressRefreshRate is the refresh period of the spinner line.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width of the progress bar in characters.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the animation.
	Start()
	// Stop halts the animation and clears the line.
	Stop()
	// UpdateSuffix sets the text shown after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts *spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start()                     { rs.s.Start() }
func (rs *realSpinner) Stop()                      { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(options ...spinner.Option) Spinner {
	return &realSpinner{spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)}
}

// progressLine renders the spinner suffix for the current state.
func progressLine(agg *orchestration.ProgressAggregator) string {
	avg := agg.CalculateAverage()
	bar := format.ProgressBar(avg, ProgressBarWidth)
	if agg.IsMultiEngine() {
		return fmt.Sprintf(" Engines: %d/%d done %6.2f%% [%s] ETA: %s",
			agg.Completed(), agg.NumEngines(), avg*100, bar, format.FormatETA(agg.GetETA()))
	}
	return fmt.Sprintf(" Evaluating... [%s]", bar)
}

// DisplayProgress shows a spinner while engines run and prints a final
// summary line once progressChan is closed. It calls wg.Done on return.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numEngines int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numEngines)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	stopped := false
	defer func() {
		if !stopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				stopped = true
				fmt.Fprintf(out, "Done: %d/%d engines [%s]\n",
					agg.Completed(), agg.NumEngines(), format.ProgressBar(1.0, ProgressBarWidth))
				return
			}
			agg.Update(update)
		case <-ticker.C:
			s.UpdateSuffix(progressLine(agg))
		}
	}
}
