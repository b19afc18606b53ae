package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/agbru/bigcalc/internal/engine"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// CLIProgressReporter displays progress with a spinner.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress implements orchestration.ProgressReporter.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numEngines int, out io.Writer) {
	DisplayProgress(wg, progressChan, numEngines, out)
}

// CLIResultPresenter renders results as colored terminal text.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

// PresentComparisonTable prints one row per engine. Padding is computed
// on the plain text so that color codes do not break alignment.
func (p CLIResultPresenter) PresentComparisonTable(results []orchestration.EvaluationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	nameWidth, durWidth, bitsWidth := len("Engine"), len("Duration"), len("Bits")
	for _, res := range results {
		nameWidth = max(nameWidth, len(res.Engine))
		durWidth = max(durWidth, len(p.FormatDuration(res.Duration)))
		bitsWidth = max(bitsWidth, len(format.FormatInt(res.Result.Bits)))
	}

	fmt.Fprintf(out, "%sEngine%s%s   %sDuration%s%s   %sBits%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), pad(nameWidth-len("Engine")),
		ui.ColorUnderline(), ui.ColorReset(), pad(durWidth-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset(), pad(bitsWidth-len("Bits")),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		status := fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		bits := format.FormatInt(res.Result.Bits)
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
			bits = "-"
		}
		duration := p.FormatDuration(res.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s%s   %s\n",
			ui.ColorBlue(), res.Engine, ui.ColorReset(), pad(nameWidth-len(res.Engine)),
			ui.ColorYellow(), duration, ui.ColorReset(), pad(durWidth-len(duration)),
			bits, pad(bitsWidth-len(bits)),
			status)
	}
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// PresentResult implements orchestration.ResultPresenter.
func (CLIResultPresenter) PresentResult(result orchestration.EvaluationResult, expr engine.Expression, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result.Result, expr, result.Duration, opts, out)
}

// FormatDuration implements orchestration.DurationFormatter.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// HandleError implements orchestration.ErrorHandler.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// CLIColorProvider supplies theme colors to the error handler.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// DisplayMemoryStats prints allocation statistics gathered around an
// evaluation.
func DisplayMemoryStats(heapAlloc, totalAlloc uint64, numGC uint32, pauseTotal time.Duration, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(heapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(totalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", numGC)
	if pauseTotal > 0 {
		fmt.Fprintf(out, "  GC pause total:  %s\n", format.FormatExecutionDuration(pauseTotal))
	} else {
		fmt.Fprintf(out, "  GC pause total:  0 (GC suspended)\n")
	}
}
