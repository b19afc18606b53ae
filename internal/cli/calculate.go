package cli

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/agbru/bigcalc/internal/engine"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/sysinfo"
	"github.com/agbru/bigcalc/internal/ui"
)

// PrintExecutionConfig prints the expression being evaluated, the timeout
// and the host environment.
func PrintExecutionConfig(expr engine.Expression, timeout time.Duration, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Evaluating %s%s%s (%s) with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), FormatExpression(expr), ui.ColorReset(),
		expr.Op, ui.ColorYellow(), timeout, ui.ColorReset())
	if expr.Op.IsShift() {
		fmt.Fprintf(out, "Operand size: %s%s%s digits, shift by %s%s%s bits.\n",
			ui.ColorCyan(), format.FormatInt(format.DigitCount(expr.A)), ui.ColorReset(),
			ui.ColorCyan(), expr.B, ui.ColorReset())
	} else if !expr.Op.Unary() {
		fmt.Fprintf(out, "Operand sizes: %s%s%s and %s%s%s digits.\n",
			ui.ColorCyan(), format.FormatInt(format.DigitCount(expr.A)), ui.ColorReset(),
			ui.ColorCyan(), format.FormatInt(format.DigitCount(expr.B)), ui.ColorReset())
	}
	fmt.Fprintf(out, "Environment: %s%s%s, Go %s%s%s.\n",
		ui.ColorCyan(), sysinfo.Host(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode prints whether a single engine runs or several are
// compared.
func PrintExecutionMode(engines []engine.Engine, out io.Writer) {
	var mode string
	switch len(engines) {
	case 0:
		mode = "no engine selected"
	case 1:
		mode = fmt.Sprintf("Single evaluation with the %s%s%s engine", ui.ColorGreen(), engines[0].Name(), ui.ColorReset())
	default:
		mode = fmt.Sprintf("Parallel comparison of %d engines", len(engines))
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", mode)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
