// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a string and perform no I/O.
//   - Write* functions write to the filesystem.

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/engine"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// OutputConfig holds the result output options.
type OutputConfig struct {
	// OutputFile is the path to save the result to; empty disables it.
	OutputFile string
	// Quiet prints only the value.
	Quiet bool
	// Verbose prints the full value.
	Verbose bool
	// Details prints bit length, word count and timing.
	Details bool
	// ShowValue prints the value section.
	ShowValue bool
	// Dump prints the two's-complement words of the value.
	Dump bool
}

// PresentationOptions converts the output options for the orchestration
// layer.
func (c OutputConfig) PresentationOptions() orchestration.PresentationOptions {
	return orchestration.PresentationOptions{
		Verbose:   c.Verbose,
		Details:   c.Details,
		ShowValue: c.ShowValue,
		Dump:      c.Dump,
	}
}

// DisplayResult prints a result. The value section is shown when
// opts.ShowValue is set and is truncated unless opts.Verbose is set.
func DisplayResult(res engine.Result, expr engine.Expression, duration time.Duration, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "Result binary size: %s%s%s bits.\n", ui.ColorCyan(), format.FormatInt(res.Bits), ui.ColorReset())

	if opts.Details {
		fmt.Fprintf(out, "\n%s--- Detailed result analysis ---%s\n", ui.ColorBold(), ui.ColorReset())
		durationStr := format.FormatExecutionDuration(duration)
		if duration == 0 {
			durationStr = "< 1µs"
		}
		fmt.Fprintf(out, "Evaluation time     : %s%s%s\n", ui.ColorGreen(), durationStr, ui.ColorReset())
		fmt.Fprintf(out, "Words (64-bit)      : %s%s%s\n", ui.ColorCyan(), format.FormatInt(res.Words), ui.ColorReset())
		fmt.Fprintf(out, "Number of digits    : %s%s%s\n", ui.ColorCyan(), format.FormatInt(format.DigitCount(res.Value)), ui.ColorReset())
		fmt.Fprintf(out, "Approximate size    : %s%s%s\n", ui.ColorCyan(), format.FormatBytes(uint64(res.Words)*8), ui.ColorReset())
	}

	if opts.ShowValue {
		fmt.Fprintf(out, "\n%s--- Calculated value ---%s\n", ui.ColorBold(), ui.ColorReset())
		if opts.Verbose {
			fmt.Fprintf(out, "%s%s%s =\n%s%s%s\n", ui.ColorMagenta(), expr, ui.ColorReset(), ui.ColorGreen(), res.Value, ui.ColorReset())
		} else if short, truncated := format.TruncateDigits(res.Value, TruncationLimit, DisplayEdges); truncated {
			fmt.Fprintf(out, "%s%s%s (truncated) = %s%s%s\n",
				ui.ColorMagenta(), FormatExpression(expr), ui.ColorReset(), ui.ColorGreen(), short, ui.ColorReset())
			fmt.Fprintf(out, "(Tip: use the %s-v%s or %s--verbose%s option to display the full value)\n",
				ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
		} else {
			fmt.Fprintf(out, "%s%s%s = %s%s%s\n",
				ui.ColorMagenta(), FormatExpression(expr), ui.ColorReset(), ui.ColorGreen(), format.FormatNumberString(res.Value), ui.ColorReset())
		}
	}

	if opts.Dump {
		if err := DisplayDump(res.Value, out); err != nil {
			fmt.Fprintf(out, "%sCannot dump result: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		}
	}
}

// FormatExpression renders expr with long operands truncated.
func FormatExpression(expr engine.Expression) string {
	shorten := func(s string) string {
		short, _ := format.TruncateDigits(s, 20, 8)
		return short
	}
	if expr.Op.Unary() {
		return "neg " + shorten(expr.A)
	}
	return shorten(expr.A) + " " + expr.Op.Symbol() + " " + shorten(expr.B)
}

// DisplayDump prints the two's-complement words of a decimal value, most
// significant word first.
func DisplayDump(value string, out io.Writer) error {
	x, err := bigint.Parse(value)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%s--- Two's-complement words (%d) ---%s\n", ui.ColorBold(), x.Len(), ui.ColorReset())
	words := strings.Split(strings.TrimSuffix(x.Dump(), "\n"), "\n")
	for i, w := range words {
		fmt.Fprintf(out, "%s[%3d]%s %s\n", ui.ColorYellow(), len(words)-1-i, ui.ColorReset(), w)
	}
	return nil
}

// FormatQuietResult returns the bare value for scripting.
func FormatQuietResult(res engine.Result) string {
	return res.Value
}

// DisplayQuietResult prints the bare value.
func DisplayQuietResult(out io.Writer, res engine.Result) {
	fmt.Fprintln(out, FormatQuietResult(res))
}

// WriteResultToFile saves a result with a commented header. It is a no-op
// when cfg.OutputFile is empty.
func WriteResultToFile(res engine.Result, expr engine.Expression, duration time.Duration, engineName string, cfg OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}

	if dir := filepath.Dir(cfg.OutputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Big Integer Evaluation Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Engine: %s\n", engineName)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# Operation: %s\n", expr.Op)
	fmt.Fprintf(file, "# Bits: %d\n", res.Bits)
	fmt.Fprintf(file, "# Words: %d\n", res.Words)
	fmt.Fprintf(file, "# Digits: %d\n", format.DigitCount(res.Value))
	fmt.Fprintf(file, "\n%s =\n%s\n", expr, res.Value)

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// DisplayResultWithConfig prints a result according to cfg and saves it
// when an output file is configured.
func DisplayResultWithConfig(out io.Writer, res engine.Result, expr engine.Expression, duration time.Duration, engineName string, cfg OutputConfig) error {
	if cfg.Quiet {
		DisplayQuietResult(out, res)
	} else {
		DisplayResult(res, expr, duration, cfg.PresentationOptions(), out)
	}

	if cfg.OutputFile == "" {
		return nil
	}
	if err := WriteResultToFile(res, expr, duration, engineName, cfg); err != nil {
		return err
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), cfg.OutputFile, ui.ColorReset())
	}
	return nil
}
