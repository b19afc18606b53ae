package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/engine"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// AnsToken refers to the previous result inside a REPL expression.
const AnsToken = "ans"

// REPLConfig holds the settings of an interactive session.
type REPLConfig struct {
	// DefaultEngine is the engine used by eval.
	DefaultEngine string
	// Timeout bounds each evaluation.
	Timeout time.Duration
	// MaxDigits bounds operand length; 0 disables the check.
	MaxDigits int
	// Dump prints the two's-complement words of each result.
	Dump bool
	// Recorder, when set, receives one observation per evaluation.
	Recorder orchestration.Recorder
}

// REPL is an interactive calculator session.
type REPL struct {
	config        REPLConfig
	factory       engine.Factory
	currentEngine string
	last          string
	in            io.Reader
	out           io.Writer
}

// NewREPL returns a session reading from stdin and writing to stdout.
func NewREPL(factory engine.Factory, config REPLConfig) *REPL {
	current := config.DefaultEngine
	if _, err := factory.Get(current); err != nil {
		if names := factory.List(); len(names) > 0 {
			current = names[0]
		}
	}
	return &REPL{
		config:        config,
		factory:       factory,
		currentEngine: current,
		in:            os.Stdin,
		out:           os.Stdout,
	}
}

// SetInput replaces the input reader.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput replaces the output writer.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Last returns the previous result, or "" before the first evaluation.
func (r *REPL) Last() string { return r.last }

// Start runs the session until exit or EOF. ctx cancellation ends the
// session after the current command.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for ctx.Err() == nil {
		fmt.Fprint(r.out, ui.ColorGreen()+"big> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				if strings.TrimSpace(input) != "" {
					r.processCommand(ctx, strings.TrimSpace(input))
				}
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !r.processCommand(ctx, input) {
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sBig Integer Calculator - Interactive Mode%s            %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<a> <op> <b>%s     - Evaluate with the current engine (ops: %s)\n", ui.ColorYellow(), ui.ColorReset(), opSymbols())
	fmt.Fprintf(r.out, "  %sneg <a>%s          - Negate\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %seval <expr>%s      - Same as typing the expression\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %scompare <expr>%s   - Evaluate on every engine and compare\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sengine <name>%s    - Change engine (%s)\n", ui.ColorYellow(), ui.ColorReset(), strings.Join(r.factory.List(), ", "))
	fmt.Fprintf(r.out, "  %slist%s             - List available engines\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sdump%s             - Toggle the word dump of results\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s           - Display current settings\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s             - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s      - Leave interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Use %s%s%s as an operand to reuse the previous result.\n", ui.ColorYellow(), AnsToken, ui.ColorReset())
}

func opSymbols() string {
	var syms []string
	for _, op := range engine.Ops() {
		if !op.Unary() {
			syms = append(syms, op.Symbol())
		}
	}
	return strings.Join(syms, " ")
}

// processCommand runs one line of input. It returns false on exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])
	rest := strings.TrimSpace(input[len(fields[0]):])

	switch cmd {
	case "eval", "e":
		r.cmdEval(ctx, rest)
	case "compare", "cmp":
		r.cmdCompare(ctx, rest)
	case "engine":
		r.cmdEngine(fields[1:])
	case "list", "ls":
		r.cmdList()
	case "dump":
		r.cmdDump()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		r.cmdEval(ctx, input)
	}
	return true
}

// parse resolves ans references and validates the expression.
func (r *REPL) parse(s string) (engine.Expression, error) {
	if s == "" {
		return engine.Expression{}, fmt.Errorf("%w: empty expression", engine.ErrInvalidExpression)
	}
	expr, err := engine.ParseExpression(s)
	if err != nil {
		return engine.Expression{}, err
	}
	for _, operand := range []*string{&expr.A, &expr.B} {
		if strings.EqualFold(*operand, AnsToken) {
			if r.last == "" {
				return engine.Expression{}, fmt.Errorf("%w: no previous result for %s", engine.ErrInvalidExpression, AnsToken)
			}
			*operand = r.last
		}
	}
	return expr, expr.Validate(r.config.MaxDigits)
}

func (r *REPL) run(ctx context.Context, engines []engine.Engine, expr engine.Expression) []orchestration.EvaluationResult {
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()
	var opts []orchestration.ExecOption
	if r.config.Recorder != nil {
		opts = append(opts, orchestration.WithRecorder(r.config.Recorder))
	}
	return orchestration.ExecuteEvaluations(ctx, engines, expr, orchestration.NullProgressReporter{}, io.Discard, opts...)
}

func (r *REPL) cmdEval(ctx context.Context, s string) {
	expr, err := r.parse(s)
	if err != nil {
		r.printError(err)
		return
	}
	eng, err := r.factory.Get(r.currentEngine)
	if err != nil {
		r.printError(err)
		return
	}

	res := r.run(ctx, []engine.Engine{eng}, expr)[0]
	if res.Err != nil {
		r.printError(res.Err)
		return
	}
	r.last = res.Result.Value

	fmt.Fprintf(r.out, "  Time:   %s%s%s\n", ui.ColorGreen(), CLIResultPresenter{}.FormatDuration(res.Duration), ui.ColorReset())
	fmt.Fprintf(r.out, "  Bits:   %s%d%s  Words: %s%d%s  Digits: %s%d%s\n",
		ui.ColorCyan(), res.Result.Bits, ui.ColorReset(),
		ui.ColorCyan(), res.Result.Words, ui.ColorReset(),
		ui.ColorCyan(), format.DigitCount(res.Result.Value), ui.ColorReset())
	if short, truncated := format.TruncateDigits(res.Result.Value, TruncationLimit, DisplayEdges); truncated {
		fmt.Fprintf(r.out, "  = %s%s%s (truncated)\n", ui.ColorGreen(), short, ui.ColorReset())
	} else {
		fmt.Fprintf(r.out, "  = %s%s%s\n", ui.ColorGreen(), res.Result.Value, ui.ColorReset())
	}
	if r.config.Dump {
		_ = DisplayDump(res.Result.Value, r.out)
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdCompare(ctx context.Context, s string) {
	expr, err := r.parse(s)
	if err != nil {
		r.printError(err)
		return
	}
	results := r.run(ctx, r.factory.GetAll(), expr)
	orchestration.SortResults(results)

	fmt.Fprintf(r.out, "\n%sComparison for %s:%s\n", ui.ColorBold(), FormatExpression(expr), ui.ColorReset())
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n", ui.ColorCyan(), ui.ColorReset())
	best, ok, _ := orchestration.Consistent(results)
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(r.out, "  %s%-16s%s: %sError - %v%s\n",
				ui.ColorYellow(), res.Engine, ui.ColorReset(), ui.ColorRed(), res.Err, ui.ColorReset())
			continue
		}
		status := ui.ColorGreen() + "✓" + ui.ColorReset()
		if res.Result != best.Result {
			status = ui.ColorRed() + "✗ INCONSISTENT" + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "  %s%-16s%s: %s%12s%s %s\n",
			ui.ColorYellow(), res.Engine, ui.ColorReset(),
			ui.ColorCyan(), CLIResultPresenter{}.FormatDuration(res.Duration), ui.ColorReset(), status)
	}
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n\n", ui.ColorCyan(), ui.ColorReset())
	if ok {
		r.last = best.Result.Value
	}
}

func (r *REPL) cmdEngine(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: engine <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available engines: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	name := strings.ToLower(args[0])
	if _, err := r.factory.Get(name); err != nil {
		fmt.Fprintf(r.out, "%sUnknown engine: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Available engines: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	r.currentEngine = name
	fmt.Fprintf(r.out, "Engine changed to: %s%s%s\n", ui.ColorGreen(), name, ui.ColorReset())
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable engines:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.factory.List() {
		marker := "  "
		if name == r.currentEngine {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%s%s\n", marker, ui.ColorYellow(), name, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdDump() {
	r.config.Dump = !r.config.Dump
	status := "disabled"
	if r.config.Dump {
		status = "enabled"
	}
	fmt.Fprintf(r.out, "Word dump: %s%s%s\n", ui.ColorGreen(), status, ui.ColorReset())
}

func (r *REPL) cmdStatus() {
	yesNo := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}
	fmt.Fprintf(r.out, "\n%sCurrent settings:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Engine:      %s%s%s\n", ui.ColorCyan(), r.currentEngine, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:     %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Max digits:  %s%d%s\n", ui.ColorCyan(), r.config.MaxDigits, ui.ColorReset())
	fmt.Fprintf(r.out, "  Word dump:   %s%s%s\n", ui.ColorCyan(), yesNo(r.config.Dump), ui.ColorReset())
	if r.last != "" {
		short, _ := format.TruncateDigits(r.last, 40, 10)
		fmt.Fprintf(r.out, "  %s:         %s%s%s\n", AnsToken, ui.ColorCyan(), short, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) printError(err error) {
	fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
}
