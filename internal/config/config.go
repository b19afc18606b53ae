// Package config provides the configuration management for the bigcalc
// application. It defines the configuration structure, parses command-line
// flags, applies BIGCALC_ environment overrides and validates the result.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/bigcalc/internal/engine"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

const (
	// EnvPrefix is the prefix for all environment variables read by bigcalc.
	EnvPrefix = "BIGCALC_"
)

// Default configuration values.
const (
	// DefaultEngine is the default engine selection.
	DefaultEngine = "native"
	// DefaultTimeout is the default evaluation timeout.
	DefaultTimeout = 1 * time.Minute
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultMaxDigits bounds the length of each decimal operand. Decimal
	// conversion is quadratic; this size parses well within DefaultTimeout.
	DefaultMaxDigits = 20_000
	// DefaultLogLevel is the default zerolog level.
	DefaultLogLevel = "info"
	// DefaultGCMode is the default garbage collector mode.
	DefaultGCMode = "auto"
)

var validGCModes = []string{"auto", "aggressive", "disabled"}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// A and B are the decimal operands; B is a bit count for shifts.
	A, B string
	// Op is the operation name or symbol.
	Op string
	// Expr is an infix expression ("a op b"); it takes precedence over
	// A, Op and B.
	Expr string
	// Engine selects the engine by name, or "all" to compare every engine.
	Engine string
	// Timeout bounds a single evaluation.
	Timeout time.Duration
	// Verbose displays the full value instead of a truncated one.
	Verbose bool
	// Details displays bit length, word count and timing information.
	Details bool
	// ShowValue displays the calculated value section.
	ShowValue bool
	// Quiet prints only the result, for scripting.
	Quiet bool
	// OutputFile, if set, receives the result.
	OutputFile string
	// Dump prints the two's-complement words of the result.
	Dump bool
	// Interactive starts the REPL.
	Interactive bool
	// TUI starts the terminal calculator.
	TUI bool
	// Serve starts the HTTP API.
	Serve bool
	// Port is the listening port in server mode.
	Port string
	// MaxDigits bounds the length of each operand; 0 disables the check.
	MaxDigits int
	// LogLevel is a zerolog level name.
	LogLevel string
	// GCMode is one of auto, aggressive or disabled.
	GCMode string
	// NoColor disables colored output; NO_COLOR is honored as well.
	NoColor bool
	// Completion, if set, prints a completion script for the named shell.
	Completion string
}

// Expression builds the expression described by the configuration.
func (c AppConfig) Expression() (engine.Expression, error) {
	if c.Expr != "" {
		return engine.ParseExpression(c.Expr)
	}
	op, err := engine.ParseOp(c.Op)
	if err != nil {
		return engine.Expression{}, fmt.Errorf("%w: %v", engine.ErrInvalidExpression, err)
	}
	return engine.Expression{Op: op, A: c.A, B: c.B}, nil
}

// needsExpression reports whether the selected mode evaluates a single
// expression from the command line.
func (c AppConfig) needsExpression() bool {
	return !c.Interactive && !c.TUI && !c.Serve && c.Completion == ""
}

// Validate checks the semantic consistency of the configuration.
//
// Parameters:
//   - availableEngines: The registered engine names.
//
// Returns:
//   - error: A ConfigError describing the first problem found, or nil.
func (c AppConfig) Validate(availableEngines []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.MaxDigits < 0 {
		return apperrors.NewConfigError("max-digits cannot be negative: %d", c.MaxDigits)
	}
	if c.Engine != "all" && !slices.Contains(availableEngines, c.Engine) {
		return apperrors.NewConfigError("unrecognized engine: '%s'. Valid engines are: 'all' or [%s]", c.Engine, strings.Join(availableEngines, ", "))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("invalid log level %q", c.LogLevel)
	}
	if !slices.Contains(validGCModes, c.GCMode) {
		return apperrors.NewConfigError("invalid gc mode %q, want one of [%s]", c.GCMode, strings.Join(validGCModes, ", "))
	}
	if !c.needsExpression() {
		return nil
	}
	if c.Expr == "" && c.A == "" {
		return apperrors.NewConfigError("nothing to evaluate: pass -expr or -a/-op/-b, or choose -interactive, -tui or -serve")
	}
	if _, err := c.Expression(); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	return nil
}

// ParseConfig parses the command-line arguments into an AppConfig, applies
// environment overrides for flags that were not set, and validates the
// result.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: The command-line arguments without the program name.
//   - errorWriter: Receives parsing errors and usage information.
//   - availableEngines: The registered engine names.
//
// Returns:
//   - AppConfig: The populated configuration.
//   - error: flag.ErrHelp, a flag parsing error, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableEngines []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	engineHelp := fmt.Sprintf("Engine to use: 'all' or one of [%s].", strings.Join(availableEngines, ", "))

	config := AppConfig{}
	fs.StringVar(&config.A, "a", "", "First operand (decimal).")
	fs.StringVar(&config.B, "b", "", "Second operand (decimal, or bit count for shifts).")
	fs.StringVar(&config.Op, "op", "add", "Operation: add sub mul div mod lsh rsh or and cmp neg, or its symbol.")
	fs.StringVar(&config.Expr, "expr", "", "Infix expression such as \"12 * -7\" (overrides -a/-op/-b).")
	fs.StringVar(&config.Engine, "engine", DefaultEngine, engineHelp)
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for an evaluation.")
	fs.BoolVar(&config.Verbose, "v", false, "Display the full value of the result.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Alias for -v.")
	fs.BoolVar(&config.Details, "d", false, "Display bit length, word count and timing details.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.BoolVar(&config.ShowValue, "c", false, "Display the calculated value (shorthand).")
	fs.BoolVar(&config.ShowValue, "calculate", false, "Display the calculated value.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - print only the result.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the result.")
	fs.BoolVar(&config.Dump, "dump", false, "Print the two's-complement words of the result.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start in interactive REPL mode.")
	fs.BoolVar(&config.TUI, "tui", false, "Start the terminal calculator.")
	fs.BoolVar(&config.Serve, "serve", false, "Start the HTTP API.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on with -serve.")
	fs.IntVar(&config.MaxDigits, "max-digits", DefaultMaxDigits, "Maximum operand length in digits (0 for no limit).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: trace, debug, info, warn, error.")
	fs.StringVar(&config.GCMode, "gc-mode", DefaultGCMode, "Garbage collector control: auto, aggressive, disabled.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.Completion, "completion", "", "Generate shell completion script (bash, zsh, fish, powershell).")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	if err := applyEnvOverrides(&config, fs); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, err
	}

	config.Engine = strings.ToLower(config.Engine)
	config.LogLevel = strings.ToLower(config.LogLevel)
	if err := config.Validate(availableEngines); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, err
	}
	return config, nil
}
