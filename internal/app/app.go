package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/engine"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/server"
	"github.com/agbru/bigcalc/internal/tui"
	"github.com/agbru/bigcalc/internal/ui"
)

// Application is a configured bigcalc instance.
type Application struct {
	Config    config.AppConfig
	Factory   engine.Factory
	ErrWriter io.Writer

	logger *logging.ZerologAdapter
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory replaces the default engine registry.
func WithFactory(f engine.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// New parses args (args[0] being the program name) into an Application.
// Help requests surface as an error satisfying IsHelpError.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = engine.NewDefaultFactory()
	}

	programName := "bigcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	app.logger = logging.NewLogger(errWriter, "bigcalc")
	return app, nil
}

// Run executes the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	a.setupLogging()
	ui.InitTheme(a.Config.NoColor)

	switch {
	case a.Config.Serve:
		return a.runServer(ctx)
	case a.Config.Interactive:
		return a.runREPL(ctx, out)
	case a.Config.TUI:
		return a.runTUI(ctx)
	default:
		return a.runCalculate(ctx, out)
	}
}

func (a *Application) setupLogging() {
	level, err := zerolog.ParseLevel(a.Config.LogLevel)
	if err != nil || a.Config.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if a.logger == nil {
		a.logger = logging.NewLogger(a.ErrWriter, "bigcalc")
	}
	a.logger.Debug("starting",
		logging.String("version", Version),
		logging.String("engine", a.Config.Engine),
		logging.String("gc_mode", a.Config.GCMode))
}

func (a *Application) runCompletion(out io.Writer) int {
	ops := make([]string, 0, len(engine.Ops()))
	for _, op := range engine.Ops() {
		ops = append(ops, op.String())
	}
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List(), ops); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runServer serves the HTTP API until a termination signal arrives.
func (a *Application) runServer(ctx context.Context) int {
	ctx, stop := SetupSignals(ctx)
	defer stop()

	srv := server.NewServer(a.Factory, a.Config,
		server.WithLogger(logging.NewLogger(a.ErrWriter, "server")),
		server.WithRegistry(metrics.NewRegistry()),
	)
	if err := srv.Start(ctx); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive session. Each evaluation is bounded by the
// configured timeout; a signal ends the whole session.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	ctx, stop := SetupSignals(ctx)
	defer stop()

	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		DefaultEngine: a.Config.Engine,
		Timeout:       a.Config.Timeout,
		MaxDigits:     a.Config.MaxDigits,
		Dump:          a.Config.Dump,
	})
	repl.SetOutput(out)
	repl.Start(ctx)
	if ctx.Err() != nil {
		return apperrors.ExitErrorCanceled
	}
	return apperrors.ExitSuccess
}

func (a *Application) runTUI(ctx context.Context) int {
	ctx, stop := SetupSignals(ctx)
	defer stop()

	return tui.Run(ctx, a.Factory, tui.Config{
		Engine:    a.Config.Engine,
		Timeout:   a.Config.Timeout,
		MaxDigits: a.Config.MaxDigits,
		Version:   Version,
	})
}

// IsHelpError reports whether err comes from -h or --help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
