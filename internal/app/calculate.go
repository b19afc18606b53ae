package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/engine"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/memory"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// runCalculate evaluates the expression given on the command line with the
// selected engine, or with every engine when comparing.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	expr, err := a.Config.Expression()
	if err == nil {
		err = expr.Validate(a.Config.MaxDigits)
	}
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		if errors.Is(err, engine.ErrInvalidExpression) {
			return apperrors.ExitErrorInput
		}
		return apperrors.ExitCodeFor(err)
	}

	ctx, cancel := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancel.Cleanup()

	engines, err := orchestration.GetEnginesToRun(a.Config.Engine, a.Factory)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(expr, a.Config.Timeout, out)
		cli.PrintExecutionMode(engines, out)
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	gc := memory.NewGCController(a.Config.GCMode, len(expr.A)+len(expr.B))
	gc.SetLogger(a.logger.Zerolog())
	gc.Begin()
	results := orchestration.ExecuteEvaluations(ctx, engines, expr, reporter, progressOut,
		orchestration.WithLogger(a.logger.Zerolog()))
	gc.End()

	if a.Config.Details && !a.Config.Quiet && gc.Active() {
		s := gc.Stats()
		cli.DisplayMemoryStats(s.HeapAlloc, s.TotalAlloc, s.NumGC, time.Duration(s.PauseTotalNs), out)
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Details:    a.Config.Details,
		ShowValue:  a.Config.ShowValue,
		Dump:       a.Config.Dump,
	}
	return a.analyzeResultsWithOutput(results, expr, outputCfg, out)
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.EvaluationResult, expr engine.Expression, outputCfg cli.OutputConfig, out io.Writer) int {
	if outputCfg.Quiet {
		return a.quietResult(results, expr, outputCfg, out)
	}

	presenter := cli.CLIResultPresenter{}
	exitCode := orchestration.AnalyzeComparisonResults(results, expr, outputCfg.PresentationOptions(), presenter, presenter, out)
	if exitCode != apperrors.ExitSuccess {
		return exitCode
	}

	best, _, _ := orchestration.Consistent(results)
	if err := a.saveResultIfNeeded(best, expr, outputCfg); err != nil {
		return apperrors.ExitErrorGeneric
	}
	if outputCfg.OutputFile != "" {
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), outputCfg.OutputFile, ui.ColorReset())
	}
	return exitCode
}

// quietResult prints the bare value. Failures and disagreements go to the
// error writer so that standard output stays parseable.
func (a *Application) quietResult(results []orchestration.EvaluationResult, expr engine.Expression, outputCfg cli.OutputConfig, out io.Writer) int {
	best, ok, consistent := orchestration.Consistent(results)
	if !ok {
		return cli.CLIResultPresenter{}.HandleError(orchestration.FirstError(results), 0, a.ErrWriter)
	}
	if !consistent {
		fmt.Fprintf(a.ErrWriter, "Error: the engines disagree on the result\n")
		return apperrors.ExitErrorMismatch
	}

	cli.DisplayQuietResult(out, best.Result)
	if err := a.saveResultIfNeeded(best, expr, outputCfg); err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

func (a *Application) saveResultIfNeeded(res orchestration.EvaluationResult, expr engine.Expression, cfg cli.OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteResultToFile(res.Result, expr, res.Duration, res.Engine, cfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return err
	}
	return nil
}
