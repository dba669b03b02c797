package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/parsum/internal/cli"
	"github.com/agbru/parsum/internal/counter"
	apperrors "github.com/agbru/parsum/internal/errors"
	"github.com/agbru/parsum/internal/input"
	"github.com/agbru/parsum/internal/logging"
	"github.com/agbru/parsum/internal/metrics"
	"github.com/agbru/parsum/internal/orchestration"
	"github.com/agbru/parsum/internal/reduce"
)

// reducersToRun resolves the configured strategy selection.
func (a *Application) reducersToRun() []reduce.Reducer {
	return orchestration.GetReducersToRun(a.Config.Algo, a.Factory)
}

// resolveInput materializes the input sequence. A file wins over an inline
// spec, which wins over the generated range 1..N.
func (a *Application) resolveInput() ([]int64, error) {
	switch {
	case a.Config.InputFile != "":
		return input.ReadSequenceFile(a.Config.InputFile)
	case a.Config.DataSpec != "":
		return input.ParseSequence(a.Config.DataSpec)
	default:
		return input.GenerateRange(a.Config.N), nil
	}
}

// runReduce orchestrates the execution of the CLI reduction command.
func (a *Application) runReduce(ctx context.Context, out io.Writer) int {
	data, err := a.resolveInput()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	reducersToRun := a.reducersToRun()

	a.Logger.Debug("starting reduction",
		logging.Int("input_size", len(data)),
		logging.Int("workers", a.Config.Workers),
		logging.String("algo", a.Config.Algo))

	// Skip banner output in quiet mode
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, len(data), out)
		cli.PrintExecutionMode(reducersToRun, out)
	}

	// Choose progress reporter based on quiet mode
	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	opts := reduce.Options{Workers: a.Config.Workers}
	results := orchestration.ExecuteReductions(ctx, reducersToRun, data, opts, progressReporter, progressOut)
	a.recordResults(results)

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}

	code := a.analyzeResultsWithOutput(results, outputCfg, len(data), out)

	if a.Config.Verbose && !a.Config.Quiet {
		a.reportRuntimeStats(out)
	}
	return code
}

// recordResults feeds the per-strategy outcomes into the telemetry
// registry, classifying worker panics separately.
func (a *Application) recordResults(results []orchestration.ReductionResult) {
	for _, res := range results {
		a.Metrics.ObserveReduction(res.Name, res.Duration, res.Err)
		var panicErr *apperrors.PanicError
		if errors.As(res.Err, &panicErr) {
			a.Metrics.RecordWorkerPanic()
			a.Logger.Error("worker panic recovered", res.Err,
				logging.String("strategy", res.Name))
		}
	}
}

// reportRuntimeStats prints process memory statistics and the telemetry
// dump in verbose mode.
func (a *Application) reportRuntimeStats(out io.Writer) {
	snap := metrics.NewMemoryCollector().Snapshot()
	cli.DisplayMemoryStats(snap.HeapAlloc, snap.TotalAlloc, snap.NumGC, snap.PauseTotalNs, out)

	fmt.Fprintln(out)
	if err := a.Metrics.WriteText(out); err != nil {
		a.Logger.Error("telemetry dump failed", err)
	}
}

// runDemo executes the shared-counter demonstration.
func (a *Application) runDemo(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if !a.Config.Quiet {
		fmt.Fprintf(out, "Running shared counter demo with %d workers...\n", counter.DemoWorkers)
	}

	value, err := counter.Demo(ctx)
	if err != nil {
		var panicErr *apperrors.PanicError
		if errors.As(err, &panicErr) {
			a.Metrics.RecordWorkerPanic()
		}
		return apperrors.HandleReductionError(err, a.Config.Timeout, out, cli.CLIColorProvider{})
	}

	a.Metrics.RecordDemoRun()
	if a.Config.Quiet {
		fmt.Fprintln(out, value)
	} else {
		fmt.Fprintf(out, "Final counter value: %d (expected %d)\n", value, counter.DemoWorkers)
	}
	return apperrors.ExitSuccess
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.ReductionResult, outputCfg cli.OutputConfig, inputSize int, out io.Writer) int {
	bestResult := findBestResult(results)

	// Handle quiet mode for single result
	if outputCfg.Quiet && bestResult != nil {
		cli.DisplayQuietResult(out, bestResult.Sum)

		// Save to file if requested
		if err := a.saveResultIfNeeded(bestResult, outputCfg, inputSize); err != nil {
			return apperrors.ExitErrorGeneric
		}

		return apperrors.ExitSuccess
	}

	// Use standard analysis for non-quiet mode
	presOpts := orchestration.PresentationOptions{
		InputSize: inputSize,
		Workers:   a.Config.Workers,
		Verbose:   a.Config.Verbose,
		Details:   a.Config.Details,
	}
	exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, cli.CLIResultPresenter{}, cli.CLIResultPresenter{}, out)

	// Handle file output for non-quiet mode
	if bestResult != nil && exitCode == apperrors.ExitSuccess {
		if err := a.saveResultIfNeeded(bestResult, outputCfg, inputSize); err != nil {
			return apperrors.ExitErrorGeneric
		}
		if outputCfg.OutputFile != "" {
			cli.PrintResultSaved(out, outputCfg.OutputFile)
		}
	}

	return exitCode
}

func findBestResult(results []orchestration.ReductionResult) *orchestration.ReductionResult {
	var bestResult *orchestration.ReductionResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].Duration < bestResult.Duration {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}

func (a *Application) saveResultIfNeeded(res *orchestration.ReductionResult, cfg cli.OutputConfig, inputSize int) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteResultToFile(res.Sum, inputSize, res.Duration, res.Name, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving result: %v\n", err)
		return err
	}
	return nil
}
