package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/parsum/internal/errors"
	"github.com/agbru/parsum/internal/progress"
	"github.com/agbru/parsum/internal/reduce"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of blocking reduction
// goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 8

// tracerName identifies the instrumentation scope for orchestration spans.
const tracerName = "github.com/agbru/parsum/internal/orchestration"

// ExecuteReductions orchestrates the concurrent execution of one or more
// reduction strategies over the same input.
//
// It manages the lifecycle of reduction goroutines, collects their results,
// and coordinates the display of progress updates. Every strategy runs to
// completion even when another one fails, so the comparison table always
// covers the full selection.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - reducers: A slice of strategies to execute.
//   - data: The shared read-only input sequence.
//   - opts: The per-reduction options (worker count).
//   - progressReporter: The progress reporter for displaying updates (use
//     NullProgressReporter for quiet mode).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []ReductionResult: A slice containing the result of each strategy,
//     in the order the reducers were given.
func ExecuteReductions(ctx context.Context, reducers []reduce.Reducer, data []int64, opts reduce.Options, progressReporter ProgressReporter, out io.Writer) []ReductionResult {
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "ExecuteReductions")
	span.SetAttributes(
		attribute.Int("parsum.input_size", len(data)),
		attribute.Int("parsum.workers", opts.Workers),
		attribute.Int("parsum.strategies", len(reducers)),
	)
	defer span.End()

	g, ctx := errgroup.WithContext(ctx)
	results := make([]ReductionResult, len(reducers))
	progressChan := make(chan progress.Update, len(reducers)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(reducers), out)

	for i, r := range reducers {
		idx, reducer := i, r
		g.Go(func() error {
			spanCtx, rSpan := tracer.Start(ctx, "reduce."+reducer.Name())
			report := func(value float64) {
				select {
				case progressChan <- progress.Update{ReducerIndex: idx, Value: value}:
				default:
					// Drop the update rather than stall a worker.
				}
			}
			startTime := time.Now()
			sum, err := reducer.Reduce(spanCtx, report, data, opts)
			results[idx] = ReductionResult{
				Name: reducer.Name(), Sum: sum, Duration: time.Since(startTime), Err: err,
			}
			if err != nil {
				rSpan.SetStatus(codes.Error, err.Error())
			} else {
				rSpan.SetAttributes(attribute.Int64("parsum.sum", sum))
			}
			rSpan.End()
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults processes the results from multiple strategies and
// generates a summary report.
//
// It sorts the results by execution time, validates consistency across
// successful reductions, and displays a comparative table. It handles the
// logic for determining global success or failure based on the individual
// outcomes.
//
// Parameters:
//   - results: The slice of reduction results to analyze.
//   - opts: The presentation options.
//   - presenter: The result presenter for display formatting.
//   - errHandler: The error handler mapping failures to exit codes.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []ReductionResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValidResult *ReductionResult
	var firstError error
	successCount := 0

	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
		} else {
			successCount++
			if firstValidResult == nil {
				firstValidResult = &results[i]
			}
		}
	}

	// Present the comparison table
	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No strategy could complete the reduction.\n")
		return errHandler.HandleError(firstError, 0, out)
	}

	mismatch := false
	for _, res := range results {
		if res.Err == nil && res.Sum != firstValidResult.Sum {
			mismatch = true
			break
		}
	}
	if mismatch {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the results of the strategies.\n")
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(*firstValidResult, opts, out)
	return apperrors.ExitSuccess
}
