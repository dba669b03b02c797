package calibration

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/agbru/parsum/internal/config"
	apperrors "github.com/agbru/parsum/internal/errors"
	"github.com/agbru/parsum/internal/reduce"
	"github.com/agbru/parsum/internal/ui"
)

const (
	// CalibrationInputSize is the number of elements used for the full
	// calibration benchmark. Large enough that worker overhead is dwarfed
	// by real work.
	CalibrationInputSize = 8 << 20

	// QuickCalibrationInputSize is the smaller input used for the startup
	// auto-calibration pass.
	QuickCalibrationInputSize = 1 << 20

	// calibrationRounds is the number of timed runs per candidate; the best
	// of the rounds is kept to reduce scheduling noise.
	calibrationRounds = 3
)

// calibrationResult holds the measured duration for one worker count.
type calibrationResult struct {
	Workers  int
	Duration time.Duration
	Err      error
}

// calibrationData builds a deterministic input sequence for benchmarking.
func calibrationData(size int) []int64 {
	data := make([]int64, size)
	for i := range data {
		data[i] = int64(i%2001 - 1000)
	}
	return data
}

// benchmarkWorkers times the reducer over the given input for every worker
// candidate, keeping the best round per candidate.
func benchmarkWorkers(ctx context.Context, r reduce.Reducer, data []int64, candidates []int) []calibrationResult {
	results := make([]calibrationResult, 0, len(candidates))
	for _, w := range candidates {
		if ctx.Err() != nil {
			results = append(results, calibrationResult{Workers: w, Err: ctx.Err()})
			continue
		}
		best := calibrationResult{Workers: w, Duration: -1}
		for round := 0; round < calibrationRounds; round++ {
			start := time.Now()
			_, err := r.Reduce(ctx, nil, data, reduce.Options{Workers: w})
			elapsed := time.Since(start)
			if err != nil {
				best = calibrationResult{Workers: w, Err: err}
				break
			}
			if best.Duration < 0 || elapsed < best.Duration {
				best = calibrationResult{Workers: w, Duration: elapsed}
			}
		}
		results = append(results, best)
	}
	return results
}

// pickBest returns the worker count with the shortest successful duration,
// or 0 when every candidate failed.
func pickBest(results []calibrationResult) int {
	best := 0
	var bestDuration time.Duration
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if best == 0 || res.Duration < bestDuration {
			best = res.Workers
			bestDuration = res.Duration
		}
	}
	return best
}

// RunCalibration runs the full worker calibration benchmark, prints the
// summary table, and persists the resulting profile.
//
// Parameters:
//   - ctx: The context bounding the benchmark.
//   - out: The writer for the summary output.
//   - r: The reducer to benchmark; the chunked strategy is the usual choice.
//   - profilePath: The profile file location; empty selects the default.
//
// Returns:
//   - int: An exit code for the process.
func RunCalibration(ctx context.Context, out io.Writer, r reduce.Reducer, profilePath string) int {
	if profilePath == "" {
		profilePath = GetDefaultProfilePath()
	}

	candidates := GenerateWorkerCandidates()
	fmt.Fprintf(out, "Calibrating %s%s%s over %s%d%s worker candidates (%d elements)...\n",
		ui.ColorGreen(), r.Name(), ui.ColorReset(),
		ui.ColorCyan(), len(candidates), ui.ColorReset(), CalibrationInputSize)

	startTime := time.Now()
	data := calibrationData(CalibrationInputSize)
	results := benchmarkWorkers(ctx, r, data, candidates)

	if apperrors.IsContextError(ctx.Err()) {
		return apperrors.HandleReductionError(ctx.Err(), 0, out, nil)
	}

	best := pickBest(results)
	printCalibrationResults(out, results, best)

	if best == 0 {
		fmt.Fprintf(out, "\n%sCalibration failed: no worker count completed successfully.%s\n",
			ui.ColorRed(), ui.ColorReset())
		return apperrors.ExitErrorGeneric
	}

	profile := NewProfile()
	profile.OptimalWorkers = best
	profile.CalibrationInputSize = CalibrationInputSize
	profile.CalibrationTime = time.Since(startTime).Round(time.Millisecond).String()
	if err := profile.SaveProfile(profilePath); err != nil {
		fmt.Fprintf(out, "\n%sWarning: could not save calibration profile: %v%s\n",
			ui.ColorYellow(), err, ui.ColorReset())
	} else {
		fmt.Fprintf(out, "\n%s✓ Profile saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), profilePath, ui.ColorReset())
	}
	return apperrors.ExitSuccess
}

// AutoCalibrate runs a quick benchmark over a reduced candidate set and
// returns the configuration with the measured worker count applied.
//
// Returns the updated configuration and whether calibration succeeded.
func AutoCalibrate(ctx context.Context, cfg config.AppConfig, out io.Writer, r reduce.Reducer) (config.AppConfig, bool) {
	data := calibrationData(QuickCalibrationInputSize)
	results := benchmarkWorkers(ctx, r, data, GenerateQuickWorkerCandidates())

	best := pickBest(results)
	if best == 0 {
		return cfg, false
	}

	cfg.Workers = best
	printCalibrationOutput(cfg, out)
	return cfg, true
}
