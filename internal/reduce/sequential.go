package reduce

import (
	"context"

	"github.com/agbru/parsum/internal/progress"
)

// SequentialName identifies the baseline strategy in the factory and CLI flags.
const SequentialName = "sequential"

// sequentialReportInterval is the number of elements between progress
// reports in the sequential strategy. Coarse on purpose: reporting per
// element would dominate the loop.
const sequentialReportInterval = 1 << 16

// SequentialReducer is the single-goroutine baseline. In comparison mode
// its result is the reference the parallel strategies are checked against.
type SequentialReducer struct{}

// Name returns the strategy identifier.
func (SequentialReducer) Name() string { return SequentialName }

// Reduce computes the sum of data in one pass on the calling goroutine.
// opts.Workers is validated for uniformity with the parallel strategies
// but does not influence the computation.
func (SequentialReducer) Reduce(ctx context.Context, report progress.Callback, data []int64, opts Options) (int64, error) {
	if err := validateOptions(opts); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	report = normalizeReport(report)

	var total int64
	for i, v := range data {
		total += v
		if (i+1)%sequentialReportInterval == 0 {
			report(float64(i+1) / float64(len(data)))
		}
	}
	report(1.0)
	return total, nil
}
