package reduce

import (
	"context"
	"sync"
	"sync/atomic"

	apperrors "github.com/agbru/parsum/internal/errors"
	"github.com/agbru/parsum/internal/parallel"
	"github.com/agbru/parsum/internal/progress"
)

// StridedName identifies the strided strategy in the factory and CLI flags.
const StridedName = "strided"

// StridedReducer interleaves the partition: worker i sums the elements at
// indices i, i+W, i+2W, and so on. A deliberately different memory access
// pattern from ChunkedReducer with the same contract, which makes it a
// useful cross-check in comparison mode.
type StridedReducer struct{}

// Name returns the strategy identifier.
func (StridedReducer) Name() string { return StridedName }

// Reduce computes the sum of data using opts.Workers interleaved workers.
func (StridedReducer) Reduce(ctx context.Context, report progress.Callback, data []int64, opts Options) (int64, error) {
	if err := validateOptions(opts); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	report = normalizeReport(report)

	if len(data) == 0 {
		report(1.0)
		return 0, nil
	}

	w := opts.Workers
	partials := make([]int64, w)
	var completed atomic.Int64
	var collector parallel.ErrorCollector
	var wg sync.WaitGroup

	wg.Add(w)
	for i := 0; i < w; i++ {
		go func(idx int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					collector.SetError(apperrors.NewPanicError(r))
				}
			}()

			var sum int64
			for j := idx; j < len(data); j += w {
				sum += data[j]
			}
			partials[idx] = sum
			report(float64(completed.Add(1)) / float64(w))
		}(i)
	}
	wg.Wait()

	if err := collector.Err(); err != nil {
		return 0, apperrors.ReductionError{Strategy: StridedName, Cause: err}
	}

	return sumRange(partials), nil
}
