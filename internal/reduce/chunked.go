package reduce

import (
	"context"
	"sync"
	"sync/atomic"

	apperrors "github.com/agbru/parsum/internal/errors"
	"github.com/agbru/parsum/internal/parallel"
	"github.com/agbru/parsum/internal/progress"
)

// ChunkedName identifies the chunked strategy in the factory and CLI flags.
const ChunkedName = "chunked"

// ChunkedReducer partitions the input into contiguous chunks of ceil(N/W)
// and sums each chunk on its own goroutine. This is a static partition:
// chunk boundaries are fixed before any worker starts, with no
// work-stealing and no rebalancing. The input is shared read-only, so the
// workers need no synchronization beyond the final join barrier.
type ChunkedReducer struct{}

// Name returns the strategy identifier.
func (ChunkedReducer) Name() string { return ChunkedName }

// Reduce computes the sum of data using opts.Workers parallel chunk
// workers.
//
// Each worker writes its partial sum to a dedicated slot, so the partials
// slice needs no locking; the WaitGroup join is the only barrier, and the
// combiner reads the slots only after it. Once the workers are spawned
// they always run to completion; cancellation is only observed before the
// fork.
func (ChunkedReducer) Reduce(ctx context.Context, report progress.Callback, data []int64, opts Options) (int64, error) {
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

			start, end := chunkBounds(len(data), w, idx)
			partials[idx] = sumRange(data[start:end])
			report(float64(completed.Add(1)) / float64(w))
		}(i)
	}
	wg.Wait()

	if err := collector.Err(); err != nil {
		return 0, apperrors.ReductionError{Strategy: ChunkedName, Cause: err}
	}

	return sumRange(partials), nil
}
