// Package counter implements the shared-counter concurrency demo: a fixed
// pool of workers serializing increments of one shared integer through a
// single mutex.
package counter

import (
	"context"
	"sync"

	apperrors "github.com/agbru/parsum/internal/errors"
	"github.com/agbru/parsum/internal/parallel"
)

// DemoWorkers is the fixed worker count of the demo. Each worker
// increments the shared counter exactly once, so a correct execution
// always ends at this value.
const DemoWorkers = 5

// Demo runs the shared-counter demo with DemoWorkers workers and returns
// the final counter value, which is DemoWorkers on every correct
// execution. The call blocks until every worker has been joined.
//
// A worker panicking while holding the lock is unrecoverable for the
// demo: the panic is captured at the worker boundary and returned as a
// *apperrors.PanicError with no partial result.
func Demo(ctx context.Context) (int64, error) {
	return run(ctx, DemoWorkers, nil)
}

// run is the demo body, parameterized for tests. fault, when non-nil, is
// invoked by each worker while it holds the lock.
func run(ctx context.Context, workers int, fault func(worker int)) (int64, error) {
	if workers < 1 {
		return 0, apperrors.ValidationError{Field: "workers", Message: "must be at least 1"}
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var (
		mu        sync.Mutex
		count     int64
		collector parallel.ErrorCollector
		wg        sync.WaitGroup
	)

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(worker int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					collector.SetError(apperrors.NewPanicError(r))
				}
			}()

			mu.Lock()
			defer mu.Unlock()
			if fault != nil {
				fault(worker)
			}
			count++
		}(i)
	}
	wg.Wait()

	if err := collector.Err(); err != nil {
		return 0, apperrors.WrapError(err, "shared counter demo")
	}

	mu.Lock()
	defer mu.Unlock()
	return count, nil
}
