// Package reduce implements the summation strategies: a chunked parallel
// reduction, a strided parallel reduction, and a sequential baseline. All
// strategies compute the arithmetic sum of a signed integer sequence and
// must agree on the result for every valid worker count; the orchestration
// layer cross-checks them.
package reduce

import (
	"context"

	apperrors "github.com/agbru/parsum/internal/errors"
	"github.com/agbru/parsum/internal/progress"
)

// Options configures a single reduction run.
type Options struct {
	// Workers is the number of worker goroutines to spawn. Must be at
	// least 1; parallel strategies with more workers than elements leave
	// the excess workers with empty ranges contributing 0.
	Workers int
}

// Reducer is the contract implemented by every summation strategy.
//
// Reduce blocks until all internal workers have been joined; no partial
// result is ever observable. The input slice is shared read-only across
// workers and must not be mutated for the duration of the call.
type Reducer interface {
	// Name returns the strategy identifier (e.g., "chunked").
	Name() string
	// Reduce computes the sum of data. The report callback receives
	// normalized progress values and may be invoked from worker
	// goroutines.
	Reduce(ctx context.Context, report progress.Callback, data []int64, opts Options) (int64, error)
}

// validateOptions rejects worker counts that would make the static
// partition undefined. Worker count zero is an input validation failure,
// signaled distinctly from any arithmetic result.
func validateOptions(opts Options) error {
	if opts.Workers < 1 {
		return apperrors.ValidationError{Field: "workers", Message: "must be at least 1"}
	}
	return nil
}

// chunkBounds returns the half-open index range [start, end) assigned to
// worker i when n elements are split across w contiguous chunks of
// ceil(n/w). Workers past the end of the data receive an empty range.
func chunkBounds(n, w, i int) (start, end int) {
	chunkSize := (n + w - 1) / w
	start = i * chunkSize
	if start >= n {
		return n, n
	}
	end = start + chunkSize
	if end > n {
		end = n
	}
	return start, end
}

// sumRange is the inner loop shared by all strategies.
func sumRange(data []int64) int64 {
	var total int64
	for _, v := range data {
		total += v
	}
	return total
}

// noopReport is used when the caller does not care about progress.
func noopReport(float64) {}

// normalizeReport guards against a nil callback so strategies never have
// to check.
func normalizeReport(report progress.Callback) progress.Callback {
	if report == nil {
		return noopReport
	}
	return report
}
