package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/parsum/internal/progress"
)

// ReductionResult encapsulates the outcome of a single reduction run.
// It serves as the shared domain type between orchestration and presentation
// layers.
type ReductionResult struct {
	// Name is the identifier of the strategy used (e.g., "chunked").
	Name string
	// Sum is the computed total. It is only meaningful when Err is nil.
	Sum int64
	// Duration is the time taken to complete the reduction.
	Duration time.Duration
	// Err contains any error that occurred during the reduction.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	InputSize int
	Workers   int
	Verbose   bool
	Details   bool
	Quiet     bool
}

// ProgressReporter defines the interface for displaying reduction progress.
// This interface decouples the orchestration layer from the presentation
// layer; implementations handle the visual representation (spinner, progress
// bar, TUI) while orchestration focuses on coordinating the reductions.
type ProgressReporter interface {
	// DisplayProgress starts displaying progress updates from the channel.
	// It should be called in a separate goroutine and will run until the
	// progressChan is closed.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving progress updates from reducers.
	//   - numReducers: The number of concurrent reducers being tracked.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numReducers int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
// This allows passing a function directly where a ProgressReporter is expected.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.Update, numReducers int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numReducers int, out io.Writer) {
	f(wg, progressChan, numReducers, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		// Drain channel silently
	}
}

// ResultPresenter defines the interface for presenting reduction results.
// This interface decouples the orchestration layer from presentation concerns,
// allowing different output formats (CLI, TUI) without modifying the
// orchestration logic.
type ResultPresenter interface {
	// PresentComparisonTable displays the comparison summary table.
	PresentComparisonTable(results []ReductionResult, out io.Writer)

	// PresentResult displays the final reduction result.
	PresentResult(result ReductionResult, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler handles reduction errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, limit time.Duration, out io.Writer) int
}
