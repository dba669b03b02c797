package cli

import (
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/parsum/internal/format"
	"github.com/agbru/parsum/internal/orchestration"
	"github.com/agbru/parsum/internal/progress"
	"github.com/agbru/parsum/internal/ui"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	// 200ms keeps updates readable without flooding the terminal.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows for the decoupling of the `DisplayProgress` function from a
// specific spinner implementation, facilitating easier testing and maintenance.
// It defines the essential controls for a spinner: starting, stopping, and
// updating its status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	//
	// Parameters:
	//   - suffix: The text string to display.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface. This adapter allows the `spinner` library to be used
// within the application's CLI framework.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
//
// Parameters:
//   - suffix: The string to display.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	// Using the same interval as ProgressRefreshRate to synchronize
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress renders a spinner with an aggregated progress bar and ETA
// while reductions are running. It consumes updates from progressChan until
// the channel is closed, refreshing the display on a ticker between updates.
//
// Parameters:
//   - wg: A WaitGroup signaled when display is complete.
//   - progressChan: Channel receiving progress updates from reducers.
//   - numReducers: The number of concurrent reducers being tracked.
//   - out: The writer for progress output.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numReducers int, out io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numReducers)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	sp := newSpinner(spinner.WithWriter(out))
	sp.Start()
	defer sp.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	refresh := func(avgProgress float64, eta time.Duration) {
		sp.UpdateSuffix(" " + format.FormatProgressBarWithETA(avgProgress, eta, ProgressBarWidth))
	}
	refresh(0, 0)

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				refresh(1.0, 0)
				return
			}
			ap := agg.Update(update)
			refresh(ap.AverageProgress, ap.ETA)
		case <-ticker.C:
			refresh(agg.CalculateAverage(), agg.GetETA())
		}
	}
}

// DisplayResult renders the final sum along with optional timing details.
//
// Parameters:
//   - sum: The computed total.
//   - duration: The reduction duration.
//   - opts: The presentation options controlling verbosity.
//   - out: The writer for standard output.
func DisplayResult(sum int64, duration time.Duration, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "\nSum = %s%s%s\n",
		ui.ColorGreen()+ui.ColorBold(), format.FormatNumberString(strconv.FormatInt(sum, 10)), ui.ColorReset())

	if opts.Details || opts.Verbose {
		fmt.Fprintf(out, "\n--- Detailed result analysis ---\n")
		fmt.Fprintf(out, "Input size:       %s elements\n",
			format.FormatNumberString(strconv.Itoa(opts.InputSize)))
		fmt.Fprintf(out, "Workers:          %d\n", opts.Workers)
		fmt.Fprintf(out, "Reduction time:   %s\n", format.FormatExecutionDuration(duration))
		if duration > 0 && opts.InputSize > 0 {
			rate := float64(opts.InputSize) / duration.Seconds()
			fmt.Fprintf(out, "Throughput:       %.0f elements/s\n", rate)
		}
	}
}
