package orchestration

import (
	"time"

	"github.com/agbru/parsum/internal/format"
	"github.com/agbru/parsum/internal/progress"
)

// ProgressAggregator manages multi-reducer progress aggregation.
// It wraps format.ProgressWithETA and provides a higher-level API
// for consuming progress updates from a channel. Both CLI and TUI
// use this to avoid duplicating the aggregation setup and update logic.
type ProgressAggregator struct {
	state       *format.ProgressWithETA
	numReducers int
}

// NewProgressAggregator creates a new aggregator for the given number
// of reducers. Returns nil if numReducers <= 0.
func NewProgressAggregator(numReducers int) *ProgressAggregator {
	if numReducers <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:       format.NewProgressWithETA(numReducers),
		numReducers: numReducers,
	}
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	// ReducerIndex is the index of the reducer that sent the update.
	ReducerIndex int
	// Value is the raw progress value from the update (0.0 to 1.0).
	Value float64
	// AverageProgress is the aggregated average across all reducers.
	AverageProgress float64
	// ETA is the estimated time remaining based on smoothed progress rate.
	ETA time.Duration
}

// Update processes a single progress update and returns the aggregated result.
func (a *ProgressAggregator) Update(update progress.Update) AggregatedProgress {
	avgProgress, eta := a.state.UpdateWithETA(update.ReducerIndex, update.Value)
	return AggregatedProgress{
		ReducerIndex:    update.ReducerIndex,
		Value:           update.Value,
		AverageProgress: avgProgress,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average progress without updating.
// Useful for periodic refresh between updates (e.g., CLI ticker).
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current ETA estimate without updating.
// Useful for periodic refresh between updates (e.g., CLI ticker).
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumReducers returns the number of reducers being tracked.
func (a *ProgressAggregator) NumReducers() int {
	return a.numReducers
}

// IsMultiReducer returns true if tracking more than one reducer.
func (a *ProgressAggregator) IsMultiReducer() bool {
	return a.numReducers > 1
}

// DrainChannel reads all updates from the channel without processing.
// Use this when numReducers <= 0 and updates should be discarded.
func DrainChannel(progressChan <-chan progress.Update) {
	for range progressChan {
	}
}
