// Package progress defines the progress reporting types shared between the
// reduction strategies and the presentation layers.
package progress

// Update carries a single progress report from one reducer.
type Update struct {
	// ReducerIndex identifies which reducer sent the update (0-based).
	ReducerIndex int
	// Value is the normalized progress (0.0 to 1.0).
	Value float64
}

// Callback receives a normalized progress value (0.0 to 1.0).
// Reducers call it from worker goroutines, so implementations must be
// safe for concurrent use.
type Callback func(value float64)
