// Package orchestration coordinates concurrent execution of reduction
// strategies and aggregates results for comparison. It decouples business
// logic from presentation via ProgressReporter and ResultPresenter interfaces.
package orchestration
