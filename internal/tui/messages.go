package tui

import (
	"time"

	"github.com/agbru/parsum/internal/orchestration"
)

// ProgressMsg carries an aggregated progress update from the bridge.
type ProgressMsg struct {
	ReducerIndex    int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg signals that the progress channel has been closed.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg carries the per-strategy comparison results.
type ComparisonResultsMsg struct {
	Results []orchestration.ReductionResult
}

// FinalResultMsg carries the winning result after cross-check.
type FinalResultMsg struct {
	Result orchestration.ReductionResult
	Opts   orchestration.PresentationOptions
}

// ErrorMsg carries a fatal reduction error.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// TickMsg drives the periodic refresh of the dashboard.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory sample.
type MemStatsMsg struct {
	Alloc        uint64
	HeapInuse    uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg carries a system-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// ReductionCompleteMsg signals that the whole run has finished.
type ReductionCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg signals that the session context was cancelled.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
