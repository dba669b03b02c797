package orchestration

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/agbru/parsum/internal/progress"
	"github.com/agbru/parsum/internal/reduce"
)

// behaviorReducer simulates various reducer behaviors for deadlock testing.
type behaviorReducer struct {
	name     string
	behavior string // "instant", "slow", "error", "progress_flood"
	delay    time.Duration
}

func (b *behaviorReducer) Name() string { return b.name }

func (b *behaviorReducer) Reduce(ctx context.Context, report progress.Callback, data []int64, opts reduce.Options) (int64, error) {
	switch b.behavior {
	case "instant":
		return 1, nil
	case "slow":
		for i := 0; i < 100; i++ {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			default:
			}
			report(float64(i) / 100.0)
			time.Sleep(b.delay)
		}
		return 1, nil
	case "error":
		return 0, fmt.Errorf("simulated error")
	case "progress_flood":
		// Flood the progress channel
		for i := 0; i < 10000; i++ {
			report(float64(i) / 10000.0)
		}
		return 1, nil
	}
	return 1, nil
}

// drainReporter just drains the channel.
type drainReporter struct{}

func (drainReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numReducers int, out io.Writer) {
	defer wg.Done()
	for range progressChan {
	} // drain until closed
}

// TestOrchestrationNoDeadlock_MixedBehaviors verifies that ExecuteReductions
// completes without deadlocking under various reducer behavior combinations.
func TestOrchestrationNoDeadlock_MixedBehaviors(t *testing.T) {
	testCases := []struct {
		name     string
		reducers []reduce.Reducer
	}{
		{
			name: "all_instant",
			reducers: []reduce.Reducer{
				&behaviorReducer{name: "r1", behavior: "instant"},
				&behaviorReducer{name: "r2", behavior: "instant"},
				&behaviorReducer{name: "r3", behavior: "instant"},
			},
		},
		{
			name: "mixed_instant_and_slow",
			reducers: []reduce.Reducer{
				&behaviorReducer{name: "fast", behavior: "instant"},
				&behaviorReducer{name: "slow", behavior: "slow", delay: time.Millisecond},
			},
		},
		{
			name: "mixed_with_errors",
			reducers: []reduce.Reducer{
				&behaviorReducer{name: "ok", behavior: "instant"},
				&behaviorReducer{name: "err", behavior: "error"},
			},
		},
		{
			name: "progress_flood",
			reducers: []reduce.Reducer{
				&behaviorReducer{name: "flood1", behavior: "progress_flood"},
				&behaviorReducer{name: "flood2", behavior: "progress_flood"},
			},
		},
		{
			name: "single_reducer",
			reducers: []reduce.Reducer{
				&behaviorReducer{name: "solo", behavior: "instant"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			done := make(chan struct{})
			go func() {
				defer close(done)
				ExecuteReductions(ctx, tc.reducers, []int64{1, 2, 3}, reduce.Options{Workers: 2}, drainReporter{}, io.Discard)
			}()

			select {
			case <-done:
				// Success - no deadlock
			case <-time.After(10 * time.Second):
				t.Fatal("DEADLOCK: ExecuteReductions did not complete within timeout")
			}
		})
	}
}

// TestOrchestrationNoDeadlock_ContextCancellation verifies that cancelling
// the context during execution does not cause a deadlock.
func TestOrchestrationNoDeadlock_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	reducers := []reduce.Reducer{
		&behaviorReducer{name: "slow1", behavior: "slow", delay: 100 * time.Millisecond},
		&behaviorReducer{name: "slow2", behavior: "slow", delay: 100 * time.Millisecond},
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		ExecuteReductions(ctx, reducers, []int64{1, 2, 3}, reduce.Options{Workers: 2}, drainReporter{}, io.Discard)
	}()

	// Cancel after a short delay
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
		// Success
	case <-time.After(5 * time.Second):
		t.Fatal("DEADLOCK after context cancellation")
	}
}
