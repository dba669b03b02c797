package orchestration

import (
	"testing"

	"github.com/agbru/parsum/internal/reduce"
)

// TestGetReducersToRun tests the GetReducersToRun function.
func TestGetReducersToRun(t *testing.T) {
	t.Parallel()
	factory := reduce.NewDefaultFactory()

	t.Run("Single strategy returns one reducer", func(t *testing.T) {
		t.Parallel()
		reducers := GetReducersToRun("chunked", factory)

		if len(reducers) != 1 {
			t.Fatalf("Expected 1 reducer, got %d", len(reducers))
		}
		if reducers[0].Name() != "chunked" {
			t.Errorf("Name = %q, want chunked", reducers[0].Name())
		}
	})

	t.Run("All strategies returns multiple reducers", func(t *testing.T) {
		t.Parallel()
		reducers := GetReducersToRun("all", factory)

		if len(reducers) < 3 {
			t.Errorf("Expected at least 3 reducers for 'all', got %d", len(reducers))
		}
	})

	t.Run("Unknown strategy returns nil", func(t *testing.T) {
		t.Parallel()
		reducers := GetReducersToRun("bogus", factory)

		if reducers != nil {
			t.Errorf("Expected nil for unknown strategy, got %d reducers", len(reducers))
		}
	})
}
