package calibration

import (
	"runtime"
	"testing"
)

func TestGenerateWorkerCandidates(t *testing.T) {
	t.Parallel()
	candidates := GenerateWorkerCandidates()

	// Should always start with a single worker
	if len(candidates) == 0 || candidates[0] != 1 {
		t.Error("Expected candidates to start with 1")
	}

	// Candidates should be positive
	for i, w := range candidates {
		if w < 1 {
			t.Errorf("Candidate at index %d is not positive: %d", i, w)
		}
	}

	// Verify candidate counts are appropriate for CPU count
	numCPU := runtime.NumCPU()
	switch {
	case numCPU == 1:
		if len(candidates) != 1 {
			t.Errorf("For 1 CPU, expected 1 candidate, got %d", len(candidates))
		}
	case numCPU <= 4:
		if len(candidates) < 3 {
			t.Errorf("For %d CPUs, expected at least 3 candidates, got %d", numCPU, len(candidates))
		}
	case numCPU <= 8:
		if len(candidates) < 5 {
			t.Errorf("For %d CPUs, expected at least 5 candidates, got %d", numCPU, len(candidates))
		}
	default:
		if len(candidates) < 6 {
			t.Errorf("For %d CPUs, expected at least 6 candidates, got %d", numCPU, len(candidates))
		}
	}

	t.Logf("Generated %d worker candidates for %d CPUs: %v",
		len(candidates), numCPU, candidates)
}

func TestGenerateQuickWorkerCandidates(t *testing.T) {
	t.Parallel()
	candidates := GenerateQuickWorkerCandidates()

	// Should be no longer than the full list
	full := GenerateWorkerCandidates()
	if len(candidates) > len(full) {
		t.Error("Quick candidates should not be longer than full candidates")
	}

	// Should have at least one candidate
	if len(candidates) < 1 {
		t.Error("Expected at least one candidate")
	}

	for i, w := range candidates {
		if w < 1 {
			t.Errorf("Candidate at index %d is not positive: %d", i, w)
		}
	}

	t.Logf("Generated %d quick worker candidates: %v", len(candidates), candidates)
}

func TestEstimateOptimalWorkers(t *testing.T) {
	t.Parallel()
	workers := EstimateOptimalWorkers()

	if workers < 1 {
		t.Errorf("Estimated worker count should be positive: %d", workers)
	}

	if workers > 64 {
		t.Errorf("Estimated worker count seems too high: %d", workers)
	}

	numCPU := runtime.NumCPU()
	t.Logf("Estimated worker count for %d CPUs: %d", numCPU, workers)
}

// Benchmark candidate generation
func BenchmarkGenerateWorkerCandidates(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = GenerateWorkerCandidates()
	}
}
