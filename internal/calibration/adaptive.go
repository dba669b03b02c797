// This file implements adaptive worker candidate generation based on
// hardware characteristics.

package calibration

import (
	"runtime"

	"github.com/agbru/parsum/internal/config"
)

// GenerateWorkerCandidates generates the list of worker counts to benchmark
// based on the number of available CPU cores.
//
// The rationale:
// - Single-core: only one worker makes sense
// - Few cores: test every power of two up to the core count
// - Many cores: extend slightly past the core count to catch cases where
//   oversubscription hides memory stalls
func GenerateWorkerCandidates() []int {
	numCPU := runtime.NumCPU()

	candidates := []int{1}

	switch {
	case numCPU == 1:
		return candidates

	case numCPU <= 4:
		candidates = append(candidates, 2, 4)

	case numCPU <= 8:
		candidates = append(candidates, 2, 4, 8, 12)

	case numCPU <= 16:
		candidates = append(candidates, 2, 4, 8, 16, 24)

	default:
		candidates = append(candidates, 2, 4, 8, 16, 32, 48)
	}

	return candidates
}

// GenerateQuickWorkerCandidates generates a smaller set of worker counts for
// quick auto-calibration at startup.
func GenerateQuickWorkerCandidates() []int {
	numCPU := runtime.NumCPU()

	if numCPU == 1 {
		return []int{1}
	}

	switch {
	case numCPU <= 4:
		return []int{1, numCPU}
	case numCPU <= 8:
		return []int{1, numCPU / 2, numCPU}
	default:
		return []int{1, numCPU / 2, numCPU, numCPU + numCPU/2}
	}
}

// EstimateOptimalWorkers delegates to config.EstimateOptimalWorkers, the
// canonical heuristic used when no benchmark has run.
func EstimateOptimalWorkers() int { return config.EstimateOptimalWorkers() }
