package config

import "runtime"

// Worker count resolution chain (highest priority first):
//   1. CLI flag (--workers)
//   2. Environment variable (PARSUM_WORKERS)
//   3. Cached calibration profile (~/.parsum_calibration.json)
//   4. Adaptive hardware estimation (this file)

// ApplyAdaptiveWorkers fills in the worker count from hardware
// characteristics when the configuration left it at its zero default,
// preserving any user-specified value.
func ApplyAdaptiveWorkers(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateOptimalWorkers()
	}
	return cfg
}

// EstimateOptimalWorkers provides a heuristic estimate of the optimal worker
// count without running benchmarks. Reduction over an in-memory slice is
// memory-bandwidth bound, so very high core counts see diminishing returns.
func EstimateOptimalWorkers() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU <= 2:
		return numCPU
	case numCPU <= 8:
		return numCPU
	case numCPU <= 16:
		return numCPU - 2 // leave headroom for the runtime and display goroutines
	default:
		return 16
	}
}
