package metrics

import "time"

// Throughput describes the processing rate of a finished reduction.
type Throughput struct {
	// Elements is the number of input values processed.
	Elements int
	// Duration is the wall-clock time of the reduction.
	Duration time.Duration
}

// PerSecond returns the processing rate in elements per second.
// Returns 0 when the duration is not positive.
func (t Throughput) PerSecond() float64 {
	if t.Duration <= 0 {
		return 0
	}
	return float64(t.Elements) / t.Duration.Seconds()
}
