package format

import (
	"fmt"
	"strings"
	"time"
)

// maxETA caps the estimated time remaining so that a near-stalled reduction
// does not report a nonsensical multi-day estimate.
const maxETA = 24 * time.Hour

// rateSmoothing is the exponential smoothing factor applied to the observed
// progress rate. Lower values favor the historical rate over the latest sample.
const rateSmoothing = 0.3

// ProgressState tracks the individual progress of several concurrent reducers
// and aggregates them into a single average value.
type ProgressState struct {
	progresses     []float64
	numReducers int
}

// NewProgressState creates a ProgressState for the given number of reducers.
func NewProgressState(numReducers int) *ProgressState {
	if numReducers < 0 {
		numReducers = 0
	}
	return &ProgressState{
		progresses:     make([]float64, numReducers),
		numReducers: numReducers,
	}
}

// Update records the progress of a single reducer. Values are clamped to the
// [0, 1] range and out-of-range indices are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index < 0 || index >= ps.numReducers {
		return
	}
	if value < 0 {
		value = 0
	} else if value > 1 {
		value = 1
	}
	ps.progresses[index] = value
}

// CalculateAverage returns the mean progress across all reducers, or 0 when
// no reducers are tracked.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numReducers == 0 {
		return 0
	}
	var sum float64
	for _, p := range ps.progresses {
		sum += p
	}
	return sum / float64(ps.numReducers)
}

// ProgressWithETA extends ProgressState with a smoothed progress rate from
// which an estimated time to completion can be derived.
type ProgressWithETA struct {
	*ProgressState
	progressRate float64 // fraction of total work completed per second
	startTime    time.Time
	lastUpdate   time.Time
	lastAverage  float64
}

// NewProgressWithETA creates a progress tracker with ETA estimation for the
// given number of reducers.
func NewProgressWithETA(numReducers int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(numReducers),
		startTime:     now,
		lastUpdate:    now,
	}
}

// UpdateWithETA records the progress of a single reducer, refreshes the
// smoothed progress rate and returns the new average progress together with
// the current ETA.
//
// Parameters:
//   - index: The reducer index; out-of-range indices are ignored.
//   - value: The reducer's progress in the [0, 1] range.
//
// Returns:
//   - float64: The average progress across all reducers.
//   - time.Duration: The estimated time remaining, 0 when unknown.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	avg := p.CalculateAverage()

	now := time.Now()
	elapsed := now.Sub(p.lastUpdate).Seconds()
	if elapsed > 0 && avg > p.lastAverage {
		sample := (avg - p.lastAverage) / elapsed
		if p.progressRate == 0 {
			p.progressRate = sample
		} else {
			p.progressRate = rateSmoothing*sample + (1-rateSmoothing)*p.progressRate
		}
		p.lastUpdate = now
		p.lastAverage = avg
	}

	return avg, p.GetETA()
}

// GetETA returns the estimated time remaining based on the smoothed progress
// rate, capped at 24 hours. It returns 0 when no rate has been observed yet
// or when the work is already complete.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1.0 - p.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	eta := time.Duration(remaining / p.progressRate * float64(time.Second))
	if eta > maxETA {
		return maxETA
	}
	return eta
}

// FormatETA renders an ETA duration in a compact human-readable form such as
// "45s", "2m30s" or "1h15m". Non-positive durations render as "calculating...".
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}

	totalSeconds := int(eta.Round(time.Second).Seconds())
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh%dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	case minutes > 0 && seconds > 0:
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// FormatProgressBarWithETA renders a progress bar of the given width followed
// by the percentage and the formatted ETA.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %.1f%% ETA: %s", ProgressBar(progress, width), progress*100, FormatETA(eta))
}

// ProgressBar renders a textual progress bar of the given length using block
// characters. Progress is clamped to the [0, 1] range.
func ProgressBar(progress float64, length int) string {
	if length <= 0 {
		return ""
	}
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatNumberString inserts thousand separators into a decimal number string.
// A leading minus sign is preserved.
func FormatNumberString(s string) string {
	if s == "" {
		return s
	}
	sign := ""
	if s[0] == '-' {
		sign = "-"
		s = s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	offset := len(s) % 3
	if offset > 0 {
		b.WriteString(s[:offset])
	}
	for i := offset; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}

// FormatBytes renders a byte count using binary units (B, KB, MB, GB).
func FormatBytes(n uint64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
		gb = 1 << 30
	)
	switch {
	case n >= gb:
		return fmt.Sprintf("%.1f GB", float64(n)/gb)
	case n >= mb:
		return fmt.Sprintf("%.1f MB", float64(n)/mb)
	case n >= kb:
		return fmt.Sprintf("%.1f KB", float64(n)/kb)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
