package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/parsum/internal/format"
)

// sparklineLabelWidth is the horizontal space reserved for the sparkline
// label and value next to the sample history.
const sparklineLabelWidth = 17

// ChartModel renders the aggregated progress bar, a braille history of
// progress samples, and CPU/MEM sparklines.
type ChartModel struct {
	averageProgress float64
	eta             time.Duration
	progressHistory *RingBuffer
	cpuHistory      *RingBuffer
	memHistory      *RingBuffer
	done            bool
	finalDuration   time.Duration
	width           int
	height          int
}

// NewChartModel creates a new chart panel.
func NewChartModel() ChartModel {
	return ChartModel{
		progressHistory: NewRingBuffer(120),
		cpuHistory:      NewRingBuffer(60),
		memHistory:      NewRingBuffer(60),
	}
}

// SetSize updates dimensions and resizes the sample buffers so the
// sparklines exactly fill the available width.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h

	sampleWidth := w - sparklineLabelWidth
	c.cpuHistory.Resize(sampleWidth)
	c.memHistory.Resize(sampleWidth)
	c.progressHistory.Resize(max(sampleWidth*2, 1))
}

// AddDataPoint records a progress sample.
func (c *ChartModel) AddDataPoint(value, average float64, eta time.Duration) {
	c.averageProgress = average
	c.eta = eta
	c.progressHistory.Push(average * 100)
}

// UpdateSysStats records a system-wide CPU and memory sample.
func (c *ChartModel) UpdateSysStats(cpuPercent, memPercent float64) {
	c.cpuHistory.Push(cpuPercent)
	c.memHistory.Push(memPercent)
}

// SetDone freezes the chart with the total run duration.
func (c *ChartModel) SetDone(d time.Duration) {
	c.done = true
	c.finalDuration = d
}

// Reset clears all samples.
func (c *ChartModel) Reset() {
	c.averageProgress = 0
	c.eta = 0
	c.done = false
	c.finalDuration = 0
	c.progressHistory.Reset()
	c.cpuHistory.Reset()
	c.memHistory.Reset()
}

// renderProgressBar renders the aggregated progress bar with percentage.
// Returns an empty string when the panel is too narrow for a useful bar.
func (c ChartModel) renderProgressBar() string {
	barWidth := c.width - 14
	if barWidth < 10 {
		return ""
	}
	return fmt.Sprintf(" %s %5.1f%%",
		chartBarStyle.Render(format.ProgressBar(c.averageProgress, barWidth)),
		c.averageProgress*100)
}

// renderSparklineRow renders one labeled sparkline row.
func (c ChartModel) renderSparklineRow(label string, history *RingBuffer, style func(...string) string) string {
	last := history.Last()
	prefix := fmt.Sprintf(" %s %5.1f%% ", metricLabelStyle.Render(fmt.Sprintf("%-4s", label)), last)
	return prefix + style(RenderSparkline(history.Slice()))
}

// View renders the chart panel.
func (c ChartModel) View() string {
	var b strings.Builder

	b.WriteString(" ")
	b.WriteString(titleStyle.Render("Progress Chart"))
	b.WriteString("\n")

	if bar := c.renderProgressBar(); bar != "" {
		b.WriteString(bar)
		b.WriteString("\n")
	}

	if c.done {
		b.WriteString(fmt.Sprintf(" Completed in %s", format.FormatExecutionDuration(c.finalDuration)))
	} else {
		b.WriteString(fmt.Sprintf(" ETA: %s", format.FormatETA(c.eta)))
	}

	// Braille history of the aggregated progress, when there is room.
	chartRows := c.height - 8
	if chartRows > 1 && c.progressHistory.Len() > 1 {
		for _, row := range RenderBrailleChart(c.progressHistory.Slice(), c.width-4, chartRows) {
			b.WriteString("\n ")
			b.WriteString(chartBarStyle.Render(row))
		}
	}

	// CPU and MEM sparklines need vertical room.
	if c.height >= 10 {
		b.WriteString("\n")
		b.WriteString(c.renderSparklineRow("CPU", c.cpuHistory, cpuSparklineStyle.Render))
		b.WriteString("\n")
		b.WriteString(c.renderSparklineRow("MEM", c.memHistory, memSparklineStyle.Render))
	}

	return panelStyle.
		Width(c.width - 2).
		Height(c.height - 2).
		Render(b.String())
}
