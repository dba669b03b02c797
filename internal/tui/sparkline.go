package tui

// blockRamp holds the eight block elements used for sparkline cells, from
// lowest to highest fill.
var blockRamp = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// clampPercent bounds a sample to the 0..100 range the renderers expect.
// CPU and memory samples from the monitor can briefly overshoot 100.
func clampPercent(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

// RingBuffer holds a fixed window of float64 samples, evicting the oldest
// on overflow. The monitor keeps one per plotted series (progress, CPU,
// memory).
type RingBuffer struct {
	data  []float64
	head  int
	count int
}

// NewRingBuffer creates a buffer holding at most capacity samples; a
// non-positive capacity is treated as 1.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = 1
	}
	return &RingBuffer{data: make([]float64, capacity)}
}

// Push records a sample, dropping the oldest one when the window is full.
func (b *RingBuffer) Push(v float64) {
	b.data[b.head] = v
	b.head = (b.head + 1) % len(b.data)
	if b.count < len(b.data) {
		b.count++
	}
}

// Len returns the number of recorded samples.
func (b *RingBuffer) Len() int { return b.count }

// Cap returns the window size.
func (b *RingBuffer) Cap() int { return len(b.data) }

// Last returns the newest sample, or 0 when the buffer is empty.
func (b *RingBuffer) Last() float64 {
	if b.count == 0 {
		return 0
	}
	idx := b.head - 1
	if idx < 0 {
		idx = len(b.data) - 1
	}
	return b.data[idx]
}

// Slice returns the samples oldest-first.
func (b *RingBuffer) Slice() []float64 {
	if b.count == 0 {
		return nil
	}
	out := make([]float64, b.count)
	start := b.head - b.count
	if start < 0 {
		start += len(b.data)
	}
	n := copy(out, b.data[start:min(start+b.count, len(b.data))])
	copy(out[n:], b.data[:b.count-n])
	return out
}

// Resize changes the window size, keeping the newest samples that still
// fit. The monitor calls this on terminal resize.
func (b *RingBuffer) Resize(newCap int) {
	if newCap <= 0 {
		newCap = 1
	}
	if newCap == len(b.data) {
		return
	}
	kept := b.Slice()
	if len(kept) > newCap {
		kept = kept[len(kept)-newCap:]
	}
	b.data = make([]float64, newCap)
	b.head = copy(b.data, kept) % newCap
	b.count = len(kept)
}

// Reset discards all samples.
func (b *RingBuffer) Reset() {
	b.head = 0
	b.count = 0
}

// RenderSparkline maps percentage samples onto block elements, one rune per
// sample.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	runes := make([]rune, len(values))
	for i, v := range values {
		idx := int(clampPercent(v) / 100.0 * 7.0)
		if idx > 7 {
			idx = 7
		}
		runes[i] = blockRamp[idx]
	}
	return string(runes)
}

// brailleDots maps a dot position within a braille cell (column 0-1, row
// 0-3) to its bit in the U+2800 block. The left column carries dots
// 1,2,3,7 and the right column dots 4,5,6,8.
var brailleDots = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// RenderBrailleChart plots percentage samples as a braille dot chart of the
// given character width and row count. Each cell covers 2 dot columns and 4
// dot rows, so the chart resolves width*2 samples; older samples scroll off
// the left edge and the newest sample sits on the right.
func RenderBrailleChart(values []float64, width, rows int) []string {
	if width <= 0 || rows <= 0 || len(values) == 0 {
		return nil
	}

	dotRows := rows * 4
	dotCols := width * 2

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = make([]rune, width)
		for c := range grid[r] {
			grid[r][c] = 0x2800
		}
	}

	// Keep only the newest samples that fit, right-aligned.
	visible := values
	if len(visible) > dotCols {
		visible = visible[len(visible)-dotCols:]
	}
	offset := dotCols - len(visible)

	for i, v := range visible {
		dotCol := offset + i
		// Row 0 is the top of the chart, so high values map to low rows.
		dotRow := dotRows - 1 - int(clampPercent(v)/100.0*float64(dotRows-1))
		if dotRow < 0 {
			dotRow = 0
		}
		if dotRow >= dotRows {
			dotRow = dotRows - 1
		}

		grid[dotRow/4][dotCol/2] |= brailleDots[dotCol%2][dotRow%4]
	}

	lines := make([]string, rows)
	for r := range grid {
		lines[r] = string(grid[r])
	}
	return lines
}
