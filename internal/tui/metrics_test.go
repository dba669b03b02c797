package tui

import (
	"strings"
	"testing"
	"time"
)

func TestMetricsModel_UpdateMemStats(t *testing.T) {
	m := NewMetricsModel()

	msg := MemStatsMsg{
		Alloc:        64 << 20,
		HeapInuse:    96 << 20,
		NumGC:        7,
		PauseTotalNs: 1_200_000,
		NumGoroutine: 11,
	}
	m.UpdateMemStats(msg)

	if m.alloc != msg.Alloc {
		t.Errorf("alloc = %d, want %d", m.alloc, msg.Alloc)
	}
	if m.heapInuse != msg.HeapInuse {
		t.Errorf("heapInuse = %d, want %d", m.heapInuse, msg.HeapInuse)
	}
	if m.numGC != msg.NumGC {
		t.Errorf("numGC = %d, want %d", m.numGC, msg.NumGC)
	}
	if m.numGoroutine != msg.NumGoroutine {
		t.Errorf("numGoroutine = %d, want %d", m.numGoroutine, msg.NumGoroutine)
	}
}

func TestMetricsModel_UpdateProgress(t *testing.T) {
	t.Run("forward progress yields a speed", func(t *testing.T) {
		m := NewMetricsModel()
		m.lastUpdate = time.Now().Add(-time.Second)

		m.UpdateProgress(0.4)

		if m.speed <= 0 {
			t.Error("speed should be positive after forward progress")
		}
		if m.lastProgress != 0.4 {
			t.Errorf("lastProgress = %f, want 0.4", m.lastProgress)
		}
	})

	t.Run("speed is exponentially smoothed", func(t *testing.T) {
		m := NewMetricsModel()
		m.lastUpdate = time.Now().Add(-time.Second)

		m.UpdateProgress(0.3)
		first := m.speed
		if first <= 0 {
			t.Fatal("first sample should set a positive speed")
		}

		// A faster second sample must move the smoothed value.
		m.lastUpdate = time.Now().Add(-500 * time.Millisecond)
		m.UpdateProgress(0.8)

		if m.speed <= 0 || m.speed == first {
			t.Errorf("speed = %f, want positive and different from %f", m.speed, first)
		}
	})

	t.Run("sub-interval samples are ignored", func(t *testing.T) {
		m := NewMetricsModel()
		m.UpdateProgress(0.5)

		if m.speed != 0 {
			t.Errorf("speed = %f, want 0 for back-to-back samples", m.speed)
		}
	})

	t.Run("stalled progress leaves speed alone", func(t *testing.T) {
		m := NewMetricsModel()
		m.lastUpdate = time.Now().Add(-time.Second)
		m.lastProgress = 0.5

		m.UpdateProgress(0.5)

		if m.speed != 0 {
			t.Errorf("speed = %f, want 0 when the reduction stalls", m.speed)
		}
	})

	t.Run("sustained sampling stays stable", func(t *testing.T) {
		m := NewMetricsModel()
		for i := range 1000 {
			m.lastUpdate = time.Now().Add(-100 * time.Millisecond)
			m.UpdateProgress(float64(i) / 1000.0)
		}

		if m.speed <= 0 {
			t.Error("speed should stay positive over a long run")
		}
		if m.lastProgress == 0 {
			t.Error("lastProgress should track the run")
		}
	})
}

func TestMetricsModel_View(t *testing.T) {
	m := NewMetricsModel()
	m.SetSize(40, 15)
	m.UpdateMemStats(MemStatsMsg{
		Alloc:        48 << 20,
		HeapInuse:    72 << 20,
		NumGC:        12,
		NumGoroutine: 6,
	})

	view := m.View()
	for _, label := range []string{"Metrics", "Memory", "Heap", "GC Runs", "Speed", "Goroutines", "Progress"} {
		if !strings.Contains(view, label) {
			t.Errorf("view should contain the %q label", label)
		}
	}
	if !strings.Contains(view, "48.0 MB") {
		t.Error("view should render the allocated bytes")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		input uint64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"bytes", 512, "512 B"},
		{"just below a KB", 1023, "1023 B"},
		{"exact KB", 1 << 10, "1.0 KB"},
		{"small input buffer", 5 << 10, "5.0 KB"},
		{"exact MB", 1 << 20, "1.0 MB"},
		{"typical heap", 50 << 20, "50.0 MB"},
		{"just below a GB", 1<<30 - 1, "1024.0 MB"},
		{"large data set", 2 << 30, "2.0 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatBytes(tt.input); got != tt.want {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMetricsModel_SetSize(t *testing.T) {
	m := NewMetricsModel()
	m.SetSize(50, 20)

	if m.width != 50 || m.height != 20 {
		t.Errorf("size = %dx%d, want 50x20", m.width, m.height)
	}
}

func TestFormatMetricCol(t *testing.T) {
	col := formatMetricCol("Heap:", "72.0 MB", 30)
	if !strings.Contains(col, "Heap") {
		t.Error("column should contain the label")
	}
	if !strings.Contains(col, "72.0 MB") {
		t.Error("column should contain the value")
	}
}
