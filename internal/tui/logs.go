package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/parsum/internal/config"
	"github.com/agbru/parsum/internal/format"
	"github.com/agbru/parsum/internal/orchestration"
)

// logProgressStep is the minimum progress delta between two logged
// entries for the same reducer, keeping the log readable under floods.
const logProgressStep = 0.10

// LogsModel is the scrollable event log on the left of the dashboard.
type LogsModel struct {
	entries      []string
	reducerNames []string
	lastLogged   []float64
	offset       int
	follow       bool
	keymap       KeyMap
	width        int
	height       int
}

// NewLogsModel creates a new log panel for the given reducer names.
func NewLogsModel(reducerNames []string) LogsModel {
	return LogsModel{
		reducerNames: reducerNames,
		lastLogged:   make([]float64, len(reducerNames)),
		follow:       true,
		keymap:       DefaultKeyMap(),
	}
}

// SetSize updates dimensions.
func (l *LogsModel) SetSize(w, h int) {
	l.width = w
	l.height = h
}

// Reset clears the log and restores follow mode.
func (l *LogsModel) Reset() {
	l.entries = nil
	l.lastLogged = make([]float64, len(l.reducerNames))
	l.offset = 0
	l.follow = true
	l.add(logTimeStyle.Render("session restarted"))
}

// AddExecutionConfig logs the run parameters at session start.
func (l *LogsModel) AddExecutionConfig(cfg config.AppConfig) {
	l.add(fmt.Sprintf("%s strategies=%s workers=%s timeout=%s",
		logTimeStyle.Render(timestamp()),
		logAlgoStyle.Render(cfg.Algo),
		logProgressStyle.Render(fmt.Sprintf("%d", cfg.Workers)),
		logProgressStyle.Render(cfg.Timeout.String())))
}

// AddProgressEntry logs a progress update, throttled per reducer.
func (l *LogsModel) AddProgressEntry(msg ProgressMsg) {
	idx := msg.ReducerIndex
	if idx < 0 || idx >= len(l.lastLogged) {
		return
	}
	if msg.Value < 1.0 && msg.Value-l.lastLogged[idx] < logProgressStep {
		return
	}
	l.lastLogged[idx] = msg.Value

	name := fmt.Sprintf("#%d", idx)
	if idx < len(l.reducerNames) {
		name = l.reducerNames[idx]
	}
	l.add(fmt.Sprintf("%s %s %s",
		logTimeStyle.Render(timestamp()),
		logAlgoStyle.Render(fmt.Sprintf("%-10s", name)),
		logProgressStyle.Render(fmt.Sprintf("%5.1f%%", msg.Value*100))))
}

// AddResults logs the per-strategy comparison outcome.
func (l *LogsModel) AddResults(results []orchestration.ReductionResult) {
	for _, res := range results {
		if res.Err != nil {
			l.add(fmt.Sprintf("%s %s %s",
				logTimeStyle.Render(timestamp()),
				logAlgoStyle.Render(fmt.Sprintf("%-10s", res.Name)),
				logErrorStyle.Render("failed: "+res.Err.Error())))
			continue
		}
		l.add(fmt.Sprintf("%s %s %s in %s",
			logTimeStyle.Render(timestamp()),
			logAlgoStyle.Render(fmt.Sprintf("%-10s", res.Name)),
			logSuccessStyle.Render("done"),
			format.FormatExecutionDuration(res.Duration)))
	}
}

// AddFinalResult logs the cross-checked sum.
func (l *LogsModel) AddFinalResult(msg FinalResultMsg) {
	l.add(fmt.Sprintf("%s %s %s (%d elements, %s)",
		logTimeStyle.Render(timestamp()),
		logSuccessStyle.Render("Sum ="),
		logSuccessStyle.Render(format.FormatNumberString(fmt.Sprintf("%d", msg.Result.Sum))),
		msg.Opts.InputSize,
		format.FormatExecutionDuration(msg.Result.Duration)))
}

// AddError logs a fatal error.
func (l *LogsModel) AddError(msg ErrorMsg) {
	l.add(fmt.Sprintf("%s %s",
		logTimeStyle.Render(timestamp()),
		logErrorStyle.Render("error: "+msg.Err.Error())))
}

// Update handles scroll key messages.
func (l *LogsModel) Update(msg tea.KeyMsg) {
	page := l.height - 3
	if page < 1 {
		page = 1
	}
	switch {
	case key.Matches(msg, l.keymap.Up):
		l.scrollBy(-1)
	case key.Matches(msg, l.keymap.Down):
		l.scrollBy(1)
	case key.Matches(msg, l.keymap.PageUp):
		l.scrollBy(-page)
	case key.Matches(msg, l.keymap.PageDown):
		l.scrollBy(page)
	}
}

func (l *LogsModel) scrollBy(delta int) {
	l.offset += delta
	maxOffset := len(l.entries) - 1
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.offset < 0 {
		l.offset = 0
	}
	if l.offset > maxOffset {
		l.offset = maxOffset
	}
	// Re-engage follow mode only when scrolled back to the bottom.
	l.follow = l.offset == maxOffset
}

func (l *LogsModel) add(entry string) {
	l.entries = append(l.entries, entry)
	if l.follow {
		l.offset = len(l.entries) - 1
	}
}

// renderToHeight renders the log panel at exactly the given outer height.
func (l LogsModel) renderToHeight(height int) string {
	inner := height - 2
	if inner < 1 {
		inner = 1
	}

	visible := l.entries
	end := l.offset + 1
	if end > len(visible) {
		end = len(visible)
	}
	start := end - inner
	if start < 0 {
		start = 0
	}
	window := visible[start:end]

	var b strings.Builder
	b.WriteString(" ")
	b.WriteString(titleStyle.Render("Events"))
	for _, e := range window {
		b.WriteString("\n ")
		b.WriteString(e)
	}

	return panelStyle.
		Width(l.width - 2).
		Height(inner).
		Render(b.String())
}

func timestamp() string {
	return time.Now().Format("15:04:05")
}
