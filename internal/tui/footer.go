package tui

import (
	"strings"
)

// FooterModel renders the bottom bar: status indicator and key hints.
type FooterModel struct {
	paused bool
	done   bool
	failed bool
	width  int
}

// NewFooterModel creates a new footer.
func NewFooterModel() FooterModel {
	return FooterModel{}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) { f.width = w }

// SetPaused toggles the paused indicator.
func (f *FooterModel) SetPaused(paused bool) { f.paused = paused }

// SetDone toggles the done indicator.
func (f *FooterModel) SetDone(done bool) { f.done = done }

// SetError marks the session as failed.
func (f *FooterModel) SetError(failed bool) { f.failed = failed }

func (f FooterModel) status() string {
	switch {
	case f.failed:
		return statusErrorStyle.Render("ERROR")
	case f.done:
		return statusDoneStyle.Render("DONE")
	case f.paused:
		return statusPausedStyle.Render("PAUSED")
	default:
		return statusRunningStyle.Render("RUNNING")
	}
}

// View renders the footer.
func (f FooterModel) View() string {
	hints := []struct{ key, desc string }{
		{"q", "quit"},
		{"p", "pause"},
		{"r", "restart"},
		{"↑/↓", "scroll"},
	}

	var b strings.Builder
	b.WriteString(" ")
	b.WriteString(f.status())
	for _, h := range hints {
		b.WriteString("  ")
		b.WriteString(footerKeyStyle.Render(h.key))
		b.WriteString(" ")
		b.WriteString(footerDescStyle.Render(h.desc))
	}
	return b.String()
}
