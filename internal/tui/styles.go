package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/parsum/internal/ui"
)

// Lipgloss styles shared by the monitor panels. They are package-level so
// the render paths stay allocation-free; initTUIStyles rebuilds them when
// the theme changes.
var (
	panelStyle  lipgloss.Style
	headerStyle lipgloss.Style
	titleStyle  lipgloss.Style

	versionStyle lipgloss.Style
	elapsedStyle lipgloss.Style

	logTimeStyle     lipgloss.Style
	logAlgoStyle     lipgloss.Style
	logProgressStyle lipgloss.Style
	logSuccessStyle  lipgloss.Style
	logErrorStyle    lipgloss.Style

	metricLabelStyle lipgloss.Style
	metricValueStyle lipgloss.Style
	chartBarStyle    lipgloss.Style

	footerKeyStyle  lipgloss.Style
	footerDescStyle lipgloss.Style

	statusRunningStyle lipgloss.Style
	statusPausedStyle  lipgloss.Style
	statusDoneStyle    lipgloss.Style
	statusErrorStyle   lipgloss.Style

	cpuSparklineStyle lipgloss.Style
	memSparklineStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles derives the monitor styles from the active ui theme. Run()
// calls it again after ui.InitTheme so a NO_COLOR environment takes effect.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	accent := lipgloss.NewStyle().Foreground(t.Accent)
	dim := lipgloss.NewStyle().Foreground(t.Dim)

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Background(t.Bg).
		Foreground(t.Text)

	headerStyle = accent.Bold(true).Background(t.Bg).Padding(0, 1)
	titleStyle = accent.Bold(true)

	versionStyle = dim
	elapsedStyle = accent

	logTimeStyle = dim
	logAlgoStyle = lipgloss.NewStyle().Foreground(t.Info)
	logProgressStyle = accent
	logSuccessStyle = lipgloss.NewStyle().Foreground(t.Success)
	logErrorStyle = lipgloss.NewStyle().Foreground(t.Error)

	metricLabelStyle = dim
	metricValueStyle = accent.Bold(true)
	chartBarStyle = accent

	footerKeyStyle = accent.Bold(true)
	footerDescStyle = dim

	statusRunningStyle = logSuccessStyle.Bold(true)
	statusPausedStyle = lipgloss.NewStyle().Foreground(t.Warning).Bold(true)
	statusDoneStyle = accent.Bold(true)
	statusErrorStyle = logErrorStyle.Bold(true)

	cpuSparklineStyle = accent
	memSparklineStyle = lipgloss.NewStyle().Foreground(t.Warning)
}
