package tui

import "github.com/charmbracelet/lipgloss"

// Outcome styling shares the dashboard palette so apply, verify, and the
// dashboard read as one tool.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginTop(1)

	appliedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failedStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	satisfiedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	wouldApplyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	summaryStyle    = lipgloss.NewStyle().MarginTop(1)
)
