package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProbeStatus describes one validation probe outcome for display.
type ProbeStatus struct {
	Name    string
	Present bool
	Detail  string
}

// SummaryData aggregates run state for the summary section.
type SummaryData struct {
	Total     int
	Completed int
	Finished  bool
	Cancelled bool
	Probes    []ProbeStatus
}

// Summary renders the end-of-run summary block.
type Summary struct {
	data SummaryData
}

// NewSummary creates a summary component.
func NewSummary(data SummaryData) Summary {
	return Summary{data: data}
}

var (
	summaryOKStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	summaryWarnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	summaryHeadStyle = lipgloss.NewStyle().Bold(true)
)

// View renders the summary. It is empty until the run finishes.
func (s Summary) View() string {
	if !s.data.Finished {
		return ""
	}

	var lines []string
	if s.data.Cancelled {
		lines = append(lines, summaryWarnStyle.Render(fmt.Sprintf("Cancelled after %d/%d actions", s.data.Completed, s.data.Total)))
	} else {
		lines = append(lines, summaryHeadStyle.Render(fmt.Sprintf("Completed %d/%d actions", s.data.Completed, s.data.Total)))
	}

	for _, probe := range s.data.Probes {
		icon := summaryOKStyle.Render("✓")
		if !probe.Present {
			icon = summaryWarnStyle.Render("✗")
		}
		line := fmt.Sprintf(" %s %s", icon, probe.Name)
		if strings.TrimSpace(probe.Detail) != "" {
			line = fmt.Sprintf("%s (%s)", line, probe.Detail)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
