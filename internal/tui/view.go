package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kitout-dev/kitout/internal/reconcile"
	"github.com/kitout-dev/kitout/internal/tui/components"
)

// View renders the current state of the model.
func (m Model) View() string {
	var sections []string

	title := titleStyle.Render(fmt.Sprintf("kitout • %s", m.title))
	sections = append(sections, title)

	progress := components.NewActionProgress(m.total).View(m.completed)
	sections = append(sections, sectionStyle.Render("Progress"), progress)

	listComp := components.NewActionList(m.order, m.actions)
	entries := listComp.Entries()
	if len(entries) > 0 {
		sections = append(sections, sectionStyle.Render("Actions"))
		sections = append(sections, renderActionEntries(entries))
	}

	summary := components.NewSummary(components.SummaryData{
		Total:     m.total,
		Completed: m.completed,
		Finished:  m.finished,
		Cancelled: m.cancelled,
		Probes:    m.probes,
	}).View()
	if strings.TrimSpace(summary) != "" {
		sections = append(sections, sectionStyle.Render("Summary"), summaryStyle.Render(summary))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderActionEntries(entries []components.ActionEntry) string {
	var lines []string
	for _, entry := range entries {
		res := entry.Result
		icon := OutcomeIcon(res.Outcome)
		line := fmt.Sprintf(" %s %s %s", icon, entry.Result.Action.Kind, entry.Result.Action.Target)
		if strings.TrimSpace(res.Message) != "" {
			line = fmt.Sprintf("%s - %s", line, res.Message)
		}
		if res.Duration > 0 {
			line = fmt.Sprintf("%s (%s)", line, res.Duration.Truncate(10*time.Millisecond))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// OutcomeIcon returns the glyph representing an action outcome.
func OutcomeIcon(outcome reconcile.Outcome) string {
	switch outcome {
	case reconcile.OutcomeSuccess:
		return appliedStyle.Render("✓")
	case reconcile.OutcomeFailed:
		return failedStyle.Render("✗")
	case reconcile.OutcomeSkipped:
		return satisfiedStyle.Render("⊘")
	case reconcile.OutcomeWouldApply:
		return wouldApplyStyle.Render("✱")
	default:
		return satisfiedStyle.Render("…")
	}
}
