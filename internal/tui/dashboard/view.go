package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kitout-dev/kitout/internal/store"
)

// View renders the current model state.
func (m Model) View() string {
	switch m.viewMode {
	case ViewList:
		return m.renderListView()
	case ViewDetail:
		return m.renderDetailView()
	case ViewHelp:
		return m.renderHelpView()
	case ViewConfirm:
		return m.renderConfirmView()
	default:
		return m.renderListView()
	}
}

func (m Model) renderListView() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var content strings.Builder

	content.WriteString(m.renderHeader())
	content.WriteString("\n")

	if m.showError {
		content.WriteString(errorBannerStyle.Render(m.errorMsg))
		content.WriteString("\n")
	}

	content.WriteString(m.renderProfileList())
	content.WriteString("\n")

	content.WriteString(m.renderFooter())

	return content.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("🧰 Kitout Dashboard")

	counts := m.CountByStatus()
	summary := fmt.Sprintf(
		"%s %d  %s %d  %s %d  %s %d",
		store.StatusSatisfied.Icon(), counts[store.StatusSatisfied],
		store.StatusDrifted.Icon(), counts[store.StatusDrifted],
		store.StatusFailed.Icon(), counts[store.StatusFailed],
		store.StatusUnknown.Icon(), counts[store.StatusUnknown],
	)

	if m.refreshing {
		summary += fmt.Sprintf("  %s Refreshing %d/%d",
			m.spinner.View(), m.refreshProgress, m.refreshTotal)
	}

	return headerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, summary))
}

func (m Model) renderProfileList() string {
	if len(m.profiles) == 0 {
		return m.renderEmptyState()
	}

	var items []string
	for i := range m.profiles {
		items = append(items, m.renderProfileItem(i, i == m.cursor))
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (m Model) renderProfileItem(index int, selected bool) string {
	p := m.profiles[index]

	icon := p.Status.Icon()
	if !m.useUnicode {
		icon = p.Status.IconFallback()
	}
	if m.IsLoading(p.ID) {
		icon = m.spinner.View()
	}

	statusStr := GetStatusStyle(p.Status.String()).Render(icon)
	number := fmt.Sprintf("%d.", index+1)

	name := p.Name
	if name == "" {
		name = p.ID
	}

	desc := p.Description
	if desc == "" {
		if enabled := p.Flags.Enabled(); len(enabled) > 0 {
			desc = "Flags: " + strings.Join(enabled, ", ")
		} else {
			desc = "Core toolchain only"
		}
	}
	if len(desc) > 60 {
		desc = desc[:57] + "..."
	}

	line1 := fmt.Sprintf("%s %s %s", statusStr, number, lipgloss.NewStyle().Bold(true).Render(name))
	line2 := fmt.Sprintf("   %s", lipgloss.NewStyle().Foreground(mutedColor).Render(desc))
	line3 := fmt.Sprintf("   %s", lipgloss.NewStyle().Foreground(mutedColor).Render("Last checked: "+FormatLastRun(p.LastRun)))

	content := lipgloss.JoinVertical(lipgloss.Left, line1, line2, line3)

	if selected {
		return selectedItemStyle.Render(content)
	}
	return itemStyle.Render(content)
}

func (m Model) renderEmptyState() string {
	message := `No profiles registered yet.

To add a profile, use:
  kitout profiles add <name> [flags]`

	return emptyStateStyle.Render(message)
}

func (m Model) renderFooter() string {
	hints := []string{
		"↑/↓: navigate",
		"enter: select",
		"r: refresh",
		"?: help",
	}
	if m.showError {
		hints = append(hints, "x: dismiss error")
	}
	hints = append(hints, "q: quit")

	return footerStyle.Render(strings.Join(hints, "  •  "))
}

func (m Model) renderDetailView() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	selected, _, ok := m.GetProfileByID(m.selectedID)
	if !ok {
		return "Profile not found"
	}

	var content strings.Builder

	content.WriteString(titleStyle.Render(fmt.Sprintf("📋 %s", selected.Name)))
	content.WriteString("\n\n")

	if m.showError {
		content.WriteString(errorBannerStyle.Render(m.errorMsg))
		content.WriteString("\n\n")
	}

	statusIcon := selected.Status.Icon()
	if !m.useUnicode {
		statusIcon = selected.Status.IconFallback()
	}
	content.WriteString(fmt.Sprintf("%s Status: %s",
		GetStatusStyle(selected.Status.String()).Render(statusIcon),
		lipgloss.NewStyle().Bold(true).Render(selected.Status.String())))
	content.WriteString("\n\n")

	content.WriteString(lipgloss.NewStyle().Bold(true).Render("Profile"))
	content.WriteString("\n")
	content.WriteString(fmt.Sprintf("  ID: %s\n", selected.ID))
	if enabled := selected.Flags.Enabled(); len(enabled) > 0 {
		content.WriteString(fmt.Sprintf("  Flags: %s\n", strings.Join(enabled, ", ")))
	} else {
		content.WriteString("  Flags: none (core toolchain)\n")
	}
	if selected.CatalogPath != "" {
		content.WriteString(fmt.Sprintf("  Catalogue: %s\n", selected.CatalogPath))
	}
	content.WriteString(fmt.Sprintf("  Registered: %s\n", selected.RegisteredAt.Format("Jan 2, 2006 15:04")))
	if !selected.LastRun.IsZero() {
		content.WriteString(fmt.Sprintf("  Last Run: %s\n", FormatLastRun(selected.LastRun)))
	}
	content.WriteString("\n")

	if selected.Description != "" {
		content.WriteString(lipgloss.NewStyle().Bold(true).Render("Description"))
		content.WriteString("\n")
		content.WriteString(fmt.Sprintf("  %s\n\n", selected.Description))
	}

	if cached, ok := m.statusCache.Get(selected.ID); ok && cached.Summary != "" {
		content.WriteString(lipgloss.NewStyle().Bold(true).Render("Last Run"))
		content.WriteString("\n")
		content.WriteString(fmt.Sprintf("  %s\n", cached.Summary))
		if cached.ActionCount > 0 {
			content.WriteString(fmt.Sprintf("  Actions: %d total", cached.ActionCount))
			if len(cached.FailedActions) > 0 {
				content.WriteString(fmt.Sprintf(" (%d failed)", len(cached.FailedActions)))
			}
			content.WriteString("\n")
		}
		for _, failed := range cached.FailedActions {
			content.WriteString(fmt.Sprintf("  %s %s\n", statusFailedStyle.Render("✗"), failed))
		}
		content.WriteString("\n")
	}

	if m.IsLoading(selected.ID) {
		if op, ok := m.operations[selected.ID]; ok {
			content.WriteString("\n")
			opMsg := fmt.Sprintf("%s %s in progress...", m.spinner.View(), op.Type)
			content.WriteString(lipgloss.NewStyle().Foreground(primaryColor).Render(opMsg))
			content.WriteString("\n")
		}
	}

	hints := []string{
		"v: verify",
		"a: apply",
		"r: refresh",
		"esc: back",
		"?: help",
		"q: quit",
	}
	footer := footerStyle.Render(strings.Join(hints, "  •  "))

	return lipgloss.JoinVertical(lipgloss.Left, content.String(), "", footer)
}

func (m Model) renderHelpView() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	title := titleStyle.Render("❓ Kitout Dashboard Help")

	helpContent := `
List View:
  ↑/↓, j/k      Navigate up/down
  1-9           Jump to profile by number
  Enter         View profile details
  r             Refresh all profiles
  ?             Toggle this help
  q, Ctrl+C     Quit application

Detail View:
  v             Run verification
  a             Apply profile (with confirmation)
  r             Refresh this profile
  Esc           Back to list
  ?             Toggle this help
  q, Ctrl+C     Quit application

Status Indicators:
  🟢 Satisfied   Machine matches the profile
  🟡 Drifted     Some actions would change the machine
  🔴 Failed      Verification failed or errors occurred
  ⚪ Unknown     Status not yet checked

Tips:
  • Profile status is cached between sessions
  • Failed/drifted profiles are sorted to the top
  • Refresh re-checks actual machine state
`

	helpText := lipgloss.NewStyle().Padding(1, 2).Render(helpContent)
	footer := footerStyle.Render("Press ? or Esc to close")

	return lipgloss.JoinVertical(lipgloss.Left, title, helpText, footer)
}

func (m Model) renderConfirmView() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var message string
	switch m.confirmAction {
	case "cancel_verify":
		message = "⚠️  Cancel verification?"
	case "cancel_apply":
		message = "⚠️  Cancel apply operation?"
	case "apply":
		message = "⚠️  Apply profile changes?\n\nThis will modify your machine."
	default:
		message = "Confirm action?"
	}

	dialogStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(warningColor).
		Padding(1, 2).
		Width(50).
		Align(lipgloss.Center).
		Background(backgroundColor)

	dialog := dialogStyle.Render(
		lipgloss.JoinVertical(
			lipgloss.Center,
			message,
			"",
			lipgloss.NewStyle().Foreground(mutedColor).Render("y = Yes    n = No    Esc = Cancel"),
		),
	)

	centerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center)

	return centerStyle.Render(dialog)
}

// FormatLastRun formats a timestamp to a human-readable relative time.
func FormatLastRun(t time.Time) string {
	if t.IsZero() {
		return "Never"
	}

	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("Jan 2, 2006")
	}
}
