package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kitout-dev/kitout/internal/tui/components"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, nil
	case ActionCompleteMsg:
		key := m.ensureAction(msg.Result.Action)
		existing := m.actions[key]
		previouslyCompleted := existing.Outcome != ""
		m.actions[key] = msg.Result
		if !previouslyCompleted {
			m.completed++
			m.markFinishedIfComplete()
		}
		return m, nil
	case ProbeMsg:
		m.probes = append(m.probes, components.ProbeStatus{Name: msg.Name, Present: msg.Present, Detail: msg.Detail})
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancelled = true
			m.finished = true
			return m, nil
		}
	case tea.QuitMsg:
		m.finished = true
		return m, nil
	}

	return m, nil
}
