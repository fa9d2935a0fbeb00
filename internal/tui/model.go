package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kitout-dev/kitout/internal/reconcile"
	"github.com/kitout-dev/kitout/internal/tui/components"
)

// ActionStartMsg indicates an action has started executing.
type ActionStartMsg struct {
	Target string
	Time   time.Time
}

// ActionCompleteMsg reports that an action has finished execution.
type ActionCompleteMsg struct {
	Result reconcile.ActionResult
}

// ProbeMsg carries the outcome of one validation probe.
type ProbeMsg struct {
	Name    string
	Present bool
	Detail  string
}

type tickMsg struct{}

// Model contains the Bubbletea state for kitout's reconcile progress TUI.
type Model struct {
	title          string
	actions        map[string]reconcile.ActionResult
	order          []string
	probes         []components.ProbeStatus
	total          int
	completed      int
	finished       bool
	cancelled      bool
	nonInteractive bool
}

// NewModel constructs a TUI model for the given plan.
func NewModel(title string, plan reconcile.Plan, nonInteractive bool) Model {
	m := Model{
		title:          title,
		actions:        make(map[string]reconcile.ActionResult),
		order:          make([]string, 0),
		probes:         make([]components.ProbeStatus, 0),
		nonInteractive: nonInteractive,
	}

	for _, action := range plan.Actions {
		m.ensureAction(action)
	}

	return m
}

func actionKey(action reconcile.Action) string {
	return string(action.Kind) + ":" + action.Target
}

// Init starts the Bubbletea program.
func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}

// TotalActions returns the total number of actions tracked by the model.
func (m Model) TotalActions() int {
	return m.total
}

// CompletedActions returns the number of completed actions.
func (m Model) CompletedActions() int {
	return m.completed
}

// IsFinished reports whether execution has completed.
func (m Model) IsFinished() bool {
	return m.finished
}

func (m *Model) ensureAction(action reconcile.Action) string {
	key := actionKey(action)
	if _, exists := m.actions[key]; !exists {
		m.actions[key] = reconcile.ActionResult{Action: action}
		m.order = append(m.order, key)
		m.total++
	}
	return key
}

func (m *Model) markFinishedIfComplete() {
	if m.total > 0 && m.completed >= m.total {
		m.finished = true
	}
}
