package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kitout-dev/kitout/internal/store"
)

// Update handles incoming messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		ApplyMaxWidth(m.width)

		const minWidth = 80
		const minHeight = 24
		if m.width < minWidth || m.height < minHeight {
			m.showError = true
			m.errorMsg = fmt.Sprintf("Terminal too small (%dx%d). Minimum size: %dx%d",
				m.width, m.height, minWidth, minHeight)
		} else if m.showError && strings.HasPrefix(m.errorMsg, "Terminal too small") {
			m.showError = false
			m.errorMsg = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case InitialStatusLoadedMsg:
		for id, status := range msg.Statuses {
			m.UpdateProfileStatus(id, status.Status, status.LastRun)
		}
		m.sortProfiles()
		return m, nil

	case VerifyCompleteMsg:
		m.UpdateProfileStatus(msg.ProfileID, msg.Outcome.Status, time.Now())
		m.clearOperation(msg.ProfileID)
		m.sortProfiles()
		return m, saveStatusToCacheCmd(m.statusCache, msg.ProfileID, msg.Outcome)

	case VerifyErrorMsg:
		m.UpdateProfileStatus(msg.ProfileID, store.StatusFailed, time.Now())
		m.clearOperation(msg.ProfileID)
		m.errors[msg.ProfileID] = msg.Error.Error()
		m.showError = true
		m.errorMsg = fmt.Sprintf("Verification failed: %s", msg.Error.Error())
		return m, nil

	case VerifyCancelledMsg:
		m.clearOperation(msg.ProfileID)
		return m, nil

	case ApplyCompleteMsg:
		m.UpdateProfileStatus(msg.ProfileID, msg.Outcome.Status, time.Now())
		m.clearOperation(msg.ProfileID)
		m.sortProfiles()

		cmds := []tea.Cmd{saveStatusToCacheCmd(m.statusCache, msg.ProfileID, msg.Outcome)}

		// Re-verify after apply to confirm the machine converged.
		if p, _, ok := m.GetProfileByID(msg.ProfileID); ok {
			ctx, cancel := context.WithCancel(context.Background())
			m.operationCtxs[p.ID] = cancel
			m.loading[p.ID] = true
			m.operations[p.ID] = Operation{Type: "verify", ProfileID: p.ID, StartedAt: time.Now()}
			cmds = append(cmds, verifyCmd(ctx, p, m.service))
		}

		return m, tea.Batch(cmds...)

	case ApplyErrorMsg:
		m.UpdateProfileStatus(msg.ProfileID, store.StatusFailed, time.Now())
		m.clearOperation(msg.ProfileID)
		m.errors[msg.ProfileID] = msg.Error.Error()
		m.showError = true
		m.errorMsg = fmt.Sprintf("Apply failed: %s", msg.Error.Error())
		return m, nil

	case ApplyCancelledMsg:
		m.clearOperation(msg.ProfileID)
		return m, nil

	case RefreshProfileCompleteMsg:
		m.refreshProgress = msg.Index + 1
		m.clearOperation(msg.ProfileID)
		if msg.Outcome != nil {
			m.UpdateProfileStatus(msg.ProfileID, msg.Outcome.Status, time.Now())
			m.statusCache.Set(msg.ProfileID, store.CachedStatus{
				Status:        msg.Outcome.Status,
				LastRun:       time.Now(),
				Summary:       msg.Outcome.Summary,
				ActionCount:   msg.Outcome.ActionCount,
				FailedActions: msg.Outcome.FailedActions,
			})
			if err := m.statusCache.Save(); err != nil {
				m.showError = true
				m.errorMsg = fmt.Sprintf("Failed to save cache: %s", err.Error())
			}
		} else if msg.Error != nil {
			m.UpdateProfileStatus(msg.ProfileID, store.StatusFailed, time.Now())
		}
		if m.refreshProgress >= m.refreshTotal {
			return m, func() tea.Msg { return RefreshCompleteMsg{} }
		}
		return m, nil

	case RefreshCompleteMsg:
		m.refreshing = false
		m.refreshProgress = 0
		m.refreshTotal = 0
		m.sortProfiles()
		return m, nil

	case RefreshCancelledMsg:
		m.refreshing = false
		m.refreshProgress = 0
		m.refreshTotal = 0
		return m, nil

	case ErrorMsg:
		m.showError = true
		m.errorMsg = msg.Message
		return m, nil

	case ClearErrorMsg:
		m.showError = false
		m.errorMsg = ""
		return m, nil
	}

	return m, nil
}

func (m *Model) clearOperation(profileID string) {
	delete(m.loading, profileID)
	delete(m.operations, profileID)
	delete(m.operationCtxs, profileID)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewHelp:
		return m.handleHelpKeys(msg)
	case ViewConfirm:
		return m.handleConfirmKeys(msg)
	default:
		return m, nil
	}
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		m.MoveCursorUp()
		return m, nil

	case "down", "j":
		m.MoveCursorDown()
		return m, nil

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		index := int(msg.String()[0] - '1')
		if index < len(m.profiles) {
			m.SetCursor(index)
		}
		return m, nil

	case "enter", " ":
		if selected, ok := m.GetSelectedProfile(); ok {
			m.selectedID = selected.ID
			m.viewMode = ViewDetail
		}
		return m, nil

	case "r":
		if m.refreshing || len(m.profiles) == 0 {
			return m, nil
		}

		m.refreshing = true
		m.refreshProgress = 0
		m.refreshTotal = len(m.profiles)

		cmds := []tea.Cmd{m.spinner.Tick}
		for i, p := range m.profiles {
			ctx, cancel := context.WithCancel(context.Background())
			m.operationCtxs[p.ID] = cancel
			m.loading[p.ID] = true
			cmds = append(cmds, refreshSingleCmd(ctx, p, m.service, i, len(m.profiles)))
		}

		return m, tea.Batch(cmds...)

	case "?":
		m.viewMode = ViewHelp
		return m, nil

	case "x", "esc":
		if m.showError {
			m.showError = false
			m.errorMsg = ""
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc", "backspace":
		if m.loading[m.selectedID] {
			if op, ok := m.operations[m.selectedID]; ok {
				m.confirmAction = fmt.Sprintf("cancel_%s", op.Type)
				m.confirmProfile = m.selectedID
				m.confirmMessage = fmt.Sprintf("Cancel %s operation?", op.Type)
				m.viewMode = ViewConfirm
				return m, nil
			}
		}
		m.viewMode = ViewList
		m.selectedID = ""
		return m, nil

	case "v", "r":
		p, _, ok := m.GetProfileByID(m.selectedID)
		if !ok || m.loading[p.ID] {
			return m, nil
		}

		ctx, cancel := context.WithCancel(context.Background())
		m.operationCtxs[p.ID] = cancel
		m.loading[p.ID] = true
		m.operations[p.ID] = Operation{Type: "verify", ProfileID: p.ID, StartedAt: time.Now()}

		return m, verifyCmd(ctx, p, m.service)

	case "a":
		p, _, ok := m.GetProfileByID(m.selectedID)
		if !ok || m.loading[p.ID] {
			return m, nil
		}

		m.confirmAction = "apply"
		m.confirmProfile = p.ID
		m.confirmMessage = fmt.Sprintf("Apply profile '%s'?", p.Name)
		m.viewMode = ViewConfirm
		return m, nil

	case "x":
		if m.showError {
			m.showError = false
			m.errorMsg = ""
		}
		return m, nil

	case "?":
		m.viewMode = ViewHelp
		return m, nil
	}
	return m, nil
}

func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q":
		if m.selectedID != "" {
			m.viewMode = ViewDetail
		} else {
			m.viewMode = ViewList
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		action := m.confirmAction
		profileID := m.confirmProfile

		m.confirmAction = ""
		m.confirmProfile = ""
		m.confirmMessage = ""

		switch action {
		case "apply":
			p, _, ok := m.GetProfileByID(profileID)
			if !ok {
				m.viewMode = ViewList
				return m, nil
			}

			ctx, cancel := context.WithCancel(context.Background())
			m.operationCtxs[p.ID] = cancel
			m.loading[p.ID] = true
			m.operations[p.ID] = Operation{Type: "apply", ProfileID: p.ID, StartedAt: time.Now()}

			m.viewMode = ViewDetail
			return m, applyCmd(ctx, p, m.service)

		case "cancel_verify", "cancel_apply":
			if cancel, ok := m.operationCtxs[profileID]; ok {
				cancel()
			}
			m.clearOperation(profileID)

			m.viewMode = ViewDetail
			return m, nil

		default:
			m.viewMode = ViewDetail
			return m, nil
		}

	case "n", "N", "esc":
		m.confirmAction = ""
		m.confirmProfile = ""
		m.confirmMessage = ""

		if m.selectedID != "" {
			m.viewMode = ViewDetail
		} else {
			m.viewMode = ViewList
		}
		return m, nil
	}
	return m, nil
}
