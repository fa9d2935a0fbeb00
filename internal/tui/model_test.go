package tui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kitout-dev/kitout/internal/reconcile"
)

func testPlan() reconcile.Plan {
	return reconcile.Plan{Actions: []reconcile.Action{
		{Kind: reconcile.KindInstallPackage, Target: "git"},
		{Kind: reconcile.KindInstallPackage, Target: "python"},
		{Kind: reconcile.KindInstallExtension, Target: "ms-python.python"},
	}}
}

func TestNewModelTracksAllActions(t *testing.T) {
	m := NewModel("apply", testPlan(), false)
	require.Equal(t, 3, m.TotalActions())
	require.Equal(t, 0, m.CompletedActions())
	require.False(t, m.IsFinished())
}

func TestActionCompleteAdvancesProgress(t *testing.T) {
	m := NewModel("apply", testPlan(), false)

	updated, _ := m.Update(ActionCompleteMsg{Result: reconcile.ActionResult{
		Action:  reconcile.Action{Kind: reconcile.KindInstallPackage, Target: "git"},
		Outcome: reconcile.OutcomeSuccess,
		Message: "installed",
	}})
	m = updated.(Model)

	require.Equal(t, 1, m.CompletedActions())
	require.False(t, m.IsFinished())
}

func TestModelFinishesWhenAllActionsComplete(t *testing.T) {
	m := NewModel("apply", testPlan(), false)
	for _, action := range testPlan().Actions {
		updated, _ := m.Update(ActionCompleteMsg{Result: reconcile.ActionResult{
			Action:  action,
			Outcome: reconcile.OutcomeSkipped,
		}})
		m = updated.(Model)
	}

	require.Equal(t, 3, m.CompletedActions())
	require.True(t, m.IsFinished())
}

func TestDuplicateCompletionCountedOnce(t *testing.T) {
	m := NewModel("apply", testPlan(), false)
	result := reconcile.ActionResult{
		Action:  reconcile.Action{Kind: reconcile.KindInstallPackage, Target: "git"},
		Outcome: reconcile.OutcomeSuccess,
	}

	updated, _ := m.Update(ActionCompleteMsg{Result: result})
	m = updated.(Model)
	updated, _ = m.Update(ActionCompleteMsg{Result: result})
	m = updated.(Model)

	require.Equal(t, 1, m.CompletedActions())
}

func TestViewShowsOutcomes(t *testing.T) {
	m := NewModel("apply", testPlan(), false)
	updated, _ := m.Update(ActionCompleteMsg{Result: reconcile.ActionResult{
		Action:  reconcile.Action{Kind: reconcile.KindInstallPackage, Target: "git"},
		Outcome: reconcile.OutcomeFailed,
		Message: "exit status 1",
	}})
	m = updated.(Model)

	view := m.View()
	require.Contains(t, view, "git")
	require.Contains(t, view, "exit status 1")
}

func TestProbeMessagesCollected(t *testing.T) {
	m := NewModel("apply", testPlan(), false)
	updated, _ := m.Update(ProbeMsg{Name: "git", Present: true, Detail: "2.44.0"})
	m = updated.(Model)
	require.Len(t, m.probes, 1)
	require.Equal(t, "git", m.probes[0].Name)
}
