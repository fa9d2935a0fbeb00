package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kitout-dev/kitout/internal/reconcile"
)

func TestActionListPreservesOrder(t *testing.T) {
	actions := map[string]reconcile.ActionResult{
		"install_package:git":    {Action: reconcile.Action{Kind: reconcile.KindInstallPackage, Target: "git"}},
		"install_package:python": {Action: reconcile.Action{Kind: reconcile.KindInstallPackage, Target: "python"}},
	}
	order := []string{"install_package:python", "install_package:git"}

	entries := NewActionList(order, actions).Entries()
	require.Len(t, entries, 2)
	require.Equal(t, "python", entries[0].Result.Action.Target)
	require.Equal(t, "git", entries[1].Result.Action.Target)
}

func TestActionListSkipsUnknownKeys(t *testing.T) {
	entries := NewActionList([]string{"missing"}, map[string]reconcile.ActionResult{}).Entries()
	require.Empty(t, entries)
}

func TestSummaryEmptyWhileRunning(t *testing.T) {
	view := NewSummary(SummaryData{Total: 3, Completed: 1}).View()
	require.Empty(t, view)
}

func TestSummaryShowsProbes(t *testing.T) {
	view := NewSummary(SummaryData{
		Total:     2,
		Completed: 2,
		Finished:  true,
		Probes: []ProbeStatus{
			{Name: "git", Present: true, Detail: "2.44.0"},
			{Name: "terraform", Present: false, Detail: "not found"},
		},
	}).View()

	require.Contains(t, view, "Completed 2/2 actions")
	require.Contains(t, view, "git")
	require.Contains(t, view, "not found")
}

func TestActionProgressShowsCounts(t *testing.T) {
	view := NewActionProgress(4).View(2)
	require.True(t, strings.Contains(view, "2/4 actions"))
}

func TestActionProgressEmptyPlanRendersComplete(t *testing.T) {
	view := NewActionProgress(0).View(0)
	require.Contains(t, view, "0/0 actions")
}
