package dashboard

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitout-dev/kitout/internal/store"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestVerifyCompleteUpdatesStatusAndCache(t *testing.T) {
	m := newTestModel(t, []store.Registered{{ID: "p1", Name: "Profile 1"}})
	m.loading["p1"] = true
	m.operations["p1"] = Operation{Type: "verify", ProfileID: "p1"}

	updated, cmd := m.Update(VerifyCompleteMsg{
		ProfileID: "p1",
		Outcome:   &Outcome{Status: store.StatusSatisfied, Summary: "all satisfied", ActionCount: 5},
	})
	m = updated.(Model)

	p, _, ok := m.GetProfileByID("p1")
	require.True(t, ok)
	assert.Equal(t, store.StatusSatisfied, p.Status)
	assert.False(t, m.IsLoading("p1"))
	require.NotNil(t, cmd)

	// Run the save command and check the cache was written.
	msg := cmd()
	_, isSaved := msg.(StatusCacheSavedMsg)
	assert.True(t, isSaved)

	cached, ok := m.statusCache.Get("p1")
	require.True(t, ok)
	assert.Equal(t, store.StatusSatisfied, cached.Status)
	assert.Equal(t, "all satisfied", cached.Summary)
	assert.Equal(t, 5, cached.ActionCount)
}

func TestVerifyErrorMarksProfileFailed(t *testing.T) {
	m := newTestModel(t, []store.Registered{{ID: "p1", Name: "Profile 1"}})
	m.loading["p1"] = true

	updated, _ := m.Update(VerifyErrorMsg{ProfileID: "p1", Error: errors.New("choco exploded")})
	m = updated.(Model)

	p, _, ok := m.GetProfileByID("p1")
	require.True(t, ok)
	assert.Equal(t, store.StatusFailed, p.Status)
	assert.True(t, m.showError)
	assert.Contains(t, m.errorMsg, "choco exploded")
}

func TestApplyCompleteTriggersReVerify(t *testing.T) {
	m := newTestModel(t, []store.Registered{{ID: "p1", Name: "Profile 1"}})

	updated, cmd := m.Update(ApplyCompleteMsg{
		ProfileID: "p1",
		Outcome:   &Outcome{Status: store.StatusSatisfied, Summary: "applied"},
	})
	m = updated.(Model)

	// The apply completion schedules a follow-up verification.
	assert.True(t, m.IsLoading("p1"))
	op, ok := m.operations["p1"]
	require.True(t, ok)
	assert.Equal(t, "verify", op.Type)
	require.NotNil(t, cmd)
}

func TestListKeysNavigate(t *testing.T) {
	m := newTestModel(t, []store.Registered{
		{ID: "p1", Name: "Profile 1"},
		{ID: "p2", Name: "Profile 2"},
	})

	updated, _ := m.Update(keyMsg("j"))
	m = updated.(Model)
	assert.Equal(t, 1, m.cursor)

	updated, _ = m.Update(keyMsg("k"))
	m = updated.(Model)
	assert.Equal(t, 0, m.cursor)
}

func TestEnterOpensDetailView(t *testing.T) {
	m := newTestModel(t, []store.Registered{{ID: "p1", Name: "Profile 1"}})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	assert.Equal(t, ViewDetail, m.GetViewMode())
	assert.Equal(t, "p1", m.selectedID)
}

func TestApplyRequiresConfirmation(t *testing.T) {
	m := newTestModel(t, []store.Registered{{ID: "p1", Name: "Profile 1"}})
	m.viewMode = ViewDetail
	m.selectedID = "p1"

	updated, _ := m.Update(keyMsg("a"))
	m = updated.(Model)

	assert.Equal(t, ViewConfirm, m.GetViewMode())
	assert.Equal(t, "apply", m.confirmAction)

	// Declining returns to the detail view without starting anything.
	updated, _ = m.Update(keyMsg("n"))
	m = updated.(Model)
	assert.Equal(t, ViewDetail, m.GetViewMode())
	assert.False(t, m.IsLoading("p1"))
}

func TestConfirmApplyStartsOperation(t *testing.T) {
	m := newTestModel(t, []store.Registered{{ID: "p1", Name: "Profile 1"}})
	m.viewMode = ViewConfirm
	m.selectedID = "p1"
	m.confirmAction = "apply"
	m.confirmProfile = "p1"

	updated, cmd := m.Update(keyMsg("y"))
	m = updated.(Model)

	assert.Equal(t, ViewDetail, m.GetViewMode())
	assert.True(t, m.IsLoading("p1"))
	op, ok := m.operations["p1"]
	require.True(t, ok)
	assert.Equal(t, "apply", op.Type)
	require.NotNil(t, cmd)
}

func TestRefreshAllStartsVerifications(t *testing.T) {
	m := newTestModel(t, []store.Registered{
		{ID: "p1", Name: "Profile 1"},
		{ID: "p2", Name: "Profile 2"},
	})

	updated, cmd := m.Update(keyMsg("r"))
	m = updated.(Model)

	assert.True(t, m.IsRefreshing())
	assert.Equal(t, 2, m.refreshTotal)
	assert.True(t, m.IsLoading("p1"))
	assert.True(t, m.IsLoading("p2"))
	require.NotNil(t, cmd)
}

func TestRefreshProfileCompleteAdvancesProgress(t *testing.T) {
	m := newTestModel(t, []store.Registered{
		{ID: "p1", Name: "Profile 1"},
		{ID: "p2", Name: "Profile 2"},
	})
	m.refreshing = true
	m.refreshTotal = 2

	updated, cmd := m.Update(RefreshProfileCompleteMsg{
		ProfileID: "p1",
		Index:     0,
		Total:     2,
		Outcome:   &Outcome{Status: store.StatusDrifted, Summary: "2 pending"},
	})
	m = updated.(Model)

	assert.Equal(t, 1, m.refreshProgress)
	assert.Nil(t, cmd)

	p, _, ok := m.GetProfileByID("p1")
	require.True(t, ok)
	assert.Equal(t, store.StatusDrifted, p.Status)

	// Last profile completing emits RefreshCompleteMsg.
	updated, cmd = m.Update(RefreshProfileCompleteMsg{
		ProfileID: "p2",
		Index:     1,
		Total:     2,
		Outcome:   &Outcome{Status: store.StatusSatisfied},
	})
	m = updated.(Model)
	require.NotNil(t, cmd)
	_, isComplete := cmd().(RefreshCompleteMsg)
	assert.True(t, isComplete)

	updated, _ = m.Update(RefreshCompleteMsg{})
	m = updated.(Model)
	assert.False(t, m.IsRefreshing())
}

func TestHelpToggles(t *testing.T) {
	m := newTestModel(t, []store.Registered{{ID: "p1", Name: "Profile 1"}})

	updated, _ := m.Update(keyMsg("?"))
	m = updated.(Model)
	assert.Equal(t, ViewHelp, m.GetViewMode())

	updated, _ = m.Update(keyMsg("?"))
	m = updated.(Model)
	assert.Equal(t, ViewList, m.GetViewMode())
}

func TestInitialStatusLoaded(t *testing.T) {
	m := newTestModel(t, []store.Registered{{ID: "p1", Name: "Profile 1"}})

	updated, _ := m.Update(InitialStatusLoadedMsg{
		Statuses: map[string]store.CachedStatus{
			"p1": {Status: store.StatusDrifted, LastRun: time.Now()},
		},
	})
	m = updated.(Model)

	p, _, ok := m.GetProfileByID("p1")
	require.True(t, ok)
	assert.Equal(t, store.StatusDrifted, p.Status)
}
