package dashboard

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kitout-dev/kitout/internal/store"
)

// loadInitialStatusCmd loads cached statuses for the registered profiles.
func loadInitialStatusCmd(profiles []store.Registered, cache *store.StatusCache) tea.Cmd {
	return func() tea.Msg {
		statuses := make(map[string]store.CachedStatus)
		for _, p := range profiles {
			if cached, ok := cache.Get(p.ID); ok {
				statuses[p.ID] = cached
			}
		}
		return InitialStatusLoadedMsg{Statuses: statuses}
	}
}

// verifyCmd runs verification for a profile asynchronously.
func verifyCmd(ctx context.Context, p store.Registered, svc ProfileService) tea.Cmd {
	return func() tea.Msg {
		outcome, err := svc.Verify(ctx, p)
		if err != nil {
			if ctx.Err() != nil {
				return VerifyCancelledMsg{ProfileID: p.ID}
			}
			return VerifyErrorMsg{ProfileID: p.ID, Error: err}
		}
		if outcome == nil {
			return VerifyErrorMsg{ProfileID: p.ID, Error: fmt.Errorf("verification produced no result")}
		}
		return VerifyCompleteMsg{ProfileID: p.ID, Outcome: outcome}
	}
}

// applyCmd runs apply for a profile asynchronously.
func applyCmd(ctx context.Context, p store.Registered, svc ProfileService) tea.Cmd {
	return func() tea.Msg {
		outcome, err := svc.Apply(ctx, p)
		if err != nil {
			if ctx.Err() != nil {
				return ApplyCancelledMsg{ProfileID: p.ID}
			}
			return ApplyErrorMsg{ProfileID: p.ID, Error: err}
		}
		if outcome == nil {
			return ApplyErrorMsg{ProfileID: p.ID, Error: fmt.Errorf("apply produced no result")}
		}
		return ApplyCompleteMsg{ProfileID: p.ID, Outcome: outcome}
	}
}

// refreshSingleCmd verifies a single profile during a refresh-all pass.
func refreshSingleCmd(ctx context.Context, p store.Registered, svc ProfileService, index, total int) tea.Cmd {
	return func() tea.Msg {
		outcome, err := svc.Verify(ctx, p)
		if err != nil {
			if ctx.Err() != nil {
				return RefreshCancelledMsg{}
			}
			return RefreshProfileCompleteMsg{ProfileID: p.ID, Index: index, Total: total, Error: err}
		}
		if outcome == nil {
			return RefreshProfileCompleteMsg{ProfileID: p.ID, Index: index, Total: total, Error: fmt.Errorf("verification produced no result")}
		}
		return RefreshProfileCompleteMsg{ProfileID: p.ID, Index: index, Total: total, Outcome: outcome}
	}
}

// saveStatusToCacheCmd persists an outcome to the status cache.
func saveStatusToCacheCmd(cache *store.StatusCache, profileID string, outcome *Outcome) tea.Cmd {
	return func() tea.Msg {
		cache.Set(profileID, store.CachedStatus{
			Status:        outcome.Status,
			LastRun:       time.Now(),
			Summary:       outcome.Summary,
			ActionCount:   outcome.ActionCount,
			FailedActions: outcome.FailedActions,
		})
		if err := cache.Save(); err != nil {
			return ErrorMsg{Message: fmt.Sprintf("Failed to persist status cache: %v", err)}
		}
		return StatusCacheSavedMsg{ProfileID: profileID}
	}
}
