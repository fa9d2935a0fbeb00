package dashboard

import (
	"github.com/kitout-dev/kitout/internal/store"
)

// ViewMode determines which screen to render.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewHelp
	ViewConfirm
)

// VerifyCompleteMsg indicates verification completed successfully.
type VerifyCompleteMsg struct {
	ProfileID string
	Outcome   *Outcome
}

// VerifyErrorMsg indicates verification failed.
type VerifyErrorMsg struct {
	ProfileID string
	Error     error
}

// VerifyCancelledMsg indicates verification was cancelled.
type VerifyCancelledMsg struct {
	ProfileID string
}

// ApplyCompleteMsg indicates apply completed successfully.
type ApplyCompleteMsg struct {
	ProfileID string
	Outcome   *Outcome
}

// ApplyErrorMsg indicates apply failed.
type ApplyErrorMsg struct {
	ProfileID string
	Error     error
}

// ApplyCancelledMsg indicates apply was cancelled.
type ApplyCancelledMsg struct {
	ProfileID string
}

// RefreshProfileCompleteMsg indicates one profile finished verifying during
// a refresh-all pass.
type RefreshProfileCompleteMsg struct {
	ProfileID string
	Index     int
	Total     int
	Outcome   *Outcome
	Error     error
}

// RefreshCompleteMsg indicates a refresh-all pass finished.
type RefreshCompleteMsg struct{}

// RefreshCancelledMsg indicates a refresh-all pass was cancelled.
type RefreshCancelledMsg struct{}

// InitialStatusLoadedMsg carries cached statuses loaded at startup.
type InitialStatusLoadedMsg struct {
	Statuses map[string]store.CachedStatus
}

// StatusCacheSavedMsg indicates a status was persisted to the cache.
type StatusCacheSavedMsg struct {
	ProfileID string
}

// ErrorMsg indicates a general error occurred.
type ErrorMsg struct {
	Message string
}

// ClearErrorMsg requests error banner dismissal.
type ClearErrorMsg struct{}
