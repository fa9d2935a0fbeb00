package store

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kitout-dev/kitout/internal/profile"
)

// Registered is a profile the user has registered for dashboard and verify
// workflows: a named flag selection plus an optional catalogue override.
type Registered struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Description  string               `json:"description,omitempty"`
	Flags        profile.FeatureFlags `json:"flags"`
	CatalogPath  string               `json:"catalog_path,omitempty"`
	RegisteredAt time.Time            `json:"registered_at"`

	// Runtime state (not persisted in the store file)
	Status  Status    `json:"-"`
	LastRun time.Time `json:"-"`
}

// Status represents the last known reconcile state of a profile.
type Status string

const (
	StatusUnknown   Status = "unknown"
	StatusSatisfied Status = "satisfied"
	StatusDrifted   Status = "drifted"
	StatusFailed    Status = "failed"
	StatusVerifying Status = "verifying"
	StatusApplying  Status = "applying"
)

// Icon returns the Unicode icon for the status.
func (s Status) Icon() string {
	switch s {
	case StatusSatisfied:
		return "🟢"
	case StatusDrifted:
		return "🟡"
	case StatusFailed:
		return "🔴"
	default:
		return "⚪"
	}
}

// IconFallback returns an ASCII fallback when Unicode is not supported.
func (s Status) IconFallback() string {
	switch s {
	case StatusSatisfied:
		return "[OK]"
	case StatusDrifted:
		return "[!!]"
	case StatusFailed:
		return "[XX]"
	default:
		return "[??]"
	}
}

// Color returns the Lipgloss color for the status.
func (s Status) Color() lipgloss.Color {
	switch s {
	case StatusSatisfied:
		return lipgloss.Color("42") // green
	case StatusDrifted:
		return lipgloss.Color("226") // yellow
	case StatusFailed:
		return lipgloss.Color("196") // red
	default:
		return lipgloss.Color("250") // light gray
	}
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// storeFile is the JSON file format for the profile store.
type storeFile struct {
	Version  string       `json:"version"`
	Profiles []Registered `json:"profiles"`
}

// CachedStatus stores verify/apply outcome metadata for a profile.
type CachedStatus struct {
	Status        Status    `json:"status"`
	LastRun       time.Time `json:"last_run"`
	Summary       string    `json:"summary"`
	ActionCount   int       `json:"action_count"`
	FailedActions []string  `json:"failed_actions,omitempty"`
}

// cacheFile is the JSON file format for the status cache.
type cacheFile struct {
	Version  string                  `json:"version"`
	Statuses map[string]CachedStatus `json:"statuses"`
}
