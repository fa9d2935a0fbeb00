package dashboard

import (
	"context"

	"github.com/kitout-dev/kitout/internal/store"
)

// ProfileService exposes the minimal operations the dashboard requires to
// verify and apply registered profiles.
type ProfileService interface {
	Verify(ctx context.Context, p store.Registered) (*Outcome, error)
	Apply(ctx context.Context, p store.Registered) (*Outcome, error)
}

// Outcome summarises a verify or apply run for dashboard display.
type Outcome struct {
	Status        store.Status
	Summary       string
	ActionCount   int
	FailedActions []string
}
