package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kitout-dev/kitout/internal/store"
)

func newProfilesCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage registered profiles",
		Long: `Profiles are named flag selections kept in the local store. The dashboard
and the refresh command operate on registered profiles.`,
	}

	cmd.AddCommand(newProfilesAddCmd(root))
	cmd.AddCommand(newProfilesListCmd(root))
	cmd.AddCommand(newProfilesShowCmd(root))
	cmd.AddCommand(newProfilesRemoveCmd(root))
	cmd.AddCommand(newProfilesRefreshCmd(root))

	return cmd
}

// openStore loads the profile store and status cache from the user data dir.
func openStore() (*store.Store, *store.StatusCache, error) {
	st, err := store.NewStore(store.DefaultStorePath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load profile store: %w", err)
	}

	cache, err := store.NewStatusCache(store.DefaultCachePath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load status cache: %w", err)
	}

	return st, cache, nil
}
