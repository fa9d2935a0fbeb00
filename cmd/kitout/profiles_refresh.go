package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kitout-dev/kitout/internal/store"
)

func newProfilesRefreshCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh [id]",
		Short: "Re-verify registered profiles and update their cached status",
		Long: `Refresh runs a read-only verification for the named profile, or for every
registered profile when no ID is given, and records the result in the
status cache the dashboard reads.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return runProfilesRefresh(cmd, root, id)
		},
	}

	return cmd
}

func runProfilesRefresh(cmd *cobra.Command, root *rootFlags, id string) error {
	st, cache, err := openStore()
	if err != nil {
		return err
	}

	var targets []store.Registered
	if id != "" {
		p, err := st.Get(id)
		if err != nil {
			return err
		}
		targets = []store.Registered{p}
	} else {
		targets = st.List()
	}

	if len(targets) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No profiles registered yet.")
		return nil
	}

	c, err := buildCollaborators(root.verbose, true, true)
	if err != nil {
		return err
	}

	service := newProfileService(c)
	ctx := context.Background()
	useUnicode := supportsUnicode(cmd.OutOrStdout())

	var failures int
	for _, p := range targets {
		outcome, err := service.Verify(ctx, p)
		if err != nil {
			failures++
			fmt.Fprintf(cmd.OutOrStdout(), "%s: verification error: %v\n", p.ID, err)
			continue
		}

		cache.Set(p.ID, store.CachedStatus{
			Status:        outcome.Status,
			LastRun:       time.Now(),
			Summary:       outcome.Summary,
			ActionCount:   outcome.ActionCount,
			FailedActions: outcome.FailedActions,
		})

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n",
			p.ID, formatStatus(outcome.Status, useUnicode), outcome.Summary)
	}

	if err := cache.Save(); err != nil {
		return fmt.Errorf("failed to save status cache: %w", err)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d profiles failed verification", failures, len(targets))
	}

	return nil
}
