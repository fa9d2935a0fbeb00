package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kitout-dev/kitout/internal/store"
	"github.com/kitout-dev/kitout/internal/tui/dashboard"
)

func newDashboardCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Launch the interactive profile dashboard",
		Long:  `Launch the interactive TUI dashboard to view and manage all registered profiles.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(root)
		},
	}

	return cmd
}

func runDashboard(root *rootFlags) error {
	st, err := store.NewStore(store.DefaultStorePath())
	if err != nil {
		return fmt.Errorf("failed to load profile store: %w", err)
	}

	cache, err := store.NewStatusCache(store.DefaultCachePath())
	if err != nil {
		return fmt.Errorf("failed to load status cache: %w", err)
	}

	c, err := buildCollaborators(root.verbose, true, false)
	if err != nil {
		return err
	}

	m := dashboard.NewModel(st.List(), st, cache, newProfileService(c))

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}

	return nil
}
