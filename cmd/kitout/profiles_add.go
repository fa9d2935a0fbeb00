package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/kitout-dev/kitout/internal/catalog"
	"github.com/kitout-dev/kitout/internal/profile"
	"github.com/kitout-dev/kitout/internal/store"
)

type profilesAddOptions struct {
	selection   selectionFlags
	id          string
	description string
}

func newProfilesAddCmd(root *rootFlags) *cobra.Command {
	opts := &profilesAddOptions{}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a profile in the local store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfilesAdd(cmd, args[0], opts)
		},
	}

	opts.selection.register(cmd)
	cmd.Flags().StringVarP(&opts.id, "id", "i", "", "Profile ID (auto-generated from the name if omitted)")
	cmd.Flags().StringVarP(&opts.description, "description", "d", "", "Optional description")

	return cmd
}

func runProfilesAdd(cmd *cobra.Command, name string, opts *profilesAddOptions) error {
	flags := profile.FeatureFlags{
		AzureTools:    opts.selection.azureTools,
		SQLTools:      opts.selection.sqlTools,
		Docker:        opts.selection.docker,
		PowerBI:       opts.selection.powerBI,
		SecurityTools: opts.selection.securityTools,
	}
	description := opts.description

	if opts.selection.profilePath != "" {
		p, err := profile.LoadProfile(opts.selection.profilePath)
		if err != nil {
			return err
		}
		flags = p.Flags
		if description == "" {
			description = p.Description
		}
		if opts.selection.catalogPath == "" {
			opts.selection.catalogPath = p.CatalogPath
		}
	}

	catalogPath := opts.selection.catalogPath
	if catalogPath != "" {
		abs, err := filepath.Abs(catalogPath)
		if err != nil {
			return err
		}
		// Validate up front so a broken catalogue is caught at registration
		// time, not on the first dashboard refresh.
		if _, err := catalog.Load(abs); err != nil {
			return err
		}
		catalogPath = abs
	}

	id := opts.id
	if id == "" {
		id = store.GenerateProfileID(name)
	}
	if err := store.ValidateProfileID(id); err != nil {
		return err
	}

	st, _, err := openStore()
	if err != nil {
		return err
	}

	registered := store.Registered{
		ID:           id,
		Name:         name,
		Description:  description,
		Flags:        flags,
		CatalogPath:  catalogPath,
		RegisteredAt: time.Now().UTC(),
	}

	if err := st.Add(registered); err != nil {
		return err
	}
	if err := st.Save(); err != nil {
		return fmt.Errorf("failed to save profile store: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Added profile '%s' (%s)\n", registered.ID, registered.Name)
	if enabled := registered.Flags.Enabled(); len(enabled) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "  Flags: %v\n", enabled)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "\nRun 'kitout profiles refresh "+registered.ID+"' to check its current status.")

	return nil
}
