package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type profilesRemoveOptions struct {
	force bool
}

func newProfilesRemoveCmd(root *rootFlags) *cobra.Command {
	opts := &profilesRemoveOptions{}

	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a profile from the local store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfilesRemove(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Skip the confirmation prompt")

	return cmd
}

func runProfilesRemove(cmd *cobra.Command, id string, opts *profilesRemoveOptions) error {
	st, cache, err := openStore()
	if err != nil {
		return err
	}

	p, err := st.Get(id)
	if err != nil {
		return err
	}

	if !opts.force {
		fmt.Fprintf(cmd.OutOrStdout(), "Remove profile '%s' (%s)? [y/N]: ", p.ID, p.Name)
		reader := bufio.NewReader(cmd.InOrStdin())
		answer, _ := reader.ReadString('\n')
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	if err := st.Remove(id); err != nil {
		return err
	}
	if err := st.Save(); err != nil {
		return fmt.Errorf("failed to save profile store: %w", err)
	}

	cache.Invalidate(id)
	if err := cache.Save(); err != nil {
		return fmt.Errorf("failed to save status cache: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed profile '%s'\n", id)
	return nil
}
