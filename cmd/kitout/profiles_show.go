package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kitout-dev/kitout/internal/store"
)

type profilesShowOptions struct {
	jsonOutput bool
}

func newProfilesShowCmd(root *rootFlags) *cobra.Command {
	opts := &profilesShowOptions{}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a registered profile and its last known status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfilesShow(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runProfilesShow(cmd *cobra.Command, id string, opts *profilesShowOptions) error {
	st, cache, err := openStore()
	if err != nil {
		return err
	}

	p, err := st.Get(id)
	if err != nil {
		return err
	}

	status, ok := cache.Get(p.ID)
	if !ok {
		status = store.CachedStatus{Status: store.StatusUnknown}
	}

	if opts.jsonOutput {
		payload := struct {
			Profile store.Registered   `json:"profile"`
			Status  store.CachedStatus `json:"status"`
		}{Profile: p, Status: status}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	out := cmd.OutOrStdout()
	useUnicode := supportsUnicode(out)

	fmt.Fprintf(out, "Profile: %s\n", p.Name)
	fmt.Fprintf(out, "  ID:          %s\n", p.ID)
	if p.Description != "" {
		fmt.Fprintf(out, "  Description: %s\n", p.Description)
	}
	fmt.Fprintf(out, "  Flags:       %s\n", formatFlags(p.Flags))
	if p.CatalogPath != "" {
		fmt.Fprintf(out, "  Catalogue:   %s\n", p.CatalogPath)
	}
	fmt.Fprintf(out, "  Registered:  %s\n", p.RegisteredAt.Format("Jan 2, 2006 15:04"))

	fmt.Fprintf(out, "\nStatus: %s\n", formatStatus(status.Status, useUnicode))
	fmt.Fprintf(out, "  Last run: %s\n", formatRelativeTime(status.LastRun))
	if status.Summary != "" {
		fmt.Fprintf(out, "  Summary:  %s\n", status.Summary)
	}
	if len(status.FailedActions) > 0 {
		fmt.Fprintf(out, "  Failed:   %s\n", strings.Join(status.FailedActions, ", "))
	}

	return nil
}
