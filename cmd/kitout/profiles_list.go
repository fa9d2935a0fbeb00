package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kitout-dev/kitout/internal/profile"
	"github.com/kitout-dev/kitout/internal/store"
)

type profilesListOptions struct {
	jsonOutput bool
}

func newProfilesListCmd(root *rootFlags) *cobra.Command {
	opts := &profilesListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfilesList(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runProfilesList(cmd *cobra.Command, opts *profilesListOptions) error {
	st, cache, err := openStore()
	if err != nil {
		return err
	}

	profiles := st.List()
	if len(profiles) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No profiles registered yet.")
		fmt.Fprintln(cmd.OutOrStdout(), "\nRun 'kitout profiles add <name>' to add your first profile.")
		return nil
	}

	enriched := enrichProfilesWithStatus(profiles, cache)

	if opts.jsonOutput {
		return renderProfilesJSON(cmd, enriched)
	}

	return renderProfilesTable(cmd, enriched)
}

type profileWithStatus struct {
	Profile store.Registered
	Status  store.CachedStatus
}

func enrichProfilesWithStatus(profiles []store.Registered, cache *store.StatusCache) []profileWithStatus {
	enriched := make([]profileWithStatus, len(profiles))

	for i, p := range profiles {
		status, ok := cache.Get(p.ID)
		if !ok {
			status = store.CachedStatus{Status: store.StatusUnknown}
		}

		enriched[i] = profileWithStatus{Profile: p, Status: status}
	}

	sort.Slice(enriched, func(i, j int) bool {
		return enriched[i].Profile.ID < enriched[j].Profile.ID
	})

	return enriched
}

func renderProfilesTable(cmd *cobra.Command, profiles []profileWithStatus) error {
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, "ID\tNAME\tFLAGS\tSTATUS\tLAST RUN")

	useUnicode := supportsUnicode(cmd.OutOrStdout())

	for _, p := range profiles {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
			p.Profile.ID,
			valueOrFallback(p.Profile.Name, "(no name)"),
			formatFlags(p.Profile.Flags),
			formatStatus(p.Status.Status, useUnicode),
			formatRelativeTime(p.Status.LastRun),
		)
	}

	return writer.Flush()
}

type profileJSONEntry struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Description  string               `json:"description,omitempty"`
	Flags        profile.FeatureFlags `json:"flags"`
	CatalogPath  string               `json:"catalog_path,omitempty"`
	RegisteredAt time.Time            `json:"registered_at"`
	Status       store.Status         `json:"status"`
	LastRun      time.Time            `json:"last_run"`
	Summary      string               `json:"summary,omitempty"`
}

func renderProfilesJSON(cmd *cobra.Command, profiles []profileWithStatus) error {
	payload := struct {
		Version  string             `json:"version"`
		Count    int                `json:"count"`
		Profiles []profileJSONEntry `json:"profiles"`
	}{
		Version:  "1.0",
		Count:    len(profiles),
		Profiles: make([]profileJSONEntry, len(profiles)),
	}

	for i, p := range profiles {
		payload.Profiles[i] = profileJSONEntry{
			ID:           p.Profile.ID,
			Name:         p.Profile.Name,
			Description:  p.Profile.Description,
			Flags:        p.Profile.Flags,
			CatalogPath:  p.Profile.CatalogPath,
			RegisteredAt: p.Profile.RegisteredAt,
			Status:       p.Status.Status,
			LastRun:      p.Status.LastRun,
			Summary:      p.Status.Summary,
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func supportsUnicode(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

func formatStatus(status store.Status, useUnicode bool) string {
	if useUnicode {
		return fmt.Sprintf("%s %s", status.Icon(), status.String())
	}
	return fmt.Sprintf("%s %s", status.IconFallback(), status.String())
}

func formatFlags(flags profile.FeatureFlags) string {
	enabled := flags.Enabled()
	if len(enabled) == 0 {
		return "core"
	}
	return strings.Join(enabled, ",")
}

func formatRelativeTime(ts time.Time) string {
	if ts.IsZero() {
		return "never"
	}

	delta := time.Since(ts)
	if delta < time.Minute {
		return "just now"
	}
	if delta < time.Hour {
		return fmt.Sprintf("%d minutes ago", int(delta.Minutes()))
	}
	if delta < 24*time.Hour {
		return fmt.Sprintf("%d hours ago", int(delta.Hours()))
	}

	return fmt.Sprintf("%d days ago", int(delta.Hours()/24))
}

func valueOrFallback(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
