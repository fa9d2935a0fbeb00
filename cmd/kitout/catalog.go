package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/spf13/cobra"

	"github.com/kitout-dev/kitout/internal/catalog"
	"github.com/kitout-dev/kitout/internal/profile"
	"github.com/kitout-dev/kitout/internal/store"
)

func newCatalogCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and sync the package catalogue",
	}

	cmd.AddCommand(newCatalogShowCmd(root))
	cmd.AddCommand(newCatalogPullCmd(root))

	return cmd
}

type catalogShowOptions struct {
	selection selectionFlags
	jsonOut   bool
}

func newCatalogShowCmd(root *rootFlags) *cobra.Command {
	opts := &catalogShowOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the desired state the current flags resolve to",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogShow(cmd, opts)
		},
	}

	opts.selection.register(cmd)
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Output the resolved catalogue as JSON")

	return cmd
}

func runCatalogShow(cmd *cobra.Command, opts *catalogShowOptions) error {
	flags, cat, err := opts.selection.resolve()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	desired := cat.Resolve(flags)

	if opts.jsonOut {
		payload := struct {
			Name    string               `json:"name"`
			Version string               `json:"version"`
			Flags   profile.FeatureFlags `json:"flags"`
			Desired catalog.DesiredState `json:"desired"`
			Probes  []catalog.Probe      `json:"probes,omitempty"`
			Removal []catalog.PackageRef `json:"removal_set,omitempty"`
		}{
			Name:    cat.Name,
			Version: cat.Version,
			Flags:   flags,
			Desired: desired,
			Probes:  cat.Probes,
		}
		if flags.Uninstall {
			payload.Removal = cat.RemovalSet()
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	if flags.Uninstall {
		fmt.Fprintln(out, "Uninstall mode: the following packages would be removed:")
		for _, ref := range cat.RemovalSet() {
			fmt.Fprintf(out, "  - %s\n", ref.ID)
		}
		return nil
	}

	fmt.Fprintf(out, "Packages (%d):\n", len(desired.Packages))
	for _, ref := range desired.Packages {
		fmt.Fprintf(out, "  - %-28s %s\n", ref.ID, cat.GroupFor(ref.ID))
	}

	fmt.Fprintf(out, "\nExtensions (%d):\n", len(desired.Extensions))
	for _, ref := range desired.Extensions {
		fmt.Fprintf(out, "  - %-28s %s\n", ref.ID, cat.GroupForExtension(ref.ID))
	}

	fmt.Fprintf(out, "\nConfig edits (%d):\n", len(desired.ConfigEdits))
	for _, edit := range desired.ConfigEdits {
		fmt.Fprintf(out, "  - %s: %s\n", edit.File, edit.Key)
	}

	fmt.Fprintf(out, "\nPath candidates (%d):\n", len(desired.PathCandidates))
	for _, dir := range desired.PathCandidates {
		fmt.Fprintf(out, "  - %s\n", dir)
	}

	fmt.Fprintf(out, "\nProbes (%d):\n", len(cat.Probes))
	for _, p := range cat.Probes {
		fmt.Fprintf(out, "  - %s\n", p.Name)
	}

	return nil
}

type catalogPullOptions struct {
	remote string
	dir    string
}

func newCatalogPullCmd(root *rootFlags) *cobra.Command {
	opts := &catalogPullOptions{}

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Clone or update the team catalogue repository",
		Long: `Pull keeps a local copy of the team's catalogue repository in the user
data dir. The remote comes from --remote or the catalog_remote setting.
After pulling, point apply at the catalogue with --catalog.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogPull(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.remote, "remote", "", "Git URL of the catalogue repository")
	cmd.Flags().StringVar(&opts.dir, "dir", "", "Destination directory (defaults to the user data dir)")

	return cmd
}

func runCatalogPull(cmd *cobra.Command, root *rootFlags, opts *catalogPullOptions) error {
	c, err := buildCollaborators(root.verbose, true, false)
	if err != nil {
		return err
	}

	remote := opts.remote
	if remote == "" {
		remote = c.settings.CatalogRemote
	}
	if remote == "" {
		return errors.New("no catalogue remote configured: pass --remote or set catalog_remote in kitout.yaml")
	}

	dir := opts.dir
	if dir == "" {
		dir = store.DefaultCatalogDir()
	}

	updated, err := syncCatalogRepo(cmd.Context(), remote, dir)
	if err != nil {
		return err
	}

	if updated {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Catalogue updated in %s\n", dir)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Catalogue already up to date in %s\n", dir)
	}

	// A pulled repository that does not parse should fail loudly now, not
	// on the next apply.
	catalogFile := filepath.Join(dir, "catalogue.yaml")
	if _, statErr := os.Stat(catalogFile); statErr == nil {
		if _, err := catalog.Load(catalogFile); err != nil {
			return fmt.Errorf("pulled catalogue is invalid: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  Use it with: kitout apply --catalog %s\n", catalogFile)
	}

	return nil
}

// syncCatalogRepo clones the remote on first use and fast-forwards the
// existing checkout afterwards. Reports whether anything changed.
func syncCatalogRepo(ctx context.Context, remote, dir string) (bool, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		if !errors.Is(err, git.ErrRepositoryNotExists) {
			return false, fmt.Errorf("open catalogue repository: %w", err)
		}

		if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
			return false, fmt.Errorf("create catalogue directory: %w", err)
		}

		if _, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{URL: remote, Depth: 1}); err != nil {
			return false, fmt.Errorf("clone catalogue repository: %w", err)
		}
		return true, nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("open catalogue worktree: %w", err)
	}

	err = worktree.PullContext(ctx, &git.PullOptions{RemoteName: "origin"})
	if err != nil {
		if errors.Is(err, git.NoErrAlreadyUpToDate) {
			return false, nil
		}
		return false, fmt.Errorf("pull catalogue repository: %w", err)
	}

	return true, nil
}
