package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kitout-dev/kitout/internal/probe"
	"github.com/kitout-dev/kitout/internal/reconcile"
	"github.com/kitout-dev/kitout/internal/tui"
)

type applyOptions struct {
	selection      selectionFlags
	refreshSources bool
	upgrade        bool
	jsonOutput     bool
	reportPath     string
	dryRun         bool
	verbose        bool
	nonInteractive bool
}

var applyCmdRunner = runApply

func newApplyCmd(root *rootFlags) *cobra.Command {
	opts := applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Reconcile the machine against the catalogue",
		Long: `Apply resolves the desired state from the catalogue and the selection
flags, compares it with what is installed, and executes the missing actions
in order: packages, extensions, config defaults, and search-path additions.
Already-satisfied actions are skipped, so re-running is always safe.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.DryRunFromRoot(root)
			opts.nonInteractive = !term.IsTerminal(int(os.Stdout.Fd())) || opts.jsonOutput

			return applyCmdRunner(opts)
		},
	}

	opts.selection.register(cmd)
	cmd.Flags().BoolVar(&opts.refreshSources, "refresh-sources", false, "Refresh package sources before installing")
	cmd.Flags().BoolVar(&opts.upgrade, "upgrade", false, "Upgrade all installed packages after installing")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the run report as JSON instead of the progress UI")
	cmd.Flags().StringVar(&opts.reportPath, "report", "", "Write the JSON run report to a file")

	return cmd
}

func (o *applyOptions) DryRunFromRoot(root *rootFlags) {
	o.dryRun = root.dryRun
	o.verbose = root.verbose
}

func runApply(opts applyOptions) error {
	flags, cat, err := opts.selection.resolve()
	if err != nil {
		return err
	}

	c, err := buildCollaborators(opts.verbose, !opts.jsonOutput, true)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	inputs := reconcile.Inputs{
		Catalog:        cat,
		Flags:          flags,
		DryRun:         opts.dryRun,
		RefreshSources: opts.refreshSources,
		Upgrade:        opts.upgrade,
		Packages:       c.packages,
		Extensions:     c.extensions,
		PathCommitter:  c.committer,
		Probes:         c.probes,
		Logger:         c.log,
	}
	// A dry run never mutates anything, so it does not need elevation.
	if opts.dryRun {
		inputs.Elevated = func() bool { return true }
	}

	plan := reconcile.BuildPlan(reconcile.PlanInputs{
		Catalog:        cat,
		Flags:          flags,
		RefreshSources: opts.refreshSources,
		Upgrade:        opts.upgrade,
	})

	title := "apply"
	if opts.dryRun {
		title = "apply (dry run)"
	}
	modelState := tui.NewModel(title, plan, opts.nonInteractive)
	interactive := !opts.nonInteractive

	var program *tea.Program
	var programErr error
	done := make(chan struct{})

	if interactive {
		program = tea.NewProgram(modelState)
		go func() {
			_, programErr = program.Run()
			close(done)
		}()
		// Stream each result into the running program so progress is
		// visible while the engine is still working.
		inputs.OnResult = func(res reconcile.ActionResult) {
			program.Send(tui.ActionCompleteMsg{Result: res})
		}
	}

	report, runErr := reconcile.New(inputs).Reconcile(ctx)
	if runErr != nil {
		if interactive && program != nil {
			program.Send(tea.QuitMsg{})
			<-done
		}
		return runErr
	}

	if !interactive {
		for _, res := range report.Results {
			dispatchTuiMessage(interactive, program, &modelState, tui.ActionCompleteMsg{Result: res})
		}
	}
	for _, pr := range report.Probes {
		dispatchTuiMessage(interactive, program, &modelState, tui.ProbeMsg{
			Name:    pr.Name,
			Present: pr.Outcome == probe.OutcomePresent && !pr.Outdated,
			Detail:  probeDetail(pr.Version, pr.Detail),
		})
	}

	if interactive {
		if program != nil {
			program.Send(tea.QuitMsg{})
		}
		<-done
		if programErr != nil {
			return programErr
		}
	} else if !opts.jsonOutput {
		fmt.Fprintln(os.Stdout, modelState.View())
	}

	if opts.jsonOutput {
		data, err := report.JSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))
	}

	if opts.reportPath != "" {
		data, err := report.JSON()
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.reportPath, data, 0644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	if counts := report.Counts(); counts.Failed > 0 {
		return fmt.Errorf("%d of %d actions failed", counts.Failed, len(report.Results))
	}

	return nil
}

func probeDetail(version, detail string) string {
	switch {
	case version != "" && detail != "":
		return version + ", " + detail
	case version != "":
		return version
	default:
		return detail
	}
}

func dispatchTuiMessage(interactive bool, program *tea.Program, state *tui.Model, msg tea.Msg) {
	if interactive {
		if program != nil {
			program.Send(msg)
		}
		return
	}

	updated, _ := state.Update(msg)
	if m, ok := updated.(tui.Model); ok {
		*state = m
	}
}
