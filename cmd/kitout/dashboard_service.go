package main

import (
	"context"
	"fmt"

	"github.com/kitout-dev/kitout/internal/catalog"
	"github.com/kitout-dev/kitout/internal/reconcile"
	"github.com/kitout-dev/kitout/internal/store"
	"github.com/kitout-dev/kitout/internal/tui/dashboard"
)

// profileServiceAdapter runs reconcile passes on behalf of the dashboard and
// the profiles refresh command. Verify is a dry run; Apply is the real thing.
type profileServiceAdapter struct {
	c *collaborators
}

func newProfileService(c *collaborators) *profileServiceAdapter {
	return &profileServiceAdapter{c: c}
}

func (a *profileServiceAdapter) Verify(ctx context.Context, p store.Registered) (*dashboard.Outcome, error) {
	report, err := a.reconcile(ctx, p, true)
	if err != nil {
		return nil, err
	}
	return outcomeFromReport(report, true), nil
}

func (a *profileServiceAdapter) Apply(ctx context.Context, p store.Registered) (*dashboard.Outcome, error) {
	report, err := a.reconcile(ctx, p, false)
	if err != nil {
		return nil, err
	}
	return outcomeFromReport(report, false), nil
}

func (a *profileServiceAdapter) reconcile(ctx context.Context, p store.Registered, dryRun bool) (*reconcile.RunReport, error) {
	var (
		cat *catalog.Catalog
		err error
	)
	if p.CatalogPath != "" {
		cat, err = catalog.Load(p.CatalogPath)
	} else {
		cat, err = catalog.Default()
	}
	if err != nil {
		return nil, err
	}

	if a.c.packages == nil {
		return nil, fmt.Errorf("package manager unavailable")
	}

	inputs := reconcile.Inputs{
		Catalog:       cat,
		Flags:         p.Flags,
		DryRun:        dryRun,
		Packages:      a.c.packages,
		Extensions:    a.c.extensions,
		PathCommitter: a.c.committer,
		Probes:        a.c.probes,
		Logger:        a.c.log,
	}
	if dryRun {
		inputs.Elevated = func() bool { return true }
	}

	return reconcile.New(inputs).Reconcile(ctx)
}

// outcomeFromReport collapses a run report into the dashboard's status model.
// After a dry run, pending actions mean drift; after a real apply, any
// remaining failure marks the profile failed.
func outcomeFromReport(report *reconcile.RunReport, dryRun bool) *dashboard.Outcome {
	counts := report.Counts()

	outcome := &dashboard.Outcome{
		ActionCount: len(report.Results),
	}

	for _, result := range report.Results {
		if result.Outcome == reconcile.OutcomeFailed {
			outcome.FailedActions = append(outcome.FailedActions, result.Action.Target)
		}
	}

	switch {
	case counts.Failed > 0:
		outcome.Status = store.StatusFailed
		outcome.Summary = fmt.Sprintf("%d of %d actions failed", counts.Failed, len(report.Results))
	case dryRun && counts.WouldApply > 0:
		outcome.Status = store.StatusDrifted
		outcome.Summary = fmt.Sprintf("%d of %d actions pending", counts.WouldApply, len(report.Results))
	default:
		outcome.Status = store.StatusSatisfied
		outcome.Summary = fmt.Sprintf("all %d actions satisfied", len(report.Results))
	}

	return outcome
}
