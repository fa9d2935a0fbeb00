package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kitout-dev/kitout/internal/reconcile"
	"github.com/kitout-dev/kitout/internal/store"
)

func reportWith(outcomes ...reconcile.Outcome) *reconcile.RunReport {
	report := &reconcile.RunReport{Started: time.Now(), Finished: time.Now()}
	for i, outcome := range outcomes {
		report.Results = append(report.Results, reconcile.ActionResult{
			Action: reconcile.Action{
				Kind:   reconcile.KindInstallPackage,
				Target: string(rune('a' + i)),
			},
			Outcome: outcome,
		})
	}
	return report
}

func TestOutcomeFromReportSatisfied(t *testing.T) {
	report := reportWith(reconcile.OutcomeSkipped, reconcile.OutcomeSkipped)

	outcome := outcomeFromReport(report, true)
	require.Equal(t, store.StatusSatisfied, outcome.Status)
	require.Equal(t, 2, outcome.ActionCount)
	require.Empty(t, outcome.FailedActions)
}

func TestOutcomeFromReportDriftedOnDryRun(t *testing.T) {
	report := reportWith(reconcile.OutcomeSkipped, reconcile.OutcomeWouldApply)

	outcome := outcomeFromReport(report, true)
	require.Equal(t, store.StatusDrifted, outcome.Status)
	require.Contains(t, outcome.Summary, "1 of 2")
}

func TestOutcomeFromReportFailedWinsOverDrift(t *testing.T) {
	report := reportWith(reconcile.OutcomeWouldApply, reconcile.OutcomeFailed)

	outcome := outcomeFromReport(report, true)
	require.Equal(t, store.StatusFailed, outcome.Status)
	require.Len(t, outcome.FailedActions, 1)
}

func TestOutcomeFromReportApplySuccess(t *testing.T) {
	report := reportWith(reconcile.OutcomeSuccess, reconcile.OutcomeSkipped)

	outcome := outcomeFromReport(report, false)
	require.Equal(t, store.StatusSatisfied, outcome.Status)
}
