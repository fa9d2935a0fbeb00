package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kitout-dev/kitout/internal/probe"
	"github.com/kitout-dev/kitout/internal/reconcile"
	kitouterrors "github.com/kitout-dev/kitout/pkg/errors"
)

type verifyOptions struct {
	selection selectionFlags
	verbose   bool
	jsonOut   bool
	timeout   time.Duration
}

var verifyCmdRunner = runVerify

func newVerifyCmd(root *rootFlags) *cobra.Command {
	opts := verifyOptions{}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check machine state against the catalogue without making changes",
		Long: `Verify performs a read-only pass: it resolves the desired state, compares
it with what is installed, and reports what apply would do. Returns exit
code 0 when everything is satisfied and 1 when changes are needed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.verbose = root.verbose
			return verifyCmdRunner(opts)
		},
	}

	opts.selection.register(cmd)
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Output results in JSON format")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 5*time.Minute, "Overall time budget for the verification pass")

	return cmd
}

func runVerify(opts verifyOptions) error {
	flags, cat, err := opts.selection.resolve()
	if err != nil {
		var parseErr *kitouterrors.ParseError
		var validationErr *kitouterrors.ValidationError
		if errors.As(err, &parseErr) || errors.As(err, &validationErr) {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(3)
	}

	c, err := buildCollaborators(opts.verbose, !opts.jsonOut, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(3)
	}

	ctx := context.Background()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	report, err := reconcile.New(reconcile.Inputs{
		Catalog:    cat,
		Flags:      flags,
		DryRun:     true,
		Packages:   c.packages,
		Extensions: c.extensions,
		Probes:     c.probes,
		Logger:     c.log,
		// Read-only runs never mutate anything, so no elevation is needed.
		Elevated: func() bool { return true },
	}).Reconcile(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Verification error: %v\n", err)
		os.Exit(3)
	}

	if opts.jsonOut {
		printVerifyJSON(report)
	} else {
		printVerifyTable(report, opts.verbose)
	}

	counts := report.Counts()
	if counts.Failed > 0 || counts.WouldApply > 0 {
		os.Exit(1)
	}
	return nil
}

func printVerifyTable(report *reconcile.RunReport, verbose bool) {
	fmt.Println("\nVerification Results:")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("%-20s %-35s %-12s %s\n", "Action", "Target", "Status", "Detail")
	fmt.Println(strings.Repeat("-", 80))

	for _, result := range report.Results {
		fmt.Printf("%-20s %-35s %-12s %s\n",
			string(result.Action.Kind),
			truncateString(result.Action.Target, 35),
			verifyStatusLabel(result.Outcome),
			truncateString(result.Message, 30),
		)
	}

	if len(report.Probes) > 0 {
		fmt.Println(strings.Repeat("-", 80))
		for _, pr := range report.Probes {
			fmt.Printf("%-20s %-35s %-12s %s\n",
				"probe",
				pr.Name,
				probeStatusLabel(pr),
				truncateString(probeDetail(pr.Version, pr.Detail), 30),
			)
		}
	}

	counts := report.Counts()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total:      %d\n", len(report.Results))
	fmt.Printf("  ✔ Satisfied: %d\n", counts.Skipped)
	fmt.Printf("  ⚠ Pending:   %d\n", counts.WouldApply)
	fmt.Printf("  ✖ Failed:    %d\n", counts.Failed)

	if counts.WouldApply == 0 && counts.Failed == 0 {
		fmt.Println("\n✅ Machine matches the catalogue - no changes needed")
	} else {
		fmt.Println("\n❌ Changes needed - run 'kitout apply' to fix")
	}
}

func verifyStatusLabel(outcome reconcile.Outcome) string {
	switch outcome {
	case reconcile.OutcomeSkipped:
		return "✔ satisfied"
	case reconcile.OutcomeWouldApply:
		return "⚠ pending"
	case reconcile.OutcomeFailed:
		return "✖ failed"
	default:
		return string(outcome)
	}
}

func probeStatusLabel(pr probe.Result) string {
	switch {
	case pr.Outcome == probe.OutcomePresent && pr.Outdated:
		return "⚠ outdated"
	case pr.Outcome == probe.OutcomePresent:
		return "✔ present"
	case pr.Outcome == probe.OutcomeAbsent:
		return "✖ absent"
	default:
		return "✖ error"
	}
}

func printVerifyJSON(report *reconcile.RunReport) {
	type jsonResult struct {
		Kind      string `json:"kind"`
		Target    string `json:"target"`
		Outcome   string `json:"outcome"`
		Message   string `json:"message,omitempty"`
		Rationale string `json:"rationale,omitempty"`
	}

	counts := report.Counts()
	payload := struct {
		Satisfied bool             `json:"satisfied"`
		Counts    reconcile.Counts `json:"counts"`
		Results   []jsonResult     `json:"results"`
		Probes    []probe.Result   `json:"probes,omitempty"`
		Timestamp string           `json:"timestamp"`
	}{
		Satisfied: counts.WouldApply == 0 && counts.Failed == 0,
		Counts:    counts,
		Results:   make([]jsonResult, len(report.Results)),
		Probes:    report.Probes,
		Timestamp: report.Finished.Format(time.RFC3339),
	}

	for i, result := range report.Results {
		payload.Results[i] = jsonResult{
			Kind:      string(result.Action.Kind),
			Target:    result.Action.Target,
			Outcome:   string(result.Outcome),
			Message:   result.Message,
			Rationale: result.Action.Rationale,
		}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(payload)
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
