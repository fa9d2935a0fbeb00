package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/kitout-dev/kitout/internal/reconcile"
	"github.com/kitout-dev/kitout/internal/tui"
)

func executeCommand(cmd *cobra.Command, args ...string) error {
	cmd.SetArgs(args)
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	return cmd.Execute()
}

func TestApplyCommandParsesFlags(t *testing.T) {
	original := applyCmdRunner
	defer func() { applyCmdRunner = original }()

	var captured applyOptions
	applyCmdRunner = func(opts applyOptions) error {
		captured = opts
		return nil
	}

	root := newRootCmd()
	err := executeCommand(root, "apply", "--azure-tools", "--docker", "--upgrade", "--dry-run")
	require.NoError(t, err)

	require.True(t, captured.selection.azureTools)
	require.True(t, captured.selection.docker)
	require.False(t, captured.selection.sqlTools)
	require.True(t, captured.upgrade)
	require.True(t, captured.dryRun)
}

func TestVerifyCommandParsesFlags(t *testing.T) {
	original := verifyCmdRunner
	defer func() { verifyCmdRunner = original }()

	var captured verifyOptions
	verifyCmdRunner = func(opts verifyOptions) error {
		captured = opts
		return nil
	}

	root := newRootCmd()
	err := executeCommand(root, "verify", "--sql-tools", "--json", "--verbose")
	require.NoError(t, err)

	require.True(t, captured.selection.sqlTools)
	require.True(t, captured.jsonOut)
	require.True(t, captured.verbose)
}

func TestDispatchTuiMessage(t *testing.T) {
	plan := reconcile.Plan{Actions: []reconcile.Action{
		{Kind: reconcile.KindInstallPackage, Target: "git"},
	}}
	modelState := tui.NewModel("apply", plan, true)

	dispatchTuiMessage(false, nil, &modelState, tui.ActionCompleteMsg{Result: reconcile.ActionResult{
		Action:  plan.Actions[0],
		Outcome: reconcile.OutcomeSuccess,
	}})

	require.Equal(t, 1, modelState.CompletedActions())

	// Interactive mode with a nil program must not panic.
	dispatchTuiMessage(true, nil, &modelState, tui.ActionCompleteMsg{})
}
