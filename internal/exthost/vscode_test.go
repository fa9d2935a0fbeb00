package exthost

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kitout-dev/kitout/internal/catalog"
	"github.com/kitout-dev/kitout/internal/runner"
)

func fakeCode(t *testing.T, body string) string {
	t.Helper()
	script := filepath.Join(t.TempDir(), "code")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\n"+body), 0o755))
	return script
}

func newHost(binary string) *VSCode {
	run := runner.New(runner.Options{Retries: 1, Backoff: time.Millisecond}, nil)
	return NewVSCode(binary, run, time.Minute)
}

func TestAvailable(t *testing.T) {
	t.Parallel()

	require.True(t, newHost(fakeCode(t, "exit 0\n")).Available())
	require.False(t, newHost(filepath.Join(t.TempDir(), "code")).Available())
}

func TestListInstalledParsesIDs(t *testing.T) {
	t.Parallel()

	script := fakeCode(t, `cat <<'EOF'
ms-python.python
Esbenp.prettier-vscode

not-an-extension-id
EOF
exit 0
`)

	refs, err := newHost(script).ListInstalled(context.Background())
	require.NoError(t, err)
	require.Equal(t, []catalog.ExtensionRef{
		{ID: "ms-python.python"},
		{ID: "esbenp.prettier-vscode"},
	}, refs)
}

func TestInstallPassesForceFlag(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	logPath := filepath.Join(dir, "log")
	script := filepath.Join(dir, "code")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho \"$@\" > "+logPath+"\nexit 0\n"), 0o755))

	res := newHost(script).Install(context.Background(), catalog.ExtensionRef{ID: "ms-mssql.mssql"})
	require.True(t, res.Success())

	log, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(log), "--install-extension ms-mssql.mssql --force")
}

func TestListInstalledReportsFailure(t *testing.T) {
	t.Parallel()

	script := fakeCode(t, "echo boom >&2\nexit 1\n")
	_, err := newHost(script).ListInstalled(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom")
}
