package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	kitouterrors "github.com/kitout-dev/kitout/pkg/errors"
)

func TestLoadProfile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data-eng.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`name: data-eng
description: Data engineering workstation
flags:
  azure_tools: true
  sql_tools: true
`), 0o644))

	p, err := LoadProfile(path)
	require.NoError(t, err)
	require.Equal(t, "data-eng", p.Name)
	require.True(t, p.Flags.AzureTools)
	require.True(t, p.Flags.SQLTools)
	require.False(t, p.Flags.Docker)
}

func TestLoadProfileRequiresName(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "anon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("flags:\n  docker: true\n"), 0o644))

	_, err := LoadProfile(path)
	var validationErr *kitouterrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestLoadProfileReportsParseLine(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: x\nflags: [unclosed\n"), 0o644))

	_, err := LoadProfile(path)
	var parseErr *kitouterrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, path, parseErr.Path)
}

func TestEnabledFlagOrderIsStable(t *testing.T) {
	t.Parallel()

	flags := FeatureFlags{SQLTools: true, Docker: true, SecurityTools: true}
	require.Equal(t, []string{"sql_tools", "docker", "security_tools"}, flags.Enabled())
	require.Empty(t, FeatureFlags{}.Enabled())
}

func TestDefaultSettingsMatchScriptBehaviour(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	require.Equal(t, 3, s.Retries)
	require.Equal(t, "choco", s.ChocoBinary)
	require.Equal(t, "code", s.CodeBinary)
}
