package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveDefaultsToEmbeddedCatalogue(t *testing.T) {
	sel := selectionFlags{}

	flags, cat, err := sel.resolve()
	require.NoError(t, err)
	require.Empty(t, flags.Enabled())
	require.NotNil(t, cat)
	require.NotEmpty(t, cat.Core)
}

func TestResolveCombinesProfileAndExplicitFlags(t *testing.T) {
	dir := t.TempDir()
	profilePath := filepath.Join(dir, "data-engineer.yaml")
	doc := `name: data-engineer
description: Data engineering workstation
flags:
  azure_tools: true
  sql_tools: true
`
	require.NoError(t, os.WriteFile(profilePath, []byte(doc), 0o644))

	sel := selectionFlags{profilePath: profilePath, docker: true}

	flags, cat, err := sel.resolve()
	require.NoError(t, err)
	require.NotNil(t, cat)

	// Profile flags survive and the explicit flag is additive.
	require.True(t, flags.AzureTools)
	require.True(t, flags.SQLTools)
	require.True(t, flags.Docker)
	require.False(t, flags.PowerBI)
}

func TestResolveRejectsMissingProfile(t *testing.T) {
	sel := selectionFlags{profilePath: "/nonexistent/profile.yaml"}

	_, _, err := sel.resolve()
	require.Error(t, err)
}

func TestResolveLoadsExplicitCatalogue(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "catalogue.yaml")
	doc := `version: "1.0"
core:
  - id: git
extension_baseline:
  - id: ms-python.python
`
	require.NoError(t, os.WriteFile(catalogPath, []byte(doc), 0o644))

	sel := selectionFlags{catalogPath: catalogPath}

	_, cat, err := sel.resolve()
	require.NoError(t, err)
	require.Len(t, cat.Core, 1)
	require.Equal(t, "git", cat.Core[0].ID)
}

func TestResolveRejectsInvalidCatalogue(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte("core: [not: valid: ["), 0o644))

	sel := selectionFlags{catalogPath: catalogPath}

	_, _, err := sel.resolve()
	require.Error(t, err)
}
