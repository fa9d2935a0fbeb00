package patch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	kitouterrors "github.com/kitout-dev/kitout/pkg/errors"
)

func TestApplyLineAddsMissingKey(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".sqlfluff")
	require.NoError(t, os.WriteFile(path, []byte("[sqlfluff]\ntemplater = jinja\n"), 0o644))

	p := New(nil)
	res, err := p.Apply(Edit{File: path, Kind: KindLine, Key: "dialect", Value: "tsql", Section: "sqlfluff"})
	require.NoError(t, err)
	require.True(t, res.Changed)
	require.NotEmpty(t, res.Diff)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[sqlfluff]\ndialect = tsql\ntemplater = jinja\n", string(data))
}

func TestApplyLineNeverOverwritesUserValue(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".sqlfluff")
	content := "[sqlfluff]\ndialect = postgres\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p := New(nil)
	res, err := p.Apply(Edit{File: path, Kind: KindLine, Key: "dialect", Value: "tsql", Section: "sqlfluff"})
	require.NoError(t, err)
	require.False(t, res.Changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, content, string(data))
}

func TestApplyLineCreatesMissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config", ".sqlfluff")

	p := New(nil)
	res, err := p.Apply(Edit{File: path, Kind: KindLine, Key: "dialect", Value: "tsql", Section: "sqlfluff"})
	require.NoError(t, err)
	require.True(t, res.Changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[sqlfluff]\ndialect = tsql\n", string(data))
}

func TestApplyLinePreservesMissingTrailingNewline(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rc")
	require.NoError(t, os.WriteFile(path, []byte("existing = yes"), 0o644))

	p := New(nil)
	_, err := p.Apply(Edit{File: path, Kind: KindLine, Key: "added", Value: "1"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "existing = yes\nadded = 1", string(data))
}

func TestApplyJSONDefaultOnlyFillsAbsentKeys(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "editor.formatOnSave": false,
  "files.autoSave": "onFocusChange"
}
`), 0o644))

	p := New(nil)

	res, err := p.Apply(Edit{File: path, Kind: KindJSONDefault, Key: "editor.formatOnSave", Value: "true"})
	require.NoError(t, err)
	require.False(t, res.Changed, "user's explicit false must survive")

	res, err = p.Apply(Edit{File: path, Kind: KindJSONDefault, Key: "editor.defaultFormatter", Value: `"esbenp.prettier-vscode"`})
	require.NoError(t, err)
	require.True(t, res.Changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Equal(t, false, doc["editor.formatOnSave"])
	require.Equal(t, "onFocusChange", doc["files.autoSave"])
	require.Equal(t, "esbenp.prettier-vscode", doc["editor.defaultFormatter"])
}

func TestApplyJSONDefaultCreatesDocument(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")

	p := New(nil)
	res, err := p.Apply(Edit{File: path, Kind: KindJSONDefault, Key: "editor.formatOnSave", Value: "true"})
	require.NoError(t, err)
	require.True(t, res.Changed)

	var doc map[string]any
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Equal(t, true, doc["editor.formatOnSave"])
}

func TestApplyJSONDefaultSurfacesMalformedDocument(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	p := New(nil)
	_, err := p.Apply(Edit{File: path, Kind: KindJSONDefault, Key: "editor.formatOnSave", Value: "true"})
	require.Error(t, err)

	var parseErr *kitouterrors.ParseError
	require.ErrorAs(t, err, &parseErr)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	require.Equal(t, "{not json", string(data), "malformed artifact must not be rewritten")
}

func TestPreviewDoesNotWrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")

	p := New(nil)
	res, err := p.Preview(Edit{File: path, Kind: KindJSONDefault, Key: "editor.formatOnSave", Value: "true"})
	require.NoError(t, err)
	require.True(t, res.Changed)

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}
