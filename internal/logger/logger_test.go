package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

func TestLoggerInfoWithFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: buf})
	require.NoError(t, err)

	log = log.WithFields(map[string]any{"flags": "azure_tools,docker", "dry_run": false})
	log.Info("reconcile starting")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "reconcile starting", entry["message"])
	require.Equal(t, "azure_tools,docker", entry["flags"])
	require.Equal(t, false, entry["dry_run"])
	require.Equal(t, "info", entry["level"])
}

func TestLoggerWithActionTagsKindAndTarget(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", Writer: buf})
	require.NoError(t, err)

	log.WithAction("install_package", "terraform").Debug("action recorded")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "install_package", entry["kind"])
	require.Equal(t, "terraform", entry["target"])
}

func TestLoggerWithErrorCarriesCause(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: buf})
	require.NoError(t, err)

	log.WithError(errors.New("choco list exited 1")).Warn("proceeding without skip detection")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "choco list exited 1", entry["error"])
	require.Equal(t, "warn", entry["level"])

	// A nil error must not add a field or panic.
	require.NotNil(t, log.WithError(nil))
}

func TestLoggerDebugRespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: buf})
	require.NoError(t, err)

	log.Debug("this should not appear")
	require.Equal(t, "", strings.TrimSpace(buf.String()))
}

func TestLoggerErrorIncludesContext(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", Writer: buf})
	require.NoError(t, err)

	log = log.WithAction("config_patch", "~/.sqlfluff")
	log.Error(errors.New("permission denied"), "edit failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "edit failed", entry["message"])
	require.Equal(t, "~/.sqlfluff", entry["target"])
	require.Equal(t, "permission denied", entry["error"])
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "chatty"})
	require.Error(t, err)
}

func TestNilLoggerIsSafe(t *testing.T) {
	t.Parallel()

	var log *Logger
	log.Info("ignored")
	log.WithAction("path_add", `C:\Program Files\Git\cmd`).Warn("ignored")
	log.WithError(errors.New("ignored")).Error(errors.New("ignored"), "ignored")
	require.Nil(t, log.WithFields(map[string]any{"k": "v"}))
}
