package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kitout-dev/kitout/internal/profile"
)

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "profiles.json")

	s, err := NewStore(path)
	require.NoError(t, err)

	p := Registered{
		ID:           "data-eng",
		Name:         "Data Engineering",
		Flags:        profile.FeatureFlags{AzureTools: true, SQLTools: true},
		RegisteredAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, s.Add(p))
	require.NoError(t, s.Save())

	reloaded, err := NewStore(path)
	require.NoError(t, err)

	got, err := reloaded.Get("data-eng")
	require.NoError(t, err)
	require.Equal(t, p.Flags, got.Flags)
	require.Equal(t, p.Name, got.Name)
}

func TestStoreRejectsDuplicateIDs(t *testing.T) {
	t.Parallel()

	s, err := NewStore(filepath.Join(t.TempDir(), "profiles.json"))
	require.NoError(t, err)

	require.NoError(t, s.Add(Registered{ID: "x"}))
	require.Error(t, s.Add(Registered{ID: "x"}))
}

func TestStoreRemove(t *testing.T) {
	t.Parallel()

	s, err := NewStore(filepath.Join(t.TempDir(), "profiles.json"))
	require.NoError(t, err)

	require.NoError(t, s.Add(Registered{ID: "x"}))
	require.NoError(t, s.Remove("x"))
	require.Error(t, s.Remove("x"))
	require.Empty(t, s.List())
}

func TestStatusCacheRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "status.json")

	c, err := NewStatusCache(path)
	require.NoError(t, err)

	c.Set("data-eng", CachedStatus{
		Status:      StatusDrifted,
		Summary:     "2 packages missing",
		ActionCount: 14,
	})
	require.NoError(t, c.Save())

	reloaded, err := NewStatusCache(path)
	require.NoError(t, err)

	got, ok := reloaded.Get("data-eng")
	require.True(t, ok)
	require.Equal(t, StatusDrifted, got.Status)
	require.Equal(t, "2 packages missing", got.Summary)

	reloaded.Invalidate("data-eng")
	_, ok = reloaded.Get("data-eng")
	require.False(t, ok)
}

func TestGenerateProfileID(t *testing.T) {
	t.Parallel()

	require.Equal(t, "data-engineering", GenerateProfileID("Data Engineering"))
	require.Equal(t, "sql-tools", GenerateProfileID("  SQL/Tools  "))
	require.NotEmpty(t, GenerateProfileID("!!!"))
}

func TestValidateProfileID(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateProfileID("data-eng"))
	require.NoError(t, ValidateProfileID("x"))
	require.Error(t, ValidateProfileID(""))
	require.Error(t, ValidateProfileID("-leading-dash"))
	require.Error(t, ValidateProfileID("UPPER"))
}

func TestStatusIcons(t *testing.T) {
	t.Parallel()

	require.Equal(t, "[OK]", StatusSatisfied.IconFallback())
	require.Equal(t, "[!!]", StatusDrifted.IconFallback())
	require.Equal(t, "[XX]", StatusFailed.IconFallback())
	require.Equal(t, "[??]", StatusUnknown.IconFallback())
}
