package pathenv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func windowsEnsurer(existing map[string]bool) *Ensurer {
	return &Ensurer{
		Exists:          func(dir string) bool { return existing[dir] },
		CaseInsensitive: true,
		Separator:       ";",
	}
}

func TestEnsureAppendsMissingExistingDirs(t *testing.T) {
	t.Parallel()

	e := windowsEnsurer(map[string]bool{
		`C:\Program Files\Git\cmd`:  true,
		`C:\ProgramData\chocolatey`: true,
	})

	current := []string{`C:\Windows`, `C:\Windows\System32`}
	candidates := []string{`C:\Program Files\Git\cmd`, `C:\Does\Not\Exist`, `C:\ProgramData\chocolatey`}

	updated, added := e.Ensure(candidates, current)
	require.Equal(t, []string{
		`C:\Windows`, `C:\Windows\System32`,
		`C:\Program Files\Git\cmd`, `C:\ProgramData\chocolatey`,
	}, updated)
	require.Equal(t, []string{`C:\Program Files\Git\cmd`, `C:\ProgramData\chocolatey`}, added)
}

func TestEnsureIsCaseInsensitiveAndTrimsTrailingSeparator(t *testing.T) {
	t.Parallel()

	e := windowsEnsurer(map[string]bool{`C:\Program Files\Git\cmd`: true})

	current := []string{`c:\program files\git\cmd\`}
	updated, added := e.Ensure([]string{`C:\Program Files\Git\cmd`}, current)

	require.Equal(t, current, updated)
	require.Empty(t, added)
}

func TestEnsureIsIdempotent(t *testing.T) {
	t.Parallel()

	e := windowsEnsurer(map[string]bool{`C:\Tools`: true})

	once, added := e.Ensure([]string{`C:\Tools`}, []string{`C:\Windows`})
	require.Equal(t, []string{`C:\Tools`}, added)

	twice, addedAgain := e.Ensure([]string{`C:\Tools`}, once)
	require.Equal(t, once, twice)
	require.Empty(t, addedAgain)
}

func TestEnsureNeverReordersExistingEntries(t *testing.T) {
	t.Parallel()

	e := windowsEnsurer(map[string]bool{})
	current := []string{`C:\B`, `C:\A`}

	updated, _ := e.Ensure(nil, current)
	require.Equal(t, current, updated)
}

func TestEnsureDeduplicatesCandidates(t *testing.T) {
	t.Parallel()

	e := windowsEnsurer(map[string]bool{`C:\Tools`: true, `c:\tools`: true})
	updated, added := e.Ensure([]string{`C:\Tools`, `c:\tools`}, nil)
	require.Equal(t, []string{`C:\Tools`}, updated)
	require.Equal(t, []string{`C:\Tools`}, added)
}

func TestSplitJoinRoundTrip(t *testing.T) {
	t.Parallel()

	e := windowsEnsurer(nil)
	entries := e.Split(`C:\Windows;;C:\Tools`)
	require.Equal(t, []string{`C:\Windows`, `C:\Tools`}, entries)
	require.Equal(t, `C:\Windows;C:\Tools`, e.Join(entries))
}
