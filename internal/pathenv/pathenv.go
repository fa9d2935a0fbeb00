// Package pathenv computes idempotent additions to a search-path style
// ordered list. The candidate list is a set of best-effort directory
// guesses; most of them not existing on a given machine is the normal case,
// not an error.
package pathenv

import (
	"os"
	"runtime"
	"strings"
)

// Ensurer appends missing candidate directories to a search path without
// ever reordering or removing existing entries.
type Ensurer struct {
	// Exists reports whether a directory is present on disk. Defaults to
	// os.Stat; injectable for tests and for planning runs against another
	// machine's path value.
	Exists func(dir string) bool

	// CaseInsensitive selects Windows comparison semantics. Defaults to
	// the current platform's behaviour.
	CaseInsensitive bool

	// Separator splits and joins path lists. Defaults to the platform
	// list separator.
	Separator string
}

// NewEnsurer returns an Ensurer with platform defaults.
func NewEnsurer() *Ensurer {
	return &Ensurer{
		Exists: func(dir string) bool {
			info, err := os.Stat(dir)
			return err == nil && info.IsDir()
		},
		CaseInsensitive: runtime.GOOS == "windows",
		Separator:       string(os.PathListSeparator),
	}
}

// Ensure returns current with each candidate appended exactly once, in
// candidate order, when the directory exists and is not already present.
// The second return value lists only the appended entries.
func (e *Ensurer) Ensure(candidates, current []string) ([]string, []string) {
	updated := append([]string{}, current...)

	present := make(map[string]struct{}, len(current))
	for _, entry := range current {
		present[e.normalize(entry)] = struct{}{}
	}

	var added []string
	for _, candidate := range candidates {
		key := e.normalize(candidate)
		if key == "" {
			continue
		}
		if _, ok := present[key]; ok {
			continue
		}
		if e.Exists != nil && !e.Exists(candidate) {
			continue
		}
		updated = append(updated, candidate)
		added = append(added, candidate)
		present[key] = struct{}{}
	}

	return updated, added
}

// Split breaks a search-path value into its ordered entries.
func (e *Ensurer) Split(value string) []string {
	if value == "" {
		return nil
	}
	var entries []string
	for _, entry := range strings.Split(value, e.Separator) {
		if entry != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Join renders the ordered entries back into a search-path value.
func (e *Ensurer) Join(entries []string) string {
	return strings.Join(entries, e.Separator)
}

// normalize folds case on case-insensitive filesystems and ignores a
// trailing separator, so "C:\Tools\" and "c:\tools" count as the same entry.
func (e *Ensurer) normalize(entry string) string {
	trimmed := strings.TrimSpace(entry)
	trimmed = strings.TrimRight(trimmed, `\/`)
	if e.CaseInsensitive {
		trimmed = strings.ToLower(trimmed)
	}
	return trimmed
}
