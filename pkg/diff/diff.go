// Package diff renders the before/after preview a config edit reports.
package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Config artifacts are small files; a preview longer than this means the
// edit is rewriting something it should not touch.
const (
	maxPreviewLines  = 400
	truncationMarker = "... (preview truncated) ..."
)

// Preview renders a unified-style diff between an artifact's current
// content and the content an edit would write. Returns "" when nothing
// changes. Headers carry the artifact path, never timestamps, so dry-run
// output stays byte-for-byte reproducible.
func Preview(path string, current, proposed []byte) string {
	if bytes.Equal(current, proposed) {
		return ""
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(current), string(proposed), false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s (current)\n", path)
	fmt.Fprintf(&b, "+++ %s (proposed)\n", path)

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			writeLines(&b, " ", d.Text)
		case diffmatchpatch.DiffDelete:
			writeLines(&b, "-", d.Text)
		case diffmatchpatch.DiffInsert:
			writeLines(&b, "+", d.Text)
		}
	}

	return truncate(b.String())
}

func writeLines(b *strings.Builder, prefix, text string) {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" && strings.HasSuffix(text, "\n") {
		lines = lines[:len(lines)-1]
	}
	for _, line := range lines {
		b.WriteString(prefix)
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func truncate(preview string) string {
	lines := strings.Split(preview, "\n")
	if len(lines) <= maxPreviewLines {
		return preview
	}
	return strings.Join(lines[:maxPreviewLines], "\n") + "\n" + truncationMarker + "\n"
}
