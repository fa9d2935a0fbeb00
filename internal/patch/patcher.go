package patch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kitout-dev/kitout/internal/logger"
	"github.com/kitout-dev/kitout/pkg/diff"
)

// Patcher applies config edits to their artifacts. All edits share one merge
// policy: a key already set by the user is left untouched, only missing keys
// receive the catalogue default. Re-running the patcher is therefore safe.
type Patcher struct {
	log *logger.Logger
}

// New creates a Patcher. The logger may be nil.
func New(log *logger.Logger) *Patcher {
	return &Patcher{log: log}
}

// Preview computes the outcome of an edit without writing anything.
func (p *Patcher) Preview(edit Edit) (Result, error) {
	return p.apply(edit, false)
}

// Apply executes an edit against its artifact.
func (p *Patcher) Apply(edit Edit) (Result, error) {
	return p.apply(edit, true)
}

func (p *Patcher) apply(edit Edit, write bool) (Result, error) {
	switch edit.Kind {
	case KindLine:
		return p.applyLine(edit, write)
	case KindJSONDefault:
		return p.applyJSONDefault(edit, write)
	default:
		return Result{}, fmt.Errorf("unsupported edit kind %q", edit.Kind)
	}
}

func (p *Patcher) applyLine(edit Edit, write bool) (Result, error) {
	state, err := readFileState(edit.File, edit.Encoding)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", edit.File, err)
	}

	pattern, err := keyAssignmentPattern(edit.Key)
	if err != nil {
		return Result{}, err
	}

	for _, line := range state.Lines {
		if pattern.MatchString(line) {
			return Result{Message: fmt.Sprintf("%s already set in %s", edit.Key, edit.File)}, nil
		}
	}

	trailing := state.TrailingNewline
	if !state.Exists {
		trailing = true
	}
	newContent := joinLines(insertKeyLine(state.Lines, edit), trailing)

	result := Result{
		Changed: true,
		Message: fmt.Sprintf("set %s = %s in %s", edit.Key, edit.Value, edit.File),
		Diff:    diff.Preview(edit.File, []byte(state.Content), []byte(newContent)),
	}

	if !write {
		return result, nil
	}

	if edit.Backup && state.Exists {
		original, encErr := encodeContent(state.Content, edit.Encoding)
		if encErr != nil {
			return Result{}, encErr
		}
		if _, err := createBackup(state.Path, original, state.Permissions); err != nil {
			return Result{}, fmt.Errorf("backup %s: %w", state.Path, err)
		}
	}

	data, err := encodeContent(newContent, edit.Encoding)
	if err != nil {
		return Result{}, err
	}
	if err := writeFileAtomic(state.Path, data, state.Permissions); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", state.Path, err)
	}

	p.logDebug("config line applied", edit)
	return result, nil
}

// insertKeyLine places "key = value" into the artifact. When a section is
// named the line goes directly under its header, creating the header at the
// end of the file when missing. Without a section the line is appended.
func insertKeyLine(lines []string, edit Edit) []string {
	entry := fmt.Sprintf("%s = %s", edit.Key, edit.Value)

	if edit.Section == "" {
		return append(append([]string{}, lines...), entry)
	}

	header := fmt.Sprintf("[%s]", edit.Section)
	for i, line := range lines {
		if strings.TrimSpace(line) == header {
			updated := make([]string, 0, len(lines)+1)
			updated = append(updated, lines[:i+1]...)
			updated = append(updated, entry)
			updated = append(updated, lines[i+1:]...)
			return updated
		}
	}

	return append(append([]string{}, lines...), header, entry)
}

func keyAssignmentPattern(key string) (*regexp.Regexp, error) {
	return regexp.Compile(`^\s*` + regexp.QuoteMeta(key) + `\s*=`)
}

func (p *Patcher) logDebug(msg string, edit Edit) {
	if p.log == nil {
		return
	}
	p.log.WithFields(map[string]any{"file": edit.File, "key": edit.Key}).Debug(msg)
}
