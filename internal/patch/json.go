package patch

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/kitout-dev/kitout/pkg/diff"
	kitouterrors "github.com/kitout-dev/kitout/pkg/errors"
)

// applyJSONDefault merges one default key into a JSON settings document
// (VS Code settings.json style, where dotted keys are literal top-level
// keys). Existing keys always win; a missing document is created; a
// document that does not parse is surfaced as a parse error so the caller
// can record the failure without aborting the run.
func (p *Patcher) applyJSONDefault(edit Edit, write bool) (Result, error) {
	path, err := expandPath(edit.File)
	if err != nil {
		return Result{}, err
	}

	var original []byte
	doc := map[string]any{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		original = data
		if err := json.Unmarshal(data, &doc); err != nil {
			return Result{}, kitouterrors.NewParseError(path, 0, fmt.Errorf("malformed settings document: %w", err))
		}
	case errors.Is(err, os.ErrNotExist):
		// new document
	default:
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}

	if _, exists := doc[edit.Key]; exists {
		return Result{Message: fmt.Sprintf("%s already set in %s", edit.Key, edit.File)}, nil
	}

	doc[edit.Key] = decodeJSONValue(edit.Value)

	updated, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return Result{}, err
	}
	updated = append(updated, '\n')

	result := Result{
		Changed: true,
		Message: fmt.Sprintf("set %s in %s", edit.Key, edit.File),
		Diff:    diff.Preview(edit.File, original, updated),
	}

	if !write {
		return result, nil
	}

	perm := defaultFileMode
	if info, statErr := os.Stat(path); statErr == nil {
		perm = info.Mode().Perm()
	}
	if err := writeFileAtomic(path, updated, perm); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", path, err)
	}

	p.logDebug("settings default applied", edit)
	return result, nil
}

// decodeJSONValue interprets the catalogue's string value as JSON when it is
// valid JSON (true, 2, "quoted") and falls back to a plain string otherwise.
func decodeJSONValue(raw string) any {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err == nil {
		return value
	}
	return raw
}
