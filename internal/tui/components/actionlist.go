package components

import (
	"github.com/kitout-dev/kitout/internal/reconcile"
)

// ActionEntry pairs an action key with its latest result.
type ActionEntry struct {
	Key    string
	Result reconcile.ActionResult
}

// ActionList presents planned actions in their execution order.
type ActionList struct {
	entries []ActionEntry
}

// NewActionList builds an ordered list from the model's action map.
func NewActionList(order []string, actions map[string]reconcile.ActionResult) ActionList {
	entries := make([]ActionEntry, 0, len(order))
	for _, key := range order {
		result, ok := actions[key]
		if !ok {
			continue
		}
		entries = append(entries, ActionEntry{Key: key, Result: result})
	}
	return ActionList{entries: entries}
}

// Entries returns the list entries in order.
func (l ActionList) Entries() []ActionEntry {
	return l.entries
}
