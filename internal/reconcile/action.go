package reconcile

import (
	"time"

	"github.com/kitout-dev/kitout/internal/catalog"
	"github.com/kitout-dev/kitout/internal/patch"
)

// Kind enumerates the action types a plan can carry.
type Kind string

const (
	KindUpdateSources    Kind = "update_sources"
	KindInstallPackage   Kind = "install_package"
	KindUninstallPackage Kind = "uninstall_package"
	KindUpgradeAll       Kind = "upgrade_all"
	KindInstallExtension Kind = "install_extension"
	KindConfigPatch      Kind = "config_patch"
	KindPathAdd          Kind = "path_add"
)

// Action is one planned operation. Target identifies what it touches (a
// package ID, extension ID, file, or directory); Rationale names the
// catalogue group or flag that pulled the action into the plan.
type Action struct {
	Kind      Kind   `json:"kind"`
	Target    string `json:"target"`
	Name      string `json:"name,omitempty"`
	Rationale string `json:"rationale,omitempty"`

	// Typed payloads for the executor; not part of the serialized report.
	Package   catalog.PackageRef   `json:"-"`
	Extension catalog.ExtensionRef `json:"-"`
	Edit      patch.Edit           `json:"-"`
}

// Outcome classifies one executed action.
type Outcome string

const (
	// OutcomeSuccess means the action ran and changed the system.
	OutcomeSuccess Outcome = "success"
	// OutcomeSkipped means the target was already in its desired state.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed means the action failed after exhausting its retries.
	OutcomeFailed Outcome = "failed"
	// OutcomeWouldApply is the dry-run stand-in for OutcomeSuccess.
	OutcomeWouldApply Outcome = "would_apply"
)

// ActionResult records what happened to one action. Every planned action
// produces exactly one result; nothing is ever silently dropped from the
// report.
type ActionResult struct {
	Action    Action        `json:"action"`
	Outcome   Outcome       `json:"outcome"`
	Attempts  int           `json:"attempts,omitempty"`
	Message   string        `json:"message,omitempty"`
	LastError string        `json:"last_error,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}
