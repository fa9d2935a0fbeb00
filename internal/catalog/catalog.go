package catalog

import (
	"github.com/kitout-dev/kitout/internal/patch"
)

// PackageRef identifies one Chocolatey package. Identity is the ID; the
// display name only feeds reports and logs.
type PackageRef struct {
	ID   string `yaml:"id" json:"id" validate:"required,package_id"`
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
}

// DisplayName returns the human-readable name, falling back to the ID.
func (p PackageRef) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// ExtensionRef identifies one VS Code extension (publisher.name).
type ExtensionRef struct {
	ID string `yaml:"id" json:"id" validate:"required,extension_id"`
}

// Probe declares one post-condition check: a version query for a tool the
// catalogue is expected to have put on the machine.
type Probe struct {
	Name       string   `yaml:"name" json:"name" validate:"required"`
	Command    string   `yaml:"command" json:"command" validate:"required"`
	Args       []string `yaml:"args,omitempty" json:"args,omitempty"`
	MinVersion string   `yaml:"min_version,omitempty" json:"min_version,omitempty" validate:"omitempty,semver"`
	Group      string   `yaml:"group,omitempty" json:"group,omitempty"`
}

// Catalog is the single declarative source for everything the provisioner
// manages. Declaration order inside each list is load-bearing: plans preserve
// it so runs stay reproducible.
//
// The legacy list carries package IDs that older catalogue versions shipped
// under different spellings (renamed or retired upstream). They are never
// installed, but uninstall removes them so historical machines come clean.
type Catalog struct {
	Version string `yaml:"version" json:"version"`
	Name    string `yaml:"name,omitempty" json:"name,omitempty"`

	Core     []PackageRef `yaml:"core" json:"core" validate:"required,min=1,dive"`
	Docker   []PackageRef `yaml:"docker,omitempty" json:"docker,omitempty" validate:"dive"`
	PowerBI  []PackageRef `yaml:"power_bi,omitempty" json:"power_bi,omitempty" validate:"dive"`
	Security []PackageRef `yaml:"security,omitempty" json:"security,omitempty" validate:"dive"`

	ExtensionBaseline []ExtensionRef `yaml:"extension_baseline,omitempty" json:"extension_baseline,omitempty" validate:"dive"`
	AzureExtensions   []ExtensionRef `yaml:"azure_extensions,omitempty" json:"azure_extensions,omitempty" validate:"dive"`
	SQLExtensions     []ExtensionRef `yaml:"sql_extensions,omitempty" json:"sql_extensions,omitempty" validate:"dive"`

	ConfigEdits    []patch.Edit `yaml:"config_edits,omitempty" json:"config_edits,omitempty" validate:"dive"`
	PathCandidates []string     `yaml:"path_candidates,omitempty" json:"path_candidates,omitempty"`
	Probes         []Probe      `yaml:"probes,omitempty" json:"probes,omitempty" validate:"dive"`

	Legacy []PackageRef `yaml:"legacy,omitempty" json:"legacy,omitempty" validate:"dive"`
}
