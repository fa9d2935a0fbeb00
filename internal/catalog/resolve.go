package catalog

import (
	"github.com/kitout-dev/kitout/internal/patch"
	"github.com/kitout-dev/kitout/internal/profile"
)

// DesiredState is the flag-resolved target configuration for one run.
// Slices preserve catalogue declaration order so plans are reproducible.
type DesiredState struct {
	Packages       []PackageRef
	Extensions     []ExtensionRef
	ConfigEdits    []patch.Edit
	PathCandidates []string
}

// Resolve derives the desired state from the catalogue and the feature
// flags. It is a pure function: the same catalogue and flags always produce
// the same state, and enabling more flags only ever grows it.
//
// Uninstall returns an empty desired state; removal planning works from
// RemovalSet instead, because the set of things to clean up is the historical
// union of everything ever shipped, not whatever the current flags select.
func (c *Catalog) Resolve(flags profile.FeatureFlags) DesiredState {
	if flags.Uninstall {
		return DesiredState{}
	}

	state := DesiredState{
		Packages:       append([]PackageRef{}, c.Core...),
		Extensions:     append([]ExtensionRef{}, c.ExtensionBaseline...),
		ConfigEdits:    append([]patch.Edit{}, c.ConfigEdits...),
		PathCandidates: append([]string{}, c.PathCandidates...),
	}

	if flags.Docker {
		state.Packages = append(state.Packages, c.Docker...)
	}
	if flags.PowerBI {
		state.Packages = append(state.Packages, c.PowerBI...)
	}
	if flags.SecurityTools {
		state.Packages = append(state.Packages, c.Security...)
	}
	if flags.AzureTools {
		state.Extensions = append(state.Extensions, c.AzureExtensions...)
	}
	if flags.SQLTools {
		state.Extensions = append(state.Extensions, c.SQLExtensions...)
	}

	return state
}

// RemovalSet is the union of every package the catalogue has ever shipped:
// all current groups plus the legacy IDs, in declaration order, de-duplicated
// by ID. It is independent of feature flags by design.
func (c *Catalog) RemovalSet() []PackageRef {
	var set []PackageRef
	seen := map[string]struct{}{}

	for _, group := range [][]PackageRef{c.Core, c.Docker, c.PowerBI, c.Security, c.Legacy} {
		for _, ref := range group {
			if _, dup := seen[ref.ID]; dup {
				continue
			}
			seen[ref.ID] = struct{}{}
			set = append(set, ref)
		}
	}

	return set
}

// GroupForExtension names the catalogue group an extension belongs to, for
// action rationale strings.
func (c *Catalog) GroupForExtension(id string) string {
	groups := []struct {
		name string
		refs []ExtensionRef
	}{
		{"baseline", c.ExtensionBaseline},
		{"azure_tools", c.AzureExtensions},
		{"sql_tools", c.SQLExtensions},
	}
	for _, group := range groups {
		for _, ref := range group.refs {
			if ref.ID == id {
				return group.name
			}
		}
	}
	return ""
}

// GroupFor names the catalogue group a package belongs to, for action
// rationale strings.
func (c *Catalog) GroupFor(id string) string {
	groups := []struct {
		name string
		refs []PackageRef
	}{
		{"core", c.Core},
		{"docker", c.Docker},
		{"power_bi", c.PowerBI},
		{"security", c.Security},
		{"legacy", c.Legacy},
	}
	for _, group := range groups {
		for _, ref := range group.refs {
			if ref.ID == id {
				return group.name
			}
		}
	}
	return ""
}
