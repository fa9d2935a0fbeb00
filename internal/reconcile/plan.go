package reconcile

import (
	"fmt"

	"github.com/kitout-dev/kitout/internal/catalog"
	"github.com/kitout-dev/kitout/internal/profile"
)

// Plan is the ordered action sequence for one run: source refresh, then
// packages, then the optional bulk upgrade, then extensions, config edits,
// and path additions. Within each group, catalogue declaration order is
// preserved so two runs over the same inputs produce identical plans.
type Plan struct {
	Actions []Action
}

// PlanInputs parameterize plan construction.
type PlanInputs struct {
	Catalog        *catalog.Catalog
	Flags          profile.FeatureFlags
	RefreshSources bool
	Upgrade        bool
}

// BuildPlan derives the full action sequence from the catalogue and flags.
// In uninstall mode the plan is built from the catalogue's removal set and
// ignores every other flag.
func BuildPlan(in PlanInputs) Plan {
	var plan Plan

	if in.Flags.Uninstall {
		for _, ref := range in.Catalog.RemovalSet() {
			plan.Actions = append(plan.Actions, Action{
				Kind:      KindUninstallPackage,
				Target:    ref.ID,
				Name:      ref.DisplayName(),
				Rationale: fmt.Sprintf("removal set (%s)", in.Catalog.GroupFor(ref.ID)),
				Package:   ref,
			})
		}
		return plan
	}

	desired := in.Catalog.Resolve(in.Flags)

	if in.RefreshSources {
		plan.Actions = append(plan.Actions, Action{
			Kind:      KindUpdateSources,
			Target:    "sources",
			Rationale: "requested source refresh",
		})
	}

	for _, ref := range desired.Packages {
		plan.Actions = append(plan.Actions, Action{
			Kind:      KindInstallPackage,
			Target:    ref.ID,
			Name:      ref.DisplayName(),
			Rationale: fmt.Sprintf("%s group", in.Catalog.GroupFor(ref.ID)),
			Package:   ref,
		})
	}

	if in.Upgrade {
		plan.Actions = append(plan.Actions, Action{
			Kind:      KindUpgradeAll,
			Target:    "all",
			Rationale: "requested upgrade",
		})
	}

	for _, ref := range desired.Extensions {
		plan.Actions = append(plan.Actions, Action{
			Kind:      KindInstallExtension,
			Target:    ref.ID,
			Rationale: fmt.Sprintf("%s extensions", in.Catalog.GroupForExtension(ref.ID)),
			Extension: ref,
		})
	}

	for _, edit := range desired.ConfigEdits {
		plan.Actions = append(plan.Actions, Action{
			Kind:      KindConfigPatch,
			Target:    edit.File,
			Name:      edit.Key,
			Rationale: "catalogue default",
			Edit:      edit,
		})
	}

	for _, dir := range desired.PathCandidates {
		plan.Actions = append(plan.Actions, Action{
			Kind:      KindPathAdd,
			Target:    dir,
			Rationale: "search path candidate",
		})
	}

	return plan
}
