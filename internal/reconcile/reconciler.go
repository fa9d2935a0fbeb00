// Package reconcile diffs the catalogue-derived desired state against the
// machine's observed state and executes the minimal ordered action plan.
// Actions run sequentially: the package manager and extension host are
// stateful external resources that must not be invoked concurrently.
package reconcile

import (
	"context"
	"strings"
	"time"

	"github.com/kitout-dev/kitout/internal/catalog"
	"github.com/kitout-dev/kitout/internal/exthost"
	"github.com/kitout-dev/kitout/internal/hostinfo"
	"github.com/kitout-dev/kitout/internal/logger"
	"github.com/kitout-dev/kitout/internal/patch"
	"github.com/kitout-dev/kitout/internal/pathenv"
	"github.com/kitout-dev/kitout/internal/pkgmgr"
	"github.com/kitout-dev/kitout/internal/probe"
	"github.com/kitout-dev/kitout/internal/profile"
	kitouterrors "github.com/kitout-dev/kitout/pkg/errors"
)

// Inputs carry everything a run needs: the catalogue, the flag selection,
// and the external collaborators. Collaborators are interfaces so tests can
// reconcile against in-memory fakes.
type Inputs struct {
	Catalog *catalog.Catalog
	Flags   profile.FeatureFlags

	DryRun         bool
	RefreshSources bool
	Upgrade        bool

	Packages      pkgmgr.Manager
	Extensions    exthost.Host
	Patcher       *patch.Patcher
	PathEnsurer   *pathenv.Ensurer
	PathCommitter pathenv.Committer
	Probes        *probe.Battery

	Logger *logger.Logger

	// Elevated overrides the platform elevation check; nil uses it.
	Elevated func() bool

	// OnResult, when set, receives each action result as soon as it is
	// recorded, so a progress view can update while the run is still going.
	// Called on the reconciling goroutine, in plan order.
	OnResult func(ActionResult)
}

// Reconciler executes the linear run state machine: resolve, observe, act,
// patch, path, validate. There are no back-edges; a failed action never
// blocks later independent actions, and only an unmet precondition aborts.
type Reconciler struct {
	in Inputs
}

// New creates a Reconciler.
func New(in Inputs) *Reconciler {
	if in.PathEnsurer == nil {
		in.PathEnsurer = pathenv.NewEnsurer()
	}
	if in.Patcher == nil {
		in.Patcher = patch.New(in.Logger)
	}
	return &Reconciler{in: in}
}

// observation is the fresh per-run snapshot of the machine. Never cached
// across runs and never mutated directly; only the action plan changes the
// underlying system.
type observation struct {
	packages map[string]struct{}
	// packagesKnown is false when the listing failed; installs then
	// proceed without the skip optimization instead of aborting the run.
	packagesKnown bool

	extensions          map[string]struct{}
	extensionsKnown     bool
	extensionsAvailable bool
}

// Reconcile runs the full state machine and returns the report. The only
// error return is the fatal precondition; every other failure lands in the
// report as a per-action outcome.
func (r *Reconciler) Reconcile(ctx context.Context) (*RunReport, error) {
	if err := r.checkPreconditions(); err != nil {
		return nil, err
	}

	report := &RunReport{
		Started:   time.Now(),
		Host:      hostinfo.Collect(),
		DryRun:    r.in.DryRun,
		Uninstall: r.in.Flags.Uninstall,
		Results:   []ActionResult{},
	}

	plan := BuildPlan(PlanInputs{
		Catalog:        r.in.Catalog,
		Flags:          r.in.Flags,
		RefreshSources: r.in.RefreshSources,
		Upgrade:        r.in.Upgrade,
	})

	obs := r.observe(ctx)
	r.execute(ctx, plan, obs, report)

	if r.in.Probes != nil && len(r.in.Catalog.Probes) > 0 {
		report.Probes = r.in.Probes.Run(ctx, r.in.Catalog.Probes)
	}

	report.Finished = time.Now()
	r.logSummary(report)
	return report, nil
}

func (r *Reconciler) checkPreconditions() error {
	if r.in.Catalog == nil {
		return kitouterrors.NewPreconditionError("no catalogue provided", nil)
	}
	if r.in.Packages == nil {
		return kitouterrors.NewPreconditionError("package manager unavailable", nil)
	}

	elevated := r.in.Elevated
	if elevated == nil {
		elevated = processElevated
	}
	if !elevated() {
		return kitouterrors.NewPreconditionError("administrative rights required", nil)
	}

	return nil
}

// observe fetches the installed package and extension sets. A collaborator
// that cannot answer degrades its sub-step instead of aborting the run.
func (r *Reconciler) observe(ctx context.Context) observation {
	obs := observation{}

	installed, err := r.in.Packages.ListInstalled(ctx)
	if err != nil {
		r.logWarn(err, "could not list installed packages; proceeding without skip detection")
	} else {
		obs.packages = make(map[string]struct{}, len(installed))
		for _, ref := range installed {
			obs.packages[strings.ToLower(ref.ID)] = struct{}{}
		}
		obs.packagesKnown = true
	}

	if r.in.Extensions == nil || !r.in.Extensions.Available() {
		r.logInfo("extension host unavailable; extension actions will be skipped")
		return obs
	}

	obs.extensionsAvailable = true
	extensions, err := r.in.Extensions.ListInstalled(ctx)
	if err != nil {
		r.logWarn(err, "could not list installed extensions; proceeding without skip detection")
		return obs
	}

	obs.extensions = make(map[string]struct{}, len(extensions))
	for _, ref := range extensions {
		obs.extensions[strings.ToLower(ref.ID)] = struct{}{}
	}
	obs.extensionsKnown = true
	return obs
}

// execute walks the plan in order, appending exactly one result per action.
func (r *Reconciler) execute(ctx context.Context, plan Plan, obs observation, report *RunReport) {
	pathState := r.beginPathState()

	for _, action := range plan.Actions {
		var result ActionResult
		switch action.Kind {
		case KindUpdateSources:
			result = r.runManagerAction(ctx, action, r.in.Packages.UpdateSources)
		case KindUpgradeAll:
			result = r.runManagerAction(ctx, action, r.in.Packages.UpgradeAll)
		case KindInstallPackage:
			result = r.installPackage(ctx, action, obs)
		case KindUninstallPackage:
			result = r.uninstallPackage(ctx, action, obs)
		case KindInstallExtension:
			result = r.installExtension(ctx, action, obs)
		case KindConfigPatch:
			result = r.applyConfigEdit(action)
		case KindPathAdd:
			result = pathState.ensure(action)
		}

		result.Action = action
		result.Timestamp = time.Now()
		report.Results = append(report.Results, result)
		r.logAction(result)
		if r.in.OnResult != nil {
			r.in.OnResult(result)
		}
	}

	pathState.commit(report)
}
