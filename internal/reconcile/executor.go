package reconcile

import (
	"context"
	"strings"

	"github.com/kitout-dev/kitout/internal/runner"
)

// runManagerAction executes UpdateSources/UpgradeAll style operations that
// have no per-target skip condition.
func (r *Reconciler) runManagerAction(ctx context.Context, action Action, invoke func(context.Context) runner.Result) ActionResult {
	if r.in.DryRun {
		return ActionResult{Outcome: OutcomeWouldApply, Message: "would invoke package manager"}
	}
	return fromRunnerResult(invoke(ctx), "completed")
}

func (r *Reconciler) installPackage(ctx context.Context, action Action, obs observation) ActionResult {
	if obs.packagesKnown {
		if _, installed := obs.packages[strings.ToLower(action.Package.ID)]; installed {
			return ActionResult{Outcome: OutcomeSkipped, Message: "already installed"}
		}
	}
	if r.in.DryRun {
		return ActionResult{Outcome: OutcomeWouldApply, Message: "would install"}
	}
	return fromRunnerResult(r.in.Packages.Install(ctx, action.Package), "installed")
}

func (r *Reconciler) uninstallPackage(ctx context.Context, action Action, obs observation) ActionResult {
	if obs.packagesKnown {
		if _, installed := obs.packages[strings.ToLower(action.Package.ID)]; !installed {
			return ActionResult{Outcome: OutcomeSkipped, Message: "already absent"}
		}
	}
	if r.in.DryRun {
		return ActionResult{Outcome: OutcomeWouldApply, Message: "would uninstall"}
	}
	return fromRunnerResult(r.in.Packages.Uninstall(ctx, action.Package), "uninstalled")
}

func (r *Reconciler) installExtension(ctx context.Context, action Action, obs observation) ActionResult {
	if !obs.extensionsAvailable {
		return ActionResult{Outcome: OutcomeSkipped, Message: "extension host unavailable"}
	}
	if obs.extensionsKnown {
		if _, installed := obs.extensions[strings.ToLower(action.Extension.ID)]; installed {
			return ActionResult{Outcome: OutcomeSkipped, Message: "already installed"}
		}
	}
	if r.in.DryRun {
		return ActionResult{Outcome: OutcomeWouldApply, Message: "would install"}
	}
	return fromRunnerResult(r.in.Extensions.Install(ctx, action.Extension), "installed")
}

func (r *Reconciler) applyConfigEdit(action Action) ActionResult {
	if r.in.DryRun {
		res, err := r.in.Patcher.Preview(action.Edit)
		if err != nil {
			return ActionResult{Outcome: OutcomeFailed, Attempts: 1, LastError: err.Error()}
		}
		if !res.Changed {
			return ActionResult{Outcome: OutcomeSkipped, Message: res.Message}
		}
		return ActionResult{Outcome: OutcomeWouldApply, Message: res.Message}
	}

	res, err := r.in.Patcher.Apply(action.Edit)
	if err != nil {
		return ActionResult{Outcome: OutcomeFailed, Attempts: 1, LastError: err.Error()}
	}
	if !res.Changed {
		return ActionResult{Outcome: OutcomeSkipped, Message: res.Message}
	}
	return ActionResult{Outcome: OutcomeSuccess, Attempts: 1, Message: res.Message}
}

// fromRunnerResult maps a command outcome onto an action outcome.
func fromRunnerResult(res runner.Result, successMessage string) ActionResult {
	result := ActionResult{
		Attempts: res.Attempts,
		Duration: res.Duration,
	}
	if res.Success() {
		result.Outcome = OutcomeSuccess
		result.Message = successMessage
		return result
	}

	result.Outcome = OutcomeFailed
	result.LastError = res.FailureDetail()
	if res.TimedOut {
		result.Message = "timed out"
	}
	return result
}

// pathState batches the run's path additions so the new search-path value
// is computed incrementally but committed at most once.
type pathState struct {
	r         *Reconciler
	current   []string
	appended  []string
	available bool
}

func (r *Reconciler) beginPathState() *pathState {
	state := &pathState{r: r}

	if r.in.PathCommitter == nil {
		return state
	}

	value, err := r.in.PathCommitter.Current()
	if err != nil {
		r.logWarn(err, "could not read current search path; path actions will be skipped")
		return state
	}

	state.available = true
	state.current = r.in.PathEnsurer.Split(value)
	return state
}

func (s *pathState) ensure(action Action) ActionResult {
	if !s.available {
		return ActionResult{Outcome: OutcomeSkipped, Message: "search path unavailable"}
	}

	updated, added := s.r.in.PathEnsurer.Ensure([]string{action.Target}, s.current)
	if len(added) == 0 {
		return ActionResult{Outcome: OutcomeSkipped, Message: "already on path or directory missing"}
	}

	s.current = updated
	s.appended = append(s.appended, action.Target)

	if s.r.in.DryRun {
		return ActionResult{Outcome: OutcomeWouldApply, Message: "would append to search path"}
	}

	return ActionResult{Outcome: OutcomeSuccess, Attempts: 1, Message: "appended to search path"}
}

// commit persists the accumulated value once. A commit failure downgrades
// the run's successful path additions to failures in place.
func (s *pathState) commit(report *RunReport) {
	if !s.available || s.r.in.DryRun || len(s.appended) == 0 {
		return
	}

	err := s.r.in.PathCommitter.Commit(s.r.in.PathEnsurer.Join(s.current))
	if err == nil {
		return
	}

	s.r.logWarn(err, "could not persist search path")
	for i := range report.Results {
		if report.Results[i].Action.Kind == KindPathAdd && report.Results[i].Outcome == OutcomeSuccess {
			report.Results[i].Outcome = OutcomeFailed
			report.Results[i].LastError = err.Error()
		}
	}
}
