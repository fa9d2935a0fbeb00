package reconcile

func (r *Reconciler) logInfo(msg string) {
	if r.in.Logger == nil {
		return
	}
	r.in.Logger.Info(msg)
}

func (r *Reconciler) logWarn(err error, msg string) {
	if r.in.Logger == nil {
		return
	}
	r.in.Logger.WithError(err).Warn(msg)
}

func (r *Reconciler) logAction(result ActionResult) {
	if r.in.Logger == nil {
		return
	}
	fields := map[string]any{"outcome": string(result.Outcome)}
	if result.Attempts > 0 {
		fields["attempts"] = result.Attempts
	}
	log := r.in.Logger.
		WithAction(string(result.Action.Kind), result.Action.Target).
		WithFields(fields)

	if result.Outcome == OutcomeFailed {
		log.WithFields(map[string]any{"lastError": result.LastError}).Warn("action failed")
		return
	}
	log.Debug("action recorded")
}

func (r *Reconciler) logSummary(report *RunReport) {
	if r.in.Logger == nil {
		return
	}
	counts := report.Counts()
	r.in.Logger.WithFields(map[string]any{
		"success":    counts.Success,
		"skipped":    counts.Skipped,
		"failed":     counts.Failed,
		"wouldApply": counts.WouldApply,
		"probes":     len(report.Probes),
		"duration":   report.Finished.Sub(report.Started).String(),
	}).Info("reconcile complete")
}
