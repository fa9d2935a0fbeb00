package reconcile

import (
	"encoding/json"
	"time"

	"github.com/kitout-dev/kitout/internal/hostinfo"
	"github.com/kitout-dev/kitout/internal/probe"
)

// RunReport is the auditable record of one reconcile run. Only the
// reconciler appends to it; once Finished is stamped it is immutable.
// Probe results are an ordered array, not a map, so serialized reports are
// byte-for-byte deterministic for identical runs.
type RunReport struct {
	Started   time.Time      `json:"started"`
	Finished  time.Time      `json:"finished"`
	Host      hostinfo.Host  `json:"host"`
	DryRun    bool           `json:"dry_run,omitempty"`
	Uninstall bool           `json:"uninstall,omitempty"`
	Results   []ActionResult `json:"results"`
	Probes    []probe.Result `json:"probes,omitempty"`
}

// Counts aggregates action outcomes.
type Counts struct {
	Success    int `json:"success"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
	WouldApply int `json:"would_apply"`
}

// Counts tallies the report's action outcomes.
func (r *RunReport) Counts() Counts {
	var c Counts
	for _, result := range r.Results {
		switch result.Outcome {
		case OutcomeSuccess:
			c.Success++
		case OutcomeSkipped:
			c.Skipped++
		case OutcomeFailed:
			c.Failed++
		case OutcomeWouldApply:
			c.WouldApply++
		}
	}
	return c
}

// HasFailures reports whether any action failed after retries.
func (r *RunReport) HasFailures() bool {
	return r.Counts().Failed > 0
}

// ProbeByName finds a probe result in the report.
func (r *RunReport) ProbeByName(name string) (probe.Result, bool) {
	for _, p := range r.Probes {
		if p.Name == name {
			return p, true
		}
	}
	return probe.Result{}, false
}

// JSON serializes the report for audit logs.
func (r *RunReport) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
