// Package probe runs the post-condition battery: version queries for the
// tools the catalogue should have put on the machine. Probes are purely
// observational and never short-circuit on individual failures.
package probe

import (
	"context"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/kitout-dev/kitout/internal/catalog"
	"github.com/kitout-dev/kitout/internal/runner"
)

// Outcome classifies one probe.
type Outcome string

const (
	// OutcomePresent means the tool responded to its version query.
	OutcomePresent Outcome = "present"
	// OutcomeAbsent means the command is not on the search path. Not an
	// error: optional groups legitimately leave their tools uninstalled.
	OutcomeAbsent Outcome = "absent"
	// OutcomeError means the command exists but the query failed.
	OutcomeError Outcome = "error"
)

// Result is the classified outcome of one probe.
type Result struct {
	Name     string  `json:"name"`
	Outcome  Outcome `json:"outcome"`
	Version  string  `json:"version,omitempty"`
	Detail   string  `json:"detail,omitempty"`
	Outdated bool    `json:"outdated,omitempty"`
}

// Battery executes probes sequentially.
type Battery struct {
	run      *runner.Runner
	timeout  time.Duration
	lookPath func(string) (string, error)
}

// NewBattery creates a Battery. The runner executes each probe once; probes
// are cheap and retrying them would only mask flakiness.
func NewBattery(run *runner.Runner, timeout time.Duration) *Battery {
	return &Battery{run: run, timeout: timeout, lookPath: exec.LookPath}
}

// Run executes every probe and returns results in probe order. A failing
// probe never aborts the rest of the battery.
func (b *Battery) Run(ctx context.Context, probes []catalog.Probe) []Result {
	results := make([]Result, 0, len(probes))
	for _, p := range probes {
		results = append(results, b.runProbe(ctx, p))
	}
	return results
}

func (b *Battery) runProbe(ctx context.Context, p catalog.Probe) Result {
	result := Result{Name: p.Name}

	binary, err := b.lookPath(p.Command)
	if err != nil {
		result.Outcome = OutcomeAbsent
		return result
	}

	res := b.run.RunOnce(ctx, runner.Command{Name: binary, Args: p.Args, Timeout: b.timeout})
	if !res.Success() {
		result.Outcome = OutcomeError
		result.Detail = res.FailureDetail()
		return result
	}

	result.Outcome = OutcomePresent
	result.Version = extractVersion(res.Stdout + "\n" + res.Stderr)

	if p.MinVersion != "" && result.Version != "" {
		below, cmpErr := versionBelow(result.Version, p.MinVersion)
		if cmpErr == nil && below {
			result.Outdated = true
			result.Detail = "below minimum " + p.MinVersion
		}
	}

	return result
}

var versionTokenPattern = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?)`)

// extractVersion pulls the first version-looking token out of the query
// output. Tools disagree wildly on output shape; the first dotted number on
// the first matching line is the best stable signal.
func extractVersion(output string) string {
	for _, line := range strings.Split(output, "\n") {
		if match := versionTokenPattern.FindStringSubmatch(line); match != nil {
			return match[1]
		}
	}
	return ""
}
