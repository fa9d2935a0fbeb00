package runner

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/kitout-dev/kitout/internal/logger"
)

const (
	// DefaultRetries is the total number of attempts per command, matching
	// the retry loops of the original provisioning scripts.
	DefaultRetries = 3

	// DefaultBackoff is the pause between attempts.
	DefaultBackoff = 5 * time.Second

	// maxOutputSize caps captured stdout/stderr per stream.
	maxOutputSize = 1024 * 1024
)

// Command describes one external invocation.
type Command struct {
	Name    string
	Args    []string
	Dir     string
	Timeout time.Duration
}

// Result is the structured outcome of running a Command, covering every
// attempt made.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Attempts int
	TimedOut bool
	Duration time.Duration
	Err      error
}

// Success reports whether the final attempt exited cleanly.
func (r Result) Success() bool {
	return r.Err == nil && r.ExitCode == 0
}

// FailureDetail summarizes the failure for reports, preferring stderr.
func (r Result) FailureDetail() string {
	if r.Success() {
		return ""
	}
	if detail := strings.TrimSpace(r.Stderr); detail != "" {
		return detail
	}
	if detail := strings.TrimSpace(r.Stdout); detail != "" {
		return detail
	}
	if r.Err != nil {
		return r.Err.Error()
	}
	return ""
}

// Options configure retry behaviour.
type Options struct {
	Retries int
	Backoff time.Duration
}

// Runner executes external commands with bounded retries. A non-zero exit,
// an I/O error, or a per-attempt timeout consumes one attempt; the runner
// sleeps between attempts and reports the final attempt's capture. The
// runner never interprets "already satisfied" conditions; that
// classification belongs to its callers.
type Runner struct {
	opts  Options
	log   *logger.Logger
	sleep func(time.Duration)
}

// New creates a Runner. The logger may be nil.
func New(opts Options, log *logger.Logger) *Runner {
	if opts.Retries <= 0 {
		opts.Retries = DefaultRetries
	}
	if opts.Backoff <= 0 {
		opts.Backoff = DefaultBackoff
	}
	return &Runner{opts: opts, log: log, sleep: time.Sleep}
}

// Run executes the command, retrying on failure up to the configured bound.
func (r *Runner) Run(ctx context.Context, cmd Command) Result {
	started := time.Now()

	var result Result
	for attempt := 1; attempt <= r.opts.Retries; attempt++ {
		result = r.runOnce(ctx, cmd)
		result.Attempts = attempt
		result.Duration = time.Since(started)

		if result.Success() {
			return result
		}

		// A cancelled parent context means the caller is done, not that
		// the command is flaky.
		if ctx.Err() != nil {
			return result
		}

		if attempt < r.opts.Retries {
			r.logRetry(cmd, attempt, result)
			r.sleep(r.opts.Backoff)
		}
	}

	return result
}

// RunOnce executes the command a single time regardless of retry options.
func (r *Runner) RunOnce(ctx context.Context, cmd Command) Result {
	started := time.Now()
	result := r.runOnce(ctx, cmd)
	result.Attempts = 1
	result.Duration = time.Since(started)
	return result
}

func (r *Runner) runOnce(ctx context.Context, cmd Command) Result {
	attemptCtx := ctx
	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	execCmd := exec.CommandContext(attemptCtx, cmd.Name, cmd.Args...)
	execCmd.Dir = cmd.Dir

	stdout := &limitedWriter{limit: maxOutputSize}
	stderr := &limitedWriter{limit: maxOutputSize}
	execCmd.Stdout = stdout
	execCmd.Stderr = stderr

	err := execCmd.Run()

	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	switch {
	case err == nil:
		result.ExitCode = 0
	case errors.Is(attemptCtx.Err(), context.DeadlineExceeded):
		result.TimedOut = true
		result.ExitCode = -1
		result.Err = context.DeadlineExceeded
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
		result.Err = err
	}

	return result
}

func (r *Runner) logRetry(cmd Command, attempt int, result Result) {
	if r.log == nil {
		return
	}
	r.log.WithFields(map[string]any{
		"command":  cmd.Name,
		"attempt":  attempt,
		"retries":  r.opts.Retries,
		"exitCode": result.ExitCode,
		"timedOut": result.TimedOut,
	}).Warn("command failed, retrying after backoff")
}
