package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// writeScript creates an executable shell script and returns its path.
func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

// newTestRunner returns a runner whose backoff sleeps are recorded instead
// of waited out.
func newTestRunner(opts Options) (*Runner, *[]time.Duration) {
	r := New(opts, nil)
	var slept []time.Duration
	r.sleep = func(d time.Duration) { slept = append(slept, d) }
	return r, &slept
}

func TestRunSucceedsFirstAttempt(t *testing.T) {
	t.Parallel()

	script := writeScript(t, "ok.sh", "echo hello\nexit 0\n")
	r, slept := newTestRunner(Options{Retries: 3, Backoff: time.Second})

	res := r.Run(context.Background(), Command{Name: script})
	require.True(t, res.Success())
	require.Equal(t, 1, res.Attempts)
	require.Contains(t, res.Stdout, "hello")
	require.Empty(t, *slept)
}

func TestRunRetriesUntilSuccess(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	marker := filepath.Join(dir, "attempts")
	script := filepath.Join(dir, "flaky.sh")
	body := fmt.Sprintf("#!/bin/sh\nif [ -f %q ]; then echo recovered; exit 0; fi\ntouch %q\necho transient >&2\nexit 1\n", marker, marker)
	require.NoError(t, os.WriteFile(script, []byte(body), 0o755))

	r, slept := newTestRunner(Options{Retries: 3, Backoff: 2 * time.Second})

	res := r.Run(context.Background(), Command{Name: script})
	require.True(t, res.Success())
	require.Equal(t, 2, res.Attempts)
	require.Equal(t, []time.Duration{2 * time.Second}, *slept)
}

func TestRunExhaustsRetries(t *testing.T) {
	t.Parallel()

	script := writeScript(t, "fail.sh", "echo broken >&2\nexit 7\n")
	r, slept := newTestRunner(Options{Retries: 3, Backoff: time.Second})

	res := r.Run(context.Background(), Command{Name: script})
	require.False(t, res.Success())
	require.Equal(t, 3, res.Attempts)
	require.Equal(t, 7, res.ExitCode)
	require.Contains(t, res.FailureDetail(), "broken")
	require.Len(t, *slept, 2, "sleep between attempts only, never after the last")
}

func TestRunTimeoutCountsAsFailedAttempt(t *testing.T) {
	t.Parallel()

	script := writeScript(t, "slow.sh", "sleep 5\n")
	r, _ := newTestRunner(Options{Retries: 2, Backoff: time.Millisecond})
	r.sleep = func(time.Duration) {}

	res := r.Run(context.Background(), Command{Name: script, Timeout: 50 * time.Millisecond})
	require.False(t, res.Success())
	require.True(t, res.TimedOut)
	require.Equal(t, 2, res.Attempts)
}

func TestRunStopsWhenCallerCancels(t *testing.T) {
	t.Parallel()

	script := writeScript(t, "fail.sh", "exit 1\n")
	r, slept := newTestRunner(Options{Retries: 5, Backoff: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := r.Run(ctx, Command{Name: script})
	require.False(t, res.Success())
	require.Equal(t, 1, res.Attempts)
	require.Empty(t, *slept)
}

func TestRunOnceIgnoresRetryOptions(t *testing.T) {
	t.Parallel()

	script := writeScript(t, "fail.sh", "exit 1\n")
	r, slept := newTestRunner(Options{Retries: 5, Backoff: time.Second})

	res := r.RunOnce(context.Background(), Command{Name: script})
	require.False(t, res.Success())
	require.Equal(t, 1, res.Attempts)
	require.Empty(t, *slept)
}

func TestRunMissingBinaryReportsError(t *testing.T) {
	t.Parallel()

	r, _ := newTestRunner(Options{Retries: 1, Backoff: time.Millisecond})
	res := r.Run(context.Background(), Command{Name: filepath.Join(t.TempDir(), "nope")})
	require.False(t, res.Success())
	require.Error(t, res.Err)
	require.NotEmpty(t, res.FailureDetail())
}
