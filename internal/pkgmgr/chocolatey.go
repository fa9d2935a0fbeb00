package pkgmgr

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/kitout-dev/kitout/internal/catalog"
	"github.com/kitout-dev/kitout/internal/runner"
	kitouterrors "github.com/kitout-dev/kitout/pkg/errors"
)

// Chocolatey drives the choco CLI. Construction fails when the binary is
// not on the search path, which is the run's fatal precondition.
type Chocolatey struct {
	binary  string
	run     *runner.Runner
	timeout time.Duration
}

// NewChocolatey locates the choco binary and returns a Manager backed by it.
func NewChocolatey(binary string, run *runner.Runner, timeout time.Duration) (*Chocolatey, error) {
	if binary == "" {
		binary = "choco"
	}

	resolved, err := exec.LookPath(binary)
	if err != nil {
		return nil, kitouterrors.NewPreconditionError(fmt.Sprintf("package manager %q not found on PATH", binary), err)
	}

	return &Chocolatey{binary: resolved, run: run, timeout: timeout}, nil
}

// ListInstalled parses `choco list -r` output (one "name|version" per line).
// Older Chocolatey versions need --localonly for the same listing, so that
// spelling is the fallback.
func (c *Chocolatey) ListInstalled(ctx context.Context) ([]catalog.PackageRef, error) {
	res := c.run.RunOnce(ctx, runner.Command{Name: c.binary, Args: []string{"list", "-r"}, Timeout: c.timeout})
	if !res.Success() {
		res = c.run.RunOnce(ctx, runner.Command{Name: c.binary, Args: []string{"list", "--localonly", "-r"}, Timeout: c.timeout})
	}
	if !res.Success() {
		return nil, fmt.Errorf("choco list failed: %s", res.FailureDetail())
	}

	return parseChocoList(res.Stdout), nil
}

// Install runs `choco install <id> -y` with retries.
func (c *Chocolatey) Install(ctx context.Context, ref catalog.PackageRef) runner.Result {
	return c.run.Run(ctx, runner.Command{
		Name:    c.binary,
		Args:    []string{"install", ref.ID, "-y", "--no-progress"},
		Timeout: c.timeout,
	})
}

// Uninstall runs `choco uninstall <id> -y` with retries.
func (c *Chocolatey) Uninstall(ctx context.Context, ref catalog.PackageRef) runner.Result {
	return c.run.Run(ctx, runner.Command{
		Name:    c.binary,
		Args:    []string{"uninstall", ref.ID, "-y"},
		Timeout: c.timeout,
	})
}

// UpdateSources refreshes the configured package sources.
func (c *Chocolatey) UpdateSources(ctx context.Context) runner.Result {
	return c.run.Run(ctx, runner.Command{
		Name:    c.binary,
		Args:    []string{"source", "update"},
		Timeout: c.timeout,
	})
}

// UpgradeAll upgrades every installed package.
func (c *Chocolatey) UpgradeAll(ctx context.Context) runner.Result {
	return c.run.Run(ctx, runner.Command{
		Name:    c.binary,
		Args:    []string{"upgrade", "all", "-y", "--no-progress"},
		Timeout: c.timeout,
	})
}

// parseChocoList tolerates blank and malformed lines; choco mixes warnings
// into -r output on some versions.
func parseChocoList(output string) []catalog.PackageRef {
	var refs []catalog.PackageRef

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) < 2 || parts[0] == "" {
			continue
		}
		refs = append(refs, catalog.PackageRef{ID: strings.ToLower(parts[0])})
	}

	return refs
}
