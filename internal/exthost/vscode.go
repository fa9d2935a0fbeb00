package exthost

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/kitout-dev/kitout/internal/catalog"
	"github.com/kitout-dev/kitout/internal/runner"
)

// VSCode drives the `code` CLI.
type VSCode struct {
	binary  string
	run     *runner.Runner
	timeout time.Duration
}

// NewVSCode returns a Host backed by the code CLI. Unlike the package
// manager, a missing binary is not an error here; Available reports it.
func NewVSCode(binary string, run *runner.Runner, timeout time.Duration) *VSCode {
	if binary == "" {
		binary = "code"
	}
	return &VSCode{binary: binary, run: run, timeout: timeout}
}

// Available reports whether the code CLI is on the search path.
func (v *VSCode) Available() bool {
	_, err := exec.LookPath(v.binary)
	return err == nil
}

// ListInstalled parses `code --list-extensions` output, one ID per line.
func (v *VSCode) ListInstalled(ctx context.Context) ([]catalog.ExtensionRef, error) {
	res := v.run.RunOnce(ctx, runner.Command{Name: v.binary, Args: []string{"--list-extensions"}, Timeout: v.timeout})
	if !res.Success() {
		return nil, fmt.Errorf("code --list-extensions failed: %s", res.FailureDetail())
	}

	var refs []catalog.ExtensionRef
	scanner := bufio.NewScanner(strings.NewReader(res.Stdout))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.Contains(line, ".") {
			continue
		}
		refs = append(refs, catalog.ExtensionRef{ID: strings.ToLower(line)})
	}

	return refs, nil
}

// Install runs `code --install-extension <id> --force` with retries.
func (v *VSCode) Install(ctx context.Context, ref catalog.ExtensionRef) runner.Result {
	return v.run.Run(ctx, runner.Command{
		Name:    v.binary,
		Args:    []string{"--install-extension", ref.ID, "--force"},
		Timeout: v.timeout,
	})
}
