// Package exthost abstracts the editor's extension installer. Extensions
// are inherently best-effort: the editor may not be on the search path yet
// (it is often installed earlier in the same run), so callers degrade
// rather than abort when the host is unavailable.
package exthost

import (
	"context"

	"github.com/kitout-dev/kitout/internal/catalog"
	"github.com/kitout-dev/kitout/internal/runner"
)

// Host is the extension-host collaborator.
type Host interface {
	// Available reports whether the host CLI can be reached at all.
	Available() bool

	// ListInstalled queries the currently installed extensions.
	ListInstalled(ctx context.Context) ([]catalog.ExtensionRef, error)

	// Install installs one extension.
	Install(ctx context.Context, ref catalog.ExtensionRef) runner.Result
}
