// Package pkgmgr abstracts the system package manager behind a narrow
// interface so the reconciler never shells out directly.
package pkgmgr

import (
	"context"

	"github.com/kitout-dev/kitout/internal/catalog"
	"github.com/kitout-dev/kitout/internal/runner"
)

// Manager is the package-manager collaborator. Implementations are stateful
// external resources and must not be invoked concurrently.
type Manager interface {
	// ListInstalled queries the currently installed packages. Called fresh
	// each run; results are never cached.
	ListInstalled(ctx context.Context) ([]catalog.PackageRef, error)

	// Install installs one package, retrying per runner policy.
	Install(ctx context.Context, ref catalog.PackageRef) runner.Result

	// Uninstall removes one package.
	Uninstall(ctx context.Context, ref catalog.PackageRef) runner.Result

	// UpdateSources refreshes the manager's package sources.
	UpdateSources(ctx context.Context) runner.Result

	// UpgradeAll upgrades every installed package.
	UpgradeAll(ctx context.Context) runner.Result
}
