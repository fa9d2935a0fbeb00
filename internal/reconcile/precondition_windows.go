//go:build windows

package reconcile

import "golang.org/x/sys/windows"

// processElevated reports whether the process token carries administrative
// rights. Chocolatey installs into machine-wide locations, so a
// non-elevated run would fail on the first action anyway.
func processElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
