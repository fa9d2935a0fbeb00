// Package hostinfo collects the host facts stamped onto every run report,
// so audit logs say which machine a run actually touched.
package hostinfo

import (
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/host"
)

// Host are the facts recorded in a run report.
type Host struct {
	Hostname        string `json:"hostname"`
	OS              string `json:"os"`
	Platform        string `json:"platform,omitempty"`
	PlatformVersion string `json:"platform_version,omitempty"`
	Arch            string `json:"arch"`
}

// Collect gathers host facts, degrading to the stdlib basics when the
// platform probes fail (containers, restricted environments).
func Collect() Host {
	facts := Host{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}

	if info, err := host.Info(); err == nil {
		facts.Hostname = info.Hostname
		facts.Platform = info.Platform
		facts.PlatformVersion = info.PlatformVersion
	}

	if facts.Hostname == "" {
		if name, err := os.Hostname(); err == nil {
			facts.Hostname = name
		}
	}

	return facts
}
