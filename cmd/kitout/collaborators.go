package main

import (
	"time"

	"github.com/kitout-dev/kitout/internal/exthost"
	"github.com/kitout-dev/kitout/internal/logger"
	"github.com/kitout-dev/kitout/internal/pathenv"
	"github.com/kitout-dev/kitout/internal/pkgmgr"
	"github.com/kitout-dev/kitout/internal/probe"
	"github.com/kitout-dev/kitout/internal/profile"
	"github.com/kitout-dev/kitout/internal/runner"
)

// probeTimeout bounds each version query. Probes are cheap; a tool that
// takes longer than this to print its version is effectively broken.
const probeTimeout = 30 * time.Second

// collaborators bundles the external-facing pieces a run wires into the
// reconciler: settings, logger, command runner, package manager, extension
// host, probe battery, and the search-path committer.
type collaborators struct {
	settings   *profile.Settings
	log        *logger.Logger
	run        *runner.Runner
	packages   *pkgmgr.Chocolatey
	extensions *exthost.VSCode
	probes     *probe.Battery
	committer  pathenv.Committer
}

// buildCollaborators loads settings and constructs the shared run pieces.
// requireManager controls whether a missing package manager is fatal.
// Apply, verify, and profile refresh need one; doctor, catalog pull, and
// the dashboard start without it.
func buildCollaborators(verbose, humanReadable, requireManager bool) (*collaborators, error) {
	settings, err := profile.LoadSettings()
	if err != nil {
		return nil, err
	}

	level := settings.LogLevel
	if verbose {
		level = "debug"
	}

	log, err := logger.New(logger.Options{Level: level, HumanReadable: humanReadable})
	if err != nil {
		return nil, err
	}

	run := runner.New(runner.Options{
		Retries: settings.Retries,
		Backoff: settings.Backoff,
	}, log)

	c := &collaborators{
		settings:   settings,
		log:        log,
		run:        run,
		extensions: exthost.NewVSCode(settings.CodeBinary, run, settings.CommandTimeout),
		probes:     probe.NewBattery(run, probeTimeout),
		committer:  pathenv.NewCommitter(),
	}

	packages, err := pkgmgr.NewChocolatey(settings.ChocoBinary, run, settings.CommandTimeout)
	if err != nil {
		if requireManager {
			return nil, err
		}
	} else {
		c.packages = packages
	}

	return c, nil
}
