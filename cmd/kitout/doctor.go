package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kitout-dev/kitout/internal/hostinfo"
	"github.com/kitout-dev/kitout/internal/probe"
)

type doctorOptions struct {
	selection selectionFlags
	verbose   bool
	jsonOut   bool
}

func newDoctorCmd(root *rootFlags) *cobra.Command {
	opts := doctorOptions{}

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run the version probe battery against installed tools",
		Long: `Doctor runs only the catalogue's validation probes: it asks each expected
tool for its version and reports which ones respond. Nothing is installed
or changed. Absent tools are normal when their group was never selected.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.verbose = root.verbose
			return runDoctor(opts)
		},
	}

	opts.selection.register(cmd)
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Output results in JSON format")

	return cmd
}

func runDoctor(opts doctorOptions) error {
	_, cat, err := opts.selection.resolve()
	if err != nil {
		return err
	}

	c, err := buildCollaborators(opts.verbose, !opts.jsonOut, false)
	if err != nil {
		return err
	}

	results := c.probes.Run(context.Background(), cat.Probes)

	if opts.jsonOut {
		payload := struct {
			Host   hostinfo.Host  `json:"host"`
			Probes []probe.Result `json:"probes"`
		}{
			Host:   hostinfo.Collect(),
			Probes: results,
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	host := hostinfo.Collect()
	fmt.Printf("Host: %s (%s %s)\n\n", host.Hostname, host.Platform, host.PlatformVersion)

	present, absent := 0, 0
	for _, pr := range results {
		label := probeStatusLabel(pr)
		detail := probeDetail(pr.Version, pr.Detail)
		fmt.Printf("  %-14s %-12s %s\n", pr.Name, label, detail)
		if pr.Outcome == probe.OutcomePresent {
			present++
		} else {
			absent++
		}
	}

	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("%d present, %d absent or failing\n", present, absent)

	return nil
}
