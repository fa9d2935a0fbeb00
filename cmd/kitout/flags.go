package main

import (
	"github.com/spf13/cobra"

	"github.com/kitout-dev/kitout/internal/catalog"
	"github.com/kitout-dev/kitout/internal/profile"
)

// selectionFlags mirror the original provisioning switches: each flag opts a
// catalogue group into the run. A profile document can preset them; explicit
// command-line flags are additive on top.
type selectionFlags struct {
	azureTools    bool
	sqlTools      bool
	docker        bool
	powerBI       bool
	securityTools bool
	uninstall     bool

	profilePath string
	catalogPath string
}

func (s *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&s.azureTools, "azure-tools", false, "Include the Azure tooling group")
	cmd.Flags().BoolVar(&s.sqlTools, "sql-tools", false, "Include the SQL tooling group")
	cmd.Flags().BoolVar(&s.docker, "docker", false, "Include Docker Desktop")
	cmd.Flags().BoolVar(&s.powerBI, "power-bi", false, "Include Power BI Desktop")
	cmd.Flags().BoolVar(&s.securityTools, "security-tools", false, "Include the security scanning group")
	cmd.Flags().BoolVar(&s.uninstall, "uninstall", false, "Remove every managed package instead of installing")
	cmd.Flags().StringVarP(&s.profilePath, "profile", "p", "", "Path to a profile document presetting these flags")
	cmd.Flags().StringVarP(&s.catalogPath, "catalog", "c", "", "Path to a catalogue file (defaults to the built-in catalogue)")
}

// resolve combines the profile document (if any) with the explicit flags and
// loads the effective catalogue. Explicit flags never unset profile flags.
func (s *selectionFlags) resolve() (profile.FeatureFlags, *catalog.Catalog, error) {
	var flags profile.FeatureFlags

	catalogPath := s.catalogPath

	if s.profilePath != "" {
		p, err := profile.LoadProfile(s.profilePath)
		if err != nil {
			return flags, nil, err
		}
		flags = p.Flags
		if catalogPath == "" {
			catalogPath = p.CatalogPath
		}
	}

	flags.AzureTools = flags.AzureTools || s.azureTools
	flags.SQLTools = flags.SQLTools || s.sqlTools
	flags.Docker = flags.Docker || s.docker
	flags.PowerBI = flags.PowerBI || s.powerBI
	flags.SecurityTools = flags.SecurityTools || s.securityTools
	flags.Uninstall = flags.Uninstall || s.uninstall

	var (
		cat *catalog.Catalog
		err error
	)
	if catalogPath != "" {
		cat, err = catalog.Load(catalogPath)
	} else {
		cat, err = catalog.Default()
	}
	if err != nil {
		return flags, nil, err
	}

	return flags, cat, nil
}
