package profile

// FeatureFlags selects the optional catalogue groups for a run. The zero
// value provisions the core toolchain only. Flags are fixed at process start
// and never mutated afterwards.
type FeatureFlags struct {
	AzureTools    bool `yaml:"azure_tools" json:"azure_tools"`
	SQLTools      bool `yaml:"sql_tools" json:"sql_tools"`
	Docker        bool `yaml:"docker" json:"docker"`
	PowerBI       bool `yaml:"power_bi" json:"power_bi"`
	SecurityTools bool `yaml:"security_tools" json:"security_tools"`
	Uninstall     bool `yaml:"uninstall" json:"uninstall"`
}

// Enabled lists the names of the set flags, in a fixed order, for rationale
// strings and logging.
func (f FeatureFlags) Enabled() []string {
	var names []string
	if f.AzureTools {
		names = append(names, "azure_tools")
	}
	if f.SQLTools {
		names = append(names, "sql_tools")
	}
	if f.Docker {
		names = append(names, "docker")
	}
	if f.PowerBI {
		names = append(names, "power_bi")
	}
	if f.SecurityTools {
		names = append(names, "security_tools")
	}
	if f.Uninstall {
		names = append(names, "uninstall")
	}
	return names
}
