package profile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	kitouterrors "github.com/kitout-dev/kitout/pkg/errors"
)

// Profile is a named, reusable flag selection stored as a YAML document.
// Teams check these in next to their catalogue so every workstation in a
// role gets the same optional groups.
type Profile struct {
	Name        string       `yaml:"name" json:"name"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Flags       FeatureFlags `yaml:"flags" json:"flags"`
	CatalogPath string       `yaml:"catalog,omitempty" json:"catalog,omitempty"`
}

// LoadProfile reads and validates a profile document.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, kitouterrors.NewParseError(path, yamlErrorLine(err), err)
	}

	if strings.TrimSpace(p.Name) == "" {
		return nil, kitouterrors.NewValidationError("name", "profile name is required", nil)
	}

	return &p, nil
}

// yamlErrorLine extracts a line number from a yaml.v3 error message when one
// is present ("yaml: line N: ...").
func yamlErrorLine(err error) int {
	if err == nil {
		return 0
	}
	msg := err.Error()
	idx := strings.Index(msg, "line ")
	if idx < 0 {
		return 0
	}
	rest := msg[idx+len("line "):]
	end := strings.IndexAny(rest, ":,")
	if end > 0 {
		rest = rest[:end]
	}
	var line int
	if _, scanErr := fmt.Sscanf(strings.TrimSpace(rest), "%d", &line); scanErr != nil {
		return 0
	}
	return line
}
