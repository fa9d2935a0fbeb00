package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	kitouterrors "github.com/kitout-dev/kitout/pkg/errors"
)

//go:embed default.yaml
var defaultCatalogYAML []byte

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Default returns the catalogue compiled into the binary.
func Default() (*Catalog, error) {
	return parse(defaultCatalogYAML, "default catalogue")
}

// Load reads a catalogue document from disk, validates it, and returns the
// resulting model.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, kitouterrors.NewParseError(path, 0, err)
	}
	return parse(data, path)
}

func parse(data []byte, source string) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, kitouterrors.NewParseError(source, extractLine(err), err)
	}

	if err := Validate(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}

	return line
}
