//go:build !windows

package pathenv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const profileMarker = "# added by kitout"

// profileCommitter appends an export line to the user's shell profile.
// The marker comment keeps repeat commits from stacking duplicate lines.
type profileCommitter struct {
	profilePath string
}

// NewCommitter returns the platform committer.
func NewCommitter() Committer {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &profileCommitter{profilePath: filepath.Join(home, ".profile")}
}

func (c *profileCommitter) Current() (string, error) {
	return os.Getenv("PATH"), nil
}

func (c *profileCommitter) Commit(value string) error {
	line := fmt.Sprintf("export PATH=%q %s", value, profileMarker)

	existing, err := os.ReadFile(c.profilePath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	var kept []string
	for _, l := range strings.Split(string(existing), "\n") {
		if strings.HasSuffix(strings.TrimSpace(l), profileMarker) {
			continue
		}
		kept = append(kept, l)
	}

	content := strings.TrimRight(strings.Join(kept, "\n"), "\n")
	if content != "" {
		content += "\n"
	}
	content += line + "\n"

	return os.WriteFile(c.profilePath, []byte(content), 0o644)
}
