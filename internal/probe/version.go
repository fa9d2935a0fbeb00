package probe

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// versionBelow reports whether actual is strictly older than minimum.
// Leading "v" prefixes are stripped and two-part versions ("2.44") are
// padded, since tool output rarely carries a full semver triple.
func versionBelow(actual, minimum string) (bool, error) {
	actualVersion, err := semver.NewVersion(normalizeVersion(actual))
	if err != nil {
		return false, err
	}
	minimumVersion, err := semver.NewVersion(normalizeVersion(minimum))
	if err != nil {
		return false, err
	}
	return actualVersion.LessThan(minimumVersion), nil
}

func normalizeVersion(v string) string {
	v = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(v), "v"))
	if strings.Count(v, ".") == 1 {
		v += ".0"
	}
	return v
}
