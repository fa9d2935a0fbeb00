package store

import (
	"crypto/rand"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/xdg"
)

const (
	profileIDMaxLength     = 64
	randomIDSuffixLength   = 8
	randomIDSuffixFallback = "abcdefgh"
)

var (
	profileIDPattern    = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*[a-z0-9]$|^[a-z0-9]$`)
	nonAlphanumericExpr = regexp.MustCompile(`[^a-z0-9]+`)
)

// DefaultStorePath locates profiles.json in the user data dir.
func DefaultStorePath() string {
	return filepath.Join(xdg.DataHome, "kitout", "profiles.json")
}

// DefaultCachePath locates status.json in the user data dir.
func DefaultCachePath() string {
	return filepath.Join(xdg.DataHome, "kitout", "status.json")
}

// DefaultCatalogDir locates the directory pulled team catalogues land in.
func DefaultCatalogDir() string {
	return filepath.Join(xdg.DataHome, "kitout", "catalog")
}

// GenerateProfileID converts a profile name into a sanitized ID.
func GenerateProfileID(name string) string {
	id := sanitizeName(name)
	if id == "" {
		id = fmt.Sprintf("profile-%s", randomIDSuffix(randomIDSuffixLength))
	}

	if len(id) > profileIDMaxLength {
		id = strings.Trim(id[:profileIDMaxLength], "-")
	}

	if id == "" {
		id = fmt.Sprintf("profile-%s", randomIDSuffix(randomIDSuffixLength))
	}

	return id
}

// ValidateProfileID ensures the provided ID matches the allowed pattern.
func ValidateProfileID(id string) error {
	if id == "" {
		return fmt.Errorf("profile ID cannot be empty")
	}

	if len(id) > profileIDMaxLength {
		return fmt.Errorf("profile ID %q is too long: maximum length is %d characters", id, profileIDMaxLength)
	}

	if !profileIDPattern.MatchString(id) {
		return fmt.Errorf("invalid profile ID %q: must match %s", id, profileIDPattern.String())
	}

	return nil
}

func sanitizeName(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	sanitized := nonAlphanumericExpr.ReplaceAllString(lowered, "-")
	return strings.Trim(sanitized, "-")
}

func randomIDSuffix(length int) string {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return randomIDSuffixFallback
	}

	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return string(buf)
}
