//go:build windows

package pathenv

import (
	"golang.org/x/sys/windows/registry"
)

// registryCommitter persists the user PATH via HKCU\Environment, the same
// location setx writes. Broadcasting WM_SETTINGCHANGE is deliberately
// omitted; new shells pick the value up regardless.
type registryCommitter struct{}

// NewCommitter returns the platform committer.
func NewCommitter() Committer {
	return registryCommitter{}
}

func (registryCommitter) Current() (string, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, "Environment", registry.QUERY_VALUE)
	if err != nil {
		return "", err
	}
	defer key.Close()

	value, _, err := key.GetStringValue("Path")
	if err == registry.ErrNotExist {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (registryCommitter) Commit(value string) error {
	key, err := registry.OpenKey(registry.CURRENT_USER, "Environment", registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer key.Close()

	return key.SetExpandStringValue("Path", value)
}
