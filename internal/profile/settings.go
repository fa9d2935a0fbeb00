package profile

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// Settings are the tool's own knobs, distinct from catalogue content. They
// come from kitout.yaml in the user config dir plus KITOUT_* environment
// variables, and exist mostly so CI and locked-down machines can override
// binaries and retry behaviour without touching the catalogue.
type Settings struct {
	Retries        int           `mapstructure:"retries"`
	Backoff        time.Duration `mapstructure:"backoff"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`

	ChocoBinary string `mapstructure:"choco_binary"`
	CodeBinary  string `mapstructure:"code_binary"`

	CatalogRemote string `mapstructure:"catalog_remote"`

	LogLevel string `mapstructure:"log_level"`
}

// DefaultSettings mirrors the retry behaviour of the original provisioning
// scripts: three attempts, five seconds apart.
func DefaultSettings() *Settings {
	return &Settings{
		Retries:        3,
		Backoff:        5 * time.Second,
		CommandTimeout: 15 * time.Minute,
		ChocoBinary:    "choco",
		CodeBinary:     "code",
		LogLevel:       "info",
	}
}

// LoadSettings reads settings from file and environment.
func LoadSettings() (*Settings, error) {
	settings := DefaultSettings()

	v := viper.New()
	v.SetConfigName("kitout")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(xdg.ConfigHome, "kitout"))
	v.AddConfigPath(".")

	v.SetEnvPrefix("KITOUT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading settings: %w", err)
		}
	}

	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling settings: %w", err)
	}

	return settings, nil
}
