package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/polarismusic/navigator/errors"
)

// Load reads configuration from the default locations: defaults, then
// ~/.config/navigator/config.toml, then ./navigator.toml, then
// NAVIGATOR_-prefixed environment variables (highest precedence).
func Load() (*Config, error) {
	v := viper.New()
	initViper(v)

	// Missing config files are fine; defaults + env vars still apply
	mergeConfigFiles(v)

	return unmarshal(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	return unmarshal(v)
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

func initViper(v *viper.Viper) {
	v.SetEnvPrefix("NAVIGATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
}

// mergeConfigFiles merges user and project config files in precedence
// order: user config first, project config overrides it.
func mergeConfigFiles(v *viper.Viper) {
	if home, err := os.UserHomeDir(); err == nil {
		userConfig := filepath.Join(home, ".config", "navigator", "config.toml")
		if _, err := os.Stat(userConfig); err == nil {
			v.SetConfigFile(userConfig)
			v.SetConfigType("toml")
			_ = v.MergeInConfig()
		}
	}

	projectConfig := "navigator.toml"
	if _, err := os.Stat(projectConfig); err == nil {
		v.SetConfigFile(projectConfig)
		v.SetConfigType("toml")
		_ = v.MergeInConfig()
	}
}
