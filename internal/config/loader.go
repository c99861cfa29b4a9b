package config

import (
	"os"
	"path/filepath"

	"github.com/hostdeck/hostdeck/internal/errors"
	"github.com/spf13/viper"
)

const (
	// SystemConfigPath is the machine-wide config location.
	SystemConfigPath = "/etc/hostdeck/config.yaml"
	// UserConfigDir is the per-user config directory under $HOME.
	UserConfigDir = ".config/hostdeck"
	// ConfigFileName is the config file name inside UserConfigDir.
	ConfigFileName = "config.yaml"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'hostdeck init' to create one, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. /etc/hostdeck/config.yaml
// 3. ~/.config/hostdeck/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	if _, err := os.Stat(SystemConfigPath); err == nil {
		return SystemConfigPath, nil
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		userConfig := filepath.Join(home, UserConfigDir, ConfigFileName)
		if _, err := os.Stat(userConfig); err == nil {
			return userConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault loads config from the found path, or returns defaults when no
// config file exists anywhere. The dashboard runs fine without a file.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// parseConfig unmarshals viper state over the defaults, so a sparse file
// only overrides what it names.
func parseConfig(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Config file has invalid structure",
			"Compare your file against the output of 'hostdeck init'")
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
