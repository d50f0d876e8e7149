package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnvVar overrides the filesearch home directory.
const HomeEnvVar = "FILESEARCH_HOME"

// ConfigFileName is the name of the config file inside the home directory.
const ConfigFileName = "config.yaml"

// GetHome returns the filesearch home directory
// Priority order:
//  1. FILESEARCH_HOME environment variable (if set)
//  2. .filesearch in the current working directory
//
// The directory is not created; callers that write into it create what they need.
func GetHome() (string, error) {
	if home := os.Getenv(HomeEnvVar); home != "" {
		return home, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	return filepath.Join(cwd, ".filesearch"), nil
}

// GetConfigPath returns the default config file path
func GetConfigPath() (string, error) {
	home, err := GetHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ConfigFileName), nil
}

// GetHistoryDBPath returns the history database path for cfg
// An explicit history.db_path wins; otherwise <home>/history.db
func GetHistoryDBPath(cfg *Config) (string, error) {
	if cfg != nil && cfg.History.DBPath != "" {
		return cfg.History.DBPath, nil
	}

	home, err := GetHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "history.db"), nil
}
