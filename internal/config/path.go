// Package config loads application settings from viper.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// EnvConfigDir overrides the directory searched for config.yaml and rules.yaml.
const EnvConfigDir = "BUDGET_CONFIG_DIR"

const appDir = "budget"

// DefaultDir returns the directory searched for config.yaml and rules.yaml:
// $BUDGET_CONFIG_DIR, then $XDG_CONFIG_HOME/budget, then ~/.config/budget.
func DefaultDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandPath(dir)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(ExpandPath(xdg), appDir)
	}
	return ExpandPath(filepath.Join("~", ".config", appDir))
}

// ExpandPath expands $VAR references and a leading ~ in a path, then cleans
// it. Variables are expanded first so a variable may itself start with ~.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}

	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + path[1:]
		}
	}

	return filepath.Clean(path)
}
