package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/rubychanges/config.yml
// - macOS: ~/Library/Application Support/rubychanges/config.yml
// - Windows: %APPDATA%\rubychanges\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "rubychanges", "config.yml"), nil
}

// ProjectConfigPath returns the path to the project-level config file,
// relative to the current directory.
func ProjectConfigPath() string {
	return ".rubychanges.yml"
}

// LegacyProjectConfigPath returns the path to the JSON project config that
// is still read when no YAML project config exists.
func LegacyProjectConfigPath() string {
	return ".rubychanges.json"
}
