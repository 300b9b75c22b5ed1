// Package paths provides a single source of truth for wellness file paths.
// All path helpers honor environment variable overrides for isolated testing.
//
// Path resolution precedence:
//  1. Specific env vars (WELLNESS_CONFIG_PATH, WELLNESS_LOG_PATH) take highest priority
//  2. WELLNESS_DIR sets the base directory (derives config and log paths)
//  3. Default behavior (~/.wellness, ~/.config/wellness) when no env vars are set
package paths

import (
	"os"
	"path/filepath"
)

// Environment variable names for path overrides.
const (
	// EnvWellnessDir is the base directory override (e.g., /tmp/wellness-test).
	EnvWellnessDir = "WELLNESS_DIR"

	// EnvConfigPath overrides the config file path directly.
	EnvConfigPath = "WELLNESS_CONFIG_PATH"

	// EnvLogPath overrides the log file path directly.
	EnvLogPath = "WELLNESS_LOG_PATH"
)

// BaseDir returns the wellness base directory (~/.wellness by default).
// Honors WELLNESS_DIR.
func BaseDir() (string, error) {
	if dir := os.Getenv(EnvWellnessDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".wellness"), nil
}

// ConfigDir returns the config directory (~/.config/wellness by default).
// When WELLNESS_DIR is set, returns WELLNESS_DIR/config instead.
func ConfigDir() (string, error) {
	if dir := os.Getenv(EnvWellnessDir); dir != "" {
		return filepath.Join(dir, "config"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wellness"), nil
}

// ConfigPath returns the path to the config file.
// Precedence: WELLNESS_CONFIG_PATH > ConfigDir()/config.toml
func ConfigPath() (string, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// PresetsPath returns the conventional location of a custom preset catalog
// (ConfigDir()/presets.yaml). The file is optional.
func PresetsPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "presets.yaml"), nil
}

// LogPath returns the log file path.
// Precedence: WELLNESS_LOG_PATH > WELLNESS_DIR/wellness.log > ~/.wellness/wellness.log
func LogPath() string {
	if path := os.Getenv(EnvLogPath); path != "" {
		return path
	}
	base, err := BaseDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "wellness.log")
	}
	return filepath.Join(base, "wellness.log")
}
