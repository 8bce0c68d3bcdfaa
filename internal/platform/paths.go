package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// appDirName is the per-user application data directory name
const appDirName = "samplestage"

// ConfigDir returns the per-user application data directory for the
// current platform, e.g. ~/.config/samplestage on Linux
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}

	return filepath.Join(base, appDirName), nil
}

// DefaultPreferencesPath returns the default location of the JSON
// preference file
func DefaultPreferencesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.json"), nil
}

// Expand resolves a user-supplied path: ~ is expanded to the home
// directory and the result is made absolute
func Expand(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand path: %w", err)
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	return filepath.Clean(abs), nil
}
