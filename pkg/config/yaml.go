package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sdejongh/samplestage/internal/platform"
)

// LoadFromFile loads settings from a YAML file
func LoadFromFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return s, nil
}

// SaveToFile saves settings to a YAML file
func SaveToFile(s *Settings, path string) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// DefaultSettingsPath returns the default settings file path
func DefaultSettingsPath() (string, error) {
	dir, err := platform.ConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "settings.yaml"), nil
}

// LoadDefault attempts to load settings from the default location.
// If the file doesn't exist, returns the default settings.
func LoadDefault() (*Settings, error) {
	path, err := DefaultSettingsPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return LoadFromFile(path)
}
