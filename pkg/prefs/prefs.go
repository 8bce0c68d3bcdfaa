package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Preferences is the persisted record of the user's chosen source and
// destination directories
type Preferences struct {
	SourceDir      string `json:"source_dir"`
	DestinationDir string `json:"destination_dir"`
}

// Complete reports whether both directories are set
func (p *Preferences) Complete() bool {
	return p.SourceDir != "" && p.DestinationDir != ""
}

// Load reads preferences from a JSON file. A missing or malformed file
// is not fatal: the returned preferences are empty and the error
// describes the problem so the caller can decide to warn or prompt.
func Load(path string) (*Preferences, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Preferences{}, fmt.Errorf("failed to read preference file: %w", err)
	}

	p := &Preferences{}
	if err := json.Unmarshal(data, p); err != nil {
		return &Preferences{}, fmt.Errorf("failed to parse preference file: %w", err)
	}

	return p, nil
}

// Save writes preferences to path as a whole JSON object. The write is
// atomic: the record lands in a temporary file first and is renamed
// into place, so a crash never leaves a partially written file.
func Save(p *Preferences, path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write preference file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close preference file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace preference file: %w", err)
	}

	return nil
}
