package config

import (
	"strings"

	"github.com/sdejongh/samplestage/pkg/models"
)

// Settings represents the optional application settings. These tune how
// a run behaves; the source/destination paths themselves live in the
// JSON preference record, not here.
type Settings struct {
	Scan        ScanConfig        `yaml:"scan"`
	Performance PerformanceConfig `yaml:"performance"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// ScanConfig holds scanner-related settings
type ScanConfig struct {
	// Extensions overrides the audio extension allow-list
	Extensions []string `yaml:"extensions"`
	// Exclude lists glob patterns skipped during scanning
	Exclude []string `yaml:"exclude"`
}

// PerformanceConfig holds copy-performance settings
type PerformanceConfig struct {
	BufferSize     int   `yaml:"buffer_size"`
	BandwidthLimit int64 `yaml:"bandwidth_limit"` // bytes per second, 0 = unlimited
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show progress bar while copying
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Format string `yaml:"format"` // "text" or "json"
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	File   string `yaml:"file"`   // Log file path (empty = console only)
}

// Default returns the default settings
func Default() *Settings {
	return &Settings{
		Scan: ScanConfig{
			Extensions: models.DefaultExtensions,
			Exclude: []string{
				"__MACOSX/",
				"._*",
			},
		},
		Performance: PerformanceConfig{
			BufferSize:     65536,
			BandwidthLimit: 0,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
			Quiet:    false,
		},
		Logging: LoggingConfig{
			Format: "text",
			Level:  "info",
			File:   "",
		},
	}
}

// Validate checks if the settings are valid
func (s *Settings) Validate() error {
	if len(s.Scan.Extensions) == 0 {
		return &models.ValidationError{
			Field:   "scan.extensions",
			Message: "at least one extension is required",
		}
	}
	for _, ext := range s.Scan.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return &models.ValidationError{
				Field:   "scan.extensions",
				Message: "extensions must include the leading dot: " + ext,
			}
		}
	}

	if s.Performance.BufferSize < 1024 {
		return &models.ValidationError{
			Field:   "performance.buffer_size",
			Message: "must be at least 1024 bytes",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[s.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"text": true, "json": true}
	if !validLogFormats[s.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'text' or 'json'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[s.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
