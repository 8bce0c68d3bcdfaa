package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sdejongh/samplestage/internal/platform"
	"github.com/sdejongh/samplestage/pkg/config"
	"github.com/sdejongh/samplestage/pkg/logging"
	"github.com/sdejongh/samplestage/pkg/models"
	"github.com/sdejongh/samplestage/pkg/prefs"
)

// loadSettings loads application settings from the flag path or the
// default location
func loadSettings() (*config.Settings, error) {
	if globalFlags.SettingsFile != "" {
		return config.LoadFromFile(globalFlags.SettingsFile)
	}
	return config.LoadDefault()
}

// applyFlagsToSettings overrides settings values with command-line flags
func applyFlagsToSettings(cfg *config.Settings) {
	if stageFlags.Output != "" {
		cfg.Output.Format = stageFlags.Output
	}
	if stageFlags.LogFormat != "" {
		cfg.Logging.Format = stageFlags.LogFormat
	}
	if stageFlags.LogLevel != "" {
		cfg.Logging.Level = stageFlags.LogLevel
	}
	if stageFlags.LogFile != "" {
		cfg.Logging.File = stageFlags.LogFile
	}

	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}
	if globalFlags.Verbose {
		cfg.Logging.Level = "debug"
	}
}

// preferencesPath resolves the preference file location from the flag
// or the platform default
func preferencesPath() (string, error) {
	if stageFlags.PrefsFile != "" {
		return platform.Expand(stageFlags.PrefsFile)
	}
	return platform.DefaultPreferencesPath()
}

// resolvePaths determines the effective source and destination
// directories: explicit flags win, then the preference file, then an
// interactively created one. Returns an error when either path remains
// unset.
func resolvePaths(ctx context.Context, logger logging.Logger, prompter prefs.Source) (source, dest string, err error) {
	source = stageFlags.Source
	dest = stageFlags.Dest

	if source == "" || dest == "" || stageFlags.Reconfigure {
		prefsFile, pathErr := preferencesPath()
		if pathErr != nil {
			return "", "", pathErr
		}

		var record *prefs.Preferences
		_, statErr := os.Stat(prefsFile)
		needCreate := stageFlags.Reconfigure || os.IsNotExist(statErr)

		if !needCreate {
			var loadErr error
			record, loadErr = prefs.Load(prefsFile)
			if loadErr != nil {
				// Malformed records are treated as empty configuration
				logger.Warn(ctx, "preference file unusable, recreating", logging.Fields{
					"path":  prefsFile,
					"error": loadErr.Error(),
				})
				needCreate = true
			}
		}

		if needCreate {
			record, err = prefs.CreateInteractive(prompter, prefsFile)
			if err != nil {
				return "", "", fmt.Errorf("failed to create preference file: %w", err)
			}
		}

		if source == "" {
			source = record.SourceDir
		}
		if dest == "" {
			dest = record.DestinationDir
		}
	}

	if source == "" || dest == "" {
		return "", "", fmt.Errorf("source or destination directory is not specified in flags or preference file")
	}

	if source, err = platform.Expand(source); err != nil {
		return "", "", err
	}
	if dest, err = platform.Expand(dest); err != nil {
		return "", "", err
	}

	return source, dest, nil
}

// validatePaths checks the resolved directories. The source must exist;
// the destination is created unless this is a dry run.
func validatePaths(source, dest string, dryRun bool) error {
	info, err := os.Stat(source)
	if os.IsNotExist(err) {
		return fmt.Errorf("source path does not exist: %s", source)
	} else if err != nil {
		return fmt.Errorf("failed to access source path: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("source path is not a directory: %s", source)
	}

	if source == dest {
		return fmt.Errorf("source and destination cannot be the same: %s", source)
	}
	if strings.HasPrefix(dest, source+string(filepath.Separator)) {
		return fmt.Errorf("destination cannot be inside source directory")
	}
	if strings.HasPrefix(source, dest+string(filepath.Separator)) {
		return fmt.Errorf("source cannot be inside destination directory")
	}

	if !dryRun {
		if err := os.MkdirAll(dest, 0755); err != nil {
			return fmt.Errorf("failed to create destination directory: %w", err)
		}
	}

	return nil
}

// createStageOperation creates a staging operation from settings
func createStageOperation(cfg *config.Settings, source, dest string) (*models.StageOperation, error) {
	operation := &models.StageOperation{
		ID:              uuid.New().String(),
		SourcePath:      source,
		DestPath:        dest,
		Extensions:      cfg.Scan.Extensions,
		ExcludePatterns: cfg.Scan.Exclude,
		DryRun:          stageFlags.DryRun,
		BandwidthLimit:  cfg.Performance.BandwidthLimit,
		BufferSize:      cfg.Performance.BufferSize,
		CreatedAt:       time.Now(),
	}

	if err := operation.Validate(); err != nil {
		return nil, err
	}

	return operation, nil
}

// createLogger creates a logger based on settings: a file logger when a
// log file is configured, otherwise a timestamped console logger
func createLogger(cfg *config.Settings) (logging.Logger, error) {
	level := logging.ParseLevel(cfg.Logging.Level)
	if globalFlags.Quiet && level < logging.WarnLevel {
		level = logging.WarnLevel
	}

	var format logging.Format
	switch cfg.Logging.Format {
	case "json":
		format = logging.FormatJSON
	default:
		format = logging.FormatText
	}

	if cfg.Logging.File != "" {
		return logging.NewFileLogger(logging.FileLoggerConfig{
			Path:       cfg.Logging.File,
			Format:     format,
			Level:      level,
			MaxSize:    10 * 1024 * 1024, // 10 MB
			MaxBackups: 5,
		})
	}

	return logging.NewConsoleLogger(logging.ConsoleLoggerConfig{Level: level, Format: format}), nil
}
