package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/sdejongh/samplestage/pkg/config"
	"github.com/sdejongh/samplestage/pkg/output"
	"github.com/sdejongh/samplestage/pkg/prefs"
	"github.com/sdejongh/samplestage/pkg/scan"
	"github.com/sdejongh/samplestage/pkg/stage"
	"github.com/sdejongh/samplestage/pkg/storage"
	"github.com/spf13/cobra"
)

// RunStage is the root command action: resolve directories, scan the
// source and copy new audio files into the destination staging folder.
func RunStage(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Load settings
	cfg, err := loadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// Override settings with command-line flags
	applyFlagsToSettings(cfg)

	// Create logger
	logger, err := createLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	// Resolve directories: flags, then preference file, then prompt
	prompter := prefs.NewTerminalSource(os.Stdin, os.Stdout)
	source, dest, err := resolvePaths(ctx, logger, prompter)
	if err != nil {
		return err
	}

	if err := validatePaths(source, dest, stageFlags.DryRun); err != nil {
		return err
	}

	// Create staging operation
	operation, err := createStageOperation(cfg, source, dest)
	if err != nil {
		return fmt.Errorf("failed to create staging operation: %w", err)
	}

	// Create storage backends
	sourceBackend, err := storage.NewLocal(source)
	if err != nil {
		return fmt.Errorf("failed to open source directory: %w", err)
	}
	defer sourceBackend.Close()

	// During a dry run the destination may not exist yet; staging then
	// proceeds against an empty index.
	var destBackend storage.Backend
	if local, err := storage.NewLocal(dest); err == nil {
		destBackend = local
		defer local.Close()
	} else if !stageFlags.DryRun {
		return fmt.Errorf("failed to open destination directory: %w", err)
	}

	// Create output formatter
	formatter := createFormatter(cfg)

	scanner := scan.New(operation.Extensions, operation.ExcludePatterns)
	engine := stage.NewEngine(sourceBackend, destBackend, scanner, formatter, logger, operation)

	report, err := engine.Run(ctx)
	if err != nil {
		return fmt.Errorf("staging failed: %w", err)
	}

	os.Exit(report.Status.ExitCode())
	return nil
}

// createFormatter selects the output formatter from settings
func createFormatter(cfg *config.Settings) output.Formatter {
	switch cfg.Output.Format {
	case "json":
		return output.NewJSONFormatter()
	default:
		if cfg.Output.Progress {
			return output.NewProgressFormatter()
		}
		return output.NewHumanFormatter()
	}
}
