package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sdejongh/samplestage/internal/platform"
	"github.com/sdejongh/samplestage/pkg/prefs"
	"github.com/sdejongh/samplestage/pkg/scan"
	"github.com/sdejongh/samplestage/pkg/storage"
	"github.com/spf13/cobra"
)

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List audio files in a directory without staging them",
		Long: `Walk a directory tree and list every audio file that a staging run
would consider, without touching the destination.`,
		RunE: runScan,
	}

	cmd.Flags().StringVarP(&stageFlags.Source, "source", "s", "", "directory to scan")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Load settings
	cfg, err := loadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	applyFlagsToSettings(cfg)

	// Fall back to the configured source directory
	source := stageFlags.Source
	if source == "" {
		prefsFile, pathErr := preferencesPath()
		if pathErr != nil {
			return pathErr
		}
		record, loadErr := prefs.Load(prefsFile)
		if loadErr == nil {
			source = record.SourceDir
		}
	}
	if source == "" {
		return fmt.Errorf("no directory to scan: pass --source or configure a preference file")
	}

	if source, err = platform.Expand(source); err != nil {
		return err
	}

	backend, err := storage.NewLocal(source)
	if err != nil {
		return fmt.Errorf("failed to open directory: %w", err)
	}
	defer backend.Close()

	scanner := scan.New(cfg.Scan.Extensions, cfg.Scan.Exclude)
	candidates, err := scanner.Scan(ctx, backend)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	var total int64
	for _, c := range candidates {
		fmt.Fprintf(w, "%s\t%d\t%s\n", c.RelativePath, c.Size, c.ModTime.Format("2006-01-02 15:04:05"))
		total += c.Size
	}
	w.Flush()

	fmt.Printf("\n%d audio files, %d bytes\n", len(candidates), total)
	return nil
}
