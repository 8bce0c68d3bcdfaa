package main

import (
	"fmt"
	"os"

	"github.com/sdejongh/samplestage/internal/cli"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "samplestage",
		Short: "Stage downloaded audio samples into a library",
		Long: `samplestage scans a download folder for audio files and copies the
ones not already present in the sample library into its staging
subfolder. Paths come from flags or from a per-user preference file
created interactively on first run.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          cli.RunStage,
	}

	// Add global flags
	cli.AddGlobalFlags(rootCmd)
	cli.AddStageFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(cli.NewScanCommand())
	rootCmd.AddCommand(cli.NewConfigCommand())
	rootCmd.AddCommand(cli.NewVersionCommand())

	return rootCmd.Execute()
}
