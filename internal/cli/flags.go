package cli

import (
	"github.com/spf13/cobra"
)

// GlobalFlags holds global flag values
type GlobalFlags struct {
	SettingsFile string
	Verbose      bool
	Quiet        bool
}

var globalFlags GlobalFlags

// AddGlobalFlags adds global flags to the root command
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(
		&globalFlags.SettingsFile,
		"settings",
		"",
		"settings file (default is the per-user samplestage directory)",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Verbose,
		"verbose",
		"v",
		false,
		"verbose output",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Quiet,
		"quiet",
		"q",
		false,
		"suppress non-error output",
	)
}

// StageFlags holds flags for the staging run
type StageFlags struct {
	Source      string
	Dest        string
	PrefsFile   string
	Reconfigure bool
	DryRun      bool
	Output      string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var stageFlags StageFlags

// AddStageFlags adds staging flags to the root command
func AddStageFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&stageFlags.Source, "source", "s", "", "source directory with downloaded samples")
	cmd.Flags().StringVarP(&stageFlags.Dest, "dest", "d", "", "destination sample library root")
	cmd.Flags().StringVarP(&stageFlags.PrefsFile, "config", "c", "", "preference file path (default is the per-user samplestage directory)")
	cmd.Flags().BoolVar(&stageFlags.Reconfigure, "reconfigure", false, "recreate the preference file interactively")
	cmd.Flags().BoolVar(&stageFlags.DryRun, "dry-run", false, "report intended actions without copying anything")
	cmd.Flags().StringVarP(&stageFlags.Output, "output", "o", "", "output format: human, json")

	cmd.Flags().StringVar(&stageFlags.LogFile, "log-file", "", "write logs to file instead of the console")
	cmd.Flags().StringVar(&stageFlags.LogFormat, "log-format", "", "log format: text, json")
	cmd.Flags().StringVar(&stageFlags.LogLevel, "log-level", "", "log level: debug, info, warn, error")
}
