package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/sdejongh/samplestage/pkg/config"
	"github.com/sdejongh/samplestage/pkg/prefs"
	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `View or recreate samplestage preferences and settings.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current preferences and settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			prefsFile, err := preferencesPath()
			if err != nil {
				return err
			}

			fmt.Printf("Preference File: %s\n", prefsFile)
			record, err := prefs.Load(prefsFile)
			if err != nil {
				fmt.Printf("  (not usable: %v)\n", err)
			} else {
				fmt.Printf("Source Directory: %s\n", record.SourceDir)
				fmt.Printf("Destination Directory: %s\n", record.DestinationDir)
			}

			cfg, err := loadSettings()
			if err != nil {
				return err
			}

			fmt.Printf("Extensions: %s\n", strings.Join(cfg.Scan.Extensions, ", "))
			fmt.Printf("Exclude Patterns: %s\n", strings.Join(cfg.Scan.Exclude, ", "))
			fmt.Printf("Output Format: %s\n", cfg.Output.Format)
			fmt.Printf("Log Format: %s\n", cfg.Logging.Format)
			fmt.Printf("Log Level: %s\n", cfg.Logging.Level)

			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the preference and settings files",
		RunE: func(cmd *cobra.Command, args []string) error {
			prefsFile, err := preferencesPath()
			if err != nil {
				return err
			}

			prompter := prefs.NewTerminalSource(os.Stdin, os.Stdout)
			if _, err := prefs.CreateInteractive(prompter, prefsFile); err != nil {
				return err
			}
			fmt.Printf("Preference file created at: %s\n", prefsFile)

			path, err := config.DefaultSettingsPath()
			if err != nil {
				return err
			}

			cfg := config.Default()
			if err := config.SaveToFile(cfg, path); err != nil {
				return err
			}

			fmt.Printf("Settings file created at: %s\n", path)
			return nil
		},
	}
}
