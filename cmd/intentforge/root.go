package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"intentforge/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// quiet suppresses per-partition progress bars. Bound as a persistent
// flag so every subcommand honors it.
var quiet bool

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "intentforge",
		Short: "intentforge - synthetic dataset generator for intent classifiers",
		Long: `Intentforge builds labeled training data for a personal-assistant intent
classifier. An oracle model synthesizes one scenario per job, every response
is validated before it becomes a dataset row, and partitions are written as
JSONL artifacts ready for fine-tuning.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress progress bars")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newGenerateCommand())
	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newPublishCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "intentforge %s\n", version) //nolint:errcheck
		},
	}
}

// loadProfile loads an explicit profile file when a path was given, and
// otherwise discovers intentforge.yaml starting from the working directory.
func loadProfile(path string) (*config.Profile, error) {
	if path != "" {
		return config.LoadFile(path)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return config.Load(wd)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
