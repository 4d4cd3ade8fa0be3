// Package cli is the thin presentation layer over the orchestrator: flag
// parsing, terminal output, and exit codes live here, so the components
// underneath stay testable without simulating an operator.
package cli

import (
	"errors"
	"path/filepath"

	"bytemomo/moray/internal/adapter/logger"
	"bytemomo/moray/internal/adapter/yamlconfig"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ErrTestFailures marks a run in which at least one category ended Failed.
// main translates it into exit code 2; TimedOut never triggers it.
var ErrTestFailures = errors.New("one or more test categories failed")

var (
	outDir       string
	settingsPath string
	verbose      bool

	settings yamlconfig.Settings
)

var rootCmd = &cobra.Command{
	Use:   "moray",
	Short: "moray - database security-monitoring validation tool",
	Long: `moray launches simulated attack traffic (credential guessing, injection
probes, reconnaissance and anomaly-pattern queries) against an
operator-configured database instance and aggregates the results, so the
detection rules of a managed security-monitoring product can be validated
against known-bad traffic.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := logrus.InfoLevel
		if verbose {
			level = logrus.DebugLevel
		}
		logger.SetLoggerToStructured(level, filepath.Join(outDir, "logs", "moray.log"))

		var err error
		settings, err = yamlconfig.LoadSettings(settingsPath)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&outDir, "out", "./moray-output", "Output directory for artifacts, wordlists, logs, and reports")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "Path to settings YAML overriding tool defaults")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}
