package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	debug bool
	quiet bool

	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "apphound",
	Short: "Sniff out application leftovers on macOS",
	Long: `apphound - Sniff out application leftovers on macOS.

Locates the filesystem traces installed applications leave behind
(bundles, caches, preferences, logs, launch agents, containers) and
produces a reviewable removal plan with tiered safety defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Invoked without a subcommand: run the full audit pipeline.
		return runAudit(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Show detailed operation logs")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress informational output")

	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
