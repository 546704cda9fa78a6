package main

import (
	"github.com/spf13/cobra"
)

var (
	configDir       string
	customDir       string
	runtimeRootPath string
	verbose         bool
)

var rootCmd = &cobra.Command{
	Use:   "expando",
	Short: "expando - administrative CLI for a text-expansion configuration",
	Long: `expando loads and manages a profile/match-file configuration: validating
it, building and checking its on-disk cache, installing match packages,
and exposing it to editor tooling or an interactive browser.

expando itself is not the IME frontend that types expansions into focused
windows — that integration lives outside this CLI.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", defaultConfigDir(), "directory containing default.yml and custom profiles")
	rootCmd.PersistentFlags().StringVar(&customDir, "custom-dir", "", "custom-profile directory (defaults to <config-dir>/custom)")
	rootCmd.PersistentFlags().StringVar(&runtimeRootPath, "runtime-root", defaultRuntimeRoot(), "directory holding cache.bin and the package registry")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(packageCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(serveCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
