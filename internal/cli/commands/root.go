// Package commands wires the seqstate CLI. Each subcommand is one
// micro-automation tool: it reads its inputs, does its one job, prints a JSON
// result on stdout, and exits with a code matching the documented error tier.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/seqstate/internal/config"
)

// flagConfig points at the optional defaults file.
var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "seqstate",
	Short: "File-backed sequence counters and feed state for automation pipelines",
	Long: `Seqstate provides two state primitives for short-lived automation scripts:
a file-locked invoice-number counter with a bounded-wait advisory lock, and a
bounded seen-GUID state file for feed de-duplication. All state lives in flat
JSON files; every invocation is a full read-modify-write round trip.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", config.FileName,
		"Path to the optional defaults file")
	RegisterLoggerFlags(rootCmd)

	rootCmd.AddCommand(counterCmd)
	rootCmd.AddCommand(loadStateCmd)
	rootCmd.AddCommand(saveStateCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the effective defaults for a command run.
func loadConfig() (*config.Config, error) {
	return config.Load(flagConfig)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
