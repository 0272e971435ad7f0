package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/seqstate/internal/cli/ui"
)

// Version is overridden at build time via -ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the seqstate version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return ui.JSON(map[string]string{"version": Version})
	},
}
