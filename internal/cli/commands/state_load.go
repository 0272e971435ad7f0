package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/seqstate/internal/cli/ui"
	"github.com/aki/seqstate/internal/feedstate"
)

// defaultStatePath is where pipelines keep their feed state unless told
// otherwise.
const defaultStatePath = "feed_state.json"

var loadStateCmd = &cobra.Command{
	Use:   "load-state [path]",
	Short: "Print the feed de-duplication state",
	Long: `Load-state prints the feed state file as JSON. A missing or corrupt file is
self-healed to the empty state {"last_run": null, "seen_guids": []} with a
warning; the command always exits 0 so a corrupted state file can never block
the pipeline that owns it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLoadState,
}

func runLoadState(cmd *cobra.Command, args []string) error {
	path := defaultStatePath
	if len(args) == 1 {
		path = args[0]
	}

	state := feedstate.Load(path, CreateLogger())
	return ui.JSON(state)
}
