package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aki/seqstate/internal/cli/ui"
	"github.com/aki/seqstate/internal/counter"
	"github.com/aki/seqstate/internal/feedstate"
	"github.com/aki/seqstate/internal/lockfile"
)

var (
	flagStatusCounter string
	flagStatusState   string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a human-readable summary of the state files",
	Long: `Status prints a table summarizing the counter file and the feed state file.
Unlike the other commands it is meant for humans, not pipelines; nothing it
prints is machine-parseable and it never mutates either file.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&flagStatusCounter, "counter", "counter.json", "Counter file to inspect")
	statusCmd.Flags().StringVar(&flagStatusState, "state", defaultStatePath, "Feed state file to inspect")
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := CreateLogger()

	store := counter.NewStore(flagStatusCounter,
		counter.WithLogger(log),
		counter.WithLocker(lockfile.NewWithTimeout(cfg.Counter.LockTimeout.Std())),
		counter.WithDefaults(counter.State{
			LastValue: cfg.Counter.Seed,
			Prefix:    cfg.Counter.Prefix,
			Padding:   cfg.Counter.Padding,
		}),
	)
	id, err := store.Current(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to inspect counter: %w", err)
	}

	state := feedstate.Load(flagStatusState, log)
	lastRun := "never"
	if state.LastRun != nil {
		lastRun = state.LastRun.Format("2006-01-02 15:04:05 MST")
	}

	fmt.Println(ui.HeaderStyle.Render("State files"))
	tbl := ui.NewTable("File", "Kind", "Summary")
	tbl.AddRow(flagStatusCounter, "counter",
		fmt.Sprintf("last issued %s (%d)", id.Formatted, id.Numeric))
	tbl.AddRow(flagStatusState, "feed state",
		fmt.Sprintf("%s GUIDs seen, last run %s",
			strconv.Itoa(len(state.SeenGUIDs)), lastRun))
	tbl.Print()

	return nil
}
