package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aki/seqstate/internal/cli/ui"
	"github.com/aki/seqstate/internal/counter"
	"github.com/aki/seqstate/internal/lockfile"
)

var counterCmd = &cobra.Command{
	Use:   "counter <path> [get_next|get_current]",
	Short: "Issue or inspect a file-backed invoice number",
	Long: `Counter reads the JSON counter file at <path> under an exclusive advisory
lock, issues the next invoice number (get_next, the default) or reports the
current one (get_current), and prints the result as JSON.

If the lock cannot be acquired within the configured bound, the command does
not fail: it issues a timestamp-derived fallback identifier, leaves the
counter file untouched, and still exits 0. Only unexpected I/O failures exit
non-zero.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCounter,
}

func runCounter(cmd *cobra.Command, args []string) error {
	path := args[0]

	op := "get_next"
	if len(args) == 2 {
		op = args[1]
	}
	if op != "get_next" && op != "get_current" {
		return fmt.Errorf("unknown operation %q, expected get_next or get_current", op)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := CreateLogger()
	store := counter.NewStore(path,
		counter.WithLogger(log),
		counter.WithLocker(lockfile.NewWithTimeout(cfg.Counter.LockTimeout.Std())),
		counter.WithDefaults(counter.State{
			LastValue: cfg.Counter.Seed,
			Prefix:    cfg.Counter.Prefix,
			Padding:   cfg.Counter.Padding,
		}),
	)

	var id counter.ID
	switch op {
	case "get_next":
		id, err = store.Next(cmd.Context())
	case "get_current":
		id, err = store.Current(cmd.Context())
	}
	if err != nil {
		log.Error("counter operation failed", "path", path, "op", op, "error", err)
		ui.Error("counter %s failed: %v", op, err)
		return err
	}

	return ui.JSON(id)
}
