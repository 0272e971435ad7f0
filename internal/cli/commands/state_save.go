package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aki/seqstate/internal/cli/ui"
	"github.com/aki/seqstate/internal/feedstate"
)

var saveStateCmd = &cobra.Command{
	Use:   "save-state <state_path> <new_guids_path> <timestamp> [max_guids]",
	Short: "Append processed GUIDs to the feed state",
	Long: `Save-state loads the feed state at <state_path>, appends the GUIDs listed in
<new_guids_path> (a JSON array of strings, or one GUID per line), stamps
last_run with <timestamp> (RFC 3339), truncates the list to the most recent
max_guids entries, and writes the state back atomically.

Invalid input is rejected before the state file is touched. Write failures
are fatal: swallowing one would make the next run silently reprocess the same
items.`,
	Args: cobra.RangeArgs(3, 4),
	RunE: runSaveState,
}

func runSaveState(cmd *cobra.Command, args []string) error {
	statePath := args[0]
	guidsPath := args[1]

	// Validate every input before any mutation
	lastRun, err := time.Parse(time.RFC3339, args[2])
	if err != nil {
		return fmt.Errorf("invalid timestamp %q, expected RFC 3339: %w", args[2], err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	maxGUIDs := cfg.Feed.MaxGUIDs
	if len(args) == 4 {
		maxGUIDs, err = strconv.Atoi(args[3])
		if err != nil || maxGUIDs < 1 {
			return fmt.Errorf("invalid max_guids %q, expected a positive integer", args[3])
		}
	}

	newGUIDs, err := readGUIDs(guidsPath)
	if err != nil {
		return err
	}

	log := CreateLogger()
	state := feedstate.Load(statePath, log)
	if err := feedstate.Save(statePath, state, newGUIDs, lastRun, maxGUIDs); err != nil {
		log.Error("failed to save feed state", "path", statePath, "error", err)
		ui.Error("save-state failed: %v", err)
		return err
	}

	return ui.JSON(map[string]any{
		"saved":      len(newGUIDs),
		"seen_total": len(state.SeenGUIDs),
	})
}

// readGUIDs loads the new-GUID list: a JSON array of strings, or a plain
// newline-delimited list when the file is not JSON.
func readGUIDs(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read guid list: %w", err)
	}

	var guids []string
	if err := json.Unmarshal(data, &guids); err == nil {
		return guids, nil
	}

	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			guids = append(guids, line)
		}
	}
	return guids, nil
}
