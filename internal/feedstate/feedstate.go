// Package feedstate tracks which feed items a pipeline has already processed.
// It keeps an insertion-ordered list of seen GUIDs in a JSON file, bounded to
// a sliding window of the most recent entries.
//
// Load is purely defensive: a missing or corrupt file resolves to the empty
// default so the caller degrades to "treat everything as new" instead of
// failing. Save failures propagate, because a silently lost write means the
// next run would reprocess the same items.
//
// The package does no locking. It assumes one run of the owning pipeline at a
// time; concurrent writers are a caller-side constraint.
package feedstate

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/aki/seqstate/internal/logger"
	"github.com/aki/seqstate/internal/statefile"
)

// DefaultMaxGUIDs bounds the seen list when the caller does not choose a cap.
const DefaultMaxGUIDs = 10000

// State is the persisted feed state. The JSON keys are part of the interface
// with other tooling that reads these files; do not rename them.
type State struct {
	LastRun   *time.Time `json:"last_run"`
	SeenGUIDs []string   `json:"seen_guids"`
}

// Empty returns the default state for a first run or after corruption.
func Empty() *State {
	return &State{SeenGUIDs: []string{}}
}

// Load reads the state file at path. Every failure mode short of reading the
// file resolves to the empty default with a warning: missing file, invalid
// JSON, wrong top-level shape, missing keys, or seen_guids not being an
// array. It never returns an error.
func Load(path string, log logger.Logger) *State {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("feed state unreadable, starting from empty state",
				"path", path, "error", err)
		}
		return Empty()
	}

	state, err := parse(data)
	if err != nil {
		log.Warn("feed state corrupt, starting from empty state",
			"path", path, "error", err)
		return Empty()
	}
	return state
}

// parse validates the raw document shape before accepting it. Partial or
// mistyped documents count as corruption, not as defaults for the missing
// parts.
func parse(data []byte) (*State, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	lastRunRaw, ok := raw["last_run"]
	if !ok {
		return nil, fmt.Errorf("missing required key %q", "last_run")
	}
	guidsRaw, ok := raw["seen_guids"]
	if !ok {
		return nil, fmt.Errorf("missing required key %q", "seen_guids")
	}

	state := Empty()
	if err := json.Unmarshal(lastRunRaw, &state.LastRun); err != nil {
		return nil, fmt.Errorf("invalid last_run: %w", err)
	}
	if err := json.Unmarshal(guidsRaw, &state.SeenGUIDs); err != nil {
		return nil, fmt.Errorf("invalid seen_guids: %w", err)
	}
	if state.SeenGUIDs == nil {
		state.SeenGUIDs = []string{}
	}
	return state, nil
}

// Save appends newGUIDs after the existing entries, keeps only the most
// recent maxGUIDs (dropping from the front), stamps lastRun, and writes the
// whole state back atomically. Duplicates across calls are not collapsed
// here; de-duplication is the caller's job before Save.
//
// Write failures are returned, never swallowed.
func Save(path string, state *State, newGUIDs []string, lastRun time.Time, maxGUIDs int) error {
	if state == nil {
		state = Empty()
	}
	if maxGUIDs <= 0 {
		maxGUIDs = DefaultMaxGUIDs
	}

	merged := make([]string, 0, len(state.SeenGUIDs)+len(newGUIDs))
	merged = append(merged, state.SeenGUIDs...)
	merged = append(merged, newGUIDs...)
	if len(merged) > maxGUIDs {
		merged = merged[len(merged)-maxGUIDs:]
	}

	updated := &State{
		LastRun:   &lastRun,
		SeenGUIDs: merged,
	}

	if err := statefile.Write(path, updated); err != nil {
		return fmt.Errorf("failed to save feed state: %w", err)
	}

	// Reflect the persisted state back so callers holding the struct see
	// what the file now contains
	*state = *updated
	return nil
}
