// Package statefile provides atomic JSON persistence for small state files.
// Every read and write is a full round trip; nothing is cached in memory
// between invocations, so the file on disk is the single source of truth.
//
// Writes go to a unique temp file in the same directory, are synced, then
// renamed over the destination. A partially written file is never observable
// to a concurrent reader.
package statefile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// UnmarshalError reports a file that was readable but not valid JSON for the
// expected type. Callers that self-heal on corruption match it with
// errors.As to separate it from real I/O failures.
type UnmarshalError struct {
	Path string
	Err  error
}

func (e *UnmarshalError) Error() string {
	return fmt.Sprintf("failed to unmarshal %s: %v", e.Path, e.Err)
}

func (e *UnmarshalError) Unwrap() error { return e.Err }

// Read loads and unmarshals the JSON file at path. A missing file is
// reported via an error satisfying os.IsNotExist / fs.ErrNotExist so callers
// can distinguish first-run from failure; malformed content is reported as an
// *UnmarshalError.
func Read[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, &UnmarshalError{Path: path, Err: err}
	}
	return &result, nil
}

// Write marshals v and atomically replaces the file at path.
func Write[T any](path string, v *T) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	data = append(data, '\n')

	// Unique temp name in the same directory so the rename stays on one
	// filesystem and concurrent writers never collide
	tempFile := fmt.Sprintf("%s.%s.tmp", path, uuid.NewString())
	if err := os.WriteFile(tempFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	// Sync before rename so the rename never publishes an empty file
	if f, err := os.OpenFile(tempFile, os.O_RDWR, 0o644); err == nil {
		_ = f.Sync()
		_ = f.Close()
	}

	if err := atomicRename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}
