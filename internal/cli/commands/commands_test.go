package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aki/seqstate/internal/counter"
	"github.com/aki/seqstate/internal/statefile"
)

// chdir moves the test into an empty directory so the default config lookup
// finds nothing and relative paths stay contained.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	oldCwd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(oldCwd) })
	require.NoError(t, os.Chdir(dir))
	return dir
}

func TestCounterCommand_GetNext(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "counter.json")

	rootCmd.SetArgs([]string{"counter", path})
	require.NoError(t, rootCmd.Execute())

	state, err := statefile.Read[counter.State](path)
	require.NoError(t, err)
	require.Equal(t, int64(1001), state.LastValue)
	require.Equal(t, "INV-", state.Prefix)
	require.Equal(t, 4, state.Padding)
}

func TestCounterCommand_GetCurrentDoesNotWrite(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "counter.json")

	rootCmd.SetArgs([]string{"counter", path, "get_current"})
	require.NoError(t, rootCmd.Execute())

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "get_current must not create the file")
}

func TestCounterCommand_RejectsUnknownOperation(t *testing.T) {
	dir := chdir(t)

	rootCmd.SetArgs([]string{"counter", filepath.Join(dir, "counter.json"), "get_previous"})
	err := rootCmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "get_previous")
}

func TestLoadStateCommand_CorruptFileStillSucceeds(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "state.json")
	require.NoError(t, os.WriteFile(path, []byte("not valid json"), 0o644))

	rootCmd.SetArgs([]string{"load-state", path})
	require.NoError(t, rootCmd.Execute(), "corruption is self-healed, never a failure exit")
}

func TestSaveStateCommand_RoundTrip(t *testing.T) {
	dir := chdir(t)
	statePath := filepath.Join(dir, "state.json")
	guidsPath := filepath.Join(dir, "new.json")
	require.NoError(t, os.WriteFile(guidsPath, []byte(`["g1", "g2"]`), 0o644))

	rootCmd.SetArgs([]string{"save-state", statePath, guidsPath, "2024-06-01T09:00:00Z"})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(statePath)
	require.NoError(t, err)

	var doc struct {
		LastRun   *string  `json:"last_run"`
		SeenGUIDs []string `json:"seen_guids"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.NotNil(t, doc.LastRun)
	require.Equal(t, []string{"g1", "g2"}, doc.SeenGUIDs)
}

func TestSaveStateCommand_RejectsBadInputBeforeMutation(t *testing.T) {
	dir := chdir(t)
	statePath := filepath.Join(dir, "state.json")
	guidsPath := filepath.Join(dir, "new.json")
	require.NoError(t, os.WriteFile(guidsPath, []byte(`["g1"]`), 0o644))

	t.Run("bad timestamp", func(t *testing.T) {
		rootCmd.SetArgs([]string{"save-state", statePath, guidsPath, "yesterday"})
		require.Error(t, rootCmd.Execute())
		_, err := os.Stat(statePath)
		require.True(t, os.IsNotExist(err), "state must not be touched on usage errors")
	})

	t.Run("bad max_guids", func(t *testing.T) {
		rootCmd.SetArgs([]string{"save-state", statePath, guidsPath, "2024-06-01T09:00:00Z", "zero"})
		require.Error(t, rootCmd.Execute())
		_, err := os.Stat(statePath)
		require.True(t, os.IsNotExist(err), "state must not be touched on usage errors")
	})
}

func TestReadGUIDs(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "guids.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`["a", "b"]`), 0o644))
	guids, err := readGUIDs(jsonPath)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, guids)

	linesPath := filepath.Join(dir, "guids.txt")
	require.NoError(t, os.WriteFile(linesPath, []byte("a\n\n  b  \n"), 0o644))
	guids, err = readGUIDs(linesPath)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, guids)

	_, err = readGUIDs(filepath.Join(dir, "absent"))
	require.Error(t, err)
}
