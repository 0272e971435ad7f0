package statefile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testState struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestWriteRead_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	want := testState{Name: "feed", Count: 7}
	if err := Write(path, &want); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := Read[testState](path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if *got != want {
		t.Errorf("round trip mismatch: got %+v, want %+v", *got, want)
	}
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read[testState](filepath.Join(t.TempDir(), "absent.json"))
	if !os.IsNotExist(err) {
		t.Errorf("err = %v, want not-exist", err)
	}
}

func TestRead_UnmarshalError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("not valid json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Read[testState](path)
	var unmarshalErr *UnmarshalError
	if !errors.As(err, &unmarshalErr) {
		t.Fatalf("err = %v, want *UnmarshalError", err)
	}
	if unmarshalErr.Path != path {
		t.Errorf("Path = %q, want %q", unmarshalErr.Path, path)
	}
}

func TestWrite_OverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")

	first := testState{Name: "one", Count: 1}
	if err := Write(path, &first); err != nil {
		t.Fatalf("first Write failed: %v", err)
	}
	second := testState{Name: "two", Count: 2}
	if err := Write(path, &second); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}

	got, err := Read[testState](path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if *got != second {
		t.Errorf("got %+v, want %+v", *got, second)
	}

	// No temp files may survive a successful write
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("leftover temp file: %s", e.Name())
		}
	}
}

func TestWrite_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "state.json")

	state := testState{Name: "nested", Count: 3}
	if err := Write(path, &state); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := Read[testState](path); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
}
