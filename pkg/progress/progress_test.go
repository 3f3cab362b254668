package progress

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestTrackerLoadMissingFile(t *testing.T) {
	tracker := NewTracker(filepath.Join(t.TempDir(), "progress.json"))

	if err := tracker.Load(); err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}
	if tracker.IsDone("2024-08-09_to_2024-08-15") {
		t.Error("fresh tracker should have no completed windows")
	}
}

func TestTrackerMarkDoneAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	key := "2024-08-09_to_2024-08-15"

	tracker := NewTracker(path)
	if err := tracker.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := tracker.MarkDone(key); err != nil {
		t.Fatalf("MarkDone: %v", err)
	}
	if !tracker.IsDone(key) {
		t.Error("window should be done after MarkDone")
	}

	// A fresh tracker reads the persisted map
	reloaded := NewTracker(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.IsDone(key) {
		t.Error("completion should survive reload")
	}
	if reloaded.IsDone("2024-08-16_to_2024-08-22") {
		t.Error("unmarked window should not be done")
	}
}

func TestTrackerFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	key := "2024-08-09_to_2024-08-15"

	tracker := NewTracker(path)
	if err := tracker.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := tracker.MarkDone(key); err != nil {
		t.Fatalf("MarkDone: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read progress file: %v", err)
	}

	var m map[string]bool
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("progress file is not a JSON object: %v", err)
	}
	if !m[key] {
		t.Errorf("progress file = %s, want %q mapped to true", data, key)
	}
}

func TestTrackerLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	tracker := NewTracker(path)
	if err := tracker.Load(); err == nil {
		t.Fatal("Load should fail on a corrupt progress file")
	}
}

func TestTrackerFalseValueIsNotDone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	if err := os.WriteFile(path, []byte(`{"2024-08-09_to_2024-08-15": false}`), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	tracker := NewTracker(path)
	if err := tracker.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tracker.IsDone("2024-08-09_to_2024-08-15") {
		t.Error("a false completion flag should not count as done")
	}
}
