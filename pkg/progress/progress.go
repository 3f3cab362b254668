package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"twscraper/pkg/logger"
)

// Tracker persists the per-window completion map. The file is a flat
// JSON object: {"<start>_to_<end>": true}. A window key that is absent
// or false has not been completed.
type Tracker struct {
	path   string
	done   map[string]bool
	logger logger.Logger
}

// NewTracker creates a tracker backed by the given file path
func NewTracker(path string) *Tracker {
	return &Tracker{
		path:   path,
		done:   make(map[string]bool),
		logger: logger.GetLogger(),
	}
}

// Load reads the persisted completion map. A missing file yields an
// empty map; an unreadable or malformed file is an error, because
// silently starting over would re-scrape every window.
func (t *Tracker) Load() error {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			t.done = make(map[string]bool)
			return nil
		}
		return fmt.Errorf("failed to read progress file: %w", err)
	}

	done := make(map[string]bool)
	if err := json.Unmarshal(data, &done); err != nil {
		return fmt.Errorf("progress file %s is corrupt: %w", t.path, err)
	}
	t.done = done

	t.logger.InfoWithFields("progress loaded", map[string]interface{}{
		"path":      t.path,
		"completed": t.completedCount(),
	})

	return nil
}

// IsDone reports whether a window key is marked complete
func (t *Tracker) IsDone(key string) bool {
	return t.done[key]
}

// MarkDone marks a window complete and persists the full map immediately
func (t *Tracker) MarkDone(key string) error {
	t.done[key] = true

	if err := t.save(); err != nil {
		return err
	}

	t.logger.DebugWithFields("progress saved", map[string]interface{}{
		"window":    key,
		"completed": t.completedCount(),
	})

	return nil
}

// save writes the completion map to disk atomically
func (t *Tracker) save() error {
	dir := filepath.Dir(t.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create progress directory: %w", err)
		}
	}

	tempPath := t.path + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temporary progress file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(t.done); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to encode progress: %w", err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to sync progress file: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close progress file: %w", err)
	}

	if err := os.Rename(tempPath, t.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace progress file: %w", err)
	}

	return nil
}

func (t *Tracker) completedCount() int {
	n := 0
	for _, v := range t.done {
		if v {
			n++
		}
	}
	return n
}
