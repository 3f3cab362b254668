package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

var weekFilePattern = regexp.MustCompile(`^week(\d+)\.json$`)

// Manager handles per-window output files. Window N (1-based) is
// written once, in full, to week<N>.json as an indented JSON array of
// tweet texts.
type Manager struct {
	outputDir string
	written   map[int]bool
}

// NewManager creates a new storage manager rooted at outputDir
func NewManager(outputDir string) (*Manager, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	manager := &Manager{
		outputDir: outputDir,
		written:   make(map[int]bool),
	}

	if err := manager.scanExistingFiles(); err != nil {
		return nil, fmt.Errorf("failed to scan existing files: %w", err)
	}

	return manager, nil
}

// scanExistingFiles records which week files already exist
func (m *Manager) scanExistingFiles() error {
	entries, err := os.ReadDir(m.outputDir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := weekFilePattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		m.written[n] = true
	}

	return nil
}

// HasWindow reports whether the output file for window n already exists
func (m *Manager) HasWindow(n int) bool {
	if m.written[n] {
		return true
	}

	if _, err := os.Stat(m.WindowPath(n)); err == nil {
		m.written[n] = true
		return true
	}

	return false
}

// WindowPath returns the output file path for window n
func (m *Manager) WindowPath(n int) string {
	return filepath.Join(m.outputDir, fmt.Sprintf("week%d.json", n))
}

// WriteWindow writes the collected texts for window n. The write is
// atomic: data lands in a temporary file that replaces any previous
// output in one rename.
func (m *Manager) WriteWindow(n int, texts []string) error {
	filename := m.WindowPath(n)
	tempFile := filename + ".tmp"

	out, err := os.Create(tempFile)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(texts); err != nil {
		out.Close()
		os.Remove(tempFile)
		return fmt.Errorf("failed to encode window output: %w", err)
	}

	if err := out.Close(); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tempFile, filename); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	m.written[n] = true

	return nil
}
