package ui

import (
	"fmt"
	"strings"
	"time"
)

const (
	ProgressBar   = "█"
	ProgressEmpty = "░"
)

// StatusTracker keeps track of collection progress across windows
type StatusTracker struct {
	TotalWindows  int
	WindowsDone   int
	CurrentWindow string
	StartTime     time.Time
}

// NewStatusTracker creates a new status tracker
func NewStatusTracker(totalWindows int) *StatusTracker {
	return &StatusTracker{
		TotalWindows: totalWindows,
		StartTime:    time.Now(),
	}
}

// BeginWindow records the window currently being collected
func (st *StatusTracker) BeginWindow(key string) {
	st.CurrentWindow = key
}

// CompleteWindow marks the current window finished
func (st *StatusTracker) CompleteWindow() {
	st.WindowsDone++
	st.CurrentWindow = ""
}

// WindowProgress returns a formatted progress bar over the window list
func (st *StatusTracker) WindowProgress() string {
	const width = 20
	progress := 0.0
	if st.TotalWindows > 0 {
		progress = float64(st.WindowsDone) / float64(st.TotalWindows)
	}
	filled := int(progress * float64(width))

	bar := strings.Repeat(ProgressBar, filled) +
		strings.Repeat(ProgressEmpty, width-filled)

	return fmt.Sprintf("[%s] %d/%d windows", bar, st.WindowsDone, st.TotalWindows)
}

// Elapsed returns the time since the run started
func (st *StatusTracker) Elapsed() time.Duration {
	return time.Since(st.StartTime).Round(time.Second)
}
