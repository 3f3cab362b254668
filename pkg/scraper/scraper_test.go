package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twscraper/pkg/auth"
	"twscraper/pkg/config"
	"twscraper/pkg/errors"
	"twscraper/pkg/logger"
	"twscraper/pkg/progress"
)

// fakeBrowser scripts a browser session for end-to-end runs. Each
// TweetTexts call returns the next batch; the last batch repeats.
// Heights grow while batches still add content and then freeze.
type fakeBrowser struct {
	batches [][]string

	loginCalls  int
	navigations []string
	scanCalls   int
	heightCalls int
	scrollCalls int
	closed      bool

	collectErr error
}

func (b *fakeBrowser) Login(ctx context.Context, account *auth.Account) error {
	b.loginCalls++
	return nil
}

func (b *fakeBrowser) Close() error {
	b.closed = true
	return nil
}

func (b *fakeBrowser) Navigate(ctx context.Context, url string) error {
	b.navigations = append(b.navigations, url)
	return nil
}

func (b *fakeBrowser) TweetTexts(ctx context.Context) ([]string, error) {
	if b.collectErr != nil {
		return nil, b.collectErr
	}
	i := b.scanCalls
	if i >= len(b.batches) {
		i = len(b.batches) - 1
	}
	b.scanCalls++
	if i < 0 {
		return nil, nil
	}
	return b.batches[i], nil
}

func (b *fakeBrowser) PageHeight(ctx context.Context) (int, error) {
	b.heightCalls++
	return b.heightCalls * 100, nil
}

func (b *fakeBrowser) ScrollToBottom(ctx context.Context) error {
	b.scrollCalls++
	return nil
}

func testConfig(t *testing.T, windows []config.Window, threshold int) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.Windows = windows
	cfg.Collect.Threshold = threshold
	cfg.Collect.MaxScrolls = 50
	cfg.Collect.SettleDelay = time.Microsecond
	cfg.Collect.ScrollDelayMin = time.Microsecond
	cfg.Collect.ScrollDelayMax = 2 * time.Microsecond
	cfg.Collect.StallPauseMin = time.Microsecond
	cfg.Collect.StallPauseMax = 2 * time.Microsecond
	cfg.Output.BaseDirectory = dir
	cfg.Output.ProgressFile = filepath.Join(dir, "progress.json")
	return cfg
}

func distinctTexts(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("tweet %d", i)
	}
	return out
}

func init() {
	logger.SetLogger(logger.NewTestLogger())
}

func TestRunSingleWindowEndToEnd(t *testing.T) {
	window := config.Window{Start: "2024-08-09", End: "2024-08-15"}
	cfg := testConfig(t, []config.Window{window}, 500)

	browser := &fakeBrowser{batches: [][]string{distinctTexts(500)}}

	s, err := New(cfg, browser)
	require.NoError(t, err)
	require.NoError(t, s.Run(context.Background(), nil))

	// week1.json holds exactly 500 unique entries
	data, err := os.ReadFile(filepath.Join(cfg.Output.BaseDirectory, "week1.json"))
	require.NoError(t, err)

	var texts []string
	require.NoError(t, json.Unmarshal(data, &texts))
	assert.Len(t, texts, 500)

	unique := make(map[string]struct{}, len(texts))
	for _, text := range texts {
		unique[text] = struct{}{}
	}
	assert.Len(t, unique, 500, "output must contain no duplicates")

	// Progress file records the window key
	progressData, err := os.ReadFile(cfg.Output.ProgressFile)
	require.NoError(t, err)

	var done map[string]bool
	require.NoError(t, json.Unmarshal(progressData, &done))
	assert.Equal(t, map[string]bool{"2024-08-09_to_2024-08-15": true}, done)

	assert.Equal(t, 1, browser.loginCalls)
	require.Len(t, browser.navigations, 1)
	assert.Contains(t, browser.navigations[0], "2024-08-09")
	assert.Contains(t, browser.navigations[0], "2024-08-15")
}

func TestRunSkipsCompletedWindow(t *testing.T) {
	window := config.Window{Start: "2024-08-09", End: "2024-08-15"}
	cfg := testConfig(t, []config.Window{window}, 500)

	// First run completes the window
	first := &fakeBrowser{batches: [][]string{distinctTexts(500)}}
	s, err := New(cfg, first)
	require.NoError(t, err)
	require.NoError(t, s.Run(context.Background(), nil))

	// Plant a sentinel so any rewrite is detectable
	weekFile := filepath.Join(cfg.Output.BaseDirectory, "week1.json")
	require.NoError(t, os.WriteFile(weekFile, []byte(`["sentinel"]`), 0644))

	// Second run must not touch the browser or the output file
	second := &fakeBrowser{batches: [][]string{distinctTexts(500)}}
	s2, err := New(cfg, second)
	require.NoError(t, err)
	require.NoError(t, s2.Run(context.Background(), nil))

	assert.Empty(t, second.navigations, "completed window must not be re-scraped")
	assert.Zero(t, second.scanCalls)
	assert.Zero(t, second.scrollCalls)

	data, err := os.ReadFile(weekFile)
	require.NoError(t, err)
	assert.JSONEq(t, `["sentinel"]`, string(data))
}

func TestRunAbortsOnCollectionError(t *testing.T) {
	windows := []config.Window{
		{Start: "2024-08-09", End: "2024-08-15"},
		{Start: "2024-08-16", End: "2024-08-22"},
	}
	cfg := testConfig(t, windows, 500)

	browser := &fakeBrowser{collectErr: fmt.Errorf("driver crashed")}

	s, err := New(cfg, browser)
	require.NoError(t, err)
	err = s.Run(context.Background(), nil)
	require.Error(t, err)

	// The first window failed, so nothing is written or marked
	_, statErr := os.Stat(filepath.Join(cfg.Output.BaseDirectory, "week1.json"))
	assert.True(t, os.IsNotExist(statErr))

	tracker := progress.NewTracker(cfg.Output.ProgressFile)
	require.NoError(t, tracker.Load())
	assert.False(t, tracker.IsDone("2024-08-09_to_2024-08-15"))

	// Only the first window was attempted
	assert.Len(t, browser.navigations, 1)
}

func TestRunIncompleteWindowSurfacesTypedError(t *testing.T) {
	window := config.Window{Start: "2024-08-09", End: "2024-08-15"}
	cfg := testConfig(t, []config.Window{window}, 500)
	cfg.Collect.MaxScrolls = 3

	// Far fewer unique texts than the threshold
	browser := &fakeBrowser{batches: [][]string{distinctTexts(10)}}

	s, err := New(cfg, browser)
	require.NoError(t, err)
	err = s.Run(context.Background(), nil)
	require.Error(t, err)

	var incomplete *errors.IncompleteWindowError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, 10, incomplete.Collected)

	// Incomplete windows leave no output and stay unmarked
	_, statErr := os.Stat(filepath.Join(cfg.Output.BaseDirectory, "week1.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunCorruptProgressIsFatal(t *testing.T) {
	window := config.Window{Start: "2024-08-09", End: "2024-08-15"}
	cfg := testConfig(t, []config.Window{window}, 500)
	require.NoError(t, os.WriteFile(cfg.Output.ProgressFile, []byte("{broken"), 0644))

	browser := &fakeBrowser{batches: [][]string{distinctTexts(500)}}

	s, err := New(cfg, browser)
	require.NoError(t, err)
	err = s.Run(context.Background(), nil)
	require.Error(t, err)

	var typed *errors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, errors.ErrorTypeProgress, typed.Type)

	// The browser was never touched
	assert.Zero(t, browser.loginCalls)
	assert.Empty(t, browser.navigations)
}

func TestRunProcessesWindowsInOrder(t *testing.T) {
	windows := []config.Window{
		{Start: "2024-08-09", End: "2024-08-15"},
		{Start: "2024-08-16", End: "2024-08-22"},
	}
	cfg := testConfig(t, windows, 5)
	cfg.RateLimit.NavigationsPerMinute = 100

	browser := &fakeBrowser{batches: [][]string{distinctTexts(5)}}

	s, err := New(cfg, browser)
	require.NoError(t, err)
	require.NoError(t, s.Run(context.Background(), nil))

	require.Len(t, browser.navigations, 2)
	assert.Contains(t, browser.navigations[0], "2024-08-09")
	assert.Contains(t, browser.navigations[1], "2024-08-16")

	for n := 1; n <= 2; n++ {
		data, err := os.ReadFile(filepath.Join(cfg.Output.BaseDirectory, fmt.Sprintf("week%d.json", n)))
		require.NoError(t, err)
		var texts []string
		require.NoError(t, json.Unmarshal(data, &texts))
		assert.Len(t, texts, 5)
	}
}
