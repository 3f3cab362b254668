package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	// Test default values
	if config.Collect.Threshold != 500 {
		t.Errorf("Expected default threshold to be 500, got %d", config.Collect.Threshold)
	}

	if config.Collect.StallLimit != 3 {
		t.Errorf("Expected default stall limit to be 3, got %d", config.Collect.StallLimit)
	}

	if len(config.Windows) != 16 {
		t.Errorf("Expected 16 default windows, got %d", len(config.Windows))
	}

	if config.Collect.ScrollDelayMin != 2*time.Second || config.Collect.ScrollDelayMax != 5*time.Second {
		t.Errorf("Expected scroll delay bounds [2s, 5s], got [%v, %v]",
			config.Collect.ScrollDelayMin, config.Collect.ScrollDelayMax)
	}

	if config.Collect.StallPauseMin != 10*time.Second || config.Collect.StallPauseMax != 20*time.Second {
		t.Errorf("Expected stall pause bounds [10s, 20s], got [%v, %v]",
			config.Collect.StallPauseMin, config.Collect.StallPauseMax)
	}

	if config.Browser.Headless {
		t.Error("Expected headless to default to false for manual login")
	}

	if err := config.Validate(); err != nil {
		t.Errorf("Expected default config to validate, got %v", err)
	}
}

func TestWindowKey(t *testing.T) {
	w := Window{Start: "2024-08-09", End: "2024-08-15"}
	if key := w.Key(); key != "2024-08-09_to_2024-08-15" {
		t.Errorf("Expected key 2024-08-09_to_2024-08-15, got %s", key)
	}
}

func TestLoadFromEnv(t *testing.T) {
	os.Setenv("TWSCRAPER_KEYWORD", "arteta")
	os.Setenv("TWSCRAPER_LANGUAGE", "en")
	os.Setenv("TWSCRAPER_THRESHOLD", "250")
	os.Setenv("TWSCRAPER_OUTPUT_DIR", "/tmp/test-windows")
	os.Setenv("TWSCRAPER_HEADLESS", "true")
	os.Setenv("TWSCRAPER_LOG_LEVEL", "debug")

	defer func() {
		os.Unsetenv("TWSCRAPER_KEYWORD")
		os.Unsetenv("TWSCRAPER_LANGUAGE")
		os.Unsetenv("TWSCRAPER_THRESHOLD")
		os.Unsetenv("TWSCRAPER_OUTPUT_DIR")
		os.Unsetenv("TWSCRAPER_HEADLESS")
		os.Unsetenv("TWSCRAPER_LOG_LEVEL")
	}()

	config := DefaultConfig()
	if err := config.LoadFromEnv(); err != nil {
		t.Fatalf("Failed to load from environment: %v", err)
	}

	if config.Search.Keyword != "arteta" {
		t.Errorf("Expected keyword to be arteta, got %s", config.Search.Keyword)
	}

	if config.Search.Language != "en" {
		t.Errorf("Expected language to be en, got %s", config.Search.Language)
	}

	if config.Collect.Threshold != 250 {
		t.Errorf("Expected threshold to be 250, got %d", config.Collect.Threshold)
	}

	if config.Output.BaseDirectory != "/tmp/test-windows" {
		t.Errorf("Expected output directory to be /tmp/test-windows, got %s", config.Output.BaseDirectory)
	}

	if !config.Browser.Headless {
		t.Error("Expected headless to be enabled")
	}

	if config.Logging.Level != "debug" {
		t.Errorf("Expected log level to be debug, got %s", config.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError bool
	}{
		{
			name:      "valid defaults",
			mutate:    func(c *Config) {},
			wantError: false,
		},
		{
			name:      "missing keyword",
			mutate:    func(c *Config) { c.Search.Keyword = "" },
			wantError: true,
		},
		{
			name:      "missing language",
			mutate:    func(c *Config) { c.Search.Language = "" },
			wantError: true,
		},
		{
			name:      "no windows",
			mutate:    func(c *Config) { c.Windows = nil },
			wantError: true,
		},
		{
			name: "malformed start date",
			mutate: func(c *Config) {
				c.Windows = []Window{{Start: "09-08-2024", End: "2024-08-15"}}
			},
			wantError: true,
		},
		{
			name: "end before start",
			mutate: func(c *Config) {
				c.Windows = []Window{{Start: "2024-08-15", End: "2024-08-09"}}
			},
			wantError: true,
		},
		{
			name:      "zero threshold",
			mutate:    func(c *Config) { c.Collect.Threshold = 0 },
			wantError: true,
		},
		{
			name:      "zero max scrolls",
			mutate:    func(c *Config) { c.Collect.MaxScrolls = 0 },
			wantError: true,
		},
		{
			name: "scroll delay max below min",
			mutate: func(c *Config) {
				c.Collect.ScrollDelayMin = 5 * time.Second
				c.Collect.ScrollDelayMax = 2 * time.Second
			},
			wantError: true,
		},
		{
			name:      "zero navigations per minute",
			mutate:    func(c *Config) { c.RateLimit.NavigationsPerMinute = 0 },
			wantError: true,
		},
		{
			name:      "invalid log level",
			mutate:    func(c *Config) { c.Logging.Level = "loud" },
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if tt.wantError && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestMergeCommandLineFlags(t *testing.T) {
	config := DefaultConfig()

	flags := map[string]interface{}{
		"keyword":     "arteta",
		"language":    "en",
		"output":      "/tmp/out",
		"threshold":   300,
		"max-scrolls": 50,
		"headless":    true,
		"account":     "myhandle",
		"log-level":   "warn",
	}

	config.MergeCommandLineFlags(flags)

	if config.Search.Keyword != "arteta" {
		t.Errorf("Expected keyword to be arteta, got %s", config.Search.Keyword)
	}
	if config.Search.Language != "en" {
		t.Errorf("Expected language to be en, got %s", config.Search.Language)
	}
	if config.Output.BaseDirectory != "/tmp/out" {
		t.Errorf("Expected output directory to be /tmp/out, got %s", config.Output.BaseDirectory)
	}
	if config.Collect.Threshold != 300 {
		t.Errorf("Expected threshold to be 300, got %d", config.Collect.Threshold)
	}
	if config.Collect.MaxScrolls != 50 {
		t.Errorf("Expected max scrolls to be 50, got %d", config.Collect.MaxScrolls)
	}
	if !config.Browser.Headless {
		t.Error("Expected headless to be enabled")
	}
	if config.Browser.Account != "myhandle" {
		t.Errorf("Expected account to be myhandle, got %s", config.Browser.Account)
	}
	if config.Logging.Level != "warn" {
		t.Errorf("Expected log level to be warn, got %s", config.Logging.Level)
	}
}

func TestSaveAndLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	original := DefaultConfig()
	original.Search.Keyword = "arteta"
	original.Collect.Threshold = 123
	original.Windows = []Window{{Start: "2025-01-01", End: "2025-01-07"}}

	if err := original.Save(path); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded := DefaultConfig()
	if err := loaded.LoadFromFile(path); err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loaded.Search.Keyword != "arteta" {
		t.Errorf("Expected keyword arteta, got %s", loaded.Search.Keyword)
	}
	if loaded.Collect.Threshold != 123 {
		t.Errorf("Expected threshold 123, got %d", loaded.Collect.Threshold)
	}
	if len(loaded.Windows) != 1 || loaded.Windows[0].Key() != "2025-01-01_to_2025-01-07" {
		t.Errorf("Unexpected windows after load: %+v", loaded.Windows)
	}
}
