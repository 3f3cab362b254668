package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the tweet scraper
type Config struct {
	// Search query settings
	Search SearchConfig `yaml:"search" json:"search"`

	// Date windows to collect, in order
	Windows []Window `yaml:"windows" json:"windows"`

	// Collection loop settings
	Collect CollectConfig `yaml:"collect" json:"collect"`

	// Browser session settings
	Browser BrowserConfig `yaml:"browser" json:"browser"`

	// Rate limiting configuration
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// SearchConfig holds the fixed search query parameters
type SearchConfig struct {
	Keyword  string `yaml:"keyword" json:"keyword"`
	Language string `yaml:"language" json:"language"`
}

// Window is one date range to collect independently
type Window struct {
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

// Key returns the window's identity used in the progress file
func (w Window) Key() string {
	return fmt.Sprintf("%s_to_%s", w.Start, w.End)
}

// CollectConfig holds the scroll-and-collect loop parameters
type CollectConfig struct {
	// Threshold is the number of unique texts that completes a window
	Threshold int `yaml:"threshold" json:"threshold"`
	// StallLimit is the number of consecutive no-growth scrolls before a long pause
	StallLimit int `yaml:"stall_limit" json:"stall_limit"`
	// MaxScrolls caps scroll attempts per window; hitting it fails the window
	MaxScrolls int `yaml:"max_scrolls" json:"max_scrolls"`
	// SettleDelay is the wait after navigating to the search results
	SettleDelay time.Duration `yaml:"settle_delay" json:"settle_delay"`
	// ScrollDelayMin/Max bound the randomized pause between scrolls
	ScrollDelayMin time.Duration `yaml:"scroll_delay_min" json:"scroll_delay_min"`
	ScrollDelayMax time.Duration `yaml:"scroll_delay_max" json:"scroll_delay_max"`
	// StallPauseMin/Max bound the long pause after repeated stalls
	StallPauseMin time.Duration `yaml:"stall_pause_min" json:"stall_pause_min"`
	StallPauseMax time.Duration `yaml:"stall_pause_max" json:"stall_pause_max"`
}

// BrowserConfig holds browser session configuration
type BrowserConfig struct {
	// Headless runs Chromium without a visible window. Manual login
	// requires a visible window, so this defaults to false.
	Headless bool `yaml:"headless" json:"headless"`
	// BinPath overrides the Chromium binary rod launches
	BinPath string `yaml:"bin_path" json:"bin_path"`
	// UserAgent overrides the browser user agent when set
	UserAgent string `yaml:"user_agent" json:"user_agent"`
	// LoginWait is how long to wait for a manual login when no
	// stored session cookie is available
	LoginWait time.Duration `yaml:"login_wait" json:"login_wait"`
	// Stealth injects fingerprint masking before navigation
	Stealth bool `yaml:"stealth" json:"stealth"`
	// Account selects stored session credentials by handle
	Account string `yaml:"account" json:"account"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	NavigationsPerMinute int `yaml:"navigations_per_minute" json:"navigations_per_minute"`
}

// OutputConfig holds output and progress file configuration
type OutputConfig struct {
	BaseDirectory string `yaml:"base_directory" json:"base_directory"`
	ProgressFile  string `yaml:"progress_file" json:"progress_file"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults.
// The window list matches the 2024-25 Super League weeks the tool
// was built to cover; a config file replaces it wholesale.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Keyword:  "mourinho",
			Language: "tr",
		},
		Windows: []Window{
			{Start: "2024-08-09", End: "2024-08-15"},
			{Start: "2024-08-16", End: "2024-08-22"},
			{Start: "2024-08-23", End: "2024-08-29"},
			{Start: "2024-08-30", End: "2024-09-13"},
			{Start: "2024-09-14", End: "2024-09-19"},
			{Start: "2024-09-20", End: "2024-09-26"},
			{Start: "2024-09-27", End: "2024-10-03"},
			{Start: "2024-10-04", End: "2024-10-18"},
			{Start: "2024-10-19", End: "2024-10-24"},
			{Start: "2024-10-25", End: "2024-10-31"},
			{Start: "2024-11-01", End: "2024-11-07"},
			{Start: "2024-11-08", End: "2024-11-22"},
			{Start: "2024-11-23", End: "2024-11-28"},
			{Start: "2024-11-29", End: "2024-12-05"},
			{Start: "2024-12-06", End: "2024-12-12"},
			{Start: "2024-12-13", End: "2024-12-19"},
		},
		Collect: CollectConfig{
			Threshold:      500,
			StallLimit:     3,
			MaxScrolls:     200,
			SettleDelay:    5 * time.Second,
			ScrollDelayMin: 2 * time.Second,
			ScrollDelayMax: 5 * time.Second,
			StallPauseMin:  10 * time.Second,
			StallPauseMax:  20 * time.Second,
		},
		Browser: BrowserConfig{
			Headless:  false,
			UserAgent: "",
			LoginWait: 30 * time.Second,
			Stealth:   true,
		},
		RateLimit: RateLimitConfig{
			NavigationsPerMinute: 6,
		},
		Output: OutputConfig{
			BaseDirectory: ".",
			ProgressFile:  "progress.json",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// Load builds the effective configuration: defaults, then .env, then
// the YAML file, then environment variable overrides.
func Load(path string) (*Config, error) {
	// Load .env if present; missing file is fine
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if err := cfg.LoadFromFile(path); err != nil {
		return nil, err
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if keyword := os.Getenv("TWSCRAPER_KEYWORD"); keyword != "" {
		c.Search.Keyword = keyword
	}
	if lang := os.Getenv("TWSCRAPER_LANGUAGE"); lang != "" {
		c.Search.Language = lang
	}

	if threshold := os.Getenv("TWSCRAPER_THRESHOLD"); threshold != "" {
		var val int
		fmt.Sscanf(threshold, "%d", &val)
		if val > 0 {
			c.Collect.Threshold = val
		}
	}
	if maxScrolls := os.Getenv("TWSCRAPER_MAX_SCROLLS"); maxScrolls != "" {
		var val int
		fmt.Sscanf(maxScrolls, "%d", &val)
		if val > 0 {
			c.Collect.MaxScrolls = val
		}
	}

	if outputDir := os.Getenv("TWSCRAPER_OUTPUT_DIR"); outputDir != "" {
		c.Output.BaseDirectory = outputDir
	}
	if progressFile := os.Getenv("TWSCRAPER_PROGRESS_FILE"); progressFile != "" {
		c.Output.ProgressFile = progressFile
	}

	if headless := os.Getenv("TWSCRAPER_HEADLESS"); headless != "" {
		c.Browser.Headless = strings.ToLower(headless) == "true"
	}
	if account := os.Getenv("TWSCRAPER_ACCOUNT"); account != "" {
		c.Browser.Account = account
	}

	if logLevel := os.Getenv("TWSCRAPER_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".twscraper.yaml",
		".twscraper.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "twscraper", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "twscraper", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".twscraper.yaml"),
		filepath.Join(os.Getenv("HOME"), ".twscraper.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Search.Keyword == "" {
		errs = append(errs, errors.New("search keyword is required"))
	}
	if c.Search.Language == "" {
		errs = append(errs, errors.New("search language is required"))
	}

	if len(c.Windows) == 0 {
		errs = append(errs, errors.New("at least one date window is required"))
	}
	for i, w := range c.Windows {
		if _, err := time.Parse("2006-01-02", w.Start); err != nil {
			errs = append(errs, fmt.Errorf("window %d: invalid start date %q", i+1, w.Start))
			continue
		}
		if _, err := time.Parse("2006-01-02", w.End); err != nil {
			errs = append(errs, fmt.Errorf("window %d: invalid end date %q", i+1, w.End))
			continue
		}
		if w.End < w.Start {
			errs = append(errs, fmt.Errorf("window %d: end date before start date", i+1))
		}
	}

	if c.Collect.Threshold <= 0 {
		errs = append(errs, errors.New("collection threshold must be positive"))
	}
	if c.Collect.StallLimit <= 0 {
		errs = append(errs, errors.New("stall limit must be positive"))
	}
	if c.Collect.MaxScrolls <= 0 {
		errs = append(errs, errors.New("max scrolls must be positive"))
	}
	if c.Collect.ScrollDelayMin < 0 || c.Collect.ScrollDelayMax < c.Collect.ScrollDelayMin {
		errs = append(errs, errors.New("scroll delay bounds must satisfy 0 <= min <= max"))
	}
	if c.Collect.StallPauseMin < 0 || c.Collect.StallPauseMax < c.Collect.StallPauseMin {
		errs = append(errs, errors.New("stall pause bounds must satisfy 0 <= min <= max"))
	}

	if c.RateLimit.NavigationsPerMinute <= 0 {
		errs = append(errs, errors.New("navigations per minute must be positive"))
	}

	if c.Output.BaseDirectory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}
	if c.Output.ProgressFile == "" {
		errs = append(errs, errors.New("progress file path is required"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if keyword, ok := flags["keyword"].(string); ok && keyword != "" {
		c.Search.Keyword = keyword
	}
	if lang, ok := flags["language"].(string); ok && lang != "" {
		c.Search.Language = lang
	}
	if outputDir, ok := flags["output"].(string); ok && outputDir != "" {
		c.Output.BaseDirectory = outputDir
	}
	if progressFile, ok := flags["progress-file"].(string); ok && progressFile != "" {
		c.Output.ProgressFile = progressFile
	}
	if threshold, ok := flags["threshold"].(int); ok && threshold > 0 {
		c.Collect.Threshold = threshold
	}
	if maxScrolls, ok := flags["max-scrolls"].(int); ok && maxScrolls > 0 {
		c.Collect.MaxScrolls = maxScrolls
	}
	if navsPerMin, ok := flags["navigations-per-minute"].(int); ok && navsPerMin > 0 {
		c.RateLimit.NavigationsPerMinute = navsPerMin
	}
	if headless, ok := flags["headless"].(bool); ok {
		c.Browser.Headless = headless
	}
	if account, ok := flags["account"].(string); ok && account != "" {
		c.Browser.Account = account
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}
