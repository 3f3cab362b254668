package scraper

import (
	"context"

	"twscraper/pkg/auth"
	"twscraper/pkg/collector"
)

// Browser defines the browser session surface the scraper depends on.
// pkg/browser.Session is the real implementation.
type Browser interface {
	collector.Driver

	// Login establishes a logged-in session, either by injecting stored
	// cookies or by waiting for a manual login
	Login(ctx context.Context, account *auth.Account) error

	// Close shuts the browser down
	Close() error
}
