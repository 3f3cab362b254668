package collector

import (
	"context"
	"time"

	"twscraper/pkg/errors"
	"twscraper/pkg/logger"
	"twscraper/pkg/pacing"
)

// Driver is the browser automation surface the collector depends on.
// pkg/browser provides the real rod-backed implementation; tests supply
// a scripted fake.
type Driver interface {
	// Navigate loads the given URL in the browser session
	Navigate(ctx context.Context, url string) error
	// TweetTexts returns the text of every currently rendered tweet
	TweetTexts(ctx context.Context) ([]string, error)
	// PageHeight returns the current document body scroll height
	PageHeight(ctx context.Context) (int, error)
	// ScrollToBottom scrolls the page to the bottom of the document
	ScrollToBottom(ctx context.Context) error
}

// Config holds the collection loop parameters for one window
type Config struct {
	// Threshold is the number of unique texts that completes the window
	Threshold int
	// StallLimit is how many consecutive unchanged-height scrolls
	// trigger the long pause
	StallLimit int
	// MaxScrolls caps scroll attempts; exceeding it fails the window
	// instead of scrolling forever on a thin result set
	MaxScrolls int
}

// Stats summarizes one window's collection run
type Stats struct {
	Scrolls  int
	Stalls   int
	Backoffs int
	Elapsed  time.Duration
}

// Collector runs the scroll-and-collect loop against a Driver
type Collector struct {
	driver Driver
	pacer  *pacing.Pacer
	cfg    Config
	logger logger.Logger
}

// New creates a collector over the given driver and pacing policy
func New(driver Driver, pacer *pacing.Pacer, cfg Config) *Collector {
	return &Collector{
		driver: driver,
		pacer:  pacer,
		cfg:    cfg,
		logger: logger.GetLogger(),
	}
}

// Collect navigates to url and scroll-collects unique tweet texts until
// the threshold is reached. The returned slice has exactly Threshold
// entries in insertion order.
//
// The loop mirrors the timeline's lazy loading: scan rendered tweets,
// scroll to the bottom, sleep a jittered delay, and compare the page
// height. An unchanged height counts as a stall; StallLimit consecutive
// stalls trigger one long pause and reset the counter. Hitting
// MaxScrolls before the threshold returns an IncompleteWindowError with
// the partial count.
func (c *Collector) Collect(ctx context.Context, url, windowKey string) ([]string, *Stats, error) {
	log := c.logger.WithField("window", windowKey)
	start := time.Now()
	stats := &Stats{}

	if err := c.driver.Navigate(ctx, url); err != nil {
		return nil, stats, errors.New(errors.ErrorTypeNavigation, "failed to open search results", err)
	}
	if err := c.pacer.SleepSettle(ctx); err != nil {
		return nil, stats, err
	}

	lastHeight, err := c.driver.PageHeight(ctx)
	if err != nil {
		return nil, stats, errors.New(errors.ErrorTypeExtraction, "failed to read page height", err)
	}

	set := NewOrderedSet()
	stallCount := 0

	for set.Len() < c.cfg.Threshold {
		texts, err := c.driver.TweetTexts(ctx)
		if err != nil {
			return nil, stats, errors.New(errors.ErrorTypeExtraction, "failed to extract tweet texts", err)
		}

		added := 0
		for _, text := range texts {
			if set.Add(text) {
				added++
			}
			if set.Len() >= c.cfg.Threshold {
				break
			}
		}

		log.DebugWithFields("collected batch", map[string]interface{}{
			"new":   added,
			"total": set.Len(),
		})

		if set.Len() >= c.cfg.Threshold {
			break
		}

		if stats.Scrolls >= c.cfg.MaxScrolls {
			stats.Elapsed = time.Since(start)
			return nil, stats, errors.New(errors.ErrorTypeIncomplete, "scroll cap reached",
				&errors.IncompleteWindowError{
					WindowKey: windowKey,
					Collected: set.Len(),
					Threshold: c.cfg.Threshold,
					Scrolls:   stats.Scrolls,
				})
		}

		if err := c.driver.ScrollToBottom(ctx); err != nil {
			return nil, stats, errors.New(errors.ErrorTypeNavigation, "scroll failed", err)
		}
		stats.Scrolls++

		if err := c.pacer.SleepScroll(ctx); err != nil {
			return nil, stats, err
		}

		newHeight, err := c.driver.PageHeight(ctx)
		if err != nil {
			return nil, stats, errors.New(errors.ErrorTypeExtraction, "failed to read page height", err)
		}

		if newHeight == lastHeight {
			stallCount++
			stats.Stalls++
			log.DebugWithFields("no new content loaded", map[string]interface{}{
				"stall_count": stallCount,
			})
			if stallCount >= c.cfg.StallLimit {
				log.Info("pausing to mimic human behavior")
				if err := c.pacer.SleepStall(ctx); err != nil {
					return nil, stats, err
				}
				stats.Backoffs++
				stallCount = 0
			}
		} else {
			stallCount = 0
		}

		lastHeight = newHeight
	}

	stats.Elapsed = time.Since(start)

	log.InfoWithFields("window collection finished", map[string]interface{}{
		"collected": set.Len(),
		"scrolls":   stats.Scrolls,
		"stalls":    stats.Stalls,
		"backoffs":  stats.Backoffs,
		"elapsed":   stats.Elapsed.Round(time.Second).String(),
	})

	return set.Values(), stats, nil
}
