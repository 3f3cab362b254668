package scraper

import (
	"context"
	"fmt"
	"time"

	"twscraper/pkg/auth"
	"twscraper/pkg/collector"
	"twscraper/pkg/config"
	"twscraper/pkg/errors"
	"twscraper/pkg/logger"
	"twscraper/pkg/pacing"
	"twscraper/pkg/progress"
	"twscraper/pkg/ratelimit"
	"twscraper/pkg/storage"
	"twscraper/pkg/twitter"
	"twscraper/pkg/ui"
)

// Scraper orchestrates the window-by-window tweet collection run
type Scraper struct {
	browser     Browser
	tracker     *progress.Tracker
	store       *storage.Manager
	rateLimiter ratelimit.Limiter
	status      *ui.StatusTracker
	config      *config.Config
	logger      logger.Logger
}

// New creates a new Scraper instance over an already-launched browser
func New(cfg *config.Config, browser Browser) (*Scraper, error) {
	store, err := storage.NewManager(cfg.Output.BaseDirectory)
	if err != nil {
		return nil, errors.New(errors.ErrorTypeStorage, "failed to init output storage", err)
	}

	var rateLimiter ratelimit.Limiter
	if cfg.RateLimit.NavigationsPerMinute > 0 {
		rateLimiter = ratelimit.NewTokenBucket(
			cfg.RateLimit.NavigationsPerMinute,
			time.Minute,
		)
	} else {
		rateLimiter = ratelimit.NewTokenBucket(6, time.Minute)
	}

	return &Scraper{
		browser:     browser,
		tracker:     progress.NewTracker(cfg.Output.ProgressFile),
		store:       store,
		rateLimiter: rateLimiter,
		status:      ui.NewStatusTracker(len(cfg.Windows)),
		config:      cfg,
		logger:      logger.GetLogger(),
	}, nil
}

// Run collects every configured window that is not already complete.
// Windows run strictly in order on the single browser session; the
// first collection error aborts the remaining windows.
func (s *Scraper) Run(ctx context.Context, account *auth.Account) error {
	if err := s.tracker.Load(); err != nil {
		return errors.New(errors.ErrorTypeProgress, "cannot load progress", err)
	}

	if err := s.browser.Login(ctx, account); err != nil {
		return errors.New(errors.ErrorTypeAuth, "login failed", err)
	}

	pacer := &pacing.Pacer{
		Settle: s.config.Collect.SettleDelay,
		ScrollDelay: pacing.Range{
			Min: s.config.Collect.ScrollDelayMin,
			Max: s.config.Collect.ScrollDelayMax,
		},
		StallPause: pacing.Range{
			Min: s.config.Collect.StallPauseMin,
			Max: s.config.Collect.StallPauseMax,
		},
	}

	coll := collector.New(s.browser, pacer, collector.Config{
		Threshold:  s.config.Collect.Threshold,
		StallLimit: s.config.Collect.StallLimit,
		MaxScrolls: s.config.Collect.MaxScrolls,
	})

	for i, window := range s.config.Windows {
		key := window.Key()
		log := s.logger.WithField("window", key)

		if s.tracker.IsDone(key) {
			log.Info("skipping already collected window")
			s.status.CompleteWindow()
			continue
		}

		if s.store.HasWindow(i + 1) {
			// A crash between the output write and the progress mark
			// leaves the file behind; recollecting overwrites it.
			log.Warn("output file exists but window is not marked done, recollecting")
		}

		s.status.BeginWindow(key)
		ui.PrintInfo("Collecting window", fmt.Sprintf("%s to %s", window.Start, window.End))

		s.rateLimiter.Wait()

		url := twitter.SearchURL(
			s.config.Search.Keyword,
			s.config.Search.Language,
			window.Start,
			window.End,
		)

		texts, stats, err := coll.Collect(ctx, url, key)
		if err != nil {
			return err
		}

		if err := s.store.WriteWindow(i+1, texts); err != nil {
			return errors.New(errors.ErrorTypeStorage,
				fmt.Sprintf("failed to write output for window %d", i+1), err)
		}

		if err := s.tracker.MarkDone(key); err != nil {
			return errors.New(errors.ErrorTypeProgress,
				fmt.Sprintf("failed to persist progress for window %d", i+1), err)
		}

		s.status.CompleteWindow()
		log.InfoWithFields("window complete", map[string]interface{}{
			"file":    s.store.WindowPath(i + 1),
			"tweets":  len(texts),
			"scrolls": stats.Scrolls,
		})
		ui.PrintSuccess(s.status.WindowProgress())
	}

	s.logger.InfoWithFields("all windows processed", map[string]interface{}{
		"windows": len(s.config.Windows),
		"elapsed": s.status.Elapsed().String(),
	})

	return nil
}
