package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"twscraper/pkg/auth"
	"twscraper/pkg/browser"
	"twscraper/pkg/config"
	"twscraper/pkg/logger"
	"twscraper/pkg/scraper"
	"twscraper/pkg/ui"
)

var (
	// Scrape command flags
	keyword      string
	language     string
	outputDir    string
	progressFile string
	threshold    int
	maxScrolls   int
	rateLimit    int
	headless     bool
	accountName  string
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Run the collection over all configured date windows",
	Long: `Run the scroll-and-collect loop for every date window in the
configuration, skipping windows that progress.json already marks done.

For each remaining window the scraper navigates to the X live search
results for the configured keyword and language, scrolls until the
tweet threshold is reached, and writes the collected texts to
week<N>.json in the output directory.

Without stored session cookies the browser opens visibly and the
scraper waits for you to log in before the first window starts. Store
cookies with 'twscraper auth login' to skip the wait.`,
	Example: `  # Collect with the built-in window list
  twscraper scrape

  # Different keyword and language, headless with stored cookies
  twscraper scrape --keyword arteta --language en --headless --account myhandle

  # Custom output locations
  twscraper scrape --output ./data --progress-file ./data/progress.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runScrape(cmd, args)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringVarP(&keyword, "keyword", "k", "", "search keyword (default from config)")
	scrapeCmd.Flags().StringVarP(&language, "language", "l", "", "tweet language filter, e.g. tr or en")
	scrapeCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory for weekN.json files")
	scrapeCmd.Flags().StringVar(&progressFile, "progress-file", "", "path to the progress file")
	scrapeCmd.Flags().IntVar(&threshold, "threshold", 0, "tweets to collect per window")
	scrapeCmd.Flags().IntVar(&maxScrolls, "max-scrolls", 0, "scroll attempts allowed per window")
	scrapeCmd.Flags().IntVar(&rateLimit, "rate-limit", 0, "search navigations per minute")
	scrapeCmd.Flags().BoolVar(&headless, "headless", false, "run the browser without a visible window")
	scrapeCmd.Flags().StringVarP(&accountName, "account", "a", "", "use specific stored account")
}

func runScrape(cmd *cobra.Command, args []string) {
	// Build flags map from command line
	flags := make(map[string]interface{})
	if keyword != "" {
		flags["keyword"] = keyword
	}
	if language != "" {
		flags["language"] = language
	}
	if outputDir != "" {
		flags["output"] = outputDir
	}
	if progressFile != "" {
		flags["progress-file"] = progressFile
	}
	if threshold > 0 {
		flags["threshold"] = threshold
	}
	if maxScrolls > 0 {
		flags["max-scrolls"] = maxScrolls
	}
	if rateLimit > 0 {
		flags["navigations-per-minute"] = rateLimit
	}
	if cmd.Flags().Changed("headless") {
		flags["headless"] = headless
	}
	if accountName != "" {
		flags["account"] = accountName
	}
	if logLevel != "info" {
		flags["log-level"] = logLevel
	}

	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}
	cfg.MergeCommandLineFlags(flags)

	if err := cfg.Validate(); err != nil {
		ui.PrintError("Invalid configuration", err.Error())
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.InitGlobalLogger(&cfg.Logging); err != nil {
		ui.PrintError("Failed to initialize logger", err.Error())
		os.Exit(1)
	}
	log := logger.GetLogger()
	log.WithField("version", version).Info("twscraper starting")

	// Resolve stored session cookies. A missing account is not fatal:
	// the browser falls back to a visible manual login.
	account := resolveAccount(cfg, log)

	ui.PrintInfo("Search", fmt.Sprintf("%s lang:%s", cfg.Search.Keyword, cfg.Search.Language))
	ui.PrintInfo("Windows", fmt.Sprintf("%d", len(cfg.Windows)))

	// Cancel the run on SIGINT/SIGTERM so sleeps and navigations
	// unwind instead of leaving a half-written window behind.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := browser.NewSession(cfg.Browser)
	if err != nil {
		log.WithError(err).Error("Browser launch failed")
		ui.PrintError("Failed to launch browser", err.Error())
		os.Exit(1)
	}
	defer session.Close()

	s, err := scraper.New(cfg, session)
	if err != nil {
		ui.PrintError("Failed to initialize scraper", err.Error())
		os.Exit(1)
	}

	if err := s.Run(ctx, account); err != nil {
		if errors.Is(err, context.Canceled) {
			ui.PrintWarning("Interrupted; completed windows are recorded in", cfg.Output.ProgressFile)
			os.Exit(130)
		}
		log.WithError(err).Error("Collection failed")
		ui.PrintError("Collection failed", err.Error())
		os.Exit(1)
	}

	log.Info("All windows completed")
	ui.PrintSuccess("All windows completed")
}

// resolveAccount returns stored cookies for the configured account, the
// default stored account, or nil when nothing is stored.
func resolveAccount(cfg *config.Config, log logger.Logger) *auth.Account {
	manager, err := auth.NewManager()
	if err != nil {
		log.WithError(err).Warn("Credential manager unavailable; manual login required")
		return nil
	}

	if cfg.Browser.Account != "" {
		account, err := manager.Retrieve(cfg.Browser.Account)
		if err != nil {
			ui.PrintError("Account not found", cfg.Browser.Account)
			ui.PrintInfo("Stored accounts", "Use 'twscraper auth status' to list them")
			os.Exit(1)
		}
		log.WithField("account", account.Handle).Info("Using stored session cookies")
		ui.PrintInfo("Using account", account.Handle)
		return account
	}

	account, err := manager.RetrieveDefault()
	if err != nil {
		log.Info("No stored session cookies; waiting for manual login")
		ui.PrintWarning("No stored cookies: log in manually in the browser window, or run 'twscraper auth login' first")
		return nil
	}
	log.WithField("account", account.Handle).Info("Using stored session cookies")
	ui.PrintInfo("Using account", account.Handle)
	return account
}
