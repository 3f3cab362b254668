package browser

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"twscraper/pkg/auth"
	"twscraper/pkg/config"
	"twscraper/pkg/logger"
	"twscraper/pkg/pacing"
	"twscraper/pkg/twitter"
)

// Session is one controlled browser with a single page, the only page
// the whole run uses. It implements collector.Driver.
type Session struct {
	browser *rod.Browser
	page    *rod.Page
	cfg     config.BrowserConfig
	logger  logger.Logger
}

// NewSession launches a Chromium instance and opens the session page.
// Stealth injection happens here so it applies to every navigation.
func NewSession(cfg config.BrowserConfig) (*Session, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(true).
		Set("disable-dev-shm-usage")

	if cfg.BinPath != "" {
		l = l.Bin(cfg.BinPath)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	if cfg.Stealth {
		if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
			browser.Close()
			return nil, fmt.Errorf("stealth injection failed: %w", err)
		}
	}

	if cfg.UserAgent != "" {
		override := proto.NetworkSetUserAgentOverride{UserAgent: cfg.UserAgent}
		if err := page.SetUserAgent(&override); err != nil {
			browser.Close()
			return nil, fmt.Errorf("failed to set user agent: %w", err)
		}
	}

	return &Session{
		browser: browser,
		page:    page,
		cfg:     cfg,
		logger:  logger.GetLogger(),
	}, nil
}

// Login establishes a logged-in session. With stored credentials the
// auth cookies are injected directly; without them the login page opens
// and the session waits for the user to log in by hand.
func (s *Session) Login(ctx context.Context, account *auth.Account) error {
	if account != nil {
		if err := s.injectCookies(account); err != nil {
			return err
		}
		s.logger.InfoWithFields("session cookies injected", map[string]interface{}{
			"account": account.Handle,
		})
		return s.Navigate(ctx, twitter.BaseURL)
	}

	s.logger.InfoWithFields("no stored session, waiting for manual login", map[string]interface{}{
		"wait": s.cfg.LoginWait.String(),
	})
	if err := s.Navigate(ctx, twitter.LoginURL); err != nil {
		return err
	}
	return pacing.Wait(ctx, s.cfg.LoginWait)
}

// injectCookies sets the session cookies on both domains X serves from
func (s *Session) injectCookies(account *auth.Account) error {
	var cookies []*proto.NetworkCookieParam
	for _, domain := range []string{".twitter.com", ".x.com"} {
		cookies = append(cookies,
			&proto.NetworkCookieParam{
				Name:   "auth_token",
				Value:  account.AuthToken,
				Domain: domain,
				Path:   "/",
				Secure: true,
			},
			&proto.NetworkCookieParam{
				Name:   "ct0",
				Value:  account.CSRFToken,
				Domain: domain,
				Path:   "/",
				Secure: true,
			},
		)
	}

	if err := s.browser.SetCookies(cookies); err != nil {
		return fmt.Errorf("failed to set session cookies: %w", err)
	}
	return nil
}

// Navigate loads a URL and waits for the load event
func (s *Session) Navigate(ctx context.Context, url string) error {
	p := s.page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("wait load %s: %w", url, err)
	}
	return nil
}

// TweetTexts returns the text of every tweet currently rendered
func (s *Session) TweetTexts(ctx context.Context) ([]string, error) {
	p := s.page.Context(ctx)

	elements, err := p.Elements(twitter.TweetText)
	if err != nil {
		return nil, fmt.Errorf("query tweet elements: %w", err)
	}

	texts := make([]string, 0, len(elements))
	for _, el := range elements {
		text, err := el.Text()
		if err != nil {
			// A tweet can detach between query and read while the
			// timeline virtualizes; skip it, the next scan sees it again.
			continue
		}
		texts = append(texts, text)
	}

	return texts, nil
}

// PageHeight returns the current document body scroll height
func (s *Session) PageHeight(ctx context.Context) (int, error) {
	p := s.page.Context(ctx)

	res, err := p.Eval(`() => document.body.scrollHeight`)
	if err != nil {
		return 0, fmt.Errorf("read page height: %w", err)
	}
	return res.Value.Int(), nil
}

// ScrollToBottom scrolls the page to the bottom of the document
func (s *Session) ScrollToBottom(ctx context.Context) error {
	p := s.page.Context(ctx)

	if _, err := p.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`); err != nil {
		return fmt.Errorf("scroll to bottom: %w", err)
	}
	return nil
}

// Close shuts the browser down
func (s *Session) Close() error {
	return s.browser.Close()
}
