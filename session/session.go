// Package session owns the single authenticated browser context that every
// scraping request is issued from. API calls run as fetch() inside the page,
// so they carry the logged-in user's cookies and pass the same fingerprinting
// the site applies to the real frontend.
package session

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"shopee-scraper/config"
	"shopee-scraper/utils"
)

// Session wraps a persistent Chrome profile. At most one request is in
// flight at any time across the whole process; every caller funnels through
// the same mutex.
type Session struct {
	cfg    *config.Config
	logger *utils.Logger

	mu          sync.Mutex
	ctx         context.Context
	cancelCtx   context.CancelFunc
	cancelAlloc context.CancelFunc
}

// Open starts the browser with the persisted profile and navigates to the
// login page. The human completes login manually; the profile directory
// keeps the session alive across runs.
func Open(cfg *config.Config, logger *utils.Logger) (*Session, error) {
	profile, err := filepath.Abs(cfg.ProfileDir)
	if err != nil {
		return nil, fmt.Errorf("session: resolve profile dir: %w", err)
	}

	chromeBin := cfg.ChromeBin
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserDataDir(profile),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)

	// Suppress chromedp log noise
	ctx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	if err := chromedp.Run(ctx, chromedp.Navigate(cfg.LoginURL())); err != nil {
		cancelCtx()
		cancelAlloc()
		return nil, fmt.Errorf("session: open login page: %w", err)
	}

	logger.Info("[session] Browser ready, log in at %s", cfg.LoginURL())

	return &Session{
		cfg:         cfg,
		logger:      logger,
		ctx:         ctx,
		cancelCtx:   cancelCtx,
		cancelAlloc: cancelAlloc,
	}, nil
}

// Execute issues a GET to the given API URL from inside the authenticated
// page and returns the decoded JSON object. Network-level failures surface
// as a response with a string error marker, matching the shapes the
// paginators already handle.
func (s *Session) Execute(apiURL string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	script := fmt.Sprintf(`
		fetch(%q)
			.then(r => r.json())
			.catch(err => ({error: 'fetch: ' + err}))
	`, apiURL)

	var result map[string]any
	err := utils.Retry(s.logger, "execute-fetch", s.cfg.MaxRetries, 2*time.Second, func() error {
		ctx, cancel := context.WithTimeout(s.ctx, 60*time.Second)
		defer cancel()

		return chromedp.Run(ctx, chromedp.Evaluate(script, &result,
			func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
				return p.WithAwaitPromise(true)
			}))
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Close shuts the browser down.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelCtx != nil {
		s.cancelCtx()
		s.cancelCtx = nil
	}
	if s.cancelAlloc != nil {
		s.cancelAlloc()
		s.cancelAlloc = nil
	}
	return nil
}

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary() string {
	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
