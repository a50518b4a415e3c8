package shopee

import "shopee-scraper/utils"

// BotDetectedCode is the sentinel error value the API returns when a request
// is blocked by anti-automation defenses.
const BotDetectedCode = 90309999

// Executor is the capability the session collaborator provides: issue one
// authenticated GET and return the decoded JSON response.
type Executor interface {
	Execute(url string) (map[string]any, error)
}

// Waiter blocks until a human has resolved the captcha in the browser. The
// CLI uses a terminal prompt; the service moves the owning task into an
// awaiting-captcha state and blocks on a resolve signal.
type Waiter func() error

// CaptchaGuard wraps a single API call with the bot-detection recovery
// protocol: on the sentinel code it signals for manual intervention, blocks
// until resolution, then retries exactly once and returns that result
// regardless of outcome. The bounded retry keeps a persistent block from
// looping forever; the paginator's own loop decides what happens next.
type CaptchaGuard struct {
	logger *utils.Logger
	wait   Waiter
}

// NewCaptchaGuard creates a guard that blocks via the given waiter.
func NewCaptchaGuard(logger *utils.Logger, wait Waiter) *CaptchaGuard {
	return &CaptchaGuard{logger: logger, wait: wait}
}

// Call invokes the executor, applying the recovery protocol if the response
// carries the bot-detection sentinel.
func (g *CaptchaGuard) Call(exec Executor, url string) (map[string]any, error) {
	resp, err := exec.Execute(url)
	if err != nil {
		return nil, err
	}

	code, ok := errorCode(resp)
	if !ok || code != BotDetectedCode {
		return resp, nil
	}

	g.logger.Warn("[captcha] Bot detection triggered, manual intervention required")
	if g.wait != nil {
		if waitErr := g.wait(); waitErr != nil {
			g.logger.Error("[captcha] Resolution wait failed: %v", waitErr)
			return resp, nil
		}
	}

	return exec.Execute(url)
}
