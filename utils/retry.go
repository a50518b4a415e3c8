package utils

import (
	"fmt"
	"time"
)

// Retry executes fn with exponential back-off, logging each failed attempt.
// Used for transient browser-evaluate failures; the captcha protocol has its
// own, separate recovery path.
func Retry(logger *Logger, operation string, maxAttempts int, baseDelay time.Duration, fn func() error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	delay := baseDelay

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt < maxAttempts {
			logger.Warn("[retry] %s failed (attempt %d/%d): %v, retrying in %v",
				operation, attempt, maxAttempts, lastErr, delay)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operation, maxAttempts, lastErr)
}
