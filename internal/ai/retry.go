package ai

import (
	"context"
	"fmt"
	"time"
)

// RetryConfig configures exponential backoff retry behavior.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  int // seconds (default 5)
	OnRetry    func(attempt int, delay int)
}

// RetryWithBackoff retries fn with exponential backoff.
// Delays: BaseDelay, BaseDelay*2, BaseDelay*4, ...
// Context cancellation aborts both the call and any pending wait.
func RetryWithBackoff(ctx context.Context, cfg RetryConfig, fn func() error) error {
	if cfg.BaseDelay == 0 {
		cfg.BaseDelay = 5
	}

	delay := cfg.BaseDelay
	var err error

	for attempt := 0; ; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if attempt >= cfg.MaxRetries {
			break
		}

		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt+1, delay)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(delay) * time.Second):
		}

		delay *= 2
	}

	return fmt.Errorf("all %d attempts failed: %w", cfg.MaxRetries+1, err)
}

// RetryReasoner wraps any Reasoner with RetryWithBackoff retry logic.
type RetryReasoner struct {
	Inner    Reasoner
	RetryCfg RetryConfig
}

// Reason delegates to the inner reasoner, retrying on failure.
func (r *RetryReasoner) Reason(ctx context.Context, system, prompt string) (string, error) {
	var out string
	err := RetryWithBackoff(ctx, r.RetryCfg, func() error {
		var innerErr error
		out, innerErr = r.Inner.Reason(ctx, system, prompt)
		return innerErr
	})
	return out, err
}
