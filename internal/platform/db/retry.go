package db

import (
	"context"
	"time"
)

const (
	pingAttempts = 4
	pingBackoff  = 200 * time.Millisecond
)

// pingWithRetry retries ping with exponential backoff while respecting context
// cancellation. Containers started together often need a moment before the store
// accepts connections.
func pingWithRetry(ctx context.Context, ping func(context.Context) error) error {
	return retry(ctx, pingAttempts, pingBackoff, ping)
}

func retry(ctx context.Context, attempts int, backoff time.Duration, fn func(context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil || attempt == attempts {
			return lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return lastErr
}
