package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/lexdoc"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetryDelays attempts a fetch with backoff between attempts.
// len(delays)+1 attempts are made in total. Rate-limited, forbidden, and
// not-found responses are returned immediately; retrying them wastes quota
// without changing the outcome.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, err := fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		switch lexdoc.ErrorCode(err) {
		case lexdoc.ERATELIMIT, lexdoc.EFORBIDDEN, lexdoc.ENOTFOUND:
			return "", err
		}

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
