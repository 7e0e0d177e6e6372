// Package http provides HTTP-based implementations of lexdoc.Fetcher and
// lexdoc.SitemapService for static documentation sites.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/lexdoc"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// defaultUserAgent identifies the crawler to documentation sites.
const defaultUserAgent = "lexdoc/1.0 (documentation fetcher)"

// Ensure Fetcher implements lexdoc.Fetcher at compile time.
var _ lexdoc.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// It does not execute JavaScript and is suitable for static sites only.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the content at the given URL. Non-2xx responses are
// returned as application errors whose code reflects the status: 429 maps
// to ERATELIMIT, 403 to EFORBIDDEN, 404 to ENOTFOUND, anything else to
// EUNAVAILABLE.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", lexdoc.Errorf(lexdoc.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", statusError(resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", lexdoc.Errorf(lexdoc.EUNAVAILABLE, "read %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// statusError maps an HTTP status code to an application error.
func statusError(status int, url string) error {
	switch status {
	case http.StatusTooManyRequests:
		return lexdoc.Errorf(lexdoc.ERATELIMIT, "HTTP 429 for %s", url)
	case http.StatusForbidden:
		return lexdoc.Errorf(lexdoc.EFORBIDDEN, "HTTP 403 for %s", url)
	case http.StatusNotFound:
		return lexdoc.Errorf(lexdoc.ENOTFOUND, "HTTP 404 for %s", url)
	default:
		return lexdoc.Errorf(lexdoc.EUNAVAILABLE, "HTTP %d for %s", status, url)
	}
}
