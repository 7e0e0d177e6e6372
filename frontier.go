package lexdoc

import "context"

// DiscoveredLink represents a candidate URL found during traversal,
// carrying the depth at which it was discovered.
type DiscoveredLink struct {
	URL   string
	Depth int
	Text  string
}

// URLFrontier manages a crawl queue with deduplication. A frontier is owned
// by a single traversal call and discarded when the traversal ends.
type URLFrontier interface {
	// Push adds a link to the frontier.
	// Returns false if the URL has already been seen.
	Push(link DiscoveredLink) bool

	// Pop returns the next link to visit.
	// Returns false if the frontier is empty.
	Pop() (DiscoveredLink, bool)

	// Len returns the number of links waiting in the queue.
	Len() int

	// Seen returns true if the URL has been processed or queued.
	Seen(url string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// Fetcher retrieves raw content from URLs.
type Fetcher interface {
	// Fetch returns the body at url. Non-2xx responses are returned as
	// application errors carrying a status-derived code (ERATELIMIT,
	// EFORBIDDEN, ENOTFOUND, EUNAVAILABLE).
	Fetch(ctx context.Context, url string) (string, error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// SitemapService discovers URLs from website sitemaps, used to expand a
// descriptor's seed list before crawling.
type SitemapService interface {
	// DiscoverURLs finds URLs from a site's sitemap, checking robots.txt
	// for sitemap directives first and falling back to /sitemap.xml.
	// Returns an empty slice when the site publishes no sitemap.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
