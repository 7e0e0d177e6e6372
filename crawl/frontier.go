package crawl

import (
	"strings"
	"sync"

	"github.com/fwojciec/lexdoc"
	"github.com/fwojciec/lexdoc/bloom"
)

// Compile-time interface verification.
var _ lexdoc.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory URL frontier with LIFO ordering and Bloom filter
// deduplication. LIFO ordering gives the traversal depth-first shape: links
// found on the current page are visited before the rest of the queue.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	stack []lexdoc.DiscoveredLink
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		seen: bloom.NewFilter(n, fpRate),
	}
}

// Push adds a link to the frontier.
// Returns false if the URL has already been seen.
// URL fragments are stripped before deduplication - URLs differing only by
// fragment are considered duplicates.
func (f *Frontier) Push(link lexdoc.DiscoveredLink) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	url := stripFragment(link.URL)
	if f.seen.TestAndAdd(url) {
		return false
	}

	link.URL = url
	f.stack = append(f.stack, link)
	return true
}

// Pop returns the most recently pushed link.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (lexdoc.DiscoveredLink, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := len(f.stack)
	if n == 0 {
		return lexdoc.DiscoveredLink{}, false
	}
	link := f.stack[n-1]
	f.stack = f.stack[:n-1]
	return link, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.stack)
}

// Seen returns true if the URL has been processed or queued.
// URL fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(stripFragment(rawURL))
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}
