// Package crawl provides documentation site traversal. It coordinates
// fetching, content extraction, markdown conversion, and heuristic tagging
// of documentation pages, bounded by each source descriptor's depth and
// page budgets.
package crawl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/lexdoc"
)

// Frontier configuration for traversal.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
	// maxLinksPerPage caps the fan-out from a single page.
	maxLinksPerPage = 10
	// minContentLength rejects boilerplate pages with too little text.
	minContentLength = 200
)

// blockedExtensions lists URL path suffixes that are never documentation.
var blockedExtensions = map[string]struct{}{
	".pdf": {}, ".zip": {}, ".jpg": {}, ".png": {}, ".gif": {}, ".exe": {},
}

// Crawler traverses one documentation site per source descriptor and turns
// its pages into tagged documents. Pages are visited depth-first and
// sequentially; pacing between requests is the Limiter's job.
type Crawler struct {
	Fetcher   lexdoc.Fetcher
	Extractor lexdoc.Extractor

	// Fallback, when set, is consulted if Extractor finds no content region.
	Fallback lexdoc.Extractor

	Links     lexdoc.LinkExtractor
	Converter lexdoc.Converter

	// Limiter, when set, paces fetches per domain.
	Limiter lexdoc.DomainLimiter

	// Sitemaps, when set, expands the seed list for descriptors that opt in.
	Sitemaps lexdoc.SitemapService

	RetryDelays []time.Duration
	Logger      *slog.Logger
}

// Crawl visits pages reachable from the descriptor's seeds and returns the
// documents it produced. Any single page failure is logged and skipped;
// only a fatally misconfigured descriptor returns an error.
func (c *Crawler) Crawl(ctx context.Context, desc lexdoc.SourceDescriptor) ([]*lexdoc.Document, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	base, err := url.Parse(desc.BaseURL)
	if err != nil {
		return nil, lexdoc.Errorf(lexdoc.EINVALID, "invalid base URL %q: %v", desc.BaseURL, err)
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)

	seeds := desc.SeedURLs
	if desc.UseSitemap && c.Sitemaps != nil {
		discovered, err := c.Sitemaps.DiscoverURLs(ctx, desc.BaseURL)
		if err != nil {
			logger.Warn("sitemap discovery failed", "technology", desc.Technology, "err", err)
		} else {
			for _, u := range discovered {
				if len(seeds) >= desc.MaxPages {
					break
				}
				if parsed, err := url.Parse(u); err == nil && c.inScope(parsed, base, desc) {
					seeds = append(seeds, u)
				}
			}
		}
	}

	// Seeds are pushed in reverse so the first seed pops first.
	for i := len(seeds) - 1; i >= 0; i-- {
		frontier.Push(lexdoc.DiscoveredLink{URL: seeds[i], Depth: 0})
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	var docs []*lexdoc.Document
	for {
		if ctx.Err() != nil {
			break
		}
		if len(docs) >= desc.MaxPages {
			break
		}

		link, ok := frontier.Pop()
		if !ok {
			break
		}

		pageURL, err := url.Parse(link.URL)
		if err != nil {
			continue
		}
		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx, pageURL.Host); err != nil {
				break
			}
		}

		html, err := FetchWithRetryDelays(ctx, link.URL, c.Fetcher.Fetch, delays)
		if err != nil {
			logger.Warn("fetch failed", "url", link.URL, "err", err)
			continue
		}

		if link.Depth < desc.MaxDepth {
			c.pushLinks(frontier, html, link, base, desc, logger)
		}

		doc, err := c.processPage(html, link.URL, pageURL, desc)
		if err != nil {
			if lexdoc.ErrorCode(err) != lexdoc.ENOTFOUND {
				logger.Warn("page processing failed", "url", link.URL, "err", err)
			}
			continue
		}
		if doc == nil {
			// Too little content; boilerplate page.
			continue
		}

		docs = append(docs, doc)
	}

	logger.Info("crawl finished", "technology", desc.Technology, "documents", len(docs))
	return docs, nil
}

// pushLinks extracts in-scope links from a fetched page and queues them one
// level deeper, capped at maxLinksPerPage.
func (c *Crawler) pushLinks(frontier *Frontier, html string, from lexdoc.DiscoveredLink, base *url.URL, desc lexdoc.SourceDescriptor, logger *slog.Logger) {
	links, err := c.Links.ExtractLinks(html, from.URL, desc.Selectors.Links)
	if err != nil {
		logger.Warn("link extraction failed", "url", from.URL, "err", err)
		return
	}

	pushed := 0
	for _, l := range links {
		if pushed >= maxLinksPerPage {
			break
		}
		parsed, err := url.Parse(l.URL)
		if err != nil {
			continue
		}
		if !c.inScope(parsed, base, desc) {
			continue
		}
		l.Depth = from.Depth + 1
		if frontier.Push(l) {
			pushed++
		}
	}
}

// processPage turns one fetched page into a tagged document. A nil document
// with nil error means the page was rejected by the content-length check.
func (c *Crawler) processPage(html, rawURL string, pageURL *url.URL, desc lexdoc.SourceDescriptor) (*lexdoc.Document, error) {
	extracted, err := c.Extractor.Extract(html, desc.Selectors.Content)
	if err != nil && c.Fallback != nil {
		extracted, err = c.Fallback.Extract(html, desc.Selectors.Content)
	}
	if err != nil {
		return nil, err
	}

	if len(extracted.Text) < minContentLength {
		return nil, nil
	}

	markdown, err := c.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return nil, err
	}

	title := extracted.Title
	if title == "" {
		title = titleFromPath(pageURL.Path)
	}

	return &lexdoc.Document{
		Title:               title,
		SourceURL:           rawURL,
		Technology:          desc.Technology,
		Category:            desc.Category,
		ProfessionalContext: lexdoc.ClassifyContext(extracted.Text, lexdoc.WebContextTaxonomy),
		ProficiencyLevel:    lexdoc.EstimateLevelConnectives(extracted.Text),
		ContentType:         lexdoc.ContentWebDoc,
		Format:              lexdoc.FormatStructured,
		Content:             markdown,
		ContentHash:         computeHash(markdown),
		WordCount:           len(strings.Fields(extracted.Text)),
		KeyTerms:            lexdoc.ExtractKeyTerms(extracted.Text, lexdoc.WebKeyTerms, 10),
		FetchedAt:           time.Now().UTC(),
	}, nil
}

// inScope reports whether a URL belongs to this descriptor's crawl: same
// host as the base URL, an allowed path, and not a blocked file type.
func (c *Crawler) inScope(u *url.URL, base *url.URL, desc lexdoc.SourceDescriptor) bool {
	if u.Host != base.Host {
		return false
	}
	if _, blocked := blockedExtensions[strings.ToLower(path.Ext(u.Path))]; blocked {
		return false
	}
	if len(desc.ValidPaths) == 0 {
		return true
	}
	for _, fragment := range desc.ValidPaths {
		if strings.Contains(u.Path, fragment) {
			return true
		}
	}
	return false
}

// titleFromPath derives a readable title from the last URL path segment.
func titleFromPath(p string) string {
	segment := path.Base(strings.TrimSuffix(p, "/"))
	if segment == "." || segment == "/" || segment == "" {
		return "Untitled"
	}
	segment = strings.TrimSuffix(segment, path.Ext(segment))
	segment = strings.ReplaceAll(segment, "-", " ")
	segment = strings.ReplaceAll(segment, "_", " ")
	if segment == "" {
		return "Untitled"
	}
	return segment
}

// computeHash computes a hash of the content using xxhash.
func computeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
