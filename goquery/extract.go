// Package goquery implements HTML content and link extraction using CSS
// selectors from source descriptors.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/lexdoc"
)

// Compile-time interface verification.
var (
	_ lexdoc.Extractor     = (*Extractor)(nil)
	_ lexdoc.LinkExtractor = (*LinkExtractor)(nil)
)

// noiseSelector matches subtrees that carry no documentation content.
const noiseSelector = "script, style, nav, header, footer, aside"

// Extractor extracts the main content region of a page using the
// descriptor's content selector.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the first content region matching contentSelector with
// script, style, and navigation subtrees removed. The title comes from the
// page's first h1, inside or outside the content region.
// Returns ENOTFOUND when no region matches.
func (e *Extractor) Extract(html string, contentSelector string) (*lexdoc.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, lexdoc.Errorf(lexdoc.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("h1").First().Text())

	region := doc.Find(contentSelector).First()
	if region.Length() == 0 {
		return nil, lexdoc.Errorf(lexdoc.ENOTFOUND, "no content region matches %q", contentSelector)
	}

	region.Find(noiseSelector).Remove()

	contentHTML, err := goquery.OuterHtml(region)
	if err != nil {
		return nil, lexdoc.Errorf(lexdoc.EINTERNAL, "failed to render content region: %v", err)
	}

	return &lexdoc.ExtractResult{
		Title:       title,
		ContentHTML: contentHTML,
		Text:        normalizeSpace(region.Text()),
	}, nil
}

// LinkExtractor finds candidate links using the descriptor's link selector.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks returns links matching linkSelector, resolved against
// baseURL. Links are deduplicated by URL in document order. Links to other
// hosts and non-HTTP schemes are filtered out.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string, linkSelector string) ([]lexdoc.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, lexdoc.Errorf(lexdoc.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, lexdoc.Errorf(lexdoc.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []lexdoc.DiscoveredLink

	doc.Find(linkSelector).Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		if !isSameHost(base, resolved) {
			return
		}

		if seen[resolved] {
			return
		}
		seen[resolved] = true

		links = append(links, lexdoc.DiscoveredLink{
			URL:  resolved,
			Text: strings.TrimSpace(sel.Text()),
		})
	})

	return links, nil
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed or if the resolved URL
// is self-referential (same as base URL after stripping fragment).
// Fragments are stripped from the resolved URL for deduplication purposes.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isSameHost checks if the resolved URL has the same host as the base URL.
// This uses exact host matching - subdomains are considered different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

// normalizeSpace collapses whitespace runs to single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
