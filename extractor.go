package lexdoc

// ExtractResult holds the content region extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title (first-level heading or page metadata).
	Title string

	// ContentHTML is the content region as clean HTML with script, style,
	// and navigation-like subtrees removed.
	ContentHTML string

	// Text is the cleaned text of the content region.
	Text string
}

// Extractor extracts the main content region from an HTML page.
type Extractor interface {
	// Extract returns the content region matched by the CSS selector.
	// Implementations that do not use selectors may ignore it.
	// Returns ENOTFOUND when no content region matches.
	Extract(html string, contentSelector string) (*ExtractResult, error)
}

// LinkExtractor finds candidate links in an HTML page.
type LinkExtractor interface {
	// ExtractLinks returns links matched by the CSS selector, resolved
	// against baseURL. Links to other hosts are filtered out.
	ExtractLinks(html string, baseURL string, linkSelector string) ([]DiscoveredLink, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms clean content HTML into Markdown.
	Convert(html string) (string, error)
}
