package mock

import "github.com/fwojciec/lexdoc"

var _ lexdoc.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of lexdoc.Extractor.
type Extractor struct {
	ExtractFn func(html string, contentSelector string) (*lexdoc.ExtractResult, error)
}

func (e *Extractor) Extract(html string, contentSelector string) (*lexdoc.ExtractResult, error) {
	return e.ExtractFn(html, contentSelector)
}

var _ lexdoc.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of lexdoc.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string, linkSelector string) ([]lexdoc.DiscoveredLink, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string, linkSelector string) ([]lexdoc.DiscoveredLink, error) {
	return e.ExtractLinksFn(html, baseURL, linkSelector)
}
