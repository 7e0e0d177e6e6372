// Package trafilatura provides a selector-free fallback content extractor
// for pages whose descriptor selectors match nothing.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/lexdoc"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements lexdoc.Extractor at compile time.
var _ lexdoc.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML. It
// ignores the content selector; trafilatura locates the content region on
// its own.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
// The contentSelector argument is ignored.
func (e *Extractor) Extract(rawHTML string, contentSelector string) (*lexdoc.ExtractResult, error) {
	if rawHTML == "" {
		return nil, lexdoc.Errorf(lexdoc.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, lexdoc.Errorf(lexdoc.ENOTFOUND, "content extraction failed: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &lexdoc.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
		Text:        result.ContentText,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
