package crawl_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/lexdoc"
	"github.com/fwojciec/lexdoc/crawl"
	"github.com/fwojciec/lexdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// longText is comfortably above the minimum content threshold.
var longText = strings.Repeat("This page explains how the system works in detail. ", 10)

func testDescriptor() lexdoc.SourceDescriptor {
	return lexdoc.SourceDescriptor{
		Technology: "go",
		Category:   "programming_languages",
		BaseURL:    "https://example.com/docs/",
		SeedURLs:   []string{"https://example.com/docs/index.html"},
		Selectors:  lexdoc.Selectors{Content: "main", Links: "nav a"},
		MaxDepth:   2,
		MaxPages:   50,
	}
}

// testCrawler wires a Crawler from mocks: the fetcher records visited URLs,
// the extractor echoes page text, links come from the links map.
func testCrawler(fetched *[]string, links map[string][]string) *crawl.Crawler {
	return &crawl.Crawler{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				*fetched = append(*fetched, url)
				return "<main>" + longText + "</main>", nil
			},
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(html, selector string) (*lexdoc.ExtractResult, error) {
				return &lexdoc.ExtractResult{Title: "Page", ContentHTML: html, Text: longText}, nil
			},
		},
		Links: &mock.LinkExtractor{
			ExtractLinksFn: func(html, baseURL, selector string) ([]lexdoc.DiscoveredLink, error) {
				var out []lexdoc.DiscoveredLink
				for _, u := range links[baseURL] {
					out = append(out, lexdoc.DiscoveredLink{URL: u})
				}
				return out, nil
			},
		},
		Converter: &mock.Converter{
			ConvertFn: func(html string) (string, error) { return html, nil },
		},
		Limiter:     &mock.DomainLimiter{},
		RetryDelays: []time.Duration{},
	}
}

func TestCrawler_Crawl_follows_links_to_max_depth(t *testing.T) {
	t.Parallel()

	var fetched []string
	c := testCrawler(&fetched, map[string][]string{
		"https://example.com/docs/index.html": {"https://example.com/docs/child.html"},
		"https://example.com/docs/child.html": {"https://example.com/docs/grandchild.html"},
	})

	desc := testDescriptor()
	desc.MaxDepth = 1

	docs, err := c.Crawl(context.Background(), desc)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://example.com/docs/index.html",
		"https://example.com/docs/child.html",
	}, fetched, "grandchild is beyond maxDepth and must not be fetched")
	assert.Len(t, docs, 2)
}

func TestCrawler_Crawl_stops_at_page_budget(t *testing.T) {
	t.Parallel()

	var fetched []string
	c := testCrawler(&fetched, map[string][]string{
		"https://example.com/docs/index.html": {
			"https://example.com/docs/a.html",
			"https://example.com/docs/b.html",
		},
	})

	desc := testDescriptor()
	desc.MaxPages = 1

	docs, err := c.Crawl(context.Background(), desc)
	require.NoError(t, err)

	assert.Len(t, docs, 1)
	assert.Len(t, fetched, 1, "budget exhausted after the first document")
}

func TestCrawler_Crawl_skips_failed_fetches_and_continues(t *testing.T) {
	t.Parallel()

	c := testCrawler(new([]string), nil)
	c.Fetcher = &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			if strings.Contains(url, "broken") {
				return "", lexdoc.Errorf(lexdoc.EUNAVAILABLE, "server error")
			}
			return "<main>" + longText + "</main>", nil
		},
	}

	desc := testDescriptor()
	desc.SeedURLs = []string{
		"https://example.com/docs/broken.html",
		"https://example.com/docs/ok.html",
	}

	docs, err := c.Crawl(context.Background(), desc)
	require.NoError(t, err)

	require.Len(t, docs, 1)
	assert.Equal(t, "https://example.com/docs/ok.html", docs[0].SourceURL)
}

func TestCrawler_Crawl_rejects_pages_with_too_little_content(t *testing.T) {
	t.Parallel()

	c := testCrawler(new([]string), nil)
	c.Extractor = &mock.Extractor{
		ExtractFn: func(html, selector string) (*lexdoc.ExtractResult, error) {
			return &lexdoc.ExtractResult{Title: "Stub", ContentHTML: html, Text: "too short"}, nil
		},
	}

	docs, err := c.Crawl(context.Background(), testDescriptor())
	require.NoError(t, err)

	assert.Empty(t, docs)
}

func TestCrawler_Crawl_derives_title_from_path_when_heading_missing(t *testing.T) {
	t.Parallel()

	c := testCrawler(new([]string), nil)
	c.Extractor = &mock.Extractor{
		ExtractFn: func(html, selector string) (*lexdoc.ExtractResult, error) {
			return &lexdoc.ExtractResult{ContentHTML: html, Text: longText}, nil
		},
	}

	desc := testDescriptor()
	desc.SeedURLs = []string{"https://example.com/docs/getting-started.html"}

	docs, err := c.Crawl(context.Background(), desc)
	require.NoError(t, err)

	require.Len(t, docs, 1)
	assert.Equal(t, "getting started", docs[0].Title)
}

func TestCrawler_Crawl_caps_fanout_per_page(t *testing.T) {
	t.Parallel()

	var children []string
	for i := 0; i < 25; i++ {
		children = append(children, "https://example.com/docs/child"+string(rune('a'+i))+".html")
	}

	var fetched []string
	c := testCrawler(&fetched, map[string][]string{
		"https://example.com/docs/index.html": children,
	})

	docs, err := c.Crawl(context.Background(), testDescriptor())
	require.NoError(t, err)

	// Seed plus at most 10 children.
	assert.Len(t, fetched, 11)
	assert.Len(t, docs, 11)
}

func TestCrawler_Crawl_filters_out_of_scope_links(t *testing.T) {
	t.Parallel()

	var fetched []string
	c := testCrawler(&fetched, map[string][]string{
		"https://example.com/docs/index.html": {
			"https://other.example.org/docs/page.html", // wrong host
			"https://example.com/docs/manual.pdf",      // blocked extension
			"https://example.com/blog/post.html",       // outside valid paths
			"https://example.com/docs/ok.html",
		},
	})

	desc := testDescriptor()
	desc.ValidPaths = []string{"/docs/"}

	_, err := c.Crawl(context.Background(), desc)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://example.com/docs/index.html",
		"https://example.com/docs/ok.html",
	}, fetched)
}

func TestCrawler_Crawl_expands_seeds_from_sitemap(t *testing.T) {
	t.Parallel()

	var fetched []string
	c := testCrawler(&fetched, nil)
	c.Sitemaps = &mock.SitemapService{
		DiscoverURLsFn: func(ctx context.Context, baseURL string) ([]string, error) {
			return []string{"https://example.com/docs/from-sitemap.html"}, nil
		},
	}

	desc := testDescriptor()
	desc.UseSitemap = true

	_, err := c.Crawl(context.Background(), desc)
	require.NoError(t, err)

	assert.Contains(t, fetched, "https://example.com/docs/from-sitemap.html")
}

func TestCrawler_Crawl_tags_documents(t *testing.T) {
	t.Parallel()

	c := testCrawler(new([]string), nil)

	docs, err := c.Crawl(context.Background(), testDescriptor())
	require.NoError(t, err)

	require.Len(t, docs, 1)
	doc := docs[0]
	assert.Equal(t, "go", doc.Technology)
	assert.Equal(t, lexdoc.ContentWebDoc, doc.ContentType)
	assert.Equal(t, lexdoc.FormatStructured, doc.Format)
	assert.NotEmpty(t, doc.ProfessionalContext)
	assert.NotEmpty(t, doc.ProficiencyLevel)
	assert.NotEmpty(t, doc.ContentHash)
	assert.Positive(t, doc.WordCount)
}

func TestCrawler_Crawl_without_limiter(t *testing.T) {
	t.Parallel()

	var fetched []string
	c := testCrawler(&fetched, nil)
	c.Limiter = nil

	docs, err := c.Crawl(context.Background(), testDescriptor())
	require.NoError(t, err)

	require.Len(t, docs, 1)
	assert.Len(t, fetched, 1)
}

func TestCrawler_Crawl_rejects_invalid_descriptor(t *testing.T) {
	t.Parallel()

	c := testCrawler(new([]string), nil)

	_, err := c.Crawl(context.Background(), lexdoc.SourceDescriptor{})
	assert.Equal(t, lexdoc.EINVALID, lexdoc.ErrorCode(err))
}
