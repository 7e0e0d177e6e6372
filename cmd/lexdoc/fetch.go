package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/lexdoc"
	"github.com/fwojciec/lexdoc/crawl"
	"github.com/fwojciec/lexdoc/fs"
	"github.com/fwojciec/lexdoc/goquery"
	"github.com/fwojciec/lexdoc/htmltomarkdown"
	lexhttp "github.com/fwojciec/lexdoc/http"
	"github.com/fwojciec/lexdoc/pipeline"
	lexslog "github.com/fwojciec/lexdoc/slog"
	"github.com/fwojciec/lexdoc/trafilatura"
)

// FetchCmd crawls the configured documentation sites into document files.
type FetchCmd struct {
	Technology string        `help:"Only crawl sources for this technology."`
	RPS        float64       `help:"Requests per second per domain." default:"1"`
	Timeout    time.Duration `help:"Per-request timeout." default:"10s"`
}

func (c *FetchCmd) Run(deps *Dependencies) error {
	fetcher := lexslog.NewLoggingFetcher(lexhttp.NewFetcher(lexhttp.WithTimeout(c.Timeout)), deps.Logger)
	defer fetcher.Close()

	crawler := &crawl.Crawler{
		Fetcher:   fetcher,
		Extractor: goquery.NewExtractor(),
		Fallback:  trafilatura.NewExtractor(),
		Links:     goquery.NewLinkExtractor(),
		Converter: htmltomarkdown.NewConverter(),
		Limiter:   crawl.NewDomainLimiter(c.RPS),
		Sitemaps:  lexhttp.NewSitemapService(nil),
		Logger:    deps.Logger,
	}

	p := &pipeline.Pipeline{
		Sources: filterSources(lexdoc.DefaultSources(), c.Technology),
		Crawler: crawler,
		Writer:  fs.NewWriter(deps.documentsDir()),
		Logger:  deps.Logger,
	}

	stats, err := p.Run(deps.Ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "fetched %d documents into %s\n", stats.Documents, deps.documentsDir())
	for tech, n := range stats.ByTechnology {
		fmt.Fprintf(deps.Stdout, "  %s: %d\n", tech, n)
	}
	return nil
}

func filterSources(sources []lexdoc.SourceDescriptor, technology string) []lexdoc.SourceDescriptor {
	if technology == "" {
		return sources
	}
	var out []lexdoc.SourceDescriptor
	for _, s := range sources {
		if s.Technology == technology {
			out = append(out, s)
		}
	}
	return out
}
