// Package pipeline orchestrates the full acquisition, chunking, and
// indexing flow: fetch documents from sites and repositories, persist
// them, split them into standard and learning chunks, and build the
// retrieval index.
package pipeline

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/lexdoc"
)

// Stats summarizes one pipeline run.
type Stats struct {
	Documents      int
	Chunks         int
	LearningChunks int

	ByTechnology map[string]int
	ByCategory   map[string]int
	ByContext    map[string]int
	ByLevel      map[string]int

	MeanChunkLength float64
}

// Pipeline wires the fetchers, chunkers, stores, and index together.
// Writer, Chunks, and Index are optional; a nil component skips its
// stage. Individual descriptor failures are logged and skipped; Run
// fails only when nothing could be fetched or a persistence stage
// breaks.
type Pipeline struct {
	Sources []lexdoc.SourceDescriptor
	Repos   []lexdoc.RepoDescriptor

	Crawler     lexdoc.SourceCrawler
	RepoFetcher lexdoc.RepoService

	Chunker  lexdoc.DocumentChunker
	Learning lexdoc.DocumentChunker

	Writer lexdoc.DocumentWriter
	Chunks lexdoc.ChunkStore
	Index  lexdoc.Index

	Logger *slog.Logger
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Run executes the full pipeline and returns run statistics.
func (p *Pipeline) Run(ctx context.Context) (*Stats, error) {
	docs, err := p.fetch(ctx)
	if err != nil {
		return nil, err
	}

	if p.Writer != nil {
		if err := p.Writer.WriteDocuments(ctx, docs); err != nil {
			return nil, err
		}
	}

	chunks, learning, err := p.chunk(docs)
	if err != nil {
		return nil, err
	}

	all := append(append([]*lexdoc.Chunk{}, chunks...), learning...)
	if p.Chunks != nil && len(all) > 0 {
		if err := p.Chunks.WriteChunks(ctx, all); err != nil {
			return nil, err
		}
	}

	if p.Index != nil && len(all) > 0 {
		if err := p.Index.Build(all); err != nil {
			return nil, err
		}
	}

	stats := buildStats(docs, chunks, learning)
	p.logger().Info("pipeline run complete",
		"documents", stats.Documents,
		"chunks", stats.Chunks,
		"learning_chunks", stats.LearningChunks,
	)
	return stats, nil
}

// Ask answers a question against the built index.
func (p *Pipeline) Ask(question, contextFilter string, k int) *lexdoc.QueryResult {
	if p.Index == nil {
		return &lexdoc.QueryResult{Question: question, Error: "no index configured"}
	}
	return p.Index.Query(question, lexdoc.QueryOptions{ContextFilter: contextFilter, K: k})
}

// fetch gathers documents from every configured source and repository.
// A failing descriptor is logged and skipped so one broken site cannot
// sink the run.
func (p *Pipeline) fetch(ctx context.Context) ([]*lexdoc.Document, error) {
	var docs []*lexdoc.Document

	if p.Crawler != nil {
		for _, desc := range p.Sources {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			fetched, err := p.Crawler.Crawl(ctx, desc)
			if err != nil {
				p.logger().Warn("source crawl failed",
					"technology", desc.Technology,
					"url", desc.BaseURL,
					"err", err,
				)
				continue
			}
			p.logger().Info("source crawled",
				"technology", desc.Technology,
				"documents", len(fetched),
			)
			docs = append(docs, fetched...)
		}
	}

	if p.RepoFetcher != nil {
		for _, desc := range p.Repos {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			fetched, err := p.RepoFetcher.FetchRepo(ctx, desc)
			if err != nil {
				p.logger().Warn("repo fetch failed",
					"repo", desc.FullName(),
					"err", err,
				)
				continue
			}
			p.logger().Info("repo fetched",
				"repo", desc.FullName(),
				"documents", len(fetched),
			)
			docs = append(docs, fetched...)
		}
	}

	if len(docs) == 0 {
		return nil, lexdoc.Errorf(lexdoc.EUNAVAILABLE, "no documents fetched from any source")
	}
	return docs, nil
}

// chunk runs both chunkers over the documents. A document failing one
// chunker is logged and skipped for that chunker only.
func (p *Pipeline) chunk(docs []*lexdoc.Document) (chunks, learning []*lexdoc.Chunk, err error) {
	for _, doc := range docs {
		if p.Chunker != nil {
			c, err := p.Chunker.ChunkDocument(doc)
			if err != nil {
				p.logger().Warn("chunking failed", "url", doc.SourceURL, "err", err)
			} else {
				chunks = append(chunks, c...)
			}
		}
		if p.Learning != nil {
			c, err := p.Learning.ChunkDocument(doc)
			if err != nil {
				p.logger().Warn("learning chunking failed", "url", doc.SourceURL, "err", err)
			} else {
				learning = append(learning, c...)
			}
		}
	}
	return chunks, learning, nil
}

func buildStats(docs []*lexdoc.Document, chunks, learning []*lexdoc.Chunk) *Stats {
	stats := &Stats{
		Documents:      len(docs),
		Chunks:         len(chunks),
		LearningChunks: len(learning),
		ByTechnology:   make(map[string]int),
		ByCategory:     make(map[string]int),
		ByContext:      make(map[string]int),
		ByLevel:        make(map[string]int),
	}

	for _, doc := range docs {
		stats.ByTechnology[doc.Technology]++
		stats.ByCategory[doc.Category]++
		stats.ByContext[doc.ProfessionalContext]++
		stats.ByLevel[doc.ProficiencyLevel]++
	}

	total := 0
	for _, c := range chunks {
		total += len(c.Content)
	}
	for _, c := range learning {
		total += len(c.Content)
	}
	if n := len(chunks) + len(learning); n > 0 {
		stats.MeanChunkLength = float64(total) / float64(n)
	}
	return stats
}
