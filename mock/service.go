package mock

import (
	"context"

	"github.com/fwojciec/lexdoc"
)

var _ lexdoc.SourceCrawler = (*SourceCrawler)(nil)

// SourceCrawler is a mock implementation of lexdoc.SourceCrawler.
type SourceCrawler struct {
	CrawlFn func(ctx context.Context, desc lexdoc.SourceDescriptor) ([]*lexdoc.Document, error)
}

func (c *SourceCrawler) Crawl(ctx context.Context, desc lexdoc.SourceDescriptor) ([]*lexdoc.Document, error) {
	return c.CrawlFn(ctx, desc)
}

var _ lexdoc.RepoService = (*RepoService)(nil)

// RepoService is a mock implementation of lexdoc.RepoService.
type RepoService struct {
	FetchRepoFn func(ctx context.Context, desc lexdoc.RepoDescriptor) ([]*lexdoc.Document, error)
}

func (s *RepoService) FetchRepo(ctx context.Context, desc lexdoc.RepoDescriptor) ([]*lexdoc.Document, error) {
	return s.FetchRepoFn(ctx, desc)
}

var _ lexdoc.DocumentChunker = (*DocumentChunker)(nil)

// DocumentChunker is a mock implementation of lexdoc.DocumentChunker.
type DocumentChunker struct {
	ChunkDocumentFn func(doc *lexdoc.Document) ([]*lexdoc.Chunk, error)
}

func (c *DocumentChunker) ChunkDocument(doc *lexdoc.Document) ([]*lexdoc.Chunk, error) {
	return c.ChunkDocumentFn(doc)
}
