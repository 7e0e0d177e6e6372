package lexdoc

import "context"

// SourceCrawler walks a documentation site starting from a descriptor's
// seed URLs and returns the documents it harvested. Individual page
// failures are skipped; an error means the whole traversal could not run.
type SourceCrawler interface {
	Crawl(ctx context.Context, desc SourceDescriptor) ([]*Document, error)
}

// RepoService fetches documentation files from a GitHub repository per a
// descriptor's path list. Missing or forbidden paths are skipped.
type RepoService interface {
	FetchRepo(ctx context.Context, desc RepoDescriptor) ([]*Document, error)
}

// DocumentChunker splits a document into retrieval-sized chunks. A nil
// or empty result with a nil error means the document yielded nothing
// worth indexing.
type DocumentChunker interface {
	ChunkDocument(doc *Document) ([]*Chunk, error)
}
