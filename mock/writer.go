package mock

import (
	"context"

	"github.com/fwojciec/lexdoc"
)

var _ lexdoc.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of lexdoc.DocumentWriter.
type DocumentWriter struct {
	WriteDocumentsFn func(ctx context.Context, docs []*lexdoc.Document) error
}

func (w *DocumentWriter) WriteDocuments(ctx context.Context, docs []*lexdoc.Document) error {
	return w.WriteDocumentsFn(ctx, docs)
}

var _ lexdoc.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is a mock implementation of lexdoc.ChunkStore.
type ChunkStore struct {
	WriteChunksFn func(ctx context.Context, chunks []*lexdoc.Chunk) error
	ReadChunksFn  func(ctx context.Context) ([]*lexdoc.Chunk, error)
}

func (s *ChunkStore) WriteChunks(ctx context.Context, chunks []*lexdoc.Chunk) error {
	return s.WriteChunksFn(ctx, chunks)
}

func (s *ChunkStore) ReadChunks(ctx context.Context) ([]*lexdoc.Chunk, error) {
	return s.ReadChunksFn(ctx)
}
