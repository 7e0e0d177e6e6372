package fs

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/lexdoc"
)

// scanBufferSize accommodates chunk lines larger than bufio's default.
const scanBufferSize = 1 << 20

// Ensure ChunkStore implements lexdoc.ChunkStore at compile time.
var _ lexdoc.ChunkStore = (*ChunkStore)(nil)

// ChunkStore persists chunks as one JSON object per line in a single
// file.
type ChunkStore struct {
	path string
}

// NewChunkStore creates a ChunkStore backed by the given file path.
func NewChunkStore(path string) *ChunkStore {
	return &ChunkStore{path: path}
}

// WriteChunks replaces the file with the given chunk stream.
func (s *ChunkStore) WriteChunks(ctx context.Context, chunks []*lexdoc.Chunk) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := chunk.Validate(); err != nil {
			return err
		}
		if err := enc.Encode(chunk); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

// ReadChunks loads every chunk from the file.
func (s *ChunkStore) ReadChunks(ctx context.Context) ([]*lexdoc.Chunk, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, lexdoc.Errorf(lexdoc.ENOTFOUND, "chunk file %s does not exist", s.path)
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), scanBufferSize)

	var chunks []*lexdoc.Chunk
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var chunk lexdoc.Chunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			return nil, lexdoc.Errorf(lexdoc.EINVALID, "malformed chunk line: %v", err)
		}
		chunks = append(chunks, &chunk)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return chunks, nil
}
