package sqlite

import (
	"context"

	"github.com/fwojciec/lexdoc"
)

// Compile-time interface verification.
var _ lexdoc.ChunkStore = (*ChunkStore)(nil)

// ChunkStore implements lexdoc.ChunkStore using SQLite. Chunk IDs are
// content-addressed, so writes upsert by ID and reprocessing the same
// material leaves the table unchanged.
type ChunkStore struct {
	db *DB
}

// NewChunkStore creates a new ChunkStore.
func NewChunkStore(db *DB) *ChunkStore {
	return &ChunkStore{db: db}
}

// WriteChunks upserts every chunk by its content-addressed ID.
func (s *ChunkStore) WriteChunks(ctx context.Context, chunks []*lexdoc.Chunk) error {
	for _, chunk := range chunks {
		if err := chunk.Validate(); err != nil {
			return err
		}

		m := chunk.Metadata
		_, err := s.db.ExecContext(ctx, `
			INSERT OR REPLACE INTO chunks (chunk_id, content, title, source_url, technology,
				category, professional_context, proficiency_level, content_type,
				chunk_length, word_count, teaching_score)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, chunk.ID, chunk.Content, m.Title, m.SourceURL, m.Technology, m.Category,
			m.ProfessionalContext, m.ProficiencyLevel, string(m.ContentType),
			m.ChunkLength, m.WordCount, m.TeachingScore)
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadChunks loads every chunk, ordered by ID for stable output.
func (s *ChunkStore) ReadChunks(ctx context.Context) ([]*lexdoc.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT chunk_id, content, title, source_url, technology, category,
			professional_context, proficiency_level, content_type,
			chunk_length, word_count, teaching_score
		FROM chunks
		ORDER BY chunk_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []*lexdoc.Chunk
	for rows.Next() {
		var chunk lexdoc.Chunk
		var contentType string
		if err := rows.Scan(&chunk.ID, &chunk.Content, &chunk.Metadata.Title,
			&chunk.Metadata.SourceURL, &chunk.Metadata.Technology, &chunk.Metadata.Category,
			&chunk.Metadata.ProfessionalContext, &chunk.Metadata.ProficiencyLevel,
			&contentType, &chunk.Metadata.ChunkLength, &chunk.Metadata.WordCount,
			&chunk.Metadata.TeachingScore); err != nil {
			return nil, err
		}
		chunk.Metadata.ContentType = lexdoc.ContentType(contentType)
		chunks = append(chunks, &chunk)
	}

	return chunks, rows.Err()
}
