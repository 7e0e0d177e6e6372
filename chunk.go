package lexdoc

import "context"

// Chunk is the retrieval atom: a bounded slice of a document's cleaned text
// plus enriched metadata. Chunk IDs are content-addressed, so reprocessing
// identical input always yields the identical identifier set.
type Chunk struct {
	ID        string        `json:"chunkId"`
	Content   string        `json:"content"`
	Metadata  ChunkMetadata `json:"metadata"`
	Embedding []float64     `json:"embedding"`
}

// ChunkMetadata carries the tags a chunk inherits from its document plus
// per-chunk enrichments.
type ChunkMetadata struct {
	Title               string      `json:"title,omitempty"`
	SourceURL           string      `json:"sourceUrl,omitempty"`
	Technology          string      `json:"technology"`
	Category            string      `json:"category,omitempty"`
	ProfessionalContext string      `json:"professionalContext,omitempty"`
	ProficiencyLevel    string      `json:"proficiencyLevel,omitempty"`
	ContentType         ContentType `json:"contentType,omitempty"`

	ChunkLength int `json:"chunkLength"`
	WordCount   int `json:"wordCount"`

	// TeachingScore rates suitability for language instruction; only the
	// learning pipeline sets it.
	TeachingScore int `json:"teachingScore,omitempty"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.ID == "" {
		return Errorf(EINVALID, "chunk ID required")
	}
	if c.Content == "" {
		return Errorf(EINVALID, "chunk content required")
	}
	return nil
}

// ChunkStore persists and reloads chunk streams.
type ChunkStore interface {
	WriteChunks(ctx context.Context, chunks []*Chunk) error
	ReadChunks(ctx context.Context) ([]*Chunk, error)
}

// ScoredChunk is one ranked retrieval hit.
type ScoredChunk struct {
	Content             string  `json:"content"`
	Technology          string  `json:"technology"`
	ProfessionalContext string  `json:"professionalContext"`
	ProficiencyLevel    string  `json:"proficiencyLevel"`
	RelevanceScore      float64 `json:"relevanceScore"`
	TeachingScore       int     `json:"teachingScore"`
	CombinedScore       float64 `json:"combinedScore"`
}

// QueryResult is the structured answer to one retrieval query. Failures are
// reported through Success/Error, never raised past the index boundary.
type QueryResult struct {
	Question      string        `json:"question"`
	ContextChunks []ScoredChunk `json:"contextChunks"`
	TotalFound    int           `json:"totalFound"`
	Success       bool          `json:"success"`
	Error         string        `json:"error,omitempty"`
}

// QueryOptions configures a retrieval query.
type QueryOptions struct {
	// ContextFilter restricts candidates to chunks whose professional
	// context contains the filter (case-insensitive substring). Empty
	// means no restriction.
	ContextFilter string

	// K is the maximum number of chunks to return.
	K int
}

// Index builds a term-weighted representation of a chunk corpus and answers
// ranked queries against it. The corpus representation is rebuilt wholesale
// on every Build; there is no incremental update guarantee.
type Index interface {
	Build(chunks []*Chunk) error
	Query(question string, opts QueryOptions) *QueryResult
}
