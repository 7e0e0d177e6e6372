package chunker

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/fwojciec/lexdoc"
)

// Learning chunk defaults. Learning chunks are smaller than standard
// chunks and pass a teaching-quality gate before they are kept.
const (
	DefaultLearningSize     = 600
	DefaultMinTeachingScore = 3

	// minLearningChunk rejects fragments too short to teach anything.
	minLearningChunk = 50

	minValuableLength = 30
	minValuableWords  = 5
)

var _ lexdoc.DocumentChunker = (*LearningChunker)(nil)

// LearningChunker produces the high-signal chunk set for language
// learners. It cleans aggressively, keeps only explanatory sentences,
// and drops every chunk whose teaching score falls below MinScore.
type LearningChunker struct {
	// Size is the chunk size target in characters. Zero means
	// DefaultLearningSize.
	Size int

	// MinScore is the minimum teaching-quality score a chunk must reach.
	// Zero means DefaultMinTeachingScore.
	MinScore int
}

func (c *LearningChunker) size() int {
	if c.Size <= 0 {
		return DefaultLearningSize
	}
	return c.Size
}

func (c *LearningChunker) minScore() int {
	if c.MinScore <= 0 {
		return DefaultMinTeachingScore
	}
	return c.MinScore
}

// ChunkDocument distills a document into teaching-quality chunks. Most
// documents yield few or none; that is the point of the filter.
func (c *LearningChunker) ChunkDocument(doc *lexdoc.Document) ([]*lexdoc.Chunk, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	explanatory := ExtractExplanatory(AdvancedCleanText(doc.Content))
	if explanatory == "" {
		return nil, nil
	}

	var chunks []*lexdoc.Chunk
	current := ""
	flush := func() {
		if len(current) > minLearningChunk {
			chunks = appendChunk(chunks, c.newLearningChunk(doc, current))
		}
		current = ""
	}

	for _, sentence := range splitSentences(explanatory) {
		if current != "" && len(current)+len(sentence)+1 > c.size() {
			flush()
		}
		if current == "" {
			current = sentence
		} else {
			current += " " + sentence
		}
	}
	flush()

	return chunks, nil
}

// newLearningChunk applies the valuable-content and teaching-score gates
// before building a chunk. The chunk's proficiency level is estimated
// from its own text rather than inherited from the document.
func (c *LearningChunker) newLearningChunk(doc *lexdoc.Document, content string) *lexdoc.Chunk {
	cleaned := CleanText(content)
	if !valuableForLearning(cleaned) {
		return nil
	}

	score := ScoreTeachingQuality(cleaned)
	if score < c.minScore() {
		return nil
	}

	return &lexdoc.Chunk{
		ID:      ChunkID(cleaned, doc.SourceURL),
		Content: cleaned,
		Metadata: lexdoc.ChunkMetadata{
			Title:               doc.Title,
			SourceURL:           doc.SourceURL,
			Technology:          doc.Technology,
			Category:            doc.Category,
			ProfessionalContext: doc.ProfessionalContext,
			ProficiencyLevel:    lexdoc.EstimateChunkLevel(cleaned),
			ContentType:         doc.ContentType,
			ChunkLength:         len(cleaned),
			WordCount:           len(strings.Fields(cleaned)),
			TeachingScore:       score,
		},
	}
}

var valuableWord = regexp.MustCompile(`\b[a-zA-Z]{4,}\b`)

// valuableForLearning keeps only text shaped like complete prose: long
// enough, word-dense, opening with a capital and closing with terminal
// punctuation.
func valuableForLearning(text string) bool {
	if len(text) < minValuableLength {
		return false
	}
	if len(valuableWord.FindAllString(text, -1)) < minValuableWords {
		return false
	}

	runes := []rune(text)
	if !unicode.IsUpper(runes[0]) {
		return false
	}

	last := runes[len(runes)-1]
	return last == '.' || last == '!' || last == '?'
}
