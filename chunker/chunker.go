// Package chunker splits documents into retrieval-sized chunks, cutting at
// structural boundaries (headings, paragraphs, declarations, sentences)
// before resorting to mid-text splits.
package chunker

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/lexdoc"
)

// Default chunking budgets, in characters of cleaned text.
const (
	DefaultSize    = 1000
	DefaultOverlap = 200

	// minCodeFragment rejects trivial declaration fragments.
	minCodeFragment = 50
)

// Compile-time interface verification.
var _ lexdoc.DocumentChunker = (*Chunker)(nil)

// Boundary patterns. Go's regexp has no lookahead, so sections are cut in
// front of each match position instead.
var (
	structuredHeading = regexp.MustCompile(`\n#{2,3}\s`)
	markdownHeading   = regexp.MustCompile(`\n#+\s`)

	// declarationPatterns cover function and class boundaries across the
	// common languages repo files arrive in. Tried in order; the first
	// pattern present in the text wins.
	declarationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\n(?:def|class)\s`),
		regexp.MustCompile(`\n(?:func|function|class)\s`),
		regexp.MustCompile(`\n(?:public|private|protected)\s`),
	}
)

// Question/answer transcripts split at the answer marker.
const (
	questionMarker = "QUESTION:"
	answerMarker   = "ANSWER:"
)

// Chunker splits one document's content into chunks bounded by Size.
// Every emitted chunk's cleaned length is at most Size unless a single
// atomic unit (one sentence, one declaration) already exceeds it, in which
// case the unit is emitted whole rather than truncated.
type Chunker struct {
	// Size is the chunk size target in characters. Zero means DefaultSize.
	Size int

	// Overlap carries the tail sentences of one chunk into the next, up
	// to this many characters. Zero means DefaultOverlap; negative
	// disables overlap.
	Overlap int
}

func (c *Chunker) size() int {
	if c.Size <= 0 {
		return DefaultSize
	}
	return c.Size
}

func (c *Chunker) overlap() int {
	if c.Overlap == 0 {
		return DefaultOverlap
	}
	if c.Overlap < 0 {
		return 0
	}
	return c.Overlap
}

// ChunkDocument splits a document by its format: structured prose at
// heading-then-sentence boundaries, markdown at heading-then-paragraph
// boundaries, code at declaration boundaries, Q/A transcripts at answer
// markers, everything else at sentence boundaries.
func (c *Chunker) ChunkDocument(doc *lexdoc.Document) ([]*lexdoc.Chunk, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	var chunks []*lexdoc.Chunk
	switch doc.Format {
	case lexdoc.FormatStructured:
		chunks = c.chunkStructured(doc, doc.Content)
	case lexdoc.FormatMarkdown:
		chunks = c.chunkMarkdown(doc, doc.Content)
	case lexdoc.FormatCode:
		chunks = c.chunkCode(doc, doc.Content)
	case lexdoc.FormatQA:
		chunks = c.chunkQA(doc, doc.Content)
	default:
		chunks = c.chunkSentences(doc, doc.Content)
	}

	return chunks, nil
}

// chunkStructured accumulates heading-delimited sections greedily into one
// chunk while the running length stays within the size target. A single
// section exceeding the target is split by sentences instead.
func (c *Chunker) chunkStructured(doc *lexdoc.Document, content string) []*lexdoc.Chunk {
	var chunks []*lexdoc.Chunk
	current := ""

	for _, section := range splitBefore(content, structuredHeading) {
		if len(current)+len(section) <= c.size() {
			current += section
			continue
		}

		if current != "" {
			chunks = appendChunk(chunks, c.newChunk(doc, current))
			current = ""
		}

		if len(section) > c.size() {
			chunks = append(chunks, c.chunkSentences(doc, section)...)
		} else {
			current = section
		}
	}

	if current != "" {
		chunks = appendChunk(chunks, c.newChunk(doc, current))
	}
	return chunks
}

// chunkMarkdown emits each heading-delimited section as one chunk;
// oversized sections fall back to paragraph accumulation.
func (c *Chunker) chunkMarkdown(doc *lexdoc.Document, content string) []*lexdoc.Chunk {
	var chunks []*lexdoc.Chunk

	for _, section := range splitBefore(content, markdownHeading) {
		if len(section) <= c.size() {
			chunks = appendChunk(chunks, c.newChunk(doc, section))
			continue
		}

		current := ""
		for _, para := range strings.Split(section, "\n\n") {
			if len(current)+len(para) <= c.size() {
				current += para + "\n\n"
				continue
			}
			if current != "" {
				chunks = appendChunk(chunks, c.newChunk(doc, current))
			}
			current = para + "\n\n"
		}
		if current != "" {
			chunks = appendChunk(chunks, c.newChunk(doc, current))
		}
	}

	return chunks
}

// chunkCode splits at declaration boundaries, keeping fragments whose
// length lies strictly between the minimum and the size target. Text with
// no recognizable declarations falls back to sentence chunking.
func (c *Chunker) chunkCode(doc *lexdoc.Document, content string) []*lexdoc.Chunk {
	for _, re := range declarationPatterns {
		if !re.MatchString(content) {
			continue
		}

		var chunks []*lexdoc.Chunk
		for _, section := range splitBefore(content, re) {
			if len(section) > minCodeFragment && len(section) <= c.size() {
				chunks = appendChunk(chunks, c.newChunk(doc, section))
			}
		}
		return chunks
	}

	return c.chunkSentences(doc, content)
}

// chunkQA splits a transcript at answer markers when both markers are
// present, otherwise falls back to sentence chunking.
func (c *Chunker) chunkQA(doc *lexdoc.Document, content string) []*lexdoc.Chunk {
	if !strings.Contains(content, questionMarker) || !strings.Contains(content, answerMarker) {
		return c.chunkSentences(doc, content)
	}

	var chunks []*lexdoc.Chunk
	for _, part := range strings.Split(content, answerMarker) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		chunks = appendChunk(chunks, c.newChunk(doc, part))
	}
	return chunks
}

// chunkSentences accumulates sentences greedily. When a chunk flushes, its
// tail sentences (up to the overlap budget) seed the next chunk so context
// carries across the boundary.
func (c *Chunker) chunkSentences(doc *lexdoc.Document, text string) []*lexdoc.Chunk {
	var chunks []*lexdoc.Chunk
	current := ""

	for _, sentence := range splitSentences(text) {
		if current == "" {
			current = sentence
			continue
		}
		if len(current)+len(sentence)+1 <= c.size() {
			current += " " + sentence
			continue
		}

		chunks = appendChunk(chunks, c.newChunk(doc, current))

		tail := c.overlapTail(current)
		if tail != "" && len(tail)+len(sentence)+1 <= c.size() {
			current = tail + " " + sentence
		} else {
			current = sentence
		}
	}

	if current != "" {
		chunks = appendChunk(chunks, c.newChunk(doc, current))
	}
	return chunks
}

// overlapTail returns the trailing sentences of a chunk whose combined
// length fits the overlap budget.
func (c *Chunker) overlapTail(chunk string) string {
	budget := c.overlap()
	if budget <= 0 {
		return ""
	}

	sentences := splitSentences(chunk)
	tail := ""
	for i := len(sentences) - 1; i >= 0; i-- {
		candidate := sentences[i]
		if tail != "" {
			candidate += " " + tail
		}
		if len(candidate) > budget {
			break
		}
		tail = candidate
	}
	return tail
}

// newChunk cleans the content and wraps it with metadata inherited from
// the document. Returns nil when cleaning leaves nothing behind.
func (c *Chunker) newChunk(doc *lexdoc.Document, content string) *lexdoc.Chunk {
	cleaned := CleanText(content)
	if cleaned == "" {
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
			ProficiencyLevel:    doc.ProficiencyLevel,
			ContentType:         doc.ContentType,
			ChunkLength:         len(cleaned),
			WordCount:           len(strings.Fields(cleaned)),
		},
	}
}

// ChunkID derives a deterministic identifier from cleaned content and the
// origin URL. Identical input always yields the identical identifier, so
// re-ingesting the same material deduplicates instead of duplicating.
func ChunkID(cleaned, originURL string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(cleaned+originURL))
}

func appendChunk(chunks []*lexdoc.Chunk, chunk *lexdoc.Chunk) []*lexdoc.Chunk {
	if chunk == nil {
		return chunks
	}
	return append(chunks, chunk)
}

// splitBefore cuts text in front of every match of re, keeping the
// delimiter with the section it opens.
func splitBefore(text string, re *regexp.Regexp) []string {
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}

	var parts []string
	prev := 0
	for _, loc := range locs {
		if loc[0] > prev {
			parts = append(parts, text[prev:loc[0]])
		}
		prev = loc[0]
	}
	parts = append(parts, text[prev:])
	return parts
}

var sentenceEnd = regexp.MustCompile(`([.!?])\s+`)

// splitSentences splits text after terminal punctuation followed by
// whitespace.
func splitSentences(text string) []string {
	var out []string
	prev := 0
	for _, loc := range sentenceEnd.FindAllStringSubmatchIndex(text, -1) {
		sentence := strings.TrimSpace(text[prev:loc[3]])
		if sentence != "" {
			out = append(out, sentence)
		}
		prev = loc[1]
	}
	if rest := strings.TrimSpace(text[prev:]); rest != "" {
		out = append(out, rest)
	}
	return out
}
