// Package index answers retrieval queries over a chunk corpus with
// TF-IDF weighted cosine similarity, blended with teaching scores so
// instructional chunks outrank equally relevant reference noise.
package index

import (
	"sort"
	"strings"
	"sync"

	"github.com/fwojciec/lexdoc"
)

const (
	// DefaultK is the number of chunks returned when the query does not
	// say otherwise.
	DefaultK = 5

	// candidateFloor drops chunks with near-zero similarity from the
	// candidate set.
	candidateFloor = 0.05

	// blendFloor is the similarity above which the teaching score joins
	// the ranking.
	blendFloor = 0.1

	// teachingWeight scales the teaching score into the combined score.
	teachingWeight = 0.1
)

var _ lexdoc.Index = (*Index)(nil)

// Index is an in-memory lexical index. Build replaces the corpus
// wholesale; Query never returns an error, reporting failures inside the
// result instead.
type Index struct {
	// MaxFeatures and NGramMax configure the vectorizer; see Vectorizer.
	MaxFeatures int
	NGramMax    int

	mu         sync.RWMutex
	vectorizer *Vectorizer
	chunks     []*lexdoc.Chunk
	vectors    []map[int]float64
}

// Build fits the vectorizer on the chunk corpus and embeds every chunk.
// A previously built corpus is discarded.
func (ix *Index) Build(chunks []*lexdoc.Chunk) error {
	if len(chunks) == 0 {
		return lexdoc.Errorf(lexdoc.EINVALID, "no chunks to index")
	}

	v := &Vectorizer{MaxFeatures: ix.MaxFeatures, NGramMax: ix.NGramMax}
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}
	if err := v.Fit(texts); err != nil {
		return err
	}

	vectors := make([]map[int]float64, len(chunks))
	for i, text := range texts {
		vectors[i] = v.Transform(text)
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.vectorizer = v
	ix.chunks = chunks
	ix.vectors = vectors
	return nil
}

// Query ranks chunks against the question. Candidates above the
// similarity floor are ranked by similarity blended with their teaching
// score; when nothing clears the floor the raw top matches are returned
// so the caller always gets something to work with.
func (ix *Index) Query(question string, opts lexdoc.QueryOptions) *lexdoc.QueryResult {
	result := &lexdoc.QueryResult{Question: question}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if ix.vectorizer == nil {
		result.Error = "index not built"
		return result
	}

	k := opts.K
	if k <= 0 {
		k = DefaultK
	}

	pool := ix.filter(opts.ContextFilter)
	if len(pool) == 0 {
		result.Success = true
		return result
	}

	queryVec := ix.vectorizer.Transform(question)

	type scored struct {
		idx      int
		sim      float64
		combined float64
	}
	var candidates []scored
	for _, i := range pool {
		sim := cosine(queryVec, ix.vectors[i])
		if sim > candidateFloor {
			candidates = append(candidates, scored{idx: i, sim: sim})
		}
	}

	matched := len(candidates)
	if matched == 0 {
		for _, i := range pool {
			candidates = append(candidates, scored{idx: i, sim: cosine(queryVec, ix.vectors[i])})
		}
		sort.SliceStable(candidates, func(a, b int) bool {
			return candidates[a].sim > candidates[b].sim
		})
		if len(candidates) > k {
			candidates = candidates[:k]
		}
	}

	for i := range candidates {
		c := &candidates[i]
		c.combined = c.sim
		if c.sim > blendFloor {
			c.combined += float64(ix.chunks[c.idx].Metadata.TeachingScore) * teachingWeight
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].combined > candidates[b].combined
	})

	result.TotalFound = matched
	if len(candidates) > k {
		candidates = candidates[:k]
	}

	for _, c := range candidates {
		chunk := ix.chunks[c.idx]
		result.ContextChunks = append(result.ContextChunks, lexdoc.ScoredChunk{
			Content:             chunk.Content,
			Technology:          chunk.Metadata.Technology,
			ProfessionalContext: chunk.Metadata.ProfessionalContext,
			ProficiencyLevel:    chunk.Metadata.ProficiencyLevel,
			RelevanceScore:      c.sim,
			TeachingScore:       chunk.Metadata.TeachingScore,
			CombinedScore:       c.combined,
		})
	}
	result.Success = true
	return result
}

// filter returns the indices of chunks whose professional context
// contains the filter, or every index when the filter is empty.
func (ix *Index) filter(contextFilter string) []int {
	pool := make([]int, 0, len(ix.chunks))
	needle := strings.ToLower(contextFilter)
	for i, chunk := range ix.chunks {
		if needle != "" && !strings.Contains(strings.ToLower(chunk.Metadata.ProfessionalContext), needle) {
			continue
		}
		pool = append(pool, i)
	}
	return pool
}
