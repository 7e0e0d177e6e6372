package index

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/fwojciec/lexdoc"
)

// DefaultMaxFeatures bounds the vocabulary size.
const DefaultMaxFeatures = 5000

// tokenPattern accepts alphanumeric tokens of two or more characters.
var tokenPattern = regexp.MustCompile(`[a-z0-9][a-z0-9]+`)

// Vectorizer turns text into sparse TF-IDF vectors over a vocabulary
// learned from a corpus. Stopwords are removed before n-grams are formed,
// and the vocabulary keeps the most frequent terms up to MaxFeatures.
type Vectorizer struct {
	// MaxFeatures caps the vocabulary. Zero means DefaultMaxFeatures.
	MaxFeatures int

	// NGramMax is the largest n-gram length. Values below two mean
	// unigrams only.
	NGramMax int

	vocab map[string]int
	idf   []float64
}

func (v *Vectorizer) maxFeatures() int {
	if v.MaxFeatures <= 0 {
		return DefaultMaxFeatures
	}
	return v.MaxFeatures
}

// Fitted reports whether Fit has built a vocabulary.
func (v *Vectorizer) Fitted() bool {
	return len(v.vocab) > 0
}

// Fit learns the vocabulary and inverse document frequencies from the
// corpus. Terms are ranked by corpus frequency, ties broken
// alphabetically, and the top MaxFeatures survive.
func (v *Vectorizer) Fit(texts []string) error {
	if len(texts) == 0 {
		return lexdoc.Errorf(lexdoc.EINVALID, "empty corpus")
	}

	counts := make(map[string]int)
	docFreq := make(map[string]int)
	for _, text := range texts {
		terms := v.terms(text)
		inDoc := make(map[string]bool, len(terms))
		for _, term := range terms {
			counts[term]++
			inDoc[term] = true
		}
		for term := range inDoc {
			docFreq[term]++
		}
	}
	if len(counts) == 0 {
		return lexdoc.Errorf(lexdoc.EINVALID, "corpus has no indexable terms")
	}

	ranked := make([]string, 0, len(counts))
	for term := range counts {
		ranked = append(ranked, term)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > v.maxFeatures() {
		ranked = ranked[:v.maxFeatures()]
	}

	n := float64(len(texts))
	v.vocab = make(map[string]int, len(ranked))
	v.idf = make([]float64, len(ranked))
	for i, term := range ranked {
		v.vocab[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
	return nil
}

// Transform maps text to an L2-normalized sparse vector. Terms outside
// the vocabulary are ignored; text with no known terms yields an empty
// vector.
func (v *Vectorizer) Transform(text string) map[int]float64 {
	vec := make(map[int]float64)
	for _, term := range v.terms(text) {
		if i, ok := v.vocab[term]; ok {
			vec[i] += v.idf[i]
		}
	}

	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// terms tokenizes text and expands the token stream into n-grams.
func (v *Vectorizer) terms(text string) []string {
	var words []string
	for _, word := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if !stopwords[word] {
			words = append(words, word)
		}
	}

	terms := words
	for n := 2; n <= v.NGramMax; n++ {
		for i := 0; i+n <= len(words); i++ {
			terms = append(terms, strings.Join(words[i:i+n], " "))
		}
	}
	return terms
}

// cosine is the dot product of two L2-normalized sparse vectors.
func cosine(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for i, w := range a {
		dot += w * b[i]
	}
	return dot
}
