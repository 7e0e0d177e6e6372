package lexdoc

import "strings"

// Proficiency levels (CEFR) assigned by the estimation heuristics.
const (
	LevelB1 = "B1"
	LevelB2 = "B2"
	LevelC1 = "C1"
)

// ContextDocumentation is the professional-context fallback tag used when
// no taxonomy keyword fires.
const ContextDocumentation = "documentation"

// ContextTaxonomy maps a professional-context tag to the keywords that vote
// for it. Two fixed taxonomies exist, one per fetcher variant.
type ContextTaxonomy map[string][]string

// WebContextTaxonomy classifies crawled documentation pages.
var WebContextTaxonomy = ContextTaxonomy{
	"development":   {"function", "method", "class", "variable", "import"},
	"debugging":     {"error", "debug", "fix", "issue", "problem"},
	"deployment":    {"deploy", "server", "production", "environment", "config"},
	"collaboration": {"team", "collaborate", "review", "merge", "branch"},
	"architecture":  {"architecture", "design", "pattern", "structure", "model"},
}

// RepoContextTaxonomy classifies repository documentation files.
var RepoContextTaxonomy = ContextTaxonomy{
	"getting_started": {"getting started", "quickstart", "installation"},
	"api_reference":   {"api", "reference", "interface", "method"},
	"configuration":   {"config", "setup", "environment", "settings"},
	"best_practices":  {"best practice", "guideline", "recommendation"},
	"tutorial":        {"tutorial", "example", "walkthrough", "guide"},
}

// ClassifyContext picks the professional-context tag whose keywords occur
// most often in text, falling back to ContextDocumentation when no keyword
// fires. Ties resolve to the lexicographically smallest tag so the result
// is deterministic.
func ClassifyContext(text string, taxonomy ContextTaxonomy) string {
	lower := strings.ToLower(text)

	best := ContextDocumentation
	bestScore := 0
	for tag, keywords := range taxonomy {
		score := 0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore || (score == bestScore && score > 0 && tag < best) {
			best = tag
			bestScore = score
		}
	}
	return best
}

// technicalTerms are the complex words counted by the repository-variant
// proficiency heuristic.
var technicalTerms = map[string]struct{}{
	"implementation": {},
	"configuration":  {},
	"optimization":   {},
	"architecture":   {},
}

// EstimateLevelTechnical estimates a document's proficiency level from the
// ratio of fixed technical terms to total words. Used by the repository
// fetcher. Breakpoints: >0.05 C1, >0.02 B2, else B1.
func EstimateLevelTechnical(text string) string {
	return estimateLevel(text, technicalTerms, 0.05, 0.02, 0)
}

// connectiveTerms are the advanced connectives counted by the web-variant
// proficiency heuristic.
var connectiveTerms = map[string]struct{}{
	"nevertheless":    {},
	"consequently":    {},
	"furthermore":     {},
	"notwithstanding": {},
}

// EstimateLevelConnectives estimates a document's proficiency level from
// the ratio of advanced connectives to total words. Used by the site
// crawler. Breakpoints: >0.03 C1, >0.01 B2, else B1.
//
// The two document-level heuristics use different word lists and different
// breakpoints on purpose; do not unify them.
func EstimateLevelConnectives(text string) string {
	return estimateLevel(text, connectiveTerms, 0.03, 0.01, 0)
}

// chunkComplexWords is the extended complex-word list for the chunk-level
// heuristic used by the learning pipeline.
var chunkComplexWords = map[string]struct{}{
	"implementation":  {},
	"configuration":   {},
	"optimization":    {},
	"architecture":    {},
	"asynchronous":    {},
	"concurrent":      {},
	"comprehensive":   {},
	"documentation":   {},
	"infrastructure":  {},
	"deployment":      {},
	"synchronization": {},
	"compatibility":   {},
	"functionality":   {},
	"repository":      {},
	"dependency":      {},
	"environment":     {},
}

// EstimateChunkLevel estimates a single chunk's proficiency level. Very
// short chunks default to B1. Breakpoints: >0.05 C1, >0.02 B2, else B1.
func EstimateChunkLevel(text string) string {
	return estimateLevel(text, chunkComplexWords, 0.05, 0.02, 10)
}

func estimateLevel(text string, complex map[string]struct{}, c1, b2 float64, minWords int) string {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 || len(words) < minWords {
		return LevelB1
	}

	count := 0
	for _, w := range words {
		if _, ok := complex[strings.Trim(w, ".,!?;:()")]; ok {
			count++
		}
	}

	ratio := float64(count) / float64(len(words))
	switch {
	case ratio > c1:
		return LevelC1
	case ratio > b2:
		return LevelB2
	default:
		return LevelB1
	}
}

// WebKeyTerms is the fixed vocabulary intersected against crawled pages.
var WebKeyTerms = []string{
	"function", "method", "class", "object", "variable", "parameter",
	"return", "import", "export", "interface", "implementation",
	"configuration", "deployment", "database", "api", "endpoint",
	"authentication", "authorization", "middleware", "framework",
}

// RepoKeyTerms is the fixed vocabulary intersected against repository files.
var RepoKeyTerms = []string{
	"function", "method", "class", "object", "variable", "parameter",
	"import", "export", "interface", "implementation", "configuration",
	"deployment", "database", "api", "endpoint", "authentication",
	"component", "state", "props", "hook", "docker", "container",
	"repository", "branch", "commit", "merge", "typescript",
}

// ExtractKeyTerms returns the vocabulary terms present in text, in
// vocabulary order, capped at limit.
func ExtractKeyTerms(text string, vocabulary []string, limit int) []string {
	present := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		present[strings.Trim(w, ".,!?;:()")] = struct{}{}
	}

	var terms []string
	for _, term := range vocabulary {
		if _, ok := present[term]; ok {
			terms = append(terms, term)
			if len(terms) == limit {
				break
			}
		}
	}
	return terms
}
