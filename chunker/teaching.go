package chunker

import (
	"regexp"
	"strings"
)

// teachingPatterns are phrases that signal instructional prose, each worth
// one point.
var teachingPatterns = []string{
	"how to",
	"you can",
	"we use",
	"this means",
	"for example",
	"in practice",
	"typically",
	"commonly used",
	"the purpose of",
	"allows you to",
	"enables",
	"provides",
	"helps you",
}

// conceptWords signal definitional content; any one present adds two
// points.
var conceptWords = []string{"means", "purpose", "concept", "definition"}

// grammarStructures reward text built from the function words learners
// study, capped so keyword stuffing cannot dominate.
var grammarStructures = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bcan\b`),
	regexp.MustCompile(`(?i)\bshould\b`),
	regexp.MustCompile(`(?i)\bif\b`),
	regexp.MustCompile(`(?i)\bbecause\b`),
	regexp.MustCompile(`(?i)\bwhen\b`),
	regexp.MustCompile(`(?i)\bwhile\b`),
	regexp.MustCompile(`(?i)\bafter\b`),
	regexp.MustCompile(`(?i)\bbefore\b`),
}

const maxGrammarPoints = 3

var symbolChars = regexp.MustCompile(`[{}();=<>&|\-]`)

// symbolDensityLimit is the fraction of symbol characters above which the
// text reads as code rather than prose.
const symbolDensityLimit = 0.1

// ScoreTeachingQuality rates how much a piece of text explains rather
// than merely lists or shows. Instructional phrases and concept words add
// points, grammar function words add up to three more, and symbol-dense
// text loses two. The score never goes below zero.
func ScoreTeachingQuality(text string) int {
	if text == "" {
		return 0
	}

	score := 0
	lower := strings.ToLower(text)

	for _, pattern := range teachingPatterns {
		if strings.Contains(lower, pattern) {
			score++
		}
	}

	for _, word := range conceptWords {
		if strings.Contains(lower, word) {
			score += 2
			break
		}
	}

	grammar := 0
	for _, re := range grammarStructures {
		if re.MatchString(text) {
			grammar++
		}
	}
	if grammar > maxGrammarPoints {
		grammar = maxGrammarPoints
	}
	score += grammar

	symbols := len(symbolChars.FindAllString(text, -1))
	if float64(symbols)/float64(len(text)) > symbolDensityLimit {
		score -= 2
	}

	if score < 0 {
		score = 0
	}
	return score
}
