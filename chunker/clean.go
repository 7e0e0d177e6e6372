package chunker

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun    = regexp.MustCompile(`\s+`)
	unsafeChars      = regexp.MustCompile(`[^\w\s.,!?;:()\-]`)
	spaceBeforePunct = regexp.MustCompile(`\s+([.,!?;:)])`)
	spaceAfterOpen   = regexp.MustCompile(`\(\s+`)
)

// CleanText normalizes text before chunk creation: whitespace runs
// collapse to single spaces, characters outside the safe alphanumeric and
// basic punctuation set are stripped, and spacing around punctuation is
// normalized.
func CleanText(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = unsafeChars.ReplaceAllString(text, "")
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	text = spaceAfterOpen.ReplaceAllString(text, "(")
	return strings.TrimSpace(text)
}

var (
	htmlTag    = regexp.MustCompile(`<[^>]+>`)
	mdImage    = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	mdLink     = regexp.MustCompile(`\[[^\]]*\]\([^)]*\)`)
	mdBadge    = regexp.MustCompile(`!\[[^\]]*\]`)
	urlPattern = regexp.MustCompile(`http\S+`)
	inlineCode = regexp.MustCompile("`[^`]*`")
	letterRun  = regexp.MustCompile(`[a-zA-Z]{4,}`)
)

// commandPrefixes open shell-instruction lines that teach nothing about
// language use.
var commandPrefixes = []string{"npm", "git", "docker", "yarn"}

// minCleanedLine is the minimum length a sentence must keep to survive
// advanced cleaning.
const minCleanedLine = 20

// AdvancedCleanText is the stricter cleaning pass used by the learning
// pipeline. Beyond CleanText it strips HTML tags, markdown link, image,
// and badge syntax, URLs, and inline code spans, then discards sentences
// that are too short, open with a command-line prefix, or contain no run
// of four consecutive letters.
func AdvancedCleanText(text string) string {
	if text == "" {
		return ""
	}

	text = htmlTag.ReplaceAllString(text, "")
	text = mdImage.ReplaceAllString(text, "")
	text = mdLink.ReplaceAllString(text, "")
	text = mdBadge.ReplaceAllString(text, "")
	text = urlPattern.ReplaceAllString(text, "")
	text = inlineCode.ReplaceAllString(text, "")
	text = unsafeChars.ReplaceAllString(text, " ")
	text = whitespaceRun.ReplaceAllString(text, " ")

	var kept []string
	for _, line := range strings.Split(text, ".") {
		line = strings.TrimSpace(line)
		if len(line) <= minCleanedLine {
			continue
		}
		if hasCommandPrefix(line) {
			continue
		}
		if !letterRun.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}

	return strings.Join(kept, ". ")
}

func hasCommandPrefix(line string) bool {
	for _, prefix := range commandPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// explanatoryOpeners mark sentences phrased as explanations rather than
// bare descriptions or command listings.
var explanatoryOpeners = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:this|the|a|an)\s+[a-z,\s]{10,100}`),
	regexp.MustCompile(`(?i)\b(?:you can|you should|it is|it's)\s`),
	regexp.MustCompile(`(?i)\bto\s+\w+\s`),
	regexp.MustCompile(`(?i)\bfor\s+\w+\s`),
	regexp.MustCompile(`(?i)\bwhen\s`),
	regexp.MustCompile(`(?i)\bif\s`),
}

var (
	sentenceBreak = regexp.MustCompile(`[.!?]+`)
	wordToken     = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)
)

// Explanatory sentence length bounds.
const (
	minExplanatorySentence = 25
	maxExplanatorySentence = 500
	// longSentenceOverride admits long sentences even without an
	// explanatory opener.
	longSentenceOverride = 50
)

// ExtractExplanatory filters text down to sentences that read as prose
// explanations: bounded length, a majority of alphabetic tokens, and
// either an explanatory opener or enough length to carry meaning.
func ExtractExplanatory(content string) string {
	var kept []string

	for _, sentence := range sentenceBreak.Split(content, -1) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) < minExplanatorySentence || len(sentence) > maxExplanatorySentence {
			continue
		}

		words := wordToken.FindAllString(sentence, -1)
		tokens := strings.Fields(sentence)
		if len(words) <= 5 || len(tokens) == 0 {
			continue
		}
		if float64(len(words))/float64(len(tokens)) <= 0.6 {
			continue
		}

		if isExplanatory(sentence) || len(sentence) > longSentenceOverride {
			kept = append(kept, sentence)
		}
	}

	if len(kept) == 0 {
		return ""
	}
	return strings.Join(kept, ". ") + "."
}

func isExplanatory(sentence string) bool {
	for _, re := range explanatoryOpeners {
		if re.MatchString(sentence) {
			return true
		}
	}
	return false
}
