package lexdoc

import (
	"fmt"
	"strings"
)

// FormatDocuments formats documents for display.
// Uses title if available, falls back to source URL.
// Documents are separated by blank lines.
func FormatDocuments(docs []*Document) string {
	if len(docs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		header := doc.Title
		if header == "" {
			header = doc.SourceURL
		}
		parts = append(parts, "## Document: "+header+"\n"+doc.Content)
	}

	return strings.Join(parts, "\n\n")
}

// FormatQueryResult formats a retrieval result for display. Each hit shows
// its rank, tags, and scores above the chunk content. Failed queries render
// the error message.
func FormatQueryResult(res *QueryResult) string {
	if res == nil {
		return ""
	}
	if !res.Success {
		return fmt.Sprintf("query failed: %s", res.Error)
	}
	if len(res.ContextChunks) == 0 {
		return fmt.Sprintf("no results for %q", res.Question)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d results for %q (of %d matched)\n", len(res.ContextChunks), res.Question, res.TotalFound)
	for i, c := range res.ContextChunks {
		fmt.Fprintf(&b, "\n%d. [%s | %s | %s] relevance=%.3f", i+1, c.Technology, c.ProfessionalContext, c.ProficiencyLevel, c.RelevanceScore)
		if c.CombinedScore > c.RelevanceScore {
			fmt.Fprintf(&b, " combined=%.3f teaching=%d", c.CombinedScore, c.TeachingScore)
		}
		b.WriteString("\n")
		b.WriteString(c.Content)
		b.WriteString("\n")
	}
	return b.String()
}
