package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/lexdoc"
)

// Ensure LoggingIndex implements lexdoc.Index.
var _ lexdoc.Index = (*LoggingIndex)(nil)

// LoggingIndex wraps an Index with build and query logging.
type LoggingIndex struct {
	next   lexdoc.Index
	logger *slog.Logger
}

// NewLoggingIndex creates a new LoggingIndex.
func NewLoggingIndex(next lexdoc.Index, logger *slog.Logger) *LoggingIndex {
	return &LoggingIndex{next: next, logger: logger}
}

// Build delegates to the wrapped index and logs the corpus size.
func (ix *LoggingIndex) Build(chunks []*lexdoc.Chunk) (err error) {
	defer func(begin time.Time) {
		ix.logger.Info("index build",
			"chunks", len(chunks),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return ix.next.Build(chunks)
}

// Query delegates to the wrapped index and logs the outcome.
func (ix *LoggingIndex) Query(question string, opts lexdoc.QueryOptions) *lexdoc.QueryResult {
	begin := time.Now()
	result := ix.next.Query(question, opts)
	ix.logger.Info("index query",
		"question", question,
		"found", result.TotalFound,
		"returned", len(result.ContextChunks),
		"success", result.Success,
		"duration", time.Since(begin),
	)
	return result
}
