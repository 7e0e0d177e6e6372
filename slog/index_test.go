package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/lexdoc"
	"github.com/fwojciec/lexdoc/mock"
	lexslog "github.com/fwojciec/lexdoc/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingIndex(t *testing.T) {
	t.Parallel()

	t.Run("logs build with corpus size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Index{
			BuildFn: func(chunks []*lexdoc.Chunk) error { return nil },
		}

		ix := lexslog.NewLoggingIndex(inner, logger)
		require.NoError(t, ix.Build([]*lexdoc.Chunk{{ID: "a", Content: "x"}}))

		output := buf.String()
		assert.Contains(t, output, "index build")
		assert.Contains(t, output, "chunks=1")
	})

	t.Run("logs query outcome", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Index{
			QueryFn: func(question string, opts lexdoc.QueryOptions) *lexdoc.QueryResult {
				return &lexdoc.QueryResult{Question: question, Success: true, TotalFound: 3}
			},
		}

		ix := lexslog.NewLoggingIndex(inner, logger)
		result := ix.Query("hooks", lexdoc.QueryOptions{})

		require.True(t, result.Success)
		output := buf.String()
		assert.Contains(t, output, "index query")
		assert.Contains(t, output, "found=3")
		assert.Contains(t, output, "success=true")
	})
}
