package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/lexdoc"
	"github.com/fwojciec/lexdoc/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument(technology, url, content string) *lexdoc.Document {
	return &lexdoc.Document{
		Title:       "Guide",
		SourceURL:   url,
		Technology:  technology,
		Category:    "frontend",
		ContentType: lexdoc.ContentWebDoc,
		Format:      lexdoc.FormatMarkdown,
		Content:     content,
		FetchedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestDocumentFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "react_0.json", fs.DocumentFilename("react", 0))
	assert.Equal(t, "node_js_2.json", fs.DocumentFilename("Node.js", 2))
	assert.Equal(t, "unknown_0.json", fs.DocumentFilename("", 0))
}

func TestWriter_WriteDocuments(t *testing.T) {
	t.Parallel()

	t.Run("writes one file per document numbered by technology", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)

		docs := []*lexdoc.Document{
			testDocument("react", "https://example.com/a", "First react doc."),
			testDocument("python", "https://example.com/b", "First python doc."),
			testDocument("react", "https://example.com/c", "Second react doc."),
		}
		require.NoError(t, w.WriteDocuments(context.Background(), docs))

		for _, name := range []string{"react_0.json", "react_1.json", "python_0.json"} {
			_, err := os.Stat(filepath.Join(dir, name))
			assert.NoError(t, err, name)
		}
	})

	t.Run("round-trips documents through load", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)

		doc := testDocument("react", "https://example.com/a", "Some content.")
		doc.KeyTerms = []string{"component", "state"}
		require.NoError(t, w.WriteDocuments(context.Background(), []*lexdoc.Document{doc}))

		loaded, err := fs.LoadDocuments(dir)
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, doc.SourceURL, loaded[0].SourceURL)
		assert.Equal(t, doc.Content, loaded[0].Content)
		assert.Equal(t, doc.KeyTerms, loaded[0].KeyTerms)
		assert.True(t, doc.FetchedAt.Equal(loaded[0].FetchedAt))
	})

	t.Run("rejects invalid documents before writing anything", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)

		bad := testDocument("react", "", "Content.")
		err := w.WriteDocuments(context.Background(), []*lexdoc.Document{bad})
		require.Error(t, err)
		assert.Equal(t, lexdoc.EINVALID, lexdoc.ErrorCode(err))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("loading a missing directory returns not found", func(t *testing.T) {
		t.Parallel()

		_, err := fs.LoadDocuments(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.Equal(t, lexdoc.ENOTFOUND, lexdoc.ErrorCode(err))
	})
}
