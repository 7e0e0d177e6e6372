package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/lexdoc"
	"github.com/fwojciec/lexdoc/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDocument(url string) *lexdoc.Document {
	return &lexdoc.Document{
		Title:               "Hooks Guide",
		SourceURL:           url,
		Technology:          "react",
		Category:            "frontend",
		ProfessionalContext: "development",
		ProficiencyLevel:    "B2",
		ContentType:         lexdoc.ContentWebDoc,
		Format:              lexdoc.FormatStructured,
		Content:             "Hooks let you use state in function components.",
		WordCount:           8,
		KeyTerms:            []string{"component", "state"},
	}
}

func TestDocumentService_CreateDocument(t *testing.T) {
	t.Parallel()

	t.Run("creates document with generated ID, hash, and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)

		doc := newTestDocument("https://example.com/docs/hooks")
		require.NoError(t, svc.CreateDocument(context.Background(), doc))

		assert.NotEmpty(t, doc.ID)
		assert.NotEmpty(t, doc.ContentHash)
		assert.False(t, doc.FetchedAt.IsZero())
	})

	t.Run("returns error for invalid document", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)

		err := svc.CreateDocument(context.Background(), &lexdoc.Document{})
		require.Error(t, err)
		assert.Equal(t, lexdoc.EINVALID, lexdoc.ErrorCode(err))
	})
}

func TestDocumentService_FindDocumentByID(t *testing.T) {
	t.Parallel()

	t.Run("round-trips every field", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		doc := newTestDocument("https://example.com/docs/hooks")
		require.NoError(t, svc.CreateDocument(ctx, doc))

		got, err := svc.FindDocumentByID(ctx, doc.ID)
		require.NoError(t, err)

		assert.Equal(t, doc.Title, got.Title)
		assert.Equal(t, doc.SourceURL, got.SourceURL)
		assert.Equal(t, doc.Technology, got.Technology)
		assert.Equal(t, doc.ProfessionalContext, got.ProfessionalContext)
		assert.Equal(t, doc.ProficiencyLevel, got.ProficiencyLevel)
		assert.Equal(t, doc.ContentType, got.ContentType)
		assert.Equal(t, doc.Format, got.Format)
		assert.Equal(t, doc.Content, got.Content)
		assert.Equal(t, doc.KeyTerms, got.KeyTerms)
		assert.Equal(t, doc.WordCount, got.WordCount)
	})

	t.Run("returns ENOTFOUND for missing document", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)

		_, err := svc.FindDocumentByID(context.Background(), "no-such-id")
		require.Error(t, err)
		assert.Equal(t, lexdoc.ENOTFOUND, lexdoc.ErrorCode(err))
	})
}

func TestDocumentService_FindDocuments(t *testing.T) {
	t.Parallel()

	t.Run("filters by technology", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		react := newTestDocument("https://example.com/react")
		require.NoError(t, svc.CreateDocument(ctx, react))

		python := newTestDocument("https://example.com/python")
		python.Technology = "python"
		require.NoError(t, svc.CreateDocument(ctx, python))

		tech := "python"
		docs, err := svc.FindDocuments(ctx, lexdoc.DocumentFilter{Technology: &tech})
		require.NoError(t, err)

		require.Len(t, docs, 1)
		assert.Equal(t, "python", docs[0].Technology)
	})

	t.Run("applies limit", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		for _, url := range []string{"https://example.com/a", "https://example.com/b", "https://example.com/c"} {
			require.NoError(t, svc.CreateDocument(ctx, newTestDocument(url)))
		}

		docs, err := svc.FindDocuments(ctx, lexdoc.DocumentFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})
}

func TestDocumentService_DeleteDocument(t *testing.T) {
	t.Parallel()

	t.Run("deletes an existing document", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		doc := newTestDocument("https://example.com/docs/hooks")
		require.NoError(t, svc.CreateDocument(ctx, doc))
		require.NoError(t, svc.DeleteDocument(ctx, doc.ID))

		_, err := svc.FindDocumentByID(ctx, doc.ID)
		assert.Equal(t, lexdoc.ENOTFOUND, lexdoc.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for missing document", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)

		err := svc.DeleteDocument(context.Background(), "no-such-id")
		require.Error(t, err)
		assert.Equal(t, lexdoc.ENOTFOUND, lexdoc.ErrorCode(err))
	})
}
