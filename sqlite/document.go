package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/lexdoc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ lexdoc.DocumentService = (*DocumentService)(nil)

// DocumentService implements lexdoc.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

const documentColumns = `id, title, source_url, file_path, repo, technology, category,
	professional_context, proficiency_level, content_type, format, content,
	content_hash, word_count, key_terms, fetched_at`

// CreateDocument creates a new document, assigning it an ID and filling in
// the content hash and fetch time when missing.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *lexdoc.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ID = uuid.New().String()
	if doc.ContentHash == "" {
		doc.ContentHash = hashContent(doc.Content)
	}
	if doc.FetchedAt.IsZero() {
		doc.FetchedAt = time.Now().UTC()
	}

	keyTerms, err := marshalKeyTerms(doc.KeyTerms)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Title, doc.SourceURL, doc.FilePath, doc.Repo, doc.Technology, doc.Category,
		doc.ProfessionalContext, doc.ProficiencyLevel, string(doc.ContentType), string(doc.Format),
		doc.Content, doc.ContentHash, doc.WordCount, keyTerms, doc.FetchedAt.Format(time.RFC3339))

	return err
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*lexdoc.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		WHERE id = ?
	`, id)

	doc, err := scanDocument(row.Scan)
	if err == sql.ErrNoRows {
		return nil, lexdoc.Errorf(lexdoc.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindDocuments retrieves documents matching the filter, newest first.
func (s *DocumentService) FindDocuments(ctx context.Context, filter lexdoc.DocumentFilter) ([]*lexdoc.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + documentColumns + " FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Technology != nil {
		query.WriteString(" AND technology = ?")
		args = append(args, *filter.Technology)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY fetched_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*lexdoc.Document
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// DeleteDocument permanently removes a document.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return lexdoc.Errorf(lexdoc.ENOTFOUND, "document not found")
	}

	return nil
}

// scanDocument reads one documents row through the given scan function.
func scanDocument(scan func(dest ...any) error) (*lexdoc.Document, error) {
	var doc lexdoc.Document
	var contentType, format, keyTerms, fetchedAt string

	if err := scan(&doc.ID, &doc.Title, &doc.SourceURL, &doc.FilePath, &doc.Repo,
		&doc.Technology, &doc.Category, &doc.ProfessionalContext, &doc.ProficiencyLevel,
		&contentType, &format, &doc.Content, &doc.ContentHash, &doc.WordCount,
		&keyTerms, &fetchedAt); err != nil {
		return nil, err
	}

	doc.ContentType = lexdoc.ContentType(contentType)
	doc.Format = lexdoc.Format(format)

	var err error
	doc.KeyTerms, err = unmarshalKeyTerms(keyTerms)
	if err != nil {
		return nil, err
	}
	doc.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
