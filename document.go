package lexdoc

import (
	"context"
	"time"
)

// ContentType discriminates how a document was acquired, which in turn
// selects the chunking strategy family.
type ContentType string

// Content types for Document.
const (
	ContentWebDoc  ContentType = "web_doc"
	ContentRepoDoc ContentType = "repo_doc"
)

// Format describes the shape of a document's text, used by the chunker to
// pick a boundary strategy within a content type.
type Format string

// Document text formats.
const (
	FormatStructured Format = "structured" // heading-delimited prose
	FormatMarkdown   Format = "markdown"
	FormatCode       Format = "code"
	FormatConfig     Format = "configuration"
	FormatQA         Format = "qa" // question/answer transcript
	FormatPlain      Format = "plain"
)

// Document represents one fetched unit of documentation. Documents are
// created by a fetcher, immutable thereafter, and consumed by the chunker.
type Document struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"`
	SourceURL string `json:"url"`

	// FilePath is the in-repository path for repo documents; empty otherwise.
	FilePath string `json:"filePath,omitempty"`
	// Repo is the owner/name pair for repo documents; empty otherwise.
	Repo string `json:"repo,omitempty"`

	Technology string `json:"technology"`
	Category   string `json:"category"`

	// ProfessionalContext and ProficiencyLevel are heuristic tags derived
	// from the cleaned text at fetch time.
	ProfessionalContext string `json:"professionalContext"`
	ProficiencyLevel    string `json:"proficiencyLevel"`

	ContentType ContentType `json:"contentType"`
	Format      Format      `json:"format"`

	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash,omitempty"`
	WordCount   int       `json:"wordCount"`
	KeyTerms    []string  `json:"keyTerms,omitempty"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.SourceURL == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	if d.Technology == "" {
		return Errorf(EINVALID, "document technology required")
	}
	if d.Content == "" {
		return Errorf(EINVALID, "document content required")
	}
	return nil
}

// DocumentWriter persists fetched documents.
type DocumentWriter interface {
	WriteDocuments(ctx context.Context, docs []*Document) error
}

// DocumentService represents a service for managing documents.
type DocumentService interface {
	// CreateDocument creates a new document.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// DeleteDocument permanently removes a document.
	// Returns ENOTFOUND if document does not exist.
	DeleteDocument(ctx context.Context, id string) error
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID         *string `json:"id"`
	Technology *string `json:"technology"`
	SourceURL  *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
