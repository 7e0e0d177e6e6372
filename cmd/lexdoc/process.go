package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/lexdoc"
	"github.com/fwojciec/lexdoc/chunker"
	"github.com/fwojciec/lexdoc/fs"
	"github.com/fwojciec/lexdoc/sqlite"
)

// ProcessCmd chunks stored documents into standard and learning chunk
// sets and writes them as a single chunk file.
type ProcessCmd struct {
	Size         int    `help:"Standard chunk size target in characters." default:"1000"`
	Overlap      int    `help:"Standard chunk overlap budget in characters." default:"200"`
	LearningSize int    `help:"Learning chunk size target in characters." default:"600"`
	MinScore     int    `help:"Minimum teaching score for learning chunks." default:"3"`
	DB           string `help:"SQLite catalog path; store documents and chunks there instead of the chunk file."`
}

func (c *ProcessCmd) Run(deps *Dependencies) error {
	docs, err := fs.LoadDocuments(deps.documentsDir())
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return lexdoc.Errorf(lexdoc.ENOTFOUND, "no documents in %s; run fetch or repos first", deps.documentsDir())
	}

	var store lexdoc.ChunkStore = fs.NewChunkStore(deps.chunksPath())
	dest := deps.chunksPath()
	if c.DB != "" {
		db := sqlite.NewDB(c.DB)
		if err := db.Open(); err != nil {
			return err
		}
		defer db.Close()

		if err := catalogDocuments(deps.Ctx, sqlite.NewDocumentService(db), docs); err != nil {
			return err
		}
		store = sqlite.NewChunkStore(db)
		dest = c.DB
	}

	standard := &chunker.Chunker{Size: c.Size, Overlap: c.Overlap}
	learning := &chunker.LearningChunker{Size: c.LearningSize, MinScore: c.MinScore}

	var chunks []*lexdoc.Chunk
	learningCount := 0
	for _, doc := range docs {
		std, err := standard.ChunkDocument(doc)
		if err != nil {
			deps.Logger.Warn("chunking failed", "url", doc.SourceURL, "err", err)
			continue
		}
		chunks = append(chunks, std...)

		lrn, err := learning.ChunkDocument(doc)
		if err != nil {
			deps.Logger.Warn("learning chunking failed", "url", doc.SourceURL, "err", err)
			continue
		}
		chunks = append(chunks, lrn...)
		learningCount += len(lrn)
	}

	if err := store.WriteChunks(deps.Ctx, chunks); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "processed %d documents into %d chunks (%d learning) at %s\n",
		len(docs), len(chunks), learningCount, dest)
	return nil
}

// catalogDocuments records documents not already cataloged, keyed by
// source URL so reprocessing the same material adds nothing.
func catalogDocuments(ctx context.Context, svc lexdoc.DocumentService, docs []*lexdoc.Document) error {
	for _, doc := range docs {
		existing, err := svc.FindDocuments(ctx, lexdoc.DocumentFilter{SourceURL: &doc.SourceURL, Limit: 1})
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			continue
		}
		if err := svc.CreateDocument(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}
