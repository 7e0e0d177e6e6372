// Package fs provides file-based storage for documents and chunks.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/fwojciec/lexdoc"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentWrites bounds parallel document writes.
const maxConcurrentWrites = 8

var unsafeFilename = regexp.MustCompile(`[^a-z0-9_\-]+`)

// DocumentFilename returns the file name for the i-th document of a
// technology, e.g. react_3.json.
func DocumentFilename(technology string, i int) string {
	tech := unsafeFilename.ReplaceAllString(strings.ToLower(technology), "_")
	if tech == "" {
		tech = "unknown"
	}
	return fmt.Sprintf("%s_%d.json", tech, i)
}

// Ensure Writer implements lexdoc.DocumentWriter at compile time.
var _ lexdoc.DocumentWriter = (*Writer)(nil)

// Writer persists documents as one JSON file each under a base directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteDocuments writes every document, numbering files per technology in
// input order. Writes run concurrently but the call fails on the first
// error.
func (w *Writer) WriteDocuments(ctx context.Context, docs []*lexdoc.Document) error {
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return err
	}

	names := make([]string, len(docs))
	perTech := make(map[string]int)
	for i, doc := range docs {
		if err := doc.Validate(); err != nil {
			return err
		}
		names[i] = DocumentFilename(doc.Technology, perTech[doc.Technology])
		perTech[doc.Technology]++
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentWrites)
	for i, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			return os.WriteFile(filepath.Join(w.baseDir, names[i]), data, 0644)
		})
	}
	return g.Wait()
}

// LoadDocuments reads every document JSON file in the directory, in file
// name order.
func LoadDocuments(dir string) ([]*lexdoc.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, lexdoc.Errorf(lexdoc.ENOTFOUND, "document directory %s does not exist", dir)
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var docs []*lexdoc.Document
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		var doc lexdoc.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, lexdoc.Errorf(lexdoc.EINVALID, "malformed document file %s: %v", name, err)
		}
		docs = append(docs, &doc)
	}
	return docs, nil
}
