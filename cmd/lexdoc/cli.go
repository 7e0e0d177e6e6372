package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
)

// CLI defines the command tree and global flags.
type CLI struct {
	DataDir string `help:"Directory for stored documents and chunks." default:"data"`
	Verbose bool   `help:"Enable debug logging."`

	Fetch   FetchCmd   `cmd:"" help:"Crawl the configured documentation sites."`
	Repos   ReposCmd   `cmd:"" help:"Fetch documentation files from the configured GitHub repositories."`
	Process ProcessCmd `cmd:"" help:"Chunk stored documents into standard and learning chunk sets."`
	Query   QueryCmd   `cmd:"" help:"Ask a question against the chunk corpus."`
}

// Dependencies holds shared configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	DataDir string
	Logger  *slog.Logger
}

func (d *Dependencies) documentsDir() string {
	return filepath.Join(d.DataDir, "documents")
}

func (d *Dependencies) chunksPath() string {
	return filepath.Join(d.DataDir, "chunks.jsonl")
}
