package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/lexdoc"
	"github.com/fwojciec/lexdoc/fs"
	"github.com/fwojciec/lexdoc/index"
	lexslog "github.com/fwojciec/lexdoc/slog"
	"github.com/fwojciec/lexdoc/sqlite"
)

// QueryCmd builds an index over the stored chunks and answers one
// question against it.
type QueryCmd struct {
	Question []string `arg:"" help:"Question to ask."`
	Context  string   `help:"Restrict results to a professional context."`
	K        int      `help:"Number of chunks to return." default:"5"`
	NGrams   int      `help:"Largest n-gram length in the vocabulary." default:"3"`
	DB       string   `help:"SQLite catalog path; read chunks from it instead of the chunk file."`
}

func (c *QueryCmd) Run(deps *Dependencies) error {
	question := strings.TrimSpace(strings.Join(c.Question, " "))
	if question == "" {
		return lexdoc.Errorf(lexdoc.EINVALID, "question required")
	}

	var store lexdoc.ChunkStore = fs.NewChunkStore(deps.chunksPath())
	if c.DB != "" {
		db := sqlite.NewDB(c.DB)
		if err := db.Open(); err != nil {
			return err
		}
		defer db.Close()
		store = sqlite.NewChunkStore(db)
	}

	chunks, err := store.ReadChunks(deps.Ctx)
	if err != nil {
		return err
	}

	ix := lexslog.NewLoggingIndex(&index.Index{NGramMax: c.NGrams}, deps.Logger)
	if err := ix.Build(chunks); err != nil {
		return err
	}

	result := ix.Query(question, lexdoc.QueryOptions{ContextFilter: c.Context, K: c.K})
	fmt.Fprintln(deps.Stdout, lexdoc.FormatQueryResult(result))
	return nil
}
