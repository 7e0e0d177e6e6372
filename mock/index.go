package mock

import "github.com/fwojciec/lexdoc"

var _ lexdoc.Index = (*Index)(nil)

// Index is a mock implementation of lexdoc.Index.
type Index struct {
	BuildFn func(chunks []*lexdoc.Chunk) error
	QueryFn func(question string, opts lexdoc.QueryOptions) *lexdoc.QueryResult
}

func (i *Index) Build(chunks []*lexdoc.Chunk) error {
	return i.BuildFn(chunks)
}

func (i *Index) Query(question string, opts lexdoc.QueryOptions) *lexdoc.QueryResult {
	return i.QueryFn(question, opts)
}
