package mock

import "github.com/fwojciec/lexdoc"

var _ lexdoc.Converter = (*Converter)(nil)

// Converter is a mock implementation of lexdoc.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
