package chunker_test

import (
	"testing"

	"github.com/fwojciec/lexdoc/chunker"
	"github.com/stretchr/testify/assert"
)

func TestScoreTeachingQuality(t *testing.T) {
	t.Parallel()

	t.Run("instructional prose scores high", func(t *testing.T) {
		t.Parallel()

		text := "You can use hooks to manage state. For example, this means the component " +
			"can update when data changes because the purpose of state is reactivity."
		assert.Equal(t, 9, chunker.ScoreTeachingQuality(text))
	})

	t.Run("symbol-dense text is penalized to zero", func(t *testing.T) {
		t.Parallel()

		text := "x = { a: 1 }; if (x) { y = x.a; } while (true) { z++; }"
		assert.Equal(t, 0, chunker.ScoreTeachingQuality(text))
	})

	t.Run("never goes below zero", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 0, chunker.ScoreTeachingQuality("{};()=<>"))
	})

	t.Run("empty text scores zero", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 0, chunker.ScoreTeachingQuality(""))
	})

	t.Run("grammar points are capped", func(t *testing.T) {
		t.Parallel()

		text := "Readers can decide what they should do if problems appear because " +
			"mistakes happen when rules change while systems run."
		assert.Equal(t, 3, chunker.ScoreTeachingQuality(text))
	})
}
