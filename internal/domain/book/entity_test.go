//go:build unit

package book_test

import (
	"testing"

	"libreserve/internal/domain/book"
	"libreserve/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBook(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookBuilder().BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, "The Go Programming Language", actual.Title())
		assert.Equal(t, 3, actual.TotalCopies())
		assert.Equal(t, 3, actual.AvailableCopies())
		assert.True(t, actual.IsAvailable())
	})

	tests := []struct {
		name   string
		mutate func(*builder.BookBuilder)
		errIs  error
	}{
		{
			name:   "empty title",
			mutate: func(b *builder.BookBuilder) { b.Title = "  " },
			errIs:  book.ErrEmptyTitle,
		},
		{
			name:   "empty author",
			mutate: func(b *builder.BookBuilder) { b.Author = "" },
			errIs:  book.ErrEmptyAuthor,
		},
		{
			name:   "negative total copies",
			mutate: func(b *builder.BookBuilder) { b.WithCopies(-1, 0) },
			errIs:  book.ErrNegativeCopies,
		},
		{
			name:   "available exceeds total",
			mutate: func(b *builder.BookBuilder) { b.WithCopies(2, 3) },
			errIs:  book.ErrAvailableExceeds,
		},
		{
			name:   "zero copies is a valid catalog entry",
			mutate: func(b *builder.BookBuilder) { b.WithCopies(0, 0) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := builder.NewBookBuilder()
			tt.mutate(b)
			_, err := b.BuildDomain()
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBook_CopyAccounting(t *testing.T) {
	t.Run("decrement stops at zero", func(t *testing.T) {
		b, err := builder.NewBookBuilder().WithCopies(2, 1).BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.DecrementAvailable())
		assert.Equal(t, 0, b.AvailableCopies())
		assert.False(t, b.IsAvailable())

		assert.ErrorIs(t, b.DecrementAvailable(), book.ErrNoAvailableCopies)
	})

	t.Run("increment stops at total", func(t *testing.T) {
		b, err := builder.NewBookBuilder().WithCopies(2, 1).BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.IncrementAvailable())
		assert.Equal(t, 2, b.AvailableCopies())

		assert.ErrorIs(t, b.IncrementAvailable(), book.ErrAllCopiesAvailable)
	})
}
