//go:build unit || e2e

package builder

import (
	"time"

	"libreserve/internal/domain/book"
	"libreserve/internal/usecase/commands"
	"libreserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookBuilder struct {
	ID              uuid.UUID
	Title           string
	Author          string
	ISBN            *string
	TotalCopies     int
	AvailableCopies int
}

func NewBookBuilder() *BookBuilder {
	isbn := "9780134190440"
	return &BookBuilder{
		ID:              uuid.New(),
		Title:           "The Go Programming Language",
		Author:          "Donovan & Kernighan",
		ISBN:            &isbn,
		TotalCopies:     3,
		AvailableCopies: 3,
	}
}

func (b *BookBuilder) With(mutate func(*BookBuilder)) *BookBuilder {
	mutate(b)
	return b
}

func (b *BookBuilder) WithCopies(total, available int) *BookBuilder {
	b.TotalCopies = total
	b.AvailableCopies = available
	return b
}

// Build methods

func (b *BookBuilder) BuildDomain() (*book.Book, error) {
	return book.NewBook(b.Title, b.Author, b.ISBN, b.TotalCopies, b.AvailableCopies)
}

func (b *BookBuilder) BuildSnapshot() *commands.BookSnapshot {
	return &commands.BookSnapshot{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
	}
}

func (b *BookBuilder) BuildReadModel() *queries.BookView {
	now := time.Now()
	return &queries.BookView{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		TotalCopies:     int32(b.TotalCopies),
		AvailableCopies: int32(b.AvailableCopies),
		Available:       b.AvailableCopies > 0,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
