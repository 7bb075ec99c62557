package book

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle         = errors.New("book title cannot be empty")
	ErrEmptyAuthor        = errors.New("book author cannot be empty")
	ErrNegativeCopies     = errors.New("copy counts cannot be negative")
	ErrAvailableExceeds   = errors.New("available copies cannot exceed total copies")
	ErrNoAvailableCopies  = errors.New("no available copies")
	ErrAllCopiesAvailable = errors.New("all copies are already available")
)

// Book holds the copy counts the reservation engine treats as the source
// of truth. Invariant: 0 <= availableCopies <= totalCopies.
type Book struct {
	id              uuid.UUID
	title           string
	author          string
	isbn            *string
	totalCopies     int
	availableCopies int
	createdAt       time.Time
	updatedAt       time.Time
}

func NewBook(title, author string, isbn *string, totalCopies, availableCopies int) (*Book, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	author = strings.TrimSpace(author)
	if author == "" {
		return nil, ErrEmptyAuthor
	}
	if err := validateCopies(totalCopies, availableCopies); err != nil {
		return nil, err
	}

	return &Book{
		id:              uuid.New(),
		title:           title,
		author:          author,
		isbn:            isbn,
		totalCopies:     totalCopies,
		availableCopies: availableCopies,
	}, nil
}

func ReconstructBook(
	id uuid.UUID,
	title, author string,
	isbn *string,
	totalCopies, availableCopies int,
	createdAt, updatedAt time.Time,
) (*Book, error) {
	if err := validateCopies(totalCopies, availableCopies); err != nil {
		return nil, err
	}

	return &Book{
		id:              id,
		title:           title,
		author:          author,
		isbn:            isbn,
		totalCopies:     totalCopies,
		availableCopies: availableCopies,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

func validateCopies(total, available int) error {
	if total < 0 || available < 0 {
		return ErrNegativeCopies
	}
	if available > total {
		return ErrAvailableExceeds
	}
	return nil
}

func (b *Book) IsAvailable() bool {
	return b.availableCopies > 0
}

// DecrementAvailable reserves one copy.
func (b *Book) DecrementAvailable() error {
	if b.availableCopies == 0 {
		return ErrNoAvailableCopies
	}
	b.availableCopies--
	return nil
}

// IncrementAvailable returns one copy to the pool.
func (b *Book) IncrementAvailable() error {
	if b.availableCopies == b.totalCopies {
		return ErrAllCopiesAvailable
	}
	b.availableCopies++
	return nil
}

func (b *Book) ID() uuid.UUID        { return b.id }
func (b *Book) Title() string        { return b.title }
func (b *Book) Author() string       { return b.author }
func (b *Book) ISBN() *string        { return b.isbn }
func (b *Book) TotalCopies() int     { return b.totalCopies }
func (b *Book) AvailableCopies() int { return b.availableCopies }
func (b *Book) CreatedAt() time.Time { return b.createdAt }
func (b *Book) UpdatedAt() time.Time { return b.updatedAt }
