package response

import (
	"time"

	"libreserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ISBN            *string   `json:"isbn,omitempty"`
	TotalCopies     int32     `json:"totalCopies"`
	AvailableCopies int32     `json:"availableCopies"`
	Available       bool      `json:"available"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type BookListResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	AvailableCopies int32     `json:"availableCopies"`
	Available       bool      `json:"available"`
}

func FromBookView(rm *queries.BookView) *BookResponse {
	return &BookResponse{
		ID:              rm.ID,
		Title:           rm.Title,
		Author:          rm.Author,
		ISBN:            rm.ISBN,
		TotalCopies:     rm.TotalCopies,
		AvailableCopies: rm.AvailableCopies,
		Available:       rm.Available,
		CreatedAt:       rm.CreatedAt,
		UpdatedAt:       rm.UpdatedAt,
	}
}

func FromBookListItem(rm *queries.BookListItem) *BookListResponse {
	return &BookListResponse{
		ID:              rm.ID,
		Title:           rm.Title,
		Author:          rm.Author,
		AvailableCopies: rm.AvailableCopies,
		Available:       rm.Available,
	}
}
