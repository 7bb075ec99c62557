package response

import (
	"time"

	"libreserve/internal/usecase/commands"
	"libreserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID        uuid.UUID `json:"id"`
	BookID    uuid.UUID `json:"bookId"`
	BookTitle string    `json:"bookTitle"`
	UserID    uuid.UUID `json:"userId"`
	UserEmail string    `json:"userEmail"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	// Warning is set when the reservation was recorded but the copy count
	// could not be updated, so the listed availability may be stale.
	Warning *string `json:"warning,omitempty"`
}

type ReservationListResponse struct {
	ID        uuid.UUID `json:"id"`
	BookID    uuid.UUID `json:"bookId"`
	BookTitle string    `json:"bookTitle"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

type CancelReservationResponse struct {
	ID        uuid.UUID `json:"id"`
	BookID    uuid.UUID `json:"bookId"`
	UserID    uuid.UUID `json:"userId"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:        rm.ID,
		BookID:    rm.BookID,
		BookTitle: rm.BookTitle,
		UserID:    rm.UserID,
		UserEmail: rm.UserEmail,
		Status:    rm.Status,
		ExpiresAt: rm.ExpiresAt,
		CreatedAt: rm.CreatedAt,
		UpdatedAt: rm.UpdatedAt,
	}
}

func FromReservationListItem(rm *queries.ReservationListItem) *ReservationListResponse {
	return &ReservationListResponse{
		ID:        rm.ID,
		BookID:    rm.BookID,
		BookTitle: rm.BookTitle,
		Status:    rm.Status,
		ExpiresAt: rm.ExpiresAt,
		CreatedAt: rm.CreatedAt,
	}
}

func FromReservationSnapshot(snap *commands.ReservationSnapshot) *CancelReservationResponse {
	return &CancelReservationResponse{
		ID:        snap.ID,
		BookID:    snap.BookID,
		UserID:    snap.UserID,
		Status:    string(snap.Status),
		ExpiresAt: snap.ExpiresAt,
		CreatedAt: snap.CreatedAt,
	}
}
