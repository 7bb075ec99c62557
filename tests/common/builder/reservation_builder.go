//go:build unit || e2e

package builder

import (
	"time"

	"libreserve/internal/domain/reservation"
	"libreserve/internal/usecase/commands"
	"libreserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	BookID    uuid.UUID
	BookTitle string
	UserEmail string
	Status    reservation.Status
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)
	return &ReservationBuilder{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		BookID:    uuid.New(),
		BookTitle: "The Go Programming Language",
		UserEmail: "test@example.com",
		Status:    reservation.StatusActive,
		ExpiresAt: now.AddDate(0, 0, 14),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

func (r *ReservationBuilder) WithStatus(status reservation.Status) *ReservationBuilder {
	r.Status = status
	return r
}

func (r *ReservationBuilder) WithOwner(userID uuid.UUID) *ReservationBuilder {
	r.UserID = userID
	return r
}

// Build methods

func (r *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	return reservation.ReconstructReservation(
		r.ID, r.UserID, r.BookID,
		r.Status,
		r.ExpiresAt, r.CreatedAt, r.UpdatedAt,
	)
}

func (r *ReservationBuilder) BuildSnapshot() *commands.ReservationSnapshot {
	return &commands.ReservationSnapshot{
		ID:        r.ID,
		UserID:    r.UserID,
		BookID:    r.BookID,
		Status:    r.Status,
		ExpiresAt: r.ExpiresAt,
		CreatedAt: r.CreatedAt,
	}
}

func (r *ReservationBuilder) BuildReadModel() *queries.ReservationView {
	return &queries.ReservationView{
		ID:        r.ID,
		BookID:    r.BookID,
		BookTitle: r.BookTitle,
		UserID:    r.UserID,
		UserEmail: r.UserEmail,
		Status:    string(r.Status),
		ExpiresAt: r.ExpiresAt,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (r *ReservationBuilder) BuildListItem() *queries.ReservationListItem {
	return &queries.ReservationListItem{
		ID:        r.ID,
		BookID:    r.BookID,
		BookTitle: r.BookTitle,
		Status:    string(r.Status),
		ExpiresAt: r.ExpiresAt,
		CreatedAt: r.CreatedAt,
	}
}
