package commands

import (
	"context"
	"time"

	"libreserve/internal/domain/reservation"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side query types.
type BookSnapshot struct {
	ID              uuid.UUID
	Title           string
	Author          string
	ISBN            *string
	TotalCopies     int
	AvailableCopies int
}

type ReservationSnapshot struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	BookID    uuid.UUID
	Status    reservation.Status
	ExpiresAt time.Time
	CreatedAt time.Time
}

type UserSnapshot struct {
	ID             uuid.UUID
	Email          string
	DisplayName    string
	Classification string
	IsActive       bool
}

// Ports onto the data-store collaborator. Each call is an independent
// query or mutation; no cross-call transaction is assumed.
type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	CountActiveByUser(ctx context.Context, userID uuid.UUID) (int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status) error
	FindActiveExpiredBefore(ctx context.Context, before time.Time) ([]*ReservationSnapshot, error)
}

type BookRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookSnapshot, error)
	UpdateAvailableCopies(ctx context.Context, id uuid.UUID, availableCopies int) error
}

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}
