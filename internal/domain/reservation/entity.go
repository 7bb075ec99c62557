package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus          = errors.New("invalid reservation status")
	ErrInvalidStateTransition = errors.New("reservation is not active")
	ErrZeroExpiry             = errors.New("expiry must be set")
)

type Reservation struct {
	id        uuid.UUID
	userID    uuid.UUID
	bookID    uuid.UUID
	status    Status
	expiresAt time.Time
	createdAt time.Time
	updatedAt time.Time
}

// NewReservation creates a reservation in status active. The expiry is
// computed by the caller from the user's policy.
func NewReservation(userID, bookID uuid.UUID, expiresAt time.Time) (*Reservation, error) {
	if expiresAt.IsZero() {
		return nil, ErrZeroExpiry
	}

	return &Reservation{
		id:        uuid.New(),
		userID:    userID,
		bookID:    bookID,
		status:    StatusActive,
		expiresAt: expiresAt,
	}, nil
}

func ReconstructReservation(
	id, userID, bookID uuid.UUID,
	status Status,
	expiresAt, createdAt, updatedAt time.Time,
) (*Reservation, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	return &Reservation{
		id:        id,
		userID:    userID,
		bookID:    bookID,
		status:    status,
		expiresAt: expiresAt,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// Cancel is legal only from active. Completed and cancelled reservations
// are immutable.
func (r *Reservation) Cancel() error {
	if r.status != StatusActive {
		return ErrInvalidStateTransition
	}
	r.status = StatusCancelled
	return nil
}

// Complete marks the reservation finished (book returned or expiry swept).
func (r *Reservation) Complete() error {
	if r.status != StatusActive {
		return ErrInvalidStateTransition
	}
	r.status = StatusCompleted
	return nil
}

func (r *Reservation) IsActive() bool {
	return r.status == StatusActive
}

func (r *Reservation) HasExpired(now time.Time) bool {
	return now.After(r.expiresAt)
}

func (r *Reservation) OwnedBy(userID uuid.UUID) bool {
	return r.userID == userID
}

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) UserID() uuid.UUID    { return r.userID }
func (r *Reservation) BookID() uuid.UUID    { return r.bookID }
func (r *Reservation) Status() Status       { return r.status }
func (r *Reservation) ExpiresAt() time.Time { return r.expiresAt }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }
