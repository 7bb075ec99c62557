package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"libreserve/internal/domain/policy"
	"libreserve/internal/domain/reservation"
	"libreserve/internal/domain/user"
	"libreserve/internal/infra"
	"libreserve/internal/pkg/clock"
	"libreserve/internal/pkg/errs"
	"libreserve/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrBookNotFound             = errs.New("book not found")
	ErrBookUnavailable          = errs.New("book has no available copies")
	ErrReservationLimitExceeded = errs.New("reservation limit exceeded")
	ErrReservationNotFound      = errs.New("reservation not found")
	ErrReservationAccessDenied  = errs.New("reservation access denied")
	ErrInvalidStateTransition   = errs.New("reservation is not active")
	ErrUserNotFound             = errs.New("user not found")
	ErrUnknownClassification    = policy.ErrUnknownClassification
	ErrDatabaseOperationFailed  = errs.New("database operation failed")
)

// LimitExceededError carries the policy maximum so callers can build a
// user-facing message. It matches ErrReservationLimitExceeded via errors.Is.
type LimitExceededError struct {
	Max int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("reservation limit of %d reached", e.Max)
}

func (e *LimitExceededError) Is(target error) bool {
	return target == ErrReservationLimitExceeded
}

// ReserveResult reports the outcome of a reserve operation.
// AvailabilityErr is non-nil when the reservation record was created but
// the availability decrement failed afterwards; the reservation itself
// stands and the caller must be told it succeeded.
type ReserveResult struct {
	Reservation     *queries.ReservationView
	AvailabilityErr error
}

func (r *ReserveResult) AvailabilityStale() bool {
	return r.AvailabilityErr != nil
}

type ReservationCommands interface {
	Reserve(ctx context.Context, userID, bookID uuid.UUID) (*ReserveResult, error)
	Cancel(ctx context.Context, actorID, reservationID uuid.UUID) (*ReservationSnapshot, error)
	ExpireOverdue(ctx context.Context, now time.Time) (int, error)
}

type reservationCommandsImpl struct {
	reservationRepo ReservationRepository
	bookRepo        BookRepository
	userRepo        UserRepository
	evaluator       *policy.Evaluator
	expiryCalc      *policy.ExpiryCalculator
	clock           clock.Clock
}

func NewReservationCommands(
	reservationRepo ReservationRepository,
	bookRepo BookRepository,
	userRepo UserRepository,
	evaluator *policy.Evaluator,
	expiryCalc *policy.ExpiryCalculator,
	clock clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		reservationRepo: reservationRepo,
		bookRepo:        bookRepo,
		userRepo:        userRepo,
		evaluator:       evaluator,
		expiryCalc:      expiryCalc,
		clock:           clock,
	}
}

// Reserve runs the full admission and creation workflow. The create and
// the availability decrement are two independent store mutations with no
// shared transaction; the decrement is attempted only after the create
// succeeded.
func (r *reservationCommandsImpl) Reserve(ctx context.Context, userID, bookID uuid.UUID) (*ReserveResult, error) {
	userEntity, err := r.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	bookSnap, err := r.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if bookSnap.AvailableCopies == 0 {
		return nil, ErrBookUnavailable
	}

	activeCount, err := r.reservationRepo.CountActiveByUser(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	eligible, err := r.evaluator.CanReserve(userEntity, activeCount)
	if err != nil {
		return nil, err
	}
	if !eligible {
		maxReservations, maxErr := r.evaluator.MaxReservations(userEntity.Classification())
		if maxErr != nil {
			return nil, maxErr
		}
		return nil, &LimitExceededError{Max: maxReservations}
	}

	expiresAt, err := r.expiryCalc.ComputeExpiry(userEntity.Classification(), r.clock.Now())
	if err != nil {
		return nil, err
	}

	reservationEntity, err := reservation.NewReservation(userID, bookID, expiresAt)
	if err != nil {
		return nil, err
	}

	createdID, err := r.reservationRepo.Create(ctx, reservationEntity)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	result := &ReserveResult{
		Reservation: &queries.ReservationView{
			ID:        createdID,
			BookID:    bookID,
			BookTitle: bookSnap.Title,
			UserID:    userID,
			UserEmail: userEntity.Email().Value(),
			Status:    reservation.StatusActive.String(),
			ExpiresAt: expiresAt,
			CreatedAt: r.clock.Now(),
			UpdatedAt: r.clock.Now(),
		},
	}

	if updateErr := r.bookRepo.UpdateAvailableCopies(ctx, bookID, bookSnap.AvailableCopies-1); updateErr != nil {
		// The reservation exists but the copy count is stale. Report it,
		// never swallow it; the caller is still told the reservation
		// succeeded.
		slog.Error("availability update failed after reservation create",
			"reservation_id", createdID, "book_id", bookID, "error", updateErr.Error())
		result.AvailabilityErr = errs.Mark(updateErr, ErrDatabaseOperationFailed)
	}

	return result, nil
}

func (r *reservationCommandsImpl) Cancel(ctx context.Context, actorID, reservationID uuid.UUID) (*ReservationSnapshot, error) {
	snap, err := r.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if snap.UserID != actorID {
		return nil, ErrReservationAccessDenied
	}

	reservationEntity, err := reservation.ReconstructReservation(
		snap.ID, snap.UserID, snap.BookID, snap.Status, snap.ExpiresAt, snap.CreatedAt, time.Time{},
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if cancelErr := reservationEntity.Cancel(); cancelErr != nil {
		return nil, errs.Mark(cancelErr, ErrInvalidStateTransition)
	}

	if updateErr := r.reservationRepo.UpdateStatus(ctx, reservationID, reservation.StatusCancelled); updateErr != nil {
		return nil, errs.Mark(updateErr, ErrDatabaseOperationFailed)
	}

	// Cancellation does not restore available copies; the observed
	// behavior being modeled never re-increments on cancel.
	snap.Status = reservation.StatusCancelled
	return snap, nil
}

// ExpireOverdue completes active reservations whose expiry has passed and
// returns each copy to its book's pool. Invoked by the sweeper; per-item
// failures are logged and skipped so one bad row cannot stall the sweep.
func (r *reservationCommandsImpl) ExpireOverdue(ctx context.Context, now time.Time) (int, error) {
	overdue, err := r.reservationRepo.FindActiveExpiredBefore(ctx, now)
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	completed := 0
	for _, snap := range overdue {
		if err := r.reservationRepo.UpdateStatus(ctx, snap.ID, reservation.StatusCompleted); err != nil {
			slog.Error("failed to complete expired reservation", "reservation_id", snap.ID, "error", err.Error())
			continue
		}
		completed++

		bookSnap, err := r.bookRepo.FindByID(ctx, snap.BookID)
		if err != nil {
			slog.Error("failed to load book for expired reservation", "book_id", snap.BookID, "error", err.Error())
			continue
		}
		if bookSnap.AvailableCopies >= bookSnap.TotalCopies {
			continue
		}
		if err := r.bookRepo.UpdateAvailableCopies(ctx, snap.BookID, bookSnap.AvailableCopies+1); err != nil {
			slog.Error("failed to restore copy for expired reservation", "book_id", snap.BookID, "error", err.Error())
		}
	}

	return completed, nil
}

func (r *reservationCommandsImpl) loadUser(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	snap, err := r.userRepo.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	email, err := user.NewEmail(snap.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	classification, err := user.NewClassification(snap.Classification)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return user.ReconstructUser(
		snap.ID, email, snap.DisplayName, "", classification, snap.IsActive, time.Time{}, time.Time{},
	), nil
}
