package queries

import (
	"context"

	"libreserve/internal/domain/policy"
	"libreserve/internal/domain/user"
	"libreserve/internal/infra"
	"libreserve/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errs.New("user not found")
	ErrUserInactive = errs.New("user inactive")
)

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error)
	GetProfileStats(ctx context.Context, userID uuid.UUID) (*ProfileStatsView, error)
}

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
	FindByEmail(ctx context.Context, email string) (*AuthorizedUserView, string, error)
}

type userQueriesImpl struct {
	readStore       UserReadStore
	reservationRead ReservationReadStore
	evaluator       *policy.Evaluator
}

func NewUserQueries(readStore UserReadStore, reservationRead ReservationReadStore, evaluator *policy.Evaluator) UserQueries {
	return &userQueriesImpl{
		readStore:       readStore,
		reservationRead: reservationRead,
		evaluator:       evaluator,
	}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error) {
	view, err := q.readStore.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !view.IsActive {
		return nil, ErrUserInactive
	}

	return view, nil
}

// GetProfileStats combines the user's active-reservation count with the
// limits resolved from their classification's policy.
func (q *userQueriesImpl) GetProfileStats(ctx context.Context, userID uuid.UUID) (*ProfileStatsView, error) {
	view, err := q.GetCurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	classification := user.Classification(view.Classification)

	maxReservations, err := q.evaluator.MaxReservations(classification)
	if err != nil {
		return nil, err
	}

	loanDays, err := q.evaluator.LoanDurationDays(classification)
	if err != nil {
		return nil, err
	}

	activeCount, err := q.reservationRead.CountActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ProfileStatsView{
		UserID:             userID,
		Classification:     view.Classification,
		ActiveReservations: activeCount,
		MaxReservations:    maxReservations,
		LoanDurationDays:   loanDays,
		CanReserve:         activeCount < maxReservations,
	}, nil
}
