//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"libreserve/internal/domain/policy"
	"libreserve/internal/domain/reservation"
	"libreserve/internal/domain/user"
	"libreserve/internal/infra"
	"libreserve/internal/pkg/clock"
	"libreserve/internal/usecase/commands"
	"libreserve/tests/common/builder"
	commandsmock "libreserve/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)

type commandsFixture struct {
	reservationRepo *commandsmock.MockReservationRepository
	bookRepo        *commandsmock.MockBookRepository
	userRepo        *commandsmock.MockUserRepository
	clock           *clock.MockClock
	commands        commands.ReservationCommands
}

func newCommandsFixture(t *testing.T) *commandsFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	registry := policy.NewRegistry()
	student, err := policy.NewPolicy(user.ClassificationStudent, 5, 14)
	require.NoError(t, err)
	registry.Register(user.ClassificationStudent, student)
	normal, err := policy.NewPolicy(user.ClassificationNormal, 3, 7)
	require.NoError(t, err)
	registry.Register(user.ClassificationNormal, normal)

	f := &commandsFixture{
		reservationRepo: commandsmock.NewMockReservationRepository(ctrl),
		bookRepo:        commandsmock.NewMockBookRepository(ctrl),
		userRepo:        commandsmock.NewMockUserRepository(ctrl),
		clock:           clock.NewMockClock(fixedNow),
	}
	f.commands = commands.NewReservationCommands(
		f.reservationRepo,
		f.bookRepo,
		f.userRepo,
		policy.NewEvaluator(registry),
		policy.NewExpiryCalculator(registry),
		f.clock,
	)
	return f
}

func notFoundErr() error {
	return infra.WrapRepoErr("not found", errors.New("no rows"), infra.KindNotFound)
}

func TestReservationCommands_Reserve(t *testing.T) {
	ctx := context.Background()

	t.Run("success decrements availability by exactly one", func(t *testing.T) {
		f := newCommandsFixture(t)
		userSnap := builder.NewUserBuilder().WithClassification("student").BuildSnapshot()
		bookSnap := builder.NewBookBuilder().WithCopies(3, 2).BuildSnapshot()
		createdID := uuid.New()

		f.userRepo.EXPECT().FindByID(ctx, userSnap.ID).Return(userSnap, nil)
		f.bookRepo.EXPECT().FindByID(ctx, bookSnap.ID).Return(bookSnap, nil)
		f.reservationRepo.EXPECT().CountActiveByUser(ctx, userSnap.ID).Return(4, nil)
		f.reservationRepo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, res *reservation.Reservation) (uuid.UUID, error) {
				assert.Equal(t, reservation.StatusActive, res.Status())
				assert.Equal(t, fixedNow.AddDate(0, 0, 14), res.ExpiresAt())
				return createdID, nil
			})
		f.bookRepo.EXPECT().UpdateAvailableCopies(ctx, bookSnap.ID, 1).Return(nil)

		result, err := f.commands.Reserve(ctx, userSnap.ID, bookSnap.ID)
		require.NoError(t, err)
		require.NotNil(t, result.Reservation)

		assert.False(t, result.AvailabilityStale())
		assert.Equal(t, createdID, result.Reservation.ID)
		assert.Equal(t, bookSnap.Title, result.Reservation.BookTitle)
		assert.Equal(t, userSnap.Email, result.Reservation.UserEmail)
		assert.Equal(t, string(reservation.StatusActive), result.Reservation.Status)
		assert.Equal(t, fixedNow.AddDate(0, 0, 14), result.Reservation.ExpiresAt)
	})

	t.Run("book not found", func(t *testing.T) {
		f := newCommandsFixture(t)
		userSnap := builder.NewUserBuilder().BuildSnapshot()
		bookID := uuid.New()

		f.userRepo.EXPECT().FindByID(ctx, userSnap.ID).Return(userSnap, nil)
		f.bookRepo.EXPECT().FindByID(ctx, bookID).Return(nil, notFoundErr())

		_, err := f.commands.Reserve(ctx, userSnap.ID, bookID)
		assert.ErrorIs(t, err, commands.ErrBookNotFound)
	})

	t.Run("no available copies stops before the policy check", func(t *testing.T) {
		f := newCommandsFixture(t)
		userSnap := builder.NewUserBuilder().BuildSnapshot()
		bookSnap := builder.NewBookBuilder().WithCopies(3, 0).BuildSnapshot()

		f.userRepo.EXPECT().FindByID(ctx, userSnap.ID).Return(userSnap, nil)
		f.bookRepo.EXPECT().FindByID(ctx, bookSnap.ID).Return(bookSnap, nil)

		_, err := f.commands.Reserve(ctx, userSnap.ID, bookSnap.ID)
		assert.ErrorIs(t, err, commands.ErrBookUnavailable)
	})

	t.Run("count at policy maximum is rejected", func(t *testing.T) {
		f := newCommandsFixture(t)
		userSnap := builder.NewUserBuilder().WithClassification("student").BuildSnapshot()
		bookSnap := builder.NewBookBuilder().BuildSnapshot()

		f.userRepo.EXPECT().FindByID(ctx, userSnap.ID).Return(userSnap, nil)
		f.bookRepo.EXPECT().FindByID(ctx, bookSnap.ID).Return(bookSnap, nil)
		f.reservationRepo.EXPECT().CountActiveByUser(ctx, userSnap.ID).Return(5, nil)

		_, err := f.commands.Reserve(ctx, userSnap.ID, bookSnap.ID)
		assert.ErrorIs(t, err, commands.ErrReservationLimitExceeded)

		var limitErr *commands.LimitExceededError
		require.ErrorAs(t, err, &limitErr)
		assert.Equal(t, 5, limitErr.Max)
	})

	t.Run("unregistered classification is rejected before create", func(t *testing.T) {
		f := newCommandsFixture(t)
		userSnap := builder.NewUserBuilder().WithClassification("faculty").BuildSnapshot()
		bookSnap := builder.NewBookBuilder().BuildSnapshot()

		f.userRepo.EXPECT().FindByID(ctx, userSnap.ID).Return(userSnap, nil)
		f.bookRepo.EXPECT().FindByID(ctx, bookSnap.ID).Return(bookSnap, nil)
		f.reservationRepo.EXPECT().CountActiveByUser(ctx, userSnap.ID).Return(0, nil)

		_, err := f.commands.Reserve(ctx, userSnap.ID, bookSnap.ID)
		assert.ErrorIs(t, err, commands.ErrUnknownClassification)
	})

	t.Run("decrement failure after create is reported, not fatal", func(t *testing.T) {
		f := newCommandsFixture(t)
		userSnap := builder.NewUserBuilder().WithClassification("normal").BuildSnapshot()
		bookSnap := builder.NewBookBuilder().WithCopies(2, 1).BuildSnapshot()
		createdID := uuid.New()

		f.userRepo.EXPECT().FindByID(ctx, userSnap.ID).Return(userSnap, nil)
		f.bookRepo.EXPECT().FindByID(ctx, bookSnap.ID).Return(bookSnap, nil)
		f.reservationRepo.EXPECT().CountActiveByUser(ctx, userSnap.ID).Return(0, nil)
		f.reservationRepo.EXPECT().Create(ctx, gomock.Any()).Return(createdID, nil)
		f.bookRepo.EXPECT().UpdateAvailableCopies(ctx, bookSnap.ID, 0).
			Return(infra.WrapRepoErr("update failed", errors.New("connection reset")))

		result, err := f.commands.Reserve(ctx, userSnap.ID, bookSnap.ID)
		require.NoError(t, err)
		require.NotNil(t, result.Reservation)

		assert.True(t, result.AvailabilityStale())
		assert.ErrorIs(t, result.AvailabilityErr, commands.ErrDatabaseOperationFailed)
		assert.Equal(t, createdID, result.Reservation.ID)
	})

	t.Run("user not found", func(t *testing.T) {
		f := newCommandsFixture(t)
		userID := uuid.New()

		f.userRepo.EXPECT().FindByID(ctx, userID).Return(nil, notFoundErr())

		_, err := f.commands.Reserve(ctx, userID, uuid.New())
		assert.ErrorIs(t, err, commands.ErrUserNotFound)
	})
}

func TestReservationCommands_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cancels an active reservation", func(t *testing.T) {
		f := newCommandsFixture(t)
		snap := builder.NewReservationBuilder().BuildSnapshot()

		f.reservationRepo.EXPECT().FindByID(ctx, snap.ID).Return(snap, nil)
		f.reservationRepo.EXPECT().UpdateStatus(ctx, snap.ID, reservation.StatusCancelled).Return(nil)
		// No book repo call: cancellation never restores available copies.

		cancelled, err := f.commands.Cancel(ctx, snap.UserID, snap.ID)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusCancelled, cancelled.Status)
		assert.Equal(t, snap.ID, cancelled.ID)
	})

	t.Run("not found", func(t *testing.T) {
		f := newCommandsFixture(t)
		id := uuid.New()

		f.reservationRepo.EXPECT().FindByID(ctx, id).Return(nil, notFoundErr())

		_, err := f.commands.Cancel(ctx, uuid.New(), id)
		assert.ErrorIs(t, err, commands.ErrReservationNotFound)
	})

	t.Run("non-owner is denied", func(t *testing.T) {
		f := newCommandsFixture(t)
		snap := builder.NewReservationBuilder().BuildSnapshot()

		f.reservationRepo.EXPECT().FindByID(ctx, snap.ID).Return(snap, nil)

		_, err := f.commands.Cancel(ctx, uuid.New(), snap.ID)
		assert.ErrorIs(t, err, commands.ErrReservationAccessDenied)
	})

	t.Run("terminal states cannot be cancelled", func(t *testing.T) {
		for _, status := range []reservation.Status{reservation.StatusCompleted, reservation.StatusCancelled} {
			f := newCommandsFixture(t)
			snap := builder.NewReservationBuilder().WithStatus(status).BuildSnapshot()

			f.reservationRepo.EXPECT().FindByID(ctx, snap.ID).Return(snap, nil)

			_, err := f.commands.Cancel(ctx, snap.UserID, snap.ID)
			assert.ErrorIs(t, err, commands.ErrInvalidStateTransition)
		}
	})
}

func TestReservationCommands_ExpireOverdue(t *testing.T) {
	ctx := context.Background()

	t.Run("completes overdue reservations and restores copies", func(t *testing.T) {
		f := newCommandsFixture(t)
		first := builder.NewReservationBuilder().BuildSnapshot()
		second := builder.NewReservationBuilder().BuildSnapshot()
		bookSnap := builder.NewBookBuilder().WithCopies(3, 1).BuildSnapshot()
		first.BookID = bookSnap.ID

		f.reservationRepo.EXPECT().FindActiveExpiredBefore(ctx, fixedNow).
			Return([]*commands.ReservationSnapshot{first, second}, nil)

		f.reservationRepo.EXPECT().UpdateStatus(ctx, first.ID, reservation.StatusCompleted).Return(nil)
		f.bookRepo.EXPECT().FindByID(ctx, bookSnap.ID).Return(bookSnap, nil)
		f.bookRepo.EXPECT().UpdateAvailableCopies(ctx, bookSnap.ID, 2).Return(nil)

		// One bad row must not stall the sweep.
		f.reservationRepo.EXPECT().UpdateStatus(ctx, second.ID, reservation.StatusCompleted).
			Return(infra.WrapRepoErr("update failed", errors.New("deadlock")))

		completed, err := f.commands.ExpireOverdue(ctx, fixedNow)
		require.NoError(t, err)
		assert.Equal(t, 1, completed)
	})

	t.Run("already full book is left alone", func(t *testing.T) {
		f := newCommandsFixture(t)
		snap := builder.NewReservationBuilder().BuildSnapshot()
		bookSnap := builder.NewBookBuilder().WithCopies(2, 2).BuildSnapshot()
		snap.BookID = bookSnap.ID

		f.reservationRepo.EXPECT().FindActiveExpiredBefore(ctx, fixedNow).
			Return([]*commands.ReservationSnapshot{snap}, nil)
		f.reservationRepo.EXPECT().UpdateStatus(ctx, snap.ID, reservation.StatusCompleted).Return(nil)
		f.bookRepo.EXPECT().FindByID(ctx, bookSnap.ID).Return(bookSnap, nil)

		completed, err := f.commands.ExpireOverdue(ctx, fixedNow)
		require.NoError(t, err)
		assert.Equal(t, 1, completed)
	})

	t.Run("nothing overdue", func(t *testing.T) {
		f := newCommandsFixture(t)

		f.reservationRepo.EXPECT().FindActiveExpiredBefore(ctx, fixedNow).
			Return(nil, nil)

		completed, err := f.commands.ExpireOverdue(ctx, fixedNow)
		require.NoError(t, err)
		assert.Equal(t, 0, completed)
	})
}
