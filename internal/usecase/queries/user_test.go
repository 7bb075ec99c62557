//go:build unit

package queries_test

import (
	"context"
	"testing"

	"libreserve/internal/domain/policy"
	"libreserve/internal/domain/user"
	"libreserve/internal/usecase/queries"
	"libreserve/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserReadStore struct {
	view *queries.AuthorizedUserView
	err  error
}

func (s *stubUserReadStore) FindByID(_ context.Context, _ uuid.UUID) (*queries.AuthorizedUserView, error) {
	return s.view, s.err
}

func (s *stubUserReadStore) FindByEmail(_ context.Context, _ string) (*queries.AuthorizedUserView, string, error) {
	return s.view, "", s.err
}

type stubReservationReadStore struct {
	activeCount int
}

func (s *stubReservationReadStore) FindByID(_ context.Context, _ uuid.UUID) (*queries.ReservationView, error) {
	return nil, nil
}

func (s *stubReservationReadStore) FindByUserID(_ context.Context, _ uuid.UUID) ([]*queries.ReservationListItem, error) {
	return nil, nil
}

func (s *stubReservationReadStore) CountActiveByUser(_ context.Context, _ uuid.UUID) (int, error) {
	return s.activeCount, nil
}

func newEvaluator(t *testing.T) *policy.Evaluator {
	t.Helper()

	registry := policy.NewRegistry()
	student, err := policy.NewPolicy(user.ClassificationStudent, 5, 14)
	require.NoError(t, err)
	registry.Register(user.ClassificationStudent, student)
	return policy.NewEvaluator(registry)
}

func TestUserQueries_GetProfileStats(t *testing.T) {
	ctx := context.Background()

	t.Run("combines count and policy limits", func(t *testing.T) {
		view := builder.NewUserBuilder().WithClassification("student").BuildReadModel()
		q := queries.NewUserQueries(
			&stubUserReadStore{view: view},
			&stubReservationReadStore{activeCount: 2},
			newEvaluator(t),
		)

		stats, err := q.GetProfileStats(ctx, view.ID)
		require.NoError(t, err)

		want := &queries.ProfileStatsView{
			UserID:             view.ID,
			Classification:     "student",
			ActiveReservations: 2,
			MaxReservations:    5,
			LoanDurationDays:   14,
			CanReserve:         true,
		}
		if diff := cmp.Diff(want, stats); diff != "" {
			t.Errorf("profile stats mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("at the limit can_reserve turns false", func(t *testing.T) {
		view := builder.NewUserBuilder().WithClassification("student").BuildReadModel()
		q := queries.NewUserQueries(
			&stubUserReadStore{view: view},
			&stubReservationReadStore{activeCount: 5},
			newEvaluator(t),
		)

		stats, err := q.GetProfileStats(ctx, view.ID)
		require.NoError(t, err)
		assert.False(t, stats.CanReserve)
		assert.Equal(t, 5, stats.ActiveReservations)
	})

	t.Run("unregistered classification surfaces the policy error", func(t *testing.T) {
		view := builder.NewUserBuilder().WithClassification("faculty").BuildReadModel()
		q := queries.NewUserQueries(
			&stubUserReadStore{view: view},
			&stubReservationReadStore{},
			newEvaluator(t),
		)

		_, err := q.GetProfileStats(ctx, view.ID)
		assert.ErrorIs(t, err, policy.ErrUnknownClassification)
	})

	t.Run("inactive user", func(t *testing.T) {
		view := builder.NewUserBuilder().WithInactive().BuildReadModel()
		q := queries.NewUserQueries(
			&stubUserReadStore{view: view},
			&stubReservationReadStore{},
			newEvaluator(t),
		)

		_, err := q.GetProfileStats(ctx, view.ID)
		assert.ErrorIs(t, err, queries.ErrUserInactive)
	})
}
