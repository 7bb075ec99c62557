//go:build unit

package policy_test

import (
	"testing"

	"libreserve/internal/domain/policy"
	"libreserve/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRegistry(t *testing.T) *policy.Registry {
	t.Helper()

	registry := policy.NewRegistry()

	student, err := policy.NewPolicy(user.ClassificationStudent, 5, 14)
	require.NoError(t, err)
	registry.Register(user.ClassificationStudent, student)

	normal, err := policy.NewPolicy(user.ClassificationNormal, 3, 7)
	require.NoError(t, err)
	registry.Register(user.ClassificationNormal, normal)

	return registry
}

func TestRegistry_Resolve(t *testing.T) {
	registry := seedRegistry(t)

	t.Run("returns the registered policy", func(t *testing.T) {
		p, err := registry.Resolve(user.ClassificationStudent)
		require.NoError(t, err)
		assert.Equal(t, user.ClassificationStudent, p.Classification)
		assert.Equal(t, 5, p.MaxReservations)
		assert.Equal(t, 14, p.LoanDays)
	})

	t.Run("unknown classification is a hard error", func(t *testing.T) {
		_, err := registry.Resolve(user.Classification("faculty"))
		assert.ErrorIs(t, err, policy.ErrUnknownClassification)
	})

	t.Run("resolution is exact, no prefix or case folding", func(t *testing.T) {
		_, err := registry.Resolve(user.Classification("Student"))
		assert.ErrorIs(t, err, policy.ErrUnknownClassification)
	})
}

func TestRegistry_Register(t *testing.T) {
	t.Run("later registration replaces the earlier one", func(t *testing.T) {
		registry := seedRegistry(t)

		replacement, err := policy.NewPolicy(user.ClassificationStudent, 10, 30)
		require.NoError(t, err)
		registry.Register(user.ClassificationStudent, replacement)

		p, err := registry.Resolve(user.ClassificationStudent)
		require.NoError(t, err)
		assert.Equal(t, 10, p.MaxReservations)
		assert.Equal(t, 30, p.LoanDays)
	})

	t.Run("custom classifications register like built-in ones", func(t *testing.T) {
		registry := seedRegistry(t)

		premium, err := policy.NewPolicy(user.Classification("premium"), 8, 21)
		require.NoError(t, err)
		registry.Register(user.Classification("premium"), premium)

		p, err := registry.Resolve(user.Classification("premium"))
		require.NoError(t, err)
		assert.Equal(t, 8, p.MaxReservations)
		assert.Len(t, registry.Classifications(), 3)
	})
}

func TestNewPolicy(t *testing.T) {
	tests := []struct {
		name            string
		classification  user.Classification
		maxReservations int
		loanDays        int
		errIs           error
	}{
		{
			name:            "valid policy",
			classification:  user.ClassificationStudent,
			maxReservations: 5,
			loanDays:        14,
		},
		{
			name:            "empty classification",
			classification:  "",
			maxReservations: 5,
			loanDays:        14,
			errIs:           user.ErrInvalidClassification,
		},
		{
			name:            "zero max reservations",
			classification:  user.ClassificationNormal,
			maxReservations: 0,
			loanDays:        7,
			errIs:           policy.ErrInvalidMaxReservations,
		},
		{
			name:            "negative loan days",
			classification:  user.ClassificationNormal,
			maxReservations: 3,
			loanDays:        -1,
			errIs:           policy.ErrInvalidLoanDays,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := policy.NewPolicy(tt.classification, tt.maxReservations, tt.loanDays)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.True(t, p.Active)
		})
	}
}
