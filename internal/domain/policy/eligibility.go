package policy

import (
	"libreserve/internal/domain/user"
)

// Evaluator decides reservation admission. It does not count reservations
// itself; the caller supplies the current active count from the store.
type Evaluator struct {
	registry *Registry
}

func NewEvaluator(registry *Registry) *Evaluator {
	return &Evaluator{registry: registry}
}

// CanReserve is true iff activeCount is strictly below the policy's
// maximum. A count equal to the maximum is not eligible.
func (e *Evaluator) CanReserve(u *user.User, activeCount int) (bool, error) {
	p, err := e.registry.Resolve(u.Classification())
	if err != nil {
		return false, err
	}
	return activeCount < p.MaxReservations, nil
}

func (e *Evaluator) MaxReservations(classification user.Classification) (int, error) {
	p, err := e.registry.Resolve(classification)
	if err != nil {
		return 0, err
	}
	return p.MaxReservations, nil
}

func (e *Evaluator) LoanDurationDays(classification user.Classification) (int, error) {
	p, err := e.registry.Resolve(classification)
	if err != nil {
		return 0, err
	}
	return p.LoanDays, nil
}
