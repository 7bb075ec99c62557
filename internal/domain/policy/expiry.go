package policy

import (
	"time"

	"libreserve/internal/domain/user"
)

// ExpiryCalculator computes the instant a new reservation expires. The
// caller passes now explicitly; there are no wall-clock reads here.
type ExpiryCalculator struct {
	registry *Registry
}

func NewExpiryCalculator(registry *Registry) *ExpiryCalculator {
	return &ExpiryCalculator{registry: registry}
}

// ComputeExpiry returns now plus the classification's loan duration in
// calendar days. AddDate carries month, year and leap-day boundaries.
func (c *ExpiryCalculator) ComputeExpiry(classification user.Classification, now time.Time) (time.Time, error) {
	p, err := c.registry.Resolve(classification)
	if err != nil {
		return time.Time{}, err
	}
	return now.AddDate(0, 0, p.LoanDays), nil
}
