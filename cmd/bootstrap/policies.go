package bootstrap

import (
	"libreserve/internal/domain/policy"
	"libreserve/internal/domain/user"

	"go.uber.org/fx"
)

var PolicyModule = fx.Module("policy",
	fx.Provide(
		NewPolicyRegistry,
		policy.NewEvaluator,
		policy.NewExpiryCalculator,
	),
)

// NewPolicyRegistry seeds the built-in membership policies. Registration
// only happens here, before the server starts taking requests.
func NewPolicyRegistry() (*policy.Registry, error) {
	registry := policy.NewRegistry()

	seeds := []struct {
		classification  user.Classification
		maxReservations int
		loanDays        int
	}{
		{user.ClassificationStudent, 5, 14},
		{user.ClassificationNormal, 3, 7},
	}

	for _, s := range seeds {
		p, err := policy.NewPolicy(s.classification, s.maxReservations, s.loanDays)
		if err != nil {
			return nil, err
		}
		registry.Register(s.classification, p)
	}

	return registry, nil
}
