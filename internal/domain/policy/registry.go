package policy

import (
	"libreserve/internal/pkg/errs"

	"libreserve/internal/domain/user"
)

// Registry maps a user classification to its reservation policy. One entry
// per key; a later Register for the same classification replaces the
// earlier one. Registrations happen during bootstrap, before lookups
// start, so the map is not guarded.
type Registry struct {
	policies map[user.Classification]Policy
}

func NewRegistry() *Registry {
	return &Registry{
		policies: make(map[user.Classification]Policy),
	}
}

func (r *Registry) Register(classification user.Classification, p Policy) {
	p.Classification = classification
	r.policies[classification] = p
}

// Resolve returns the policy for the exact classification string. A miss
// is a hard error: an unrecognized classification means bad data or config
// upstream, never something to default silently.
func (r *Registry) Resolve(classification user.Classification) (Policy, error) {
	p, ok := r.policies[classification]
	if !ok {
		return Policy{}, errs.Mark(
			errs.New("no policy registered for classification "+classification.String()),
			ErrUnknownClassification,
		)
	}
	return p, nil
}

func (r *Registry) Classifications() []user.Classification {
	out := make([]user.Classification, 0, len(r.policies))
	for c := range r.policies {
		out = append(out, c)
	}
	return out
}
