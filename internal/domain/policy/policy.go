package policy

import (
	"errors"

	"libreserve/internal/domain/user"
)

var (
	ErrUnknownClassification  = errors.New("unknown classification")
	ErrInvalidMaxReservations = errors.New("max reservations must be positive")
	ErrInvalidLoanDays        = errors.New("loan duration days must be positive")
)

// Policy is the reservation rule set bound to exactly one user
// classification. Policies are plain data; classifications differ only in
// these two numbers and the active flag.
type Policy struct {
	Classification  user.Classification
	MaxReservations int
	LoanDays        int
	Active          bool
}

func NewPolicy(classification user.Classification, maxReservations, loanDays int) (Policy, error) {
	if classification == "" {
		return Policy{}, user.ErrInvalidClassification
	}
	if maxReservations <= 0 {
		return Policy{}, ErrInvalidMaxReservations
	}
	if loanDays <= 0 {
		return Policy{}, ErrInvalidLoanDays
	}

	return Policy{
		Classification:  classification,
		MaxReservations: maxReservations,
		LoanDays:        loanDays,
		Active:          true,
	}, nil
}
