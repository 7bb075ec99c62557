package response

import (
	"libreserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type ProfileStatsResponse struct {
	UserID             uuid.UUID `json:"userId"`
	Classification     string    `json:"classification"`
	ActiveReservations int       `json:"activeReservations"`
	MaxReservations    int       `json:"maxReservations"`
	LoanDurationDays   int       `json:"loanDurationDays"`
	CanReserve         bool      `json:"canReserve"`
}

func FromProfileStatsView(rm *queries.ProfileStatsView) *ProfileStatsResponse {
	return &ProfileStatsResponse{
		UserID:             rm.UserID,
		Classification:     rm.Classification,
		ActiveReservations: rm.ActiveReservations,
		MaxReservations:    rm.MaxReservations,
		LoanDurationDays:   rm.LoanDurationDays,
		CanReserve:         rm.CanReserve,
	}
}
