//go:build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type reservationSuite struct {
	SharedSuite
}

func TestReservationSuite(t *testing.T) {
	suite.Run(t, new(reservationSuite))
}

func (s *reservationSuite) TestReservationLifecycle() {
	s.CreateUser("student@example.com", "student")
	token := s.Login("student@example.com")
	bookID := s.CreateBook("Clean Architecture", 2, 2)

	var reservationID string

	s.Run("reserving decrements availability", func() {
		w := s.DoJSON(http.MethodPost, "/api/reservations", map[string]any{
			"book_id": bookID.String(),
		}, token)
		s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

		var resp struct {
			ID        string `json:"id"`
			Status    string `json:"status"`
			ExpiresAt string `json:"expiresAt"`
		}
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.Equal("active", resp.Status)
		s.NotEmpty(resp.ExpiresAt)
		reservationID = resp.ID

		s.Equal(1, s.AvailableCopies(bookID))
	})

	s.Run("owner can fetch the reservation", func() {
		w := s.DoJSON(http.MethodGet, "/api/reservations/"+reservationID, nil, token)
		s.Require().Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), "Clean Architecture")
	})

	s.Run("reservation appears in the user's list", func() {
		w := s.DoJSON(http.MethodGet, "/api/reservations", nil, token)
		s.Require().Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), reservationID)
	})

	s.Run("profile stats count the active reservation", func() {
		w := s.DoJSON(http.MethodGet, "/api/profile/stats", nil, token)
		s.Require().Equal(http.StatusOK, w.Code)

		var stats struct {
			ActiveReservations int  `json:"activeReservations"`
			MaxReservations    int  `json:"maxReservations"`
			LoanDurationDays   int  `json:"loanDurationDays"`
			CanReserve         bool `json:"canReserve"`
		}
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &stats))
		s.Equal(1, stats.ActiveReservations)
		s.Equal(5, stats.MaxReservations)
		s.Equal(14, stats.LoanDurationDays)
		s.True(stats.CanReserve)
	})

	s.Run("cancel does not restore availability", func() {
		w := s.DoJSON(http.MethodPost, "/api/reservations/"+reservationID+"/cancel", nil, token)
		s.Require().Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), "cancelled")

		s.Equal(1, s.AvailableCopies(bookID))
	})

	s.Run("cancelling twice is a conflict", func() {
		w := s.DoJSON(http.MethodPost, "/api/reservations/"+reservationID+"/cancel", nil, token)
		s.Equal(http.StatusConflict, w.Code)
	})
}

func (s *reservationSuite) TestReservationLimit() {
	s.CreateUser("normal@example.com", "normal")
	token := s.Login("normal@example.com")

	// The normal policy allows three concurrent reservations.
	for i := range 3 {
		bookID := s.CreateBook(fmt.Sprintf("Limit Book %d", i), 1, 1)
		w := s.DoJSON(http.MethodPost, "/api/reservations", map[string]any{
			"book_id": bookID.String(),
		}, token)
		s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	}

	extraBook := s.CreateBook("One Too Many", 1, 1)
	w := s.DoJSON(http.MethodPost, "/api/reservations", map[string]any{
		"book_id": extraBook.String(),
	}, token)
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Contains(w.Body.String(), "limit of 3")
}

func (s *reservationSuite) TestUnavailableBook() {
	s.CreateUser("walkin@example.com", "normal")
	token := s.Login("walkin@example.com")
	bookID := s.CreateBook("Out Of Stock", 3, 0)

	w := s.DoJSON(http.MethodPost, "/api/reservations", map[string]any{
		"book_id": bookID.String(),
	}, token)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *reservationSuite) TestOwnershipIsolation() {
	s.CreateUser("alice@example.com", "student")
	s.CreateUser("bob@example.com", "student")
	aliceToken := s.Login("alice@example.com")
	bobToken := s.Login("bob@example.com")
	bookID := s.CreateBook("Private Reading", 1, 1)

	w := s.DoJSON(http.MethodPost, "/api/reservations", map[string]any{
		"book_id": bookID.String(),
	}, aliceToken)
	s.Require().Equal(http.StatusCreated, w.Code)

	var resp struct {
		ID string `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))

	w = s.DoJSON(http.MethodGet, "/api/reservations/"+resp.ID, nil, bobToken)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.DoJSON(http.MethodPost, "/api/reservations/"+resp.ID+"/cancel", nil, bobToken)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *reservationSuite) TestUnauthenticatedAccess() {
	w := s.DoJSON(http.MethodPost, "/api/reservations", map[string]any{
		"book_id": uuid.New().String(),
	}, "")
	s.Equal(http.StatusUnauthorized, w.Code)
}
