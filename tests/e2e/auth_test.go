//go:build e2e

package e2e

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

type authSuite struct {
	SharedSuite
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(authSuite))
}

func (s *authSuite) TestLogin() {
	s.CreateUser("reader@example.com", "normal")

	s.Run("valid credentials return a token and the user", func() {
		w := s.DoJSON(http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "reader@example.com",
			"password": DefaultPassword,
		}, "")
		s.Require().Equal(http.StatusOK, w.Code)

		var resp struct {
			AccessToken string `json:"access_token"`
			User        struct {
				Email          string `json:"email"`
				Classification string `json:"classification"`
			} `json:"user"`
		}
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.NotEmpty(resp.AccessToken)
		s.Equal("reader@example.com", resp.User.Email)
		s.Equal("normal", resp.User.Classification)
	})

	s.Run("wrong password is rejected", func() {
		w := s.DoJSON(http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "reader@example.com",
			"password": "wrongpassword",
		}, "")
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("unknown email gets the same rejection", func() {
		w := s.DoJSON(http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "nobody@example.com",
			"password": DefaultPassword,
		}, "")
		s.Equal(http.StatusUnauthorized, w.Code)
	})
}

func (s *authSuite) TestMe() {
	s.CreateUser("me@example.com", "student")
	token := s.Login("me@example.com")

	w := s.DoJSON(http.MethodGet, "/api/auth/me", nil, token)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "me@example.com")

	w = s.DoJSON(http.MethodGet, "/api/auth/me", nil, "")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *authSuite) TestPublicCatalog() {
	bookID := s.CreateBook("Open Shelf", 4, 4)

	s.Run("listing needs no auth", func() {
		w := s.DoJSON(http.MethodGet, "/api/books", nil, "")
		s.Require().Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), "Open Shelf")
	})

	s.Run("detail shows copy counts", func() {
		w := s.DoJSON(http.MethodGet, "/api/books/"+bookID.String(), nil, "")
		s.Require().Equal(http.StatusOK, w.Code)

		var resp struct {
			TotalCopies     int  `json:"totalCopies"`
			AvailableCopies int  `json:"availableCopies"`
			Available       bool `json:"available"`
		}
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.Equal(4, resp.TotalCopies)
		s.Equal(4, resp.AvailableCopies)
		s.True(resp.Available)
	})

	s.Run("health endpoint responds", func() {
		w := s.DoJSON(http.MethodGet, "/health", nil, "")
		s.Equal(http.StatusOK, w.Code)
	})
}
