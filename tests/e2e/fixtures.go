//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"libreserve/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const DefaultPassword = "password123"

func (s *SharedSuite) CreateUser(email, classification string) uuid.UUID {
	s.T().Helper()

	hash, err := password.HashPassword(DefaultPassword)
	require.NoError(s.T(), err)

	var id uuid.UUID
	err = s.Pool.QueryRow(s.T().Context(),
		`INSERT INTO users (email, display_name, password_hash, classification)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		email, "E2E User", hash, classification,
	).Scan(&id)
	require.NoError(s.T(), err)
	return id
}

func (s *SharedSuite) CreateBook(title string, total, available int) uuid.UUID {
	s.T().Helper()

	var id uuid.UUID
	err := s.Pool.QueryRow(s.T().Context(),
		`INSERT INTO books (title, author, total_copies, available_copies)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		title, "E2E Author", total, available,
	).Scan(&id)
	require.NoError(s.T(), err)
	return id
}

func (s *SharedSuite) AvailableCopies(bookID uuid.UUID) int {
	s.T().Helper()

	var available int
	err := s.Pool.QueryRow(s.T().Context(),
		"SELECT available_copies FROM books WHERE id = $1", bookID,
	).Scan(&available)
	require.NoError(s.T(), err)
	return available
}

// Login authenticates through the real endpoint and returns the access token.
func (s *SharedSuite) Login(email string) string {
	s.T().Helper()

	w := s.DoJSON(http.MethodPost, "/api/auth/login", map[string]any{
		"email":    email,
		"password": DefaultPassword,
	}, "")
	require.Equal(s.T(), http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(s.T(), resp.AccessToken)
	return resp.AccessToken
}

func (s *SharedSuite) DoJSON(method, url string, body any, token string) *httptest.ResponseRecorder {
	s.T().Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}
