package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User entity. Issued by the auth collaborator and immutable for the
// duration of a session.
type User struct {
	id             uuid.UUID
	email          Email
	displayName    string
	passwordHash   string
	classification Classification
	isActive       bool
	createdAt      time.Time
	updatedAt      time.Time
}

func NewUser(email Email, displayName, passwordHash string, classification Classification) (*User, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, ErrEmptyDisplayName
	}
	if classification == "" {
		return nil, ErrInvalidClassification
	}

	return &User{
		id:             uuid.New(),
		email:          email,
		displayName:    displayName,
		passwordHash:   passwordHash,
		classification: classification,
		isActive:       true,
	}, nil
}

func ReconstructUser(
	id uuid.UUID,
	email Email,
	displayName, passwordHash string,
	classification Classification,
	isActive bool,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:             id,
		email:          email,
		displayName:    displayName,
		passwordHash:   passwordHash,
		classification: classification,
		isActive:       isActive,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (u *User) ID() uuid.UUID                  { return u.id }
func (u *User) Email() Email                   { return u.email }
func (u *User) DisplayName() string            { return u.displayName }
func (u *User) PasswordHash() string           { return u.passwordHash }
func (u *User) Classification() Classification { return u.classification }
func (u *User) IsActive() bool                 { return u.isActive }
func (u *User) CreatedAt() time.Time           { return u.createdAt }
func (u *User) UpdatedAt() time.Time           { return u.updatedAt }
