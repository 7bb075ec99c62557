//go:build unit || e2e

package builder

import (
	"libreserve/internal/domain/user"
	"libreserve/internal/usecase/commands"
	"libreserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID             uuid.UUID
	Email          string
	DisplayName    string
	PasswordHash   string
	Classification string
	IsActive       bool
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:             uuid.New(),
		Email:          "test@example.com",
		DisplayName:    "Test User",
		PasswordHash:   "hashed_password",
		Classification: "student",
		IsActive:       true,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

func (u *UserBuilder) WithClassification(classification string) *UserBuilder {
	u.Classification = classification
	return u
}

func (u *UserBuilder) WithInactive() *UserBuilder {
	u.IsActive = false
	return u
}

// Build methods

func (u *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}
	classification, err := user.NewClassification(u.Classification)
	if err != nil {
		return nil, err
	}
	entity, err := user.NewUser(email, u.DisplayName, u.PasswordHash, classification)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (u *UserBuilder) BuildSnapshot() *commands.UserSnapshot {
	return &commands.UserSnapshot{
		ID:             u.ID,
		Email:          u.Email,
		DisplayName:    u.DisplayName,
		Classification: u.Classification,
		IsActive:       u.IsActive,
	}
}

func (u *UserBuilder) BuildReadModel() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:             u.ID,
		Email:          u.Email,
		DisplayName:    u.DisplayName,
		Classification: u.Classification,
		IsActive:       u.IsActive,
	}
}
