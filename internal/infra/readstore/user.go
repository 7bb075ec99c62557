package readstore

import (
	"context"

	"libreserve/internal/infra"
	"libreserve/internal/infra/db"
	"libreserve/internal/pkg/pgconv"
	"libreserve/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(db db.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	sqlStr, args, err := dialect.From("users").Prepared(true).
		Select("id", "email", "display_name", "classification", "is_active").
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build user view select", err)
	}

	var view queries.AuthorizedUserView
	err = r.db.QueryRow(ctx, sqlStr, args...).Scan(
		&view.ID, &view.Email, &view.DisplayName, &view.Classification, &view.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	return &view, nil
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	sqlStr, args, err := dialect.From("users").Prepared(true).
		Select("id", "email", "display_name", "classification", "is_active", "password_hash").
		Where(goqu.C("email").Eq(email)).
		ToSQL()
	if err != nil {
		return nil, "", infra.WrapRepoErr("failed to build user email select", err)
	}

	var view queries.AuthorizedUserView
	var passwordHash string
	err = r.db.QueryRow(ctx, sqlStr, args...).Scan(
		&view.ID, &view.Email, &view.DisplayName, &view.Classification, &view.IsActive, &passwordHash,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}

	return &view, passwordHash, nil
}
