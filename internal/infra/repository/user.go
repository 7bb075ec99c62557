package repository

import (
	"context"

	"libreserve/internal/infra"
	"libreserve/internal/infra/db"
	"libreserve/internal/pkg/pgconv"
	"libreserve/internal/usecase/commands"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const usersTable = "users"

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(db db.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.UserSnapshot, error) {
	sqlStr, args, err := dialect.From(usersTable).Prepared(true).
		Select("id", "email", "display_name", "classification", "is_active").
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build user select", err)
	}

	var snap commands.UserSnapshot
	err = r.db.QueryRow(ctx, sqlStr, args...).Scan(
		&snap.ID, &snap.Email, &snap.DisplayName, &snap.Classification, &snap.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	return &snap, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	sqlStr, args, err := dialect.Update(usersTable).Prepared(true).
		Set(goqu.Record{"last_login": goqu.L("now()")}).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build last login update", err)
	}

	if _, err := r.db.Exec(ctx, sqlStr, args...); err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}

	return nil
}
