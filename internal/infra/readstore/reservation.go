package readstore

import (
	"context"

	"libreserve/internal/domain/reservation"
	"libreserve/internal/infra"
	"libreserve/internal/infra/db"
	"libreserve/internal/pkg/pgconv"
	"libreserve/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/google/uuid"
)

var dialect = goqu.Dialect("postgres")

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(db db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: db}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	sqlStr, args, err := dialect.From(goqu.T("reservations").As("r")).Prepared(true).
		Select(
			goqu.I("r.id"), goqu.I("r.book_id"), goqu.I("b.title"),
			goqu.I("r.user_id"), goqu.I("u.email"),
			goqu.I("r.status"), goqu.I("r.expires_at"), goqu.I("r.created_at"), goqu.I("r.updated_at"),
		).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("r.book_id")))).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("r.user_id")))).
		Where(goqu.I("r.id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build reservation view select", err)
	}

	var view queries.ReservationView
	err = r.db.QueryRow(ctx, sqlStr, args...).Scan(
		&view.ID, &view.BookID, &view.BookTitle,
		&view.UserID, &view.UserEmail,
		&view.Status, &view.ExpiresAt, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	return &view, nil
}

func (r *ReservationReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.ReservationListItem, error) {
	sqlStr, args, err := dialect.From(goqu.T("reservations").As("r")).Prepared(true).
		Select(
			goqu.I("r.id"), goqu.I("r.book_id"), goqu.I("b.title"),
			goqu.I("r.status"), goqu.I("r.expires_at"), goqu.I("r.created_at"),
		).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("r.book_id")))).
		Where(goqu.I("r.user_id").Eq(userID)).
		Order(goqu.I("r.created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build reservation list select", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations by user", err)
	}
	defer rows.Close()

	result := make([]*queries.ReservationListItem, 0)
	for rows.Next() {
		var item queries.ReservationListItem
		if scanErr := rows.Scan(
			&item.ID, &item.BookID, &item.BookTitle,
			&item.Status, &item.ExpiresAt, &item.CreatedAt,
		); scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation list item", scanErr)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation list", err)
	}

	return result, nil
}

func (r *ReservationReadStore) CountActiveByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	sqlStr, args, err := dialect.From("reservations").Prepared(true).
		Select(goqu.COUNT("*")).
		Where(
			goqu.C("user_id").Eq(userID),
			goqu.C("status").Eq(reservation.StatusActive.String()),
		).
		ToSQL()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build active reservation count", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count active reservations", err)
	}

	return count, nil
}
