package repository

import (
	"context"
	"time"

	"libreserve/internal/domain/reservation"
	"libreserve/internal/infra"
	"libreserve/internal/infra/db"
	"libreserve/internal/pkg/pgconv"
	"libreserve/internal/usecase/commands"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/google/uuid"
)

var dialect = goqu.Dialect("postgres")

const reservationsTable = "reservations"

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(db db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	sqlStr, args, err := dialect.Insert(reservationsTable).Prepared(true).
		Rows(goqu.Record{
			"id":         res.ID(),
			"user_id":    res.UserID(),
			"book_id":    res.BookID(),
			"status":     res.Status().String(),
			"expires_at": res.ExpiresAt(),
		}).
		Returning("id").
		ToSQL()
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to build reservation insert", err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		if pgconv.IsConstraintViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("reservation violates constraint", err, infra.KindConstraintViolated)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}

	return id, nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.ReservationSnapshot, error) {
	sqlStr, args, err := dialect.From(reservationsTable).Prepared(true).
		Select("id", "user_id", "book_id", "status", "expires_at", "created_at").
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build reservation select", err)
	}

	snap, err := r.scanSnapshot(r.db.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	return snap, nil
}

func (r *ReservationRepository) CountActiveByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	sqlStr, args, err := dialect.From(reservationsTable).Prepared(true).
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

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status) error {
	sqlStr, args, err := dialect.Update(reservationsTable).Prepared(true).
		Set(goqu.Record{
			"status":     status.String(),
			"updated_at": goqu.L("now()"),
		}).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build reservation status update", err)
	}

	tag, err := r.db.Exec(ctx, sqlStr, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}

	return nil
}

func (r *ReservationRepository) FindActiveExpiredBefore(ctx context.Context, before time.Time) ([]*commands.ReservationSnapshot, error) {
	sqlStr, args, err := dialect.From(reservationsTable).Prepared(true).
		Select("id", "user_id", "book_id", "status", "expires_at", "created_at").
		Where(
			goqu.C("status").Eq(reservation.StatusActive.String()),
			goqu.C("expires_at").Lt(before),
		).
		Order(goqu.C("expires_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build expired reservation select", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find expired reservations", err)
	}
	defer rows.Close()

	var result []*commands.ReservationSnapshot
	for rows.Next() {
		snap, scanErr := r.scanSnapshot(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan expired reservation", scanErr)
		}
		result = append(result, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read expired reservations", err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ReservationRepository) scanSnapshot(row rowScanner) (*commands.ReservationSnapshot, error) {
	var snap commands.ReservationSnapshot
	var status string
	if err := row.Scan(&snap.ID, &snap.UserID, &snap.BookID, &status, &snap.ExpiresAt, &snap.CreatedAt); err != nil {
		return nil, err
	}
	snap.Status = reservation.Status(status)
	return &snap, nil
}
