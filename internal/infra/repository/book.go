package repository

import (
	"context"

	"libreserve/internal/domain/book"
	"libreserve/internal/infra"
	"libreserve/internal/infra/db"
	"libreserve/internal/pkg/pgconv"
	"libreserve/internal/usecase/commands"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const booksTable = "books"

type BookRepository struct {
	db db.DBTX
}

func NewBookRepository(db db.DBTX) *BookRepository {
	return &BookRepository{db: db}
}

func (r *BookRepository) Create(ctx context.Context, b *book.Book) (uuid.UUID, error) {
	sqlStr, args, err := dialect.Insert(booksTable).Prepared(true).
		Rows(goqu.Record{
			"id":               b.ID(),
			"title":            b.Title(),
			"author":           b.Author(),
			"isbn":             b.ISBN(),
			"total_copies":     b.TotalCopies(),
			"available_copies": b.AvailableCopies(),
		}).
		Returning("id").
		ToSQL()
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to build book insert", err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		if pgconv.IsUniqueViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("book already exists", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create book", err)
	}

	return id, nil
}

func (r *BookRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.BookSnapshot, error) {
	sqlStr, args, err := dialect.From(booksTable).Prepared(true).
		Select("id", "title", "author", "isbn", "total_copies", "available_copies").
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build book select", err)
	}

	var snap commands.BookSnapshot
	err = r.db.QueryRow(ctx, sqlStr, args...).Scan(
		&snap.ID, &snap.Title, &snap.Author, &snap.ISBN, &snap.TotalCopies, &snap.AvailableCopies,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("book not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find book by ID", err)
	}

	return &snap, nil
}

func (r *BookRepository) UpdateAvailableCopies(ctx context.Context, id uuid.UUID, availableCopies int) error {
	sqlStr, args, err := dialect.Update(booksTable).Prepared(true).
		Set(goqu.Record{
			"available_copies": availableCopies,
			"updated_at":       goqu.L("now()"),
		}).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build book availability update", err)
	}

	tag, err := r.db.Exec(ctx, sqlStr, args...)
	if err != nil {
		if pgconv.IsConstraintViolation(err) {
			return infra.WrapRepoErr("availability update violates constraint", err, infra.KindConstraintViolated)
		}
		return infra.WrapRepoErr("failed to update book availability", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}

	return nil
}
