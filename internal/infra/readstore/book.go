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

type BookReadStore struct {
	db db.DBTX
}

func NewBookReadStore(db db.DBTX) *BookReadStore {
	return &BookReadStore{db: db}
}

func (r *BookReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookView, error) {
	sqlStr, args, err := dialect.From("books").Prepared(true).
		Select("id", "title", "author", "isbn", "total_copies", "available_copies", "created_at", "updated_at").
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build book view select", err)
	}

	var view queries.BookView
	err = r.db.QueryRow(ctx, sqlStr, args...).Scan(
		&view.ID, &view.Title, &view.Author, &view.ISBN,
		&view.TotalCopies, &view.AvailableCopies, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("book not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find book by ID", err)
	}

	view.Available = view.AvailableCopies > 0
	return &view, nil
}

func (r *BookReadStore) FindAll(ctx context.Context) ([]*queries.BookListItem, error) {
	sqlStr, args, err := dialect.From("books").Prepared(true).
		Select("id", "title", "author", "available_copies").
		Order(goqu.C("title").Asc()).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build book list select", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list books", err)
	}
	defer rows.Close()

	result := make([]*queries.BookListItem, 0)
	for rows.Next() {
		var item queries.BookListItem
		if scanErr := rows.Scan(&item.ID, &item.Title, &item.Author, &item.AvailableCopies); scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan book list item", scanErr)
		}
		item.Available = item.AvailableCopies > 0
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read book list", err)
	}

	return result, nil
}
