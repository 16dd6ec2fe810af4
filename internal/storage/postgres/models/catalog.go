package models

import (
	"context"
	"errors"
	"fmt"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/storage"

	"github.com/jackc/pgx/v5"
)

// Categories and genres share the same {name, slug} shape; the queries
// differ only in the table name.

type CategoryModel struct {
	DB storage.Querier
}

type GenreModel struct {
	DB storage.Querier
}

func listSlugged[T any](ctx context.Context, db storage.Querier, table, search string, f filters.Filters) ([]T, int, error) {
	rows, err := db.Query(
		ctx,
		fmt.Sprintf(`SELECT count(*) OVER(), id, name, slug FROM %s
		WHERE ($1 = '' OR name ILIKE '%%' || $1 || '%%')
		ORDER BY %s %s, id ASC
		LIMIT $2 OFFSET $3`, table, f.SortColumn(), f.SortDirection()),
		search, f.Limit(), f.Offset(),
	)
	if err != nil {
		return nil, 0, err
	}
	type row struct {
		Count int
		ID    int64
		Name  string
		Slug  string
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, 0, err
	}
	items := make([]T, 0, len(outputRows))
	count := 0
	for _, r := range outputRows {
		var item T
		switch p := any(&item).(type) {
		case *models.Category:
			*p = models.Category{ID: r.ID, Name: r.Name, Slug: r.Slug}
		case *models.Genre:
			*p = models.Genre{ID: r.ID, Name: r.Name, Slug: r.Slug}
		}
		items = append(items, item)
		count = r.Count
	}
	return items, count, nil
}

func insertSlugged(ctx context.Context, db storage.Querier, table, name, slug string) (int64, error) {
	var id int64
	err := db.QueryRow(
		ctx,
		fmt.Sprintf("INSERT INTO %s (name, slug) VALUES ($1, $2) RETURNING id", table),
		name, slug,
	).Scan(&id)
	if err != nil {
		return 0, mapConflict(err)
	}
	return id, nil
}

func deleteSlugged(ctx context.Context, db storage.Querier, table, slug string) error {
	status, err := db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE slug = $1", table), slug)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (m *CategoryModel) List(ctx context.Context, search string, f filters.Filters) ([]models.Category, int, error) {
	return listSlugged[models.Category](ctx, m.DB, "categories", search, f)
}

func (m *CategoryModel) Insert(ctx context.Context, name, slug string) (*models.Category, error) {
	id, err := insertSlugged(ctx, m.DB, "categories", name, slug)
	if err != nil {
		return nil, err
	}
	return &models.Category{ID: id, Name: name, Slug: slug}, nil
}

func (m *CategoryModel) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	rows, err := m.DB.Query(ctx, "SELECT id, name, slug FROM categories WHERE slug = $1", slug)
	if err != nil {
		return nil, err
	}
	category, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Category])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (m *CategoryModel) Delete(ctx context.Context, slug string) error {
	return deleteSlugged(ctx, m.DB, "categories", slug)
}

func (m *GenreModel) List(ctx context.Context, search string, f filters.Filters) ([]models.Genre, int, error) {
	return listSlugged[models.Genre](ctx, m.DB, "genres", search, f)
}

func (m *GenreModel) Insert(ctx context.Context, name, slug string) (*models.Genre, error) {
	id, err := insertSlugged(ctx, m.DB, "genres", name, slug)
	if err != nil {
		return nil, err
	}
	return &models.Genre{ID: id, Name: name, Slug: slug}, nil
}

// ListBySlugs resolves genre slugs to rows; callers detect unknown slugs
// by comparing lengths.
func (m *GenreModel) ListBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	rows, err := m.DB.Query(ctx, "SELECT id, name, slug FROM genres WHERE slug = ANY($1) ORDER BY name", slugs)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Genre])
}

func (m *GenreModel) Delete(ctx context.Context, slug string) error {
	return deleteSlugged(ctx, m.DB, "genres", slug)
}
