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

type TitleModel struct {
	DB storage.Querier
}

// TitleListFilter narrows the titles listing; zero values mean "any".
type TitleListFilter struct {
	Category string
	Genre    string
	Name     string
	Year     int32
}

// Rating is computed on read: round(avg(score), 1), 0 with no reviews.
const titleSelect = `
	SELECT %s t.id, t.name, t.year, t.description,
		coalesce(round(avg(r.score)::numeric, 1), 0)::float8 AS rating,
		c.id AS category_id, c.name AS category_name, c.slug AS category_slug
	FROM titles t
	LEFT JOIN categories c ON c.id = t.category_id
	LEFT JOIN reviews r ON r.title_id = t.id`

type titleRow struct {
	ID           int64   `db:"id"`
	Name         string  `db:"name"`
	Year         int32   `db:"year"`
	Description  string  `db:"description"`
	Rating       float64 `db:"rating"`
	CategoryID   *int64  `db:"category_id"`
	CategoryName *string `db:"category_name"`
	CategorySlug *string `db:"category_slug"`
}

func (r *titleRow) toTitle() models.Title {
	title := models.Title{
		ID:          r.ID,
		Name:        r.Name,
		Year:        r.Year,
		Rating:      r.Rating,
		Description: r.Description,
		Genres:      []models.Genre{},
	}
	if r.CategoryID != nil {
		title.Category = &models.Category{ID: *r.CategoryID, Name: *r.CategoryName, Slug: *r.CategorySlug}
	}
	return title
}

func (m *TitleModel) Get(ctx context.Context, id int64) (*models.Title, error) {
	rows, err := m.DB.Query(
		ctx,
		fmt.Sprintf(titleSelect, "")+" WHERE t.id = $1 GROUP BY t.id, c.id",
		id,
	)
	if err != nil {
		return nil, err
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[titleRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	title := row.toTitle()
	genres, err := m.genresFor(ctx, []int64{title.ID})
	if err != nil {
		return nil, err
	}
	title.Genres = genres[title.ID]
	if title.Genres == nil {
		title.Genres = []models.Genre{}
	}
	return &title, nil
}

func (m *TitleModel) List(ctx context.Context, filter TitleListFilter, f filters.Filters) ([]models.Title, int, error) {
	query := fmt.Sprintf(titleSelect, "count(*) OVER(),") + fmt.Sprintf(`
	WHERE ($1 = '' OR t.name ILIKE '%%' || $1 || '%%')
	AND ($2 = '' OR c.slug = $2)
	AND ($3 = '' OR EXISTS (
		SELECT 1 FROM title_genres tg JOIN genres g ON g.id = tg.genre_id
		WHERE tg.title_id = t.id AND g.slug = $3))
	AND ($4 = 0 OR t.year = $4)
	GROUP BY t.id, c.id
	ORDER BY %s %s, t.id ASC
	LIMIT $5 OFFSET $6`, f.SortColumn(), f.SortDirection())
	rows, err := m.DB.Query(ctx, query, filter.Name, filter.Category, filter.Genre, filter.Year, f.Limit(), f.Offset())
	if err != nil {
		return nil, 0, err
	}
	type row struct {
		Count int
		titleRow
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, 0, err
	}
	titles := make([]models.Title, 0, len(outputRows))
	ids := make([]int64, 0, len(outputRows))
	for _, r := range outputRows {
		titles = append(titles, r.toTitle())
		ids = append(ids, r.ID)
	}
	if len(titles) == 0 {
		return titles, 0, nil
	}
	genres, err := m.genresFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range titles {
		if g := genres[titles[i].ID]; g != nil {
			titles[i].Genres = g
		}
	}
	return titles, outputRows[0].Count, nil
}

func (m *TitleModel) genresFor(ctx context.Context, titleIDs []int64) (map[int64][]models.Genre, error) {
	rows, err := m.DB.Query(
		ctx,
		`SELECT tg.title_id, g.id, g.name, g.slug FROM title_genres tg
		JOIN genres g ON g.id = tg.genre_id
		WHERE tg.title_id = ANY($1)
		ORDER BY g.name ASC`,
		titleIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make(map[int64][]models.Genre)
	for rows.Next() {
		var titleID int64
		var genre models.Genre
		if err := rows.Scan(&titleID, &genre.ID, &genre.Name, &genre.Slug); err != nil {
			return nil, err
		}
		result[titleID] = append(result[titleID], genre)
	}
	return result, rows.Err()
}

func (m *TitleModel) Insert(ctx context.Context, name string, year int32, description string, categoryID *int64, genreIDs []int64) (int64, error) {
	tx, err := m.DB.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)
	var id int64
	err = tx.QueryRow(
		ctx,
		"INSERT INTO titles (name, year, description, category_id) VALUES ($1, $2, $3, $4) RETURNING id",
		name, year, description, categoryID,
	).Scan(&id)
	if err != nil {
		return 0, mapConflict(err)
	}
	if err := insertTitleGenres(ctx, tx, id, genreIDs); err != nil {
		return 0, err
	}
	return id, tx.Commit(ctx)
}

func (m *TitleModel) Update(ctx context.Context, title *models.Title, genreIDs []int64, replaceGenres bool) error {
	tx, err := m.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	var categoryID *int64
	if title.Category != nil {
		categoryID = &title.Category.ID
	}
	status, err := tx.Exec(
		ctx,
		"UPDATE titles SET name = $1, year = $2, description = $3, category_id = $4 WHERE id = $5",
		title.Name, title.Year, title.Description, categoryID, title.ID,
	)
	if err != nil {
		return mapConflict(err)
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	if replaceGenres {
		if _, err := tx.Exec(ctx, "DELETE FROM title_genres WHERE title_id = $1", title.ID); err != nil {
			return err
		}
		if err := insertTitleGenres(ctx, tx, title.ID, genreIDs); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func insertTitleGenres(ctx context.Context, tx pgx.Tx, titleID int64, genreIDs []int64) error {
	for _, genreID := range genreIDs {
		if _, err := tx.Exec(
			ctx,
			"INSERT INTO title_genres (title_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			titleID, genreID,
		); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the title; reviews and their comments go with it via
// ON DELETE CASCADE.
func (m *TitleModel) Delete(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM titles WHERE id = $1", id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
