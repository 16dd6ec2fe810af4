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

type ReviewModel struct {
	DB storage.Querier
}

const reviewColumns = `r.id, r.text, u.username AS author, r.author_id, r.title_id, r.score, r.pub_date`

func (m *ReviewModel) Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	rows, err := m.DB.Query(
		ctx,
		`SELECT `+reviewColumns+` FROM reviews r
		JOIN users u ON u.id = r.author_id
		WHERE r.id = $1 AND r.title_id = $2`,
		reviewID, titleID,
	)
	if err != nil {
		return nil, err
	}
	review, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (m *ReviewModel) GetForTitle(ctx context.Context, titleID int64, f filters.Filters) ([]models.Review, int, error) {
	rows, err := m.DB.Query(
		ctx,
		fmt.Sprintf(`SELECT count(*) OVER(), `+reviewColumns+` FROM reviews r
		JOIN users u ON u.id = r.author_id
		WHERE r.title_id = $1
		ORDER BY %s %s, r.id ASC
		LIMIT $2 OFFSET $3`, f.SortColumn(), f.SortDirection()),
		titleID, f.Limit(), f.Offset(),
	)
	if err != nil {
		return nil, 0, err
	}
	type row struct {
		Count int
		models.Review
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, 0, err
	}
	reviews := make([]models.Review, 0, len(outputRows))
	for _, r := range outputRows {
		reviews = append(reviews, r.Review)
	}
	if len(outputRows) == 0 {
		return reviews, 0, nil
	}
	return reviews, outputRows[0].Count, nil
}

// ExistsForAuthorTitle backs the one-review-per-author-per-title guard.
// The unique constraint on (author_id, title_id) remains the backstop for
// concurrent duplicates.
func (m *ReviewModel) ExistsForAuthorTitle(ctx context.Context, authorID, titleID int64) (bool, error) {
	var exists bool
	err := m.DB.QueryRow(
		ctx,
		"SELECT EXISTS (SELECT 1 FROM reviews WHERE author_id = $1 AND title_id = $2)",
		authorID, titleID,
	).Scan(&exists)
	return exists, err
}

func (m *ReviewModel) Insert(ctx context.Context, titleID, authorID int64, text string, score int32) (*models.Review, error) {
	rows, err := m.DB.Query(
		ctx,
		`INSERT INTO reviews (text, author_id, title_id, score) VALUES ($1, $2, $3, $4)
		RETURNING id, text,
			(SELECT username FROM users WHERE id = author_id) AS author,
			author_id, title_id, score, pub_date`,
		text, authorID, titleID, score,
	)
	if err != nil {
		return nil, mapConflict(err)
	}
	review, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		return nil, mapConflict(err)
	}
	return &review, nil
}

func (m *ReviewModel) Update(ctx context.Context, review *models.Review) (*models.Review, error) {
	rows, err := m.DB.Query(
		ctx,
		`UPDATE reviews SET text = $1, score = $2 WHERE id = $3
		RETURNING id, text,
			(SELECT username FROM users WHERE id = author_id) AS author,
			author_id, title_id, score, pub_date`,
		review.Text, review.Score, review.ID,
	)
	if err != nil {
		return nil, err
	}
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// Delete removes the review; its comments go with it via ON DELETE CASCADE.
func (m *ReviewModel) Delete(ctx context.Context, titleID, reviewID int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM reviews WHERE id = $1 AND title_id = $2", reviewID, titleID)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
