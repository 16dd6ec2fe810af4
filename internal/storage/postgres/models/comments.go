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

type CommentModel struct {
	DB storage.Querier
}

const commentColumns = `c.id, c.text, u.username AS author, c.author_id, c.review_id, c.pub_date`

func (m *CommentModel) Get(ctx context.Context, reviewID, commentID int64) (*models.Comment, error) {
	rows, err := m.DB.Query(
		ctx,
		`SELECT `+commentColumns+` FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.id = $1 AND c.review_id = $2`,
		commentID, reviewID,
	)
	if err != nil {
		return nil, err
	}
	comment, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Comment])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (m *CommentModel) GetForReview(ctx context.Context, reviewID int64, f filters.Filters) ([]models.Comment, int, error) {
	rows, err := m.DB.Query(
		ctx,
		fmt.Sprintf(`SELECT count(*) OVER(), `+commentColumns+` FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.review_id = $1
		ORDER BY %s %s, c.id ASC
		LIMIT $2 OFFSET $3`, f.SortColumn(), f.SortDirection()),
		reviewID, f.Limit(), f.Offset(),
	)
	if err != nil {
		return nil, 0, err
	}
	type row struct {
		Count int
		models.Comment
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, 0, err
	}
	comments := make([]models.Comment, 0, len(outputRows))
	for _, r := range outputRows {
		comments = append(comments, r.Comment)
	}
	if len(outputRows) == 0 {
		return comments, 0, nil
	}
	return comments, outputRows[0].Count, nil
}

func (m *CommentModel) Insert(ctx context.Context, reviewID, authorID int64, text string) (*models.Comment, error) {
	rows, err := m.DB.Query(
		ctx,
		`INSERT INTO comments (text, author_id, review_id) VALUES ($1, $2, $3)
		RETURNING id, text,
			(SELECT username FROM users WHERE id = author_id) AS author,
			author_id, review_id, pub_date`,
		text, authorID, reviewID,
	)
	if err != nil {
		return nil, err
	}
	comment, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Comment])
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (m *CommentModel) Update(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	rows, err := m.DB.Query(
		ctx,
		`UPDATE comments SET text = $1 WHERE id = $2
		RETURNING id, text,
			(SELECT username FROM users WHERE id = author_id) AS author,
			author_id, review_id, pub_date`,
		comment.Text, comment.ID,
	)
	if err != nil {
		return nil, err
	}
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Comment])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (m *CommentModel) Delete(ctx context.Context, reviewID, commentID int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM comments WHERE id = $1 AND review_id = $2", commentID, reviewID)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
