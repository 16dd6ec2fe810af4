package models

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/storage"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reviewTestColumns = []string{"id", "text", "author", "author_id", "title_id", "score", "pub_date"}

func newReviewModel(t *testing.T) (*ReviewModel, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &ReviewModel{DB: mock}, mock
}

func TestReviewModelGet(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		model, mock := newReviewModel(t)
		rows := pgxmock.NewRows(reviewTestColumns).
			AddRow(int64(5), "great", "alice", int64(1), int64(2), int32(9), time.Now())
		mock.ExpectQuery("SELECT (.+) FROM reviews r").
			WithArgs(int64(5), int64(2)).
			WillReturnRows(rows)
		review, err := model.Get(context.Background(), 2, 5)
		require.NoError(t, err)
		assert.Equal(t, "alice", review.Author)
		assert.EqualValues(t, 9, review.Score)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("wrong title scope", func(t *testing.T) {
		model, mock := newReviewModel(t)
		mock.ExpectQuery("SELECT (.+) FROM reviews r").
			WithArgs(int64(5), int64(99)).
			WillReturnRows(pgxmock.NewRows(reviewTestColumns))
		_, err := model.Get(context.Background(), 99, 5)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestReviewModelGetForTitle(t *testing.T) {
	model, mock := newReviewModel(t)
	cols := append([]string{"count"}, reviewTestColumns...)
	rows := pgxmock.NewRows(cols).
		AddRow(2, int64(1), "good", "alice", int64(1), int64(2), int32(8), time.Now()).
		AddRow(2, int64(3), "bad", "bob", int64(4), int64(2), int32(2), time.Now())
	mock.ExpectQuery("SELECT count\\(\\*\\) OVER\\(\\), (.+) FROM reviews r").
		WithArgs(int64(2), 20, 0).
		WillReturnRows(rows)
	f := filters.New("id", "id")
	reviews, count, err := model.GetForTitle(context.Background(), 2, f)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, reviews, 2)
	assert.Equal(t, "bob", reviews[1].Author)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewModelExistsForAuthorTitle(t *testing.T) {
	model, mock := newReviewModel(t)
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(1), int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	exists, err := model.ExistsForAuthorTitle(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A concurrent duplicate slips past the exists pre-check and dies on the
// unique constraint; the constraint name must survive the error mapping.
func TestReviewModelInsertDuplicate(t *testing.T) {
	model, mock := newReviewModel(t)
	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "reviews_author_title_key"})
	_, err := model.Insert(context.Background(), 2, 1, "again", 7)
	assert.ErrorIs(t, err, storage.ErrConflict)
	var conflict *storage.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "reviews_author_title_key", conflict.Constraint)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewModelDelete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		model, mock := newReviewModel(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reviews WHERE id = $1 AND title_id = $2")).
			WithArgs(int64(5), int64(2)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		require.NoError(t, model.Delete(context.Background(), 2, 5))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("missing", func(t *testing.T) {
		model, mock := newReviewModel(t)
		mock.ExpectExec("DELETE FROM reviews").
			WithArgs(int64(5), int64(2)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		assert.ErrorIs(t, model.Delete(context.Background(), 2, 5), storage.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
