package models

import (
	"context"
	"testing"

	"reviewhub/proj/internal/storage"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var titleTestColumns = []string{
	"id", "name", "year", "description", "rating",
	"category_id", "category_name", "category_slug",
}

var genreJoinColumns = []string{"title_id", "id", "name", "slug"}

func newTitleModel(t *testing.T) (*TitleModel, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &TitleModel{DB: mock}, mock
}

func TestTitleModelGet(t *testing.T) {
	t.Run("with category and genres", func(t *testing.T) {
		model, mock := newTitleModel(t)
		categoryID := int64(3)
		categoryName := "Movies"
		categorySlug := "movies"
		mock.ExpectQuery("SELECT (.+) FROM titles t").
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows(titleTestColumns).
				AddRow(int64(1), "Dune", int32(2021), "sand", 8.5, &categoryID, &categoryName, &categorySlug))
		mock.ExpectQuery("SELECT tg.title_id, g.id, g.name, g.slug FROM title_genres tg").
			WithArgs([]int64{1}).
			WillReturnRows(pgxmock.NewRows(genreJoinColumns).
				AddRow(int64(1), int64(9), "Sci-Fi", "sci-fi"))
		title, err := model.Get(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, 8.5, title.Rating)
		require.NotNil(t, title.Category)
		assert.Equal(t, "movies", title.Category.Slug)
		require.Len(t, title.Genres, 1)
		assert.Equal(t, "sci-fi", title.Genres[0].Slug)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("unreviewed and uncategorized", func(t *testing.T) {
		model, mock := newTitleModel(t)
		mock.ExpectQuery("SELECT (.+) FROM titles t").
			WithArgs(int64(2)).
			WillReturnRows(pgxmock.NewRows(titleTestColumns).
				AddRow(int64(2), "Obscure", int32(1999), "", 0.0, nil, nil, nil))
		mock.ExpectQuery("SELECT tg.title_id, g.id, g.name, g.slug FROM title_genres tg").
			WithArgs([]int64{2}).
			WillReturnRows(pgxmock.NewRows(genreJoinColumns))
		title, err := model.Get(context.Background(), 2)
		require.NoError(t, err)
		assert.Zero(t, title.Rating)
		assert.Nil(t, title.Category)
		assert.Empty(t, title.Genres)
		assert.NotNil(t, title.Genres)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("not found", func(t *testing.T) {
		model, mock := newTitleModel(t)
		mock.ExpectQuery("SELECT (.+) FROM titles t").
			WithArgs(int64(404)).
			WillReturnRows(pgxmock.NewRows(titleTestColumns))
		_, err := model.Get(context.Background(), 404)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTitleModelInsert(t *testing.T) {
	model, mock := newTitleModel(t)
	categoryID := int64(3)
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO titles").
		WithArgs("Dune", int32(2021), "sand", &categoryID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(10)))
	mock.ExpectExec("INSERT INTO title_genres").
		WithArgs(int64(10), int64(9)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()
	mock.ExpectRollback()
	id, err := model.Insert(context.Background(), "Dune", 2021, "sand", &categoryID, []int64{9})
	require.NoError(t, err)
	assert.EqualValues(t, 10, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTitleModelDelete(t *testing.T) {
	model, mock := newTitleModel(t)
	mock.ExpectExec("DELETE FROM titles").
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	assert.ErrorIs(t, model.Delete(context.Background(), 1), storage.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
