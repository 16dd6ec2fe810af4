package models

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/storage"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userTestColumns = []string{
	"id", "username", "email", "first_name", "last_name", "bio", "role",
	"is_staff", "is_active", "confirmation_code", "created_at", "updated_at",
}

func userTestRow(rows *pgxmock.Rows, id int64, username, email, role string) *pgxmock.Rows {
	now := time.Now()
	return rows.AddRow(id, username, email, "", "", "", role, false, true, "", now, now)
}

func userFixture(username string) *models.User {
	return &models.User{Username: username, Email: username + "@example.com", Role: models.RoleUser}
}

func newUserModel(t *testing.T) (*UserModel, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &UserModel{DB: mock}, mock
}

func TestUserModelGetByUsername(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		model, mock := newUserModel(t)
		mock.ExpectQuery("SELECT (.+) FROM users WHERE username = \\$1").
			WithArgs("alice").
			WillReturnRows(userTestRow(pgxmock.NewRows(userTestColumns), 1, "alice", "alice@example.com", "user"))
		user, err := model.GetByUsername(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("not found", func(t *testing.T) {
		model, mock := newUserModel(t)
		mock.ExpectQuery("SELECT (.+) FROM users WHERE username = \\$1").
			WithArgs("ghost").
			WillReturnRows(pgxmock.NewRows(userTestColumns))
		_, err := model.GetByUsername(context.Background(), "ghost")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserModelInsertConflict(t *testing.T) {
	model, mock := newUserModel(t)
	mock.ExpectQuery("INSERT INTO users").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})
	_, err := model.Insert(context.Background(), userFixture("alice"))
	assert.ErrorIs(t, err, storage.ErrConflict)
	var conflict *storage.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "users_username_key", conflict.Constraint)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserModelList(t *testing.T) {
	model, mock := newUserModel(t)
	cols := append([]string{"count"}, userTestColumns...)
	rows := pgxmock.NewRows(cols)
	now := time.Now()
	rows.AddRow(2, int64(1), "alice", "alice@example.com", "", "", "", "user", false, true, "", now, now)
	rows.AddRow(2, int64(2), "bob", "bob@example.com", "", "", "", "admin", false, true, "", now, now)
	mock.ExpectQuery("SELECT count\\(\\*\\) OVER\\(\\), (.+) FROM users").
		WithArgs("", 20, 0).
		WillReturnRows(rows)
	f := filters.New("username", "username")
	users, count, err := model.List(context.Background(), "", f)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[1].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserModelActivate(t *testing.T) {
	t.Run("burns code", func(t *testing.T) {
		model, mock := newUserModel(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET is_active = true, confirmation_code = '', updated_at = now() WHERE id = $1")).
			WithArgs(int64(7)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		require.NoError(t, model.Activate(context.Background(), 7))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("missing user", func(t *testing.T) {
		model, mock := newUserModel(t)
		mock.ExpectExec("UPDATE users SET is_active").
			WithArgs(int64(8)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		assert.ErrorIs(t, model.Activate(context.Background(), 8), storage.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserModelDelete(t *testing.T) {
	model, mock := newUserModel(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE username = $1")).
		WithArgs("alice").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, model.Delete(context.Background(), "alice"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
