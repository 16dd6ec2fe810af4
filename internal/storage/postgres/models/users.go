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

const userColumns = `id, username, email, first_name, last_name, bio, role,
	is_staff, is_active, confirmation_code, created_at, updated_at`

type UserModel struct {
	DB storage.Querier
}

func (m *UserModel) getBy(ctx context.Context, query string, arg any) (*models.User, error) {
	rows, err := m.DB.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (m *UserModel) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return m.getBy(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

// GetActiveByID backs bearer-token authentication: a deactivated account
// must not resolve to a user.
func (m *UserModel) GetActiveByID(ctx context.Context, id int64) (*models.User, error) {
	return m.getBy(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1 AND is_active", id)
}

func (m *UserModel) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.getBy(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username)
}

func (m *UserModel) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.getBy(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
}

func (m *UserModel) List(ctx context.Context, search string, f filters.Filters) ([]models.User, int, error) {
	rows, err := m.DB.Query(
		ctx,
		fmt.Sprintf(`SELECT count(*) OVER(), `+userColumns+` FROM users
		WHERE ($1 = '' OR username ILIKE '%%' || $1 || '%%')
		ORDER BY %s %s, id ASC
		LIMIT $2 OFFSET $3`, f.SortColumn(), f.SortDirection()),
		search, f.Limit(), f.Offset(),
	)
	if err != nil {
		return nil, 0, err
	}
	type row struct {
		Count int
		models.User
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, 0, err
	}
	users := make([]models.User, 0, len(outputRows))
	for _, r := range outputRows {
		users = append(users, r.User)
	}
	if len(outputRows) == 0 {
		return users, 0, nil
	}
	return users, outputRows[0].Count, nil
}

func (m *UserModel) Insert(ctx context.Context, u *models.User) (*models.User, error) {
	rows, err := m.DB.Query(
		ctx,
		`INSERT INTO users (username, email, first_name, last_name, bio, role, is_active, confirmation_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+userColumns,
		u.Username, u.Email, u.FirstName, u.LastName, u.Bio, u.Role, u.IsActive, u.ConfirmationCode,
	)
	if err != nil {
		return nil, mapConflict(err)
	}
	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, mapConflict(err)
	}
	return &created, nil
}

func (m *UserModel) Update(ctx context.Context, u *models.User) (*models.User, error) {
	rows, err := m.DB.Query(
		ctx,
		`UPDATE users SET username = $1, email = $2, first_name = $3, last_name = $4,
			bio = $5, role = $6, updated_at = now()
		WHERE id = $7
		RETURNING `+userColumns,
		u.Username, u.Email, u.FirstName, u.LastName, u.Bio, u.Role, u.ID,
	)
	if err != nil {
		return nil, err
	}
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, mapConflict(err)
	}
	return &updated, nil
}

func (m *UserModel) SetConfirmationCode(ctx context.Context, id int64, code string) error {
	status, err := m.DB.Exec(
		ctx,
		"UPDATE users SET confirmation_code = $1, updated_at = now() WHERE id = $2",
		code, id,
	)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Activate flips the account on and burns the confirmation code in one
// statement, so a code can never be replayed after a successful exchange.
func (m *UserModel) Activate(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(
		ctx,
		"UPDATE users SET is_active = true, confirmation_code = '', updated_at = now() WHERE id = $1",
		id,
	)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (m *UserModel) Delete(ctx context.Context, username string) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM users WHERE username = $1", username)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
