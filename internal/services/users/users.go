package users

import (
	"context"
	"errors"
	"log/slog"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/storage"
)

const (
	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

type UsersStorage interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, search string, f filters.Filters) ([]models.User, int, error)
	Insert(ctx context.Context, u *models.User) (*models.User, error)
	Update(ctx context.Context, u *models.User) (*models.User, error)
	Delete(ctx context.Context, username string) error
}

type UserService struct {
	log     *slog.Logger
	storage UsersStorage
}

func New(log *slog.Logger, storage UsersStorage) *UserService {
	return &UserService{log: log, storage: storage}
}

// UpdateParams carries a partial update; nil means "leave as is".
type UpdateParams struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

func mapUserConflict(err error) error {
	var conflict *storage.ConflictError
	if errors.As(err, &conflict) {
		switch conflict.Constraint {
		case usernameConstraint:
			return ErrUsernameTaken
		case emailConstraint:
			return ErrEmailTaken
		}
	}
	return err
}

func (s *UserService) Get(ctx context.Context, username string) (*models.User, error) {
	const op = "users.UserService.Get"
	user, err := s.storage.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, search string, f filters.Filters) ([]models.User, int, error) {
	const op = "users.UserService.List"
	users, count, err := s.storage.List(ctx, search, f)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, 0, err
	}
	return users, count, nil
}

// Create is the admin path: the account comes out active, with no
// confirmation dance.
func (s *UserService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	const op = "users.UserService.Create"
	log := s.log.With("op", op, "username", user.Username)
	if user.Username == models.ReservedUsername {
		return nil, ErrReservedUsername
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if !models.IsValidRole(user.Role) {
		return nil, ErrInvalidRole
	}
	user.IsActive = true
	created, err := s.storage.Insert(ctx, user)
	if err != nil {
		if mapped := mapUserConflict(err); mapped != err {
			log.Info("conflicting user")
			return nil, mapped
		}
		log.Error(err.Error())
		return nil, err
	}
	return created, nil
}

// Update applies a partial update. A role change is silently dropped
// unless the requester is an admin: users must not promote themselves
// through the self-service endpoint.
func (s *UserService) Update(ctx context.Context, username string, params UpdateParams, asAdmin bool) (*models.User, error) {
	const op = "users.UserService.Update"
	log := s.log.With("op", op, "username", username)
	user, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	if params.Username != nil {
		if *params.Username == models.ReservedUsername {
			return nil, ErrReservedUsername
		}
		user.Username = *params.Username
	}
	if params.Email != nil {
		user.Email = *params.Email
	}
	if params.FirstName != nil {
		user.FirstName = *params.FirstName
	}
	if params.LastName != nil {
		user.LastName = *params.LastName
	}
	if params.Bio != nil {
		user.Bio = *params.Bio
	}
	if params.Role != nil && asAdmin {
		if !models.IsValidRole(*params.Role) {
			return nil, ErrInvalidRole
		}
		user.Role = *params.Role
	}
	updated, err := s.storage.Update(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		if mapped := mapUserConflict(err); mapped != err {
			log.Info("conflicting user")
			return nil, mapped
		}
		log.Error(err.Error())
		return nil, err
	}
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, username string) error {
	const op = "users.UserService.Delete"
	if err := s.storage.Delete(ctx, username); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrUserNotFound
		}
		s.log.With("op", op).Error(err.Error())
		return err
	}
	return nil
}
