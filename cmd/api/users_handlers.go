package main

import (
	"errors"
	"net/http"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/services/users"

	"github.com/go-chi/chi/v5"
)

func (app *Application) mapUserError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		app.Http.NotFound(w, r, "User not found")
	case errors.Is(err, users.ErrReservedUsername):
		app.Http.FieldError(w, r, http.StatusBadRequest, "username", "This username is reserved")
	case errors.Is(err, users.ErrUsernameTaken):
		app.Http.FieldError(w, r, http.StatusBadRequest, "username", "A user with that username already exists")
	case errors.Is(err, users.ErrEmailTaken):
		app.Http.FieldError(w, r, http.StatusBadRequest, "email", "A user with that email already exists")
	case errors.Is(err, users.ErrInvalidRole):
		app.Http.FieldError(w, r, http.StatusBadRequest, "role", "Unknown role")
	default:
		app.Http.ServerError(w, r, err, "")
	}
}

func (app *Application) getUsers(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Search string `schema:"search"`
		filters.Filters
	}
	input.Filters = filters.New("username", "username", "email", "role")
	if !app.decodeQuery(w, r, &input) || !app.checkFilters(w, r, &input.Filters) {
		return
	}
	usersList, count, err := app.services.Users.List(r.Context(), input.Search, input.Filters)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.List(w, r, count, usersList)
}

type createUserInput struct {
	Username  string `json:"username" validate:"required,max=150,username,notreserved"`
	Email     string `json:"email" validate:"required,email,max=254"`
	FirstName string `json:"first_name" validate:"omitempty,max=150"`
	LastName  string `json:"last_name" validate:"omitempty,max=150"`
	Bio       string `json:"bio"`
	Role      string `json:"role" validate:"omitempty,oneof=user moderator admin"`
}

func (app *Application) createUser(w http.ResponseWriter, r *http.Request) {
	var input createUserInput
	if !app.readAndValidate(w, r, &input) {
		return
	}
	user, err := app.services.Users.Create(r.Context(), &models.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	})
	if err != nil {
		app.mapUserError(w, r, err)
		return
	}
	app.Http.Created(w, r, user)
}

func (app *Application) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := app.services.Users.Get(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		app.mapUserError(w, r, err)
		return
	}
	app.Http.Ok(w, r, user)
}

type updateUserInput struct {
	Username  *string `json:"username" validate:"omitempty,max=150,username,notreserved"`
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role" validate:"omitempty,oneof=user moderator admin"`
}

func (input *updateUserInput) toParams() users.UpdateParams {
	return users.UpdateParams{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	}
}

func (app *Application) updateUser(w http.ResponseWriter, r *http.Request) {
	var input updateUserInput
	if !app.readAndValidate(w, r, &input) {
		return
	}
	user, err := app.services.Users.Update(r.Context(), chi.URLParam(r, "username"), input.toParams(), true)
	if err != nil {
		app.mapUserError(w, r, err)
		return
	}
	app.Http.Ok(w, r, user)
}

func (app *Application) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := app.services.Users.Delete(r.Context(), chi.URLParam(r, "username")); err != nil {
		app.mapUserError(w, r, err)
		return
	}
	app.Http.NoContent(w, r)
}

func (app *Application) getMe(w http.ResponseWriter, r *http.Request) {
	app.Http.Ok(w, r, app.contextUser(r))
}

// updateMe is the self-service profile update. A submitted role is
// silently discarded unless the requester is an admin.
func (app *Application) updateMe(w http.ResponseWriter, r *http.Request) {
	var input updateUserInput
	if !app.readAndValidate(w, r, &input) {
		return
	}
	requester := app.contextUser(r)
	user, err := app.services.Users.Update(r.Context(), requester.Username, input.toParams(), requester.IsAdmin())
	if err != nil {
		app.mapUserError(w, r, err)
		return
	}
	app.Http.Ok(w, r, user)
}
