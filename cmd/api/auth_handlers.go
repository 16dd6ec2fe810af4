package main

import (
	"errors"
	"net/http"

	"reviewhub/proj/internal/services/auth"
)

type signupInput struct {
	Username string `json:"username" validate:"required,max=150,username,notreserved"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

// signup registers a new account or re-sends a confirmation code for an
// existing (username, email) pair. Either way a fresh code goes out and
// the submitted pair is echoed back.
func (app *Application) signup(w http.ResponseWriter, r *http.Request) {
	var input signupInput
	if !app.readAndValidate(w, r, &input) {
		return
	}
	user, err := app.services.Auth.Signup(r.Context(), input.Username, input.Email)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrReservedUsername):
			app.Http.FieldError(w, r, http.StatusBadRequest, "username", "This username is reserved")
		case errors.Is(err, auth.ErrUsernameTaken):
			app.Http.FieldError(w, r, http.StatusBadRequest, "username", "A user with that username already exists")
		case errors.Is(err, auth.ErrEmailTaken):
			app.Http.FieldError(w, r, http.StatusBadRequest, "email", "A user with that email already exists")
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, envelop{"username": user.Username, "email": user.Email})
}

type issueTokenInput struct {
	Username         string `json:"username" validate:"required,max=150"`
	ConfirmationCode string `json:"confirmation_code" validate:"required,max=64"`
}

// issueToken exchanges a confirmation code for a bearer token. An
// unknown username is a 404, a wrong code for a known one a 400.
func (app *Application) issueToken(w http.ResponseWriter, r *http.Request) {
	var input issueTokenInput
	if !app.readAndValidate(w, r, &input) {
		return
	}
	token, err := app.services.Auth.IssueToken(r.Context(), input.Username, input.ConfirmationCode)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			app.Http.FieldError(w, r, http.StatusNotFound, "username", "User not found")
		case errors.Is(err, auth.ErrInvalidConfirmationCode):
			app.Http.FieldError(w, r, http.StatusBadRequest, "confirmation_code", "Invalid confirmation code")
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, envelop{"token": token})
}
