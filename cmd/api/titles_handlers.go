package main

import (
	"errors"
	"net/http"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/services/titles"
	storagemodels "reviewhub/proj/internal/storage/postgres/models"
)

func (app *Application) mapTitleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, titles.ErrTitleNotFound):
		app.Http.NotFound(w, r, "Title not found")
	case errors.Is(err, titles.ErrUnknownCategory):
		app.Http.FieldError(w, r, http.StatusBadRequest, "category", "Unknown category slug")
	case errors.Is(err, titles.ErrUnknownGenre):
		app.Http.FieldError(w, r, http.StatusBadRequest, "genre", "Unknown genre slug")
	default:
		app.Http.ServerError(w, r, err, "")
	}
}

func (app *Application) getTitles(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Category string `schema:"category"`
		Genre    string `schema:"genre"`
		Name     string `schema:"name"`
		Year     int32  `schema:"year"`
		filters.Filters
	}
	input.Filters = filters.New("id", "id", "name", "year", "rating")
	if !app.decodeQuery(w, r, &input) || !app.checkFilters(w, r, &input.Filters) {
		return
	}
	list, count, err := app.services.Titles.List(r.Context(), storagemodels.TitleListFilter{
		Category: input.Category,
		Genre:    input.Genre,
		Name:     input.Name,
		Year:     input.Year,
	}, input.Filters)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.List(w, r, count, list)
}

type createTitleInput struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        int32    `json:"year" validate:"required,maxcurrentyear"`
	Description string   `json:"description"`
	Category    string   `json:"category" validate:"required,slug"`
	Genre       []string `json:"genre" validate:"required,min=1,dive,slug"`
}

func (app *Application) createTitle(w http.ResponseWriter, r *http.Request) {
	var input createTitleInput
	if !app.readAndValidate(w, r, &input) {
		return
	}
	title, err := app.services.Titles.Create(r.Context(), titles.CreateParams{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		Category:    input.Category,
		Genres:      input.Genre,
	})
	if err != nil {
		app.mapTitleError(w, r, err)
		return
	}
	app.Http.Created(w, r, title)
}

func (app *Application) getTitle(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "title_id")
	if !ok {
		return
	}
	title, err := app.services.Titles.Get(r.Context(), id)
	if err != nil {
		app.mapTitleError(w, r, err)
		return
	}
	app.Http.Ok(w, r, title)
}

type updateTitleInput struct {
	Name        *string  `json:"name" validate:"omitempty,max=256"`
	Year        *int32   `json:"year" validate:"omitempty,maxcurrentyear"`
	Description *string  `json:"description"`
	Category    *string  `json:"category" validate:"omitempty,slug"`
	Genre       []string `json:"genre" validate:"omitempty,min=1,dive,slug"`
}

func (app *Application) updateTitle(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "title_id")
	if !ok {
		return
	}
	var input updateTitleInput
	if !app.readAndValidate(w, r, &input) {
		return
	}
	title, err := app.services.Titles.Update(r.Context(), id, titles.UpdateParams{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		Category:    input.Category,
		Genres:      input.Genre,
	})
	if err != nil {
		app.mapTitleError(w, r, err)
		return
	}
	app.Http.Ok(w, r, title)
}

func (app *Application) deleteTitle(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "title_id")
	if !ok {
		return
	}
	if err := app.services.Titles.Delete(r.Context(), id); err != nil {
		app.mapTitleError(w, r, err)
		return
	}
	app.Http.NoContent(w, r)
}
