package main

import (
	"errors"
	"net/http"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/services/catalog"

	"github.com/go-chi/chi/v5"
)

type catalogListInput struct {
	Search string `schema:"search"`
	filters.Filters
}

type createSluggedInput struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

func (app *Application) getCategories(w http.ResponseWriter, r *http.Request) {
	var input catalogListInput
	input.Filters = filters.New("name", "name", "slug")
	if !app.decodeQuery(w, r, &input) || !app.checkFilters(w, r, &input.Filters) {
		return
	}
	categories, count, err := app.services.Catalog.ListCategories(r.Context(), input.Search, input.Filters)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.List(w, r, count, categories)
}

func (app *Application) createCategory(w http.ResponseWriter, r *http.Request) {
	var input createSluggedInput
	if !app.readAndValidate(w, r, &input) {
		return
	}
	category, err := app.services.Catalog.CreateCategory(r.Context(), input.Name, input.Slug)
	if err != nil {
		if errors.Is(err, catalog.ErrSlugTaken) {
			app.Http.FieldError(w, r, http.StatusBadRequest, "slug", "This slug is already in use")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, category)
}

func (app *Application) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := app.services.Catalog.DeleteCategory(r.Context(), chi.URLParam(r, "slug")); err != nil {
		if errors.Is(err, catalog.ErrCategoryNotFound) {
			app.Http.NotFound(w, r, "Category not found")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.NoContent(w, r)
}

func (app *Application) getGenres(w http.ResponseWriter, r *http.Request) {
	var input catalogListInput
	input.Filters = filters.New("name", "name", "slug")
	if !app.decodeQuery(w, r, &input) || !app.checkFilters(w, r, &input.Filters) {
		return
	}
	genres, count, err := app.services.Catalog.ListGenres(r.Context(), input.Search, input.Filters)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.List(w, r, count, genres)
}

func (app *Application) createGenre(w http.ResponseWriter, r *http.Request) {
	var input createSluggedInput
	if !app.readAndValidate(w, r, &input) {
		return
	}
	genre, err := app.services.Catalog.CreateGenre(r.Context(), input.Name, input.Slug)
	if err != nil {
		if errors.Is(err, catalog.ErrSlugTaken) {
			app.Http.FieldError(w, r, http.StatusBadRequest, "slug", "This slug is already in use")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, genre)
}

func (app *Application) deleteGenre(w http.ResponseWriter, r *http.Request) {
	if err := app.services.Catalog.DeleteGenre(r.Context(), chi.URLParam(r, "slug")); err != nil {
		if errors.Is(err, catalog.ErrGenreNotFound) {
			app.Http.NotFound(w, r, "Genre not found")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.NoContent(w, r)
}
