package main

import (
	"errors"
	"net/http"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/services/permissions"
	"reviewhub/proj/internal/services/reviews"
)

func (app *Application) mapReviewError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, reviews.ErrTitleNotFound):
		app.Http.NotFound(w, r, "Title not found")
	case errors.Is(err, reviews.ErrReviewNotFound):
		app.Http.NotFound(w, r, "Review not found")
	case errors.Is(err, reviews.ErrAlreadyReviewed):
		app.Http.FieldError(w, r, http.StatusBadRequest, "non_field_errors", "You have already reviewed this title")
	default:
		app.Http.ServerError(w, r, err, "")
	}
}

func (app *Application) getReviews(w http.ResponseWriter, r *http.Request) {
	titleID, ok := app.extractIDParam(w, r, "title_id")
	if !ok {
		return
	}
	var input struct {
		filters.Filters
	}
	input.Filters = filters.New("-pub_date", "pub_date", "score", "id")
	if !app.decodeQuery(w, r, &input) || !app.checkFilters(w, r, &input.Filters) {
		return
	}
	list, count, err := app.services.Reviews.ListForTitle(r.Context(), titleID, input.Filters)
	if err != nil {
		app.mapReviewError(w, r, err)
		return
	}
	app.Http.List(w, r, count, list)
}

type createReviewInput struct {
	Text  string `json:"text" validate:"required"`
	Score int32  `json:"score" validate:"required,gte=1,lte=10"`
}

func (app *Application) createReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := app.extractIDParam(w, r, "title_id")
	if !ok {
		return
	}
	var input createReviewInput
	if !app.readAndValidate(w, r, &input) {
		return
	}
	review, err := app.services.Reviews.Create(r.Context(), titleID, app.contextUser(r), input.Text, input.Score)
	if err != nil {
		app.mapReviewError(w, r, err)
		return
	}
	app.Http.Created(w, r, review)
}

func (app *Application) getReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := app.extractIDParam(w, r, "title_id")
	if !ok {
		return
	}
	reviewID, ok := app.extractIDParam(w, r, "review_id")
	if !ok {
		return
	}
	review, err := app.services.Reviews.Get(r.Context(), titleID, reviewID)
	if err != nil {
		app.mapReviewError(w, r, err)
		return
	}
	app.Http.Ok(w, r, review)
}

type updateReviewInput struct {
	Text  *string `json:"text" validate:"omitempty,min=1"`
	Score *int32  `json:"score" validate:"omitempty,gte=1,lte=10"`
}

func (app *Application) updateReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := app.extractIDParam(w, r, "title_id")
	if !ok {
		return
	}
	reviewID, ok := app.extractIDParam(w, r, "review_id")
	if !ok {
		return
	}
	var input updateReviewInput
	if !app.readAndValidate(w, r, &input) {
		return
	}
	review, err := app.services.Reviews.Get(r.Context(), titleID, reviewID)
	if err != nil {
		app.mapReviewError(w, r, err)
		return
	}
	if !permissions.CanModifyObject(app.contextUser(r), review.AuthorID, r.Method) {
		app.Http.Forbidden(w, r)
		return
	}
	updated, err := app.services.Reviews.Update(r.Context(), titleID, reviewID, input.Text, input.Score)
	if err != nil {
		app.mapReviewError(w, r, err)
		return
	}
	app.Http.Ok(w, r, updated)
}

func (app *Application) deleteReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := app.extractIDParam(w, r, "title_id")
	if !ok {
		return
	}
	reviewID, ok := app.extractIDParam(w, r, "review_id")
	if !ok {
		return
	}
	review, err := app.services.Reviews.Get(r.Context(), titleID, reviewID)
	if err != nil {
		app.mapReviewError(w, r, err)
		return
	}
	if !permissions.CanModifyObject(app.contextUser(r), review.AuthorID, r.Method) {
		app.Http.Forbidden(w, r)
		return
	}
	if err := app.services.Reviews.Delete(r.Context(), titleID, reviewID); err != nil {
		app.mapReviewError(w, r, err)
		return
	}
	app.Http.NoContent(w, r)
}
