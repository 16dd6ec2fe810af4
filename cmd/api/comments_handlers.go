package main

import (
	"errors"
	"net/http"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/services/comments"
	"reviewhub/proj/internal/services/permissions"
)

func (app *Application) mapCommentError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, comments.ErrReviewNotFound):
		app.Http.NotFound(w, r, "Review not found")
	case errors.Is(err, comments.ErrCommentNotFound):
		app.Http.NotFound(w, r, "Comment not found")
	default:
		app.Http.ServerError(w, r, err, "")
	}
}

// commentPath pulls the three nested IDs off the route.
func (app *Application) commentPath(w http.ResponseWriter, r *http.Request) (titleID, reviewID, commentID int64, ok bool) {
	if titleID, ok = app.extractIDParam(w, r, "title_id"); !ok {
		return
	}
	if reviewID, ok = app.extractIDParam(w, r, "review_id"); !ok {
		return
	}
	commentID, ok = app.extractIDParam(w, r, "comment_id")
	return
}

func (app *Application) getComments(w http.ResponseWriter, r *http.Request) {
	titleID, ok := app.extractIDParam(w, r, "title_id")
	if !ok {
		return
	}
	reviewID, ok := app.extractIDParam(w, r, "review_id")
	if !ok {
		return
	}
	var input struct {
		filters.Filters
	}
	input.Filters = filters.New("-pub_date", "pub_date", "id")
	if !app.decodeQuery(w, r, &input) || !app.checkFilters(w, r, &input.Filters) {
		return
	}
	list, count, err := app.services.Comments.ListForReview(r.Context(), titleID, reviewID, input.Filters)
	if err != nil {
		app.mapCommentError(w, r, err)
		return
	}
	app.Http.List(w, r, count, list)
}

type commentInput struct {
	Text string `json:"text" validate:"required"`
}

func (app *Application) createComment(w http.ResponseWriter, r *http.Request) {
	titleID, ok := app.extractIDParam(w, r, "title_id")
	if !ok {
		return
	}
	reviewID, ok := app.extractIDParam(w, r, "review_id")
	if !ok {
		return
	}
	var input commentInput
	if !app.readAndValidate(w, r, &input) {
		return
	}
	comment, err := app.services.Comments.Create(r.Context(), titleID, reviewID, app.contextUser(r), input.Text)
	if err != nil {
		app.mapCommentError(w, r, err)
		return
	}
	app.Http.Created(w, r, comment)
}

func (app *Application) getComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, commentID, ok := app.commentPath(w, r)
	if !ok {
		return
	}
	comment, err := app.services.Comments.Get(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		app.mapCommentError(w, r, err)
		return
	}
	app.Http.Ok(w, r, comment)
}

func (app *Application) updateComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, commentID, ok := app.commentPath(w, r)
	if !ok {
		return
	}
	var input commentInput
	if !app.readAndValidate(w, r, &input) {
		return
	}
	comment, err := app.services.Comments.Get(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		app.mapCommentError(w, r, err)
		return
	}
	if !permissions.CanModifyObject(app.contextUser(r), comment.AuthorID, r.Method) {
		app.Http.Forbidden(w, r)
		return
	}
	updated, err := app.services.Comments.Update(r.Context(), titleID, reviewID, commentID, input.Text)
	if err != nil {
		app.mapCommentError(w, r, err)
		return
	}
	app.Http.Ok(w, r, updated)
}

func (app *Application) deleteComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, commentID, ok := app.commentPath(w, r)
	if !ok {
		return
	}
	comment, err := app.services.Comments.Get(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		app.mapCommentError(w, r, err)
		return
	}
	if !permissions.CanModifyObject(app.contextUser(r), comment.AuthorID, r.Method) {
		app.Http.Forbidden(w, r)
		return
	}
	if err := app.services.Comments.Delete(r.Context(), titleID, reviewID, commentID); err != nil {
		app.mapCommentError(w, r, err)
		return
	}
	app.Http.NoContent(w, r)
}
