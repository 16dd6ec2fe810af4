package main

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"reviewhub/proj/internal/config"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Http struct {
	log *slog.Logger
	cfg *config.Config
}

type envelop map[string]any

func (h *Http) setupLogPerReq(r *http.Request) *slog.Logger {
	return h.log.With(
		"request_id",
		middleware.GetReqID(r.Context()),
		"method",
		r.Method,
		"path",
		r.URL.Path,
	)
}

func (h *Http) Response(w http.ResponseWriter, r *http.Request, data any, status int) {
	render.Status(r, status)
	render.JSON(w, r, data)
}

func (h *Http) Ok(w http.ResponseWriter, r *http.Request, data any) {
	h.Response(w, r, data, http.StatusOK)
}

func (h *Http) Created(w http.ResponseWriter, r *http.Request, data any) {
	h.Response(w, r, data, http.StatusCreated)
}

func (h *Http) NoContent(w http.ResponseWriter, r *http.Request) {
	render.NoContent(w, r)
}

// List wraps listing results in the paginated envelope.
func (h *Http) List(w http.ResponseWriter, r *http.Request, count int, results any) {
	h.Ok(w, r, envelop{"count": count, "results": results})
}

// Detail renders the single-message error body used for auth and
// permission failures.
func (h *Http) Detail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	h.Response(w, r, envelop{"detail": msg}, status)
}

func (h *Http) NotFound(w http.ResponseWriter, r *http.Request, msg string) {
	if msg == "" {
		msg = "Not found."
	}
	h.Detail(w, r, http.StatusNotFound, msg)
}

func (h *Http) Unauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	if msg == "" {
		msg = "Authentication credentials were not provided."
	}
	h.Detail(w, r, http.StatusUnauthorized, msg)
}

func (h *Http) Forbidden(w http.ResponseWriter, r *http.Request) {
	h.Detail(w, r, http.StatusForbidden, "You do not have permission to perform this action.")
}

// FieldErrors renders the field-scoped error body: each offending field
// maps to a list of messages.
func (h *Http) FieldErrors(w http.ResponseWriter, r *http.Request, status int, fieldErrors map[string][]string) {
	h.Response(w, r, fieldErrors, status)
}

func (h *Http) FieldError(w http.ResponseWriter, r *http.Request, status int, field, msg string) {
	h.FieldErrors(w, r, status, map[string][]string{field: {msg}})
}

// ValidationError adapts the validator's one-message-per-field map to the
// list-valued wire shape.
func (h *Http) ValidationError(w http.ResponseWriter, r *http.Request, errs map[string]string) {
	fieldErrors := make(map[string][]string, len(errs))
	for field, msg := range errs {
		fieldErrors[field] = []string{msg}
	}
	h.FieldErrors(w, r, http.StatusBadRequest, fieldErrors)
}

func (h *Http) BadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	h.Detail(w, r, http.StatusBadRequest, msg)
}

func (h *Http) ServerError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := http.StatusInternalServerError
	log := h.setupLogPerReq(r)
	if err != nil {
		log.Error(err.Error())
	}
	if h.cfg.Debug && err != nil {
		w.WriteHeader(status)
		w.Write([]byte(err.Error() + "\n" + string(debug.Stack())))
		return
	}
	if msg == "" {
		msg = "Sorry! Can't process your request. Please try again later."
	}
	h.Detail(w, r, status, msg)
}
