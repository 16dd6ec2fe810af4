package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(app.RateLimiter)
	router.Use(app.Authenticate)
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", app.healthcheck)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", app.signup)
			r.Post("/token", app.issueToken)
		})
		r.Route("/users", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(app.requireAuthenticatedUser)
				r.Get("/me", app.getMe)
				r.Patch("/me", app.updateMe)
			})
			r.Group(func(r chi.Router) {
				r.Use(app.requireAdmin)
				r.Get("/", app.getUsers)
				r.Post("/", app.createUser)
				r.Get("/{username}", app.getUser)
				r.Patch("/{username}", app.updateUser)
				r.Delete("/{username}", app.deleteUser)
			})
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", app.getCategories)
			r.With(app.requireAdmin).Post("/", app.createCategory)
			r.With(app.requireAdmin).Delete("/{slug}", app.deleteCategory)
		})
		r.Route("/genres", func(r chi.Router) {
			r.Get("/", app.getGenres)
			r.With(app.requireAdmin).Post("/", app.createGenre)
			r.With(app.requireAdmin).Delete("/{slug}", app.deleteGenre)
		})
		r.Route("/titles", func(r chi.Router) {
			r.Get("/", app.getTitles)
			r.With(app.requireAdmin).Post("/", app.createTitle)
			r.Get("/{title_id}", app.getTitle)
			r.With(app.requireAdmin).Patch("/{title_id}", app.updateTitle)
			r.With(app.requireAdmin).Delete("/{title_id}", app.deleteTitle)
			r.Route("/{title_id}/reviews", func(r chi.Router) {
				r.Get("/", app.getReviews)
				r.With(app.requireAuthenticatedUser).Post("/", app.createReview)
				r.Get("/{review_id}", app.getReview)
				r.With(app.requireAuthenticatedUser).Patch("/{review_id}", app.updateReview)
				r.With(app.requireAuthenticatedUser).Delete("/{review_id}", app.deleteReview)
				r.Route("/{review_id}/comments", func(r chi.Router) {
					r.Get("/", app.getComments)
					r.With(app.requireAuthenticatedUser).Post("/", app.createComment)
					r.Get("/{comment_id}", app.getComment)
					r.With(app.requireAuthenticatedUser).Patch("/{comment_id}", app.updateComment)
					r.With(app.requireAuthenticatedUser).Delete("/{comment_id}", app.deleteComment)
				})
			})
		})
	})
	return router
}
