package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewhub/proj/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func requestAsUser(user *models.User) *http.Request {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	return request.WithContext(context.WithValue(request.Context(), CtxKeyUser, user))
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRequireAuthenticatedUser(t *testing.T) {
	app := NewTestApplication(nil, t)
	t.Run("authenticated", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := requestAsUser(&models.User{
			ID:       1,
			Username: "test",
			Email:    "test@example.com",
			Role:     models.RoleUser,
		})
		app.requireAuthenticatedUser(okHandler).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
	t.Run("anonymous", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := requestAsUser(models.AnonymousUser)
		app.requireAuthenticatedUser(okHandler).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	app := NewTestApplication(nil, t)
	cases := []struct {
		name     string
		user     *models.User
		expected int
	}{
		{"admin role", &models.User{ID: 1, Username: "boss", Role: models.RoleAdmin}, http.StatusOK},
		{"staff flag", &models.User{ID: 2, Username: "ops", Role: models.RoleUser, IsStaff: true}, http.StatusOK},
		{"moderator", &models.User{ID: 3, Username: "mod", Role: models.RoleModerator}, http.StatusForbidden},
		{"plain user", &models.User{ID: 4, Username: "joe", Role: models.RoleUser}, http.StatusForbidden},
		{"anonymous", models.AnonymousUser, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			app.requireAdmin(okHandler).ServeHTTP(recorder, requestAsUser(tc.user))
			assert.Equal(t, tc.expected, recorder.Code)
		})
	}
}
