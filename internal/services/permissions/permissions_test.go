package permissions

import (
	"net/http"
	"testing"

	"reviewhub/proj/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestCanModifyObject(t *testing.T) {
	owner := &models.User{ID: 7, Role: models.RoleUser}
	other := &models.User{ID: 8, Role: models.RoleUser}
	moderator := &models.User{ID: 9, Role: models.RoleModerator}
	admin := &models.User{ID: 10, Role: models.RoleAdmin}
	staff := &models.User{ID: 11, Role: models.RoleUser, IsStaff: true}

	cases := []struct {
		name   string
		user   *models.User
		method string
		want   bool
	}{
		{"anonymous read", models.AnonymousUser, http.MethodGet, true},
		{"anonymous write", models.AnonymousUser, http.MethodDelete, false},
		{"nil user write", nil, http.MethodPatch, false},
		{"owner write", owner, http.MethodPatch, true},
		{"non-owner write", other, http.MethodPatch, false},
		{"non-owner read", other, http.MethodGet, true},
		{"moderator write", moderator, http.MethodDelete, true},
		{"admin write", admin, http.MethodDelete, true},
		{"staff write", staff, http.MethodPatch, true},
		{"head is safe", other, http.MethodHead, true},
		{"options is safe", other, http.MethodOptions, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanModifyObject(tc.user, owner.ID, tc.method))
		})
	}
}

func TestCanAdminister(t *testing.T) {
	assert.False(t, CanAdminister(models.AnonymousUser))
	assert.False(t, CanAdminister(&models.User{Role: models.RoleUser}))
	assert.False(t, CanAdminister(&models.User{Role: models.RoleModerator}))
	assert.True(t, CanAdminister(&models.User{Role: models.RoleAdmin}))
	assert.True(t, CanAdminister(&models.User{Role: models.RoleUser, IsStaff: true}))
}
