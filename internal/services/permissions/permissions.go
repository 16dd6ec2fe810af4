// Package permissions holds the role/ownership access decisions as plain
// functions, so they can be tested without a request in sight.
package permissions

import (
	"net/http"

	"reviewhub/proj/internal/domain/models"
)

// IsSafeMethod reports whether the HTTP verb is read-only.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// CanAdminister gates the admin-only surfaces (user management,
// category/genre/title writes).
func CanAdminister(u *models.User) bool {
	return u.IsAdmin()
}

// CanModifyObject decides object-level access for reviews and comments:
// reads are open, writes need admin, moderator or authorship.
func CanModifyObject(u *models.User, ownerID int64, method string) bool {
	if IsSafeMethod(method) {
		return true
	}
	if u.IsAnonymous() {
		return false
	}
	return u.IsAdmin() || u.IsModerator() || u.ID == ownerID
}
