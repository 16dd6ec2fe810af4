package models

import "time"

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// ReservedUsername can never be assigned to an account. The users
// self-service endpoint lives at /users/me, so the name would shadow it.
const ReservedUsername = "me"

func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleModerator || role == RoleAdmin
}

type User struct {
	ID               int64     `json:"-" db:"id"`
	Username         string    `json:"username" db:"username"`
	Email            string    `json:"email" db:"email"`
	FirstName        string    `json:"first_name" db:"first_name"`
	LastName         string    `json:"last_name" db:"last_name"`
	Bio              string    `json:"bio" db:"bio"`
	Role             string    `json:"role" db:"role"`
	IsStaff          bool      `json:"-" db:"is_staff"`
	IsActive         bool      `json:"-" db:"is_active"`
	ConfirmationCode string    `json:"-" db:"confirmation_code"` // transient secret, cleared on token exchange
	CreatedAt        time.Time `json:"-" db:"created_at"`
	UpdatedAt        time.Time `json:"-" db:"updated_at"`
}

// AnonymousUser marks a request carrying no bearer token.
var AnonymousUser = &User{}

func (u *User) IsAnonymous() bool {
	return u == nil || u == AnonymousUser
}

func (u *User) IsAdmin() bool {
	return !u.IsAnonymous() && (u.Role == RoleAdmin || u.IsStaff)
}

func (u *User) IsModerator() bool {
	return !u.IsAnonymous() && u.Role == RoleModerator
}

type Category struct {
	ID   int64  `json:"-" db:"id"`
	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`
}

type Genre struct {
	ID   int64  `json:"-" db:"id"`
	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`
}

type Title struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Year        int32     `json:"year"`
	Rating      float64   `json:"rating"` // avg review score rounded to one decimal, 0 when unreviewed
	Description string    `json:"description"`
	Genres      []Genre   `json:"genre"`
	Category    *Category `json:"category"`
}

type Review struct {
	ID       int64     `json:"id" db:"id"`
	Text     string    `json:"text" db:"text"`
	Author   string    `json:"author" db:"author"`
	AuthorID int64     `json:"-" db:"author_id"`
	TitleID  int64     `json:"-" db:"title_id"`
	Score    int32     `json:"score" db:"score"`
	PubDate  time.Time `json:"pub_date" db:"pub_date"`
}

type Comment struct {
	ID       int64     `json:"id" db:"id"`
	Text     string    `json:"text" db:"text"`
	Author   string    `json:"author" db:"author"`
	AuthorID int64     `json:"-" db:"author_id"`
	ReviewID int64     `json:"-" db:"review_id"`
	PubDate  time.Time `json:"pub_date" db:"pub_date"`
}
