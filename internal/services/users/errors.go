package users

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameTaken    = errors.New("username is already taken")
	ErrEmailTaken       = errors.New("email is already taken")
	ErrReservedUsername = errors.New("this username is reserved")
	ErrInvalidRole      = errors.New("unknown role")
)
