package client

import "errors"

var (
	ErrUnavailable    = errors.New("server unavailable")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrAlreadyExists  = errors.New("account already exists")
	ErrInvalidRequest = errors.New("request rejected")
	ErrNotFound       = errors.New("not found")
	ErrNotLoggedIn    = errors.New("not logged in")
)
