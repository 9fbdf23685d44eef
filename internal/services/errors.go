package services

import "errors"

var (
	// ErrInvalidCredentials is returned when a password does not match the stored hash.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotLoggedIn is returned by operations that need a logged-in user.
	ErrNotLoggedIn = errors.New("not logged in")
)
