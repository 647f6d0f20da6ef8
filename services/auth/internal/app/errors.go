package app

import "jobboard/internal/apperr"

var (
	ErrUserExists  = apperr.NewBadRequest("User already exists")
	ErrInvalidRole = apperr.NewBadRequest("Invalid role")

	// ErrInvalidCredentials covers both unknown email and wrong password so
	// that login cannot be used to enumerate accounts.
	ErrInvalidCredentials = apperr.NewUnauthorized("Invalid email or password")

	ErrPasswordTooLong = apperr.NewBadRequest("Password must be at most 72 bytes")
)
