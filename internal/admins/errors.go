package admins

import "errors"

var (
	ErrNotFound           = errors.New("admin not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrDuplicateEmail     = errors.New("an admin with this email already exists")
	ErrStoreUnavailable   = errors.New("admin store unavailable")
)
