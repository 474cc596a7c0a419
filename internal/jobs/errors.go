package jobs

import "errors"

var (
	ErrNotFound         = errors.New("job posting not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("job store unavailable")
)
