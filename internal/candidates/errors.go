package candidates

import "errors"

var (
	ErrNotFound              = errors.New("candidate not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrDuplicatePassport     = errors.New("a candidate with this passport number already exists")
	ErrDuplicateTrackingCode = errors.New("could not assign a unique tracking code")
	ErrStoreUnavailable      = errors.New("candidate store unavailable")
)
