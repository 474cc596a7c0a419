package tracking

import "errors"

var (
	ErrNotFound              = errors.New("tracking record not found")
	ErrCandidateNotFound     = errors.New("candidate not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrEmptyTimeline         = errors.New("timeline must contain at least one step")
	ErrMinimumStepsRequired  = errors.New("a tracking record must keep at least one timeline step")
	ErrImmutableField        = errors.New("field cannot be changed")
	ErrDuplicateTrackingCode = errors.New("could not assign a unique tracking code")
	ErrStoreUnavailable      = errors.New("tracking store unavailable")
)
