package candidates

import "context"

// Repo defines persistence operations for candidates.
type Repo interface {
	Create(ctx context.Context, c Candidate) error
	GetByID(ctx context.Context, id string) (Candidate, error)
	// List returns every candidate, newest first.
	List(ctx context.Context) ([]Candidate, error)
	// Update replaces the stored record with the same ID.
	Update(ctx context.Context, c Candidate) error
	Delete(ctx context.Context, id string) error
	// ExistsPassport reports whether a candidate other than excludeID holds passport.
	ExistsPassport(ctx context.Context, passport, excludeID string) (bool, error)
	ExistsTrackingID(ctx context.Context, code string) (bool, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status Status) (int, error)
}
