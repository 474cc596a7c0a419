package jobs

import (
	"context"
	"time"
)

// Repo defines persistence operations for job postings.
type Repo interface {
	Create(ctx context.Context, p Posting) error
	GetByID(ctx context.Context, id string) (Posting, error)
	// List returns postings newest first; an empty status means all.
	List(ctx context.Context, status Status) ([]Posting, error)
	Update(ctx context.Context, p Posting) error
	// ToggleStatus flips active and inactive in one write and returns the new status.
	ToggleStatus(ctx context.Context, id string, at time.Time) (Status, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, status Status) (int, error)
}
