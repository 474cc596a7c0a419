package tracking

import "context"

// Repo defines persistence operations for tracking records.
type Repo interface {
	Create(ctx context.Context, r Record) error
	GetByID(ctx context.Context, id string) (Record, error)
	// GetByTrackingID is an exact match on the public code.
	GetByTrackingID(ctx context.Context, code string) (Record, error)
	List(ctx context.Context) ([]Record, error)
	// Update stores status, timeline and updatedAt of the record with r.ID.
	Update(ctx context.Context, r Record) error
	Delete(ctx context.Context, id string) error
	ExistsTrackingID(ctx context.Context, code string) (bool, error)
	Count(ctx context.Context) (int, error)
}
