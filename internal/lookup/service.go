// Package lookup answers public tracking-code queries without a session.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"genius-backend/internal/trackcode"
	"genius-backend/internal/tracking"
)

var (
	ErrNotFound         = errors.New("no tracking information found")
	ErrStoreUnavailable = errors.New("tracking store unavailable")
)

// Finder is an exact-match query on the public tracking code.
type Finder interface {
	GetByTrackingID(ctx context.Context, code string) (tracking.Record, error)
}

// Step is a timeline step as shown to the public.
type Step struct {
	Step  string `json:"step"`
	Date  string `json:"date"`
	Note  string `json:"note,omitempty"`
	State string `json:"state"`
}

// Result is the public view of a tracking record. It carries no passport,
// contact or candidate identifiers.
type Result struct {
	TrackingID  string    `json:"trackingId"`
	Status      string    `json:"status"`
	Destination string    `json:"destination"`
	JobTitle    string    `json:"jobTitle"`
	Timeline    []Step    `json:"timeline"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Service resolves tracking codes.
type Service struct {
	Finder Finder
}

// NewService constructs a Service.
func NewService(finder Finder) *Service {
	return &Service{Finder: finder}
}

// FindByCode returns the public view of the record holding code. The code is
// trimmed and upper-cased before the exact match, since codes are minted upper-case.
func (s *Service) FindByCode(ctx context.Context, code string) (Result, error) {
	code = trackcode.Normalize(code)
	if !trackcode.Valid(code) {
		return Result{}, ErrNotFound
	}
	rec, err := s.Finder.GetByTrackingID(ctx, code)
	if err != nil {
		if errors.Is(err, tracking.ErrNotFound) {
			return Result{}, ErrNotFound
		}
		return Result{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return toResult(rec), nil
}

func toResult(rec tracking.Record) Result {
	steps := make([]Step, 0, len(rec.Timeline))
	for _, s := range rec.Timeline {
		steps = append(steps, Step{
			Step: s.Step,
			Date: s.Date,
			Note: s.Note,
			// Visitors always see every recorded step as done.
			State: string(tracking.StateCompleted),
		})
	}
	return Result{
		TrackingID:  rec.TrackingID,
		Status:      string(rec.Status),
		Destination: rec.Destination,
		JobTitle:    rec.JobTitle,
		Timeline:    steps,
		UpdatedAt:   rec.UpdatedAt,
	}
}
