// Package dashboard summarizes record counts for the admin home page.
package dashboard

import (
	"context"
	"errors"
	"fmt"

	"genius-backend/internal/candidates"
)

var ErrStoreUnavailable = errors.New("dashboard stats unavailable")

// Stats is the admin overview.
type Stats struct {
	TotalJobs         int `json:"totalJobs"`
	ActiveJobs        int `json:"activeJobs"`
	TotalCandidates   int `json:"totalCandidates"`
	PendingCandidates int `json:"pendingCandidates"`
	TotalTracking     int `json:"totalTracking"`
}

type JobCounter interface {
	Count(ctx context.Context) (int, error)
	CountActive(ctx context.Context) (int, error)
}

type CandidateCounter interface {
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status candidates.Status) (int, error)
}

type TrackingCounter interface {
	Count(ctx context.Context) (int, error)
}

// Service gathers counts from the registries.
type Service struct {
	Jobs       JobCounter
	Candidates CandidateCounter
	Tracking   TrackingCounter
}

func NewService(jobs JobCounter, cands CandidateCounter, tracking TrackingCounter) *Service {
	return &Service{Jobs: jobs, Candidates: cands, Tracking: tracking}
}

// Stats returns the current counts. Any failed count fails the whole call.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	steps := []struct {
		name string
		dst  *int
		fn   func(context.Context) (int, error)
	}{
		{"jobs", &st.TotalJobs, s.Jobs.Count},
		{"active jobs", &st.ActiveJobs, s.Jobs.CountActive},
		{"candidates", &st.TotalCandidates, s.Candidates.Count},
		{"pending candidates", &st.PendingCandidates, func(ctx context.Context) (int, error) {
			return s.Candidates.CountByStatus(ctx, candidates.StatusPending)
		}},
		{"tracking", &st.TotalTracking, s.Tracking.Count},
	}
	for _, step := range steps {
		n, err := step.fn(ctx)
		if err != nil {
			return Stats{}, fmt.Errorf("%w: count %s: %w", ErrStoreUnavailable, step.name, err)
		}
		*step.dst = n
	}
	return st, nil
}
