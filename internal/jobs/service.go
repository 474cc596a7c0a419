package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"genius-backend/internal/shared/telemetry"
)

// Service contains business logic for job postings.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

func (s *Service) Create(ctx context.Context, in Input) (Posting, error) {
	fields, err := normalize(in)
	if err != nil {
		return Posting{}, err
	}
	now := s.now()
	fields.ID = uuid.NewString()
	fields.CreatedAt = now
	fields.UpdatedAt = now
	if err := s.Repo.Create(ctx, fields); err != nil {
		return Posting{}, storeErr(err)
	}
	telemetry.Info("job.created", map[string]any{"job_id": fields.ID, "status": string(fields.Status)})
	return fields, nil
}

func (s *Service) Get(ctx context.Context, id string) (Posting, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Posting{}, ErrNotFound
	}
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Posting{}, storeErr(err)
	}
	return p, nil
}

// List returns every posting, newest first.
func (s *Service) List(ctx context.Context) ([]Posting, error) {
	out, err := s.Repo.List(ctx, "")
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

// ListActive returns the postings shown on the public job board.
func (s *Service) ListActive(ctx context.Context) ([]Posting, error) {
	out, err := s.Repo.List(ctx, StatusActive)
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

// Update replaces every editable field of a posting.
func (s *Service) Update(ctx context.Context, id string, in Input) (Posting, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return Posting{}, err
	}
	if strings.TrimSpace(in.Status) == "" {
		in.Status = string(existing.Status)
	}
	fields, err := normalize(in)
	if err != nil {
		return Posting{}, err
	}
	fields.ID = existing.ID
	fields.CreatedAt = existing.CreatedAt
	fields.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, fields); err != nil {
		return Posting{}, storeErr(err)
	}
	return fields, nil
}

// ToggleStatus flips a posting between active and inactive.
func (s *Service) ToggleStatus(ctx context.Context, id string) (Posting, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Posting{}, ErrNotFound
	}
	status, err := s.Repo.ToggleStatus(ctx, id, s.now())
	if err != nil {
		return Posting{}, storeErr(err)
	}
	telemetry.Info("job.status_toggled", map[string]any{"job_id": id, "status": string(status)})
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return storeErr(err)
	}
	telemetry.Info("job.deleted", map[string]any{"job_id": id})
	return nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.Repo.Count(ctx, "")
	if err != nil {
		return 0, storeErr(err)
	}
	return n, nil
}

func (s *Service) CountActive(ctx context.Context) (int, error) {
	n, err := s.Repo.Count(ctx, StatusActive)
	if err != nil {
		return 0, storeErr(err)
	}
	return n, nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func normalize(in Input) (Posting, error) {
	p := Posting{
		Title:       strings.TrimSpace(in.Title),
		Country:     strings.TrimSpace(in.Country),
		Location:    strings.TrimSpace(in.Location),
		Salary:      strings.TrimSpace(in.Salary),
		Description: strings.TrimSpace(in.Description),
	}
	switch {
	case p.Title == "":
		return Posting{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	case p.Country == "":
		return Posting{}, fmt.Errorf("%w: country is required", ErrInvalidInput)
	case p.Location == "":
		return Posting{}, fmt.Errorf("%w: location is required", ErrInvalidInput)
	}

	jobType, ok := ParseType(in.Type)
	if !ok {
		return Posting{}, fmt.Errorf("%w: type must be one of Full-time, Part-time, Contract, Seasonal", ErrInvalidInput)
	}
	p.Type = jobType

	switch Status(strings.ToLower(strings.TrimSpace(in.Status))) {
	case "", StatusActive:
		p.Status = StatusActive
	case StatusInactive:
		p.Status = StatusInactive
	default:
		return Posting{}, fmt.Errorf("%w: status must be active or inactive", ErrInvalidInput)
	}
	return p, nil
}

func storeErr(err error) error {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
