package candidates

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"genius-backend/internal/shared/metrics"
	"genius-backend/internal/shared/telemetry"
	"genius-backend/internal/trackcode"
)

// Service contains business logic for candidates.
type Service struct {
	Repo  Repo
	Codes trackcode.Checker
	Now   func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo, codes trackcode.Checker) *Service {
	if codes.Scope == "" {
		codes.Scope = "candidates"
	}
	return &Service{Repo: repo, Codes: codes, Now: time.Now}
}

// Create validates input, mints a tracking code and stores a new candidate.
func (s *Service) Create(ctx context.Context, in Input) (Candidate, error) {
	in, err := normalize(in, StatusPending)
	if err != nil {
		return Candidate{}, err
	}

	taken, err := s.Repo.ExistsPassport(ctx, in.PassportNumber, "")
	if err != nil {
		return Candidate{}, storeErr(err)
	}
	if taken {
		return Candidate{}, ErrDuplicatePassport
	}

	code, err := s.Codes.Mint(ctx, s.Repo.ExistsTrackingID)
	if err != nil {
		if errors.Is(err, trackcode.ErrCodeSpaceExhausted) {
			return Candidate{}, ErrDuplicateTrackingCode
		}
		return Candidate{}, storeErr(err)
	}

	now := s.now()
	c := Candidate{
		ID:             uuid.NewString(),
		FullName:       in.FullName,
		PassportNumber: in.PassportNumber,
		Country:        in.Country,
		JobTitle:       in.JobTitle,
		Phone:          in.Phone,
		Email:          in.Email,
		Status:         Status(in.Status),
		Notes:          in.Notes,
		TrackingID:     code,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return Candidate{}, storeErr(err)
	}

	metrics.IncCandidatesCreated()
	telemetry.Info("candidate.created", map[string]any{
		"candidate_id": c.ID,
		"tracking_id":  c.TrackingID,
	})
	return c, nil
}

// Get returns a candidate by ID.
func (s *Service) Get(ctx context.Context, id string) (Candidate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Candidate{}, ErrNotFound
	}
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Candidate{}, storeErr(err)
	}
	return c, nil
}

// List returns every candidate in store order.
func (s *Service) List(ctx context.Context) ([]Candidate, error) {
	out, err := s.Repo.List(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

// Search matches term case-insensitively against name, tracking code and
// passport number. A blank term returns the full list.
func (s *Service) Search(ctx context.Context, term string) ([]Candidate, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return all, nil
	}
	out := []Candidate{}
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.FullName), term) ||
			strings.Contains(strings.ToLower(c.TrackingID), term) ||
			strings.Contains(strings.ToLower(c.PassportNumber), term) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Update replaces the editable fields of a candidate. The tracking code and
// creation time always come from the stored record. An empty status keeps the
// stored one.
func (s *Service) Update(ctx context.Context, id string, in Input) (Candidate, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return Candidate{}, err
	}
	in, err = normalize(in, existing.Status)
	if err != nil {
		return Candidate{}, err
	}

	if in.PassportNumber != existing.PassportNumber {
		taken, err := s.Repo.ExistsPassport(ctx, in.PassportNumber, existing.ID)
		if err != nil {
			return Candidate{}, storeErr(err)
		}
		if taken {
			return Candidate{}, ErrDuplicatePassport
		}
	}

	updated := existing
	updated.FullName = in.FullName
	updated.PassportNumber = in.PassportNumber
	updated.Country = in.Country
	updated.JobTitle = in.JobTitle
	updated.Phone = in.Phone
	updated.Email = in.Email
	updated.Status = Status(in.Status)
	updated.Notes = in.Notes
	updated.UpdatedAt = s.now()

	if err := s.Repo.Update(ctx, updated); err != nil {
		return Candidate{}, storeErr(err)
	}
	if updated.Status != existing.Status {
		telemetry.Info("candidate.status_changed", map[string]any{
			"candidate_id": updated.ID,
			"from":         string(existing.Status),
			"to":           string(updated.Status),
		})
	}
	return updated, nil
}

// Delete removes a candidate. Tracking records referencing it are kept.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return storeErr(err)
	}
	telemetry.Info("candidate.deleted", map[string]any{"candidate_id": id})
	return nil
}

// Count returns the number of stored candidates.
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return 0, storeErr(err)
	}
	return n, nil
}

// CountByStatus returns the number of candidates in status.
func (s *Service) CountByStatus(ctx context.Context, status Status) (int, error) {
	n, err := s.Repo.CountByStatus(ctx, status)
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

func normalize(in Input, defaultStatus Status) (Input, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.PassportNumber = strings.ToUpper(strings.TrimSpace(in.PassportNumber))
	in.Country = strings.TrimSpace(in.Country)
	in.JobTitle = strings.TrimSpace(in.JobTitle)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	in.Notes = strings.TrimSpace(in.Notes)

	required := []struct {
		name  string
		value string
	}{
		{"fullName", in.FullName},
		{"passportNumber", in.PassportNumber},
		{"phone", in.Phone},
		{"email", in.Email},
		{"jobTitle", in.JobTitle},
		{"country", in.Country},
	}
	for _, field := range required {
		if field.value == "" {
			return Input{}, fmt.Errorf("%w: %s is required", ErrInvalidInput, field.name)
		}
	}

	if addr, err := mail.ParseAddress(in.Email); err != nil || addr.Address != in.Email {
		return Input{}, fmt.Errorf("%w: email is not a valid address", ErrInvalidInput)
	}

	if in.Status == "" {
		in.Status = string(defaultStatus)
	}
	if !Status(in.Status).Valid() {
		return Input{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, in.Status)
	}
	return in, nil
}

// storeErr passes domain errors through and marks anything else as a store failure.
func storeErr(err error) error {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrDuplicatePassport),
		errors.Is(err, ErrDuplicateTrackingCode),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
