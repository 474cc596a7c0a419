package tracking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"genius-backend/internal/candidates"
	"genius-backend/internal/shared/metrics"
	"genius-backend/internal/shared/telemetry"
	"genius-backend/internal/trackcode"
)

const dateLayout = "2006-01-02"

// CandidateSource reads the candidate a record is opened for.
type CandidateSource interface {
	Get(ctx context.Context, id string) (candidates.Candidate, error)
}

// Service contains business logic for tracking records.
type Service struct {
	Repo       Repo
	Candidates CandidateSource
	Codes      trackcode.Checker
	Now        func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo, source CandidateSource, codes trackcode.Checker) *Service {
	if codes.Scope == "" {
		codes.Scope = "tracking"
	}
	return &Service{Repo: repo, Candidates: source, Codes: codes, Now: time.Now}
}

// Create opens a tracking record for an existing candidate, copying the
// candidate's name, passport, job title and country at this instant.
func (s *Service) Create(ctx context.Context, in CreateInput) (Record, error) {
	candidateID := strings.TrimSpace(in.CandidateID)
	if candidateID == "" {
		return Record{}, fmt.Errorf("%w: candidateId is required", ErrInvalidInput)
	}
	status, err := resolveStatus(in.Status, StatusProcessing)
	if err != nil {
		return Record{}, err
	}
	if len(in.Timeline) == 0 {
		return Record{}, ErrEmptyTimeline
	}
	timeline, err := normalizeTimeline(in.Timeline)
	if err != nil {
		return Record{}, err
	}

	cand, err := s.Candidates.Get(ctx, candidateID)
	if err != nil {
		if errors.Is(err, candidates.ErrNotFound) {
			return Record{}, ErrCandidateNotFound
		}
		return Record{}, storeErr(err)
	}

	code, err := s.Codes.Mint(ctx, s.Repo.ExistsTrackingID)
	if err != nil {
		if errors.Is(err, trackcode.ErrCodeSpaceExhausted) {
			return Record{}, ErrDuplicateTrackingCode
		}
		return Record{}, storeErr(err)
	}

	now := s.now()
	rec := Record{
		ID:             uuid.NewString(),
		TrackingID:     code,
		CandidateID:    cand.ID,
		CandidateName:  cand.FullName,
		PassportNumber: cand.PassportNumber,
		JobTitle:       cand.JobTitle,
		Destination:    cand.Country,
		Status:         status,
		Timeline:       timeline,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		return Record{}, storeErr(err)
	}

	metrics.IncTrackingCreated()
	telemetry.Info("tracking.created", map[string]any{
		"tracking_record_id": rec.ID,
		"tracking_id":        rec.TrackingID,
		"candidate_id":       rec.CandidateID,
	})
	return rec, nil
}

// Get returns a record by store key.
func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, ErrNotFound
	}
	rec, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Record{}, storeErr(err)
	}
	return rec, nil
}

// List returns every record in store order.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	out, err := s.Repo.List(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

// Search matches term case-insensitively against tracking code, candidate
// name and passport number. A blank term returns the full list.
func (s *Service) Search(ctx context.Context, term string) ([]Record, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return all, nil
	}
	out := []Record{}
	for _, r := range all {
		if strings.Contains(strings.ToLower(r.TrackingID), term) ||
			strings.Contains(strings.ToLower(r.CandidateName), term) ||
			strings.Contains(strings.ToLower(r.PassportNumber), term) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Update replaces status and timeline. Echoed snapshot fields must match the
// stored record. An empty status keeps the stored one.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Record, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if err := checkImmutable(existing, in); err != nil {
		return Record{}, err
	}
	status, err := resolveStatus(in.Status, existing.Status)
	if err != nil {
		return Record{}, err
	}
	if len(in.Timeline) == 0 {
		return Record{}, ErrMinimumStepsRequired
	}
	timeline, err := normalizeTimeline(in.Timeline)
	if err != nil {
		return Record{}, err
	}

	updated := existing
	updated.Status = status
	updated.Timeline = timeline
	updated.UpdatedAt = s.now()
	if err := s.save(ctx, existing, updated); err != nil {
		return Record{}, err
	}
	return updated, nil
}

// AddTimelineStep appends step to the end of the timeline.
func (s *Service) AddTimelineStep(ctx context.Context, id string, step TimelineStep) (Record, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}
	normalized, err := normalizeStep(step)
	if err != nil {
		return Record{}, err
	}

	updated := existing
	updated.Timeline = append(cloneTimeline(existing.Timeline), normalized)
	updated.UpdatedAt = s.now()
	if err := s.save(ctx, existing, updated); err != nil {
		return Record{}, err
	}
	return updated, nil
}

// RemoveTimelineStep drops the step at index. The last remaining step cannot
// be removed.
func (s *Service) RemoveTimelineStep(ctx context.Context, id string, index int) (Record, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if index < 0 || index >= len(existing.Timeline) {
		return Record{}, fmt.Errorf("%w: step index %d out of range", ErrInvalidInput, index)
	}
	if len(existing.Timeline) <= 1 {
		return Record{}, ErrMinimumStepsRequired
	}

	timeline := make([]TimelineStep, 0, len(existing.Timeline)-1)
	timeline = append(timeline, existing.Timeline[:index]...)
	timeline = append(timeline, existing.Timeline[index+1:]...)

	updated := existing
	updated.Timeline = timeline
	updated.UpdatedAt = s.now()
	if err := s.save(ctx, existing, updated); err != nil {
		return Record{}, err
	}
	return updated, nil
}

// Delete removes a record.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return storeErr(err)
	}
	telemetry.Info("tracking.deleted", map[string]any{"tracking_record_id": id})
	return nil
}

// Count returns the number of stored records.
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return 0, storeErr(err)
	}
	return n, nil
}

func (s *Service) save(ctx context.Context, before, after Record) error {
	if err := s.Repo.Update(ctx, after); err != nil {
		return storeErr(err)
	}
	fields := map[string]any{
		"tracking_record_id": after.ID,
		"tracking_id":        after.TrackingID,
		"steps":              len(after.Timeline),
	}
	if before.Status != after.Status {
		fields["status_from"] = string(before.Status)
		fields["status_to"] = string(after.Status)
	}
	telemetry.Info("tracking.updated", fields)
	return nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func resolveStatus(raw string, fallback Status) (Status, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	status, ok := ParseStatus(raw)
	if !ok {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, raw)
	}
	return status, nil
}

func normalizeTimeline(steps []TimelineStep) ([]TimelineStep, error) {
	out := make([]TimelineStep, 0, len(steps))
	for i, step := range steps {
		normalized, err := normalizeStep(step)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		out = append(out, normalized)
	}
	return out, nil
}

func normalizeStep(step TimelineStep) (TimelineStep, error) {
	step.Step = strings.TrimSpace(step.Step)
	step.Date = strings.TrimSpace(step.Date)
	step.Note = strings.TrimSpace(step.Note)
	step.State = StepState(strings.ToLower(strings.TrimSpace(string(step.State))))

	if step.Step == "" {
		return TimelineStep{}, fmt.Errorf("%w: step label is required", ErrInvalidInput)
	}
	if step.Date == "" {
		return TimelineStep{}, fmt.Errorf("%w: step date is required", ErrInvalidInput)
	}
	if _, err := time.Parse(dateLayout, step.Date); err != nil {
		return TimelineStep{}, fmt.Errorf("%w: step date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if step.State == "" {
		step.State = StateCompleted
	}
	if !step.State.Valid() {
		return TimelineStep{}, fmt.Errorf("%w: unknown step state %q", ErrInvalidInput, step.State)
	}
	return step, nil
}

func checkImmutable(existing Record, in UpdateInput) error {
	strs := []struct {
		name   string
		sent   *string
		stored string
	}{
		{"trackingId", in.TrackingID, existing.TrackingID},
		{"candidateId", in.CandidateID, existing.CandidateID},
		{"candidateName", in.CandidateName, existing.CandidateName},
		{"passportNumber", in.PassportNumber, existing.PassportNumber},
		{"jobTitle", in.JobTitle, existing.JobTitle},
		{"destination", in.Destination, existing.Destination},
	}
	for _, f := range strs {
		if f.sent != nil && strings.TrimSpace(*f.sent) != f.stored {
			return fmt.Errorf("%w: %s", ErrImmutableField, f.name)
		}
	}
	if in.CreatedAt != nil && !in.CreatedAt.Equal(existing.CreatedAt) {
		return fmt.Errorf("%w: createdAt", ErrImmutableField)
	}
	return nil
}

// storeErr passes domain errors through and marks anything else as a store failure.
func storeErr(err error) error {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrCandidateNotFound),
		errors.Is(err, ErrDuplicateTrackingCode),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
