package tracking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"genius-backend/internal/shared/storage/db"
)

// PGRepo implements Repo using Postgres. The timeline lives in a JSONB column.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, tracking_id, candidate_id, candidate_name, passport_number, job_title, destination, status, timeline, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var r Record
	var candidateID sql.NullString
	var status string
	var timeline []byte
	err := row.Scan(
		&r.ID,
		&r.TrackingID,
		&candidateID,
		&r.CandidateName,
		&r.PassportNumber,
		&r.JobTitle,
		&r.Destination,
		&status,
		&timeline,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return Record{}, err
	}
	if candidateID.Valid {
		r.CandidateID = candidateID.String
	}
	r.Status = Status(status)
	if len(timeline) > 0 {
		if err := json.Unmarshal(timeline, &r.Timeline); err != nil {
			return Record{}, fmt.Errorf("decode timeline: %w", err)
		}
	}
	return r, nil
}

func encodeTimeline(steps []TimelineStep) ([]byte, error) {
	if steps == nil {
		steps = []TimelineStep{}
	}
	return json.Marshal(steps)
}

// Create inserts a new tracking record.
func (p *PGRepo) Create(ctx context.Context, r Record) error {
	timeline, err := encodeTimeline(r.Timeline)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO tracking (
    id,
    tracking_id,
    candidate_id,
    candidate_name,
    passport_number,
    job_title,
    destination,
    status,
    timeline,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = p.DB.ExecContext(ctx, query,
		r.ID,
		r.TrackingID,
		nullableUUID(r.CandidateID),
		r.CandidateName,
		r.PassportNumber,
		r.JobTitle,
		r.Destination,
		string(r.Status),
		timeline,
		r.CreatedAt,
		r.UpdatedAt,
	)
	if db.IsUniqueViolation(err, "tracking_tracking_id_key") {
		return ErrDuplicateTrackingCode
	}
	return err
}

// GetByID fetches a record by its store key.
func (p *PGRepo) GetByID(ctx context.Context, id string) (Record, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Record{}, ErrNotFound
	}
	query := `SELECT ` + selectColumns + ` FROM tracking WHERE id = $1 LIMIT 1`
	return p.getOne(ctx, query, id)
}

// GetByTrackingID fetches a record by its public code.
func (p *PGRepo) GetByTrackingID(ctx context.Context, code string) (Record, error) {
	query := `SELECT ` + selectColumns + ` FROM tracking WHERE tracking_id = $1 LIMIT 1`
	return p.getOne(ctx, query, code)
}

func (p *PGRepo) getOne(ctx context.Context, query string, arg any) (Record, error) {
	r, err := scanRecord(p.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return r, nil
}

// List returns all records ordered newest-first.
func (p *PGRepo) List(ctx context.Context) ([]Record, error) {
	query := `SELECT ` + selectColumns + ` FROM tracking ORDER BY created_at DESC, id`
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Update writes status and timeline. Snapshot columns are never touched.
func (p *PGRepo) Update(ctx context.Context, r Record) error {
	if _, err := uuid.Parse(r.ID); err != nil {
		return ErrNotFound
	}
	timeline, err := encodeTimeline(r.Timeline)
	if err != nil {
		return err
	}
	const query = `
UPDATE tracking
SET status = $1, timeline = $2, updated_at = $3
WHERE id = $4`
	res, err := p.DB.ExecContext(ctx, query, string(r.Status), timeline, r.UpdatedAt, r.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes a record.
func (p *PGRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	res, err := p.DB.ExecContext(ctx, `DELETE FROM tracking WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (p *PGRepo) ExistsTrackingID(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := p.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM tracking WHERE tracking_id = $1)`, code).Scan(&exists)
	return exists, err
}

func (p *PGRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := p.DB.QueryRowContext(ctx, `SELECT count(*) FROM tracking`).Scan(&n)
	return n, err
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableUUID(value string) any {
	if _, err := uuid.Parse(value); err != nil {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
