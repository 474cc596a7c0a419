package candidates

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"genius-backend/internal/shared/storage/db"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, full_name, passport_number, country, job_title, phone, email, status, notes, tracking_id, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row rowScanner) (Candidate, error) {
	var c Candidate
	var status string
	var notes sql.NullString
	err := row.Scan(
		&c.ID,
		&c.FullName,
		&c.PassportNumber,
		&c.Country,
		&c.JobTitle,
		&c.Phone,
		&c.Email,
		&status,
		&notes,
		&c.TrackingID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return Candidate{}, err
	}
	c.Status = Status(status)
	if notes.Valid {
		c.Notes = notes.String
	}
	return c, nil
}

// Create inserts a new candidate.
func (r *PGRepo) Create(ctx context.Context, c Candidate) error {
	const query = `
INSERT INTO candidates (
    id,
    full_name,
    passport_number,
    country,
    job_title,
    phone,
    email,
    status,
    notes,
    tracking_id,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.FullName,
		c.PassportNumber,
		c.Country,
		c.JobTitle,
		c.Phone,
		c.Email,
		string(c.Status),
		nullableString(c.Notes),
		c.TrackingID,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return mapWriteError(err)
}

// GetByID fetches a candidate by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Candidate, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Candidate{}, ErrNotFound
	}
	query := `SELECT ` + selectColumns + ` FROM candidates WHERE id = $1 LIMIT 1`
	c, err := scanCandidate(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Candidate{}, ErrNotFound
		}
		return Candidate{}, err
	}
	return c, nil
}

// List returns all candidates ordered newest-first.
func (r *PGRepo) List(ctx context.Context) ([]Candidate, error) {
	query := `SELECT ` + selectColumns + ` FROM candidates ORDER BY created_at DESC, id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update replaces every editable column; tracking_id and created_at are left alone.
func (r *PGRepo) Update(ctx context.Context, c Candidate) error {
	if _, err := uuid.Parse(c.ID); err != nil {
		return ErrNotFound
	}
	const query = `
UPDATE candidates
SET full_name = $1,
    passport_number = $2,
    country = $3,
    job_title = $4,
    phone = $5,
    email = $6,
    status = $7,
    notes = $8,
    updated_at = $9
WHERE id = $10`
	res, err := r.DB.ExecContext(ctx, query,
		c.FullName,
		c.PassportNumber,
		c.Country,
		c.JobTitle,
		c.Phone,
		c.Email,
		string(c.Status),
		nullableString(c.Notes),
		c.UpdatedAt,
		c.ID,
	)
	if err != nil {
		return mapWriteError(err)
	}
	return requireAffected(res)
}

// Delete removes a candidate. Tracking records that reference it are untouched.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PGRepo) ExistsPassport(ctx context.Context, passport, excludeID string) (bool, error) {
	const query = `
SELECT EXISTS (
    SELECT 1 FROM candidates
    WHERE passport_number = $1 AND ($2::uuid IS NULL OR id <> $2::uuid)
)`
	var exists bool
	err := r.DB.QueryRowContext(ctx, query, passport, nullableUUID(excludeID)).Scan(&exists)
	return exists, err
}

func (r *PGRepo) ExistsTrackingID(ctx context.Context, code string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM candidates WHERE tracking_id = $1)`
	var exists bool
	err := r.DB.QueryRowContext(ctx, query, code).Scan(&exists)
	return exists, err
}

func (r *PGRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM candidates`).Scan(&n)
	return n, err
}

func (r *PGRepo) CountByStatus(ctx context.Context, status Status) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM candidates WHERE status = $1`, string(status)).Scan(&n)
	return n, err
}

func mapWriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case db.IsUniqueViolation(err, "candidates_passport_number_key"):
		return ErrDuplicatePassport
	case db.IsUniqueViolation(err, "candidates_tracking_id_key"):
		return ErrDuplicateTrackingCode
	}
	return err
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

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableUUID(value string) any {
	if _, err := uuid.Parse(value); err != nil {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
