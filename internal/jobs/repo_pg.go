package jobs

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, title, country, location, salary, job_type, description, status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPosting(row rowScanner) (Posting, error) {
	var p Posting
	var salary sql.NullString
	var jobType string
	var description sql.NullString
	var status string
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Country,
		&p.Location,
		&salary,
		&jobType,
		&description,
		&status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return Posting{}, err
	}
	if salary.Valid {
		p.Salary = salary.String
	}
	if description.Valid {
		p.Description = description.String
	}
	p.Type = Type(jobType)
	p.Status = Status(status)
	return p, nil
}

// Create inserts a new posting.
func (r *PGRepo) Create(ctx context.Context, p Posting) error {
	const query = `
INSERT INTO jobs (id, title, country, location, salary, job_type, description, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.DB.ExecContext(ctx, query,
		p.ID,
		p.Title,
		p.Country,
		p.Location,
		nullableString(p.Salary),
		string(p.Type),
		nullableString(p.Description),
		string(p.Status),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Posting, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Posting{}, ErrNotFound
	}
	query := `SELECT ` + selectColumns + ` FROM jobs WHERE id = $1 LIMIT 1`
	p, err := scanPosting(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Posting{}, ErrNotFound
		}
		return Posting{}, err
	}
	return p, nil
}

// List returns postings newest-first, optionally filtered by status.
func (r *PGRepo) List(ctx context.Context, status Status) ([]Posting, error) {
	query := `SELECT ` + selectColumns + ` FROM jobs WHERE ($1 = '' OR status = $1) ORDER BY created_at DESC, id`
	rows, err := r.DB.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Posting{}
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, p Posting) error {
	if _, err := uuid.Parse(p.ID); err != nil {
		return ErrNotFound
	}
	const query = `
UPDATE jobs
SET title = $1, country = $2, location = $3, salary = $4, job_type = $5, description = $6, status = $7, updated_at = $8
WHERE id = $9`
	res, err := r.DB.ExecContext(ctx, query,
		p.Title,
		p.Country,
		p.Location,
		nullableString(p.Salary),
		string(p.Type),
		nullableString(p.Description),
		string(p.Status),
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PGRepo) ToggleStatus(ctx context.Context, id string, at time.Time) (Status, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", ErrNotFound
	}
	const query = `
UPDATE jobs
SET status = CASE WHEN status = 'active' THEN 'inactive' ELSE 'active' END,
    updated_at = $1
WHERE id = $2
RETURNING status`
	var status string
	if err := r.DB.QueryRowContext(ctx, query, at, id).Scan(&status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return Status(status), nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PGRepo) Count(ctx context.Context, status Status) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM jobs WHERE ($1 = '' OR status = $1)`, string(status)).Scan(&n)
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

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
