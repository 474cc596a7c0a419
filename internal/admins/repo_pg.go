package admins

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"genius-backend/internal/shared/storage/db"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, a Admin) error {
	const query = `
INSERT INTO admins (id, email, name, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query,
		a.ID,
		a.Email,
		nullableString(a.Name),
		a.PasswordHash,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if db.IsUniqueViolation(err, "admins_email_key") {
		return ErrDuplicateEmail
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Admin, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Admin{}, ErrNotFound
	}
	const query = `
SELECT id, email, name, password_hash, created_at, updated_at
FROM admins
WHERE id = $1
LIMIT 1`
	return r.getOne(ctx, query, id)
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (Admin, error) {
	const query = `
SELECT id, email, name, password_hash, created_at, updated_at
FROM admins
WHERE lower(email) = lower($1)
LIMIT 1`
	return r.getOne(ctx, query, email)
}

func (r *PGRepo) getOne(ctx context.Context, query string, arg any) (Admin, error) {
	var a Admin
	var name sql.NullString
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&a.ID,
		&a.Email,
		&name,
		&a.PasswordHash,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Admin{}, ErrNotFound
		}
		return Admin{}, err
	}
	if name.Valid {
		a.Name = name.String
	}
	return a, nil
}

func (r *PGRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	const query = `UPDATE admins SET password_hash = $1, updated_at = now() WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, hash, id)
	if err != nil {
		return err
	}
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
