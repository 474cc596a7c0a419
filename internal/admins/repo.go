package admins

import "context"

// Repo defines persistence operations for admins. Emails are compared
// case-insensitively.
type Repo interface {
	Create(ctx context.Context, a Admin) error
	GetByID(ctx context.Context, id string) (Admin, error)
	GetByEmail(ctx context.Context, email string) (Admin, error)
	UpdatePassword(ctx context.Context, id, hash string) error
}
