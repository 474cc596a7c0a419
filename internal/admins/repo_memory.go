package admins

import (
	"context"
	"strings"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu     sync.RWMutex
	admins map[string]Admin
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{admins: make(map[string]Admin)}
}

func (r *MemoryRepo) Create(ctx context.Context, a Admin) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.admins {
		if strings.EqualFold(existing.Email, a.Email) {
			return ErrDuplicateEmail
		}
	}
	r.admins[a.ID] = a
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Admin, error) {
	if err := ctx.Err(); err != nil {
		return Admin{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.admins[id]
	if !ok {
		return Admin{}, ErrNotFound
	}
	return a, nil
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (Admin, error) {
	if err := ctx.Err(); err != nil {
		return Admin{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.admins {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return Admin{}, ErrNotFound
}

func (r *MemoryRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[id]
	if !ok {
		return ErrNotFound
	}
	a.PasswordHash = hash
	a.UpdatedAt = time.Now().UTC()
	r.admins[id] = a
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
