package tracking

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo. Timelines are copied on
// the way in and out so callers never share a slice with the store.
type MemoryRepo struct {
	mu    sync.RWMutex
	byID  map[string]Record
	order []string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Record)}
}

func (m *MemoryRepo) Create(ctx context.Context, r Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.TrackingID == r.TrackingID {
			return ErrDuplicateTrackingCode
		}
	}
	m.byID[r.ID] = cloneRecord(r)
	m.order = append(m.order, r.ID)
	return nil
}

func (m *MemoryRepo) GetByID(ctx context.Context, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.byID[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return cloneRecord(r), nil
}

func (m *MemoryRepo) GetByTrackingID(ctx context.Context, code string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.byID {
		if r.TrackingID == code {
			return cloneRecord(r), nil
		}
	}
	return Record{}, ErrNotFound
}

func (m *MemoryRepo) List(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Record, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		out = append(out, cloneRecord(m.byID[m.order[i]]))
	}
	return out, nil
}

func (m *MemoryRepo) Update(ctx context.Context, r Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.byID[r.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Status = r.Status
	existing.Timeline = cloneTimeline(r.Timeline)
	existing.UpdatedAt = r.UpdatedAt
	m.byID[r.ID] = existing
	return nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryRepo) ExistsTrackingID(ctx context.Context, code string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.byID {
		if r.TrackingID == code {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryRepo) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID), nil
}

var _ Repo = (*MemoryRepo)(nil)
