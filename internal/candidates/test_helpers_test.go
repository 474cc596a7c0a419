package candidates

import (
	"context"
	"errors"
	"time"

	"genius-backend/internal/trackcode"
)

var errStoreDown = errors.New("dial tcp: connection refused")

func fixedNow() time.Time {
	return time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
}

// newTestService returns a memory-backed Service whose codes come from rolls in order.
func newTestService(rolls ...int) (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	i := 0
	gen := trackcode.NewGeneratorWith(fixedNow, func(int) int {
		if len(rolls) == 0 {
			i++
			return i
		}
		r := rolls[i%len(rolls)]
		i++
		return r
	})
	svc := NewService(repo, trackcode.Checker{Gen: gen, MaxAttempts: 5})
	svc.Now = fixedNow
	return svc, repo
}

func aminul() Input {
	return Input{
		FullName:       "Aminul Islam",
		PassportNumber: "BD1234567",
		Country:        "Qatar",
		JobTitle:       "Hotel Staff",
		Phone:          "+8801711000000",
		Email:          "aminul@example.com",
	}
}

// failingRepo fails every call with errStoreDown.
type failingRepo struct{}

func (failingRepo) Create(context.Context, Candidate) error { return errStoreDown }
func (failingRepo) GetByID(context.Context, string) (Candidate, error) {
	return Candidate{}, errStoreDown
}
func (failingRepo) List(context.Context) ([]Candidate, error) { return nil, errStoreDown }
func (failingRepo) Update(context.Context, Candidate) error   { return errStoreDown }
func (failingRepo) Delete(context.Context, string) error      { return errStoreDown }
func (failingRepo) ExistsPassport(context.Context, string, string) (bool, error) {
	return false, errStoreDown
}
func (failingRepo) ExistsTrackingID(context.Context, string) (bool, error) {
	return false, errStoreDown
}
func (failingRepo) Count(context.Context) (int, error)                 { return 0, errStoreDown }
func (failingRepo) CountByStatus(context.Context, Status) (int, error) { return 0, errStoreDown }
