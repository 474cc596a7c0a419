package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoToggleStatusReturnsNewStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	id := "3a0f5c8e-1d2b-4c6e-8f9a-7b1c2d3e4f50"
	at := time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("UPDATE jobs").
		WithArgs(at, id).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("inactive"))

	status, err := repo.ToggleStatus(context.Background(), id, at)
	if err != nil {
		t.Fatalf("ToggleStatus: %v", err)
	}
	if status != StatusInactive {
		t.Fatalf("expected inactive, got %s", status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListFiltersByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	mock.ExpectQuery("SELECT (.+) FROM jobs").
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "country", "location", "salary", "job_type", "description", "status", "created_at", "updated_at"}).
			AddRow("3a0f5c8e-1d2b-4c6e-8f9a-7b1c2d3e4f50", "Hotel Staff", "Qatar", "Doha", nil, "Full-time", nil, "active", now, now))

	items, err := repo.List(context.Background(), StatusActive)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].Type != TypeFullTime || items[0].Salary != "" {
		t.Fatalf("unexpected items: %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
