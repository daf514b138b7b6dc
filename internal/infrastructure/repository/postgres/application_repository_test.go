package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
)

func TestApplicationRepositoryListScopesByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewApplicationRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "owner_id", "company", "location", "position", "status",
		"applied_on", "appointment_at", "color", "created_at", "updated_at",
	}).AddRow("app-1", "u-1", "Acme", "Berlin", "Backend Engineer", string(domain.StatusSent), now, nil, "", now, now)

	mock.ExpectQuery("FROM applications").
		WithArgs("u-1").
		WillReturnRows(rows)

	apps, err := repo.List(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("expected 1 application, got %d", len(apps))
	}
	if apps[0].Status != domain.StatusSent {
		t.Fatalf("status not mapped, got %s", apps[0].Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestApplicationRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewApplicationRepository(db)
	mock.ExpectQuery("FROM applications").
		WithArgs("u-1", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetByID(context.Background(), "u-1", "missing")
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestApplicationRepositoryDeleteMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewApplicationRepository(db)
	mock.ExpectExec("DELETE FROM applications").
		WithArgs("u-1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), "u-1", "missing")
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
