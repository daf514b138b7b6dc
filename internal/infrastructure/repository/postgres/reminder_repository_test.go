package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
)

func TestReminderRepositoryListPendingJoinsOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewReminderRepository(db)
	due := time.Date(2025, 4, 22, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "application_id", "due_at", "reminder_text", "is_completed",
		"notification_shown", "notify_before_minutes", "created_at",
		"owner_id", "company", "position",
	}).AddRow("r-1", "app-1", due, "follow up", false, false, 60, due.Add(-48*time.Hour), "u-1", "Acme", "Backend Engineer")

	mock.ExpectQuery("FROM reminders r").WillReturnRows(rows)

	pending, err := repo.ListPending(context.Background())
	if err != nil {
		t.Fatalf("ListPending() error = %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending reminder, got %d", len(pending))
	}
	if pending[0].OwnerID != "u-1" || pending[0].Company != "Acme" {
		t.Fatalf("owner context not joined: %+v", pending[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestReminderRepositoryMarkCompletedIsIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewReminderRepository(db)
	mock.ExpectExec("UPDATE reminders").
		WithArgs("u-1", "gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.MarkCompleted(context.Background(), "u-1", "gone"); err != nil {
		t.Fatalf("MarkCompleted() on missing row must not error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestReminderRepositoryRescheduleMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewReminderRepository(db)
	mock.ExpectExec("UPDATE reminders").
		WithArgs("u-1", "missing", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Reschedule(context.Background(), "u-1", "missing", time.Now())
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
