package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
)

func TestPatternRepositorySetDefaultDemotesSiblings(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewPatternRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("SET is_default = FALSE").
		WithArgs("u-1", "p-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SET is_default = TRUE").
		WithArgs("u-1", "p-2").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "owner_id", "name", "type", "content", "tags", "is_default", "created_at", "updated_at",
		}).AddRow("p-2", "u-1", "Cover letter v2", string(domain.PatternCover), "Dear team,",
			[]byte(`["IT"]`), true, now, nil))
	mock.ExpectCommit()

	pattern, err := repo.SetDefault(context.Background(), "u-1", "p-2")
	if err != nil {
		t.Fatalf("SetDefault() error = %v", err)
	}
	if !pattern.IsDefault || pattern.Type != domain.PatternCover {
		t.Fatalf("unexpected pattern %+v", pattern)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPatternRepositorySetDefaultMissingPattern(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewPatternRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("SET is_default = FALSE").
		WithArgs("u-1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SET is_default = TRUE").
		WithArgs("u-1", "missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "owner_id", "name", "type", "content", "tags", "is_default", "created_at", "updated_at",
		}))
	mock.ExpectRollback()

	_, err = repo.SetDefault(context.Background(), "u-1", "missing")
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPatternRepositoryListScopesByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewPatternRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "owner_id", "name", "type", "content", "tags", "is_default", "created_at", "updated_at",
	}).AddRow("p-1", "u-1", "Follow-up", string(domain.PatternEmail), "Thanks for the talk",
		[]byte(`[]`), false, now, nil)

	mock.ExpectQuery("FROM patterns").
		WithArgs("u-1").
		WillReturnRows(rows)

	patterns, err := repo.List(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(patterns) != 1 || patterns[0].Type != domain.PatternEmail {
		t.Fatalf("unexpected patterns %+v", patterns)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
