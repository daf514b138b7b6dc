package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
)

type StatusChangeRepository struct {
	db *sql.DB
}

func NewStatusChangeRepository(db *sql.DB) *StatusChangeRepository {
	return &StatusChangeRepository{db: db}
}

func (r *StatusChangeRepository) Create(ctx context.Context, change *domain.StatusChange) error {
	var oldStatus *string
	if change.OldStatus != nil {
		s := string(*change.OldStatus)
		oldStatus = &s
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO status_changes (id, application_id, old_status, new_status, changed_at)
VALUES ($1,$2,$3,$4,$5)
`, change.ID, change.ApplicationID, oldStatus, string(change.NewStatus), change.ChangedAt)
	if err != nil {
		return fmt.Errorf("insert status change: %w", err)
	}
	return nil
}

func (r *StatusChangeRepository) ListForApplication(ctx context.Context, applicationID string) ([]domain.StatusChange, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, application_id, old_status, new_status, changed_at
FROM status_changes
WHERE application_id = $1
ORDER BY changed_at DESC
`, applicationID)
	if err != nil {
		return nil, fmt.Errorf("list status changes: %w", err)
	}
	defer rows.Close()

	out := make([]domain.StatusChange, 0)
	for rows.Next() {
		var change domain.StatusChange
		var oldStatus sql.NullString
		var newStatus string
		if err := rows.Scan(&change.ID, &change.ApplicationID, &oldStatus, &newStatus, &change.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan status change: %w", err)
		}
		if oldStatus.Valid {
			s := domain.ApplicationStatus(oldStatus.String)
			change.OldStatus = &s
		}
		change.NewStatus = domain.ApplicationStatus(newStatus)
		out = append(out, change)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status changes: %w", err)
	}
	return out, nil
}
