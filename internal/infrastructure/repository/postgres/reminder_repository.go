package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
)

type ReminderRepository struct {
	db *sql.DB
}

func NewReminderRepository(db *sql.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

func (r *ReminderRepository) Create(ctx context.Context, reminder *domain.FollowUpReminder) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO reminders (id, application_id, due_at, reminder_text, is_completed, notification_shown, notify_before_minutes, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`, reminder.ID, reminder.ApplicationID, reminder.DueAt, reminder.ReminderText,
		reminder.IsCompleted, reminder.NotificationShown, reminder.NotifyBeforeMinutes, reminder.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert reminder: %w", err)
	}
	return nil
}

func (r *ReminderRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.FollowUpReminder, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT r.id, r.application_id, r.due_at, r.reminder_text, r.is_completed, r.notification_shown, r.notify_before_minutes, r.created_at
FROM reminders r
JOIN applications a ON a.id = r.application_id
WHERE a.owner_id = $1 AND r.id = $2
`, ownerID, id)

	reminder, err := scanReminder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get reminder", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("get reminder: %w", err)
	}
	return &reminder, nil
}

func (r *ReminderRepository) ListForApplication(ctx context.Context, applicationID string) ([]domain.FollowUpReminder, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, application_id, due_at, reminder_text, is_completed, notification_shown, notify_before_minutes, created_at
FROM reminders
WHERE application_id = $1
ORDER BY due_at ASC
`, applicationID)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()

	out := make([]domain.FollowUpReminder, 0)
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, reminder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reminders: %w", err)
	}
	return out, nil
}

func (r *ReminderRepository) ListForOwner(ctx context.Context, ownerID string) ([]domain.OwnedReminder, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT r.id, r.application_id, r.due_at, r.reminder_text, r.is_completed, r.notification_shown, r.notify_before_minutes, r.created_at,
       a.owner_id, a.company, a.position
FROM reminders r
JOIN applications a ON a.id = r.application_id
WHERE a.owner_id = $1
ORDER BY r.due_at ASC
`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list owner reminders: %w", err)
	}
	return collectOwnedReminders(rows)
}

// ListPending returns reminders still eligible for notification across all
// owners. The time window is evaluated by the caller.
func (r *ReminderRepository) ListPending(ctx context.Context) ([]domain.OwnedReminder, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT r.id, r.application_id, r.due_at, r.reminder_text, r.is_completed, r.notification_shown, r.notify_before_minutes, r.created_at,
       a.owner_id, a.company, a.position
FROM reminders r
JOIN applications a ON a.id = r.application_id
WHERE r.is_completed = FALSE AND r.notification_shown = FALSE
ORDER BY r.due_at ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list pending reminders: %w", err)
	}
	return collectOwnedReminders(rows)
}

// MarkCompleted is idempotent: a vanished or already-completed reminder is
// not an error.
func (r *ReminderRepository) MarkCompleted(ctx context.Context, ownerID, id string) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE reminders r
SET is_completed = TRUE
FROM applications a
WHERE r.application_id = a.id AND a.owner_id = $1 AND r.id = $2
`, ownerID, id)
	if err != nil {
		return fmt.Errorf("mark reminder completed: %w", err)
	}
	return nil
}

func (r *ReminderRepository) ToggleCompletion(ctx context.Context, ownerID, id string) (*domain.FollowUpReminder, error) {
	row := r.db.QueryRowContext(ctx, `
UPDATE reminders r
SET is_completed = NOT r.is_completed
FROM applications a
WHERE r.application_id = a.id AND a.owner_id = $1 AND r.id = $2
RETURNING r.id, r.application_id, r.due_at, r.reminder_text, r.is_completed, r.notification_shown, r.notify_before_minutes, r.created_at
`, ownerID, id)

	reminder, err := scanReminder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "toggle reminder", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("toggle reminder: %w", err)
	}
	return &reminder, nil
}

// Reschedule moves the due time and re-arms the notification.
func (r *ReminderRepository) Reschedule(ctx context.Context, ownerID, id string, dueAt time.Time) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE reminders r
SET due_at = $3, notification_shown = FALSE
FROM applications a
WHERE r.application_id = a.id AND a.owner_id = $1 AND r.id = $2
`, ownerID, id, dueAt)
	if err != nil {
		return fmt.Errorf("reschedule reminder: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reschedule reminder rows affected: %w", err)
	}
	if rows == 0 {
		return domain.WrapError(domain.ErrNotFound, "reschedule reminder", fmt.Errorf("id=%s", id))
	}
	return nil
}

func (r *ReminderRepository) MarkNotificationShown(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE reminders
SET notification_shown = TRUE
WHERE id = $1
`, id)
	if err != nil {
		return fmt.Errorf("mark notification shown: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark notification shown rows affected: %w", err)
	}
	if rows == 0 {
		return domain.WrapError(domain.ErrNotFound, "mark notification shown", fmt.Errorf("id=%s", id))
	}
	return nil
}

func (r *ReminderRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx, `
DELETE FROM reminders r
USING applications a
WHERE r.application_id = a.id AND a.owner_id = $1 AND r.id = $2
`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete reminder rows affected: %w", err)
	}
	if rows == 0 {
		return domain.WrapError(domain.ErrNotFound, "delete reminder", fmt.Errorf("id=%s", id))
	}
	return nil
}

func scanReminder(row rowScanner) (domain.FollowUpReminder, error) {
	var reminder domain.FollowUpReminder
	err := row.Scan(
		&reminder.ID,
		&reminder.ApplicationID,
		&reminder.DueAt,
		&reminder.ReminderText,
		&reminder.IsCompleted,
		&reminder.NotificationShown,
		&reminder.NotifyBeforeMinutes,
		&reminder.CreatedAt,
	)
	if err != nil {
		return domain.FollowUpReminder{}, err
	}
	return reminder, nil
}

func collectOwnedReminders(rows *sql.Rows) ([]domain.OwnedReminder, error) {
	defer rows.Close()

	out := make([]domain.OwnedReminder, 0)
	for rows.Next() {
		var owned domain.OwnedReminder
		err := rows.Scan(
			&owned.ID,
			&owned.ApplicationID,
			&owned.DueAt,
			&owned.ReminderText,
			&owned.IsCompleted,
			&owned.NotificationShown,
			&owned.NotifyBeforeMinutes,
			&owned.CreatedAt,
			&owned.OwnerID,
			&owned.Company,
			&owned.Position,
		)
		if err != nil {
			return nil, fmt.Errorf("scan owned reminder: %w", err)
		}
		out = append(out, owned)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate owned reminders: %w", err)
	}
	return out, nil
}
