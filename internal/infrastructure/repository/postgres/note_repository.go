package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
)

type NoteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO notes (id, application_id, content, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5)
`, note.ID, note.ApplicationID, note.Content, note.CreatedAt, note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (r *NoteRepository) ListForApplication(ctx context.Context, applicationID string) ([]domain.Note, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, application_id, content, created_at, updated_at
FROM notes
WHERE application_id = $1
ORDER BY created_at DESC
`, applicationID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Note, 0)
	for rows.Next() {
		var note domain.Note
		if err := rows.Scan(&note.ID, &note.ApplicationID, &note.Content, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		out = append(out, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return out, nil
}

// Update scopes by owner through the owning application.
func (r *NoteRepository) Update(ctx context.Context, ownerID, id, content string, updatedAt time.Time) (*domain.Note, error) {
	row := r.db.QueryRowContext(ctx, `
UPDATE notes n
SET content = $3, updated_at = $4
FROM applications a
WHERE n.application_id = a.id AND a.owner_id = $1 AND n.id = $2
RETURNING n.id, n.application_id, n.content, n.created_at, n.updated_at
`, ownerID, id, content, updatedAt)

	var note domain.Note
	err := row.Scan(&note.ID, &note.ApplicationID, &note.Content, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "update note", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("update note: %w", err)
	}
	return &note, nil
}

func (r *NoteRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx, `
DELETE FROM notes n
USING applications a
WHERE n.application_id = a.id AND a.owner_id = $1 AND n.id = $2
`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete note rows affected: %w", err)
	}
	if rows == 0 {
		return domain.WrapError(domain.ErrNotFound, "delete note", fmt.Errorf("id=%s", id))
	}
	return nil
}
