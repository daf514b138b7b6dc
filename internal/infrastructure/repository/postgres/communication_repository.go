package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
)

type CommunicationRepository struct {
	db *sql.DB
}

func NewCommunicationRepository(db *sql.DB) *CommunicationRepository {
	return &CommunicationRepository{db: db}
}

func (r *CommunicationRepository) Create(ctx context.Context, comm *domain.Communication) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO communications (id, application_id, channel, subject, content, occurred_at, direction, contact_person, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`, comm.ID, comm.ApplicationID, string(comm.Channel), comm.Subject, comm.Content,
		comm.OccurredAt, string(comm.Direction), comm.ContactPerson, comm.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert communication: %w", err)
	}
	return nil
}

func (r *CommunicationRepository) ListForApplication(ctx context.Context, applicationID string) ([]domain.Communication, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, application_id, channel, subject, content, occurred_at, direction, contact_person, created_at
FROM communications
WHERE application_id = $1
ORDER BY occurred_at DESC
`, applicationID)
	if err != nil {
		return nil, fmt.Errorf("list communications: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Communication, 0)
	for rows.Next() {
		var comm domain.Communication
		var channel, direction string
		err := rows.Scan(&comm.ID, &comm.ApplicationID, &channel, &comm.Subject, &comm.Content,
			&comm.OccurredAt, &direction, &comm.ContactPerson, &comm.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan communication: %w", err)
		}
		comm.Channel = domain.CommunicationChannel(channel)
		comm.Direction = domain.CommunicationDirection(direction)
		out = append(out, comm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate communications: %w", err)
	}
	return out, nil
}

func (r *CommunicationRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx, `
DELETE FROM communications c
USING applications a
WHERE c.application_id = a.id AND a.owner_id = $1 AND c.id = $2
`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete communication: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete communication rows affected: %w", err)
	}
	if rows == 0 {
		return domain.WrapError(domain.ErrNotFound, "delete communication", fmt.Errorf("id=%s", id))
	}
	return nil
}
