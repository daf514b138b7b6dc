package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO applications (id, owner_id, company, location, position, status, applied_on, appointment_at, color, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
`, app.ID, app.OwnerID, app.Company, app.Location, app.Position, string(app.Status),
		app.AppliedOn, app.AppointmentAt, app.Color, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Application, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, owner_id, company, location, position, status, applied_on, appointment_at, color, created_at, updated_at
FROM applications
WHERE owner_id = $1 AND id = $2
`, ownerID, id)

	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get application", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) List(ctx context.Context, ownerID string) ([]domain.Application, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, owner_id, company, location, position, status, applied_on, appointment_at, color, created_at, updated_at
FROM applications
WHERE owner_id = $1
ORDER BY applied_on DESC, created_at DESC
`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applications: %w", err)
	}
	return out, nil
}

func (r *ApplicationRepository) Update(ctx context.Context, app *domain.Application) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE applications
SET company = $3, location = $4, position = $5, status = $6, applied_on = $7, appointment_at = $8, color = $9, updated_at = $10
WHERE owner_id = $1 AND id = $2
`, app.OwnerID, app.ID, app.Company, app.Location, app.Position, string(app.Status),
		app.AppliedOn, app.AppointmentAt, app.Color, app.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update application rows affected: %w", err)
	}
	if rows == 0 {
		return domain.WrapError(domain.ErrNotFound, "update application", fmt.Errorf("id=%s", app.ID))
	}
	return nil
}

// Delete removes the application; child rows go with it via the cascading
// foreign keys.
func (r *ApplicationRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx, `
DELETE FROM applications
WHERE owner_id = $1 AND id = $2
`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete application rows affected: %w", err)
	}
	if rows == 0 {
		return domain.WrapError(domain.ErrNotFound, "delete application", fmt.Errorf("id=%s", id))
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanApplication(row rowScanner) (domain.Application, error) {
	var app domain.Application
	var status string
	err := row.Scan(
		&app.ID,
		&app.OwnerID,
		&app.Company,
		&app.Location,
		&app.Position,
		&status,
		&app.AppliedOn,
		&app.AppointmentAt,
		&app.Color,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return domain.Application{}, err
	}
	app.Status = domain.ApplicationStatus(status)
	return app, nil
}
