package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
)

type ChecklistRepository struct {
	db *sql.DB
}

func NewChecklistRepository(db *sql.DB) *ChecklistRepository {
	return &ChecklistRepository{db: db}
}

func (r *ChecklistRepository) CreateItems(ctx context.Context, items []domain.ChecklistItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin checklist tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		_, err := tx.ExecContext(ctx, `
INSERT INTO checklist_items (id, application_id, task, category, position, priority, due_on, is_completed, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`, item.ID, item.ApplicationID, item.Task, item.Category, item.Position,
			string(item.Priority), item.DueOn, item.IsCompleted, item.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert checklist item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit checklist tx: %w", err)
	}
	return nil
}

func (r *ChecklistRepository) ListForApplication(ctx context.Context, applicationID string) ([]domain.ChecklistItem, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, application_id, task, category, position, priority, due_on, is_completed, created_at
FROM checklist_items
WHERE application_id = $1
ORDER BY position ASC, created_at ASC
`, applicationID)
	if err != nil {
		return nil, fmt.Errorf("list checklist items: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ChecklistItem, 0)
	for rows.Next() {
		item, err := scanChecklistItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate checklist items: %w", err)
	}
	return out, nil
}

func (r *ChecklistRepository) UpdateItem(ctx context.Context, ownerID string, item *domain.ChecklistItem) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE checklist_items c
SET task = $3, category = $4, position = $5, priority = $6, due_on = $7, is_completed = $8
FROM applications a
WHERE c.application_id = a.id AND a.owner_id = $1 AND c.id = $2
`, ownerID, item.ID, item.Task, item.Category, item.Position,
		string(item.Priority), item.DueOn, item.IsCompleted)
	if err != nil {
		return fmt.Errorf("update checklist item: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update checklist item rows affected: %w", err)
	}
	if rows == 0 {
		return domain.WrapError(domain.ErrNotFound, "update checklist item", fmt.Errorf("id=%s", item.ID))
	}
	return nil
}

func (r *ChecklistRepository) ToggleItem(ctx context.Context, ownerID, id string) (*domain.ChecklistItem, error) {
	row := r.db.QueryRowContext(ctx, `
UPDATE checklist_items c
SET is_completed = NOT c.is_completed
FROM applications a
WHERE c.application_id = a.id AND a.owner_id = $1 AND c.id = $2
RETURNING c.id, c.application_id, c.task, c.category, c.position, c.priority, c.due_on, c.is_completed, c.created_at
`, ownerID, id)

	item, err := scanChecklistItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "toggle checklist item", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("toggle checklist item: %w", err)
	}
	return &item, nil
}

func (r *ChecklistRepository) DeleteItem(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx, `
DELETE FROM checklist_items c
USING applications a
WHERE c.application_id = a.id AND a.owner_id = $1 AND c.id = $2
`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete checklist item: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete checklist item rows affected: %w", err)
	}
	if rows == 0 {
		return domain.WrapError(domain.ErrNotFound, "delete checklist item", fmt.Errorf("id=%s", id))
	}
	return nil
}

func (r *ChecklistRepository) DeleteForApplication(ctx context.Context, applicationID string) error {
	_, err := r.db.ExecContext(ctx, `
DELETE FROM checklist_items
WHERE application_id = $1
`, applicationID)
	if err != nil {
		return fmt.Errorf("delete application checklist: %w", err)
	}
	return nil
}

func (r *ChecklistRepository) CreateTemplate(ctx context.Context, tpl *domain.ChecklistTemplate) error {
	itemsJSON, err := json.Marshal(tpl.Items)
	if err != nil {
		return fmt.Errorf("marshal template items: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO checklist_templates (id, owner_id, name, description, category, items)
VALUES ($1,$2,$3,$4,$5,$6)
`, tpl.ID, tpl.OwnerID, tpl.Name, tpl.Description, tpl.Category, itemsJSON)
	if err != nil {
		return fmt.Errorf("insert checklist template: %w", err)
	}
	return nil
}

func (r *ChecklistRepository) ListTemplates(ctx context.Context, ownerID string) ([]domain.ChecklistTemplate, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, owner_id, name, description, category, items
FROM checklist_templates
WHERE owner_id = $1
ORDER BY name ASC
`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list checklist templates: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ChecklistTemplate, 0)
	for rows.Next() {
		var tpl domain.ChecklistTemplate
		var itemsRaw []byte
		if err := rows.Scan(&tpl.ID, &tpl.OwnerID, &tpl.Name, &tpl.Description, &tpl.Category, &itemsRaw); err != nil {
			return nil, fmt.Errorf("scan checklist template: %w", err)
		}
		if err := json.Unmarshal(itemsRaw, &tpl.Items); err != nil {
			return nil, fmt.Errorf("unmarshal template items: %w", err)
		}
		out = append(out, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate checklist templates: %w", err)
	}
	return out, nil
}

func scanChecklistItem(row rowScanner) (domain.ChecklistItem, error) {
	var item domain.ChecklistItem
	var priority string
	err := row.Scan(
		&item.ID,
		&item.ApplicationID,
		&item.Task,
		&item.Category,
		&item.Position,
		&priority,
		&item.DueOn,
		&item.IsCompleted,
		&item.CreatedAt,
	)
	if err != nil {
		return domain.ChecklistItem{}, err
	}
	item.Priority = domain.Priority(priority)
	return item, nil
}
