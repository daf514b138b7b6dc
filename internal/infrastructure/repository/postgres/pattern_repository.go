package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
)

type PatternRepository struct {
	db *sql.DB
}

func NewPatternRepository(db *sql.DB) *PatternRepository {
	return &PatternRepository{db: db}
}

func (r *PatternRepository) Create(ctx context.Context, pattern *domain.Pattern) error {
	tagsJSON, err := json.Marshal(pattern.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO patterns (id, owner_id, name, type, content, tags, is_default, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`, pattern.ID, pattern.OwnerID, pattern.Name, string(pattern.Type), pattern.Content,
		tagsJSON, pattern.IsDefault, pattern.CreatedAt, pattern.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert pattern: %w", err)
	}
	return nil
}

func (r *PatternRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Pattern, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, owner_id, name, type, content, tags, is_default, created_at, updated_at
FROM patterns
WHERE owner_id = $1 AND id = $2
`, ownerID, id)

	pattern, err := scanPattern(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.WrapError(domain.ErrNotFound, "get pattern", fmt.Errorf("id=%s", id))
	}
	if err != nil {
		return nil, fmt.Errorf("get pattern: %w", err)
	}
	return pattern, nil
}

func (r *PatternRepository) List(ctx context.Context, ownerID string) ([]domain.Pattern, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, owner_id, name, type, content, tags, is_default, created_at, updated_at
FROM patterns
WHERE owner_id = $1
ORDER BY created_at DESC
`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list patterns: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Pattern, 0)
	for rows.Next() {
		pattern, err := scanPattern(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pattern: %w", err)
		}
		out = append(out, *pattern)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate patterns: %w", err)
	}
	return out, nil
}

func (r *PatternRepository) Update(ctx context.Context, pattern *domain.Pattern) error {
	tagsJSON, err := json.Marshal(pattern.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `
UPDATE patterns
SET name = $3, type = $4, content = $5, tags = $6, is_default = $7, updated_at = $8
WHERE owner_id = $1 AND id = $2
`, pattern.OwnerID, pattern.ID, pattern.Name, string(pattern.Type), pattern.Content,
		tagsJSON, pattern.IsDefault, pattern.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update pattern: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update pattern rows affected: %w", err)
	}
	if rows == 0 {
		return domain.WrapError(domain.ErrNotFound, "update pattern", fmt.Errorf("id=%s", pattern.ID))
	}
	return nil
}

func (r *PatternRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx, `
DELETE FROM patterns
WHERE owner_id = $1 AND id = $2
`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete pattern: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete pattern rows affected: %w", err)
	}
	if rows == 0 {
		return domain.WrapError(domain.ErrNotFound, "delete pattern", fmt.Errorf("id=%s", id))
	}
	return nil
}

// SetDefault promotes the pattern and demotes every other pattern of the same
// type in one transaction.
func (r *PatternRepository) SetDefault(ctx context.Context, ownerID, id string) (*domain.Pattern, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin set default tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx, `
UPDATE patterns
SET is_default = FALSE
WHERE owner_id = $1
  AND is_default = TRUE
  AND type = (SELECT type FROM patterns WHERE owner_id = $1 AND id = $2)
  AND id <> $2
`, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("clear default patterns: %w", err)
	}

	row := tx.QueryRowContext(ctx, `
UPDATE patterns
SET is_default = TRUE
WHERE owner_id = $1 AND id = $2
RETURNING id, owner_id, name, type, content, tags, is_default, created_at, updated_at
`, ownerID, id)

	pattern, err := scanPattern(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.WrapError(domain.ErrNotFound, "set default pattern", fmt.Errorf("id=%s", id))
	}
	if err != nil {
		return nil, fmt.Errorf("set default pattern: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit set default tx: %w", err)
	}
	return pattern, nil
}

func scanPattern(row rowScanner) (*domain.Pattern, error) {
	var pattern domain.Pattern
	var patternType string
	var tagsRaw []byte
	err := row.Scan(&pattern.ID, &pattern.OwnerID, &pattern.Name, &patternType, &pattern.Content,
		&tagsRaw, &pattern.IsDefault, &pattern.CreatedAt, &pattern.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tagsRaw, &pattern.Tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}
	pattern.Type = domain.PatternType(patternType)
	return &pattern, nil
}
