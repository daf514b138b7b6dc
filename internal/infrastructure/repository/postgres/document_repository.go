package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
)

type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	tagsJSON, err := json.Marshal(doc.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO documents (id, application_id, name, category, file_type, file_size, tags, version, data_uri, extracted_text, uploaded_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
`, doc.ID, doc.ApplicationID, doc.Name, string(doc.Category), doc.FileType, doc.FileSize,
		tagsJSON, doc.Version, doc.DataURI, doc.ExtractedText, doc.UploadedAt)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) ListForApplication(ctx context.Context, applicationID string) ([]domain.Document, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, application_id, name, category, file_type, file_size, tags, version, data_uri, extracted_text, uploaded_at
FROM documents
WHERE application_id = $1
ORDER BY uploaded_at DESC
`, applicationID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return collectDocuments(rows)
}

// Search matches names, tags, and text extracted from the payload.
func (r *DocumentRepository) Search(ctx context.Context, applicationID, term string) ([]domain.Document, error) {
	pattern := "%" + term + "%"
	rows, err := r.db.QueryContext(ctx, `
SELECT id, application_id, name, category, file_type, file_size, tags, version, data_uri, extracted_text, uploaded_at
FROM documents
WHERE application_id = $1
  AND (name ILIKE $2 OR extracted_text ILIKE $2 OR tags::text ILIKE $2)
ORDER BY uploaded_at DESC
`, applicationID, pattern)
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}
	return collectDocuments(rows)
}

func (r *DocumentRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx, `
DELETE FROM documents d
USING applications a
WHERE d.application_id = a.id AND a.owner_id = $1 AND d.id = $2
`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete document rows affected: %w", err)
	}
	if rows == 0 {
		return domain.WrapError(domain.ErrNotFound, "delete document", fmt.Errorf("id=%s", id))
	}
	return nil
}

func collectDocuments(rows *sql.Rows) ([]domain.Document, error) {
	defer rows.Close()

	out := make([]domain.Document, 0)
	for rows.Next() {
		var doc domain.Document
		var category string
		var tagsRaw []byte
		err := rows.Scan(&doc.ID, &doc.ApplicationID, &doc.Name, &category, &doc.FileType,
			&doc.FileSize, &tagsRaw, &doc.Version, &doc.DataURI, &doc.ExtractedText, &doc.UploadedAt)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		if err := json.Unmarshal(tagsRaw, &doc.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags: %w", err)
		}
		doc.Category = domain.DocumentCategory(category)
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return out, nil
}
