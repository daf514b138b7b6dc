package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
	"github.com/jobtrackd/jobtrackd/internal/core/ports"
)

type DocumentInput struct {
	Name     string
	Category domain.DocumentCategory
	FileType string
	FileSize int64
	Tags     []string
	Version  int
	DataURI  string
}

type DocumentUseCase struct {
	apps      ports.ApplicationRepository
	documents ports.DocumentRepository
	extractor ports.TextExtractor
}

func NewDocumentUseCase(
	apps ports.ApplicationRepository,
	documents ports.DocumentRepository,
	extractor ports.TextExtractor,
) *DocumentUseCase {
	return &DocumentUseCase{
		apps:      apps,
		documents: documents,
		extractor: extractor,
	}
}

func (uc *DocumentUseCase) Add(ctx context.Context, ownerID, applicationID string, input DocumentInput) (*domain.Document, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "add document", errMissingField("name"))
	}
	if !input.Category.Valid() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "add document", errUnknownValue("category", string(input.Category)))
	}
	if _, err := uc.apps.GetByID(ctx, ownerID, applicationID); err != nil {
		return nil, err
	}

	version := input.Version
	if version <= 0 {
		version = 1
	}
	doc := &domain.Document{
		ID:            uuid.NewString(),
		ApplicationID: applicationID,
		Name:          input.Name,
		Category:      input.Category,
		FileType:      input.FileType,
		FileSize:      input.FileSize,
		Tags:          input.Tags,
		Version:       version,
		DataURI:       input.DataURI,
		UploadedAt:    time.Now().UTC(),
	}

	// Extraction is optional enrichment: an unreadable payload must not block
	// the upload.
	if uc.extractor != nil && doc.DataURI != "" {
		text, err := uc.extractor.Extract(ctx, doc)
		if err != nil {
			slog.Warn("document_text_extraction_failed", "document_id", doc.ID, "file_type", doc.FileType, "error", err)
		} else {
			doc.ExtractedText = text
		}
	}

	if err := uc.documents.Create(ctx, doc); err != nil {
		return nil, domain.WrapError(domain.ErrTemporary, "add document", err)
	}
	return doc, nil
}

func (uc *DocumentUseCase) ListForApplication(ctx context.Context, ownerID, applicationID string) ([]domain.Document, error) {
	if _, err := uc.apps.GetByID(ctx, ownerID, applicationID); err != nil {
		return nil, err
	}
	return uc.documents.ListForApplication(ctx, applicationID)
}

// Search matches a term against document names, tags, and text extracted from
// PDF payloads.
func (uc *DocumentUseCase) Search(ctx context.Context, ownerID, applicationID, term string) ([]domain.Document, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return uc.ListForApplication(ctx, ownerID, applicationID)
	}
	if _, err := uc.apps.GetByID(ctx, ownerID, applicationID); err != nil {
		return nil, err
	}
	return uc.documents.Search(ctx, applicationID, term)
}

func (uc *DocumentUseCase) Delete(ctx context.Context, ownerID, id string) error {
	return uc.documents.Delete(ctx, ownerID, id)
}
