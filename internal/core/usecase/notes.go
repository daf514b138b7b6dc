package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
	"github.com/jobtrackd/jobtrackd/internal/core/ports"
)

type NoteUseCase struct {
	apps  ports.ApplicationRepository
	notes ports.NoteRepository
}

func NewNoteUseCase(apps ports.ApplicationRepository, notes ports.NoteRepository) *NoteUseCase {
	return &NoteUseCase{apps: apps, notes: notes}
}

func (uc *NoteUseCase) Add(ctx context.Context, ownerID, applicationID, content string) (*domain.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "add note", errMissingField("content"))
	}
	if _, err := uc.apps.GetByID(ctx, ownerID, applicationID); err != nil {
		return nil, err
	}

	note := &domain.Note{
		ID:            uuid.NewString(),
		ApplicationID: applicationID,
		Content:       content,
		CreatedAt:     time.Now().UTC(),
	}
	if err := uc.notes.Create(ctx, note); err != nil {
		return nil, domain.WrapError(domain.ErrTemporary, "add note", err)
	}
	return note, nil
}

func (uc *NoteUseCase) ListForApplication(ctx context.Context, ownerID, applicationID string) ([]domain.Note, error) {
	if _, err := uc.apps.GetByID(ctx, ownerID, applicationID); err != nil {
		return nil, err
	}
	return uc.notes.ListForApplication(ctx, applicationID)
}

func (uc *NoteUseCase) Update(ctx context.Context, ownerID, id, content string) (*domain.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "update note", errMissingField("content"))
	}
	return uc.notes.Update(ctx, ownerID, id, content, time.Now().UTC())
}

func (uc *NoteUseCase) Delete(ctx context.Context, ownerID, id string) error {
	return uc.notes.Delete(ctx, ownerID, id)
}
