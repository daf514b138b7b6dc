package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
	"github.com/jobtrackd/jobtrackd/internal/core/ports"
)

type CommunicationInput struct {
	Channel       domain.CommunicationChannel
	Subject       string
	Content       string
	OccurredAt    time.Time
	Direction     domain.CommunicationDirection
	ContactPerson string
}

type CommunicationUseCase struct {
	apps  ports.ApplicationRepository
	comms ports.CommunicationRepository
}

func NewCommunicationUseCase(apps ports.ApplicationRepository, comms ports.CommunicationRepository) *CommunicationUseCase {
	return &CommunicationUseCase{apps: apps, comms: comms}
}

func (uc *CommunicationUseCase) Add(ctx context.Context, ownerID, applicationID string, input CommunicationInput) (*domain.Communication, error) {
	if !input.Channel.Valid() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "add communication", errUnknownValue("channel", string(input.Channel)))
	}
	if input.Direction != domain.DirectionIncoming && input.Direction != domain.DirectionOutgoing {
		return nil, domain.WrapError(domain.ErrInvalidInput, "add communication", errUnknownValue("direction", string(input.Direction)))
	}
	if input.OccurredAt.IsZero() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "add communication", errMissingField("occurred_at"))
	}
	if _, err := uc.apps.GetByID(ctx, ownerID, applicationID); err != nil {
		return nil, err
	}

	comm := &domain.Communication{
		ID:            uuid.NewString(),
		ApplicationID: applicationID,
		Channel:       input.Channel,
		Subject:       input.Subject,
		Content:       input.Content,
		OccurredAt:    input.OccurredAt,
		Direction:     input.Direction,
		ContactPerson: input.ContactPerson,
		CreatedAt:     time.Now().UTC(),
	}
	if err := uc.comms.Create(ctx, comm); err != nil {
		return nil, domain.WrapError(domain.ErrTemporary, "add communication", err)
	}
	return comm, nil
}

func (uc *CommunicationUseCase) ListForApplication(ctx context.Context, ownerID, applicationID string) ([]domain.Communication, error) {
	if _, err := uc.apps.GetByID(ctx, ownerID, applicationID); err != nil {
		return nil, err
	}
	return uc.comms.ListForApplication(ctx, applicationID)
}

func (uc *CommunicationUseCase) Delete(ctx context.Context, ownerID, id string) error {
	return uc.comms.Delete(ctx, ownerID, id)
}
