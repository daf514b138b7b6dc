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

type ApplicationInput struct {
	Company       string
	Location      string
	Position      string
	Status        domain.ApplicationStatus
	AppliedOn     time.Time
	AppointmentAt *time.Time
}

type ApplicationUseCase struct {
	apps    ports.ApplicationRepository
	changes ports.StatusChangeRepository
}

func NewApplicationUseCase(
	apps ports.ApplicationRepository,
	changes ports.StatusChangeRepository,
) *ApplicationUseCase {
	return &ApplicationUseCase{
		apps:    apps,
		changes: changes,
	}
}

func (uc *ApplicationUseCase) Create(ctx context.Context, ownerID string, input ApplicationInput) (*domain.Application, error) {
	if err := validateApplicationInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	app := &domain.Application{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Company:       strings.TrimSpace(input.Company),
		Location:      strings.TrimSpace(input.Location),
		Position:      strings.TrimSpace(input.Position),
		Status:        input.Status,
		AppliedOn:     input.AppliedOn,
		AppointmentAt: appointmentFor(input.Status, input.AppointmentAt),
		Color:         domain.ColorForStatus(input.Status),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.apps.Create(ctx, app); err != nil {
		return nil, domain.WrapError(domain.ErrTemporary, "create application", err)
	}

	uc.journalStatusChange(ctx, app.ID, nil, app.Status)
	return app, nil
}

func (uc *ApplicationUseCase) Get(ctx context.Context, ownerID, id string) (*domain.Application, error) {
	return uc.apps.GetByID(ctx, ownerID, id)
}

func (uc *ApplicationUseCase) List(ctx context.Context, ownerID string) ([]domain.Application, error) {
	return uc.apps.List(ctx, ownerID)
}

func (uc *ApplicationUseCase) Update(ctx context.Context, ownerID, id string, input ApplicationInput) (*domain.Application, error) {
	if err := validateApplicationInput(input); err != nil {
		return nil, err
	}

	current, err := uc.apps.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.Company = strings.TrimSpace(input.Company)
	updated.Location = strings.TrimSpace(input.Location)
	updated.Position = strings.TrimSpace(input.Position)
	updated.Status = input.Status
	updated.AppliedOn = input.AppliedOn
	updated.AppointmentAt = appointmentFor(input.Status, input.AppointmentAt)
	updated.Color = domain.ColorForStatus(input.Status)
	updated.UpdatedAt = time.Now().UTC()

	if err := uc.apps.Update(ctx, &updated); err != nil {
		return nil, err
	}

	if current.Status != updated.Status {
		old := current.Status
		uc.journalStatusChange(ctx, updated.ID, &old, updated.Status)
	}
	return &updated, nil
}

func (uc *ApplicationUseCase) Delete(ctx context.Context, ownerID, id string) error {
	return uc.apps.Delete(ctx, ownerID, id)
}

// journalStatusChange is best effort: a failed journal write never fails the
// application operation itself.
func (uc *ApplicationUseCase) journalStatusChange(ctx context.Context, applicationID string, old *domain.ApplicationStatus, next domain.ApplicationStatus) {
	change := &domain.StatusChange{
		ID:            uuid.NewString(),
		ApplicationID: applicationID,
		OldStatus:     old,
		NewStatus:     next,
		ChangedAt:     time.Now().UTC(),
	}
	if err := uc.changes.Create(ctx, change); err != nil {
		slog.Warn("status_change_journal_failed", "application_id", applicationID, "error", err)
	}
}

// appointmentFor keeps an appointment only while the status is interview.
func appointmentFor(status domain.ApplicationStatus, at *time.Time) *time.Time {
	if status != domain.StatusInterview {
		return nil
	}
	return at
}

func validateApplicationInput(input ApplicationInput) error {
	if strings.TrimSpace(input.Company) == "" {
		return domain.WrapError(domain.ErrInvalidInput, "validate application", errMissingField("company"))
	}
	if strings.TrimSpace(input.Position) == "" {
		return domain.WrapError(domain.ErrInvalidInput, "validate application", errMissingField("position"))
	}
	if !input.Status.Valid() {
		return domain.WrapError(domain.ErrInvalidInput, "validate application", errUnknownValue("status", string(input.Status)))
	}
	if input.AppliedOn.IsZero() {
		return domain.WrapError(domain.ErrInvalidInput, "validate application", errMissingField("applied_on"))
	}
	return nil
}
