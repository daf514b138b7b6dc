package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
	"github.com/jobtrackd/jobtrackd/internal/core/ports"
)

// ReminderUseCase covers the CRUD side of reminders; surfacing due reminders
// is the due-check engine's job.
type ReminderUseCase struct {
	apps      ports.ApplicationRepository
	reminders ports.ReminderRepository
}

func NewReminderUseCase(apps ports.ApplicationRepository, reminders ports.ReminderRepository) *ReminderUseCase {
	return &ReminderUseCase{apps: apps, reminders: reminders}
}

func (uc *ReminderUseCase) Add(ctx context.Context, ownerID, applicationID string, dueAt time.Time, text string, notifyBeforeMinutes int) (*domain.FollowUpReminder, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "add reminder", errMissingField("reminder_text"))
	}
	if dueAt.IsZero() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "add reminder", errMissingField("due_at"))
	}
	if notifyBeforeMinutes <= 0 {
		notifyBeforeMinutes = domain.DefaultNotifyBeforeMinutes
	}
	if _, err := uc.apps.GetByID(ctx, ownerID, applicationID); err != nil {
		return nil, err
	}

	reminder := &domain.FollowUpReminder{
		ID:                  uuid.NewString(),
		ApplicationID:       applicationID,
		DueAt:               dueAt,
		ReminderText:        text,
		NotifyBeforeMinutes: notifyBeforeMinutes,
		CreatedAt:           time.Now().UTC(),
	}
	if err := uc.reminders.Create(ctx, reminder); err != nil {
		return nil, domain.WrapError(domain.ErrTemporary, "add reminder", err)
	}
	return reminder, nil
}

func (uc *ReminderUseCase) ListForApplication(ctx context.Context, ownerID, applicationID string) ([]domain.FollowUpReminder, error) {
	if _, err := uc.apps.GetByID(ctx, ownerID, applicationID); err != nil {
		return nil, err
	}
	return uc.reminders.ListForApplication(ctx, applicationID)
}

// ListForOwner returns every reminder of the owner, incomplete first, each
// group ascending by due time.
func (uc *ReminderUseCase) ListForOwner(ctx context.Context, ownerID string) ([]domain.OwnedReminder, error) {
	reminders, err := uc.reminders.ListForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(reminders, func(i, j int) bool {
		if reminders[i].IsCompleted != reminders[j].IsCompleted {
			return !reminders[i].IsCompleted
		}
		return reminders[i].DueAt.Before(reminders[j].DueAt)
	})
	return reminders, nil
}

func (uc *ReminderUseCase) ToggleCompletion(ctx context.Context, ownerID, id string) (*domain.FollowUpReminder, error) {
	return uc.reminders.ToggleCompletion(ctx, ownerID, id)
}

func (uc *ReminderUseCase) Delete(ctx context.Context, ownerID, id string) error {
	return uc.reminders.Delete(ctx, ownerID, id)
}
