package usecase

import (
	"context"
	"log/slog"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
	"github.com/jobtrackd/jobtrackd/internal/core/ports"
)

// NotifyUseCase hands surfaced reminders to the delivery channel. Delivery is
// at-least-once: the queue redelivers on handler error.
type NotifyUseCase struct {
	sink ports.NotificationSink
}

func NewNotifyUseCase(sink ports.NotificationSink) *NotifyUseCase {
	return &NotifyUseCase{sink: sink}
}

func (uc *NotifyUseCase) DeliverDueReminder(ctx context.Context, notice domain.ReminderNotice) error {
	if err := uc.sink.Deliver(ctx, notice); err != nil {
		return domain.WrapError(domain.ErrTemporary, "deliver reminder notice", err)
	}
	slog.Info("reminder_notice_delivered",
		"reminder_id", notice.Reminder.ID,
		"owner_id", notice.OwnerID,
		"due_at", notice.Reminder.DueAt,
	)
	return nil
}
