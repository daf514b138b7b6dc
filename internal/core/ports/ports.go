package ports

import (
	"context"
	"io"
	"time"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
)

// ApplicationRepository persists root application records. Deleting an
// application removes its child records at the persistence boundary.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Application, error)
	List(ctx context.Context, ownerID string) ([]domain.Application, error)
	Update(ctx context.Context, app *domain.Application) error
	Delete(ctx context.Context, ownerID, id string) error
}

// NoteRepository persists free-text notes attached to an application.
// Operations addressed by note id are owner-scoped through the owning
// application.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	ListForApplication(ctx context.Context, applicationID string) ([]domain.Note, error)
	Update(ctx context.Context, ownerID, id, content string, updatedAt time.Time) (*domain.Note, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// CommunicationRepository persists communication log entries.
type CommunicationRepository interface {
	Create(ctx context.Context, comm *domain.Communication) error
	ListForApplication(ctx context.Context, applicationID string) ([]domain.Communication, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// ReminderRepository persists follow-up reminders and the notification state
// the due-check engine depends on. MarkCompleted is idempotent: completing an
// already-completed or vanished reminder is not an error.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *domain.FollowUpReminder) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.FollowUpReminder, error)
	ListForApplication(ctx context.Context, applicationID string) ([]domain.FollowUpReminder, error)
	ListForOwner(ctx context.Context, ownerID string) ([]domain.OwnedReminder, error)
	ListPending(ctx context.Context) ([]domain.OwnedReminder, error)
	MarkCompleted(ctx context.Context, ownerID, id string) error
	ToggleCompletion(ctx context.Context, ownerID, id string) (*domain.FollowUpReminder, error)
	Reschedule(ctx context.Context, ownerID, id string, dueAt time.Time) error
	MarkNotificationShown(ctx context.Context, id string) error
	Delete(ctx context.Context, ownerID, id string) error
}

// DocumentRepository persists document metadata and embedded payloads.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	ListForApplication(ctx context.Context, applicationID string) ([]domain.Document, error)
	Search(ctx context.Context, applicationID, term string) ([]domain.Document, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// StatusChangeRepository persists the status journal. Rows are append-only.
type StatusChangeRepository interface {
	Create(ctx context.Context, change *domain.StatusChange) error
	ListForApplication(ctx context.Context, applicationID string) ([]domain.StatusChange, error)
}

// ChecklistRepository persists checklist items and owner-defined templates.
type ChecklistRepository interface {
	CreateItems(ctx context.Context, items []domain.ChecklistItem) error
	ListForApplication(ctx context.Context, applicationID string) ([]domain.ChecklistItem, error)
	UpdateItem(ctx context.Context, ownerID string, item *domain.ChecklistItem) error
	ToggleItem(ctx context.Context, ownerID, id string) (*domain.ChecklistItem, error)
	DeleteItem(ctx context.Context, ownerID, id string) error
	DeleteForApplication(ctx context.Context, applicationID string) error
	CreateTemplate(ctx context.Context, tpl *domain.ChecklistTemplate) error
	ListTemplates(ctx context.Context, ownerID string) ([]domain.ChecklistTemplate, error)
}

// PatternRepository persists reusable text templates. Patterns belong to an
// owner directly, not to an application. SetDefault clears the default flag
// from every other pattern of the same type in the same statement.
type PatternRepository interface {
	Create(ctx context.Context, pattern *domain.Pattern) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Pattern, error)
	List(ctx context.Context, ownerID string) ([]domain.Pattern, error)
	Update(ctx context.Context, pattern *domain.Pattern) error
	Delete(ctx context.Context, ownerID, id string) error
	SetDefault(ctx context.Context, ownerID, id string) (*domain.Pattern, error)
}

// ReminderPublisher emits surfaced due reminders to out-of-process consumers.
type ReminderPublisher interface {
	PublishReminderDue(ctx context.Context, notice domain.ReminderNotice) error
}

// ReminderSubscriber consumes surfaced due reminders; the handler is invoked
// once per event and the call blocks until ctx is done.
type ReminderSubscriber interface {
	SubscribeReminderDue(ctx context.Context, handler func(context.Context, domain.ReminderNotice) error) error
}

// NotificationSink delivers a surfaced reminder to its final channel.
type NotificationSink interface {
	Deliver(ctx context.Context, notice domain.ReminderNotice) error
}

// TextExtractor extracts searchable plain text from a document payload.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (string, error)
}

// ReportExporter renders an owner's applications as a downloadable report.
type ReportExporter interface {
	WriteApplicationsReport(w io.Writer, apps []domain.Application, stats []domain.Stat) error
}

// IdentityVerifier resolves a bearer token to an owner identity.
type IdentityVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// TimelineBuilder is the inbound contract for the per-application timeline.
type TimelineBuilder interface {
	BuildTimeline(ctx context.Context, ownerID, applicationID string) ([]domain.TimelineItem, error)
}

// DueReminderEngine is the inbound contract for the due-check engine: the
// presentation layer reads the surfaced slot and sends back user intents.
type DueReminderEngine interface {
	Current(ownerID string) *domain.ReminderNotice
	Dismiss(ownerID string)
	MarkComplete(ctx context.Context, ownerID, reminderID string) error
	Snooze(ctx context.Context, ownerID, reminderID string, minutes int) error
	SetInterval(interval time.Duration)
}
