package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
	"github.com/jobtrackd/jobtrackd/internal/core/ports"
)

// TimelineUseCase merges the five per-application record kinds into one
// chronologically descending sequence. A failed source degrades to empty so
// the remaining sources still render.
type TimelineUseCase struct {
	apps      ports.ApplicationRepository
	changes   ports.StatusChangeRepository
	notes     ports.NoteRepository
	comms     ports.CommunicationRepository
	reminders ports.ReminderRepository
	documents ports.DocumentRepository
}

func NewTimelineUseCase(
	apps ports.ApplicationRepository,
	changes ports.StatusChangeRepository,
	notes ports.NoteRepository,
	comms ports.CommunicationRepository,
	reminders ports.ReminderRepository,
	documents ports.DocumentRepository,
) *TimelineUseCase {
	return &TimelineUseCase{
		apps:      apps,
		changes:   changes,
		notes:     notes,
		comms:     comms,
		reminders: reminders,
		documents: documents,
	}
}

func (uc *TimelineUseCase) BuildTimeline(ctx context.Context, ownerID, applicationID string) ([]domain.TimelineItem, error) {
	if _, err := uc.apps.GetByID(ctx, ownerID, applicationID); err != nil {
		return nil, err
	}

	changes := timelineSource(ctx, applicationID, "status_changes", uc.changes.ListForApplication)
	notes := timelineSource(ctx, applicationID, "notes", uc.notes.ListForApplication)
	comms := timelineSource(ctx, applicationID, "communications", uc.comms.ListForApplication)
	reminders := timelineSource(ctx, applicationID, "reminders", uc.reminders.ListForApplication)
	documents := timelineSource(ctx, applicationID, "documents", uc.documents.ListForApplication)

	items := make([]domain.TimelineItem, 0, len(changes)+len(notes)+len(comms)+len(reminders)+len(documents))

	for _, change := range changes {
		items = append(items, domain.TimelineItem{
			ID:        "timeline-" + change.ID,
			Timestamp: change.ChangedAt,
			Type:      domain.TimelineStatusChange,
			Title:     fmt.Sprintf("Status: %s", change.NewStatus),
			Icon:      "status",
			Data:      change,
		})
	}

	for _, note := range notes {
		item := domain.TimelineItem{
			ID:        "timeline-" + note.ID,
			Timestamp: note.CreatedAt,
			Type:      domain.TimelineNote,
			Title:     "Note added",
			Icon:      "note",
			Data:      note,
		}
		if note.UpdatedAt != nil {
			item.Timestamp = *note.UpdatedAt
			item.Title = "Note edited"
		}
		items = append(items, item)
	}

	for _, comm := range comms {
		items = append(items, domain.TimelineItem{
			ID:        "timeline-" + comm.ID,
			Timestamp: comm.OccurredAt,
			Type:      domain.TimelineCommunication,
			Title:     communicationTitle(comm),
			Icon:      string(comm.Channel),
			Data:      comm,
		})
	}

	// Reminders surface at their creation time: the timeline records that a
	// reminder was set up, not that it became due.
	for _, reminder := range reminders {
		items = append(items, domain.TimelineItem{
			ID:        "timeline-" + reminder.ID,
			Timestamp: reminder.CreatedAt,
			Type:      domain.TimelineReminder,
			Title:     fmt.Sprintf("Reminder created: %s", reminder.ReminderText),
			Icon:      "reminder",
			Data:      reminder,
		})
	}

	for _, doc := range documents {
		items = append(items, domain.TimelineItem{
			ID:        "timeline-" + doc.ID,
			Timestamp: doc.UploadedAt,
			Type:      domain.TimelineDocument,
			Title:     fmt.Sprintf("Document uploaded: %s", doc.Name),
			Icon:      "document",
			Data:      doc,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	return items, nil
}

// timelineSource degrades a failed fetch to an empty slice.
func timelineSource[T any](ctx context.Context, applicationID, name string, fetch func(context.Context, string) ([]T, error)) []T {
	records, err := fetch(ctx, applicationID)
	if err != nil {
		slog.Warn("timeline_source_degraded", "source", name, "application_id", applicationID, "error", err)
		return nil
	}
	return records
}

func communicationTitle(comm domain.Communication) string {
	var kind string
	switch comm.Channel {
	case domain.ChannelEmail:
		kind = "Email"
	case domain.ChannelPhone:
		kind = "Call"
	case domain.ChannelMeeting:
		kind = "Meeting"
	default:
		kind = "Communication"
	}

	direction := "incoming"
	if comm.Direction == domain.DirectionOutgoing {
		direction = "outgoing"
	}

	subject := comm.Subject
	if subject == "" {
		subject = "(no subject)"
	}
	return fmt.Sprintf("%s (%s): %s", kind, direction, subject)
}
