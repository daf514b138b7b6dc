package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
)

type notesRepoFake struct {
	notes   []domain.Note
	listErr error
}

func (f *notesRepoFake) Create(_ context.Context, note *domain.Note) error {
	f.notes = append(f.notes, *note)
	return nil
}

func (f *notesRepoFake) ListForApplication(_ context.Context, applicationID string) ([]domain.Note, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Note, 0)
	for _, note := range f.notes {
		if note.ApplicationID == applicationID {
			out = append(out, note)
		}
	}
	return out, nil
}

func (f *notesRepoFake) Update(context.Context, string, string, string, time.Time) (*domain.Note, error) {
	return nil, errors.New("not implemented")
}

func (f *notesRepoFake) Delete(context.Context, string, string) error {
	return errors.New("not implemented")
}

type commsRepoFake struct {
	comms []domain.Communication
}

func (f *commsRepoFake) Create(_ context.Context, comm *domain.Communication) error {
	f.comms = append(f.comms, *comm)
	return nil
}

func (f *commsRepoFake) ListForApplication(_ context.Context, applicationID string) ([]domain.Communication, error) {
	out := make([]domain.Communication, 0)
	for _, comm := range f.comms {
		if comm.ApplicationID == applicationID {
			out = append(out, comm)
		}
	}
	return out, nil
}

func (f *commsRepoFake) Delete(context.Context, string, string) error {
	return errors.New("not implemented")
}

type docsRepoFake struct {
	docs []domain.Document
}

func (f *docsRepoFake) Create(_ context.Context, doc *domain.Document) error {
	f.docs = append(f.docs, *doc)
	return nil
}

func (f *docsRepoFake) ListForApplication(_ context.Context, applicationID string) ([]domain.Document, error) {
	out := make([]domain.Document, 0)
	for _, doc := range f.docs {
		if doc.ApplicationID == applicationID {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (f *docsRepoFake) Search(_ context.Context, applicationID, term string) ([]domain.Document, error) {
	out := make([]domain.Document, 0)
	for _, doc := range f.docs {
		if doc.ApplicationID != applicationID {
			continue
		}
		if strings.Contains(strings.ToLower(doc.Name), strings.ToLower(term)) ||
			strings.Contains(strings.ToLower(doc.ExtractedText), strings.ToLower(term)) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (f *docsRepoFake) Delete(context.Context, string, string) error {
	return errors.New("not implemented")
}

func timelineFixture() (*TimelineUseCase, *appsRepoFake, *changesRepoFake, *notesRepoFake, *commsRepoFake, *checkRepoFake, *docsRepoFake) {
	apps := newAppsRepoFake()
	apps.apps["app-1"] = &domain.Application{ID: "app-1", OwnerID: "u-1", Company: "Acme", Position: "Backend Engineer", Status: domain.StatusSent}

	changes := &changesRepoFake{}
	notes := &notesRepoFake{}
	comms := &commsRepoFake{}
	reminders := newCheckRepoFake()
	docs := &docsRepoFake{}

	uc := NewTimelineUseCase(apps, changes, notes, comms, reminders, docs)
	return uc, apps, changes, notes, comms, reminders, docs
}

func ts(hour int) time.Time {
	return time.Date(2025, 4, 22, hour, 0, 0, 0, time.UTC)
}

func TestBuildTimelineMergesAllSourcesWithoutLoss(t *testing.T) {
	uc, _, changes, notes, comms, reminders, docs := timelineFixture()

	old := domain.StatusSent
	changes.changes = []domain.StatusChange{
		{ID: "s-1", ApplicationID: "app-1", NewStatus: domain.StatusSent, ChangedAt: ts(1)},
		{ID: "s-2", ApplicationID: "app-1", OldStatus: &old, NewStatus: domain.StatusInterview, ChangedAt: ts(8)},
	}
	notes.notes = []domain.Note{
		{ID: "n-1", ApplicationID: "app-1", Content: "call back", CreatedAt: ts(2)},
	}
	comms.comms = []domain.Communication{
		{ID: "c-1", ApplicationID: "app-1", Channel: domain.ChannelEmail, Direction: domain.DirectionOutgoing, Subject: "Application", OccurredAt: ts(3), CreatedAt: ts(3)},
	}
	r := reminderAt("r-1", "u-1", ts(20), 60)
	r.CreatedAt = ts(4)
	reminders.reminders["r-1"] = &r
	docs.docs = []domain.Document{
		{ID: "d-1", ApplicationID: "app-1", Name: "resume.pdf", Category: domain.DocumentResume, UploadedAt: ts(5)},
	}

	items, err := uc.BuildTimeline(context.Background(), "u-1", "app-1")
	if err != nil {
		t.Fatalf("BuildTimeline() error = %v", err)
	}
	if len(items) != 6 {
		t.Fatalf("expected 6 timeline items, got %d", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].Timestamp.After(items[i-1].Timestamp) {
			t.Fatalf("items not descending at %d: %v before %v", i, items[i-1].Timestamp, items[i].Timestamp)
		}
	}
	if items[0].Type != domain.TimelineStatusChange || items[0].Title != "Status: interview" {
		t.Fatalf("expected latest item to be the interview status change, got %+v", items[0])
	}
}

func TestBuildTimelineUsesEffectiveTimestamps(t *testing.T) {
	uc, _, _, notes, _, reminders, _ := timelineFixture()

	updated := ts(9)
	notes.notes = []domain.Note{
		{ID: "n-1", ApplicationID: "app-1", Content: "first", CreatedAt: ts(2)},
		{ID: "n-2", ApplicationID: "app-1", Content: "second", CreatedAt: ts(3), UpdatedAt: &updated},
	}
	// The reminder's due time is far in the future; the timeline must use its
	// creation time.
	r := reminderAt("r-1", "u-1", ts(23), 60)
	r.CreatedAt = ts(4)
	reminders.reminders["r-1"] = &r

	items, err := uc.BuildTimeline(context.Background(), "u-1", "app-1")
	if err != nil {
		t.Fatalf("BuildTimeline() error = %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Title != "Note edited" || !items[0].Timestamp.Equal(updated) {
		t.Fatalf("expected edited note first with updated timestamp, got %+v", items[0])
	}
	if items[1].Type != domain.TimelineReminder || !items[1].Timestamp.Equal(ts(4)) {
		t.Fatalf("expected reminder at creation time, got %+v", items[1])
	}
	if items[2].Title != "Note added" {
		t.Fatalf("expected added note title, got %q", items[2].Title)
	}
}

func TestBuildTimelineCommunicationTitles(t *testing.T) {
	uc, _, _, _, comms, _, _ := timelineFixture()

	comms.comms = []domain.Communication{
		{ID: "c-1", ApplicationID: "app-1", Channel: domain.ChannelPhone, Direction: domain.DirectionIncoming, OccurredAt: ts(3)},
	}

	items, err := uc.BuildTimeline(context.Background(), "u-1", "app-1")
	if err != nil {
		t.Fatalf("BuildTimeline() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Title != "Call (incoming): (no subject)" {
		t.Fatalf("unexpected title %q", items[0].Title)
	}
}

func TestBuildTimelineDegradesFailedSource(t *testing.T) {
	uc, _, changes, notes, _, _, docs := timelineFixture()

	changes.changes = []domain.StatusChange{
		{ID: "s-1", ApplicationID: "app-1", NewStatus: domain.StatusSent, ChangedAt: ts(1)},
	}
	notes.listErr = errors.New("notes table down")
	docs.docs = []domain.Document{
		{ID: "d-1", ApplicationID: "app-1", Name: "resume.pdf", Category: domain.DocumentResume, UploadedAt: ts(5)},
	}

	items, err := uc.BuildTimeline(context.Background(), "u-1", "app-1")
	if err != nil {
		t.Fatalf("BuildTimeline() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items from the healthy sources, got %d", len(items))
	}
}

func TestBuildTimelineRejectsForeignApplication(t *testing.T) {
	uc, _, _, _, _, _, _ := timelineFixture()

	if _, err := uc.BuildTimeline(context.Background(), "u-2", "app-1"); !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for foreign owner, got %v", err)
	}
}
