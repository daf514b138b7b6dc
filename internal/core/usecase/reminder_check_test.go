package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
)

type checkRepoFake struct {
	reminders     map[string]*domain.OwnedReminder
	pendingErr    error
	shownErr      error
	listForAppErr error
	shownIDs      []string
}

func newCheckRepoFake(reminders ...domain.OwnedReminder) *checkRepoFake {
	f := &checkRepoFake{reminders: make(map[string]*domain.OwnedReminder)}
	for _, reminder := range reminders {
		copied := reminder
		f.reminders[reminder.ID] = &copied
	}
	return f
}

func (f *checkRepoFake) Create(context.Context, *domain.FollowUpReminder) error {
	return errors.New("not implemented")
}

func (f *checkRepoFake) GetByID(_ context.Context, ownerID, id string) (*domain.FollowUpReminder, error) {
	reminder, ok := f.reminders[id]
	if !ok || reminder.OwnerID != ownerID {
		return nil, domain.WrapError(domain.ErrNotFound, "get reminder", fmt.Errorf("id=%s", id))
	}
	copied := reminder.FollowUpReminder
	return &copied, nil
}

func (f *checkRepoFake) ListForApplication(_ context.Context, applicationID string) ([]domain.FollowUpReminder, error) {
	if f.listForAppErr != nil {
		return nil, f.listForAppErr
	}
	out := make([]domain.FollowUpReminder, 0)
	for _, reminder := range f.reminders {
		if reminder.ApplicationID == applicationID {
			out = append(out, reminder.FollowUpReminder)
		}
	}
	return out, nil
}

func (f *checkRepoFake) ListForOwner(_ context.Context, ownerID string) ([]domain.OwnedReminder, error) {
	out := make([]domain.OwnedReminder, 0)
	for _, reminder := range f.reminders {
		if reminder.OwnerID == ownerID {
			out = append(out, *reminder)
		}
	}
	return out, nil
}

func (f *checkRepoFake) ListPending(context.Context) ([]domain.OwnedReminder, error) {
	if f.pendingErr != nil {
		return nil, f.pendingErr
	}
	out := make([]domain.OwnedReminder, 0)
	for _, reminder := range f.reminders {
		if !reminder.IsCompleted && !reminder.NotificationShown {
			out = append(out, *reminder)
		}
	}
	return out, nil
}

func (f *checkRepoFake) MarkCompleted(_ context.Context, ownerID, id string) error {
	reminder, ok := f.reminders[id]
	if !ok || reminder.OwnerID != ownerID {
		// Vanished reminders complete as a no-op.
		return nil
	}
	reminder.IsCompleted = true
	return nil
}

func (f *checkRepoFake) ToggleCompletion(_ context.Context, ownerID, id string) (*domain.FollowUpReminder, error) {
	reminder, ok := f.reminders[id]
	if !ok || reminder.OwnerID != ownerID {
		return nil, domain.WrapError(domain.ErrNotFound, "toggle reminder", fmt.Errorf("id=%s", id))
	}
	reminder.IsCompleted = !reminder.IsCompleted
	copied := reminder.FollowUpReminder
	return &copied, nil
}

func (f *checkRepoFake) Reschedule(_ context.Context, ownerID, id string, dueAt time.Time) error {
	reminder, ok := f.reminders[id]
	if !ok || reminder.OwnerID != ownerID {
		return domain.WrapError(domain.ErrNotFound, "reschedule reminder", fmt.Errorf("id=%s", id))
	}
	reminder.DueAt = dueAt
	reminder.NotificationShown = false
	return nil
}

func (f *checkRepoFake) MarkNotificationShown(_ context.Context, id string) error {
	if f.shownErr != nil {
		return f.shownErr
	}
	reminder, ok := f.reminders[id]
	if !ok {
		return domain.WrapError(domain.ErrNotFound, "mark shown", fmt.Errorf("id=%s", id))
	}
	reminder.NotificationShown = true
	f.shownIDs = append(f.shownIDs, id)
	return nil
}

func (f *checkRepoFake) Delete(context.Context, string, string) error {
	return errors.New("not implemented")
}

type publisherFake struct {
	notices []domain.ReminderNotice
	err     error
}

func (f *publisherFake) PublishReminderDue(_ context.Context, notice domain.ReminderNotice) error {
	if f.err != nil {
		return f.err
	}
	f.notices = append(f.notices, notice)
	return nil
}

func reminderAt(id, ownerID string, dueAt time.Time, notifyBefore int) domain.OwnedReminder {
	return domain.OwnedReminder{
		FollowUpReminder: domain.FollowUpReminder{
			ID:                  id,
			ApplicationID:       "app-1",
			DueAt:               dueAt,
			ReminderText:        "follow up",
			NotifyBeforeMinutes: notifyBefore,
			CreatedAt:           dueAt.Add(-24 * time.Hour),
		},
		OwnerID:  ownerID,
		Company:  "Acme",
		Position: "Backend Engineer",
	}
}

func engineAt(repo *checkRepoFake, pub *publisherFake, now time.Time) *CheckEngine {
	engine := NewCheckEngine(repo, pub, nil, 0)
	engine.clock = func() time.Time { return now }
	return engine
}

func TestEvaluateSurfacesReminderInsideLeadWindow(t *testing.T) {
	due := time.Date(2025, 4, 22, 10, 0, 0, 0, time.UTC)
	now := time.Date(2025, 4, 22, 9, 0, 0, 0, time.UTC)
	repo := newCheckRepoFake(reminderAt("r-1", "u-1", due, 60))
	pub := &publisherFake{}
	engine := engineAt(repo, pub, now)

	if err := engine.Evaluate(context.Background()); err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	notice := engine.Current("u-1")
	if notice == nil {
		t.Fatalf("expected surfaced reminder")
	}
	if notice.Reminder.ID != "r-1" {
		t.Fatalf("expected r-1, got %s", notice.Reminder.ID)
	}
	if !notice.Reminder.NotificationShown {
		t.Fatalf("expected notification shown on surfaced copy")
	}
	if len(repo.shownIDs) != 1 || repo.shownIDs[0] != "r-1" {
		t.Fatalf("expected persisted shown flag for r-1, got %v", repo.shownIDs)
	}
	if len(pub.notices) != 1 {
		t.Fatalf("expected 1 published notice, got %d", len(pub.notices))
	}
}

func TestEvaluateIgnoresReminderOutsideLeadWindow(t *testing.T) {
	due := time.Date(2025, 4, 22, 10, 0, 0, 0, time.UTC)
	now := time.Date(2025, 4, 22, 8, 59, 0, 0, time.UTC)
	repo := newCheckRepoFake(reminderAt("r-1", "u-1", due, 60))
	engine := engineAt(repo, &publisherFake{}, now)

	if err := engine.Evaluate(context.Background()); err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if engine.Current("u-1") != nil {
		t.Fatalf("expected no surfaced reminder")
	}
	if len(repo.shownIDs) != 0 {
		t.Fatalf("expected no shown flags, got %v", repo.shownIDs)
	}
}

func TestEvaluateSkipsCompletedAndAlreadyShown(t *testing.T) {
	now := time.Date(2025, 4, 22, 12, 0, 0, 0, time.UTC)
	completed := reminderAt("r-done", "u-1", now.Add(-time.Hour), 60)
	completed.IsCompleted = true
	shown := reminderAt("r-shown", "u-1", now.Add(-time.Hour), 60)
	shown.NotificationShown = true

	repo := newCheckRepoFake(completed, shown)
	engine := engineAt(repo, &publisherFake{}, now)

	if err := engine.Evaluate(context.Background()); err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if engine.Current("u-1") != nil {
		t.Fatalf("expected no surfaced reminder")
	}
}

func TestEvaluateSurfacesEarliestDuePerOwner(t *testing.T) {
	now := time.Date(2025, 4, 22, 12, 0, 0, 0, time.UTC)
	repo := newCheckRepoFake(
		reminderAt("r-later", "u-1", now.Add(30*time.Minute), 60),
		reminderAt("r-earlier", "u-1", now.Add(10*time.Minute), 60),
		reminderAt("r-other", "u-2", now.Add(20*time.Minute), 60),
	)
	pub := &publisherFake{}
	engine := engineAt(repo, pub, now)

	if err := engine.Evaluate(context.Background()); err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	notice := engine.Current("u-1")
	if notice == nil || notice.Reminder.ID != "r-earlier" {
		t.Fatalf("expected r-earlier surfaced for u-1, got %+v", notice)
	}
	other := engine.Current("u-2")
	if other == nil || other.Reminder.ID != "r-other" {
		t.Fatalf("expected r-other surfaced for u-2, got %+v", other)
	}
	// One slot per owner: the later u-1 reminder stays pending.
	if len(pub.notices) != 2 {
		t.Fatalf("expected 2 published notices, got %d", len(pub.notices))
	}
}

func TestSnoozePreventsImmediateResurface(t *testing.T) {
	due := time.Date(2025, 4, 22, 10, 0, 0, 0, time.UTC)
	now := time.Date(2025, 4, 22, 9, 30, 0, 0, time.UTC)
	repo := newCheckRepoFake(reminderAt("r-1", "u-1", due, 60))
	engine := engineAt(repo, &publisherFake{}, now)

	if err := engine.Evaluate(context.Background()); err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if engine.Current("u-1") == nil {
		t.Fatalf("expected surfaced reminder before snooze")
	}

	if err := engine.Snooze(context.Background(), "u-1", "r-1", 120); err != nil {
		t.Fatalf("Snooze() error = %v", err)
	}
	if engine.Current("u-1") != nil {
		t.Fatalf("expected slot cleared after snooze")
	}
	// New due 12:00, lead 60: eligible from 11:00, so 09:30 must not surface.
	if err := engine.Evaluate(context.Background()); err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if engine.Current("u-1") != nil {
		t.Fatalf("expected no resurface before new lead window")
	}
}

func TestSnoozeValidation(t *testing.T) {
	now := time.Date(2025, 4, 22, 12, 0, 0, 0, time.UTC)
	completed := reminderAt("r-done", "u-1", now, 60)
	completed.IsCompleted = true
	repo := newCheckRepoFake(completed)
	engine := engineAt(repo, &publisherFake{}, now)

	if err := engine.Snooze(context.Background(), "u-1", "r-done", 0); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for zero minutes, got %v", err)
	}
	if err := engine.Snooze(context.Background(), "u-1", "r-done", 30); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for completed reminder, got %v", err)
	}
	if err := engine.Snooze(context.Background(), "u-1", "r-missing", 30); !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMarkCompleteIsIdempotent(t *testing.T) {
	now := time.Date(2025, 4, 22, 12, 0, 0, 0, time.UTC)
	repo := newCheckRepoFake(reminderAt("r-1", "u-1", now, 60))
	engine := engineAt(repo, &publisherFake{}, now)

	if err := engine.Evaluate(context.Background()); err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if err := engine.MarkComplete(context.Background(), "u-1", "r-1"); err != nil {
		t.Fatalf("MarkComplete() error = %v", err)
	}
	if engine.Current("u-1") != nil {
		t.Fatalf("expected slot cleared after completion")
	}
	if !repo.reminders["r-1"].IsCompleted {
		t.Fatalf("expected reminder completed")
	}
	if err := engine.MarkComplete(context.Background(), "u-1", "r-1"); err != nil {
		t.Fatalf("second MarkComplete() error = %v", err)
	}
	if err := engine.MarkComplete(context.Background(), "u-1", "r-gone"); err != nil {
		t.Fatalf("MarkComplete() on vanished reminder error = %v", err)
	}
}

func TestEvaluateToleratesMarkShownFailure(t *testing.T) {
	now := time.Date(2025, 4, 22, 12, 0, 0, 0, time.UTC)
	repo := newCheckRepoFake(reminderAt("r-1", "u-1", now, 60))
	repo.shownErr = errors.New("store down")
	pub := &publisherFake{}
	engine := engineAt(repo, pub, now)

	if err := engine.Evaluate(context.Background()); err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if engine.Current("u-1") != nil {
		t.Fatalf("expected no slot when shown flag could not be persisted")
	}
	if len(pub.notices) != 0 {
		t.Fatalf("expected no publish, got %d", len(pub.notices))
	}

	// Store recovers: the next evaluation surfaces the reminder.
	repo.shownErr = nil
	if err := engine.Evaluate(context.Background()); err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if engine.Current("u-1") == nil {
		t.Fatalf("expected reminder surfaced after recovery")
	}
}

func TestEvaluateReturnsErrorWhenScanFails(t *testing.T) {
	repo := newCheckRepoFake()
	repo.pendingErr = errors.New("store down")
	engine := engineAt(repo, &publisherFake{}, time.Now())

	if err := engine.Evaluate(context.Background()); !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary error, got %v", err)
	}
}

func TestDismissClearsOnlyTheSlot(t *testing.T) {
	now := time.Date(2025, 4, 22, 12, 0, 0, 0, time.UTC)
	repo := newCheckRepoFake(reminderAt("r-1", "u-1", now, 60))
	engine := engineAt(repo, &publisherFake{}, now)

	if err := engine.Evaluate(context.Background()); err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	engine.Dismiss("u-1")
	if engine.Current("u-1") != nil {
		t.Fatalf("expected slot cleared")
	}
	reminder := repo.reminders["r-1"]
	if reminder.IsCompleted || !reminder.NotificationShown {
		t.Fatalf("dismiss must not alter persisted state, got %+v", reminder.FollowUpReminder)
	}
}

func TestSetIntervalReschedulesTimer(t *testing.T) {
	engine := engineAt(newCheckRepoFake(), &publisherFake{}, time.Now())

	engine.SetInterval(5 * time.Second)
	select {
	case interval := <-engine.intervalCh:
		if interval != 5*time.Second {
			t.Fatalf("expected 5s on the interval channel, got %v", interval)
		}
	default:
		t.Fatalf("expected SetInterval to feed the timer channel")
	}
	if engine.interval != 5*time.Second {
		t.Fatalf("expected stored interval 5s, got %v", engine.interval)
	}

	engine.SetInterval(0)
	if engine.interval != 5*time.Second {
		t.Fatalf("non-positive interval must be ignored, got %v", engine.interval)
	}
}
