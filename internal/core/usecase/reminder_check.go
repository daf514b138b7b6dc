package usecase

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
	"github.com/jobtrackd/jobtrackd/internal/core/ports"
)

// DefaultCheckInterval is the tick period of the due-check loop.
const DefaultCheckInterval = 60 * time.Second

// CheckMetrics receives due-check observations. Implementations must be safe
// for concurrent use.
type CheckMetrics interface {
	ObserveEvaluation(duration time.Duration, due int, err error)
	ReminderSurfaced()
}

// CheckEngine decides which single reminder per owner should be surfaced as
// an interruptive notification, and processes the user's responses. Surfaced
// reminders live in a single-slot mailbox per owner: evaluation replaces the
// slot, only an explicit dismiss clears it.
type CheckEngine struct {
	reminders ports.ReminderRepository
	publisher ports.ReminderPublisher
	metrics   CheckMetrics

	mu      sync.Mutex
	current map[string]*domain.ReminderNotice

	interval   time.Duration
	intervalCh chan time.Duration
	running    atomic.Bool
	cancel     context.CancelFunc

	clock func() time.Time
}

func NewCheckEngine(
	reminders ports.ReminderRepository,
	publisher ports.ReminderPublisher,
	metrics CheckMetrics,
	interval time.Duration,
) *CheckEngine {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	return &CheckEngine{
		reminders:  reminders,
		publisher:  publisher,
		metrics:    metrics,
		current:    make(map[string]*domain.ReminderNotice),
		interval:   interval,
		intervalCh: make(chan time.Duration, 1),
		clock:      time.Now,
	}
}

// Start launches the check loop: one immediate evaluation, then one per tick.
// Ticks never overlap because the loop is a single goroutine and each
// evaluation runs synchronously.
func (e *CheckEngine) Start(ctx context.Context) {
	if !e.running.CompareAndSwap(false, true) {
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	go e.loop(loopCtx)
}

// Stop cancels the loop and clears all surfaced state so no evaluation runs
// against a stale session.
func (e *CheckEngine) Stop() {
	if !e.running.CompareAndSwap(true, false) {
		return
	}
	if e.cancel != nil {
		e.cancel()
	}
	e.mu.Lock()
	e.current = make(map[string]*domain.ReminderNotice)
	e.mu.Unlock()
}

func (e *CheckEngine) loop(ctx context.Context) {
	if err := e.Evaluate(ctx); err != nil {
		slog.Warn("due_check_failed", "error", err)
	}

	e.mu.Lock()
	interval := e.interval
	e.mu.Unlock()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case interval := <-e.intervalCh:
			ticker.Reset(interval)
		case <-ticker.C:
			if err := e.Evaluate(ctx); err != nil {
				slog.Warn("due_check_failed", "error", err)
			}
		}
	}
}

// Evaluate runs one due-check cycle: it scans the pending reminders, applies
// the due predicate at the current wall-clock time, and surfaces the
// earliest-due qualifying reminder per owner. Failures are reported but never
// stop the caller's loop; an unsurfaced due reminder is retried next tick.
func (e *CheckEngine) Evaluate(ctx context.Context) error {
	start := e.clock()

	pending, err := e.reminders.ListPending(ctx)
	if err != nil {
		e.observe(start, 0, err)
		return domain.WrapError(domain.ErrTemporary, "list pending reminders", err)
	}

	now := e.clock()
	due := make([]domain.OwnedReminder, 0, len(pending))
	for _, reminder := range pending {
		if reminder.DueForNotification(now) {
			due = append(due, reminder)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].DueAt.Before(due[j].DueAt)
	})

	surfaced := make(map[string]bool, len(due))
	for _, reminder := range due {
		if surfaced[reminder.OwnerID] {
			continue
		}
		surfaced[reminder.OwnerID] = true
		e.surface(ctx, reminder, now)
	}

	e.observe(start, len(due), nil)
	return nil
}

// surface marks the reminder shown, fills the owner's slot, and publishes the
// notice. Marking shown must succeed before anything else so a crashed cycle
// re-surfaces the reminder instead of losing it (at-least-once).
func (e *CheckEngine) surface(ctx context.Context, reminder domain.OwnedReminder, now time.Time) {
	if err := e.reminders.MarkNotificationShown(ctx, reminder.ID); err != nil {
		slog.Warn("mark_notification_shown_failed", "reminder_id", reminder.ID, "error", err)
		return
	}
	if ctx.Err() != nil {
		// Stopped while the store call was in flight; discard the result.
		return
	}

	shown := reminder.FollowUpReminder
	shown.NotificationShown = true
	notice := &domain.ReminderNotice{
		Reminder:   shown,
		OwnerID:    reminder.OwnerID,
		Company:    reminder.Company,
		Position:   reminder.Position,
		SurfacedAt: now,
	}

	e.mu.Lock()
	e.current[reminder.OwnerID] = notice
	e.mu.Unlock()

	if e.metrics != nil {
		e.metrics.ReminderSurfaced()
	}

	if e.publisher != nil {
		if err := e.publisher.PublishReminderDue(ctx, *notice); err != nil {
			slog.Warn("reminder_due_publish_failed", "reminder_id", reminder.ID, "error", err)
		}
	}
}

// Current returns the owner's surfaced reminder, or nil.
func (e *CheckEngine) Current(ownerID string) *domain.ReminderNotice {
	e.mu.Lock()
	defer e.mu.Unlock()
	notice, ok := e.current[ownerID]
	if !ok {
		return nil
	}
	copied := *notice
	return &copied
}

// Dismiss clears the surfaced slot without touching persisted state.
func (e *CheckEngine) Dismiss(ownerID string) {
	e.mu.Lock()
	delete(e.current, ownerID)
	e.mu.Unlock()
}

// MarkComplete completes the reminder and dismisses the owner's slot. It is
// idempotent: completing an already-completed or vanished reminder succeeds.
func (e *CheckEngine) MarkComplete(ctx context.Context, ownerID, reminderID string) error {
	if err := e.reminders.MarkCompleted(ctx, ownerID, reminderID); err != nil {
		return domain.WrapError(domain.ErrTemporary, "mark reminder complete", err)
	}
	e.Dismiss(ownerID)
	return nil
}

// Snooze pushes the reminder's due time forward, resets its notified state,
// and dismisses the slot. Completed reminders cannot be snoozed.
func (e *CheckEngine) Snooze(ctx context.Context, ownerID, reminderID string, minutes int) error {
	if minutes <= 0 {
		return domain.WrapError(domain.ErrInvalidInput, "snooze reminder", errNonPositive("minutes"))
	}

	reminder, err := e.reminders.GetByID(ctx, ownerID, reminderID)
	if err != nil {
		return err
	}
	if reminder.IsCompleted {
		return domain.WrapError(domain.ErrInvalidInput, "snooze reminder", errCompletedReminder)
	}

	dueAt := reminder.DueAt.Add(time.Duration(minutes) * time.Minute)
	if err := e.reminders.Reschedule(ctx, ownerID, reminderID, dueAt); err != nil {
		return domain.WrapError(domain.ErrTemporary, "snooze reminder", err)
	}
	e.Dismiss(ownerID)
	return nil
}

// SetInterval restarts the check timer with a new period.
func (e *CheckEngine) SetInterval(interval time.Duration) {
	if interval <= 0 {
		return
	}
	e.mu.Lock()
	e.interval = interval
	e.mu.Unlock()
	select {
	case e.intervalCh <- interval:
	default:
	}
}

func (e *CheckEngine) observe(start time.Time, due int, err error) {
	if e.metrics == nil {
		return
	}
	e.metrics.ObserveEvaluation(e.clock().Sub(start), due, err)
}
