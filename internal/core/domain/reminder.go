package domain

import "time"

// DefaultNotifyBeforeMinutes is the lead time applied when a reminder is
// created without one.
const DefaultNotifyBeforeMinutes = 60

// FollowUpReminder moves pending -> notified -> completed. Snoozing returns a
// notified reminder to pending with a later due time.
type FollowUpReminder struct {
	ID                  string    `json:"id"`
	ApplicationID       string    `json:"application_id"`
	DueAt               time.Time `json:"due_at"`
	ReminderText        string    `json:"reminder_text"`
	IsCompleted         bool      `json:"is_completed"`
	NotificationShown   bool      `json:"notification_shown"`
	NotifyBeforeMinutes int       `json:"notify_before_minutes"`
	CreatedAt           time.Time `json:"created_at"`
}

// NotifyAt is the instant the reminder becomes eligible for notification.
func (r FollowUpReminder) NotifyAt() time.Time {
	return r.DueAt.Add(-time.Duration(r.NotifyBeforeMinutes) * time.Minute)
}

// DueForNotification reports whether the reminder should be surfaced at now.
func (r FollowUpReminder) DueForNotification(now time.Time) bool {
	if r.IsCompleted || r.NotificationShown {
		return false
	}
	return !now.Before(r.NotifyAt())
}

// OwnedReminder joins a reminder with its owning application's identity, as
// returned by owner-level and engine-level scans.
type OwnedReminder struct {
	FollowUpReminder
	OwnerID  string `json:"owner_id"`
	Company  string `json:"company,omitempty"`
	Position string `json:"position,omitempty"`
}

// ReminderNotice is the surfaced form of a due reminder: the reminder plus
// enough application context to render an interruptive notification.
type ReminderNotice struct {
	Reminder   FollowUpReminder `json:"reminder"`
	OwnerID    string           `json:"owner_id"`
	Company    string           `json:"company,omitempty"`
	Position   string           `json:"position,omitempty"`
	SurfacedAt time.Time        `json:"surfaced_at"`
}
