package domain

import (
	"testing"
	"time"
)

func TestRelativeDuePhrase(t *testing.T) {
	now := time.Date(2025, 4, 22, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		due  time.Time
		want string
	}{
		{"three days overdue", now.Add(-72 * time.Hour), "overdue by 3 days"},
		{"one day overdue", now.Add(-24 * time.Hour), "overdue by 1 day"},
		{"earlier today", now.Add(-2 * time.Hour), "due today"},
		{"late yesterday evening", now.Add(-16 * time.Hour), "due today"},
		{"almost a full day overdue", now.Add(-23 * time.Hour), "due today"},
		{"exactly now", now, "due today"},
		{"later today", now.Add(6 * time.Hour), "due tomorrow"},
		{"tomorrow same time", now.Add(24 * time.Hour), "due tomorrow"},
		{"in five days", now.Add(5 * 24 * time.Hour), "due in 5 days"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RelativeDuePhrase(tc.due, now); got != tc.want {
				t.Fatalf("RelativeDuePhrase(%v) = %q, want %q", tc.due, got, tc.want)
			}
		})
	}
}

func TestDueUrgencyClass(t *testing.T) {
	now := time.Date(2025, 4, 22, 12, 0, 0, 0, time.UTC)

	if got := DueUrgencyClass(now.Add(-24*time.Hour), now); got != "bg-red-900 text-red-400" {
		t.Fatalf("overdue class = %q", got)
	}
	if got := DueUrgencyClass(now, now); got != "bg-orange-900 text-orange-400" {
		t.Fatalf("same-day class = %q", got)
	}
	if got := DueUrgencyClass(now.Add(40*time.Hour), now); got != "bg-yellow-900 text-yellow-400" {
		t.Fatalf("near-term class = %q", got)
	}
	if got := DueUrgencyClass(now.Add(7*24*time.Hour), now); got != "bg-blue-900 text-blue-400" {
		t.Fatalf("far-out class = %q", got)
	}
}

func TestColorForStatusCoversAllStatuses(t *testing.T) {
	statuses := []ApplicationStatus{
		StatusSent, StatusScreening, StatusInterview,
		StatusOffer, StatusRejected, StatusWaiting,
	}
	seen := make(map[string]ApplicationStatus, len(statuses))
	for _, status := range statuses {
		color := ColorForStatus(status)
		if color == "" {
			t.Fatalf("no color for status %s", status)
		}
		if prev, dup := seen[color]; dup {
			t.Fatalf("statuses %s and %s share color %q", prev, status, color)
		}
		seen[color] = status
	}
	if ColorForStatus("unknown") == "" {
		t.Fatalf("expected fallback color for unknown status")
	}
}

func TestDueForNotification(t *testing.T) {
	due := time.Date(2025, 4, 22, 10, 0, 0, 0, time.UTC)
	r := FollowUpReminder{DueAt: due, NotifyBeforeMinutes: 60}

	if r.DueForNotification(due.Add(-61 * time.Minute)) {
		t.Fatalf("must not fire before the lead window opens")
	}
	if !r.DueForNotification(due.Add(-60 * time.Minute)) {
		t.Fatalf("must fire at the window boundary")
	}
	if !r.DueForNotification(due.Add(time.Hour)) {
		t.Fatalf("must fire after the due time")
	}

	r.NotificationShown = true
	if r.DueForNotification(due) {
		t.Fatalf("must not fire once the notification was shown")
	}

	r.NotificationShown = false
	r.IsCompleted = true
	if r.DueForNotification(due) {
		t.Fatalf("must not fire for a completed reminder")
	}
}

func TestPatternTypeLabels(t *testing.T) {
	if got := PatternTypeLabel(PatternCover); got != "Cover Letter" {
		t.Fatalf("cover label = %q", got)
	}
	if got := PatternTypeLabel("letter"); got != "letter" {
		t.Fatalf("unknown type must fall through, got %q", got)
	}
	if got := PatternTypeColor(PatternNote); got != PatternTypeColor("letter") {
		t.Fatalf("note and unknown types share the muted color")
	}
}
