package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
)

func TestCalculateStatsBuckets(t *testing.T) {
	apps := []domain.Application{
		{Status: domain.StatusSent},
		{Status: domain.StatusScreening},
		{Status: domain.StatusInterview},
		{Status: domain.StatusOffer},
		{Status: domain.StatusRejected},
		{Status: domain.StatusRejected},
		{Status: domain.StatusWaiting},
	}

	stats := CalculateStats(apps)
	if len(stats) != 4 {
		t.Fatalf("expected 4 tiles, got %d", len(stats))
	}

	byTitle := make(map[string]domain.Stat, len(stats))
	for _, stat := range stats {
		byTitle[stat.Title] = stat
	}

	if got := byTitle["Active applications"].Value; got != 5 {
		t.Fatalf("active = %d, want 5", got)
	}
	if got := byTitle["Interviews"].Value; got != 2 {
		t.Fatalf("interviews = %d, want 2", got)
	}
	if got := byTitle["Positive responses"].Value; got != 2 {
		t.Fatalf("positive = %d, want 2", got)
	}
	if got := byTitle["Rejections"].Value; got != 2 {
		t.Fatalf("rejections = %d, want 2", got)
	}
	if got := byTitle["Active applications"].Total; got != 7 {
		t.Fatalf("total = %d, want 7", got)
	}
}

func TestUpcomingAppointmentsFiltersAndSorts(t *testing.T) {
	apps := newAppsRepoFake()
	now := time.Date(2025, 4, 22, 15, 0, 0, 0, time.UTC)

	today := time.Date(2025, 4, 22, 9, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2025, 4, 23, 11, 0, 0, 0, time.UTC)
	yesterday := time.Date(2025, 4, 21, 10, 0, 0, 0, time.UTC)

	apps.apps["a-today"] = &domain.Application{ID: "a-today", OwnerID: "u-1", Status: domain.StatusInterview, AppointmentAt: &today}
	apps.apps["a-tomorrow"] = &domain.Application{ID: "a-tomorrow", OwnerID: "u-1", Status: domain.StatusInterview, AppointmentAt: &tomorrow}
	apps.apps["a-past"] = &domain.Application{ID: "a-past", OwnerID: "u-1", Status: domain.StatusInterview, AppointmentAt: &yesterday}
	apps.apps["a-no-date"] = &domain.Application{ID: "a-no-date", OwnerID: "u-1", Status: domain.StatusInterview}
	apps.apps["a-wrong-status"] = &domain.Application{ID: "a-wrong-status", OwnerID: "u-1", Status: domain.StatusOffer, AppointmentAt: &tomorrow}

	uc := NewStatsUseCase(apps)
	uc.clock = func() time.Time { return now }

	appointments, err := uc.UpcomingAppointments(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("UpcomingAppointments() error = %v", err)
	}
	if len(appointments) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(appointments))
	}
	if appointments[0].ApplicationID != "a-today" || !appointments[0].IsToday {
		t.Fatalf("expected today's appointment first and flagged, got %+v", appointments[0])
	}
	if appointments[1].ApplicationID != "a-tomorrow" || appointments[1].IsToday {
		t.Fatalf("expected tomorrow's appointment second and unflagged, got %+v", appointments[1])
	}
}

func TestUpcomingAppointmentsKeepsEarlierSameDaySlot(t *testing.T) {
	apps := newAppsRepoFake()
	now := time.Date(2025, 4, 22, 15, 0, 0, 0, time.UTC)

	// An appointment earlier today still counts: the cutoff is start of day,
	// not the current instant.
	morning := time.Date(2025, 4, 22, 8, 0, 0, 0, time.UTC)
	apps.apps["a-1"] = &domain.Application{ID: "a-1", OwnerID: "u-1", Status: domain.StatusInterview, AppointmentAt: &morning}

	uc := NewStatsUseCase(apps)
	uc.clock = func() time.Time { return now }

	appointments, err := uc.UpcomingAppointments(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("UpcomingAppointments() error = %v", err)
	}
	if len(appointments) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(appointments))
	}
}
