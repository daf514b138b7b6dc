package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
	"github.com/jobtrackd/jobtrackd/internal/core/ports"
)

var statBorderColors = map[string]string{
	"active":    "from-purple-600 to-pink-500",
	"interview": "from-blue-600 to-cyan-500",
	"positive":  "from-pink-600 to-purple-500",
	"declined":  "from-red-600 to-orange-500",
}

// StatsUseCase serves the dashboard read models: aggregate counters and the
// upcoming interview appointments.
type StatsUseCase struct {
	apps  ports.ApplicationRepository
	clock func() time.Time
}

func NewStatsUseCase(apps ports.ApplicationRepository) *StatsUseCase {
	return &StatsUseCase{apps: apps, clock: time.Now}
}

func (uc *StatsUseCase) Dashboard(ctx context.Context, ownerID string) ([]domain.Stat, error) {
	apps, err := uc.apps.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return CalculateStats(apps), nil
}

// CalculateStats derives the dashboard tiles from an application snapshot.
func CalculateStats(apps []domain.Application) []domain.Stat {
	var active, interviews, positive, declined int
	for _, app := range apps {
		switch app.Status {
		case domain.StatusRejected:
			declined++
		default:
			active++
		}
		if app.Status == domain.StatusInterview || app.Status == domain.StatusScreening {
			interviews++
		}
		if app.Status == domain.StatusInterview || app.Status == domain.StatusOffer {
			positive++
		}
	}

	total := len(apps)
	return []domain.Stat{
		{Title: "Active applications", Value: active, Total: total, BorderColor: statBorderColors["active"]},
		{Title: "Interviews", Value: interviews, BorderColor: statBorderColors["interview"]},
		{Title: "Positive responses", Value: positive, Total: total, BorderColor: statBorderColors["positive"]},
		{Title: "Rejections", Value: declined, Total: total, BorderColor: statBorderColors["declined"]},
	}
}

// UpcomingAppointments lists interview appointments from today onward,
// ascending.
func (uc *StatsUseCase) UpcomingAppointments(ctx context.Context, ownerID string) ([]domain.Appointment, error) {
	apps, err := uc.apps.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := uc.clock().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	appointments := make([]domain.Appointment, 0)
	for _, app := range apps {
		if app.Status != domain.StatusInterview || app.AppointmentAt == nil {
			continue
		}
		at := app.AppointmentAt.UTC()
		if at.Before(startOfDay) {
			continue
		}
		appointments = append(appointments, domain.Appointment{
			ApplicationID: app.ID,
			Company:       app.Company,
			Position:      app.Position,
			At:            at,
			IsToday:       at.Before(startOfDay.Add(24 * time.Hour)),
			Color:         app.Color,
		})
	}
	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].At.Before(appointments[j].At)
	})
	return appointments, nil
}
