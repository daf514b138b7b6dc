package domain

import "time"

type ApplicationStatus string

const (
	StatusSent      ApplicationStatus = "sent"
	StatusScreening ApplicationStatus = "screening"
	StatusInterview ApplicationStatus = "interview"
	StatusOffer     ApplicationStatus = "offer"
	StatusRejected  ApplicationStatus = "rejected"
	StatusWaiting   ApplicationStatus = "waiting"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusSent, StatusScreening, StatusInterview, StatusOffer, StatusRejected, StatusWaiting:
		return true
	default:
		return false
	}
}

// Application is the root entity; every child record is owned by exactly one
// application and is removed with it.
type Application struct {
	ID            string            `json:"id"`
	OwnerID       string            `json:"owner_id"`
	Company       string            `json:"company"`
	Location      string            `json:"location,omitempty"`
	Position      string            `json:"position"`
	Status        ApplicationStatus `json:"status"`
	AppliedOn     time.Time         `json:"applied_on"`
	AppointmentAt *time.Time        `json:"appointment_at,omitempty"`
	Color         string            `json:"color"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// StatusChange is journal-only: rows are written as a side effect of
// application create/update, never directly by a client.
type StatusChange struct {
	ID            string             `json:"id"`
	ApplicationID string             `json:"application_id"`
	OldStatus     *ApplicationStatus `json:"old_status,omitempty"`
	NewStatus     ApplicationStatus  `json:"new_status"`
	ChangedAt     time.Time          `json:"changed_at"`
}
