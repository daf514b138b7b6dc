package domain

import "time"

// Stat is one dashboard tile: a count, optionally against a total.
type Stat struct {
	Title       string `json:"title"`
	Value       int    `json:"value"`
	Total       int    `json:"total,omitempty"`
	BorderColor string `json:"border_color"`
}

// Appointment is an upcoming interview slot derived from interview-status
// applications.
type Appointment struct {
	ApplicationID string    `json:"application_id"`
	Company       string    `json:"company"`
	Position      string    `json:"position"`
	At            time.Time `json:"at"`
	IsToday       bool      `json:"is_today"`
	Color         string    `json:"color"`
}
