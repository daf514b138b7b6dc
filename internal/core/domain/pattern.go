package domain

import "time"

type PatternType string

const (
	PatternCover  PatternType = "cover"
	PatternResume PatternType = "resume"
	PatternEmail  PatternType = "email"
	PatternNote   PatternType = "note"
)

func (t PatternType) Valid() bool {
	switch t {
	case PatternCover, PatternResume, PatternEmail, PatternNote:
		return true
	default:
		return false
	}
}

// Pattern is a reusable text template (cover letter, follow-up email, ...)
// with placeholders the user fills in by hand. At most one pattern per type
// carries the default flag for an owner.
type Pattern struct {
	ID        string      `json:"id"`
	OwnerID   string      `json:"owner_id"`
	Name      string      `json:"name"`
	Type      PatternType `json:"type"`
	Content   string      `json:"content"`
	Tags      []string    `json:"tags,omitempty"`
	IsDefault bool        `json:"is_default"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt *time.Time  `json:"updated_at,omitempty"`
}
