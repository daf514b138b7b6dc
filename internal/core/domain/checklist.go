package domain

import "time"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

type ChecklistItem struct {
	ID            string     `json:"id"`
	ApplicationID string     `json:"application_id"`
	Task          string     `json:"task"`
	Category      string     `json:"category"`
	Position      int        `json:"position"`
	Priority      Priority   `json:"priority"`
	DueOn         *time.Time `json:"due_on,omitempty"`
	IsCompleted   bool       `json:"is_completed"`
	CreatedAt     time.Time  `json:"created_at"`
}

// TemplateItem is a checklist item blueprint; seeding an application copies
// blueprints into concrete checklist items.
type TemplateItem struct {
	Task     string   `json:"task" yaml:"task"`
	Category string   `json:"category" yaml:"category"`
	Position int      `json:"position" yaml:"position"`
	Priority Priority `json:"priority" yaml:"priority"`
}

type ChecklistTemplate struct {
	ID          string         `json:"id" yaml:"id"`
	OwnerID     string         `json:"owner_id,omitempty" yaml:"-"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description"`
	Category    string         `json:"category" yaml:"category"`
	IsDefault   bool           `json:"is_default" yaml:"default"`
	Items       []TemplateItem `json:"items" yaml:"items"`
}
