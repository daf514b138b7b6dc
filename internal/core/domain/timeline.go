package domain

import "time"

type TimelineItemType string

const (
	TimelineStatusChange  TimelineItemType = "status_change"
	TimelineNote          TimelineItemType = "note"
	TimelineCommunication TimelineItemType = "communication"
	TimelineReminder      TimelineItemType = "reminder"
	TimelineDocument      TimelineItemType = "document"
)

// TimelineItem is a read-only projection of one child-entity event, normalized
// for chronological rendering. Data holds the underlying typed record.
type TimelineItem struct {
	ID        string           `json:"id"`
	Timestamp time.Time        `json:"timestamp"`
	Type      TimelineItemType `json:"type"`
	Title     string           `json:"title"`
	Icon      string           `json:"icon"`
	Data      any              `json:"data"`
}
