package domain

import (
	"fmt"
	"time"
)

// Presentation helpers shared by the API read models. All pure functions so
// the timeline and reminder views stay consistent.

func ColorForStatus(status ApplicationStatus) string {
	switch status {
	case StatusInterview:
		return "bg-gradient-to-r from-purple-600 to-pink-500"
	case StatusSent:
		return "bg-gradient-to-r from-blue-600 to-cyan-500"
	case StatusRejected:
		return "bg-gradient-to-r from-red-600 to-orange-500"
	case StatusScreening:
		return "bg-gradient-to-r from-yellow-600 to-amber-500"
	case StatusOffer:
		return "bg-gradient-to-r from-lime-500 to-green-500"
	case StatusWaiting:
		return "bg-gradient-to-r from-gray-400 to-gray-500"
	default:
		return "bg-gradient-to-r from-gray-700 to-gray-800"
	}
}

func DocumentCategoryLabel(category DocumentCategory) string {
	switch category {
	case DocumentResume:
		return "Resume"
	case DocumentCoverLetter:
		return "Cover Letter"
	case DocumentReference:
		return "Reference"
	default:
		return "Other"
	}
}

func PatternTypeLabel(t PatternType) string {
	switch t {
	case PatternCover:
		return "Cover Letter"
	case PatternResume:
		return "Resume"
	case PatternEmail:
		return "Email"
	case PatternNote:
		return "Note"
	default:
		return string(t)
	}
}

func PatternTypeColor(t PatternType) string {
	switch t {
	case PatternCover:
		return "bg-blue-900 text-blue-400"
	case PatternResume:
		return "bg-green-900 text-green-400"
	case PatternEmail:
		return "bg-yellow-900 text-yellow-400"
	default:
		return "bg-gray-800 text-gray-400"
	}
}

func PriorityLabel(p Priority) string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return string(p)
	}
}

func PriorityColor(p Priority) string {
	switch p {
	case PriorityHigh:
		return "text-red-400"
	case PriorityMedium:
		return "text-yellow-400"
	default:
		return "text-blue-400"
	}
}

// RelativeDuePhrase renders a due date against now in whole days.
func RelativeDuePhrase(due, now time.Time) string {
	days := daysUntil(due, now)
	switch {
	case days < -1:
		return fmt.Sprintf("overdue by %d days", -days)
	case days == -1:
		return "overdue by 1 day"
	case days == 0:
		return "due today"
	case days == 1:
		return "due tomorrow"
	default:
		return fmt.Sprintf("due in %d days", days)
	}
}

// DueUrgencyClass maps temporal distance to a severity style.
func DueUrgencyClass(due, now time.Time) string {
	days := daysUntil(due, now)
	switch {
	case days < 0:
		return "bg-red-900 text-red-400"
	case days == 0:
		return "bg-orange-900 text-orange-400"
	case days <= 2:
		return "bg-yellow-900 text-yellow-400"
	default:
		return "bg-blue-900 text-blue-400"
	}
}

func daysUntil(due, now time.Time) int {
	diff := due.Sub(now)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}
