// Package datefmt turns deadlines and estimates into short display labels.
//
// All comparisons are by calendar day. A deadline's day is read in its own
// location, today is read in now's location, and time of day never matters.
package datefmt

import (
	"fmt"
	"time"
)

// Status classifies a deadline against today.
type Status string

const (
	StatusOverdue  Status = "overdue"
	StatusToday    Status = "today"
	StatusTomorrow Status = "tomorrow"
	StatusUpcoming Status = "upcoming"
)

// Labels holds the words and layouts used by FormatDate.
type Labels struct {
	Today     string
	Tomorrow  string
	Yesterday string

	// ShortLayout is used for dates in the current year, LongLayout otherwise.
	ShortLayout string
	LongLayout  string
}

// EnglishLabels are the default labels.
var EnglishLabels = Labels{
	Today:       "Today",
	Tomorrow:    "Tomorrow",
	Yesterday:   "Yesterday",
	ShortLayout: "Jan 2",
	LongLayout:  "Jan 2, 2006",
}

// Classify returns the deadline's status relative to now.
func Classify(deadline, now time.Time) Status {
	switch diff := daysBetween(now, deadline); {
	case diff < 0:
		return StatusOverdue
	case diff == 0:
		return StatusToday
	case diff == 1:
		return StatusTomorrow
	default:
		return StatusUpcoming
	}
}

// DeadlineStatus classifies the deadline against the current time.
func DeadlineStatus(deadline time.Time) Status {
	return Classify(deadline, time.Now())
}

// FormatDate labels a date relative to now.
func FormatDate(date, now time.Time, labels Labels) string {
	switch daysBetween(now, date) {
	case 0:
		return labels.Today
	case 1:
		return labels.Tomorrow
	case -1:
		return labels.Yesterday
	}
	if date.Year() != now.Year() {
		return date.Format(labels.LongLayout)
	}
	return date.Format(labels.ShortLayout)
}

// FormatTimeEstimate renders minutes as "45m", "2h" or "1h 30m".
func FormatTimeEstimate(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// daysBetween returns the number of calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(civilDay(b).Sub(civilDay(a)).Hours() / 24)
}

func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
