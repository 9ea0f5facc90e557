package schedule

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for appointment dates.
const DateLayout = "2006-01-02"

// dayNames holds weekday names in template order, Monday first.
var dayNames = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// DayIndex returns the Monday-based index of a weekday name. Matching is
// case-insensitive. The second return value is false for unknown names.
func DayIndex(name string) (int, bool) {
	lowered := strings.ToLower(strings.TrimSpace(name))
	for i, d := range dayNames {
		if d == lowered {
			return i, true
		}
	}
	return 0, false
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CurrentWeekStart returns the most recent Monday at midnight relative to
// today.
func CurrentWeekStart(today time.Time) time.Time {
	// time.Weekday is Sunday-based; shift so Monday = 0.
	offset := (int(today.Weekday()) + 6) % 7
	return StartOfDay(today.AddDate(0, 0, -offset))
}

// WeekStart returns the Monday starting the requested week offset, where
// offset 1 is the current week and each increment moves one week forward.
func WeekStart(today time.Time, weekOffset int) time.Time {
	return CurrentWeekStart(today).AddDate(0, 0, 7*(weekOffset-1))
}

// SlotDate projects a template slot's weekday onto the concrete calendar
// date inside the requested week offset.
func SlotDate(today time.Time, weekOffset int, dayName string) (time.Time, error) {
	idx, ok := DayIndex(dayName)
	if !ok {
		return time.Time{}, fmt.Errorf("unknown day of week %q", dayName)
	}
	return WeekStart(today, weekOffset).AddDate(0, 0, idx), nil
}

// WeekLabel renders the human-facing label for a week offset. Offsets 1 and
// 2 keep their conventional names for compatibility with existing clients.
func WeekLabel(weekOffset int) string {
	switch weekOffset {
	case 1:
		return "Current Week"
	case 2:
		return "Next Week"
	default:
		return fmt.Sprintf("Week %d", weekOffset)
	}
}
