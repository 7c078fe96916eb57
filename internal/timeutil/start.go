package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// Layouts accepted for a full start timestamp, most precise first
var startLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// Layouts accepted for a time of day, which is taken on the day of now
var clockLayouts = []string{
	"15:04:05",
	"15:04",
}

// ParseStart parses a record start timestamp relative to now.
// The result is in now's location and has second precision.
//
// Valid inputs:
//   - "now"
//   - "2024-01-15 09:30:00", "2024-01-15 09:30" (or with a T separator)
//   - "09:30", "09:30:15" (today)
//   - "2024-01-15", "15/01/2024" (midnight)
func ParseStart(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("start cannot be empty (use 'now', HH:MM or YYYY-MM-DD HH:MM:SS)")
	}

	loc := now.Location()
	if strings.EqualFold(input, "now") {
		return now.In(loc).Truncate(time.Second), nil
	}

	for _, layout := range startLayouts {
		if t, err := time.ParseInLocation(layout, input, loc); err == nil {
			return t, nil
		}
	}

	for _, layout := range clockLayouts {
		if t, err := time.ParseInLocation(layout, input, loc); err == nil {
			return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), nil
		}
	}

	if t, err := ParseDate(input, loc); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid start '%s' (use 'now', HH:MM, YYYY-MM-DD or YYYY-MM-DD HH:MM:SS)", input)
}
