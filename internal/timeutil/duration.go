package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// combinedTimePattern matches combined time duration in XhYm format (e.g., "1h30m", "-2h15m")
var combinedTimePattern = regexp.MustCompile(`^(-?)(\d+)h(\d+)m$`)

// timePattern matches time duration in Yh (hours), Ym or plain Y (minutes) format
var timePattern = regexp.MustCompile(`^(-?)(\d+)(h|m)?$`)

// MaxDurationMinutes is the largest duration accepted, in either direction (24 hours)
const MaxDurationMinutes = 24 * 60

// ParseDuration parses a signed duration given as plain minutes or in Yh,
// Ym or XhYm format. The result is a whole number of minutes.
// Valid inputs: "15" (15m), "-5" (-5m), "2h" (2h), "30m" (30m), "1h30m" (90m)
// Invalid inputs: "invalid", "1.5h", "1d", values exceeding 24h
func ParseDuration(input string) (time.Duration, error) {
	var sign, hoursStr, minsStr string

	if m := combinedTimePattern.FindStringSubmatch(input); m != nil {
		sign, hoursStr, minsStr = m[1], m[2], m[3]
	} else if m := timePattern.FindStringSubmatch(input); m != nil {
		sign = m[1]
		if m[3] == "h" {
			hoursStr = m[2]
		} else {
			minsStr = m[2]
		}
	} else {
		return 0, fmt.Errorf("invalid duration format: expected minutes, Xh, Xm, or XhYm, got %q", input)
	}

	minutes := 0
	if hoursStr != "" {
		hours, err := strconv.Atoi(hoursStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration format: expected minutes, Xh, Xm, or XhYm, got %q", input)
		}
		minutes += hours * 60
	}
	if minsStr != "" {
		mins, err := strconv.Atoi(minsStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration format: expected minutes, Xh, Xm, or XhYm, got %q", input)
		}
		minutes += mins
	}

	if minutes > MaxDurationMinutes {
		return 0, fmt.Errorf("invalid duration: exceeds maximum of 24 hours (%d minutes)", MaxDurationMinutes)
	}

	if sign == "-" {
		minutes = -minutes
	}
	return time.Duration(minutes) * time.Minute, nil
}
