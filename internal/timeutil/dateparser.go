// Package timeutil parses the dates, timestamps and durations accepted on
// the command line.
package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// ErrInvalidDate is wrapped by every error ParseDate returns
var ErrInvalidDate = errors.New("invalid date")

const dateFormats = "YYYY-MM-DD or DD/MM/YYYY"

// dateLayouts are tried in order, so ISO wins for inputs like 05/06/2024
var dateLayouts = []string{"2006-01-02", "02/01/2006"}

// dateHints recognise near misses and say what they are missing.
// The first match wins.
var dateHints = []struct {
	re   *regexp.Regexp
	hint func(input string) string
}{
	{regexp.MustCompile(`^\d{4}$`), func(year string) string {
		return fmt.Sprintf("missing month and day; for the whole year use --from %[1]s-01-01 --to %[1]s-12-31", year)
	}},
	{regexp.MustCompile(`^\d{4}-\d{1,2}$`), monthHint},
	{regexp.MustCompile(`^\d{1,2}-\d{1,2}$`), func(s string) string {
		return fmt.Sprintf("missing the year, e.g. YYYY-%s", s)
	}},
	{regexp.MustCompile(`^\d{1,2}/\d{1,2}$`), func(s string) string {
		return fmt.Sprintf("missing the year, e.g. %s/YYYY", s)
	}},
	{regexp.MustCompile(`^\d+[-/]\d+[-/]\d+[-/ T]`), func(string) string {
		return "too many parts; --from and --to take a day, not a time"
	}},
}

func monthHint(s string) string {
	month, err := time.Parse("2006-1", s)
	if err != nil {
		return "expected " + dateFormats
	}
	last := month.AddDate(0, 1, -1)
	return fmt.Sprintf("missing the day; for the whole month use --from %s --to %s",
		month.Format("2006-01-02"), last.Format("2006-01-02"))
}

// ParseDate parses a day given as YYYY-MM-DD or DD/MM/YYYY and returns
// its first instant in loc (time.Local if nil).
func ParseDate(input string, loc *time.Location) (time.Time, error) {
	if input == "" {
		return time.Time{}, fmt.Errorf("%w: empty (expected %s)", ErrInvalidDate, dateFormats)
	}
	if loc == nil {
		loc = time.Local
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, input, loc); err == nil {
			return StartOfDay(t), nil
		}
	}

	hint := "expected " + dateFormats
	for _, h := range dateHints {
		if h.re.MatchString(input) {
			hint = h.hint(input)
			break
		}
	}
	return time.Time{}, fmt.Errorf("%w %q: %s", ErrInvalidDate, input, hint)
}
