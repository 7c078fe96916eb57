package timeutil

import (
	"errors"
	"fmt"
	"time"
)

// ErrLastWithDates is returned when --last is combined with --from or --to
var ErrLastWithDates = errors.New("cannot use --last with --from or --to")

// RangeFlags holds the raw --from, --to and --last values of a listing command.
type RangeFlags struct {
	From string
	To   string
	Last int // Number of days ending today; 0 when not given
}

// Resolve returns the range of start times the flags select, relative to now.
// Dates are read in the location of now. A zero bound leaves that side open,
// so no flags at all select the whole journal.
func (f RangeFlags) Resolve(now time.Time) (from, to time.Time, err error) {
	switch {
	case f.Last < 0:
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --last value: must be positive, got %d", f.Last)
	case f.Last > 0 && (f.From != "" || f.To != ""):
		return time.Time{}, time.Time{}, ErrLastWithDates
	case f.Last > 0:
		return StartOfDay(now.AddDate(0, 0, 1-f.Last)), EndOfDay(now), nil
	}

	if from, err = parseBound("--from", f.From, now.Location()); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if to, err = parseBound("--to", f.To, now.Location()); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !to.IsZero() {
		to = EndOfDay(to)
	}

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("--from date (%s) is after --to date (%s)",
			from.Format(time.DateOnly), to.Format(time.DateOnly))
	}
	return from, to, nil
}

func parseBound(flag, value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := ParseDate(value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date: %w", flag, err)
	}
	return t, nil
}
