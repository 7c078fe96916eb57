package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/xolan/tt/internal/record"
	"github.com/xolan/tt/internal/service"
	"github.com/xolan/tt/internal/timeutil"
)

// None is the flag value standing for an absent field
const None = "none"

// FieldFlags holds the raw values of the per-field flags of a command.
// A nil field was not given on the command line.
type FieldFlags struct {
	Start    *string
	Activity *string
	Rest     *string
	Note     *string
}

// IsEmpty reports whether no flag was given
func (f FieldFlags) IsEmpty() bool {
	return f.Start == nil && f.Activity == nil && f.Rest == nil && f.Note == nil
}

// ParseQuery builds a record query from the query flags.
// Each given flag adds an equality predicate; "none" matches an absent field.
func ParseQuery(f FieldFlags, now time.Time) (record.Query, error) {
	var q record.Query
	if f.Start != nil {
		start, err := parseStartFlag("start", *f.Start, now)
		if err != nil {
			return nil, err
		}
		q = append(q, record.StartIs{Value: start})
	}
	if f.Activity != nil {
		activity, err := parseDurationFlag("activity", *f.Activity)
		if err != nil {
			return nil, err
		}
		q = append(q, record.ActivityIs{Value: activity})
	}
	if f.Rest != nil {
		rest, err := parseDurationFlag("rest", *f.Rest)
		if err != nil {
			return nil, err
		}
		q = append(q, record.RestIs{Value: rest})
	}
	if f.Note != nil {
		note := *f.Note
		if isNone(note) {
			note = ""
		}
		q = append(q, record.NoteIs{Value: note})
	}
	return q, nil
}

// ParseChanges builds the changes of an edit from the --set-* flags.
// "none" clears a field.
func ParseChanges(f FieldFlags, now time.Time) (service.Changes, error) {
	var c service.Changes
	if f.Start != nil {
		start, err := parseStartFlag("set-start", *f.Start, now)
		if err != nil {
			return c, err
		}
		c.Start = service.Field[time.Time]{Set: true, Value: start}
	}
	if f.Activity != nil {
		activity, err := parseDurationFlag("set-activity", *f.Activity)
		if err != nil {
			return c, err
		}
		c.Activity = service.Field[time.Duration]{Set: true, Value: activity}
	}
	if f.Rest != nil {
		rest, err := parseDurationFlag("set-rest", *f.Rest)
		if err != nil {
			return c, err
		}
		c.Rest = service.Field[time.Duration]{Set: true, Value: rest}
	}
	if f.Note != nil {
		if isNone(*f.Note) {
			c.Note = service.Clear[string]()
		} else {
			c.Note = service.SetTo(strings.TrimSpace(*f.Note))
		}
	}
	return c, nil
}

// ParseRecord builds a new record from the flags of the add command and a note.
// Absent flags and "none" leave the field empty.
func ParseRecord(f FieldFlags, note string, now time.Time) (record.Record, error) {
	r := record.Record{Note: strings.TrimSpace(note)}
	if f.Start != nil {
		start, err := parseStartFlag("start", *f.Start, now)
		if err != nil {
			return r, err
		}
		r.Start = start
	}
	if f.Activity != nil {
		activity, err := parseDurationFlag("activity", *f.Activity)
		if err != nil {
			return r, err
		}
		r.Activity = activity
	}
	if f.Rest != nil {
		rest, err := parseDurationFlag("rest", *f.Rest)
		if err != nil {
			return r, err
		}
		r.Rest = rest
	}
	return r, nil
}

func parseStartFlag(name, value string, now time.Time) (*time.Time, error) {
	if isNone(value) {
		return nil, nil
	}
	t, err := timeutil.ParseStart(value, now)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return record.Time(t), nil
}

func parseDurationFlag(name, value string) (*time.Duration, error) {
	if isNone(value) {
		return nil, nil
	}
	d, err := timeutil.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return &d, nil
}

func isNone(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), None)
}
