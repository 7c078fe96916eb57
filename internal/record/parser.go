package record

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrNotRecord is returned when a line does not follow the record grammar
var ErrNotRecord = errors.New("line is not a record")

// linePattern matches "[<start>, <activity> (<rest>)] <note>".
// The rest group may be omitted entirely: "[<start>, <activity>] <note>".
var linePattern = regexp.MustCompile(`^\[([^,\]]*),\s*(-?\d*)\s*(?:\(\s*(-?\d*)\s*\))?\s*\] ?(.*)$`)

// Parse parses a journal line (terminator already stripped) into a Record.
// Start timestamps are interpreted in loc; a nil loc means time.Local.
// Returns an error wrapping ErrNotRecord if the line does not match the grammar.
func Parse(line string, loc *time.Location) (Record, error) {
	matches := linePattern.FindStringSubmatch(line)
	if matches == nil {
		return Record{}, fmt.Errorf("%w: %q", ErrNotRecord, line)
	}

	if loc == nil {
		loc = time.Local
	}

	var r Record

	if start := strings.TrimSpace(matches[1]); start != "" {
		t, err := time.ParseInLocation(StartLayout, start, loc)
		if err != nil {
			return Record{}, fmt.Errorf("%w: invalid start %q: %v", ErrNotRecord, start, err)
		}
		r.Start = &t
	}

	activity, err := parseMinutes(matches[2])
	if err != nil {
		return Record{}, fmt.Errorf("%w: invalid activity %q: %v", ErrNotRecord, matches[2], err)
	}
	r.Activity = activity

	rest, err := parseMinutes(matches[3])
	if err != nil {
		return Record{}, fmt.Errorf("%w: invalid rest %q: %v", ErrNotRecord, matches[3], err)
	}
	r.Rest = rest

	r.Note = matches[4]
	return r, nil
}

// maxMinutes is the largest minute count a time.Duration can hold
const maxMinutes = math.MaxInt64 / int64(time.Minute)

// parseMinutes converts an optional integer minute count; "" means absent.
func parseMinutes(s string) (*time.Duration, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	if n > maxMinutes || n < -maxMinutes {
		return nil, fmt.Errorf("%d minutes is out of range", n)
	}
	d := time.Duration(n) * time.Minute
	return &d, nil
}
