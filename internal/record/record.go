// Package record defines a single journal line: an activity with an optional
// start time, optional activity and rest durations and a free-text note.
package record

import (
	"strconv"
	"strings"
	"time"
)

// StartLayout is the layout of the start timestamp inside a journal line
const StartLayout = "2006-01-02 15:04:05"

// Record represents a single journal entry.
// Nil pointer fields mean the value is absent from the line.
type Record struct {
	Start    *time.Time     // When the activity started (second precision)
	Activity *time.Duration // How long the activity lasted (whole minutes)
	Rest     *time.Duration // Rest or correction applied to the activity (signed whole minutes)
	Note     string         // Free text after the bracketed header
}

// Time returns a pointer to t, for building records inline.
func Time(t time.Time) *time.Time {
	return &t
}

// Minutes returns a pointer to a duration of n whole minutes.
func Minutes(n int) *time.Duration {
	d := time.Duration(n) * time.Minute
	return &d
}

// Equal reports whether both records carry the same fields.
// Absent fields are only equal to absent fields.
func (r Record) Equal(other Record) bool {
	return equalTime(r.Start, other.Start) &&
		equalDuration(r.Activity, other.Activity) &&
		equalDuration(r.Rest, other.Rest) &&
		r.Note == other.Note
}

// IsRunning reports whether the record has started but has no activity yet
func (r Record) IsRunning() bool {
	return r.Start != nil && r.Activity == nil
}

// String returns the journal line for the record
func (r Record) String() string {
	return Format(r)
}

// Format renders r as a journal line, without a line terminator.
// Example: "[2018-08-16 13:52:43, 42 (1)] Note 1"
func Format(r Record) string {
	var b strings.Builder
	b.WriteByte('[')
	if r.Start != nil {
		b.WriteString(r.Start.Format(StartLayout))
	}
	b.WriteString(", ")
	if r.Activity != nil {
		b.WriteString(formatMinutes(*r.Activity))
	}
	b.WriteString(" (")
	if r.Rest != nil {
		b.WriteString(formatMinutes(*r.Rest))
	}
	b.WriteString(")]")
	if r.Note != "" {
		b.WriteByte(' ')
		b.WriteString(r.Note)
	}
	return b.String()
}

func formatMinutes(d time.Duration) string {
	return strconv.FormatInt(int64(d/time.Minute), 10)
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func equalDuration(a, b *time.Duration) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
