// Package service provides the business logic layer for the tt application.
// It wraps the journal store and the config file, providing a clean API for
// both CLI and TUI frontends.
package service

import (
	"time"

	"github.com/xolan/tt/internal/journal"
	"github.com/xolan/tt/internal/record"
)

// Selector picks one record: the first record matching Query, moved by Offset lines
type Selector struct {
	Query  record.Query
	Offset int
}

// Last selects the last record of the journal
var Last = Selector{Offset: -1}

// Field is an optional change to one record field.
// When Set, a nil Value clears the field.
type Field[T any] struct {
	Set   bool
	Value *T
}

// SetTo returns a change setting the field to v
func SetTo[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: &v}
}

// Clear returns a change removing the field
func Clear[T any]() Field[T] {
	return Field[T]{Set: true}
}

// Changes lists the fields to change when editing a record
type Changes struct {
	Start    Field[time.Time]
	Activity Field[time.Duration]
	Rest     Field[time.Duration]
	Note     Field[string]
}

// IsEmpty reports whether no field is changed
func (c Changes) IsEmpty() bool {
	return !c.Start.Set && !c.Activity.Set && !c.Rest.Set && !c.Note.Set
}

// Apply returns r with the changes applied
func (c Changes) Apply(r record.Record) record.Record {
	if c.Start.Set {
		r.Start = c.Start.Value
	}
	if c.Activity.Set {
		r.Activity = c.Activity.Value
	}
	if c.Rest.Set {
		r.Rest = c.Rest.Value
	}
	if c.Note.Set {
		r.Note = ""
		if c.Note.Value != nil {
			r.Note = *c.Note.Value
		}
	}
	return r
}

// ListOptions filters the records returned by List
type ListOptions struct {
	Match string    // Glob the note must match; empty matches all
	From  time.Time // Earliest start (inclusive); zero for no bound
	To    time.Time // Latest start (inclusive); zero for no bound
}

// Line is a record with its 1-based line number in the journal file
type Line struct {
	Number int
	Record record.Record
}

// ListResult contains the results of listing records
type ListResult struct {
	Lines    []Line
	Warnings []journal.ParseWarning
	Period   string    // Human-readable period description
	Start    time.Time // Start of the date range
	End      time.Time // End of the date range
	Activity time.Duration
	Rest     time.Duration
}
