package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xolan/tt/internal/journal"
	"github.com/xolan/tt/internal/record"
	"github.com/xolan/tt/internal/storage"
	"github.com/xolan/tt/internal/timeutil"
)

// Common errors for the journal service
var (
	ErrNoRecords          = errors.New("no record at the end of the journal")
	ErrNotFound           = errors.New("no matching record")
	ErrNotStarted         = errors.New("last record has no start time")
	ErrAlreadyStopped     = errors.New("last record is already stopped")
	ErrInvalidNote        = errors.New("note cannot contain line breaks")
	ErrNoChangesSpecified = errors.New("at least one change must be specified")
)

// JournalService provides the time tracking operations on top of a journal store
type JournalService struct {
	store *journal.Store
	now   func() time.Time
}

// NewJournalService creates a new JournalService.
// now is the clock used for start and stop times; nil means time.Now.
func NewJournalService(store *journal.Store, now func() time.Time) *JournalService {
	if now == nil {
		now = time.Now
	}
	return &JournalService{
		store: store,
		now:   now,
	}
}

// Store returns the underlying journal store
func (s *JournalService) Store() *journal.Store {
	return s.store
}

// Now returns the current time in the journal's timezone, truncated to seconds
func (s *JournalService) Now() time.Time {
	return s.now().In(s.store.Location()).Truncate(time.Second)
}

// Start appends a running record started now with the given note.
// If the last record is still running it is stopped first and returned as stopped.
func (s *JournalService) Start(note string) (started record.Record, stopped *record.Record, err error) {
	note = strings.TrimSpace(note)
	if err := checkNote(note); err != nil {
		return record.Record{}, nil, err
	}

	last, ok, err := s.store.Get(nil, Last.Offset)
	if err != nil {
		return record.Record{}, nil, err
	}
	if ok && last.IsRunning() {
		r, err := s.Stop()
		if err != nil {
			return record.Record{}, nil, fmt.Errorf("failed to stop running record: %w", err)
		}
		stopped = &r
	}

	started = record.Record{Start: record.Time(s.Now()), Note: note}
	if err := s.store.Add(started); err != nil {
		return record.Record{}, stopped, err
	}
	return started, stopped, nil
}

// Stop sets the activity of the last record to the whole minutes elapsed since its start.
func (s *JournalService) Stop() (record.Record, error) {
	now := s.Now()
	return s.updateLast(func(r record.Record) (record.Record, error) {
		if r.Start == nil {
			return r, ErrNotStarted
		}
		if r.Activity != nil {
			return r, ErrAlreadyStopped
		}
		elapsed := now.Sub(*r.Start).Truncate(time.Minute)
		if elapsed < 0 {
			elapsed = 0
		}
		r.Activity = &elapsed
		return r, nil
	})
}

// Rest sets the rest (correction) of the last record.
func (s *JournalService) Rest(d time.Duration) (record.Record, error) {
	d = d.Truncate(time.Minute)
	return s.updateLast(func(r record.Record) (record.Record, error) {
		r.Rest = &d
		return r, nil
	})
}

// Note replaces the note of the last record.
func (s *JournalService) Note(note string) (record.Record, error) {
	note = strings.TrimSpace(note)
	if err := checkNote(note); err != nil {
		return record.Record{}, err
	}
	return s.updateLast(func(r record.Record) (record.Record, error) {
		r.Note = note
		return r, nil
	})
}

// Add appends r to the journal as is.
func (s *JournalService) Add(r record.Record) error {
	if err := checkNote(r.Note); err != nil {
		return err
	}
	return s.store.Add(r)
}

// Show returns the record selected by sel.
func (s *JournalService) Show(sel Selector) (record.Record, error) {
	r, ok, err := s.store.Get(sel.Query, sel.Offset)
	if err != nil {
		return record.Record{}, err
	}
	if !ok {
		return record.Record{}, ErrNotFound
	}
	return r, nil
}

// Edit applies changes to the record selected by sel and returns the new record.
func (s *JournalService) Edit(sel Selector, changes Changes) (record.Record, error) {
	if changes.IsEmpty() {
		return record.Record{}, ErrNoChangesSpecified
	}
	if changes.Note.Set && changes.Note.Value != nil {
		if err := checkNote(*changes.Note.Value); err != nil {
			return record.Record{}, err
		}
	}

	var updated record.Record
	ok, err := s.store.Update(sel.Query, sel.Offset, func(r record.Record) (record.Record, bool) {
		updated = changes.Apply(r)
		return updated, true
	})
	if err != nil {
		return record.Record{}, err
	}
	if !ok {
		return record.Record{}, ErrNotFound
	}
	return updated, nil
}

// Remove deletes the record selected by sel if confirm accepts it.
// It returns the record and whether it was deleted.
func (s *JournalService) Remove(sel Selector, confirm func(record.Record) bool) (record.Record, bool, error) {
	var found record.Record
	var seen bool
	removed, err := s.store.Remove(sel.Query, sel.Offset, func(r record.Record) bool {
		found, seen = r, true
		return confirm(r)
	})
	if err != nil {
		return found, false, err
	}
	if !seen {
		return record.Record{}, false, ErrNotFound
	}
	return found, removed, nil
}

// List returns the records of the journal in file order, filtered by opts.
// Lines that are not records are returned as warnings.
func (s *JournalService) List(opts ListOptions) (*ListResult, error) {
	var match record.Predicate
	if opts.Match != "" {
		g, err := record.NewNoteGlob(opts.Match)
		if err != nil {
			return nil, fmt.Errorf("invalid --match pattern: %w", err)
		}
		match = g
	}

	items, err := s.store.Items()
	if err != nil {
		return nil, err
	}

	result := &ListResult{
		Lines:    []Line{},
		Warnings: []journal.ParseWarning{},
		Period:   describePeriod(opts.From, opts.To),
		Start:    opts.From,
		End:      opts.To,
	}
	ranged := !opts.From.IsZero() || !opts.To.IsZero()

	for i, item := range items {
		if item.Opaque {
			result.Warnings = append(result.Warnings, journal.ParseWarning{
				LineNumber: i + 1,
				Content:    item.Raw,
				Error:      "not a record",
			})
			continue
		}
		r := item.Record
		if match != nil && !match.Matches(r) {
			continue
		}
		if ranged && (r.Start == nil || !timeutil.IsInRange(*r.Start, opts.From, opts.To)) {
			continue
		}

		result.Lines = append(result.Lines, Line{Number: i + 1, Record: r})
		if r.Activity != nil {
			result.Activity += *r.Activity
		}
		if r.Rest != nil {
			result.Rest += *r.Rest
		}
	}
	return result, nil
}

// Health reports the state of the journal file.
func (s *JournalService) Health() (journal.Health, error) {
	return s.store.Health()
}

// Restore replaces the journal with the backup left by an interrupted flush.
func (s *JournalService) Restore() error {
	return storage.RestoreBackup(s.store.Path())
}

// HasBackup reports whether an interrupted flush left a backup behind.
func (s *JournalService) HasBackup() bool {
	return storage.HasBackup(s.store.Path())
}

// updateLast applies fn to the last record of the journal.
// fn refuses a change by returning an error, which is returned as is.
func (s *JournalService) updateLast(fn func(record.Record) (record.Record, error)) (record.Record, error) {
	var updated record.Record
	var fnErr error
	ok, err := s.store.Update(nil, Last.Offset, func(r record.Record) (record.Record, bool) {
		updated, fnErr = fn(r)
		return updated, fnErr == nil
	})
	if err != nil {
		return record.Record{}, err
	}
	if fnErr != nil {
		return record.Record{}, fnErr
	}
	if !ok {
		return record.Record{}, ErrNoRecords
	}
	return updated, nil
}

func checkNote(note string) error {
	if strings.ContainsAny(note, "\r\n") {
		return ErrInvalidNote
	}
	return nil
}

func describePeriod(from, to time.Time) string {
	const layout = "Mon, Jan 2, 2006"
	switch {
	case from.IsZero() && to.IsZero():
		return "all time"
	case to.IsZero():
		return "since " + from.Format(layout)
	case from.IsZero():
		return "until " + to.Format(layout)
	case timeutil.StartOfDay(from).Equal(timeutil.StartOfDay(to)):
		return from.Format(layout)
	default:
		return from.Format(layout) + " - " + to.Format(layout)
	}
}
