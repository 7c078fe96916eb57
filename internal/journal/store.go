package journal

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/xolan/tt/internal/record"
	"github.com/xolan/tt/internal/storage"
)

// Store is a journal backed by a single text file.
//
// Every operation reads the file afresh and, when it changes something,
// writes it back with storage.Flush before returning. Nothing is cached
// between calls. The store takes no locks: two processes (or goroutines)
// mutating the same file at once can lose each other's changes.
type Store struct {
	path   string
	logger *slog.Logger
	loc    *time.Location
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLocation sets the time zone record start times are read in.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// Open returns a store for the journal at path. The file does not need to
// exist yet: reads treat a missing file as empty and Add creates it.
func Open(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the journal file path
func (s *Store) Path() string {
	return s.path
}

// Location returns the time zone record start times are read in
func (s *Store) Location() *time.Location {
	return s.loc
}

// Add appends r to the end of the journal.
func (s *Store) Add(r record.Record) error {
	line := record.Format(r)
	if err := storage.AppendLine(s.path, line); err != nil {
		return fmt.Errorf("failed to add record: %w", err)
	}
	s.logger.Debug("record added", "path", s.path, "line", line)
	return nil
}

// Get returns the record located by q and offset.
// ok is false when no such record exists.
func (s *Store) Get(q record.Query, offset int) (r record.Record, ok bool, err error) {
	c, err := s.Cursor()
	if err != nil {
		return record.Record{}, false, err
	}
	r, ok = Locate(c, q, offset)
	s.logLocate("get", c, offset, ok)
	return r, ok, nil
}

// Update applies fn to the record located by q and offset and writes the
// result back in place. fn may decline by returning false, in which case
// the file is not touched. Update reports whether a line was rewritten.
func (s *Store) Update(q record.Query, offset int, fn func(record.Record) (record.Record, bool)) (bool, error) {
	c, err := s.Cursor()
	if err != nil {
		return false, err
	}

	r, ok := Locate(c, q, offset)
	s.logLocate("update", c, offset, ok)
	if !ok {
		return false, nil
	}

	updated, ok := fn(r)
	if !ok {
		s.logger.Debug("update declined", "path", s.path)
		return false, nil
	}
	if _, ok := c.Replace(RecordItem(updated)); !ok {
		return false, nil
	}

	if err := s.flush(c); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes the record located by q and offset if keep returns true
// for it. It reports whether a line was deleted.
func (s *Store) Remove(q record.Query, offset int, keep func(record.Record) bool) (bool, error) {
	c, err := s.Cursor()
	if err != nil {
		return false, err
	}

	r, ok := Locate(c, q, offset)
	s.logLocate("remove", c, offset, ok)
	if !ok || !keep(r) {
		return false, nil
	}
	if _, ok := c.Delete(); !ok {
		return false, nil
	}

	if err := s.flush(c); err != nil {
		return false, err
	}
	return true, nil
}

// Items returns every line of the journal in file order.
func (s *Store) Items() ([]Item, error) {
	c, err := s.Cursor()
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, c.Buffer().LineCount())
	for {
		item, ok := c.Next()
		if !ok {
			break
		}
		items = append(items, item)
	}
	return items, nil
}

// Cursor loads the journal and returns a cursor before its first line.
// Changes made through the cursor stay in memory.
func (s *Store) Cursor() (*Cursor, error) {
	buf, err := storage.Load(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal: %w", err)
	}
	s.logger.Debug("journal loaded", "path", s.path, "lines", buf.LineCount())
	return NewCursor(buf, s.loc), nil
}

func (s *Store) flush(c *Cursor) error {
	s.logger.Debug("flushing journal", "path", s.path, "bytes", c.Buffer().Len())
	if err := storage.Flush(s.path, c.Buffer()); err != nil {
		s.logger.Warn("journal flush failed", "path", s.path, "error", err)
		return err
	}
	s.logger.Debug("journal flushed", "path", s.path)
	return nil
}

func (s *Store) logLocate(op string, c *Cursor, offset int, found bool) {
	line, _ := c.Position()
	s.logger.Debug("locate", "op", op, "offset", offset, "found", found, "line", line)
}
