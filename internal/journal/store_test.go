package journal

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xolan/tt/internal/osutil"
	"github.com/xolan/tt/internal/record"
	"github.com/xolan/tt/internal/storage"
)

const fourRecords = `[2018-08-16 13:52:43, 42 (1)] Note 1
[2018-08-16 15:40:25, 42 (-5)] Note 2
[2018-08-16 18:12:01, 85 ()] Note 3
[2018-08-16 18:12:01, 85 ()]
`

func createJournal(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create journal: %v", err)
	}
	return path
}

func readJournal(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read journal: %v", err)
	}
	return string(data)
}

func openUTC(path string) *Store {
	return Open(path, WithLocation(time.UTC))
}

func at(t *testing.T, s string) *time.Time {
	t.Helper()
	ts, err := time.ParseInLocation(record.StartLayout, s, time.UTC)
	if err != nil {
		t.Fatalf("bad timestamp %q: %v", s, err)
	}
	return &ts
}

func fourExpected(t *testing.T) []record.Record {
	return []record.Record{
		{Start: at(t, "2018-08-16 13:52:43"), Activity: record.Minutes(42), Rest: record.Minutes(1), Note: "Note 1"},
		{Start: at(t, "2018-08-16 15:40:25"), Activity: record.Minutes(42), Rest: record.Minutes(-5), Note: "Note 2"},
		{Start: at(t, "2018-08-16 18:12:01"), Activity: record.Minutes(85), Note: "Note 3"},
		{Start: at(t, "2018-08-16 18:12:01"), Activity: record.Minutes(85)},
	}
}

func mustGet(t *testing.T, s *Store, q record.Query, offset int) (record.Record, bool) {
	t.Helper()
	r, ok, err := s.Get(q, offset)
	if err != nil {
		t.Fatalf("Get() returned unexpected error: %v", err)
	}
	return r, ok
}

func TestStore_Add(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.txt")
	s := openUTC(path)

	var r record.Record
	if err := s.Add(r); err != nil {
		t.Fatalf("Add() returned unexpected error: %v", err)
	}
	if got := readJournal(t, path); got != "[,  ()]\n" {
		t.Errorf("content = %q", got)
	}

	r.Note = "Some note"
	if err := s.Add(r); err != nil {
		t.Fatalf("Add() returned unexpected error: %v", err)
	}
	if got := readJournal(t, path); got != "[,  ()]\n[,  ()] Some note\n" {
		t.Errorf("content = %q", got)
	}

	r.Start = at(t, "2018-08-16 13:52:43")
	if err := s.Add(r); err != nil {
		t.Fatalf("Add() returned unexpected error: %v", err)
	}
	expected := "[,  ()]\n[,  ()] Some note\n[2018-08-16 13:52:43,  ()] Some note\n"
	if got := readJournal(t, path); got != expected {
		t.Errorf("content = %q, expected %q", got, expected)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("Failed to remove journal: %v", err)
	}

	activity := 2533 * time.Second
	rest := 2600*time.Second - activity
	r.Activity = &activity
	r.Rest = &rest
	if err := s.Add(r); err != nil {
		t.Fatalf("Add() returned unexpected error: %v", err)
	}
	negative := -rest
	r.Rest = &negative
	if err := s.Add(r); err != nil {
		t.Fatalf("Add() returned unexpected error: %v", err)
	}
	expected = "[2018-08-16 13:52:43, 42 (1)] Some note\n[2018-08-16 13:52:43, 42 (-1)] Some note\n"
	if got := readJournal(t, path); got != expected {
		t.Errorf("content = %q, expected %q", got, expected)
	}
}

func TestStore_AddKeepsCallOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.txt")
	s := openUTC(path)

	first := record.Record{Activity: record.Minutes(5), Note: "zzz"}
	second := record.Record{Start: at(t, "2000-01-01 00:00:00"), Note: "aaa"}
	for _, r := range []record.Record{first, second} {
		if err := s.Add(r); err != nil {
			t.Fatalf("Add() returned unexpected error: %v", err)
		}
	}

	items, err := s.Items()
	if err != nil {
		t.Fatalf("Items() returned unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(items))
	}
	if !items[0].Record.Equal(first) || !items[1].Record.Equal(second) {
		t.Errorf("records out of order: %v, %v", items[0].Record, items[1].Record)
	}
}

func TestStore_AddAfterUnterminatedLine(t *testing.T) {
	path := createJournal(t, "[,  ()] first")
	s := openUTC(path)

	if err := s.Add(record.Record{Note: "second"}); err != nil {
		t.Fatalf("Add() returned unexpected error: %v", err)
	}

	// Appending does not read the file, so the lines merge on disk.
	if got := readJournal(t, path); got != "[,  ()] first[,  ()] second\n" {
		t.Errorf("content = %q", got)
	}
}

func TestStore_Get(t *testing.T) {
	s := openUTC(createJournal(t, fourRecords))
	expected := fourExpected(t)

	check := func(q record.Query, offset, index int) {
		t.Helper()
		r, ok := mustGet(t, s, q, offset)
		if !ok {
			t.Fatalf("Get(%v, %d) found nothing, expected record %d", q, offset, index)
		}
		if !r.Equal(expected[index]) {
			t.Errorf("Get(%v, %d) = %v, expected %v", q, offset, r, expected[index])
		}
	}

	for i := 0; i < 4; i++ {
		check(nil, i, i)
		check(record.Query{record.RestIs{Value: record.Minutes(-5)}}, i-1, i)
		check(record.Query{record.RestIs{Value: nil}}, i-2, i)
		check(record.Query{record.NoteIs{Value: ""}}, i-3, i)
		check(nil, i-4, i)
	}

	check(nil, 0, 0)
	check(record.Query{record.ActivityIs{Value: record.Minutes(42)}}, 0, 0)
	check(record.Query{record.ActivityIs{Value: record.Minutes(85)}}, 0, 2)
	check(record.Query{record.ActivityIs{Value: record.Minutes(85)}, record.NoteIs{Value: ""}}, 0, 3)
	check(record.Query{record.StartIs{Value: at(t, "2018-08-16 15:40:25")}}, 0, 1)
}

func TestStore_GetPositiveOffset(t *testing.T) {
	s := openUTC(createJournal(t, "[,  ()] A\n[,  ()] B\n[,  ()] C\n"))
	onlyA := record.Query{record.NoteIs{Value: "A"}}

	for offset, want := range []string{"A", "B", "C"} {
		r, ok := mustGet(t, s, onlyA, offset)
		if !ok || r.Note != want {
			t.Errorf("Get(A, %d) = %q, %v, expected %q", offset, r.Note, ok, want)
		}
	}
	if r, ok := mustGet(t, s, onlyA, 3); ok {
		t.Errorf("Get(A, 3) = %v, expected nothing", r)
	}
}

// The first record is the anchor, so a negative offset counts from the end of the file.
func TestStore_GetNegativeOffsetAnchorFlip(t *testing.T) {
	s := openUTC(createJournal(t, "[,  ()] A\n[,  ()] B\n[,  ()] C\n[,  ()] D\n"))

	r, ok := mustGet(t, s, record.Query{record.NoteIs{Value: "A"}}, -1)
	if !ok || r.Note != "D" {
		t.Errorf("Get(A, -1) = %q, %v, expected D", r.Note, ok)
	}
}

func TestStore_GetMissingFile(t *testing.T) {
	s := openUTC(filepath.Join(t.TempDir(), "missing.txt"))
	if r, ok := mustGet(t, s, nil, 0); ok {
		t.Errorf("Get() = %v, expected nothing", r)
	}
}

func TestStore_GetReadError(t *testing.T) {
	s := openUTC(t.TempDir())
	if _, _, err := s.Get(nil, 0); err == nil {
		t.Error("Get() should fail when the journal cannot be read")
	}
}

func TestStore_Update(t *testing.T) {
	path := createJournal(t, fourRecords)
	s := openUTC(path)

	update := func(q record.Query, offset int, fn func(r record.Record) record.Record) {
		t.Helper()
		ok, err := s.Update(q, offset, func(r record.Record) (record.Record, bool) {
			return fn(r), true
		})
		if err != nil {
			t.Fatalf("Update() returned unexpected error: %v", err)
		}
		if !ok {
			t.Fatalf("Update(%v, %d) did not update anything", q, offset)
		}
	}

	update(nil, -1, func(r record.Record) record.Record {
		r.Start = at(t, "2018-08-20 22:30:15")
		r.Note = "Note 4"
		return r
	})
	update(record.Query{record.RestIs{Value: record.Minutes(1)}}, 0, func(r record.Record) record.Record {
		r.Start = at(t, "2018-08-20 22:40:12")
		r.Activity = record.Minutes(12)
		return r
	})
	update(record.Query{record.RestIs{Value: nil}}, 0, func(r record.Record) record.Record {
		r.Rest = record.Minutes(-17)
		return r
	})
	update(record.Query{record.RestIs{Value: record.Minutes(-17)}}, -1, func(r record.Record) record.Record {
		r.Rest = nil
		r.Note = ""
		return r
	})

	expected := `[2018-08-20 22:40:12, 12 (1)] Note 1
[2018-08-16 15:40:25, 42 ()]
[2018-08-16 18:12:01, 85 (-17)] Note 3
[2018-08-20 22:30:15, 85 ()] Note 4
`
	if got := readJournal(t, path); got != expected {
		t.Errorf("content = %q, expected %q", got, expected)
	}
	if storage.HasBackup(path) {
		t.Error("backup should not remain after a successful update")
	}
}

func TestStore_UpdateReplacesExactlyOneLine(t *testing.T) {
	path := createJournal(t, "[,  ()] one\n[,  ()] two\n[,  ()] three\n")
	s := openUTC(path)

	ok, err := s.Update(record.Query{record.NoteIs{Value: "two"}}, 0, func(r record.Record) (record.Record, bool) {
		r.Activity = record.Minutes(30)
		return r, true
	})
	if err != nil || !ok {
		t.Fatalf("Update() = %v, %v, expected true, nil", ok, err)
	}

	lines := strings.Split(readJournal(t, path), "\n")
	expected := []string{"[,  ()] one", "[, 30 ()] two", "[,  ()] three", ""}
	if len(lines) != len(expected) {
		t.Fatalf("lines = %q, expected %q", lines, expected)
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("line %d = %q, expected %q", i, lines[i], expected[i])
		}
	}
}

func TestStore_UpdateDeclined(t *testing.T) {
	path := createJournal(t, "[,  ()] one\n[,  ()] two\n")
	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}
	s := openUTC(path)

	called := false
	ok, err := s.Update(nil, 0, func(r record.Record) (record.Record, bool) {
		called = true
		return r, false
	})
	if err != nil {
		t.Fatalf("Update() returned unexpected error: %v", err)
	}
	if ok {
		t.Error("Update() should report false when the transform declines")
	}
	if !called {
		t.Error("transform was not called")
	}

	if got := readJournal(t, path); got != "[,  ()] one\n[,  ()] two\n" {
		t.Errorf("content changed: %q", got)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if !info.ModTime().Equal(old) {
		t.Errorf("journal was rewritten: mtime %v, expected %v", info.ModTime(), old)
	}
}

func TestStore_UpdateNotFound(t *testing.T) {
	path := createJournal(t, "[,  ()] one\n")
	s := openUTC(path)

	ok, err := s.Update(record.Query{record.NoteIs{Value: "missing"}}, 0, func(r record.Record) (record.Record, bool) {
		t.Error("transform should not be called")
		return r, true
	})
	if err != nil || ok {
		t.Errorf("Update() = %v, %v, expected false, nil", ok, err)
	}
}

func TestStore_Remove(t *testing.T) {
	path := createJournal(t, "[,  ()] A\n[,  ()] B\n[,  ()] C\n")
	s := openUTC(path)

	var seen record.Record
	ok, err := s.Remove(record.Query{record.NoteIs{Value: "A"}}, 1, func(r record.Record) bool {
		seen = r
		return true
	})
	if err != nil || !ok {
		t.Fatalf("Remove() = %v, %v, expected true, nil", ok, err)
	}
	if seen.Note != "B" {
		t.Errorf("keep received %q, expected B", seen.Note)
	}
	if got := readJournal(t, path); got != "[,  ()] A\n[,  ()] C\n" {
		t.Errorf("content = %q", got)
	}
	if storage.HasBackup(path) {
		t.Error("backup should not remain after a successful remove")
	}
}

func TestStore_RemoveRejected(t *testing.T) {
	path := createJournal(t, "[,  ()] A\n[,  ()] B\n")
	s := openUTC(path)

	ok, err := s.Remove(nil, -1, func(r record.Record) bool { return false })
	if err != nil || ok {
		t.Errorf("Remove() = %v, %v, expected false, nil", ok, err)
	}
	if got := readJournal(t, path); got != "[,  ()] A\n[,  ()] B\n" {
		t.Errorf("content changed: %q", got)
	}
}

func TestStore_RemoveLastLine(t *testing.T) {
	path := createJournal(t, "[,  ()] A\n[,  ()] B")
	s := openUTC(path)

	ok, err := s.Remove(nil, -1, func(r record.Record) bool { return r.Note == "B" })
	if err != nil || !ok {
		t.Fatalf("Remove() = %v, %v, expected true, nil", ok, err)
	}
	if got := readJournal(t, path); got != "[,  ()] A\n" {
		t.Errorf("content = %q", got)
	}
}

func TestStore_OpaqueLinesPreserved(t *testing.T) {
	content := "# my journal\r\n[,  ()] A\n  garbage [x\n\n[,  ()] B\ntrailing"
	path := createJournal(t, content)
	s := openUTC(path)

	if _, ok := mustGet(t, s, record.Query{record.NoteIs{Value: "B"}}, 0); !ok {
		t.Fatal("Get() did not find B")
	}

	ok, err := s.Update(record.Query{record.NoteIs{Value: "A"}}, 0, func(r record.Record) (record.Record, bool) {
		r.Note = "AA"
		return r, true
	})
	if err != nil || !ok {
		t.Fatalf("Update() = %v, %v, expected true, nil", ok, err)
	}

	expected := "# my journal\r\n[,  ()] AA\n  garbage [x\n\n[,  ()] B\ntrailing"
	if got := readJournal(t, path); got != expected {
		t.Errorf("content = %q, expected %q", got, expected)
	}
}

var errDiskFull = errors.New("disk full")

// failingProvider truncates the journal and then fails after limit bytes.
type failingProvider struct {
	osutil.DefaultPathProvider
	limit int
}

func (p failingProvider) OpenTruncate(path string) (io.WriteCloser, error) {
	w, err := p.DefaultPathProvider.OpenTruncate(path)
	if err != nil {
		return nil, err
	}
	return &limitedWriter{w: w, remaining: p.limit}, nil
}

type limitedWriter struct {
	w         io.WriteCloser
	remaining int
}

func (lw *limitedWriter) Write(b []byte) (int, error) {
	if len(b) <= lw.remaining {
		n, err := lw.w.Write(b)
		lw.remaining -= n
		return n, err
	}
	n, _ := lw.w.Write(b[:lw.remaining])
	lw.remaining = 0
	return n, errDiskFull
}

func (lw *limitedWriter) Close() error {
	return lw.w.Close()
}

func TestStore_FlushFailureRollsBack(t *testing.T) {
	path := createJournal(t, fourRecords)
	s := openUTC(path)

	osutil.SetProvider(failingProvider{limit: 10})
	defer osutil.ResetProvider()

	ok, err := s.Update(nil, 0, func(r record.Record) (record.Record, bool) {
		r.Note = "changed"
		return r, true
	})
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("Update() error = %v, expected %v", err, errDiskFull)
	}
	if ok {
		t.Error("Update() should not report success when the flush fails")
	}
	if got := readJournal(t, path); got != fourRecords {
		t.Errorf("journal not rolled back: %q", got)
	}

	ok, err = s.Remove(nil, 0, func(record.Record) bool { return true })
	if !errors.Is(err, errDiskFull) || ok {
		t.Fatalf("Remove() = %v, %v, expected false, %v", ok, err, errDiskFull)
	}
	if got := readJournal(t, path); got != fourRecords {
		t.Errorf("journal not rolled back: %q", got)
	}
	if storage.HasBackup(path) {
		t.Error("backup should be removed after a successful rollback")
	}
}

func TestStore_Items(t *testing.T) {
	s := openUTC(createJournal(t, "[,  ()] A\nnot a record\n[,  ()] B\n"))

	items, err := s.Items()
	if err != nil {
		t.Fatalf("Items() returned unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if !items[0].IsRecord() || items[0].Record.Note != "A" {
		t.Errorf("item 0 = %+v", items[0])
	}
	if items[1].IsRecord() || items[1].Text() != "not a record" {
		t.Errorf("item 1 = %+v", items[1])
	}
	if !items[2].IsRecord() || items[2].Record.Note != "B" {
		t.Errorf("item 2 = %+v", items[2])
	}
}

func TestStore_ItemsMissingFile(t *testing.T) {
	items, err := openUTC(filepath.Join(t.TempDir(), "missing.txt")).Items()
	if err != nil {
		t.Fatalf("Items() returned unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
}

func TestStore_Health(t *testing.T) {
	path := createJournal(t, "[,  ()] A\nnot a record\n\n[bad date, 5 ()] x\n[,  ()] B\n")
	if err := os.WriteFile(storage.GetBackupPath(path), []byte("old"), 0644); err != nil {
		t.Fatalf("Failed to create backup: %v", err)
	}

	health, err := openUTC(path).Health()
	if err != nil {
		t.Fatalf("Health() returned unexpected error: %v", err)
	}
	if health.TotalLines != 5 {
		t.Errorf("TotalLines = %d, expected 5", health.TotalLines)
	}
	if health.Records != 2 {
		t.Errorf("Records = %d, expected 2", health.Records)
	}
	if health.Opaque() != 3 {
		t.Fatalf("Opaque() = %d, expected 3", health.Opaque())
	}
	if !health.BackupPresent {
		t.Error("BackupPresent = false, expected true")
	}

	lines := []int{2, 3, 4}
	for i, w := range health.Warnings {
		if w.LineNumber != lines[i] {
			t.Errorf("warning %d LineNumber = %d, expected %d", i, w.LineNumber, lines[i])
		}
		if w.Error == "" {
			t.Errorf("warning %d has no error", i)
		}
	}
	if health.Warnings[1].Error != "empty line" {
		t.Errorf("Error = %q, expected %q", health.Warnings[1].Error, "empty line")
	}
	if !strings.Contains(health.Warnings[2].Error, "invalid start") {
		t.Errorf("Error = %q, expected an invalid start", health.Warnings[2].Error)
	}
}

func TestStore_HealthMissingFile(t *testing.T) {
	health, err := openUTC(filepath.Join(t.TempDir(), "missing.txt")).Health()
	if err != nil {
		t.Fatalf("Health() returned unexpected error: %v", err)
	}
	if health.TotalLines != 0 || health.Records != 0 || health.BackupPresent {
		t.Errorf("unexpected health for a missing file: %+v", health)
	}
}

func TestStore_Logger(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	path := createJournal(t, "[,  ()] A\n")
	s := Open(path, WithLogger(logger), WithLocation(time.UTC))

	if _, _, err := s.Get(nil, 0); err != nil {
		t.Fatalf("Get() returned unexpected error: %v", err)
	}
	if !strings.Contains(logs.String(), "journal loaded") {
		t.Errorf("expected load to be logged, got %q", logs.String())
	}
	if !strings.Contains(logs.String(), "op=get") {
		t.Errorf("expected locate to be logged, got %q", logs.String())
	}
}

func TestOpen_Defaults(t *testing.T) {
	s := Open("journal.txt", WithLogger(nil), WithLocation(nil))
	if s.Path() != "journal.txt" {
		t.Errorf("Path() = %q", s.Path())
	}
	if s.Location() != time.Local {
		t.Errorf("Location() = %v, expected Local", s.Location())
	}
	if s.logger == nil {
		t.Error("logger should default to a discarding logger")
	}
}
