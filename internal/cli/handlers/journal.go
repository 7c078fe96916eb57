package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/tt/internal/cli"
	"github.com/xolan/tt/internal/record"
	"github.com/xolan/tt/internal/service"
	"github.com/xolan/tt/internal/timeutil"
)

// ListFlags holds the raw flags of the log command
type ListFlags struct {
	Match string
	From  string
	To    string
	Last  int
}

// Start appends a running record with the given note
func Start(deps *cli.Deps, note string) {
	started, stopped, err := deps.Services.Journal.Start(note)
	if stopped != nil {
		_, _ = fmt.Fprintf(deps.Stdout, "Stopped: %s\n", cli.FormatRecord(*stopped))
	}
	if err != nil {
		failJournal(deps, "Failed to start record", err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Started: %s\n", cli.FormatRecord(started))
}

// Stop sets the activity of the running last record
func Stop(deps *cli.Deps) {
	r, err := deps.Services.Journal.Stop()
	if err != nil {
		failJournal(deps, "Failed to stop record", err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Stopped: %s\n", cli.FormatRecord(r))
}

// Rest sets the rest of the last record
func Rest(deps *cli.Deps, input string) {
	d, err := timeutil.ParseDuration(strings.TrimSpace(input))
	if err != nil {
		deps.Fail(fmt.Sprintf("Invalid rest '%s'", input),
			fmt.Sprintf("Details: %v", err),
			"Hint: Use minutes like '15' or '-5', or a duration like '1h30m', max 24h")
		return
	}

	r, err := deps.Services.Journal.Rest(d)
	if err != nil {
		failJournal(deps, "Failed to set rest", err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Updated: %s\n", cli.FormatRecord(r))
}

// Note replaces the note of the last record
func Note(deps *cli.Deps, note string) {
	r, err := deps.Services.Journal.Note(note)
	if err != nil {
		failJournal(deps, "Failed to set note", err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Updated: %s\n", cli.FormatRecord(r))
}

// Add appends a record built from the field flags and note
func Add(deps *cli.Deps, fields cli.FieldFlags, note string) {
	r, err := cli.ParseRecord(fields, note, deps.Services.Journal.Now())
	if err != nil {
		deps.Fail("Invalid record", fmt.Sprintf("Details: %v", err))
		return
	}

	if err := deps.Services.Journal.Add(r); err != nil {
		failJournal(deps, "Failed to add record", err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Added: %s\n", cli.FormatRecord(r))
}

// Show prints the record located by the query flags and offset
func Show(deps *cli.Deps, query cli.FieldFlags, offset int) {
	sel, ok := selector(deps, query, offset)
	if !ok {
		return
	}

	r, err := deps.Services.Journal.Show(sel)
	if err != nil {
		failJournal(deps, "Failed to show record", err)
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, cli.FormatRecord(r))
	_, _ = fmt.Fprintf(deps.Stdout, "Line:  %s\n", record.Format(r))
}

// Edit applies the --set-* flags to the record located by the query flags and offset
func Edit(deps *cli.Deps, query cli.FieldFlags, offset int, set cli.FieldFlags) {
	if set.IsEmpty() {
		deps.Fail("At least one of --set-start, --set-activity, --set-rest or --set-note is required",
			"Usage:",
			"  tt edit --note 'old note' --set-note 'new note'",
			"  tt edit --offset -2 --set-activity 45")
		return
	}

	sel, ok := selector(deps, query, offset)
	if !ok {
		return
	}

	changes, err := cli.ParseChanges(set, deps.Services.Journal.Now())
	if err != nil {
		deps.Fail("Invalid change", fmt.Sprintf("Details: %v", err))
		return
	}

	r, err := deps.Services.Journal.Edit(sel, changes)
	if err != nil {
		failJournal(deps, "Failed to edit record", err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Updated: %s\n", cli.FormatRecord(r))
}

// Remove deletes the record located by the query flags and offset after confirmation.
// yes skips the confirmation prompt.
func Remove(deps *cli.Deps, query cli.FieldFlags, offset int, yes bool) {
	sel, ok := selector(deps, query, offset)
	if !ok {
		return
	}

	r, removed, err := deps.Services.Journal.Remove(sel, func(r record.Record) bool {
		_, _ = fmt.Fprintln(deps.Stdout, "Record to delete:")
		_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", cli.FormatRecord(r))
		return yes || deps.Confirm("Delete this record?")
	})
	if err != nil {
		failJournal(deps, "Failed to delete record", err)
		return
	}
	if !removed {
		_, _ = fmt.Fprintln(deps.Stdout, "Deletion cancelled")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Deleted: %s\n", cli.FormatRecord(r))
}

// List prints the records of the journal with their line numbers and totals
func List(deps *cli.Deps, flags ListFlags) {
	rangeFlags := timeutil.RangeFlags{From: flags.From, To: flags.To, Last: flags.Last}
	from, to, err := rangeFlags.Resolve(deps.Services.Journal.Now())
	if err != nil {
		deps.Fail(err.Error(),
			"Hint: Use dates like '2024-01-15' or '15/01/2024', or --last N for the last N days")
		return
	}

	result, err := deps.Services.Journal.List(service.ListOptions{
		Match: flags.Match,
		From:  from,
		To:    to,
	})
	if err != nil {
		failJournal(deps, "Failed to read journal", err)
		return
	}

	if len(result.Warnings) > 0 {
		styles := cli.NewStyles(deps.Stderr)
		_, _ = fmt.Fprintln(deps.Stderr, styles.Warning.Render(
			fmt.Sprintf("Warning: Found %d %s that %s not records:",
				len(result.Warnings), cli.Pluralize("line", len(result.Warnings)), isAre(len(result.Warnings)))))
		for _, warning := range result.Warnings {
			_, _ = fmt.Fprintln(deps.Stderr, cli.FormatWarning(warning))
		}
		_, _ = fmt.Fprintln(deps.Stderr)
	}

	period := result.Period
	if flags.Match != "" {
		period = fmt.Sprintf("%s (%s)", period, flags.Match)
	}

	if len(result.Lines) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No records found for %s\n", period)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Records for %s:\n", period)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))

	maxLine := result.Lines[len(result.Lines)-1].Number
	width := len(fmt.Sprintf("%d", maxLine))
	for _, line := range result.Lines {
		_, _ = fmt.Fprintf(deps.Stdout, "%*d  %s\n", width, line.Number, cli.FormatRecord(line.Record))
	}

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %s (%d %s)", cli.FormatDuration(result.Activity),
		len(result.Lines), cli.Pluralize("record", len(result.Lines)))
	if result.Rest != 0 {
		_, _ = fmt.Fprintf(deps.Stdout, ", rest %s", cli.FormatDuration(result.Rest))
	}
	_, _ = fmt.Fprintln(deps.Stdout)
}

// Validate reports the health of the journal file
func Validate(deps *cli.Deps) {
	health, err := deps.Services.Journal.Health()
	if err != nil {
		failJournal(deps, "Failed to validate journal", err)
		return
	}

	styles := cli.NewStyles(deps.Stdout)
	errStyles := cli.NewStyles(deps.Stderr)
	_, _ = fmt.Fprintf(deps.Stdout, "Journal file: %s\n", deps.Services.Journal.Store().Path())
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))

	_, _ = fmt.Fprintf(deps.Stdout, "Total lines:   %d\n", health.TotalLines)
	_, _ = fmt.Fprintf(deps.Stdout, "Records:       %d\n", health.Records)
	_, _ = fmt.Fprintf(deps.Stdout, "Other lines:   %d\n", health.Opaque())

	if len(health.Warnings) > 0 {
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
		_, _ = fmt.Fprintln(deps.Stdout, "Lines that are not records:")
		for _, warning := range health.Warnings {
			_, _ = fmt.Fprintln(deps.Stdout, cli.FormatWarning(warning))
		}
	}

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	if health.BackupPresent {
		_, _ = fmt.Fprintln(deps.Stderr, errStyles.Warning.Render("Warning: A backup from an interrupted write was found"))
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'tt restore' to restore the journal from it")
	}
	if health.Opaque() == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, styles.Success.Render("Status: ✓ Journal file is healthy"))
	} else {
		_, _ = fmt.Fprintln(deps.Stderr, errStyles.Warning.Render(
			fmt.Sprintf("Status: ⚠ Journal file has %d %s that %s not records",
				health.Opaque(), cli.Pluralize("line", health.Opaque()), isAre(health.Opaque()))))
	}
}

// Restore replaces the journal with the backup left by an interrupted write.
// yes skips the confirmation prompt.
func Restore(deps *cli.Deps, yes bool) {
	journal := deps.Services.Journal
	if !journal.HasBackup() {
		deps.Fail("No backup to restore",
			"The journal was not interrupted while being written")
		return
	}

	if !yes && !deps.Confirm("Replace the journal with the backup?") {
		_, _ = fmt.Fprintln(deps.Stdout, "Restore cancelled")
		return
	}

	if err := journal.Restore(); err != nil {
		failJournal(deps, "Failed to restore journal", err)
		return
	}
	deps.Logger.Warn("journal restored from backup", "path", journal.Store().Path())
	_, _ = fmt.Fprintf(deps.Stdout, "Restored journal from backup: %s\n", journal.Store().Path())
}

// selector parses the query flags into a service selector.
// It reports the error and returns false if a flag is invalid.
func selector(deps *cli.Deps, query cli.FieldFlags, offset int) (service.Selector, bool) {
	q, err := cli.ParseQuery(query, deps.Services.Journal.Now())
	if err != nil {
		deps.Fail("Invalid query", fmt.Sprintf("Details: %v", err),
			"Hint: Use 'none' to match a record without that field")
		return service.Selector{}, false
	}
	return service.Selector{Query: q, Offset: offset}, true
}

// failJournal reports a journal service error with a hint for the known causes
func failJournal(deps *cli.Deps, message string, err error) {
	switch {
	case errors.Is(err, service.ErrNoRecords):
		deps.Fail(message, "Details: the journal does not end with a record",
			"Hint: Start one with 'tt start <note>'")
	case errors.Is(err, service.ErrNotFound):
		deps.Fail(message, "Details: no record matches the query and offset",
			"Hint: List records with 'tt log'")
	case errors.Is(err, service.ErrNotStarted):
		deps.Fail(message, "Details: the last record has no start time")
	case errors.Is(err, service.ErrAlreadyStopped):
		deps.Fail(message, "Details: the last record is already stopped",
			"Hint: Start a new one with 'tt start <note>'")
	case errors.Is(err, service.ErrInvalidNote):
		deps.Fail(message, "Details: notes must fit on a single line")
	default:
		deps.Fail(message, fmt.Sprintf("Details: %v", err),
			fmt.Sprintf("Hint: Check that the journal is readable and writable: %s", deps.Services.Journal.Store().Path()))
	}
}

func isAre(count int) string {
	if count == 1 {
		return "is"
	}
	return "are"
}
