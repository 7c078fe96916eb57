// Package cli provides the CLI presentation layer for the tt application.
// It handles command-line output formatting and user interaction.
package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/tt/internal/journal"
	"github.com/xolan/tt/internal/record"
)

// startWidth is the width of a formatted start timestamp
var startWidth = len(record.StartLayout)

// Styles colors terminal output. Colors are dropped when the writer is not a terminal.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
}

// NewStyles returns the styles for output written to w
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Error:   r.NewStyle().Foreground(lipgloss.Color("196")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("214")),
		Success: r.NewStyle().Foreground(lipgloss.Color("82")),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("240")),
		Bold:    r.NewStyle().Bold(true),
	}
}

// FormatDuration formats a whole-minute duration as a human-readable string.
// Negative durations keep their sign.
// Examples: "30m", "2h", "1h 30m", "-15m"
func FormatDuration(d time.Duration) string {
	minutes := int(d / time.Minute)
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	if minutes < 60 {
		return fmt.Sprintf("%s%dm", sign, minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%s%dh", sign, hours)
	}
	return fmt.Sprintf("%s%dh %dm", sign, hours, mins)
}

// FormatStart formats a record start, or "-" padded to the same width when absent
func FormatStart(t *time.Time) string {
	if t == nil {
		return fmt.Sprintf("%-*s", startWidth, "-")
	}
	return t.Format(record.StartLayout)
}

// FormatTimes summarises the activity and rest of a record.
// Examples: "45m", "1h 30m, rest -5m", "running", "-"
func FormatTimes(r record.Record) string {
	var parts []string
	switch {
	case r.Activity != nil:
		parts = append(parts, FormatDuration(*r.Activity))
	case r.IsRunning():
		parts = append(parts, "running")
	}
	if r.Rest != nil {
		parts = append(parts, "rest "+FormatDuration(*r.Rest))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

// FormatNote returns the note, or a placeholder for records without one
func FormatNote(note string) string {
	if note == "" {
		return "(no note)"
	}
	return note
}

// FormatRecord formats a record on one line for display.
// Example: "2024-01-15 09:00:00  write docs (45m, rest -5m)"
func FormatRecord(r record.Record) string {
	return fmt.Sprintf("%s  %s (%s)", FormatStart(r.Start), FormatNote(r.Note), FormatTimes(r))
}

// FormatWarning formats a ParseWarning into a human-readable string
// with line number, truncated content (max 50 chars), and error description.
func FormatWarning(warning journal.ParseWarning) string {
	content := warning.Content
	if len(content) > 50 {
		content = content[:47] + "..."
	}
	return fmt.Sprintf("  Line %d: %s (error: %s)", warning.LineNumber, content, warning.Error)
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
