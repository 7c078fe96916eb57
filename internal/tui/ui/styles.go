package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	// Base styles
	App   lipgloss.Style
	Title lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusHelp lipgloss.Style

	// Journal lines
	LineSelected lipgloss.Style
	LineNormal   lipgloss.Style
	LineNumber   lipgloss.Style
	LineStart    lipgloss.Style
	LineTimes    lipgloss.Style
	LineOpaque   lipgloss.Style
	Running      lipgloss.Style

	// Totals
	Label lipgloss.Style
	Value lipgloss.Style

	// Input
	Input lipgloss.Style

	// Dialog
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	// Errors and warnings
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// MonoStyles returns styles without colors, for terminals where colors get in the way.
// Selection and emphasis use reverse video and bold only.
func MonoStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		App:   lipgloss.NewStyle().Padding(1, 2),
		Title: lipgloss.NewStyle().Bold(true).MarginBottom(1),

		StatusBar:  lipgloss.NewStyle().Reverse(true).Padding(0, 1),
		StatusKey:  lipgloss.NewStyle().Bold(true),
		StatusHelp: plain,

		LineSelected: lipgloss.NewStyle().Reverse(true),
		LineNormal:   plain,
		LineNumber:   lipgloss.NewStyle().Width(6),
		LineStart:    plain,
		LineTimes:    plain,
		LineOpaque:   lipgloss.NewStyle().Italic(true),
		Running:      lipgloss.NewStyle().Bold(true),

		Label: lipgloss.NewStyle().Width(12),
		Value: lipgloss.NewStyle().Bold(true),

		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			Width(50),
		DialogTitle: lipgloss.NewStyle().Bold(true).MarginBottom(1),

		Error:   lipgloss.NewStyle().Bold(true),
		Warning: plain,
		Success: plain,
	}
}

// NewStylesFromRegistry creates a Styles struct using colors from a bubbletint registry.
// This maps theme colors to semantic UI elements:
// - Primary: Purple (titles, borders)
// - Secondary: Cyan (start times, keys)
// - Accent: BrightPurple (durations)
// - Muted: BrightBlack (line numbers, labels)
// - Success/Warning/Error: Green/Yellow/Red
func NewStylesFromRegistry(r *tint.Registry) Styles {
	primary := r.Purple()
	secondary := r.Cyan()
	accent := r.BrightPurple()
	muted := r.BrightBlack()
	success := r.Green()
	warning := r.Yellow()
	errorColor := r.Red()
	fg := r.Fg()
	bg := r.Bg()

	return Styles{
		// Base styles
		App: lipgloss.NewStyle().Padding(1, 2),
		Title: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			MarginBottom(1),

		// Status bar
		StatusBar: lipgloss.NewStyle().
			Foreground(fg).
			Background(bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true),
		StatusHelp: lipgloss.NewStyle().
			Foreground(muted),

		// Journal lines
		LineSelected: lipgloss.NewStyle().
			Background(muted).
			Bold(true),
		LineNormal: lipgloss.NewStyle(),
		LineNumber: lipgloss.NewStyle().
			Foreground(muted).
			Width(6),
		LineStart: lipgloss.NewStyle().
			Foreground(secondary),
		LineTimes: lipgloss.NewStyle().
			Foreground(accent),
		LineOpaque: lipgloss.NewStyle().
			Foreground(warning).
			Italic(true),
		Running: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),

		// Totals
		Label: lipgloss.NewStyle().
			Foreground(muted).
			Width(12),
		Value: lipgloss.NewStyle().
			Foreground(fg).
			Bold(true),

		// Input
		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(primary).
			Padding(0, 1),

		// Dialog
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(1, 2).
			Width(50),
		DialogTitle: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			MarginBottom(1),

		// Errors and warnings
		Error: lipgloss.NewStyle().
			Foreground(errorColor),
		Warning: lipgloss.NewStyle().
			Foreground(warning),
		Success: lipgloss.NewStyle().
			Foreground(success),
	}
}
