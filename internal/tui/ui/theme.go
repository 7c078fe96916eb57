package ui

import (
	"slices"
	"sort"

	tint "github.com/lrstanley/bubbletint"
)

// DefaultTheme is the tint used for the "default" theme and for unknown names
const DefaultTheme = "dracula"

// Theme names that are not bubbletint ids
const (
	ThemeDefault = "default"
	ThemeMono    = "mono"
)

// ThemeProvider manages TUI themes using bubbletint.
// The mono theme turns colors off and keeps the current tint for when they come back.
type ThemeProvider struct {
	registry *tint.Registry
	mono     bool
}

// NewThemeProvider creates a new ThemeProvider with the specified initial theme.
// An empty name or "default" selects DefaultTheme. Unknown names fall back to it.
func NewThemeProvider(initialTheme string) *ThemeProvider {
	allTints := tint.DefaultTints()

	var defaultTint tint.Tint
	for _, t := range allTints {
		if t.ID() == DefaultTheme {
			defaultTint = t
			break
		}
	}
	if defaultTint == nil && len(allTints) > 0 {
		defaultTint = allTints[0]
	}

	tp := &ThemeProvider{
		registry: tint.NewRegistry(defaultTint, allTints...),
	}
	tp.SetTheme(initialTheme)
	return tp
}

// SetTheme sets the current theme by name.
// Returns true if the theme was found and set, false otherwise.
func (tp *ThemeProvider) SetTheme(name string) bool {
	switch name {
	case ThemeMono:
		tp.mono = true
		return true
	case "", ThemeDefault:
		tp.mono = false
		return tp.registry.SetTintID(DefaultTheme)
	}
	if !tp.registry.SetTintID(name) {
		return false
	}
	tp.mono = false
	return true
}

// NextTheme cycles to the next theme and returns its name.
// From mono it switches colors back on without moving.
func (tp *ThemeProvider) NextTheme() string {
	if tp.mono {
		tp.mono = false
		return tp.registry.ID()
	}
	tp.registry.NextTint()
	return tp.registry.ID()
}

// CurrentName returns the name of the current theme.
func (tp *ThemeProvider) CurrentName() string {
	if tp.mono {
		return ThemeMono
	}
	return tp.registry.ID()
}

// CurrentDisplayName returns the display name of the current theme.
func (tp *ThemeProvider) CurrentDisplayName() string {
	if tp.mono {
		return "Monochrome"
	}
	return tp.registry.DisplayName()
}

// AvailableThemes returns a sorted list of all available theme names.
func (tp *ThemeProvider) AvailableThemes() []string {
	ids := append(slices.Clone(tp.registry.TintIDs()), ThemeMono)
	sort.Strings(ids)
	return ids
}

// Styles returns a Styles struct configured for the current theme.
func (tp *ThemeProvider) Styles() Styles {
	if tp.mono {
		return MonoStyles()
	}
	return NewStylesFromRegistry(tp.registry)
}
