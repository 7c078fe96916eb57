package ui

// ThemeChangedMsg is sent to the views when the theme changes.
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}
