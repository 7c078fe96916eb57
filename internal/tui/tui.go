// Package tui provides the Terminal User Interface for the tt application.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/tt/internal/service"
	"github.com/xolan/tt/internal/tui/ui"
	"github.com/xolan/tt/internal/tui/views"
)

// Model is the root TUI model
type Model struct {
	// Services
	services *service.Services

	// UI state
	width    int
	height   int
	showHelp bool

	// View models
	journalView views.JournalModel

	// Theme and styles
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// themeSavedMsg reports the result of saving the theme to the config file
type themeSavedMsg struct {
	err error
}

// New creates a new TUI model
func New(services *service.Services) Model {
	themeProvider := ui.NewThemeProvider(services.Config.Get().Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		services:      services,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		journalView:   views.NewJournalModel(services, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.journalView.Init()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// While a note is typed every key but ctrl+c goes to the input
		capturingKeys := m.journalView.IsInputMode()

		switch {
		case msg.Type == tea.KeyCtrlC:
			return m, tea.Quit

		case key.Matches(msg, m.keys.Quit) && !capturingKeys:
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help) && !capturingKeys:
			m.showHelp = !m.showHelp
			return m, nil

		case m.showHelp && key.Matches(msg, m.keys.Back):
			m.showHelp = false
			return m, nil

		case key.Matches(msg, m.keys.Theme) && !capturingKeys && !m.journalView.IsConfirming():
			name := m.themeProvider.NextTheme()
			m.styles = m.themeProvider.Styles()
			m.journalView, _ = m.journalView.Update(ui.ThemeChangedMsg{
				ThemeName: name,
				Styles:    m.styles,
			})
			return m, m.saveThemeConfig(name)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Account for the title and status bar
		m.journalView.SetSize(m.width, m.height-4)
		return m, nil

	case themeSavedMsg:
		// The theme still applies for this session when it cannot be saved
		return m, nil
	}

	m.journalView, cmd = m.journalView.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(m.journalView.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return m.styles.App.Render(b.String())
}

// renderTitle renders the journal path and theme
func (m Model) renderTitle() string {
	title := m.styles.Title.Render("tt")
	path := m.styles.StatusHelp.Render(m.services.Journal.Store().Path())
	theme := m.styles.StatusHelp.Render("theme: " + m.themeProvider.CurrentName())
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", path, "  ", theme)
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	switch {
	case m.journalView.IsInputMode():
		parts = append(parts, m.renderKeyHelp("Enter", "save"))
		parts = append(parts, m.renderKeyHelp("Esc", "cancel"))
	case m.journalView.IsConfirming():
		parts = append(parts, m.renderKeyHelp("y", "delete"))
		parts = append(parts, m.renderKeyHelp("n", "keep"))
	default:
		parts = append(parts, m.renderKeyHelp("s", "start"))
		parts = append(parts, m.renderKeyHelp("x", "stop"))
		parts = append(parts, m.renderKeyHelp("e", "note"))
		parts = append(parts, m.renderKeyHelp("d", "delete"))
		parts = append(parts, m.renderKeyHelp("t", "theme"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")

	// Fill to width
	padding := m.width - lipgloss.Width(content)
	if padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// saveThemeConfig saves the theme to the config file
func (m Model) saveThemeConfig(themeName string) tea.Cmd {
	configService := m.services.Config
	return func() tea.Msg {
		return themeSavedMsg{err: configService.SetTheme(themeName)}
	}
}

// renderHelpOverlay renders the keyboard shortcuts in place of the journal
func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.DialogTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")

	for _, b := range []key.Binding{
		m.keys.Up, m.keys.Down, m.keys.PageUp, m.keys.PageDown, m.keys.Top, m.keys.Bottom,
		m.keys.Start, m.keys.Stop, m.keys.Edit, m.keys.Delete,
		m.keys.Refresh, m.keys.Theme, m.keys.Help, m.keys.Quit,
	} {
		help.WriteString(fmt.Sprintf("  %-10s %s\n", b.Help().Key, b.Help().Desc))
	}

	help.WriteString("\n")
	help.WriteString(m.styles.StatusHelp.Render("Press ? to close"))

	return m.styles.App.Render(m.styles.Dialog.Render(help.String()))
}

// Run starts the TUI application
func Run(services *service.Services) error {
	model := New(services)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
