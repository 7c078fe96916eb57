package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/tt/internal/cli"
	"github.com/xolan/tt/internal/journal"
	"github.com/xolan/tt/internal/record"
	"github.com/xolan/tt/internal/service"
	"github.com/xolan/tt/internal/tui/ui"
)

// errNotARecord is reported when an action needs a record but the selected line is not one
var errNotARecord = errors.New("selected line is not a record")

// journalMode represents the current mode of the journal view
type journalMode int

const (
	journalModeNormal journalMode = iota
	journalModeStart
	journalModeNote
	journalModeDelete
)

// JournalModel is the journal browser. It walks the lines of the journal
// file with a cursor and runs the journal operations on the selected record.
type JournalModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width   int
	height  int
	cursor  *journal.Cursor
	top     int // First visible line
	totals  *service.ListResult
	loading bool
	err     error
	status  string

	// Input mode state
	mode   journalMode
	input  textinput.Model
	target record.Record // Record being edited or deleted
}

// NewJournalModel creates a new journal view model
func NewJournalModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) JournalModel {
	input := textinput.New()
	input.CharLimit = 200
	input.Width = 50

	return JournalModel{
		services: services,
		styles:   styles,
		keys:     keys,
		input:    input,
		loading:  true,
	}
}

// journalLoadedMsg is sent when the journal has been read, after an action or a refresh
type journalLoadedMsg struct {
	cursor     *journal.Cursor
	totals     *service.ListResult
	status     string
	selectLast bool
	err        error
}

// Init implements tea.Model
func (m JournalModel) Init() tea.Cmd {
	return m.load("", false)
}

// Update implements tea.Model
func (m JournalModel) Update(msg tea.Msg) (JournalModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case journalModeStart, journalModeNote:
			return m.handleInputMode(msg)
		case journalModeDelete:
			return m.handleDeleteMode(msg)
		}
		return m.handleNormalMode(msg)

	case journalLoadedMsg:
		m.loading = false
		m.mode = journalModeNormal
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		m.status = msg.status
		m.totals = msg.totals
		m.setCursor(msg.cursor, msg.selectLast)
		return m, nil

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.IsInputMode() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleNormalMode handles key events while browsing
func (m JournalModel) handleNormalMode(msg tea.KeyMsg) (JournalModel, tea.Cmd) {
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.PageUp):
		m.move(-m.visibleLines())
	case key.Matches(msg, m.keys.PageDown):
		m.move(m.visibleLines())
	case key.Matches(msg, m.keys.Top):
		m.selectLine(0)
	case key.Matches(msg, m.keys.Bottom):
		m.selectLine(m.lineCount() - 1)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.load("", false)
	case key.Matches(msg, m.keys.Start):
		m.mode = journalModeStart
		m.input.Placeholder = "Note for the new record..."
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Stop):
		return m, m.run(stopLast, true)
	case key.Matches(msg, m.keys.Edit):
		r, err := m.selectedRecord()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.mode = journalModeNote
		m.target = r
		m.input.Placeholder = "Note (empty to clear)..."
		m.input.SetValue(r.Note)
		m.input.CursorEnd()
		m.input.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Delete):
		r, err := m.selectedRecord()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.mode = journalModeDelete
		m.target = r
	}
	return m, nil
}

// handleInputMode handles key events when typing a note
func (m JournalModel) handleInputMode(msg tea.KeyMsg) (JournalModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		note := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.mode = journalModeNormal
		m.input.Blur()
		if mode == journalModeStart {
			return m, m.run(startRecord(note), true)
		}
		return m, m.run(editNote(m.target, note), false)
	case key.Matches(msg, m.keys.Back):
		m.mode = journalModeNormal
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleDeleteMode handles key events when in delete confirmation mode
func (m JournalModel) handleDeleteMode(msg tea.KeyMsg) (JournalModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = journalModeNormal
		return m, m.run(removeRecord(m.target), false)
	case "n", "N", "esc":
		m.mode = journalModeNormal
		m.status = "Deletion cancelled"
	}
	return m, nil
}

// View implements tea.Model
func (m JournalModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Journal"))
	b.WriteString("\n")

	switch m.mode {
	case journalModeStart:
		b.WriteString("Start a new record\n")
		b.WriteString(m.styles.Input.Render(m.input.View()))
		b.WriteString("\n\n")
	case journalModeNote:
		b.WriteString("Edit note of " + cli.FormatStart(m.target.Start) + "\n")
		b.WriteString(m.styles.Input.Render(m.input.View()))
		b.WriteString("\n\n")
	case journalModeDelete:
		dialog := m.styles.DialogTitle.Render("Delete this record?") + "\n" +
			cli.FormatRecord(m.target) + "\n\n" +
			"y to delete, n to keep"
		b.WriteString(m.styles.Dialog.Render(dialog))
		b.WriteString("\n\n")
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
	}

	switch {
	case m.cursor == nil && m.loading:
		b.WriteString("Loading journal...\n")
	case m.lineCount() == 0:
		b.WriteString(m.styles.StatusHelp.Render("No records yet. Press s to start one."))
		b.WriteString("\n")
	default:
		b.WriteString(m.renderLines())
	}

	if m.totals != nil {
		b.WriteString("\n")
		b.WriteString(RenderTotals(m.totals, m.styles))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Success.Render(m.status))
		b.WriteString("\n")
	}

	return b.String()
}

// renderLines renders the visible window of the journal
func (m JournalModel) renderLines() string {
	selected := m.Selected()
	end := min(m.top+m.visibleLines(), m.lineCount())

	// A second cursor walks the window so the selection stays put
	walk := journal.NewCursor(m.cursor.Buffer(), m.services.Journal.Store().Location())
	walk.Forward(m.top + 1)

	var b strings.Builder
	item, ok := walk.Get()
	for i := m.top; i < end && ok; i++ {
		b.WriteString(RenderLine(i+1, item, m.styles, i == selected))
		b.WriteString("\n")
		item, ok = walk.Next()
	}
	return b.String()
}

// SetSize updates the view dimensions
func (m *JournalModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.scroll()
}

// IsInputMode returns true when the view is capturing keyboard input
func (m JournalModel) IsInputMode() bool {
	return m.mode == journalModeStart || m.mode == journalModeNote
}

// IsConfirming returns true while a deletion waits for confirmation
func (m JournalModel) IsConfirming() bool {
	return m.mode == journalModeDelete
}

// Selected returns the 0-based index of the selected line, or -1 if there is none
func (m JournalModel) Selected() int {
	if m.cursor == nil {
		return -1
	}
	index, ok := m.cursor.Position()
	if !ok || index >= m.lineCount() {
		return -1
	}
	return index
}

// Status returns the message left by the last action
func (m JournalModel) Status() string {
	return m.status
}

// Err returns the error of the last action
func (m JournalModel) Err() error {
	return m.err
}

func (m JournalModel) lineCount() int {
	if m.cursor == nil {
		return 0
	}
	return m.cursor.Buffer().LineCount()
}

func (m JournalModel) visibleLines() int {
	if m.height <= 0 {
		return 20
	}
	// Title, totals and status take the rest
	return max(m.height-8, 1)
}

// move shifts the selection by n lines, staying on a line
func (m *JournalModel) move(n int) {
	selected := m.Selected()
	if selected < 0 {
		return
	}
	m.selectLine(selected + n)
}

// selectLine moves the cursor onto line index, clamped to the journal
func (m *JournalModel) selectLine(index int) {
	count := m.lineCount()
	if count == 0 {
		return
	}
	index = max(0, min(index, count-1))

	selected := m.Selected()
	switch {
	case selected < 0:
		m.cursor.GoToStart()
		m.cursor.Forward(index + 1)
	case index > selected:
		m.cursor.Forward(index - selected)
	case index < selected:
		m.cursor.Backward(selected - index)
	}
	m.scroll()
}

// setCursor takes a freshly read journal, keeping the selection where possible
func (m *JournalModel) setCursor(c *journal.Cursor, selectLast bool) {
	previous := m.Selected()
	m.cursor = c
	if selectLast || previous < 0 {
		c.GoToEnd()
		c.Backward(1)
		m.scroll()
		return
	}
	m.selectLine(previous)
}

// scroll keeps the selected line inside the visible window
func (m *JournalModel) scroll() {
	selected := m.Selected()
	if selected < 0 {
		m.top = 0
		return
	}
	visible := m.visibleLines()
	if selected < m.top {
		m.top = selected
	}
	if selected >= m.top+visible {
		m.top = selected - visible + 1
	}
}

// selectedRecord returns the record under the cursor
func (m JournalModel) selectedRecord() (record.Record, error) {
	if m.Selected() < 0 {
		return record.Record{}, service.ErrNotFound
	}
	item, _ := m.cursor.Get()
	if item.Opaque {
		return record.Record{}, errNotARecord
	}
	return item.Record, nil
}

// action is a journal operation run from the browser. It returns the status line to show.
type action func(js *service.JournalService) (string, error)

// load creates a command to read the journal
func (m JournalModel) load(status string, selectLast bool) tea.Cmd {
	js := m.services.Journal
	return func() tea.Msg {
		return readJournal(js, status, selectLast)
	}
}

// run creates a command that performs an action and reads the journal again
func (m JournalModel) run(act action, selectLast bool) tea.Cmd {
	js := m.services.Journal
	return func() tea.Msg {
		status, err := act(js)
		if err != nil {
			return journalLoadedMsg{err: err}
		}
		return readJournal(js, status, selectLast)
	}
}

func readJournal(js *service.JournalService, status string, selectLast bool) journalLoadedMsg {
	c, err := js.Store().Cursor()
	if err != nil {
		return journalLoadedMsg{err: err}
	}
	totals, err := js.List(service.ListOptions{})
	if err != nil {
		return journalLoadedMsg{err: err}
	}
	return journalLoadedMsg{
		cursor:     c,
		totals:     totals,
		status:     status,
		selectLast: selectLast,
	}
}

func startRecord(note string) action {
	return func(js *service.JournalService) (string, error) {
		started, stopped, err := js.Start(note)
		if err != nil {
			return "", err
		}
		status := "Started: " + cli.FormatRecord(started)
		if stopped != nil {
			status = "Stopped: " + cli.FormatRecord(*stopped) + "\n" + status
		}
		return status, nil
	}
}

func stopLast(js *service.JournalService) (string, error) {
	r, err := js.Stop()
	if err != nil {
		return "", err
	}
	return "Stopped: " + cli.FormatRecord(r), nil
}

// editNote changes the note of the first record equal to target
func editNote(target record.Record, note string) action {
	return func(js *service.JournalService) (string, error) {
		change := service.SetTo(note)
		if note == "" {
			change = service.Clear[string]()
		}
		r, err := js.Edit(
			service.Selector{Query: record.Exactly(target)},
			service.Changes{Note: change},
		)
		if err != nil {
			return "", err
		}
		return "Updated: " + cli.FormatRecord(r), nil
	}
}

// removeRecord deletes the first record equal to target
func removeRecord(target record.Record) action {
	return func(js *service.JournalService) (string, error) {
		r, _, err := js.Remove(
			service.Selector{Query: record.Exactly(target)},
			func(record.Record) bool { return true },
		)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Deleted: %s", cli.FormatRecord(r)), nil
	}
}
