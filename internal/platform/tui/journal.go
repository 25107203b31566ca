package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"

	"github.com/vovakirdan/merge2048/internal/storage"
)

// MaxJournalSessions is how many sessions the viewer loads.
const MaxJournalSessions = 100

// JournalKeyMap defines the key bindings for the journal viewer.
type JournalKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k JournalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k JournalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Back, k.Quit},
	}
}

// DefaultJournalKeyMap returns default key bindings.
func DefaultJournalKeyMap() JournalKeyMap {
	return JournalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "show moves"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// JournalModel is the Bubble Tea model for browsing journaled sessions.
type JournalModel struct {
	store    *storage.Store
	records  []storage.SessionRecord
	summary  storage.Summary
	moves    []storage.MoveEvent // moves of the selected session, nil in list view
	table    table.Model
	help     help.Model
	keys     JournalKeyMap
	width    int
	height   int
	loadErr  error
	quitting bool
}

// NewJournalModel creates a journal viewer and loads the recent sessions.
func NewJournalModel(store *storage.Store, width, height int) JournalModel {
	m := JournalModel{
		store:  store,
		keys:   DefaultJournalKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with columns fitted to the window.
func (m *JournalModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Started", Width: 14},
		{Title: "Origin", Width: 7},
		{Title: "Size", Width: 5},
		{Title: "Moves", Width: 6},
		{Title: "Undos", Width: 6},
		{Title: "Depth", Width: 6},
		{Title: "Max", Width: 7},
		{Title: "Status", Width: 7},
	}

	height := m.height - 8 // Leave room for header, help, and margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads sessions and the summary from the store.
func (m *JournalModel) load() {
	m.records, m.loadErr = m.store.RecentSessions(MaxJournalSessions)
	if m.loadErr == nil {
		m.summary, m.loadErr = m.store.Summary()
	}
	m.table.SetRows(sessionRows(m.records))
	m.table.GotoTop()
}

// sessionRows formats journal records as table rows.
func sessionRows(records []storage.SessionRecord) []table.Row {
	rows := make([]table.Row, len(records))
	for i, r := range records {
		status := "ended"
		if r.Open() {
			status = "open"
		}
		rows[i] = table.Row{
			r.StartedAt.Format("Jan 02 15:04"),
			r.Origin,
			fmt.Sprintf("%dx%d", r.BoardSize, r.BoardSize),
			fmt.Sprintf("%d", r.Moves),
			fmt.Sprintf("%d", r.Undos),
			fmt.Sprintf("%d", r.MaxDepth),
			fmt.Sprintf("%d", r.MaxTile),
			status,
		}
	}
	return rows
}

// Init initializes the journal model.
func (m JournalModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journal viewer.
func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.moves != nil {
				m.moves = nil
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			m.selectSession()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(sessionRows(m.records))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// selectSession loads the moves of the session under the cursor.
func (m *JournalModel) selectSession() {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.records) {
		return
	}
	moves, err := m.store.SessionMoves(m.records[i].ID)
	if err != nil {
		m.loadErr = err
		return
	}
	if moves == nil {
		moves = []storage.MoveEvent{}
	}
	m.moves = moves
}

// View renders the journal viewer.
func (m JournalModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("SESSION JOURNAL", m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	switch {
	case m.loadErr != nil:
		b.WriteString(boxStyle.Render("Cannot read journal:\n" + m.loadErr.Error()))
	case m.moves != nil:
		b.WriteString(boxStyle.Render(m.renderMoves()))
	case len(m.records) == 0:
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(boxStyle.Render(emptyStyle.Render("No sessions recorded yet.\nRun `merge2048 play` to start one!")))
	default:
		b.WriteString(boxStyle.Render(m.table.View()))
		b.WriteString("\n")
		b.WriteString(m.renderSummary())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSummary renders the totals line under the table.
func (m JournalModel) renderSummary() string {
	return fmt.Sprintf("%d sessions  %d moves  %d undos  best tile %d",
		m.summary.Sessions, m.summary.TotalMoves, m.summary.TotalUndos, m.summary.BestTile)
}

// renderMoves renders the move list of the selected session.
func (m JournalModel) renderMoves() string {
	if len(m.moves) == 0 {
		return "No moves recorded for this session."
	}

	var b strings.Builder
	for _, ev := range m.moves {
		mark := " "
		if !ev.Changed {
			mark = "·" // no-op
		}
		fmt.Fprintf(&b, "%4d %s %-6s depth %d\n", ev.Seq, mark, ev.Move, ev.DepthAfter)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RunJournal runs the journal viewer.
func RunJournal(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewJournalModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// PlainSessions renders journal records as a bordered text table for non-interactive output.
func PlainSessions(records []storage.SessionRecord) string {
	t := lgtable.New().
		Border(lipgloss.NormalBorder()).
		Headers("STARTED", "ORIGIN", "SIZE", "MOVES", "UNDOS", "DEPTH", "MAX", "STATUS", "ID").
		Rows(withIDs(records)...)
	return t.Render()
}

func withIDs(records []storage.SessionRecord) [][]string {
	rows := make([][]string, len(records))
	for i, r := range sessionRows(records) {
		rows[i] = append([]string(r), records[i].ID)
	}
	return rows
}

// centerText pads text so it is centered in width columns.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
