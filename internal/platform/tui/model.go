package tui

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/merge2048/internal/core"
	"github.com/vovakirdan/merge2048/internal/engine"
	"github.com/vovakirdan/merge2048/internal/idgen"
	"github.com/vovakirdan/merge2048/internal/storage"
)

// Recorder receives session journal events. *storage.Store implements it.
type Recorder interface {
	BeginSession(id, origin string, boardSize int) error
	RecordMove(ev storage.MoveEvent) error
	EndSession(id string, finalSum, maxTile int) error
}

var _ Recorder = (*storage.Store)(nil)

// playState is the engine session and its journal entry, shared by all
// copies of a Model.
type playState struct {
	session   *engine.Session
	journalID string
	ended     bool
}

// Model is the Bubble Tea model for one play session.
// Update is the single writer of the engine session it owns.
type Model struct {
	play     *playState
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	journal  Recorder
	origin   string
	logger   *log.Logger
	anim     *animation
	ticking  bool
	quitting bool
}

// NewModel creates a play model and starts its first session.
// journal may be nil; logger may be nil to discard logs.
func NewModel(cfg core.RuntimeConfig, journal Recorder, origin string, logger *log.Logger) (Model, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:  cfg,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		journal: journal,
		origin:  origin,
		logger:  logger,
		play:    &playState{},
	}
	m.help.Width = cfg.ScreenW

	if err := m.startSession(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// startSession replaces the engine session with a fresh one and opens a journal entry.
func (m *Model) startSession() error {
	session, err := engine.NewSession(
		engine.WithSize(m.config.BoardSize),
		engine.WithInitialTiles(m.config.InitialTiles),
		engine.WithSeed(m.config.Seed),
		engine.WithLogger(m.logger),
	)
	if err != nil {
		return err
	}
	m.play.session = session
	m.play.journalID = idgen.New()
	m.play.ended = false
	m.anim = nil

	if m.journal != nil {
		if err := m.journal.BeginSession(m.play.journalID, m.origin, m.config.BoardSize); err != nil {
			m.logger.Warn("journal: cannot begin session", "error", err)
		}
	}
	m.logger.Info("session started", "id", m.play.journalID, "size", m.config.BoardSize, "origin", m.origin)
	return nil
}

// endSession closes the journal entry for the current session once.
func (m *Model) endSession() {
	p := m.play
	if p.ended {
		return
	}
	p.ended = true

	board := p.session.CurrentBoard()
	if m.journal != nil {
		if err := m.journal.EndSession(p.journalID, board.Sum(), board.MaxDisplay()); err != nil {
			m.logger.Warn("journal: cannot end session", "error", err)
		}
	}
	m.logger.Info("session ended", "id", p.journalID, "moves", p.session.MoveCount(), "sum", board.Sum())
}

// Close ends the current journal entry unless quit already did.
// Hosts call it after the program stops; it must not run concurrently
// with Update.
func (m Model) Close() {
	m.endSession()
}

// Init starts nothing; ticks only run while an animation plays.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.endSession()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.endSession()
		// New seed so the next session does not replay the last one
		m.config.Seed = time.Now().UnixNano()
		if err := m.startSession(); err != nil {
			m.logger.Error("cannot start session", "error", err)
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if move, ok := m.keys.MoveFor(msg); ok {
		return m.applyMove(move)
	}
	return m, nil
}

// applyMove sends a move to the engine, journals it and starts the animation.
func (m Model) applyMove(move engine.Move) (tea.Model, tea.Cmd) {
	before := m.play.session.Current()
	if err := m.play.session.ApplyMove(move); err != nil {
		m.logger.Error("move rejected", "move", move, "error", err)
		return m, nil
	}
	after := m.play.session.Current()
	changed := after != before

	if m.journal != nil {
		ev := storage.MoveEvent{
			SessionID:  m.play.journalID,
			Move:       strings.ToLower(move.String()),
			DepthAfter: after.Depth(),
			Changed:    changed,
		}
		if err := m.journal.RecordMove(ev); err != nil {
			m.logger.Warn("journal: cannot record move", "error", err)
		}
	}

	if !changed || !m.config.Animate {
		return m, nil
	}

	m.anim = newAnimation(before.Board(), after.Board())
	if m.ticking || !m.anim.running() {
		return m, nil
	}
	m.ticking = true
	return m, tickCmd(m.config.TickRate)
}

// handleTick advances the animation and keeps ticking while it runs.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.anim.step() {
		return m, tickCmd(m.config.TickRate)
	}
	m.anim = nil
	m.ticking = false
	return m, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpView := helpStyle.Render(m.help.View(m.keys))

	screenH := m.config.ScreenH - lipgloss.Height(helpView)
	if screenH < 1 {
		screenH = 1
	}
	m.screen.Resize(m.config.ScreenW, screenH)
	m.render(m.screen)

	return RenderScreen(m.screen) + "\n" + helpView
}

// render draws the HUD and board, or the running animation frame.
func (m Model) render(dst *core.Screen) {
	dst.Clear()

	board := m.play.session.CurrentBoard()
	layout := centeredLayout(dst.Width(), board.Size())
	if !layout.fits(dst.Width(), dst.Height()) {
		drawTooSmall(dst)
		return
	}

	drawHUD(dst, layout, hudLines(board, m.play.session.MoveCount(), m.play.session.CanUndo()))
	if m.anim.running() {
		m.anim.draw(dst, layout)
		return
	}
	drawBoard(dst, layout, board)
}

// Session returns the engine session currently being played.
func (m Model) Session() *engine.Session {
	return m.play.session
}

// Run starts the Bubble Tea program for a local play session.
func Run(cfg core.RuntimeConfig, journal Recorder, logger *log.Logger) error {
	model, err := NewModel(cfg, journal, "local", logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	model.Close()
	return err
}
