package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/merge2048/internal/core"
	"github.com/vovakirdan/merge2048/internal/storage"
)

// fakeRecorder keeps journal calls in memory.
type fakeRecorder struct {
	begun  []string
	ended  []string
	sums   []int
	maxes  []int
	events []storage.MoveEvent
	fail   bool
}

func (r *fakeRecorder) BeginSession(id, origin string, boardSize int) error {
	r.begun = append(r.begun, id)
	if r.fail {
		return errors.New("journal down")
	}
	return nil
}

func (r *fakeRecorder) RecordMove(ev storage.MoveEvent) error {
	r.events = append(r.events, ev)
	if r.fail {
		return errors.New("journal down")
	}
	return nil
}

func (r *fakeRecorder) EndSession(id string, finalSum, maxTile int) error {
	r.ended = append(r.ended, id)
	r.sums = append(r.sums, finalSum)
	r.maxes = append(r.maxes, maxTile)
	if r.fail {
		return errors.New("journal down")
	}
	return nil
}

func testConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = 1
	cfg.Animate = false
	return cfg
}

func newTestModel(t *testing.T, rec Recorder) Model {
	t.Helper()
	m, err := NewModel(testConfig(), rec, "local", nil)
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	return m
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func TestModelMovesAndJournal(t *testing.T) {
	rec := &fakeRecorder{}
	m := newTestModel(t, rec)

	if len(rec.begun) != 1 {
		t.Fatalf("BeginSession calls = %d, want 1", len(rec.begun))
	}
	if got := m.Session().CurrentBoard().Count(); got != 2 {
		t.Errorf("initial tiles = %d, want 2", got)
	}

	// With two tiles on a 4x4 board at least one of left/right changes it.
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})

	if len(rec.events) != 2 {
		t.Fatalf("recorded events = %d, want 2", len(rec.events))
	}
	if rec.events[0].Move != "left" || rec.events[1].Move != "right" {
		t.Errorf("recorded moves = %q, %q", rec.events[0].Move, rec.events[1].Move)
	}
	changed := 0
	for _, ev := range rec.events {
		if ev.SessionID != rec.begun[0] {
			t.Errorf("event session = %s, want %s", ev.SessionID, rec.begun[0])
		}
		if ev.Changed {
			changed++
		}
	}
	if changed == 0 {
		t.Fatal("expected at least one changing move")
	}
	if m.Session().MoveCount() != changed {
		t.Errorf("MoveCount = %d, want %d", m.Session().MoveCount(), changed)
	}

	depth := m.Session().MoveCount()
	m, _ = press(t, m, runeKey('u'))
	if m.Session().MoveCount() != depth-1 {
		t.Errorf("MoveCount after undo = %d, want %d", m.Session().MoveCount(), depth-1)
	}
	last := rec.events[len(rec.events)-1]
	if last.Move != "undo" || !last.Changed || last.DepthAfter != depth-1 {
		t.Errorf("undo event = %+v", last)
	}

	_, cmd := press(t, m, runeKey('q'))
	if cmd == nil {
		t.Error("quit should return a command")
	}
	if len(rec.ended) != 1 || rec.ended[0] != rec.begun[0] {
		t.Errorf("EndSession calls = %v, want [%s]", rec.ended, rec.begun[0])
	}
}

func TestModelUndoAtStartIsRecordedUnchanged(t *testing.T) {
	rec := &fakeRecorder{}
	m := newTestModel(t, rec)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	if m.Session().MoveCount() != 0 {
		t.Errorf("MoveCount = %d, want 0", m.Session().MoveCount())
	}
	if len(rec.events) != 1 || rec.events[0].Changed {
		t.Errorf("events = %+v, want one unchanged undo", rec.events)
	}
}

func TestModelNewSession(t *testing.T) {
	rec := &fakeRecorder{}
	m := newTestModel(t, rec)
	first := m.Session()

	m, _ = press(t, m, runeKey('r'))
	if m.Session() == first {
		t.Error("r should replace the engine session")
	}
	if len(rec.begun) != 2 || len(rec.ended) != 1 {
		t.Errorf("begun/ended = %d/%d, want 2/1", len(rec.begun), len(rec.ended))
	}
	if rec.begun[0] == rec.begun[1] {
		t.Error("new session should get a new journal id")
	}
	if m.Session().MoveCount() != 0 {
		t.Errorf("new session MoveCount = %d, want 0", m.Session().MoveCount())
	}
}

func TestModelJournalFailuresDoNotStopPlay(t *testing.T) {
	rec := &fakeRecorder{fail: true}
	m := newTestModel(t, rec)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Session().MoveCount() == 0 {
		t.Error("moves should apply while the journal fails")
	}
}

func TestModelWithoutJournal(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Session().MoveCount() == 0 {
		t.Error("moves should apply without a journal")
	}
}

func TestModelAnimationTicks(t *testing.T) {
	cfg := testConfig()
	cfg.Animate = true
	m, err := NewModel(cfg, nil, "local", nil)
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}

	var cmd tea.Cmd
	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Session().MoveCount() == 0 {
		m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}
	if cmd == nil || !m.anim.running() {
		t.Fatal("a changing move should start an animation tick")
	}

	for range slideTicks + popTicks + 2 {
		next, _ := m.Update(TickMsg{})
		m = next.(Model)
	}
	if m.anim.running() || m.ticking {
		t.Error("animation should finish after enough ticks")
	}
}

func TestModelRender(t *testing.T) {
	m := newTestModel(t, nil)

	screen := core.NewScreen(80, 22)
	m.render(screen)
	text := screen.String()
	for _, want := range []string{"merge2048", "Moves: 0", "no undo", "┌"} {
		if !strings.Contains(text, want) {
			t.Errorf("render output missing %q:\n%s", want, text)
		}
	}

	small := core.NewScreen(20, 5)
	m.render(small)
	if !strings.Contains(small.String(), "Window") {
		t.Errorf("small screen should show the resize hint:\n%s", small.String())
	}
}

func TestModelViewAfterQuit(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, runeKey('q'))
	if m.View() != "" {
		t.Error("View should be empty after quit")
	}
}

func TestModelCloseEndsSessionWithoutQuit(t *testing.T) {
	rec := &fakeRecorder{}
	initial := newTestModel(t, rec)

	m, _ := press(t, initial, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})

	// The host only holds the model it started the program with.
	initial.Close()

	if len(rec.ended) != 1 || rec.ended[0] != rec.begun[0] {
		t.Fatalf("EndSession calls = %v, want [%s]", rec.ended, rec.begun[0])
	}
	board := m.Session().CurrentBoard()
	if rec.sums[0] != board.Sum() || rec.maxes[0] != board.MaxDisplay() {
		t.Errorf("EndSession totals = %d/%d, want %d/%d", rec.sums[0], rec.maxes[0], board.Sum(), board.MaxDisplay())
	}
	if rec.maxes[0] < 2 {
		t.Errorf("EndSession max = %d, want a tile value", rec.maxes[0])
	}
}

func TestModelCloseAfterQuitEndsOnce(t *testing.T) {
	rec := &fakeRecorder{}
	initial := newTestModel(t, rec)

	m, _ := press(t, initial, runeKey('q'))
	initial.Close()
	m.Close()

	if len(rec.ended) != 1 {
		t.Errorf("EndSession calls = %d, want 1", len(rec.ended))
	}
}

func TestModelCloseEndsRestartedSession(t *testing.T) {
	rec := &fakeRecorder{}
	initial := newTestModel(t, rec)

	press(t, initial, runeKey('r'))
	initial.Close()

	if len(rec.begun) != 2 {
		t.Fatalf("BeginSession calls = %d, want 2", len(rec.begun))
	}
	if len(rec.ended) != 2 || rec.ended[1] != rec.begun[1] {
		t.Errorf("EndSession calls = %v, want both sessions ended", rec.ended)
	}
}
