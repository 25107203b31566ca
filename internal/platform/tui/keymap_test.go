package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/merge2048/internal/engine"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapMoveFor(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want engine.Move
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, engine.MoveUp},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, engine.MoveDown},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, engine.MoveLeft},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, engine.MoveRight},
		{"w", runeKey('w'), engine.MoveUp},
		{"a", runeKey('a'), engine.MoveLeft},
		{"s", runeKey('s'), engine.MoveDown},
		{"d", runeKey('d'), engine.MoveRight},
		{"k", runeKey('k'), engine.MoveUp},
		{"h", runeKey('h'), engine.MoveLeft},
		{"j", runeKey('j'), engine.MoveDown},
		{"l", runeKey('l'), engine.MoveRight},
		{"u", runeKey('u'), engine.MoveUndo},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, engine.MoveUndo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := km.MoveFor(tt.msg)
			if !ok {
				t.Fatalf("MoveFor(%q) reported no move", tt.msg.String())
			}
			if got != tt.want {
				t.Errorf("MoveFor(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestKeyMapNonMoveKeys(t *testing.T) {
	km := DefaultKeyMap()

	for _, msg := range []tea.KeyMsg{
		runeKey('q'),
		runeKey('r'),
		runeKey('?'),
		runeKey('x'),
		{Type: tea.KeyEnter},
		{Type: tea.KeyCtrlC},
	} {
		if m, ok := km.MoveFor(msg); ok {
			t.Errorf("MoveFor(%q) = %v, want no move", msg.String(), m)
		}
	}
}

func TestKeyMapControlBindings(t *testing.T) {
	km := DefaultKeyMap()

	if !key.Matches(runeKey('q'), km.Quit) || !key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit) {
		t.Error("q and ctrl+c should quit")
	}
	if !key.Matches(runeKey('r'), km.New) {
		t.Error("r should start a new session")
	}
	if !key.Matches(runeKey('?'), km.Help) {
		t.Error("? should toggle help")
	}
}

func TestKeyMapHelp(t *testing.T) {
	km := DefaultKeyMap()

	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp should not be empty")
	}
	total := 0
	for _, col := range km.FullHelp() {
		total += len(col)
	}
	if total != 8 {
		t.Errorf("FullHelp lists %d bindings, want 8", total)
	}
}
