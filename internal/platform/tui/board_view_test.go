package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/merge2048/internal/core"
	"github.com/vovakirdan/merge2048/internal/engine"
	"github.com/vovakirdan/merge2048/internal/idgen"
)

func mustBoard(t *testing.T, rows [][]int) engine.Board {
	t.Helper()
	b, err := engine.FromValues(rows, idgen.Sequence("v"))
	if err != nil {
		t.Fatalf("FromValues() failed: %v", err)
	}
	return b
}

func TestTileLabel(t *testing.T) {
	tests := []struct {
		value int
		want  string
	}{
		{1, "2"},
		{11, "2048"},
		{17, "131072"},
		{20, "2^20"},
	}

	for _, tt := range tests {
		if got := tileLabel(engine.Tile{ID: "x", Value: tt.value}); got != tt.want {
			t.Errorf("tileLabel(%d) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestDrawBoard(t *testing.T) {
	b := mustBoard(t, [][]int{
		{1, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 11, 0},
		{0, 0, 0, 0},
	})

	w, h := boardDims(4)
	screen := core.NewScreen(w, h)
	layout := boardLayout{size: 4}
	drawBoard(screen, layout, b)

	if screen.Get(0, 0) != '┌' || screen.Get(w-1, 0) != '┐' || screen.Get(0, h-1) != '└' || screen.Get(w-1, h-1) != '┘' {
		t.Errorf("grid corners missing:\n%s", screen.String())
	}

	if row := screen.Row(1); !strings.Contains(row, "2") {
		t.Errorf("row 1 = %q, want the 2 tile", row)
	}
	if row := screen.Row(5); !strings.Contains(row, "2048") {
		t.Errorf("row 5 = %q, want the 2048 tile", row)
	}

	x, y := layout.cellOrigin(2, 2)
	cell := screen.GetCell(x+1, y)
	if cell.Color != core.TileColor(11) {
		t.Errorf("2048 tile color = %v, want %v", cell.Color, core.TileColor(11))
	}
}

func TestCenteredLayoutFits(t *testing.T) {
	w, h := boardDims(4)

	l := centeredLayout(80, 4)
	if !l.fits(80, 24) {
		t.Error("4x4 board should fit an 80x24 screen")
	}
	if l.x != (80-w)/2 {
		t.Errorf("layout x = %d, want %d", l.x, (80-w)/2)
	}

	if l.fits(w-1, 24) {
		t.Error("board should not fit a screen narrower than the grid")
	}
	if l.fits(80, hudHeight+h) {
		t.Error("board should not fit without room for the HUD")
	}
}

func TestHUDLines(t *testing.T) {
	b := mustBoard(t, [][]int{
		{1, 2},
		{0, 3},
	})

	lines := hudLines(b, 7, true)
	if lines[1] != "Moves: 7  Sum: 14  Max: 8" {
		t.Errorf("status line = %q", lines[1])
	}
	if lines[2] != "undo ok" {
		t.Errorf("undo line = %q", lines[2])
	}
	if got := hudLines(engine.NewBoard(2), 0, false); got[1] != "Moves: 0  Sum: 0  Max: 0" {
		t.Errorf("empty board status = %q", got[1])
	}
}
