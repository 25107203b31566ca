package tui

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/merge2048/internal/core"
	"github.com/vovakirdan/merge2048/internal/engine"
)

const (
	cellWidth  = 7 // Width of each cell (including the left border)
	cellHeight = 2 // Height of each cell (including the top border)
	hudHeight  = 3
)

// boardLayout positions a board grid on the screen.
type boardLayout struct {
	x, y int // Top-left corner of the grid
	size int // Cells per side
}

// boardDims returns the screen size of a grid with size cells per side.
func boardDims(size int) (w, h int) {
	return size*cellWidth + 1, size*cellHeight + 1
}

// centeredLayout places a board centered horizontally below the HUD.
func centeredLayout(screenW, size int) boardLayout {
	w, _ := boardDims(size)
	x := core.Clamp((screenW-w)/2, 0, screenW)
	return boardLayout{x: x, y: hudHeight + 1, size: size}
}

// rect returns the screen area covered by the grid.
func (l boardLayout) rect() core.Rect {
	w, h := boardDims(l.size)
	return core.NewRect(l.x, l.y, w, h)
}

// fits reports whether the grid and HUD fit on a screen of the given size.
func (l boardLayout) fits(screenW, screenH int) bool {
	screen := core.NewRect(0, 0, screenW, screenH)
	r := l.rect()
	return screen.Contains(r.X, 0) && screen.Contains(r.Right()-1, r.Bottom()-1)
}

// cellOrigin returns the first inner screen cell for a (possibly fractional) board coordinate.
func (l boardLayout) cellOrigin(fx, fy float64) (x, y int) {
	x = l.x + int(math.Round(fx*cellWidth)) + 1
	y = l.y + int(math.Round(fy*cellHeight)) + 1
	return x, y
}

// drawGrid draws the cell borders.
func drawGrid(dst *core.Screen, l boardLayout) {
	n := l.size
	for y := range n + 1 {
		for x := range n + 1 {
			px := l.x + x*cellWidth
			py := l.y + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == n:
				corner = '┐'
			case y == n && x == 0:
				corner = '└'
			case y == n && x == n:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == n:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == n:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			if x < n {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < n {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

// tileLabel formats the displayed value so it fits inside a cell.
func tileLabel(t engine.Tile) string {
	s := strconv.Itoa(t.Display())
	if len(s) > cellWidth-1 {
		s = fmt.Sprintf("2^%d", t.Value)
	}
	return s
}

// drawTile draws a tile label centered in the cell at board coordinate (fx, fy).
func drawTile(dst *core.Screen, l boardLayout, fx, fy float64, t engine.Tile, c core.Color) {
	x, y := l.cellOrigin(fx, fy)
	label := tileLabel(t)
	pad := (cellWidth - 1 - len(label)) / 2
	if pad < 0 {
		pad = 0
	}
	dst.DrawTextColored(x+pad, y, label, c)
}

// drawBoard draws the grid and every tile of b at rest.
func drawBoard(dst *core.Screen, l boardLayout, b engine.Board) {
	drawGrid(dst, l)
	for _, pt := range b.Tiles() {
		drawTile(dst, l, float64(pt.At.X), float64(pt.At.Y), pt.Tile, core.TileColor(pt.Value))
	}
}

// hudLines returns the title and status lines shown above the board.
func hudLines(b engine.Board, moves int, canUndo bool) []string {
	undo := "no undo"
	if canUndo {
		undo = "undo ok"
	}
	return []string{
		"merge2048",
		fmt.Sprintf("Moves: %d  Sum: %d  Max: %d", moves, b.Sum(), b.MaxDisplay()),
		undo,
	}
}

// drawHUD draws the HUD lines centered over the board.
func drawHUD(dst *core.Screen, l boardLayout, lines []string) {
	w, _ := boardDims(l.size)
	for i, line := range lines {
		x := core.Clamp(l.x+(w-len(line))/2, 0, dst.Width())
		c := core.ColorDefault
		if i == 0 {
			c = core.ColorBrightYellow
		}
		dst.DrawTextColored(x, i, line, c)
	}
}

// drawTooSmall shows a boxed "window too small" message.
func drawTooSmall(dst *core.Screen) {
	lines := []string{"Window too small", "Please resize terminal"}
	cx, cy := core.NewRect(0, 0, dst.Width(), dst.Height()).Center()

	box := core.NewRect(cx-13, cy-2, 26, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, line := range lines {
		dst.DrawText(cx-len(line)/2, box.Y+1+i, line)
	}
}
