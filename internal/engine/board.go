// Package engine implements the 2048-style move-resolution and history
// engine: an immutable board model, a slide-merge-slide resolver, a
// persistent snapshot chain for undo, a tile spawner and the session
// controller that ties them together.
//
// Nothing in this package performs I/O. Randomness (tile ids and spawn
// positions) is injected so tests can run deterministically.
package engine

import (
	"fmt"

	"github.com/vovakirdan/merge2048/internal/idgen"
)

const (
	// DefaultSize is the default board dimension.
	DefaultSize = 4
	// MinSize is the smallest board a session accepts.
	MinSize = 2
)

// Coord addresses a slot. X grows to the right, Y grows downwards.
type Coord struct {
	X, Y int
}

// PlacedTile is a tile together with the slot it occupies.
type PlacedTile struct {
	Tile
	At Coord
}

// Board is a size x size grid of tile slots.
// Boards are values: every operation returning a Board leaves the receiver untouched.
type Board struct {
	size  int
	slots []Tile // row-major
}

// NewBoard returns an empty board of the given size.
func NewBoard(size int) Board {
	return Board{
		size:  size,
		slots: make([]Tile, size*size),
	}
}

// FromValues builds a board from rows of exponents, 0 meaning empty.
// Every occupied slot gets a fresh id from newID.
func FromValues(rows [][]int, newID idgen.Generator) (Board, error) {
	size := len(rows)
	b := NewBoard(size)
	for y, row := range rows {
		if len(row) != size {
			return Board{}, fmt.Errorf("engine: row %d has %d slots, want %d", y, len(row), size)
		}
		for x, v := range row {
			if v < 0 {
				return Board{}, fmt.Errorf("engine: negative value %d at (%d,%d)", v, x, y)
			}
			if v == 0 {
				continue
			}
			b.slots[y*size+x] = Tile{ID: TileID(newID()), Value: v}
		}
	}
	return b, nil
}

// Size returns the board dimension.
func (b Board) Size() int {
	return b.size
}

func (b Board) index(c Coord) int {
	return c.Y*b.size + c.X
}

// At returns the tile at c and whether the slot is occupied.
func (b Board) At(c Coord) (Tile, bool) {
	t := b.slots[b.index(c)]
	return t, !t.Empty()
}

// WithTile returns a copy of b with t placed at c.
func (b Board) WithTile(c Coord, t Tile) Board {
	slots := make([]Tile, len(b.slots))
	copy(slots, b.slots)
	slots[b.index(c)] = t
	return Board{size: b.size, slots: slots}
}

// EmptySlots returns the coordinates of all empty slots in row-major order.
func (b Board) EmptySlots() []Coord {
	var coords []Coord
	for i, t := range b.slots {
		if t.Empty() {
			coords = append(coords, Coord{X: i % b.size, Y: i / b.size})
		}
	}
	return coords
}

// Tiles returns all occupied slots in row-major order.
func (b Board) Tiles() []PlacedTile {
	var tiles []PlacedTile
	for i, t := range b.slots {
		if !t.Empty() {
			tiles = append(tiles, PlacedTile{Tile: t, At: Coord{X: i % b.size, Y: i / b.size}})
		}
	}
	return tiles
}

// Find returns the coordinate of the tile with the given id.
func (b Board) Find(id TileID) (Coord, bool) {
	for i, t := range b.slots {
		if !t.Empty() && t.ID == id {
			return Coord{X: i % b.size, Y: i / b.size}, true
		}
	}
	return Coord{}, false
}

// Count returns the number of tiles on the board.
func (b Board) Count() int {
	n := 0
	for _, t := range b.slots {
		if !t.Empty() {
			n++
		}
	}
	return n
}

// Equal reports whether b and other have the same size and the same
// value in every slot. Tile ids are ignored.
func (b Board) Equal(other Board) bool {
	if b.size != other.size {
		return false
	}
	for i := range b.slots {
		if b.slots[i].Value != other.slots[i].Value {
			return false
		}
	}
	return true
}

// Sum returns the sum of displayed values over all tiles.
func (b Board) Sum() int {
	sum := 0
	for _, t := range b.slots {
		sum += t.Display()
	}
	return sum
}

// MaxValue returns the highest exponent on the board, 0 if empty.
func (b Board) MaxValue() int {
	maxVal := 0
	for _, t := range b.slots {
		if t.Value > maxVal {
			maxVal = t.Value
		}
	}
	return maxVal
}

// MaxDisplay returns the displayed value of the largest tile, 0 if empty.
func (b Board) MaxDisplay() int {
	return Tile{Value: b.MaxValue()}.Display()
}

// Values returns the exponents as rows, 0 meaning empty.
func (b Board) Values() [][]int {
	rows := make([][]int, b.size)
	for y := range b.size {
		rows[y] = make([]int, b.size)
		for x := range b.size {
			rows[y][x] = b.slots[y*b.size+x].Value
		}
	}
	return rows
}
