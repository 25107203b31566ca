package engine

import (
	"errors"
	"math/rand"

	"github.com/vovakirdan/merge2048/internal/idgen"
)

// ErrBoardFull is the panic value raised when Spawn finds no empty slot.
var ErrBoardFull = errors.New("engine: spawn on a board with no empty slot")

// Chooser returns an index in [0, n).
type Chooser func(n int) int

// RandChooser adapts a math/rand source.
func RandChooser(rng *rand.Rand) Chooser {
	return rng.Intn
}

// Spawner places new value-1 tiles on random empty slots.
type Spawner struct {
	newID  idgen.Generator
	choose Chooser
}

// NewSpawner creates a spawner naming tiles with newID and picking slots with choose.
func NewSpawner(newID idgen.Generator, choose Chooser) *Spawner {
	if newID == nil {
		newID = idgen.Tile
	}
	return &Spawner{newID: newID, choose: choose}
}

// Spawn returns a copy of b with one new tile on a uniformly chosen empty slot.
// The caller must guarantee an empty slot exists; Spawn panics with
// ErrBoardFull otherwise.
func (s *Spawner) Spawn(b Board) Board {
	empty := b.EmptySlots()
	if len(empty) == 0 {
		panic(ErrBoardFull)
	}
	at := empty[s.choose(len(empty))]
	return b.WithTile(at, Tile{ID: TileID(s.newID()), Value: 1})
}
