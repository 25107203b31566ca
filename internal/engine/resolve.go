package engine

import (
	"github.com/vovakirdan/merge2048/internal/idgen"
)

// Resolver computes the board that follows a movement move.
// Apart from the ids it allocates for merged tiles, Resolve is a pure function.
type Resolver struct {
	newID idgen.Generator
}

// NewResolver creates a resolver that names merged tiles with newID.
func NewResolver(newID idgen.Generator) *Resolver {
	if newID == nil {
		newID = idgen.Tile
	}
	return &Resolver{newID: newID}
}

// Resolve slides, merges and slides again every line of b toward the
// bound of m. A tile merges at most once per move.
//
// If no tile changes position or value the input board is returned as is,
// so callers can detect a no-op move with Board.Equal.
func (r *Resolver) Resolve(m Move, b Board) (Board, error) {
	rule, err := ruleFor(m)
	if err != nil {
		return Board{}, err
	}

	next := NewBoard(b.size)
	for s := range b.size {
		line := readLine(b, rule, s)
		line = compact(line)
		r.merge(line)
		line = compact(line)
		writeLine(next, rule, s, line)
	}

	if next.Equal(b) {
		return b, nil
	}
	return next, nil
}

// readLine returns the tiles of one line ordered from the bound outward.
func readLine(b Board, rule moveRule, secondary int) []Tile {
	bound := rule.bound(b.size)
	line := make([]Tile, b.size)
	for k := range b.size {
		line[k] = b.slots[b.index(rule.coord(bound-rule.sign*k, secondary))]
	}
	return line
}

// writeLine stores a line ordered from the bound outward into a board
// that has not been handed out yet.
func writeLine(b Board, rule moveRule, secondary int, line []Tile) {
	bound := rule.bound(b.size)
	for k, t := range line {
		b.slots[b.index(rule.coord(bound-rule.sign*k, secondary))] = t
	}
}

// compact packs the occupied tiles of a line against the bound, keeping
// their order. The frontier only ever moves away from the bound.
func compact(line []Tile) []Tile {
	packed := make([]Tile, len(line))
	frontier := 0
	for _, t := range line {
		if t.Empty() {
			continue
		}
		packed[frontier] = t
		frontier++
	}
	return packed
}

// merge walks a compacted line once from the bound outward. The sink keeps
// its slot under a new id, the sacrifice slot is emptied. A merged tile is
// never compared again because the walk only moves forward.
func (r *Resolver) merge(line []Tile) {
	for k := 0; k+1 < len(line); k++ {
		sink, sacrifice := line[k], line[k+1]
		if sink.Empty() || sacrifice.Empty() || sink.Value != sacrifice.Value {
			continue
		}
		line[k] = Tile{
			ID:      TileID(r.newID()),
			Value:   sink.Value + 1,
			Parents: &Provenance{Sink: sink.ID, Sacrifice: sacrifice.ID},
		}
		line[k+1] = Tile{}
		k++
	}
}
