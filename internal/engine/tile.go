package engine

// TileID identifies a tile across moves. Renderers key animations on it.
type TileID string

// Provenance records the two tiles a merged tile was built from.
type Provenance struct {
	Sink      TileID // the tile nearer the travel bound
	Sacrifice TileID // the tile removed by the merge
}

// Tile is a numbered tile on the board.
// Value is a power-of-two exponent (displayed value is 2^Value).
// The zero Tile denotes an empty slot.
type Tile struct {
	ID      TileID
	Value   int
	Parents *Provenance // nil unless the tile was produced by a merge
}

// Empty reports whether the slot holding t is empty.
func (t Tile) Empty() bool {
	return t.Value == 0
}

// Display returns the value shown to the player.
func (t Tile) Display() int {
	if t.Empty() {
		return 0
	}
	return 1 << t.Value
}

// Merged reports whether t was produced by a merge.
func (t Tile) Merged() bool {
	return t.Parents != nil
}
