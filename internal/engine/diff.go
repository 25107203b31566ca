package engine

// TransitionKind classifies how a tile reached its slot.
type TransitionKind int

const (
	// TransitionSlid means the tile kept its id; From may equal To.
	TransitionSlid TransitionKind = iota
	// TransitionMerged means the tile was built from two tiles of the previous board.
	TransitionMerged
	// TransitionSpawned means the tile has no source on the previous board.
	TransitionSpawned
)

// String returns a short name for the kind.
func (k TransitionKind) String() string {
	switch k {
	case TransitionSlid:
		return "slid"
	case TransitionMerged:
		return "merged"
	case TransitionSpawned:
		return "spawned"
	default:
		return "unknown"
	}
}

// Transition describes where one tile of the next board came from.
type Transition struct {
	Kind TransitionKind
	Tile Tile
	To   Coord
	// From is the previous slot of the tile, or of the sink for a merge.
	From Coord
	// SacrificeFrom is the previous slot of the sacrifice; merges only.
	SacrificeFrom Coord
}

// Diff matches tile ids between two boards of the same size and reports one
// transition per tile of next, in row-major order of next.
//
// A merged tile whose sources are not both on prev (as after an undo) is
// reported as spawned.
func Diff(prev, next Board) []Transition {
	var out []Transition
	for _, pt := range next.Tiles() {
		tr := Transition{Tile: pt.Tile, To: pt.At, From: pt.At, Kind: TransitionSpawned}

		if from, ok := prev.Find(pt.ID); ok {
			tr.Kind = TransitionSlid
			tr.From = from
		} else if pt.Parents != nil {
			sinkAt, okSink := prev.Find(pt.Parents.Sink)
			sacAt, okSac := prev.Find(pt.Parents.Sacrifice)
			if okSink && okSac {
				tr.Kind = TransitionMerged
				tr.From = sinkAt
				tr.SacrificeFrom = sacAt
			}
		}
		out = append(out, tr)
	}
	return out
}
