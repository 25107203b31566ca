package engine

// Snapshot is one immutable board state plus its position in move history.
// Snapshots form a persistent singly-linked chain: appending never touches
// existing links, so a renderer may keep reading an older snapshot while
// newer ones are created.
type Snapshot struct {
	board    Board
	depth    int
	previous *Snapshot
}

// NewSnapshot starts a history chain at depth 0.
func NewSnapshot(b Board) *Snapshot {
	return &Snapshot{board: b}
}

// Append returns a new snapshot holding b, linked to s.
func (s *Snapshot) Append(b Board) *Snapshot {
	return &Snapshot{
		board:    b,
		depth:    s.depth + 1,
		previous: s,
	}
}

// Undo returns the previous snapshot, or s itself at the start of the chain.
func (s *Snapshot) Undo() *Snapshot {
	if s.previous == nil {
		return s
	}
	return s.previous
}

// Board returns the board held by s.
func (s *Snapshot) Board() Board {
	return s.board
}

// Depth returns the number of moves since the chain was started.
func (s *Snapshot) Depth() int {
	return s.depth
}

// Previous returns the snapshot before s, nil at the start of the chain.
func (s *Snapshot) Previous() *Snapshot {
	return s.previous
}
