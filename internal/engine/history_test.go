package engine

import "testing"

func TestSnapshotAppendUndo(t *testing.T) {
	root := NewSnapshot(NewBoard(4))
	if root.Depth() != 0 || root.Previous() != nil {
		t.Fatalf("root depth=%d previous=%v", root.Depth(), root.Previous())
	}

	b1 := NewBoard(4).WithTile(Coord{}, Tile{ID: "a", Value: 1})
	s1 := root.Append(b1)
	if s1.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", s1.Depth())
	}
	if s1.Previous() != root {
		t.Error("Append should link to the receiver")
	}
	if !s1.Board().Equal(b1) {
		t.Error("Append should hold the given board")
	}

	if s1.Undo() != root {
		t.Error("Undo should return the previous snapshot")
	}
	if root.Board().Count() != 0 {
		t.Error("Append mutated the previous snapshot")
	}
}

func TestSnapshotUndoAtRoot(t *testing.T) {
	root := NewSnapshot(NewBoard(4))
	if root.Undo() != root {
		t.Error("Undo at the root should return the root")
	}
}

func TestSnapshotBranching(t *testing.T) {
	root := NewSnapshot(NewBoard(3))
	a := root.Append(NewBoard(3))
	b := root.Append(NewBoard(3))

	if a.Previous() != root || b.Previous() != root {
		t.Error("both branches should share the root")
	}
	if a.Depth() != b.Depth() {
		t.Error("sibling snapshots should have the same depth")
	}
}
