package main

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/merge2048/internal/engine"
	"github.com/vovakirdan/merge2048/internal/idgen"
	"github.com/vovakirdan/merge2048/internal/storage"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// cornerSession starts with a single 2 in the top-left corner and always
// spawns into the first empty slot.
func cornerSession(t *testing.T) *engine.Session {
	t.Helper()
	b, err := engine.FromValues([][]int{
		{1, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	}, idgen.Sequence("a"))
	if err != nil {
		t.Fatalf("FromValues() failed: %v", err)
	}
	s, err := engine.NewSession(
		engine.WithInitialBoard(b),
		engine.WithIDGenerator(idgen.Sequence("s")),
		engine.WithChooser(func(int) int { return 0 }),
	)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s
}

func TestApplyMoves(t *testing.T) {
	var out bytes.Buffer
	s := cornerSession(t)

	if err := applyMoves(&out, s, []string{"right", "LEFT"}, nil, discardLogger()); err != nil {
		t.Fatalf("applyMoves() failed: %v", err)
	}

	// right: 2 slides to (2,0), spawn at (0,0).
	// left: both 2s merge into a 4 at (0,0), spawn at (1,0).
	want := "4 2 .\n. . .\n. . .\nmoves: 2  sum: 6  max: 4\n"
	if out.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", out.String(), want)
	}
}

func TestApplyMovesUndo(t *testing.T) {
	var out bytes.Buffer
	s := cornerSession(t)

	if err := applyMoves(&out, s, []string{"right", "undo", "undo"}, nil, discardLogger()); err != nil {
		t.Fatalf("applyMoves() failed: %v", err)
	}
	if !strings.HasSuffix(out.String(), "moves: 0  sum: 2  max: 2\n") {
		t.Errorf("output = %q", out.String())
	}
}

func TestApplyMovesInvalid(t *testing.T) {
	var out bytes.Buffer
	s := cornerSession(t)

	err := applyMoves(&out, s, []string{"right", "sideways"}, nil, discardLogger())
	if !errors.Is(err, engine.ErrInvalidMoveKind) {
		t.Fatalf("applyMoves() error = %v, want ErrInvalidMoveKind", err)
	}
	if s.MoveCount() != 0 {
		t.Errorf("moves applied before the invalid name: %d", s.MoveCount())
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be printed on error, got %q", out.String())
	}
}

func TestApplyMovesRecordsJournal(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	var out bytes.Buffer
	if err := applyMoves(&out, cornerSession(t), []string{"right", "right", "undo"}, store, discardLogger()); err != nil {
		t.Fatalf("applyMoves() failed: %v", err)
	}

	records, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("sessions = %d, want 1", len(records))
	}
	r := records[0]
	if r.Origin != "apply" || r.BoardSize != 3 {
		t.Errorf("record = %+v", r)
	}
	moves, err := store.SessionMoves(r.ID)
	if err != nil {
		t.Fatalf("SessionMoves() failed: %v", err)
	}
	if len(moves) != 3 {
		t.Fatalf("move events = %d, want 3", len(moves))
	}
	if r.Open() {
		t.Error("apply should end its journal session")
	}
}

func TestFormatBoard(t *testing.T) {
	b, err := engine.FromValues([][]int{
		{1, 0},
		{10, 3},
	}, idgen.Sequence("f"))
	if err != nil {
		t.Fatalf("FromValues() failed: %v", err)
	}

	want := "   2    .\n1024    8\n"
	if got := formatBoard(b); got != want {
		t.Errorf("formatBoard() =\n%q\nwant\n%q", got, want)
	}
}
