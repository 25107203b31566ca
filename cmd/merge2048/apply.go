package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/merge2048/internal/engine"
	"github.com/vovakirdan/merge2048/internal/idgen"
	"github.com/vovakirdan/merge2048/internal/platform/tui"
	"github.com/vovakirdan/merge2048/internal/storage"
)

var flagRecord bool

var applyCmd = &cobra.Command{
	Use:   "apply <move>...",
	Short: "Apply moves headlessly and print the board",
	Long: `Create a session, apply the given moves in order and print the
resulting board and move count.

Moves are up, down, left, right and undo (case-insensitive). An unknown
move name fails before any move is applied.

Examples:
  merge2048 apply --seed 42 left up right
  merge2048 apply --seed 42 left undo down
  merge2048 apply --size 3 --record right right`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the session in the journal")
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	var journal tui.Recorder
	if flagRecord {
		store := openJournal(cfg, logger)
		if store != nil {
			defer store.Close()
			journal = store
		}
	}

	session, err := engine.NewSession(
		engine.WithSize(cfg.Board.Size),
		engine.WithInitialTiles(cfg.Board.InitialTiles),
		engine.WithSeed(cfg.Play.Seed),
		engine.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	return applyMoves(cmd.OutOrStdout(), session, args, journal, logger)
}

// applyMoves parses every move name, applies them to session in order and
// prints the final board. Nothing is applied when a name is invalid.
func applyMoves(w io.Writer, session *engine.Session, names []string, journal tui.Recorder, logger *log.Logger) error {
	moves := make([]engine.Move, len(names))
	for i, name := range names {
		m, err := engine.ParseMove(name)
		if err != nil {
			return err
		}
		moves[i] = m
	}

	id := idgen.New()
	size := session.CurrentBoard().Size()
	if journal != nil {
		if err := journal.BeginSession(id, "apply", size); err != nil {
			logger.Warn("journal: cannot begin session", "error", err)
		}
	}

	for _, m := range moves {
		before := session.Current()
		if err := session.ApplyMove(m); err != nil {
			return err
		}
		if journal != nil {
			ev := storage.MoveEvent{
				SessionID:  id,
				Move:       strings.ToLower(m.String()),
				DepthAfter: session.MoveCount(),
				Changed:    session.Current() != before,
			}
			if err := journal.RecordMove(ev); err != nil {
				logger.Warn("journal: cannot record move", "error", err)
			}
		}
	}

	board := session.CurrentBoard()
	if journal != nil {
		if err := journal.EndSession(id, board.Sum(), board.MaxDisplay()); err != nil {
			logger.Warn("journal: cannot end session", "error", err)
		}
	}

	fmt.Fprint(w, formatBoard(board))
	fmt.Fprintf(w, "moves: %d  sum: %d  max: %d\n", session.MoveCount(), board.Sum(), board.MaxDisplay())
	return nil
}

// formatBoard renders displayed tile values in right-aligned columns, "." for empty slots.
func formatBoard(b engine.Board) string {
	rows := b.Values()

	width := 1
	for _, row := range rows {
		for _, v := range row {
			if v > 0 {
				width = max(width, len(strconv.Itoa(1<<v)))
			}
		}
	}

	var sb strings.Builder
	for _, row := range rows {
		for x, v := range row {
			if x > 0 {
				sb.WriteByte(' ')
			}
			label := "."
			if v > 0 {
				label = strconv.Itoa(1 << v)
			}
			fmt.Fprintf(&sb, "%*s", width, label)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
