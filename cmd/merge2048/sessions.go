package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/merge2048/internal/config"
	"github.com/vovakirdan/merge2048/internal/idgen"
	"github.com/vovakirdan/merge2048/internal/platform/tui"
	"github.com/vovakirdan/merge2048/internal/storage"
)

// errJournalDisabled is returned when storage is switched off in the config.
var errJournalDisabled = errors.New("the session journal is disabled (storage.enabled: false)")

var (
	flagPlain     bool
	flagLimit     int
	flagSessionID string
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Browse the session journal",
	Long: `List journaled sessions, newest first.

Opens an interactive table when stdout is a terminal; press enter on a
session to see its moves. Use --plain (or pipe the output) for a text table,
and --id to print the moves of one session.

Examples:
  merge2048 sessions
  merge2048 sessions --plain --limit 5
  merge2048 sessions --id 0190a5e2-7b3c-7d4e-8f60-123456789abc
  merge2048 sessions --db ./journal.db`,
	Args: cobra.NoArgs,
	RunE: runSessions,
}

func init() {
	sessionsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain text table")
	sessionsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of sessions in plain output")
	sessionsCmd.Flags().StringVar(&flagSessionID, "id", "", "Print the moves of this session")
}

func runSessions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := openSessionsStore(cfg)
	if errors.Is(err, errJournalDisabled) {
		fmt.Fprintln(cmd.OutOrStdout(), "No journal: "+err.Error()+".")
		return nil
	}
	if err != nil {
		return err
	}
	defer store.Close()

	if flagSessionID != "" {
		return printSessionMoves(cmd.OutOrStdout(), store, flagSessionID)
	}

	if !flagPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		return tui.RunJournal(store, width, height)
	}

	records, err := store.RecentSessions(flagLimit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No sessions recorded yet.")
		return nil
	}

	summary, err := store.Summary()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, tui.PlainSessions(records))
	fmt.Fprintf(out, "%d sessions, %d moves, %d undos, best tile %d\n",
		summary.Sessions, summary.TotalMoves, summary.TotalUndos, summary.BestTile)
	return nil
}

// openSessionsStore opens the journal for reading. It never creates a
// database when storage is disabled.
func openSessionsStore(cfg config.Config) (*storage.Store, error) {
	if !cfg.Storage.Enabled {
		return nil, errJournalDisabled
	}
	return storage.Open(cfg.Storage.DBPath)
}

// printSessionMoves prints one line per journaled move of a session.
func printSessionMoves(w io.Writer, store *storage.Store, rawID string) error {
	id, err := idgen.Parse(rawID)
	if err != nil {
		return err
	}

	moves, err := store.SessionMoves(id)
	if err != nil {
		return err
	}
	if len(moves) == 0 {
		return fmt.Errorf("no moves recorded for session %s", id)
	}

	for _, ev := range moves {
		status := "changed"
		if !ev.Changed {
			status = "no-op"
		}
		fmt.Fprintf(w, "%4d  %-6s  depth %-4d  %s\n", ev.Seq, ev.Move, ev.DepthAfter, status)
	}
	return nil
}
