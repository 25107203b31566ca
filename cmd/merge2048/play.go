package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/merge2048/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start an interactive session.

Controls:
  Arrows/WASD/hjkl  - Slide tiles
  U/Backspace       - Undo the last move
  R                 - Start a new session
  ?                 - Show all keys
  Q/Ctrl+C          - Quit

Logs are discarded unless --log-file is set, so they do not
garble the board.

Examples:
  merge2048 play
  merge2048 play --size 6 --seed 7
  merge2048 play --log-file /tmp/merge2048.log --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store := openJournal(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	return tui.Run(runtimeConfig(cfg, width, height), recorder(store), logger)
}
