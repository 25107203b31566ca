// merge2048 is a sliding-tile merge puzzle for the terminal.
//
// Usage:
//
//	merge2048 play               - Play in the terminal
//	merge2048 serve              - Start SSH server for remote play
//	merge2048 apply <move>...    - Apply moves headlessly and print the board
//	merge2048 sessions           - Browse the session journal
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.merge2048, ./configs)
//	--size <n>          - Board size (default: 4)
//	--seed <value>      - Set RNG seed for reproducible spawns
//	--db <path>         - Set journal database path (default: ~/.merge2048/journal.db)
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/merge2048/internal/config"
	"github.com/vovakirdan/merge2048/internal/core"
	"github.com/vovakirdan/merge2048/internal/platform/tui"
	"github.com/vovakirdan/merge2048/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagSize     int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "merge2048",
	Short: "merge2048 - slide and merge tiles in your terminal",
	Long: `merge2048 is a 2048-style sliding tile puzzle with unlimited undo.

Available commands:
  play      - Play in the terminal
  serve     - Start SSH server for remote play
  apply     - Apply moves headlessly and print the result
  sessions  - Browse the session journal

Examples:
  merge2048 play
  merge2048 play --size 5
  merge2048 serve --ssh :2222
  merge2048 apply --seed 42 left up right
  merge2048 sessions --plain`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagSize, "size", 0, "Board size (default from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to session journal database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(sessionsCmd)
}

// loadConfig loads the config file and applies global flags set on the command line.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagChanged(cmd, "size") {
		cfg.Board.Size = flagSize
		if cfg.Board.InitialTiles > flagSize*flagSize {
			cfg.Board.InitialTiles = config.DefaultConfig().Board.InitialTiles
		}
	}
	if flagChanged(cmd, "seed") {
		cfg.Play.Seed = flagSeed
	}
	if flagChanged(cmd, "db") {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagChanged(cmd, "log-level") {
		cfg.Log.Level = flagLogLevel
	}

	// Flags may have broken what the file got right.
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Changed
}

// newLogger builds the program logger. Logs go to --log-file when set,
// otherwise to fallback. The returned close function is never nil.
func newLogger(cfg config.Config, fallback io.Writer) (*log.Logger, func(), error) {
	out := fallback
	closeFn := func() {}

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, closeFn, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		closeFn()
		return nil, func() {}, err
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "merge2048",
		Level:           level,
	})
	return logger, closeFn, nil
}

// openJournal opens the session journal when storage is enabled.
// A journal that cannot be opened is logged and play continues without it.
func openJournal(cfg config.Config, logger *log.Logger) *storage.Store {
	if !cfg.Storage.Enabled {
		return nil
	}
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open session journal", "path", cfg.Storage.DBPath, "error", err)
		return nil
	}
	return store
}

// runtimeConfig converts the loaded config into what a play session needs.
func runtimeConfig(cfg config.Config, width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:      width,
		ScreenH:      height,
		TickRate:     cfg.Play.TickRate,
		Seed:         cfg.Play.Seed,
		BoardSize:    cfg.Board.Size,
		InitialTiles: cfg.Board.InitialTiles,
		Animate:      cfg.Play.Animate,
	}
}

// recorder returns store as a journal recorder, or nil without one.
func recorder(store *storage.Store) tui.Recorder {
	if store == nil {
		return nil
	}
	return store
}
