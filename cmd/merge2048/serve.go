package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/merge2048/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own independent session with its own
undo history. All sessions share the server's journal.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.merge2048/host_key

Examples:
  merge2048 serve                           # Listen on :23234 with auto-generated key
  merge2048 serve --ssh :2222               # Listen on port 2222
  merge2048 serve --host-key ./my_host_key  # Use specific host key
  merge2048 serve --idle-timeout 5m         # Drop idle players sooner

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH listen address (default from config, :23234)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to SSH host key (auto-generated if not exists)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle connection timeout (default from config, 30m)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	if flagChanged(cmd, "ssh") {
		cfg.Server.Address = flagSSHAddr
	}
	if flagChanged(cmd, "host-key") {
		cfg.Server.HostKey = flagHostKey
	}
	if flagChanged(cmd, "idle-timeout") {
		cfg.Server.IdleTimeout = flagIdleTimeout
	}

	store := openJournal(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     cfg.Server.Address,
		HostKeyPath: cfg.Server.HostKey,
		IdleTimeout: cfg.Server.IdleTimeout,
		Play:        runtimeConfig(cfg, 80, 24),
	}, recorder(store), logger)
	if err != nil {
		return err
	}

	return server.ListenAndServe()
}
