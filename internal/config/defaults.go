package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/merge2048.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded default configuration.
// It matches defaults/merge2048.yaml.
func DefaultConfig() Config {
	return Config{
		Board: BoardConfig{
			Size:         4,
			InitialTiles: 2,
		},
		Play: PlayConfig{
			TickRate: 60,
			Seed:     0,
			Animate:  true,
		},
		Server: ServerConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
		Storage: StorageConfig{
			Enabled: true,
			DBPath:  "~/.merge2048/journal.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
