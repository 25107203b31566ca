// Package config provides YAML-based configuration loading for merge2048.
package config

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Config is the complete program configuration.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Play    PlayConfig    `yaml:"play"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// BoardConfig defines the board every new session starts with.
type BoardConfig struct {
	Size         int `yaml:"size"`
	InitialTiles int `yaml:"initial_tiles"`
}

// PlayConfig defines interactive play parameters.
type PlayConfig struct {
	TickRate int   `yaml:"tick_rate"` // Animation ticks per second
	Seed     int64 `yaml:"seed"`      // 0 = time based
	Animate  bool  `yaml:"animate"`
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// StorageConfig defines the session journal database.
type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

// LogConfig defines logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

const maxBoardSize = 16

// Validate checks that the configuration describes a playable setup.
func (c Config) Validate() error {
	if c.Board.Size < 2 || c.Board.Size > maxBoardSize {
		return fmt.Errorf("config: board.size %d out of range [2, %d]", c.Board.Size, maxBoardSize)
	}
	if n := c.Board.InitialTiles; n < 1 || n > c.Board.Size*c.Board.Size {
		return fmt.Errorf("config: board.initial_tiles %d out of range [1, %d]", n, c.Board.Size*c.Board.Size)
	}
	if c.Play.TickRate <= 0 {
		return fmt.Errorf("config: play.tick_rate must be positive, got %d", c.Play.TickRate)
	}
	if c.Storage.Enabled && c.Storage.DBPath == "" {
		return fmt.Errorf("config: storage.db_path is required when storage is enabled")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	return nil
}
