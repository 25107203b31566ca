package core

// RuntimeConfig contains what a host passes to a play session at start.
type RuntimeConfig struct {
	ScreenW      int   // Screen width in characters
	ScreenH      int   // Screen height in characters
	TickRate     int   // Animation ticks per second
	Seed         int64 // RNG seed for spawn positions, 0 = time based
	BoardSize    int   // Board dimension
	InitialTiles int   // Tiles on the first snapshot
	Animate      bool  // Whether to animate tile transitions
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		TickRate:     60,
		Seed:         0,
		BoardSize:    4,
		InitialTiles: 2,
		Animate:      true,
	}
}
