package core

import "time"

// RuntimeConfig contains settings the host passes to the simulation driver.
type RuntimeConfig struct {
	GridW     int           // Grid width in cells
	GridH     int           // Grid height in cells
	TurnDelay time.Duration // Pause between turns for paced hosts
	Seed      int64         // RNG seed for deterministic runs
	MaxTurns  int           // Turn cap for headless runs (0 = unlimited)
	ScreenW   int           // Terminal width for paced hosts
	ScreenH   int           // Terminal height for paced hosts
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		GridW:     5,
		GridH:     5,
		TurnDelay: time.Second,
		Seed:      0, // 0 means use current time in the host
		MaxTurns:  100000,
		ScreenW:   80,
		ScreenH:   24,
	}
}

// Grid returns the configured grid bounds.
func (c RuntimeConfig) Grid() Grid {
	return Grid{W: c.GridW, H: c.GridH}
}
