// Package config provides YAML-based simulation settings and the
// grade-level presets that turn them into run configurations.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/woods/internal/core"
)

// Config contains all settings for the simulation host.
type Config struct {
	DefaultPreset   string            `yaml:"default_preset"`
	HistoryCapacity int               `yaml:"history_capacity"`
	MaxTurns        int               `yaml:"max_turns"`
	TurnDelay       time.Duration     `yaml:"turn_delay"`
	Limits          Limits            `yaml:"limits"`
	Palette         []string          `yaml:"palette"` // "#rrggbb"
	Presets         map[string]Preset `yaml:"presets"`
}

// Limits bound user-supplied values, mirroring the classroom menu.
type Limits struct {
	MinGrid      int           `yaml:"min_grid"`
	MaxGrid      int           `yaml:"max_grid"`
	MinPlayers   int           `yaml:"min_players"`
	MaxPlayers   int           `yaml:"max_players"`
	MaxTurnDelay time.Duration `yaml:"max_turn_delay"`
	DelayStep    time.Duration `yaml:"delay_step"`
}

// GridSize is a preset's board size.
type GridSize struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Layout decides where agents start.
type Layout string

const (
	LayoutCorners  Layout = "corners"  // Opposite corners, cycling through all four
	LayoutDiagonal Layout = "diagonal" // i*(W/N), i*(H/N)
)

// Preset is a grade-level bundle of defaults.
type Preset struct {
	Title        string   `yaml:"title"`
	Grid         GridSize `yaml:"grid"`
	Players      int      `yaml:"players"`
	Layout       Layout   `yaml:"layout"`
	Policy       string   `yaml:"policy"`
	ChoosePolicy bool     `yaml:"choose_policy"` // Whether the policy may be overridden
}

// Colors parses the palette, skipping malformed entries.
func (c Config) Colors() []core.Color {
	out := make([]core.Color, 0, len(c.Palette))
	for _, s := range c.Palette {
		col, err := ParseColor(s)
		if err != nil {
			continue
		}
		out = append(out, col)
	}
	if len(out) == 0 {
		return core.DefaultPalette
	}
	return out
}

// ParseColor parses "#rrggbb".
func ParseColor(s string) (core.Color, error) {
	var r, g, b uint8
	if len(s) != 7 {
		return core.Color{}, fmt.Errorf("config: bad color %q", s)
	}
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return core.Color{}, fmt.Errorf("config: bad color %q: %w", s, err)
	}
	return core.Color{R: r, G: g, B: b}, nil
}

// ClampDelay keeps a turn delay within [0, MaxTurnDelay].
func (l Limits) ClampDelay(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if l.MaxTurnDelay > 0 && d > l.MaxTurnDelay {
		return l.MaxTurnDelay
	}
	return d
}

// StepDelay moves d by n delay steps (negative n shortens it) and clamps.
func (l Limits) StepDelay(d time.Duration, n int) time.Duration {
	return l.ClampDelay(d + time.Duration(n)*l.DelayStep)
}

// Runtime returns the runtime settings for a host built from this config.
func (c Config) Runtime(grid core.Grid, seed int64) core.RuntimeConfig {
	rt := core.DefaultConfig()
	rt.GridW = grid.W
	rt.GridH = grid.H
	rt.TurnDelay = c.Limits.ClampDelay(c.TurnDelay)
	rt.Seed = seed
	rt.MaxTurns = c.MaxTurns
	return rt
}
