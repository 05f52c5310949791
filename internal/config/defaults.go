package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/woods.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration used when the embedded
// YAML cannot be parsed.
func DefaultConfig() Config {
	return Config{
		DefaultPreset:   "k2",
		HistoryCapacity: 5,
		MaxTurns:        100000,
		TurnDelay:       time.Second,
		Limits: Limits{
			MinGrid:      2,
			MaxGrid:      25,
			MinPlayers:   2,
			MaxPlayers:   16,
			MaxTurnDelay: 10 * time.Second,
			DelayStep:    50 * time.Millisecond,
		},
		Palette: []string{"#0000ff", "#ff0000", "#00ff00", "#ffff00"},
		Presets: map[string]Preset{
			"k2": {
				Title:   "Grades K-2",
				Grid:    GridSize{Width: 4, Height: 4},
				Players: 2,
				Layout:  LayoutCorners,
				Policy:  "random",
			},
			"3-5": {
				Title:   "Grades 3-5",
				Grid:    GridSize{Width: 5, Height: 5},
				Players: 2,
				Layout:  LayoutDiagonal,
				Policy:  "random",
			},
			"6-8": {
				Title:        "Grades 6-8",
				Grid:         GridSize{Width: 5, Height: 5},
				Players:      2,
				Layout:       LayoutDiagonal,
				Policy:       "random",
				ChoosePolicy: true,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
