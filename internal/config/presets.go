package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vovakirdan/woods/internal/core"
	"github.com/vovakirdan/woods/internal/sim"
)

// presetAliases maps the classroom grade numbers onto preset IDs.
var presetAliases = map[string]string{
	"1":   "k2",
	"k-2": "k2",
	"2":   "3-5",
	"3":   "6-8",
}

// Overrides are user-supplied values layered on top of a preset.
// Zero values keep the preset's choice.
type Overrides struct {
	Width   int
	Height  int
	Players int
	Policy  string
	Starts  []core.Point // Explicit start cells; sets the player count
	Seed    int64
	Cascade bool
}

// PresetInfo describes a preset for listings.
type PresetInfo struct {
	ID string
	Preset
}

// PresetIDs lists the configured presets, sorted by ID.
func (c Config) PresetIDs() []PresetInfo {
	out := make([]PresetInfo, 0, len(c.Presets))
	for id, p := range c.Presets {
		out = append(out, PresetInfo{ID: id, Preset: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Preset looks up a preset by ID or grade alias. An empty ID selects the default.
func (c Config) Preset(id string) (string, Preset, error) {
	key := strings.ToLower(strings.TrimSpace(id))
	if key == "" {
		key = c.DefaultPreset
	}
	if alias, ok := presetAliases[key]; ok {
		key = alias
	}
	p, ok := c.Presets[key]
	if !ok {
		return "", Preset{}, fmt.Errorf("config: unknown preset %q", id)
	}
	return key, p, nil
}

// BuildRun resolves a preset plus overrides into a run configuration.
// Grid size and player count are clamped to Limits; explicit start cells
// are passed through unchanged so the simulation can reject bad ones.
func (c Config) BuildRun(presetID string, ov Overrides) (sim.RunConfig, error) {
	id, p, err := c.Preset(presetID)
	if err != nil {
		return sim.RunConfig{}, err
	}

	policy := p.Policy
	if ov.Policy != "" {
		if !p.ChoosePolicy {
			return sim.RunConfig{}, fmt.Errorf("config: preset %q does not allow choosing a policy", id)
		}
		policy = ov.Policy
	}

	l := c.Limits
	width, height := p.Grid.Width, p.Grid.Height
	if ov.Width > 0 {
		width = core.Clamp(ov.Width, l.MinGrid, l.MaxGrid)
	}
	if ov.Height > 0 {
		height = core.Clamp(ov.Height, l.MinGrid, l.MaxGrid)
	}
	grid := core.Grid{W: width, H: height}

	starts := ov.Starts
	if len(starts) == 0 {
		players := p.Players
		if ov.Players > 0 {
			players = core.Clamp(ov.Players, l.MinPlayers, l.MaxPlayers)
		}
		starts = p.Layout.Starts(grid, players)
	}

	palette := c.Colors()
	colors := make([]core.Color, len(starts))
	for i := range colors {
		colors[i] = core.PaletteColor(palette, i)
	}

	return sim.RunConfig{
		Grid:            grid,
		Starts:          starts,
		Colors:          colors,
		Policy:          policy,
		HistoryCapacity: c.HistoryCapacity,
		CascadeMerges:   ov.Cascade,
		Seed:            ov.Seed,
	}, nil
}

// Starts places n agents on grid according to the layout.
func (l Layout) Starts(grid core.Grid, n int) []core.Point {
	out := make([]core.Point, n)
	switch l {
	case LayoutCorners:
		corners := []core.Point{
			core.Pt(0, 0),
			grid.Corner(),
			core.Pt(grid.W-1, 0),
			core.Pt(0, grid.H-1),
		}
		for i := range out {
			out[i] = corners[i%len(corners)]
		}
	default:
		for i := range out {
			out[i] = core.Pt(i*(grid.W/n), i*(grid.H/n))
		}
	}
	return out
}
