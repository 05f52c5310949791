package policies

import (
	"github.com/vovakirdan/woods/internal/core"
	"github.com/vovakirdan/woods/internal/registry"
)

// Random picks one of the four directions uniformly. A move that would
// leave the grid is dropped and the group stays put for the turn.
type Random struct{}

// ID returns the policy identifier.
func (Random) ID() string { return IDRandom }

// Title returns the display name.
func (Random) Title() string { return "Random" }

// Next draws a direction and applies it when it stays in bounds.
func (Random) Next(leader registry.Leader, grid core.Grid, rng registry.Rand) core.Point {
	d := core.Directions[rng.Intn(len(core.Directions))]
	next := leader.Pos.Add(d.Delta())
	if !grid.Contains(next) {
		return leader.Pos
	}
	return next
}
