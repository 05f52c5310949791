package policies

import (
	"github.com/vovakirdan/woods/internal/core"
	"github.com/vovakirdan/woods/internal/registry"
)

// RandomValid picks a direction uniformly and bounces off walls: when the
// chosen move exits the grid the group moves the opposite way instead.
// On a 1-wide axis the bounce also exits, so the group stays put.
type RandomValid struct{}

// ID returns the policy identifier.
func (RandomValid) ID() string { return IDRandomValid }

// Title returns the display name.
func (RandomValid) Title() string { return "Random Valid" }

// AlwaysMoves is true once both axes are at least 2 cells wide; below that
// a bounce can leave the group in place.
func (RandomValid) AlwaysMoves(grid core.Grid) bool {
	return grid.W >= 2 && grid.H >= 2
}

// Next draws a direction, reflecting it at the grid edge.
func (RandomValid) Next(leader registry.Leader, grid core.Grid, rng registry.Rand) core.Point {
	d := core.Directions[rng.Intn(len(core.Directions))]
	if next := leader.Pos.Add(d.Delta()); grid.Contains(next) {
		return next
	}
	if bounced := leader.Pos.Add(d.Opposite().Delta()); grid.Contains(bounced) {
		return bounced
	}
	return leader.Pos
}
