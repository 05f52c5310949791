package policies

import (
	"github.com/vovakirdan/woods/internal/core"
	"github.com/vovakirdan/woods/internal/registry"
)

// BiasedUnexplored prefers neighbors the leader has not visited recently.
// When every neighbor is in the history it falls back to any valid
// neighbor; a cell with no neighbors (1x1 grid) keeps the group in place.
type BiasedUnexplored struct{}

// ID returns the policy identifier.
func (BiasedUnexplored) ID() string { return IDBiasedUnexplored }

// Title returns the display name.
func (BiasedUnexplored) Title() string { return "Biased Unexplored" }

// AlwaysMoves is true whenever the grid has a neighbor to step to.
func (BiasedUnexplored) AlwaysMoves(grid core.Grid) bool {
	return grid.Cells() > 1
}

// Next chooses uniformly among unexplored neighbors, else among all neighbors.
func (BiasedUnexplored) Next(leader registry.Leader, grid core.Grid, rng registry.Rand) core.Point {
	valid := grid.Neighbors(leader.Pos)
	if len(valid) == 0 {
		return leader.Pos
	}

	candidates := Unexplored(leader, valid)
	if len(candidates) == 0 {
		candidates = valid
	}
	return candidates[rng.Intn(len(candidates))]
}

// Unexplored filters cells down to those absent from the leader's history.
func Unexplored(leader registry.Leader, cells []core.Point) []core.Point {
	out := make([]core.Point, 0, len(cells))
	for _, c := range cells {
		if !leader.Visited(c) {
			out = append(out, c)
		}
	}
	return out
}
