// Package sim contains the group-formation engine: agents wander a grid,
// merge into groups when they meet, and the run ends once a single group
// remains. It has no knowledge of rendering, timing or persistence.
package sim

import "github.com/vovakirdan/woods/internal/core"

// DefaultHistoryCapacity is how many recent positions an agent remembers.
const DefaultHistoryCapacity = 5

// Agent is a single wanderer on the grid.
type Agent struct {
	ID        int        // Stable identity, 1-based in creation order
	Pos       core.Point // Current cell
	MoveCount int        // Moves since the agent last met someone

	history  []core.Point // Oldest first
	capacity int
}

// NewAgent creates an agent at pos with a history holding only pos.
// A non-positive capacity selects DefaultHistoryCapacity.
func NewAgent(id int, pos core.Point, capacity int) *Agent {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	a := &Agent{
		ID:       id,
		Pos:      pos,
		capacity: capacity,
		history:  make([]core.Point, 0, capacity+1),
	}
	a.history = append(a.history, pos)
	return a
}

// RecordMove moves the agent to p, appends p to the history (evicting the
// oldest entry when full) and counts the move. Bounds are the caller's job.
func (a *Agent) RecordMove(p core.Point) {
	a.history = append(a.history, p)
	if len(a.history) > a.capacity {
		copy(a.history, a.history[1:])
		a.history = a.history[:a.capacity]
	}
	a.Pos = p
	a.MoveCount++
}

// History returns a copy of the recent positions, oldest first.
func (a *Agent) History() []core.Point {
	out := make([]core.Point, len(a.history))
	copy(out, a.history)
	return out
}

// Capacity returns the history bound.
func (a *Agent) Capacity() int {
	return a.capacity
}
