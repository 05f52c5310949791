package sim

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/woods/internal/core"
)

// GroupID identifies a group. It always equals the index of the group's
// leader, i.e. its lowest member index.
type GroupID int

// Merge describes one meeting resolved by DetectAndMerge.
type Merge struct {
	A, B   int        // IDs of the two agents that met
	Group  GroupID    // Surviving group
	Pos    core.Point // Meeting cell
	Streak int        // Longer of the two move counts before reset
}

// Partition splits agents (by index) into disjoint, non-empty groups.
// Every agent stores its group through groupOf; a merge rewrites groupOf
// for the absorbed members, so there are no stale references.
type Partition struct {
	groupOf []GroupID
	members map[GroupID][]int // Sorted agent indices
}

// NewPartition puts each agent in its own group, then pre-merges agents
// that start on the same cell.
func NewPartition(agents []*Agent) *Partition {
	p := &Partition{
		groupOf: make([]GroupID, len(agents)),
		members: make(map[GroupID][]int, len(agents)),
	}
	for i := range agents {
		p.groupOf[i] = GroupID(i)
		p.members[GroupID(i)] = []int{i}
	}
	for i := range agents {
		for j := i + 1; j < len(agents); j++ {
			if agents[i].Pos == agents[j].Pos && p.groupOf[i] != p.groupOf[j] {
				p.union(p.groupOf[i], p.groupOf[j])
			}
		}
	}
	return p
}

// GroupOf returns the group holding the agent at index i.
func (p *Partition) GroupOf(i int) GroupID {
	return p.groupOf[i]
}

// LeaderOf returns the index of the group's representative agent.
// The choice is the lowest member index, which is stable across turns.
func (p *Partition) LeaderOf(g GroupID) int {
	return p.members[g][0]
}

// Members returns a copy of the member indices of g, ascending.
func (p *Partition) Members(g GroupID) []int {
	m := p.members[g]
	out := make([]int, len(m))
	copy(out, m)
	return out
}

// Groups returns all group IDs ordered by leader index.
func (p *Partition) Groups() []GroupID {
	out := make([]GroupID, 0, len(p.members))
	for g := range p.members {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Count returns the number of groups.
func (p *Partition) Count() int {
	return len(p.members)
}

// AllMerged reports whether exactly one group remains.
// With no agents there are no groups and the run can never finish.
func (p *Partition) AllMerged() bool {
	return len(p.members) == 1
}

// union folds the higher group into the lower one and returns the survivor.
func (p *Partition) union(a, b GroupID) GroupID {
	if a == b {
		return a
	}
	if b < a {
		a, b = b, a
	}
	for _, i := range p.members[b] {
		p.groupOf[i] = a
	}
	merged := append(p.members[a], p.members[b]...)
	sort.Ints(merged)
	p.members[a] = merged
	delete(p.members, b)
	return a
}

// DetectAndMerge scans agent pairs in order and merges the groups of the
// first pair found sharing a cell while in different groups. Both agents'
// move counts are reset and the longer streak is reported to stats (which
// may be nil). At most one merge happens per call.
func (p *Partition) DetectAndMerge(agents []*Agent, stats *Statistics) (Merge, bool) {
	for i := range agents {
		for j := i + 1; j < len(agents); j++ {
			a, b := agents[i], agents[j]
			if a.Pos != b.Pos || p.groupOf[i] == p.groupOf[j] {
				continue
			}

			streak := max(a.MoveCount, b.MoveCount)
			if stats != nil {
				stats.ObserveMeeting(a.MoveCount, b.MoveCount)
			}
			a.MoveCount = 0
			b.MoveCount = 0

			g := p.union(p.groupOf[i], p.groupOf[j])
			return Merge{A: a.ID, B: b.ID, Group: g, Pos: a.Pos, Streak: streak}, true
		}
	}
	return Merge{}, false
}

// Check verifies the partition and co-location invariants against agents.
func (p *Partition) Check(agents []*Agent) error {
	if len(p.groupOf) != len(agents) {
		return fmt.Errorf("sim: partition tracks %d agents, have %d", len(p.groupOf), len(agents))
	}
	seen := make([]bool, len(agents))
	for g, members := range p.members {
		if len(members) == 0 {
			return fmt.Errorf("sim: group %d is empty", g)
		}
		if GroupID(members[0]) != g {
			return fmt.Errorf("sim: group %d led by agent index %d", g, members[0])
		}
		pos := agents[members[0]].Pos
		for _, i := range members {
			if seen[i] {
				return fmt.Errorf("sim: agent %d in more than one group", agents[i].ID)
			}
			seen[i] = true
			if p.groupOf[i] != g {
				return fmt.Errorf("sim: agent %d points at group %d, listed in %d", agents[i].ID, p.groupOf[i], g)
			}
			if agents[i].Pos != pos {
				return fmt.Errorf("sim: group %d split between %v and %v", g, pos, agents[i].Pos)
			}
		}
	}
	for i, ok := range seen {
		if !ok {
			return fmt.Errorf("sim: agent %d belongs to no group", agents[i].ID)
		}
	}
	return nil
}

// AllColocated reports whether every agent stands on the same cell.
// It is false for an empty agent set.
func AllColocated(agents []*Agent) bool {
	if len(agents) == 0 {
		return false
	}
	first := agents[0].Pos
	for _, a := range agents[1:] {
		if a.Pos != first {
			return false
		}
	}
	return true
}
