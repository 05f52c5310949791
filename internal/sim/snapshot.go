package sim

import "github.com/vovakirdan/woods/internal/core"

// AgentView is the read-only state of one agent for presenters.
type AgentView struct {
	ID         int
	Pos        core.Point
	Group      GroupID
	Leader     bool
	MoveCount  int
	Color      core.Color // The agent's own color
	GroupColor core.Color // Blend of every member's color; purple once the run completes
}

// GroupView is the read-only state of one group.
type GroupView struct {
	ID      GroupID
	Leader  int   // Agent ID of the leader
	Members []int // Agent IDs, ascending
	Pos     core.Point
	Color   core.Color
}

// Snapshot captures the complete run state for presenters and tests.
type Snapshot struct {
	Turn       int
	State      State
	Policy     string
	Grid       core.Grid
	Agents     []AgentView
	Groups     []GroupView
	Merges     int // Meetings resolved so far in this run
	LongestGap int // Longest stretch of turns between meetings in this run
}

// AllMerged reports whether the snapshot shows a single group.
func (s Snapshot) AllMerged() bool {
	return len(s.Groups) == 1
}

// Snapshot returns the current state.
func (r *Run) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	colors := make([]core.Color, len(r.agents))
	for i := range r.agents {
		colors[i] = r.agentColor(i)
	}

	groups := make([]GroupView, 0, r.part.Count())
	groupColor := make(map[GroupID]core.Color, r.part.Count())
	for _, g := range r.part.Groups() {
		members := r.part.members[g]
		ids := make([]int, len(members))
		memberColors := make([]core.Color, len(members))
		for k, i := range members {
			ids[k] = r.agents[i].ID
			memberColors[k] = colors[i]
		}
		blend := core.Blend(memberColors)
		if r.state == StateCompleted {
			blend = core.ColorPurple
		}
		groupColor[g] = blend

		leader := r.agents[r.part.LeaderOf(g)]
		groups = append(groups, GroupView{
			ID:      g,
			Leader:  leader.ID,
			Members: ids,
			Pos:     leader.Pos,
			Color:   blend,
		})
	}

	agents := make([]AgentView, len(r.agents))
	for i, a := range r.agents {
		g := r.part.GroupOf(i)
		agents[i] = AgentView{
			ID:         a.ID,
			Pos:        a.Pos,
			Group:      g,
			Leader:     r.part.LeaderOf(g) == i,
			MoveCount:  a.MoveCount,
			Color:      colors[i],
			GroupColor: groupColor[g],
		}
	}

	return Snapshot{
		Turn:       r.turn,
		State:      r.state,
		Policy:     r.cfg.Policy,
		Grid:       r.cfg.Grid,
		Agents:     agents,
		Groups:     groups,
		Merges:     r.merges,
		LongestGap: r.longestGap,
	}
}

// agentColor returns the configured color for agent index i, falling back
// to the default palette.
func (r *Run) agentColor(i int) core.Color {
	if i < len(r.cfg.Colors) {
		return r.cfg.Colors[i]
	}
	return core.PaletteColor(core.DefaultPalette, i)
}
