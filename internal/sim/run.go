package sim

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/vovakirdan/woods/internal/core"
	"github.com/vovakirdan/woods/internal/policies"
	"github.com/vovakirdan/woods/internal/registry"
)

// State is the lifecycle stage of a Run.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Status is the outcome of a single AdvanceTurn call.
type Status int

const (
	StatusContinuing Status = iota
	StatusCompleted
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	if s == StatusCompleted {
		return "completed"
	}
	return "continuing"
}

// RunConfig holds everything needed to start a run.
type RunConfig struct {
	Grid            core.Grid
	Starts          []core.Point // One entry per agent, in ID order
	Colors          []core.Color // Optional per-agent colors; palette used when short
	Policy          string       // Policy ID or display name
	HistoryCapacity int          // 0 = DefaultHistoryCapacity
	CascadeMerges   bool         // Resolve every collision in the same turn
	Seed            int64
}

// TurnResult is returned by AdvanceTurn.
type TurnResult struct {
	Status Status
	Turn   int     // Turns taken so far in this run
	Merges []Merge // Meetings resolved during this turn
	Groups int     // Groups remaining after the turn
}

// Merged reports whether any groups merged during the turn.
func (r TurnResult) Merged() bool {
	return len(r.Merges) > 0
}

// Option customizes a Run.
type Option func(*Run)

// WithRand replaces the seeded RNG. Reset keeps using the supplied source.
func WithRand(rng registry.Rand) Option {
	return func(r *Run) {
		r.rng = rng
		r.customRand = true
	}
}

// Run drives one simulation from its starting layout until every agent
// belongs to one group. All methods are safe for concurrent use; each one
// is a single critical section.
type Run struct {
	mu sync.Mutex

	cfg        RunConfig
	policy     registry.Policy
	stats      *Statistics
	rng        registry.Rand
	customRand bool

	agents []*Agent
	part   *Partition
	state  State
	turn   int
	merges int

	lastMergeTurn int
	longestGap    int
}

// NewRun validates cfg and returns a run in the Idle state. Completed runs
// are recorded into stats; a nil stats gets a private Statistics.
func NewRun(cfg RunConfig, stats *Statistics, opts ...Option) (*Run, error) {
	if !cfg.Grid.Valid() {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGridDimension, cfg.Grid.W, cfg.Grid.H)
	}
	for i, p := range cfg.Starts {
		if !cfg.Grid.Contains(p) {
			return nil, fmt.Errorf("%w: agent %d at %v outside %dx%d grid",
				ErrInvalidStartPosition, i+1, p, cfg.Grid.W, cfg.Grid.H)
		}
	}

	cfg.Policy = policies.Resolve(cfg.Policy)
	policy, err := registry.Create(cfg.Policy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPolicyUnrecognized, err)
	}

	if cfg.HistoryCapacity <= 0 {
		cfg.HistoryCapacity = DefaultHistoryCapacity
	}
	cfg.Starts = append([]core.Point(nil), cfg.Starts...)
	cfg.Colors = append([]core.Color(nil), cfg.Colors...)

	if stats == nil {
		stats = NewStatistics()
	}

	r := &Run{
		cfg:    cfg,
		policy: policy,
		stats:  stats,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.init()
	return r, nil
}

// init places agents at their starting cells and clears per-run counters.
func (r *Run) init() {
	if !r.customRand {
		r.rng = rand.New(rand.NewSource(r.cfg.Seed))
	}

	r.agents = make([]*Agent, len(r.cfg.Starts))
	for i, p := range r.cfg.Starts {
		r.agents[i] = NewAgent(i+1, p, r.cfg.HistoryCapacity)
	}
	r.part = NewPartition(r.agents)
	r.state = StateIdle
	r.turn = 0
	r.merges = 0
	r.lastMergeTurn = 0
	r.longestGap = 0
}

// AdvanceTurn moves every group once and resolves meetings. A run that is
// already down to one group (including one that started that way)
// completes without moving. Calling it after completion is a no-op.
//
// Meetings resolve one per turn unless CascadeMerges is set. When every
// agent ends the turn on the same cell the run is over, so all remaining
// groups fold together in that turn regardless of CascadeMerges.
func (r *Run) AdvanceTurn() TurnResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateCompleted {
		return r.result(StatusCompleted, nil)
	}
	if r.part.AllMerged() {
		r.complete()
		return r.result(StatusCompleted, nil)
	}

	r.state = StateRunning
	r.moveGroups()
	everyone := AllColocated(r.agents)

	turn := r.turn + 1
	var merges []Merge
	for {
		m, ok := r.part.DetectAndMerge(r.agents, r.stats)
		if !ok {
			break
		}
		merges = append(merges, m)
		r.merges++
		r.longestGap = max(r.longestGap, turn-r.lastMergeTurn)
		r.lastMergeTurn = turn
		if !r.cfg.CascadeMerges && !everyone {
			break
		}
	}
	r.turn = turn

	if r.part.AllMerged() {
		r.complete()
		return r.result(StatusCompleted, merges)
	}
	return r.result(StatusContinuing, merges)
}

// moveGroups asks the policy for each leader's next cell and shifts every
// member of the group by the same displacement.
func (r *Run) moveGroups() {
	for _, g := range r.part.Groups() {
		leader := r.agents[r.part.LeaderOf(g)]
		next := r.policy.Next(registry.Leader{
			Pos:     leader.Pos,
			History: leader.History(),
		}, r.cfg.Grid, r.rng)

		delta := next.Sub(leader.Pos)
		for _, i := range r.part.members[g] {
			m := r.agents[i]
			m.RecordMove(m.Pos.Add(delta))
		}
	}
}

func (r *Run) complete() {
	r.state = StateCompleted
	r.stats.RecordRun(r.turn)
}

func (r *Run) result(status Status, merges []Merge) TurnResult {
	return TurnResult{
		Status: status,
		Turn:   r.turn,
		Merges: merges,
		Groups: r.part.Count(),
	}
}

// Reset returns the run to Idle with agents back on their starting cells.
// Statistics are left untouched.
func (r *Run) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()
}

// State returns the current lifecycle stage.
func (r *Run) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Turn returns the number of turns taken.
func (r *Run) Turn() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.turn
}

// Statistics returns the statistics this run records into.
func (r *Run) Statistics() *Statistics {
	return r.stats
}

// Config returns the normalized configuration of the run.
func (r *Run) Config() RunConfig {
	return r.cfg
}

// Policy returns the resolved movement policy.
func (r *Run) Policy() registry.Policy {
	return r.policy
}

// ParityLocked reports whether the run can never finish: the policy moves
// every group on every turn, so each group keeps the x+y parity class of
// its start, and the starts span both classes.
func (r *Run) ParityLocked() bool {
	return registry.AlwaysMoves(r.policy, r.cfg.Grid) && MixedParity(r.cfg.Starts)
}

// MixedParity reports whether starts include cells of both x+y parities.
func MixedParity(starts []core.Point) bool {
	for _, p := range starts {
		if p.Parity() != starts[0].Parity() {
			return true
		}
	}
	return false
}

// CheckInvariants verifies partition, co-location and bounds invariants.
func (r *Run) CheckInvariants() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.agents {
		if !r.cfg.Grid.Contains(a.Pos) {
			return fmt.Errorf("sim: agent %d out of bounds at %v", a.ID, a.Pos)
		}
	}
	return r.part.Check(r.agents)
}
