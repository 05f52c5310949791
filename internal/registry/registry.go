// Package registry provides a global registry for movement policy factories.
// Policies register themselves in init() functions, allowing the simulation
// to resolve a policy by name without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/woods/internal/core"
)

// Rand is the randomness a policy draws from. *rand.Rand satisfies it;
// tests substitute scripted sources.
type Rand interface {
	Intn(n int) int
}

// Leader is the read-only view of a group's representative agent that a
// policy decides on.
type Leader struct {
	Pos     core.Point
	History []core.Point // Most recent positions, oldest first
}

// Visited reports whether p appears in the leader's recent history.
func (l Leader) Visited(p core.Point) bool {
	for _, h := range l.History {
		if h == p {
			return true
		}
	}
	return false
}

// Policy decides where a group moves next.
// Implementations must always return a position inside the grid.
type Policy interface {
	// ID returns a unique identifier (e.g., "random", "biased_unexplored").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Next returns the leader's next position.
	Next(leader Leader, grid core.Grid, rng Rand) core.Point
}

// Stepper is implemented by policies that can report whether they move the
// leader on every turn for a given grid. Such policies preserve each
// group's x+y parity class from turn to turn.
type Stepper interface {
	AlwaysMoves(grid core.Grid) bool
}

// AlwaysMoves reports whether p is a Stepper that never stays put on grid.
func AlwaysMoves(p Policy, grid core.Grid) bool {
	s, ok := p.(Stepper)
	return ok && s.AlwaysMoves(grid)
}

// PolicyInfo contains metadata about a registered policy.
type PolicyInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a policy.
type Factory func() Policy

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a policy factory to the registry.
// Typically called from a policy's init() function.
// Panics if a policy with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: policy %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered policies, sorted by ID.
func List() []PolicyInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PolicyInfo, 0, len(factories))
	for id := range factories {
		result = append(result, PolicyInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new policy by its ID.
// Returns an error if the policy ID is not registered.
func Create(id string) (Policy, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown policy %q", id)
	}

	return f(), nil
}

// Exists checks if a policy with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
