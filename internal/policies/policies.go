// Package policies implements the wandering strategies a group leader
// follows each turn. Every policy registers itself with the registry in
// init(); importing this package for side effects makes them available.
package policies

import (
	"strings"

	"github.com/vovakirdan/woods/internal/registry"
)

// Policy identifiers.
const (
	IDRandom           = "random"
	IDRandomValid      = "random_valid"
	IDBiasedUnexplored = "biased_unexplored"
)

func init() {
	registry.Register(IDRandom, func() registry.Policy { return Random{} })
	registry.Register(IDRandomValid, func() registry.Policy { return RandomValid{} })
	registry.Register(IDBiasedUnexplored, func() registry.Policy { return BiasedUnexplored{} })
}

// aliases maps menu labels from the classroom build onto policy IDs.
var aliases = map[string]string{
	"random":            IDRandom,
	"random valid":      IDRandomValid,
	"random-valid":      IDRandomValid,
	"biased unexplored": IDBiasedUnexplored,
	"biased-unexplored": IDBiasedUnexplored,
	"biased":            IDBiasedUnexplored,
}

// Resolve normalizes a policy name ("Biased Unexplored", "random-valid", ...)
// to its registered ID. Unknown names are returned unchanged so the
// registry can report them.
func Resolve(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if id, ok := aliases[key]; ok {
		return id
	}
	return key
}
