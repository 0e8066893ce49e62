package refine

import (
	"context"
	"fmt"

	"github.com/vastuforge/floorplan/pkg/graph"
	"github.com/vastuforge/floorplan/pkg/layout"
	"github.com/vastuforge/floorplan/pkg/rng"
	"github.com/vastuforge/floorplan/pkg/vastu"
)

// RefinerAlgorithm is the interface the solver drives; Refiner satisfies
// it. Mirrors pkg/placer's registry so an alternate refinement algorithm
// could be added later without solver changes (spec.md §9 design note 3
// generalizes to both stages in SPEC_FULL.md §11's supplemented registry).
type RefinerAlgorithm interface {
	Refine(ctx context.Context, seed *layout.Layout, g *graph.Graph, plot *layout.Plot, field *vastu.Field, fixed map[string]bool, r *rng.RNG) (*layout.Layout, error)
	Name() string
}

// Name identifies this refiner algorithm for the registry.
func (rf *Refiner) Name() string { return "simulated_annealing" }

var registry = make(map[string]func(*Config) RefinerAlgorithm)

func init() {
	Register("simulated_annealing", func(cfg *Config) RefinerAlgorithm {
		return NewRefiner(cfg)
	})
}

// Register adds a refiner factory to the registry.
func Register(name string, factory func(*Config) RefinerAlgorithm) {
	if factory == nil {
		panic(fmt.Sprintf("refine: Register factory for %s is nil", name))
	}
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("refine: Register called twice for %s", name))
	}
	registry[name] = factory
}

// Get retrieves a refiner by name and initializes it with the given config.
func Get(name string, config *Config) (RefinerAlgorithm, error) {
	factory, exists := registry[name]
	if !exists {
		return nil, fmt.Errorf("refiner %q not registered", name)
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return factory(config), nil
}

// List returns the names of all registered refiners.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
