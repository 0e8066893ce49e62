// Package placer implements the force-directed placer (C4): a damped
// dynamical system that treats rooms as point masses with rectangular
// extents, subject to attraction (adjacency), repulsion (non-adjacent
// pairs), Vastu pulls, and boundary forces, run to quasi-equilibrium and
// then deterministically resolved of residual overlaps.
package placer

import (
	"fmt"

	"github.com/vastuforge/floorplan/pkg/graph"
	"github.com/vastuforge/floorplan/pkg/layout"
	"github.com/vastuforge/floorplan/pkg/rng"
	"github.com/vastuforge/floorplan/pkg/vastu"
)

// Placer transforms an adjacency graph plus initial room state into a
// converged (or best-effort) Layout. The Fixed set pins room velocities
// to zero and skips their position updates, implementing spec.md §4.4's
// two-phase mode ("a single placer with a fixed: set<room_id> parameter,
// where an empty set recovers single-phase behavior" — design note 7).
type Placer interface {
	Place(g *graph.Graph, rooms []layout.RoomState, plot *layout.Plot, field *vastu.Field, fixed map[string]bool, r *rng.RNG) (*layout.Layout, error)

	// Name returns the identifier for this placer algorithm.
	Name() string
}

// registry mirrors the teacher's embedder registry (Register/Get/List):
// a single code path regardless of which placer implementation runs.
var registry = make(map[string]func(*Config) Placer)

// Register adds a placer factory to the registry.
func Register(name string, factory func(*Config) Placer) {
	if factory == nil {
		panic(fmt.Sprintf("placer: Register factory for %s is nil", name))
	}
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("placer: Register called twice for %s", name))
	}
	registry[name] = factory
}

// Get retrieves a placer by name and initializes it with the given
// config.
func Get(name string, config *Config) (Placer, error) {
	factory, exists := registry[name]
	if !exists {
		return nil, fmt.Errorf("placer %q not registered", name)
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return factory(config), nil
}

// List returns the names of all registered placers.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
