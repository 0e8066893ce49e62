// Package refine implements the simulated-annealing refiner (C5): given
// a seed Layout, it searches for a lower-energy layout via Metropolis-
// criterion moves over a multi-term energy functional, with geometric
// cooling, periodic deterministic local repair, and stall-based
// termination. There is no teacher analog for this stage; it is
// grounded on the original implementation's sa_solver_impl.py, in the
// surrounding Go idiom of the placer and solver packages (ctx-checked
// iteration, explicit warnings instead of exceptions).
package refine

import (
	"context"
	"fmt"
	"math"

	"github.com/vastuforge/floorplan/pkg/graph"
	"github.com/vastuforge/floorplan/pkg/layout"
	"github.com/vastuforge/floorplan/pkg/rng"
	"github.com/vastuforge/floorplan/pkg/vastu"
)

// Refiner runs simulated annealing over a seed Layout.
type Refiner struct {
	config *Config
}

// NewRefiner creates a refiner with the given config (DefaultConfig if nil).
func NewRefiner(config *Config) *Refiner {
	if config == nil {
		config = DefaultConfig()
	}
	return &Refiner{config: config}
}

// Refine runs the annealing loop starting from seed, returning the
// best-seen layout (not the last visited one, per spec.md §4.5).
// Rooms named in fixed are excluded from move proposals and from local
// repair's displacement, implementing the same two-phase pinning the
// placer supports.
func (rf *Refiner) Refine(ctx context.Context, seed *layout.Layout, g *graph.Graph, plot *layout.Plot, field *vastu.Field, fixed map[string]bool, r *rng.RNG) (*layout.Layout, error) {
	if seed == nil || len(seed.Rooms) == 0 {
		return nil, fmt.Errorf("refine: cannot refine an empty layout")
	}
	if plot == nil {
		return nil, fmt.Errorf("refine: cannot refine with nil plot")
	}
	if r == nil {
		return nil, fmt.Errorf("refine: cannot refine with nil RNG")
	}
	if g == nil {
		g = graph.NewGraph(0)
	}

	current := seed.Clone()
	for i := range current.Rooms {
		if fixed != nil && fixed[current.Rooms[i].ID] {
			current.Rooms[i].Fixed = true
		}
	}

	movable := make([]int, 0, len(current.Rooms))
	for i := range current.Rooms {
		if !current.Rooms[i].Fixed {
			movable = append(movable, i)
		}
	}

	currentEnergy := energy(current.Rooms, g, plot, field, rf.config)
	best := current.Clone()
	bestEnergy := currentEnergy

	temperature := rf.config.T0
	history := []float64{currentEnergy}
	stall := 0
	iterations := 0

	for iterations < rf.config.MaxIters && stall < rf.config.StallPatience {
		select {
		case <-ctx.Done():
			best.History = history
			return best, ctx.Err()
		default:
		}

		if iterations%rf.config.LocalRepairInterval == 0 {
			repaired := localRepair(current.Rooms, plot, rf.config)
			repairedEnergy := energy(repaired, g, plot, field, rf.config)
			current.Rooms = repaired
			currentEnergy = repairedEnergy
			if repairedEnergy < bestEnergy {
				best = current.Clone()
				bestEnergy = repairedEnergy
				stall = 0
			}
		}

		if len(movable) > 0 {
			candidate := proposeMove(current.Rooms, plot, movable, rf.config, r)
			if soundState(candidate, plot) {
				candidateEnergy := energy(candidate, g, plot, field, rf.config)
				delta := candidateEnergy - currentEnergy

				if delta < 0 || r.Float64() < math.Exp(-delta/temperature) {
					current.Rooms = candidate
					currentEnergy = candidateEnergy
					if currentEnergy < bestEnergy {
						best = current.Clone()
						bestEnergy = currentEnergy
						stall = 0
					} else {
						stall++
					}
				} else {
					stall++
				}
			} else {
				stall++
			}
		} else {
			stall++
		}

		iterations++
		if iterations%rf.config.CoolingStep == 0 {
			temperature *= rf.config.Alpha
			if temperature < rf.config.MinTemp {
				temperature = rf.config.MinTemp
			}
		}
		history = append(history, currentEnergy)
	}

	best.Iterations = iterations
	best.Converged = stall >= rf.config.StallPatience
	best.Score = bestEnergy
	best.History = history
	return best, nil
}

// soundState rejects a candidate that produced NaN/infinite geometry or a
// polygon-escaped room before the energy function is even evaluated
// (spec.md §7: "any move that produces NaN or a polygon-escaped state is
// rejected before the energy is even computed").
func soundState(rooms []layout.RoomState, plot *layout.Plot) bool {
	for i := range rooms {
		if math.IsNaN(rooms[i].CenterX) || math.IsNaN(rooms[i].CenterY) ||
			math.IsInf(rooms[i].CenterX, 0) || math.IsInf(rooms[i].CenterY, 0) {
			return false
		}
		if rooms[i].W <= 0 || rooms[i].H <= 0 || math.IsNaN(rooms[i].W) || math.IsNaN(rooms[i].H) {
			return false
		}
		if polygonEscaped(&rooms[i], plot) {
			return false
		}
	}
	return true
}

// polygonEscaped reports whether rs's footprint has left the plot
// polygon entirely: every corner outside, the same containment check
// pkg/solver/score.go's boundaryPenaltySum uses per-corner.
func polygonEscaped(rs *layout.RoomState, plot *layout.Plot) bool {
	for _, c := range rs.Polygon().Vertices {
		if plot.Contains(c) {
			return false
		}
	}
	return true
}
