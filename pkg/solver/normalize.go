package solver

import (
	"fmt"

	"github.com/vastuforge/floorplan/pkg/geom"
	"github.com/vastuforge/floorplan/pkg/graph"
	"github.com/vastuforge/floorplan/pkg/layout"
	"github.com/vastuforge/floorplan/pkg/roomdata"
)

// normalizePlot builds a layout.Plot from the request, clamping
// dimensions positive, inferring a polygon from the bounding box when
// none is given, and normalizing plot_shape to the closed Shape set
// (spec.md §4.6).
func normalizePlot(req *Request) (*layout.Plot, error) {
	width, length := req.PlotWidth, req.PlotLength
	if width <= 0 || length <= 0 {
		return nil, fmt.Errorf("solver: plot_width and plot_length must be positive, got %f x %f", width, length)
	}

	shape := layout.ParseShape(req.PlotShape)

	plot := &layout.Plot{Shape: shape, Width: width, Length: length}

	polyVerts := req.PlotPolygon
	if len(polyVerts) == 0 {
		polyVerts = req.Constraints.PlotPolygon
	}

	switch shape {
	case layout.Triangular, layout.LShaped, layout.Irregular:
		if len(polyVerts) < 3 {
			return nil, fmt.Errorf("solver: plot_shape %q requires an explicit polygon with >= 3 vertices", req.PlotShape)
		}
		plot.Polygon = geom.Polygon{Vertices: polyVerts}
	case layout.Circular:
		c := req.Constraints.Circle
		if c == nil {
			plot.Circle = &layout.Circle{
				Center: geom.Point{X: width / 2, Y: length / 2},
				Radius: min(width, length) / 2,
			}
		} else {
			plot.Circle = &layout.Circle{
				Center: geom.Point{X: c.CenterX, Y: c.CenterY},
				Radius: c.Radius,
			}
		}
		if plot.Circle.Radius <= 0 {
			return nil, fmt.Errorf("solver: circular plot requires a positive radius")
		}
	default: // Rectangular
		if len(polyVerts) >= 3 {
			plot.Polygon = geom.Polygon{Vertices: polyVerts}
		}
	}

	return plot, nil
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// buildRoomStates converts each RoomRequest into an initial RoomState
// (dimensions left at 0 unless explicitly targeted; the placer fills
// them in from roomdata.SizeOf on its first pass).
func buildRoomStates(req *Request) ([]layout.RoomState, error) {
	if len(req.Rooms) == 0 {
		return nil, fmt.Errorf("solver: request must contain at least one room")
	}

	houseFacing, hasHouseFacing := roomdata.Direction(0), false
	if req.Constraints.HouseFacing != "" {
		houseFacing, hasHouseFacing = roomdata.ParseDirection(req.Constraints.HouseFacing), true
	}

	seen := make(map[string]bool, len(req.Rooms))
	states := make([]layout.RoomState, len(req.Rooms))
	for i, rr := range req.Rooms {
		if rr.ID == "" {
			return nil, fmt.Errorf("solver: room[%d] has an empty id", i)
		}
		if seen[rr.ID] {
			return nil, fmt.Errorf("solver: duplicate room id %q", rr.ID)
		}
		seen[rr.ID] = true

		t := rr.roomType()
		state := layout.RoomState{ID: rr.ID, Name: rr.Name, Type: t}
		if state.Name == "" {
			state.Name = rr.ID
		}
		if rr.TargetWidth > 0 && rr.TargetHeight > 0 {
			state.W = rr.TargetWidth
			state.H = rr.TargetHeight
			state.TargetArea = rr.TargetWidth * rr.TargetHeight
		}
		if rr.PreferredDirection != "" {
			state.PreferredDirection = roomdata.ParseDirection(rr.PreferredDirection)
			state.HasPreferredDirection = true
		}
		state.HouseFacing = houseFacing
		state.HasHouseFacing = hasHouseFacing
		states[i] = state
	}
	return states, nil
}

// buildGraph constructs the functional adjacency graph over the request's
// rooms from roomdata's static per-type preference tables, pruned to the
// rooms actually present (spec.md §4.6).
func buildGraph(req *Request, seed uint64) *graph.Graph {
	g := graph.NewGraph(seed)
	for _, rr := range req.Rooms {
		_ = g.AddRoom(&graph.Vertex{ID: rr.ID, Type: rr.roomType()})
	}

	byType := make(map[roomdata.RoomType][]string)
	for _, rr := range req.Rooms {
		t := rr.roomType()
		byType[t] = append(byType[t], rr.ID)
	}

	seenPair := make(map[[2]string]bool)
	for _, rr := range req.Rooms {
		for _, adj := range roomdata.PreferredAdjacencies(rr.roomType()) {
			for _, otherID := range byType[adj.Neighbor] {
				if otherID == rr.ID {
					continue
				}
				key := [2]string{rr.ID, otherID}
				if key[0] > key[1] {
					key[0], key[1] = key[1], key[0]
				}
				if seenPair[key] {
					continue
				}
				seenPair[key] = true
				weight := 1.0
				if adj.Critical {
					weight = 2.0
				}
				_ = g.AddEdge(rr.ID, otherID, weight)
			}
		}
	}
	return g
}

// partitionOutdoor returns the set of room ids treated as outdoor: any
// room whose type is in the outdoor subset, plus any room named (by id or
// type string) in OutdoorFixtures (spec.md §6).
func partitionOutdoor(req *Request) map[string]bool {
	outdoor := make(map[string]bool)
	fixtureSet := make(map[string]bool, len(req.OutdoorFixtures))
	for _, f := range req.OutdoorFixtures {
		fixtureSet[f] = true
	}
	for _, rr := range req.Rooms {
		if rr.roomType().IsOutdoor() || fixtureSet[rr.ID] || fixtureSet[rr.Type] {
			outdoor[rr.ID] = true
		}
	}
	return outdoor
}
