package validation

import (
	"context"
	"testing"

	"github.com/vastuforge/floorplan/pkg/graph"
	"github.com/vastuforge/floorplan/pkg/layout"
	"github.com/vastuforge/floorplan/pkg/roomdata"
	"github.com/vastuforge/floorplan/pkg/vastu"
)

func buildGraph(t *testing.T, edges ...[3]interface{}) *graph.Graph {
	t.Helper()
	g := graph.NewGraph(1)
	rooms := map[string]roomdata.RoomType{}
	for _, e := range edges {
		rooms[e[0].(string)] = roomdata.Kitchen
		rooms[e[1].(string)] = roomdata.Dining
	}
	for id, typ := range rooms {
		_ = g.AddRoom(&graph.Vertex{ID: id, Type: typ})
	}
	for _, e := range edges {
		_ = g.AddEdge(e[0].(string), e[1].(string), e[2].(float64))
	}
	return g
}

func TestCheckContainment_AllInside(t *testing.T) {
	l := &layout.Layout{Rooms: []layout.RoomState{
		{ID: "a", CenterX: 5, CenterY: 5, W: 2, H: 2},
	}}
	plot := &layout.Plot{Shape: layout.Rectangular, Width: 10, Length: 10}

	result := CheckContainment(l, plot)
	if !result.Satisfied {
		t.Errorf("expected satisfied, got %+v", result)
	}
}

func TestCheckContainment_OutOfBounds(t *testing.T) {
	l := &layout.Layout{Rooms: []layout.RoomState{
		{ID: "a", CenterX: 9, CenterY: 9, W: 4, H: 4},
	}}
	plot := &layout.Plot{Shape: layout.Rectangular, Width: 10, Length: 10}

	result := CheckContainment(l, plot)
	if result.Satisfied {
		t.Error("expected unsatisfied, room exceeds the boundary")
	}
}

func TestCheckNoOverlaps(t *testing.T) {
	overlapping := &layout.Layout{Rooms: []layout.RoomState{
		{ID: "a", CenterX: 5, CenterY: 5, W: 4, H: 4},
		{ID: "b", CenterX: 6, CenterY: 5, W: 4, H: 4},
	}}
	result := CheckNoOverlaps(overlapping, 1e-3)
	if result.Satisfied {
		t.Error("expected unsatisfied, rooms overlap")
	}

	separate := &layout.Layout{Rooms: []layout.RoomState{
		{ID: "a", CenterX: 1, CenterY: 1, W: 1, H: 1},
		{ID: "b", CenterX: 10, CenterY: 10, W: 1, H: 1},
	}}
	result = CheckNoOverlaps(separate, 1e-3)
	if !result.Satisfied {
		t.Error("expected satisfied, rooms are far apart")
	}
}

func TestCalculateAdjacencySatisfaction_NoRequiredPairs(t *testing.T) {
	l := &layout.Layout{Rooms: []layout.RoomState{{ID: "a"}}}
	g := graph.NewGraph(1)
	_ = g.AddRoom(&graph.Vertex{ID: "a", Type: roomdata.Kitchen})

	if score := CalculateAdjacencySatisfaction(l, g); score != 1.0 {
		t.Errorf("CalculateAdjacencySatisfaction() = %v, want 1.0 with no required pairs", score)
	}
}

func TestCalculateAdjacencySatisfaction_TouchingPairSatisfied(t *testing.T) {
	l := &layout.Layout{Rooms: []layout.RoomState{
		{ID: "kitchen", CenterX: 2, CenterY: 2, W: 2, H: 2},
		{ID: "dining", CenterX: 4, CenterY: 2, W: 2, H: 2},
	}}
	g := buildGraph(t, [3]interface{}{"kitchen", "dining", 2.0})

	score := CalculateAdjacencySatisfaction(l, g)
	if score != 1.0 {
		t.Errorf("CalculateAdjacencySatisfaction() = %v, want 1.0 for touching rooms", score)
	}
}

func TestDefaultValidator_Validate_Passes(t *testing.T) {
	v := NewValidator()
	l := &layout.Layout{Rooms: []layout.RoomState{
		{ID: "a", Type: roomdata.Kitchen, CenterX: 3, CenterY: 3, W: 2, H: 2},
		{ID: "b", Type: roomdata.Living, CenterX: 8, CenterY: 8, W: 2, H: 2},
	}}
	plot := &layout.Plot{Shape: layout.Rectangular, Width: 12, Length: 12}
	field, err := vastu.NewField(plot.EffectivePolygon(), []roomdata.RoomType{roomdata.Kitchen, roomdata.Living}, 0.5, 2.0)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}

	report, err := v.Validate(context.Background(), l, graph.NewGraph(1), plot, field, 0.8, 1e-3)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !report.Passed {
		t.Errorf("expected report to pass, errors: %v", report.Errors)
	}
	if report.Metrics == nil {
		t.Fatal("expected metrics to be populated")
	}
}

func TestDefaultValidator_Validate_RejectsEmptyLayout(t *testing.T) {
	v := NewValidator()
	plot := &layout.Plot{Shape: layout.Rectangular, Width: 10, Length: 10}
	_, err := v.Validate(context.Background(), layout.NewLayout(), graph.NewGraph(1), plot, nil, 0, 1e-3)
	if err == nil {
		t.Fatal("expected error for empty layout")
	}
}
