package refine

import (
	"context"
	"math"
	"testing"

	"github.com/vastuforge/floorplan/pkg/graph"
	"github.com/vastuforge/floorplan/pkg/layout"
	"github.com/vastuforge/floorplan/pkg/rng"
	"github.com/vastuforge/floorplan/pkg/roomdata"
	"github.com/vastuforge/floorplan/pkg/vastu"
)

func smallPlot() *layout.Plot {
	return &layout.Plot{Shape: layout.Rectangular, Width: 12, Length: 12}
}

func smallSeed() *layout.Layout {
	return &layout.Layout{
		Rooms: []layout.RoomState{
			{ID: "kitchen", Type: roomdata.Kitchen, CenterX: 3, CenterY: 3, W: 3, H: 3, TargetArea: 9},
			{ID: "living", Type: roomdata.Living, CenterX: 8, CenterY: 8, W: 4, H: 4, TargetArea: 16},
			{ID: "bed1", Type: roomdata.Bedroom, CenterX: 8, CenterY: 3, W: 3.5, H: 3.5, TargetArea: 12.25},
		},
	}
}

func smallGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.NewGraph(1)
	for _, id := range []string{"kitchen", "living", "bed1"} {
		typ := roomdata.Kitchen
		switch id {
		case "living":
			typ = roomdata.Living
		case "bed1":
			typ = roomdata.Bedroom
		}
		if err := g.AddRoom(&graph.Vertex{ID: id, Type: typ}); err != nil {
			t.Fatalf("AddRoom: %v", err)
		}
	}
	if err := g.AddEdge("kitchen", "living", 1.0); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	return g
}

func smallField(t *testing.T, plot *layout.Plot) *vastu.Field {
	t.Helper()
	f, err := vastu.NewField(plot.EffectivePolygon(), []roomdata.RoomType{roomdata.Kitchen, roomdata.Living, roomdata.Bedroom}, 0.5, 2.0)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	return f
}

func fastConfig() *Config {
	c := DefaultConfig()
	c.MaxIters = 200
	c.StallPatience = 200
	c.LocalRepairInterval = 50
	return c
}

func TestRefiner_Refine_RejectsEmptySeed(t *testing.T) {
	rf := NewRefiner(nil)
	plot := smallPlot()
	_, err := rf.Refine(context.Background(), layout.NewLayout(), graph.NewGraph(1), plot, smallField(t, plot), nil, rng.NewRNG(1, "t", nil))
	if err == nil {
		t.Fatal("expected error for empty seed layout")
	}
}

func TestRefiner_Refine_MonotoneImprovement(t *testing.T) {
	rf := NewRefiner(fastConfig())
	plot := smallPlot()
	g := smallGraph(t)
	field := smallField(t, plot)
	seed := smallSeed()

	initialEnergy := energy(seed.Rooms, g, plot, field, rf.config)

	out, err := rf.Refine(context.Background(), seed, g, plot, field, nil, rng.NewRNG(99, "refine_test", nil))
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}

	if out.Score > initialEnergy+1e-9 {
		t.Errorf("best-seen energy %v is worse than seed energy %v", out.Score, initialEnergy)
	}
}

func TestRefiner_Refine_FixedRoomsDoNotMove(t *testing.T) {
	rf := NewRefiner(fastConfig())
	plot := smallPlot()
	g := smallGraph(t)
	field := smallField(t, plot)
	seed := smallSeed()

	fixed := map[string]bool{"kitchen": true}
	out, err := rf.Refine(context.Background(), seed, g, plot, field, fixed, rng.NewRNG(3, "refine_test", nil))
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}

	idx := out.IndexOf("kitchen")
	if idx < 0 {
		t.Fatal("kitchen missing from output")
	}
	if out.Rooms[idx].CenterX != 3 || out.Rooms[idx].CenterY != 3 {
		t.Errorf("fixed room moved: got (%v, %v), want (3, 3)", out.Rooms[idx].CenterX, out.Rooms[idx].CenterY)
	}
}

func TestRefiner_Refine_RespectsContextCancellation(t *testing.T) {
	rf := NewRefiner(fastConfig())
	plot := smallPlot()
	g := smallGraph(t)
	field := smallField(t, plot)
	seed := smallSeed()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := rf.Refine(ctx, seed, g, plot, field, nil, rng.NewRNG(5, "refine_test", nil))
	if err == nil {
		t.Fatal("expected context.Canceled error")
	}
	if out == nil {
		t.Fatal("expected a best-seen layout even on cancellation")
	}
}

func TestMoveProbs_EffectiveRotateZeroWhenDisallowed(t *testing.T) {
	m := MoveProbs{Translate: 0.5, Resize: 0.2, VastuHop: 0.1, Align: 0.1}
	w := m.effective(false)
	if w[1] != 0 {
		t.Errorf("rotate weight = %v, want 0 when rotations disallowed", w[1])
	}
	sum := 0.0
	for _, v := range w {
		sum += v
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("weights sum to %v, want 1", sum)
	}
}

func TestMoveProbs_EffectiveRotateNonzeroWhenAllowed(t *testing.T) {
	m := MoveProbs{Translate: 0.5, Resize: 0.2, VastuHop: 0.1, Align: 0.1}
	w := m.effective(true)
	if w[1] <= 0 {
		t.Errorf("rotate weight = %v, want > 0 when rotations allowed", w[1])
	}
}

func TestSoundState_RejectsNaNAndInvalidDimensions(t *testing.T) {
	plot := smallPlot()
	ok := soundState([]layout.RoomState{{ID: "r", CenterX: 1, CenterY: 1, W: 3, H: 3}}, plot)
	if !ok {
		t.Fatal("expected a well-formed room state to pass")
	}

	nan := math.NaN()
	cases := [][]layout.RoomState{
		{{ID: "r", CenterX: nan, CenterY: 1, W: 3, H: 3}},
		{{ID: "r", CenterX: 1, CenterY: 1, W: 0, H: 3}},
		{{ID: "r", CenterX: 1, CenterY: 1, W: 3, H: -1}},
	}
	for i, rooms := range cases {
		if soundState(rooms, plot) {
			t.Errorf("case %d: expected rejection", i)
		}
	}
}

func TestSoundState_RejectsPolygonEscapedRoom(t *testing.T) {
	plot := smallPlot() // 12x12, anchored at the origin
	rooms := []layout.RoomState{
		{ID: "r", CenterX: 100, CenterY: 100, W: 3, H: 3},
	}
	if soundState(rooms, plot) {
		t.Fatal("expected rejection of a room entirely outside the plot polygon")
	}
}

func TestSoundState_AcceptsRoomOnlyPartlyOutside(t *testing.T) {
	plot := smallPlot()
	rooms := []layout.RoomState{
		{ID: "r", CenterX: 11, CenterY: 6, W: 4, H: 4},
	}
	if !soundState(rooms, plot) {
		t.Fatal("a room straddling the boundary should not be rejected as fully escaped")
	}
}
