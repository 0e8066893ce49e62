package placer

import (
	"testing"

	"github.com/vastuforge/floorplan/pkg/geom"
	"github.com/vastuforge/floorplan/pkg/graph"
	"github.com/vastuforge/floorplan/pkg/layout"
	"github.com/vastuforge/floorplan/pkg/rng"
	"github.com/vastuforge/floorplan/pkg/roomdata"
	"github.com/vastuforge/floorplan/pkg/vastu"
)

func rectPlot(w, l float64) *layout.Plot {
	return &layout.Plot{Shape: layout.Rectangular, Width: w, Length: l}
}

func testField(t *testing.T, plot *layout.Plot, types []roomdata.RoomType) *vastu.Field {
	t.Helper()
	f, err := vastu.NewField(plot.EffectivePolygon(), types, 0.5, 2.0)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	return f
}

func testRNG() *rng.RNG {
	return rng.NewRNG(42, "placer_test", []byte("cfg"))
}

func TestForceDirectedPlacer_Name(t *testing.T) {
	p := NewForceDirectedPlacer(nil)
	if p.Name() != "force_directed" {
		t.Errorf("Name() = %q, want force_directed", p.Name())
	}
}

func TestForceDirectedPlacer_RegisteredByDefault(t *testing.T) {
	names := List()
	found := false
	for _, n := range names {
		if n == "force_directed" {
			found = true
		}
	}
	if !found {
		t.Errorf("List() = %v, want to include force_directed", names)
	}
}

func TestForceDirectedPlacer_Place_RejectsNilGraph(t *testing.T) {
	p := NewForceDirectedPlacer(nil)
	plot := rectPlot(10, 10)
	field := testField(t, plot, []roomdata.RoomType{roomdata.Kitchen})
	_, err := p.Place(nil, []layout.RoomState{{ID: "k1", Type: roomdata.Kitchen}}, plot, field, nil, testRNG())
	if err == nil {
		t.Fatal("expected error for nil graph")
	}
}

func TestForceDirectedPlacer_Place_RejectsEmptyRooms(t *testing.T) {
	p := NewForceDirectedPlacer(nil)
	g := graph.NewGraph(1)
	plot := rectPlot(10, 10)
	field := testField(t, plot, nil)
	_, err := p.Place(g, nil, plot, field, nil, testRNG())
	if err == nil {
		t.Fatal("expected error for empty room list")
	}
}

func TestForceDirectedPlacer_Place_AllRoomsInsidePlot(t *testing.T) {
	p := NewForceDirectedPlacer(nil)
	g := graph.NewGraph(1)
	rooms := []layout.RoomState{
		{ID: "kitchen", Type: roomdata.Kitchen},
		{ID: "bed1", Type: roomdata.MasterBedroom},
		{ID: "living", Type: roomdata.Living},
	}
	for _, rm := range rooms {
		if err := g.AddRoom(&graph.Vertex{ID: rm.ID, Type: rm.Type}); err != nil {
			t.Fatalf("AddRoom: %v", err)
		}
	}
	if err := g.AddEdge("kitchen", "living", 1.0); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	plot := rectPlot(12, 12)
	field := testField(t, plot, []roomdata.RoomType{roomdata.Kitchen, roomdata.MasterBedroom, roomdata.Living})

	out, err := p.Place(g, rooms, plot, field, nil, testRNG())
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if len(out.Rooms) != len(rooms) {
		t.Fatalf("got %d rooms, want %d", len(out.Rooms), len(rooms))
	}
	for _, rm := range out.Rooms {
		for _, c := range rm.Rect().Corners() {
			if !plot.Contains(c) {
				t.Errorf("room %s corner %v escaped the plot", rm.ID, c)
			}
		}
		if rm.W <= 0 || rm.H <= 0 {
			t.Errorf("room %s has non-positive dimensions %v x %v", rm.ID, rm.W, rm.H)
		}
	}
}

func TestForceDirectedPlacer_Place_Deterministic(t *testing.T) {
	p := NewForceDirectedPlacer(nil)
	build := func() (*graph.Graph, []layout.RoomState, *layout.Plot, *vastu.Field) {
		g := graph.NewGraph(1)
		rooms := []layout.RoomState{
			{ID: "kitchen", Type: roomdata.Kitchen},
			{ID: "bed1", Type: roomdata.Bedroom},
		}
		for _, rm := range rooms {
			_ = g.AddRoom(&graph.Vertex{ID: rm.ID, Type: rm.Type})
		}
		_ = g.AddEdge("kitchen", "bed1", 1.0)
		plot := rectPlot(10, 10)
		field := testField(t, plot, []roomdata.RoomType{roomdata.Kitchen, roomdata.Bedroom})
		return g, rooms, plot, field
	}

	g1, rooms1, plot1, field1 := build()
	out1, err := p.Place(g1, rooms1, plot1, field1, nil, rng.NewRNG(7, "a", nil))
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	g2, rooms2, plot2, field2 := build()
	out2, err := p.Place(g2, rooms2, plot2, field2, nil, rng.NewRNG(7, "a", nil))
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	for i := range out1.Rooms {
		a, b := out1.Rooms[i], out2.Rooms[i]
		if a.ID != b.ID || a.CenterX != b.CenterX || a.CenterY != b.CenterY {
			t.Errorf("run mismatch at %d: %+v vs %+v", i, a, b)
		}
	}
}

func TestForceDirectedPlacer_Place_FixedRoomsDoNotMove(t *testing.T) {
	p := NewForceDirectedPlacer(nil)
	g := graph.NewGraph(1)
	rooms := []layout.RoomState{
		{ID: "kitchen", Type: roomdata.Kitchen, CenterX: 2, CenterY: 2, W: 3, H: 3, Fixed: true},
		{ID: "garden", Type: roomdata.Garden},
	}
	for _, rm := range rooms {
		_ = g.AddRoom(&graph.Vertex{ID: rm.ID, Type: rm.Type})
	}
	plot := rectPlot(15, 15)
	field := testField(t, plot, []roomdata.RoomType{roomdata.Kitchen, roomdata.Garden})

	fixed := map[string]bool{"kitchen": true}
	out, err := p.Place(g, rooms, plot, field, fixed, testRNG())
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	idx := out.IndexOf("kitchen")
	if idx < 0 {
		t.Fatal("kitchen room missing from output")
	}
	if out.Rooms[idx].CenterX != 2 || out.Rooms[idx].CenterY != 2 {
		t.Errorf("fixed room moved: got (%v, %v), want (2, 2)", out.Rooms[idx].CenterX, out.Rooms[idx].CenterY)
	}
}

func TestForceDirectedPlacer_Place_NoOverlapsAboveTolerance(t *testing.T) {
	p := NewForceDirectedPlacer(nil)
	g := graph.NewGraph(1)
	rooms := []layout.RoomState{
		{ID: "r1", Type: roomdata.Bedroom},
		{ID: "r2", Type: roomdata.Bedroom},
		{ID: "r3", Type: roomdata.Study},
	}
	for _, rm := range rooms {
		_ = g.AddRoom(&graph.Vertex{ID: rm.ID, Type: rm.Type})
	}
	plot := rectPlot(14, 14)
	field := testField(t, plot, []roomdata.RoomType{roomdata.Bedroom, roomdata.Study})

	out, err := p.Place(g, rooms, plot, field, nil, testRNG())
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	for i := range out.Rooms {
		for j := i + 1; j < len(out.Rooms); j++ {
			overlap := geom.RectOrRotatedRectOverlapArea(out.Rooms[i].Rect(), out.Rooms[i].Rotation, out.Rooms[j].Rect(), out.Rooms[j].Rotation)
			if overlap > p.config.OverlapTolerance && len(out.Warnings) == 0 {
				t.Errorf("overlap %v between %s and %s exceeds tolerance with no warning recorded", overlap, out.Rooms[i].ID, out.Rooms[j].ID)
			}
		}
	}
}

func TestEffectivePreferredDirection_HouseFacingOverridesEntranceOnly(t *testing.T) {
	entrance := layout.RoomState{ID: "door", Type: roomdata.Entrance, HouseFacing: roomdata.South, HasHouseFacing: true}
	if dir, ok := effectivePreferredDirection(&entrance); !ok || dir != roomdata.South {
		t.Fatalf("entrance with houseFacing = (%v, %v), want (South, true)", dir, ok)
	}

	kitchen := layout.RoomState{ID: "cook", Type: roomdata.Kitchen, HouseFacing: roomdata.South, HasHouseFacing: true}
	if _, ok := effectivePreferredDirection(&kitchen); ok {
		t.Fatal("houseFacing must not override a non-entrance room's preference")
	}
}

func TestEffectivePreferredDirection_PerRoomOverride(t *testing.T) {
	room := layout.RoomState{ID: "bed2", Type: roomdata.Bedroom, PreferredDirection: roomdata.NorthEast, HasPreferredDirection: true}
	if dir, ok := effectivePreferredDirection(&room); !ok || dir != roomdata.NorthEast {
		t.Fatalf("bedroom with preferredDirection = (%v, %v), want (NorthEast, true)", dir, ok)
	}
}

func TestEffectivePreferredDirection_HouseFacingBeatsPerRoomOverrideForEntrance(t *testing.T) {
	room := layout.RoomState{
		ID: "door", Type: roomdata.Entrance,
		PreferredDirection: roomdata.West, HasPreferredDirection: true,
		HouseFacing: roomdata.East, HasHouseFacing: true,
	}
	if dir, ok := effectivePreferredDirection(&room); !ok || dir != roomdata.East {
		t.Fatalf("entrance with both overrides = (%v, %v), want (East, true) — houseFacing wins", dir, ok)
	}
}

func TestVastuTargets_HonorsPreferredDirectionOverride(t *testing.T) {
	p := NewForceDirectedPlacer(nil)
	plot := rectPlot(10, 10)
	field := testField(t, plot, []roomdata.RoomType{roomdata.Bedroom})

	state := []layout.RoomState{
		{ID: "bed2", Type: roomdata.Bedroom, W: 3, H: 3, PreferredDirection: roomdata.SouthEast, HasPreferredDirection: true},
	}
	targets := p.vastuTargets(state, field, plot)
	bbox := plot.BoundingBox()
	wantX, wantY := roomdata.SouthEast.AnchorFraction()
	want := geom.Point{X: bbox.MinX + wantX*bbox.Width(), Y: bbox.MinY + wantY*bbox.Height()}
	if targets[0] != want {
		t.Errorf("vastuTargets override = %v, want %v", targets[0], want)
	}
}
