package solver

import (
	"testing"

	"github.com/vastuforge/floorplan/pkg/geom"
	"github.com/vastuforge/floorplan/pkg/layout"
	"github.com/vastuforge/floorplan/pkg/roomdata"
)

func TestNormalizePlot_Rectangular(t *testing.T) {
	req := &Request{PlotWidth: 10, PlotLength: 8, PlotShape: "rectangular"}
	plot, err := normalizePlot(req)
	if err != nil {
		t.Fatalf("normalizePlot: %v", err)
	}
	if plot.Shape != layout.Rectangular {
		t.Errorf("Shape = %v, want Rectangular", plot.Shape)
	}
	if plot.Width != 10 || plot.Length != 8 {
		t.Errorf("dims = %v x %v, want 10 x 8", plot.Width, plot.Length)
	}
}

func TestNormalizePlot_RejectsNonPositiveDimensions(t *testing.T) {
	req := &Request{PlotWidth: 0, PlotLength: 8, PlotShape: "rectangular"}
	if _, err := normalizePlot(req); err == nil {
		t.Fatal("expected an error for a zero plot width")
	}
}

func TestNormalizePlot_TriangularRequiresPolygon(t *testing.T) {
	req := &Request{PlotWidth: 10, PlotLength: 8, PlotShape: "triangular"}
	if _, err := normalizePlot(req); err == nil {
		t.Fatal("expected an error for a triangular plot with no polygon")
	}

	req.PlotPolygon = []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 8}}
	plot, err := normalizePlot(req)
	if err != nil {
		t.Fatalf("normalizePlot: %v", err)
	}
	if len(plot.Polygon.Vertices) != 3 {
		t.Errorf("polygon vertex count = %d, want 3", len(plot.Polygon.Vertices))
	}
}

func TestNormalizePlot_CircularDefaultsToCenteredCircle(t *testing.T) {
	req := &Request{PlotWidth: 10, PlotLength: 6, PlotShape: "circular"}
	plot, err := normalizePlot(req)
	if err != nil {
		t.Fatalf("normalizePlot: %v", err)
	}
	if plot.Circle == nil {
		t.Fatal("expected a default circle")
	}
	if plot.Circle.Radius != 3 {
		t.Errorf("Radius = %v, want 3 (min(10,6)/2)", plot.Circle.Radius)
	}
}

func TestBuildRoomStates_RejectsDuplicateIDs(t *testing.T) {
	req := &Request{Rooms: []RoomRequest{
		{ID: "a", Type: "living"},
		{ID: "a", Type: "kitchen"},
	}}
	if _, err := buildRoomStates(req); err == nil {
		t.Fatal("expected an error for duplicate room ids")
	}
}

func TestBuildRoomStates_PreseedsTargetDimensions(t *testing.T) {
	req := &Request{Rooms: []RoomRequest{
		{ID: "a", Type: "living", TargetWidth: 4, TargetHeight: 3},
		{ID: "b", Type: "kitchen"},
	}}
	states, err := buildRoomStates(req)
	if err != nil {
		t.Fatalf("buildRoomStates: %v", err)
	}
	if states[0].W != 4 || states[0].H != 3 {
		t.Errorf("room a dims = %v x %v, want 4 x 3", states[0].W, states[0].H)
	}
	if states[1].W != 0 || states[1].H != 0 {
		t.Errorf("room b dims = %v x %v, want left at 0 for the placer to fill in", states[1].W, states[1].H)
	}
}

func TestBuildRoomStates_ThreadsNameFallingBackToID(t *testing.T) {
	req := &Request{Rooms: []RoomRequest{
		{ID: "a", Name: "Family Room", Type: "living"},
		{ID: "b", Type: "kitchen"},
	}}
	states, err := buildRoomStates(req)
	if err != nil {
		t.Fatalf("buildRoomStates: %v", err)
	}
	if states[0].Name != "Family Room" {
		t.Errorf("room a Name = %q, want %q", states[0].Name, "Family Room")
	}
	if states[1].Name != "b" {
		t.Errorf("room b Name = %q, want fallback to id %q", states[1].Name, "b")
	}
}

func TestBuildRoomStates_ThreadsPreferredDirectionAndHouseFacing(t *testing.T) {
	req := &Request{
		Rooms: []RoomRequest{
			{ID: "door", Type: "entrance"},
			{ID: "bed2", Type: "bedroom", PreferredDirection: "NE"},
			{ID: "kitchen", Type: "kitchen"},
		},
		Constraints: Constraints{HouseFacing: "S"},
	}
	states, err := buildRoomStates(req)
	if err != nil {
		t.Fatalf("buildRoomStates: %v", err)
	}

	byID := make(map[string]layout.RoomState, len(states))
	for _, s := range states {
		byID[s.ID] = s
	}

	if !byID["door"].HasHouseFacing || byID["door"].HouseFacing != roomdata.South {
		t.Errorf("entrance HouseFacing = (%v, %v), want (South, true)", byID["door"].HouseFacing, byID["door"].HasHouseFacing)
	}
	if !byID["bed2"].HasPreferredDirection || byID["bed2"].PreferredDirection != roomdata.NorthEast {
		t.Errorf("bed2 PreferredDirection = (%v, %v), want (NorthEast, true)", byID["bed2"].PreferredDirection, byID["bed2"].HasPreferredDirection)
	}
	if !byID["kitchen"].HasHouseFacing {
		t.Error("houseFacing should be broadcast onto every room's state, even though only the entrance path consults it")
	}
	if byID["kitchen"].HasPreferredDirection {
		t.Error("kitchen has no preferredDirection in the request and should not have one set")
	}
}

func TestBuildGraph_ConnectsMatchingAdjacencies(t *testing.T) {
	req := &Request{Rooms: []RoomRequest{
		{ID: "kitchen", Type: "kitchen"},
		{ID: "dining", Type: "dining"},
		{ID: "bath", Type: "bathroom"},
	}}
	g := buildGraph(req, 1)
	if len(g.Rooms) != 3 {
		t.Fatalf("room count = %d, want 3", len(g.Rooms))
	}
	neighbors := g.Neighbors("kitchen")
	found := false
	for _, e := range neighbors {
		if e.To == "dining" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected kitchen-dining adjacency edge, got neighbors %v", neighbors)
	}
}

func TestPartitionOutdoor_ByTypeAndByFixtureList(t *testing.T) {
	req := &Request{
		Rooms: []RoomRequest{
			{ID: "garden", Type: "garden"},
			{ID: "living", Type: "living"},
			{ID: "deck", Type: "study"},
		},
		OutdoorFixtures: []string{"deck"},
	}
	out := partitionOutdoor(req)
	if !out["garden"] {
		t.Error("garden should be outdoor by type")
	}
	if out["living"] {
		t.Error("living should not be outdoor")
	}
	if !out["deck"] {
		t.Error("deck should be outdoor via OutdoorFixtures override")
	}
}

func TestRoomRequest_RoomType(t *testing.T) {
	rr := RoomRequest{Type: "kitchen"}
	if rr.roomType() != roomdata.Kitchen {
		t.Errorf("roomType() = %v, want Kitchen", rr.roomType())
	}
}
