package solver_test

import (
	"context"
	"testing"

	"github.com/vastuforge/floorplan/pkg/geom"
	"github.com/vastuforge/floorplan/pkg/solver"
)

func s1Request(seed uint64) *solver.Request {
	return &solver.Request{
		PlotWidth:  10,
		PlotLength: 12,
		PlotShape:  "rectangular",
		Rooms: []solver.RoomRequest{
			{ID: "living", Type: "living", TargetWidth: 5, TargetHeight: 4},
			{ID: "kitchen", Type: "kitchen", TargetWidth: 4, TargetHeight: 3},
			{ID: "master", Type: "master_bedroom", TargetWidth: 4, TargetHeight: 4},
			{ID: "bed2", Type: "bedroom", TargetWidth: 4, TargetHeight: 3},
			{ID: "bath", Type: "bathroom", TargetWidth: 3, TargetHeight: 2},
		},
		OptimizationLevel: 2,
		VastuSchool:       "classical",
		Seed:              seed,
	}
}

// TestSolve_S1_RectangularFiveRoom covers spec scenario S1.
func TestSolve_S1_RectangularFiveRoom(t *testing.T) {
	resp, err := solver.Solve(context.Background(), s1Request(42), solver.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if resp.Score < 70 {
		t.Errorf("score = %.2f, want >= 70", resp.Score)
	}
	if resp.Metrics.OverlapArea > 1e-3*float64(len(resp.Rooms)) {
		t.Errorf("overlap area = %.4f, want near zero", resp.Metrics.OverlapArea)
	}
	if resp.Validation == nil {
		t.Fatal("expected a validation report to be attached")
	}
	if !resp.Validation.Passed {
		t.Errorf("validation failed hard constraints: %v", resp.Validation.Errors)
	}

	byID := make(map[string]solver.RoomResponse, len(resp.Rooms))
	for _, rm := range resp.Rooms {
		byID[rm.ID] = rm
	}
	kitchen := byID["kitchen"]
	kx, ky := kitchen.X+kitchen.Width/2, kitchen.Y+kitchen.Height/2
	if kx <= 5 || ky <= 6 {
		t.Errorf("kitchen centroid (%.2f,%.2f) not in SE quadrant", kx, ky)
	}
	master := byID["master"]
	mx, my := master.X+master.Width/2, master.Y+master.Height/2
	if mx >= 5 || my >= 6 {
		t.Errorf("master centroid (%.2f,%.2f) not in SW quadrant", mx, my)
	}
}

// TestSolve_RoomResponse_CarriesDistinctName verifies the response's
// rooms[] carries the request's name field distinctly from id, and
// falls back to id when name is left blank.
func TestSolve_RoomResponse_CarriesDistinctName(t *testing.T) {
	req := s1Request(42)
	req.Rooms[0].Name = "Family Room"

	resp, err := solver.Solve(context.Background(), req, solver.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	byID := make(map[string]solver.RoomResponse, len(resp.Rooms))
	for _, rm := range resp.Rooms {
		byID[rm.ID] = rm
	}
	if got := byID["living"].Name; got != "Family Room" {
		t.Errorf("living.Name = %q, want %q", got, "Family Room")
	}
	if got := byID["kitchen"].Name; got != "kitchen" {
		t.Errorf("kitchen.Name = %q, want fallback to id %q", got, "kitchen")
	}
}

// TestSolve_S6_Reproducibility covers spec scenario S6 and property 1
// (determinism).
func TestSolve_S6_Reproducibility(t *testing.T) {
	r1, err := solver.Solve(context.Background(), s1Request(42), solver.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Solve (run 1): %v", err)
	}
	r2, err := solver.Solve(context.Background(), s1Request(42), solver.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Solve (run 2): %v", err)
	}
	if len(r1.Rooms) != len(r2.Rooms) {
		t.Fatalf("room count mismatch: %d vs %d", len(r1.Rooms), len(r2.Rooms))
	}
	for i := range r1.Rooms {
		a, b := r1.Rooms[i], r2.Rooms[i]
		if a.ID != b.ID || a.X != b.X || a.Y != b.Y || a.Width != b.Width || a.Height != b.Height {
			t.Errorf("room %q differs between runs: %+v vs %+v", a.ID, a, b)
		}
	}
	if r1.Score != r2.Score {
		t.Errorf("score differs between runs: %v vs %v", r1.Score, r2.Score)
	}
}

// TestSolve_S2_TriangularPlot covers spec scenario S2.
func TestSolve_S2_TriangularPlot(t *testing.T) {
	req := &solver.Request{
		PlotWidth:   10,
		PlotLength:  6,
		PlotShape:   "triangular",
		PlotPolygon: []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 6}},
		Rooms: []solver.RoomRequest{
			{ID: "living", Type: "living", TargetWidth: 3, TargetHeight: 2},
			{ID: "kitchen", Type: "kitchen", TargetWidth: 2, TargetHeight: 2},
		},
		Seed: 7,
	}
	resp, err := solver.Solve(context.Background(), req, solver.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	poly := geom.Polygon{Vertices: req.PlotPolygon}
	for _, rm := range resp.Rooms {
		c := geom.Point{X: rm.X + rm.Width/2, Y: rm.Y + rm.Height/2}
		if !geom.PointInPolygon(c, poly) {
			t.Errorf("room %q centroid %+v outside triangular plot", rm.ID, c)
		}
	}
}

// TestSolve_S3_LShapedPlot covers spec scenario S3: no room centroid lands
// in the cut-out rectangle, and the cross-room adjacency graph is mostly
// satisfied.
func TestSolve_S3_LShapedPlot(t *testing.T) {
	req := &solver.Request{
		PlotWidth:   12,
		PlotLength:  10,
		PlotShape:   "l-shaped",
		PlotPolygon: []geom.Point{{X: 0, Y: 0}, {X: 12, Y: 0}, {X: 12, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 10}, {X: 0, Y: 10}},
		Rooms: []solver.RoomRequest{
			{ID: "living", Type: "living", TargetWidth: 4, TargetHeight: 3},
			{ID: "kitchen", Type: "kitchen", TargetWidth: 3, TargetHeight: 3},
			{ID: "master", Type: "master_bedroom", TargetWidth: 3, TargetHeight: 3},
			{ID: "bed2", Type: "bedroom", TargetWidth: 3, TargetHeight: 3},
			{ID: "bath", Type: "bathroom", TargetWidth: 2, TargetHeight: 2},
			{ID: "dining", Type: "dining", TargetWidth: 3, TargetHeight: 2},
		},
		Seed: 3,
	}
	resp, err := solver.Solve(context.Background(), req, solver.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	for _, rm := range resp.Rooms {
		cx, cy := rm.X+rm.Width/2, rm.Y+rm.Height/2
		if cx > 5 && cx < 12 && cy > 5 && cy < 10 {
			t.Errorf("room %q centroid (%.2f,%.2f) falls in the L-shape cut-out", rm.ID, cx, cy)
		}
	}
	if resp.Metrics.AdjacencyScore < 50 {
		t.Errorf("adjacency score = %.2f, want enough required edges satisfied", resp.Metrics.AdjacencyScore)
	}
}

// TestSolve_S4_OutdoorTwoPhase covers spec scenario S4 and property 8.
func TestSolve_S4_OutdoorTwoPhase(t *testing.T) {
	indoorOnly := &solver.Request{
		PlotWidth:  15,
		PlotLength: 15,
		PlotShape:  "rectangular",
		Rooms: []solver.RoomRequest{
			{ID: "living", Type: "living", TargetWidth: 4, TargetHeight: 4},
			{ID: "kitchen", Type: "kitchen", TargetWidth: 3, TargetHeight: 3},
			{ID: "master", Type: "master_bedroom", TargetWidth: 4, TargetHeight: 4},
		},
		Seed: 99,
	}
	combined := &solver.Request{
		PlotWidth:  15,
		PlotLength: 15,
		PlotShape:  "rectangular",
		Rooms: append([]solver.RoomRequest{}, append(indoorOnly.Rooms,
			solver.RoomRequest{ID: "garden", Type: "garden", TargetWidth: 3, TargetHeight: 3},
			solver.RoomRequest{ID: "parking", Type: "parking", TargetWidth: 3, TargetHeight: 3},
		)...),
		OutdoorFixtures: []string{"garden", "parking"},
		Seed:            99,
	}

	indoorResp, err := solver.Solve(context.Background(), indoorOnly, solver.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Solve (indoor-only): %v", err)
	}
	combinedResp, err := solver.Solve(context.Background(), combined, solver.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Solve (combined): %v", err)
	}

	indoorByID := make(map[string]solver.RoomResponse, len(indoorResp.Rooms))
	for _, rm := range indoorResp.Rooms {
		indoorByID[rm.ID] = rm
	}
	const tol = 1e-6
	for _, rm := range combinedResp.Rooms {
		want, ok := indoorByID[rm.ID]
		if !ok {
			continue // outdoor room, nothing to compare
		}
		if abs(rm.X-want.X) > tol || abs(rm.Y-want.Y) > tol || abs(rm.Width-want.Width) > tol || abs(rm.Height-want.Height) > tol {
			t.Errorf("indoor room %q diverged across two-phase solve: got %+v, want %+v", rm.ID, rm, want)
		}
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// TestSolve_S5_DegenerateOverpack covers spec scenario S5.
func TestSolve_S5_DegenerateOverpack(t *testing.T) {
	req := &solver.Request{
		PlotWidth:  6,
		PlotLength: 6,
		PlotShape:  "rectangular",
		Seed:       11,
	}
	for i := 0; i < 10; i++ {
		req.Rooms = append(req.Rooms, solver.RoomRequest{
			ID:          idFor(i),
			Type:        "bedroom",
			TargetWidth: 3,
			TargetHeight: 3,
		})
	}
	resp, err := solver.Solve(context.Background(), req, solver.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if resp.Score >= 50 {
		t.Errorf("score = %.2f, want < 50 for an overpacked plot", resp.Score)
	}
}

func idFor(i int) string {
	return "room" + string(rune('a'+i))
}

// TestSolve_EmptyRooms_IsInvalidRequest covers spec.md §7's InvalidRequest
// error kind for an empty room set.
func TestSolve_EmptyRooms_IsInvalidRequest(t *testing.T) {
	req := &solver.Request{PlotWidth: 10, PlotLength: 10, PlotShape: "rectangular"}
	_, err := solver.Solve(context.Background(), req, solver.DefaultConfig(), nil)
	if err == nil {
		t.Fatal("expected an error for an empty room set")
	}
}

// TestSolve_NonPositivePlotDimensions_IsInvalidRequest covers another
// InvalidRequest case.
func TestSolve_NonPositivePlotDimensions_IsInvalidRequest(t *testing.T) {
	req := &solver.Request{
		PlotWidth:  0,
		PlotLength: 10,
		PlotShape:  "rectangular",
		Rooms:      []solver.RoomRequest{{ID: "living", Type: "living", TargetWidth: 3, TargetHeight: 3}},
	}
	_, err := solver.Solve(context.Background(), req, solver.DefaultConfig(), nil)
	if err == nil {
		t.Fatal("expected an error for non-positive plot dimensions")
	}
}

// TestSolve_ContextCancellation ensures Solve respects an already-cancelled
// context rather than running the full pipeline.
func TestSolve_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := solver.Solve(ctx, s1Request(1), solver.DefaultConfig(), nil)
	if err == nil {
		t.Fatal("expected an error from a cancelled context")
	}
}

// TestSolve_ScoreAlwaysInRange is property 4: score in [0,100] across a
// handful of varied requests.
func TestSolve_ScoreAlwaysInRange(t *testing.T) {
	seeds := []uint64{1, 2, 3, 42, 1000}
	for _, seed := range seeds {
		resp, err := solver.Solve(context.Background(), s1Request(seed), solver.DefaultConfig(), nil)
		if err != nil {
			t.Fatalf("seed %d: Solve: %v", seed, err)
		}
		if resp.Score < 0 || resp.Score > 100 {
			t.Errorf("seed %d: score = %.2f, want in [0,100]", seed, resp.Score)
		}
	}
}
