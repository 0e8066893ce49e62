package refine

import (
	"math"

	"github.com/vastuforge/floorplan/pkg/geom"
	"github.com/vastuforge/floorplan/pkg/graph"
	"github.com/vastuforge/floorplan/pkg/layout"
	"github.com/vastuforge/floorplan/pkg/spatial"
	"github.com/vastuforge/floorplan/pkg/vastu"
)

// energy computes E(L), lower is better, as the sum of the seven
// weighted terms of spec.md §4.5: overlap, Vastu, adjacency,
// circulation, boundary, area preservation, and alignment.
func energy(rooms []layout.RoomState, g *graph.Graph, plot *layout.Plot, field *vastu.Field, cfg *Config) float64 {
	e := 0.0
	e += cfg.LambdaOverlap * overlapTerm(rooms, cfg.OverlapTolerance)
	e += cfg.LambdaVastu * vastuTerm(rooms, field)
	e += cfg.LambdaAdjacency * adjacencyTerm(rooms, g)
	e += cfg.LambdaCirculation * circulationTerm(rooms, cfg.MinCirculationGap)
	e += cfg.LambdaBoundary * boundaryTerm(rooms, plot)
	e += cfg.LambdaArea * areaTerm(rooms)
	e += cfg.LambdaAlign * alignmentTerm(rooms, cfg.AlignTolerance)
	return e
}

// overlapTerm sums max(0, overlap_area(i,j) - tau) over all pairs, using
// the spatial index to cut down candidate pairs (spec.md §4.5).
func overlapTerm(rooms []layout.RoomState, tau float64) float64 {
	index := spatial.NewGrid(1.0)
	for i := range rooms {
		index.Insert(i, rooms[i].Rect())
	}

	total := 0.0
	counted := make(map[[2]int]bool)
	for i := range rooms {
		for _, j := range index.QueryOverlapCandidates(rooms[i].Rect()) {
			if j == i {
				continue
			}
			key := [2]int{i, j}
			if i > j {
				key = [2]int{j, i}
			}
			if counted[key] {
				continue
			}
			counted[key] = true

			overlap := geom.RectOrRotatedRectOverlapArea(rooms[i].Rect(), rooms[i].Rotation, rooms[j].Rect(), rooms[j].Rotation)
			if overlap > tau {
				total += overlap - tau
			}
		}
	}
	return total
}

// vastuTerm is -sum Phi(center_i, type_i): lower energy for higher Phi.
func vastuTerm(rooms []layout.RoomState, field *vastu.Field) float64 {
	total := 0.0
	for i := range rooms {
		total -= field.Sample(rooms[i].CenterX, rooms[i].CenterY, rooms[i].Type)
	}
	return total
}

// adjacencyTerm sums the gap between the two rectangles (rectDistance)
// for required pairs that aren't touching, plus a small penalty for incidental
// contact between non-required pairs (spec.md §4.5).
func adjacencyTerm(rooms []layout.RoomState, g *graph.Graph) float64 {
	byID := make(map[string]int, len(rooms))
	for i := range rooms {
		byID[rooms[i].ID] = i
	}
	required := make(map[[2]int]bool)
	for aID, edges := range g.Adjacency {
		ai, ok := byID[aID]
		if !ok {
			continue
		}
		for _, e := range edges {
			bi, ok := byID[e.To]
			if !ok {
				continue
			}
			key := [2]int{ai, bi}
			if ai > bi {
				key = [2]int{bi, ai}
			}
			required[key] = true
		}
	}

	total := 0.0
	for i := range rooms {
		for j := i + 1; j < len(rooms); j++ {
			touching := geom.RectOrRotatedRectOverlapArea(rooms[i].Rect(), rooms[i].Rotation, rooms[j].Rect(), rooms[j].Rotation) > 0 || rectsTouch(rooms[i].Rect(), rooms[j].Rect())
			key := [2]int{i, j}
			if required[key] {
				if !touching {
					total += rectDistance(rooms[i].Rect(), rooms[j].Rect())
				}
			} else if touching {
				total += 0.1
			}
		}
	}
	return total
}

func rectsTouch(a, b geom.Rect) bool {
	const eps = 1e-9
	xOverlap := a.MinX <= b.MaxX+eps && b.MinX <= a.MaxX+eps
	yOverlap := a.MinY <= b.MaxY+eps && b.MinY <= a.MaxY+eps
	xTouch := math.Abs(a.MaxX-b.MinX) < eps || math.Abs(b.MaxX-a.MinX) < eps
	yTouch := math.Abs(a.MaxY-b.MinY) < eps || math.Abs(b.MaxY-a.MinY) < eps
	return xOverlap && yOverlap && (xTouch || yTouch)
}

// rectDistance is the gap between two axis-aligned rectangles (0 if
// they overlap or touch).
func rectDistance(a, b geom.Rect) float64 {
	dx := math.Max(0, math.Max(a.MinX-b.MaxX, b.MinX-a.MaxX))
	dy := math.Max(0, math.Max(a.MinY-b.MaxY, b.MinY-a.MaxY))
	return math.Hypot(dx, dy)
}

// circulationTerm sums (min_gap - actual_gap) over pairs closer than
// min_gap (spec.md §4.5).
func circulationTerm(rooms []layout.RoomState, minGap float64) float64 {
	if minGap <= 0 {
		return 0
	}
	total := 0.0
	for i := range rooms {
		for j := i + 1; j < len(rooms); j++ {
			d := rectDistance(rooms[i].Rect(), rooms[j].Rect())
			if d < minGap {
				total += minGap - d
			}
		}
	}
	return total
}

// boundaryTerm sums the area of each room lying outside the plot.
func boundaryTerm(rooms []layout.RoomState, plot *layout.Plot) float64 {
	total := 0.0
	for i := range rooms {
		total += outsideArea(rooms[i], plot)
	}
	return total
}

// outsideArea approximates the area of a room's rectangle outside the
// plot boundary by sampling its four corners and, for any outside, using
// the full room area as the penalty (a coarse but bounded substitute for
// the exact polygon-difference area the original computes via Shapely).
func outsideArea(room layout.RoomState, plot *layout.Plot) float64 {
	rect := room.Rect()
	outsideCorners := 0
	for _, c := range rect.Corners() {
		if !plot.Contains(c) {
			outsideCorners++
		}
	}
	if outsideCorners == 0 {
		return 0
	}
	return room.Area() * float64(outsideCorners) / 4
}

// areaTerm sums |area_i - target_area_i|.
func areaTerm(rooms []layout.RoomState) float64 {
	total := 0.0
	for i := range rooms {
		target := rooms[i].TargetArea
		if target <= 0 {
			target = rooms[i].OriginalArea
		}
		total += math.Abs(rooms[i].Area() - target)
	}
	return total
}

// alignmentTerm returns -1 for every pair of rooms sharing at least one
// pair of edges with matching slope and at least one pair of endpoints
// within tolerance (spec.md §4.5's "aligned edges" bonus).
func alignmentTerm(rooms []layout.RoomState, tol float64) float64 {
	total := 0.0
	for i := range rooms {
		for j := i + 1; j < len(rooms); j++ {
			if edgesAligned(rooms[i].Polygon(), rooms[j].Polygon(), tol) {
				total--
			}
		}
	}
	return total
}

func edgesAligned(a, b geom.Polygon, tol float64) bool {
	for ai := 0; ai < len(a.Vertices); ai++ {
		a1, a2 := a.Vertices[ai], a.Vertices[(ai+1)%len(a.Vertices)]
		for bi := 0; bi < len(b.Vertices); bi++ {
			b1, b2 := b.Vertices[bi], b.Vertices[(bi+1)%len(b.Vertices)]
			if slopesMatch(a1, a2, b1, b2, tol) && endpointsClose(a1, a2, b1, b2, tol) {
				return true
			}
		}
	}
	return false
}

func slope(p1, p2 geom.Point) (float64, bool) {
	if math.Abs(p2.X-p1.X) < 1e-9 {
		return 0, false // vertical
	}
	return (p2.Y - p1.Y) / (p2.X - p1.X), true
}

func slopesMatch(a1, a2, b1, b2 geom.Point, tol float64) bool {
	sa, aOK := slope(a1, a2)
	sb, bOK := slope(b1, b2)
	if !aOK && !bOK {
		return true
	}
	if aOK != bOK {
		return false
	}
	return math.Abs(sa-sb) < tol
}

// endpointsClose reports whether any endpoint of edge a is within tol of
// any endpoint of edge b.
func endpointsClose(a1, a2, b1, b2 geom.Point, tol float64) bool {
	d := func(p, q geom.Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }
	return d(a1, b1) < tol || d(a1, b2) < tol || d(a2, b1) < tol || d(a2, b2) < tol
}
