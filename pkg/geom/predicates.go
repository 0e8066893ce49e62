package geom

import "math"

// PointInPolygon reports whether p lies inside poly, treating boundary
// points as inside. Uses ray casting, O(n) in the vertex count. The
// polygon is assumed simple and non-degenerate; primitives never
// validate (spec.md §4.1).
func PointInPolygon(p Point, poly Polygon) bool {
	verts := poly.Vertices
	n := len(verts)
	if n < 3 {
		return false
	}

	if onBoundary(p, poly) {
		return true
	}

	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi, vj := verts[i], verts[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) {
			xIntersect := vj.X + (p.Y-vj.Y)*(vi.X-vj.X)/(vi.Y-vj.Y)
			if p.X < xIntersect {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

func onBoundary(p Point, poly Polygon) bool {
	verts := poly.Vertices
	n := len(verts)
	const eps = 1e-9
	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		d := distPointToSegment(p, a, b)
		if d < eps {
			return true
		}
	}
	return false
}

// ProjectOntoPolygon returns the nearest point on the polygon boundary to
// p: the minimum-distance projection over all closed edge segments.
func ProjectOntoPolygon(p Point, poly Polygon) Point {
	verts := poly.Vertices
	n := len(verts)
	if n < 2 {
		if n == 1 {
			return verts[0]
		}
		return p
	}

	best := Point{}
	bestDist := math.Inf(1)
	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		q := projectOntoSegment(p, a, b)
		d := dist(p, q)
		if d < bestDist {
			bestDist = d
			best = q
		}
	}
	return best
}

func projectOntoSegment(p, a, b Point) Point {
	abx, aby := b.X-a.X, b.Y-a.Y
	lenSq := abx*abx + aby*aby
	if lenSq < 1e-18 {
		return a
	}
	t := ((p.X-a.X)*abx + (p.Y-a.Y)*aby) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Point{X: a.X + t*abx, Y: a.Y + t*aby}
}

func distPointToSegment(p, a, b Point) float64 {
	q := projectOntoSegment(p, a, b)
	return dist(p, q)
}

func dist(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// PolygonArea computes the signed area via the shoelace formula. CCW
// polygons (the convention used throughout this package) yield a
// positive value.
func PolygonArea(poly Polygon) float64 {
	verts := poly.Vertices
	n := len(verts)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += verts[i].X*verts[j].Y - verts[j].X*verts[i].Y
	}
	return sum / 2
}

// PolygonCentroid computes the area-weighted centroid via the shoelace
// formula, falling back to the vertex mean for degenerate (zero-area)
// polygons.
func PolygonCentroid(poly Polygon) Point {
	verts := poly.Vertices
	n := len(verts)
	if n == 0 {
		return Point{}
	}

	area := PolygonArea(poly)
	if math.Abs(area) < 1e-12 {
		var sx, sy float64
		for _, v := range verts {
			sx += v.X
			sy += v.Y
		}
		return Point{X: sx / float64(n), Y: sy / float64(n)}
	}

	var cx, cy float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := verts[i].X*verts[j].Y - verts[j].X*verts[i].Y
		cx += (verts[i].X + verts[j].X) * cross
		cy += (verts[i].Y + verts[j].Y) * cross
	}
	factor := 1.0 / (6 * area)
	return Point{X: cx * factor, Y: cy * factor}
}

// PolygonPerimeter returns the sum of edge lengths.
func PolygonPerimeter(poly Polygon) float64 {
	verts := poly.Vertices
	n := len(verts)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		total += dist(verts[i], verts[j])
	}
	return total
}

// PolygonInradius approximates the radius of the largest disk inscribed
// in the polygon as area/(perimeter/2). Exact for triangles; used only
// for placement heuristics elsewhere in the solver, never for hard
// containment checks (spec.md §4.1).
func PolygonInradius(poly Polygon) float64 {
	perimeter := PolygonPerimeter(poly)
	if perimeter < 1e-12 {
		return 0
	}
	area := math.Abs(PolygonArea(poly))
	return area / (perimeter / 2)
}

// BoundingBox returns the axis-aligned bounding rectangle of a polygon.
func BoundingBox(poly Polygon) Rect {
	verts := poly.Vertices
	if len(verts) == 0 {
		return Rect{}
	}
	r := Rect{MinX: verts[0].X, MinY: verts[0].Y, MaxX: verts[0].X, MaxY: verts[0].Y}
	for _, v := range verts[1:] {
		r.MinX = min(r.MinX, v.X)
		r.MinY = min(r.MinY, v.Y)
		r.MaxX = max(r.MaxX, v.X)
		r.MaxY = max(r.MaxY, v.Y)
	}
	return r
}
