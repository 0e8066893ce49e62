package geom

import "math"

// ToPolygon returns the rectangle as a CCW polygon with its default
// (axis-aligned) orientation.
func (r Rect) ToPolygon() Polygon {
	c := r.Corners()
	return Polygon{Vertices: c[:]}
}

// RotatedRectPolygon returns the CCW polygon for a rectangle of the given
// width/height, centered at (cx, cy), rotated by theta radians about its
// center. Used by the refiner's rotate move, which produces
// non-axis-aligned rectangles (spec.md §9, open question 3).
func RotatedRectPolygon(cx, cy, w, h, theta float64) Polygon {
	hw, hh := w/2, h/2
	local := [4]Point{
		{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh},
	}
	cos, sin := math.Cos(theta), math.Sin(theta)
	verts := make([]Point, 4)
	for i, p := range local {
		verts[i] = Point{
			X: cx + p.X*cos - p.Y*sin,
			Y: cy + p.X*sin + p.Y*cos,
		}
	}
	return Polygon{Vertices: verts}
}

// SutherlandHodgmanClip clips subject against the convex polygon clip,
// returning the intersection polygon (possibly empty). clip must be
// convex and CCW-wound; subject need not be. This replaces the source's
// reliance on a general-purpose polygon library (Shapely) for the one
// case this solver needs it: overlap area between two rectangles when
// the refiner's rotate move is enabled.
func SutherlandHodgmanClip(subject, clip Polygon) Polygon {
	output := subject.Vertices
	if len(output) == 0 || len(clip.Vertices) < 3 {
		return Polygon{}
	}

	cn := len(clip.Vertices)
	for i := 0; i < cn; i++ {
		if len(output) == 0 {
			break
		}
		a := clip.Vertices[i]
		b := clip.Vertices[(i+1)%cn]

		input := output
		output = nil
		if len(input) == 0 {
			continue
		}
		prev := input[len(input)-1]
		prevInside := isInsideEdge(prev, a, b)
		for _, cur := range input {
			curInside := isInsideEdge(cur, a, b)
			if curInside {
				if !prevInside {
					output = append(output, lineIntersect(prev, cur, a, b))
				}
				output = append(output, cur)
			} else if prevInside {
				output = append(output, lineIntersect(prev, cur, a, b))
			}
			prev = cur
			prevInside = curInside
		}
	}
	return Polygon{Vertices: output}
}

// isInsideEdge reports whether p is on the inside (left) side of the
// directed edge a->b, per the CCW convention.
func isInsideEdge(p, a, b Point) bool {
	return (b.X-a.X)*(p.Y-a.Y)-(b.Y-a.Y)*(p.X-a.X) >= 0
}

func lineIntersect(p1, p2, a, b Point) Point {
	x1, y1, x2, y2 := p1.X, p1.Y, p2.X, p2.Y
	x3, y3, x4, y4 := a.X, a.Y, b.X, b.Y

	denom := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if math.Abs(denom) < 1e-12 {
		return p2
	}
	t := ((x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)) / denom
	return Point{X: x1 + t*(x2-x1), Y: y1 + t*(y2-y1)}
}

// RectOrRotatedRectOverlapArea computes the overlap area between two
// rectangles that may each carry an independent rotation about their own
// center. When both rotations are (numerically) zero or a multiple of pi
// this reduces to the cheap axis-aligned overlap; otherwise it falls back to Sutherland-
// Hodgman clipping of the two rectangle polygons. Isolated behind this
// helper per spec.md §9's design note.
func RectOrRotatedRectOverlapArea(r1 Rect, theta1 float64, r2 Rect, theta2 float64) float64 {
	if isAxisAligned(theta1) && isAxisAligned(theta2) {
		return r1.OverlapArea(r2)
	}

	p1 := RotatedRectPolygon(r1.Center().X, r1.Center().Y, r1.Width(), r1.Height(), theta1)
	p2 := RotatedRectPolygon(r2.Center().X, r2.Center().Y, r2.Width(), r2.Height(), theta2)

	// Ensure p2 (the clip polygon) is CCW; RotatedRectPolygon always
	// produces CCW output for theta in any direction since rotation
	// preserves winding, so no correction is needed here.
	clipped := SutherlandHodgmanClip(p1, p2)
	if len(clipped.Vertices) < 3 {
		return 0
	}
	return math.Abs(PolygonArea(clipped))
}

func isAxisAligned(theta float64) bool {
	const eps = 1e-9
	normalized := math.Mod(theta, math.Pi)
	if normalized < 0 {
		normalized += math.Pi
	}
	return normalized < eps || math.Pi-normalized < eps
}
