package layout

import (
	"math"

	"github.com/vastuforge/floorplan/pkg/geom"
)

// Shape is the closed set plot_shape normalizes to (spec.md §6); unknown
// values fall back to Rectangular.
type Shape int

const (
	Rectangular Shape = iota
	Triangular
	LShaped
	Irregular
	Circular
)

// ParseShape maps a free-form shape string to the closed Shape set,
// defaulting to Rectangular for anything unrecognized (spec.md §4.6:
// "normalizes plot_shape to a closed set... defaulting to rectangular on
// unknown"). Square, t-shaped, and l-shaped all route through the
// general polygon path (Irregular) except square (Rectangular) and
// l-shaped, which keeps its own tag only for diagnostics.
func ParseShape(s string) Shape {
	switch s {
	case "rectangular", "square":
		return Rectangular
	case "triangular":
		return Triangular
	case "l-shaped":
		return LShaped
	case "t-shaped", "irregular":
		return Irregular
	case "circular":
		return Circular
	default:
		return Rectangular
	}
}

// Circle is the plot's circular boundary, used when Shape == Circular.
type Circle struct {
	Center geom.Point
	Radius float64
}

// Plot is the normalized placement boundary: a bounding width/length, an
// optional explicit polygon (required for Triangular/LShaped/Irregular),
// and an optional circle (required for Circular).
type Plot struct {
	Shape   Shape
	Width   float64 // W
	Length  float64 // L
	Polygon geom.Polygon
	Circle  *Circle
}

// Contains reports whether a point lies within the plot boundary,
// dispatching on Shape.
func (p *Plot) Contains(pt geom.Point) bool {
	switch p.Shape {
	case Circular:
		if p.Circle == nil {
			return false
		}
		dx, dy := pt.X-p.Circle.Center.X, pt.Y-p.Circle.Center.Y
		return dx*dx+dy*dy <= p.Circle.Radius*p.Circle.Radius
	case Rectangular:
		if len(p.Polygon.Vertices) >= 3 {
			return geom.PointInPolygon(pt, p.Polygon)
		}
		return pt.X >= 0 && pt.X <= p.Width && pt.Y >= 0 && pt.Y <= p.Length
	default:
		return geom.PointInPolygon(pt, p.Polygon)
	}
}

// ProjectPoint clamps pt into the plot boundary, dispatching on Shape.
// Used by the placer's per-step projection and the refiner's local
// repair pass.
func (p *Plot) ProjectPoint(pt geom.Point) geom.Point {
	if p.Contains(pt) {
		return pt
	}

	switch p.Shape {
	case Circular:
		if p.Circle == nil {
			return pt
		}
		dx, dy := pt.X-p.Circle.Center.X, pt.Y-p.Circle.Center.Y
		d := math.Hypot(dx, dy)
		if d < 1e-9 {
			return p.Circle.Center
		}
		scale := p.Circle.Radius / d
		return geom.Point{
			X: p.Circle.Center.X + dx*scale,
			Y: p.Circle.Center.Y + dy*scale,
		}
	case Rectangular:
		if len(p.Polygon.Vertices) >= 3 {
			return geom.ProjectOntoPolygon(pt, p.Polygon)
		}
		x := math.Min(math.Max(pt.X, 0), p.Width)
		y := math.Min(math.Max(pt.Y, 0), p.Length)
		return geom.Point{X: x, Y: y}
	default:
		return geom.ProjectOntoPolygon(pt, p.Polygon)
	}
}

// BoundingBox returns the plot's axis-aligned bounding rectangle, used
// to size the Vastu field and for initial-placement anchor computation.
func (p *Plot) BoundingBox() geom.Rect {
	if len(p.Polygon.Vertices) >= 3 {
		return geom.BoundingBox(p.Polygon)
	}
	if p.Shape == Circular && p.Circle != nil {
		return geom.Rect{
			MinX: p.Circle.Center.X - p.Circle.Radius, MinY: p.Circle.Center.Y - p.Circle.Radius,
			MaxX: p.Circle.Center.X + p.Circle.Radius, MaxY: p.Circle.Center.Y + p.Circle.Radius,
		}
	}
	return geom.Rect{MinX: 0, MinY: 0, MaxX: p.Width, MaxY: p.Length}
}

// EffectivePolygon returns the plot's polygon representation regardless
// of shape, synthesizing one for Rectangular/Circular plots that were
// given only dimensions. Used by geometry paths (e.g. the Vastu field)
// that always want a polygon.
func (p *Plot) EffectivePolygon() geom.Polygon {
	if len(p.Polygon.Vertices) >= 3 {
		return p.Polygon
	}
	if p.Shape == Circular && p.Circle != nil {
		const segments = 64
		verts := make([]geom.Point, segments)
		for i := 0; i < segments; i++ {
			theta := 2 * math.Pi * float64(i) / float64(segments)
			verts[i] = geom.Point{
				X: p.Circle.Center.X + p.Circle.Radius*math.Cos(theta),
				Y: p.Circle.Center.Y + p.Circle.Radius*math.Sin(theta),
			}
		}
		return geom.Polygon{Vertices: verts}
	}
	return geom.Polygon{Vertices: []geom.Point{
		{X: 0, Y: 0}, {X: p.Width, Y: 0}, {X: p.Width, Y: p.Length}, {X: 0, Y: p.Length},
	}}
}
