package vastu

import (
	"fmt"
	"math"

	"github.com/vastuforge/floorplan/pkg/geom"
	"github.com/vastuforge/floorplan/pkg/roomdata"
)

// DefaultResolution is the default grid spacing in meters (spec.md §3).
const DefaultResolution = 0.05

// DefaultSigma is the Gaussian standard deviation used to build each
// type's preference field, taken from the original implementation's
// PhiParams.gaussian_sigma default.
const DefaultSigma = 2.0

type cacheKey struct {
	qx, qy int
	t      roomdata.RoomType
}

// Field is the Vastu potential field Φ: a per-RoomType dense grid of
// scalars in [0,1] over the plot's bounding box, built once per solve
// (spec.md §5). The grids are not modified afterward, but Sample writes
// every result into an internal cache map.
type Field struct {
	poly       geom.Polygon
	bounds     geom.Rect
	resolution float64
	sigma      float64
	nx, ny     int
	mask       []bool
	grids      map[roomdata.RoomType][]float64
	cache      map[cacheKey]float64
}

// NewField constructs Φ for the given polygon and set of room types.
// resolution and sigma fall back to the spec defaults when <= 0.
func NewField(poly geom.Polygon, types []roomdata.RoomType, resolution, sigma float64) (*Field, error) {
	if len(poly.Vertices) < 3 {
		return nil, fmt.Errorf("vastu: polygon must have at least 3 vertices, got %d", len(poly.Vertices))
	}
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	if sigma <= 0 {
		sigma = DefaultSigma
	}

	bounds := geom.BoundingBox(poly)
	nx := int(math.Ceil(bounds.Width()/resolution)) + 1
	ny := int(math.Ceil(bounds.Height()/resolution)) + 1
	if nx < 2 {
		nx = 2
	}
	if ny < 2 {
		ny = 2
	}

	f := &Field{
		poly:       poly,
		bounds:     bounds,
		resolution: resolution,
		sigma:      sigma,
		nx:         nx,
		ny:         ny,
		grids:      make(map[roomdata.RoomType][]float64, len(types)),
		cache:      make(map[cacheKey]float64),
	}

	f.mask = f.buildMask()
	for _, t := range types {
		f.grids[t] = f.buildGrid(t)
	}
	return f, nil
}

func (f *Field) xAt(i int) float64 {
	if f.nx <= 1 {
		return f.bounds.MinX
	}
	return f.bounds.MinX + float64(i)*f.bounds.Width()/float64(f.nx-1)
}

func (f *Field) yAt(j int) float64 {
	if f.ny <= 1 {
		return f.bounds.MinY
	}
	return f.bounds.MinY + float64(j)*f.bounds.Height()/float64(f.ny-1)
}

func (f *Field) buildMask() []bool {
	mask := make([]bool, f.nx*f.ny)
	for j := 0; j < f.ny; j++ {
		y := f.yAt(j)
		for i := 0; i < f.nx; i++ {
			x := f.xAt(i)
			mask[j*f.nx+i] = geom.PointInPolygon(geom.Point{X: x, Y: y}, f.poly)
		}
	}
	return mask
}

// buildGrid sums Gaussian bumps at the preferred anchors of t, applies
// the inside-polygon mask, and normalizes so the max value is 1. Types
// with no declared preferred directions get a flat, masked 0.5 grid
// (spec.md §4.2: "Untyped rooms use a uniform 0.5" — the same rule
// covers any type whose preference set happens to be empty).
func (f *Field) buildGrid(t roomdata.RoomType) []float64 {
	grid := make([]float64, f.nx*f.ny)
	pref := roomdata.Preference(t)

	if len(pref.Preferred) == 0 {
		for idx := range grid {
			grid[idx] = 0.5
		}
		f.applyMask(grid)
		return grid
	}

	twoSigmaSq := 2 * f.sigma * f.sigma
	for _, dir := range pref.Preferred {
		fx, fy := dir.AnchorFraction()
		cx := f.bounds.MinX + fx*f.bounds.Width()
		cy := f.bounds.MinY + fy*f.bounds.Height()
		for j := 0; j < f.ny; j++ {
			y := f.yAt(j)
			dy := y - cy
			for i := 0; i < f.nx; i++ {
				x := f.xAt(i)
				dx := x - cx
				grid[j*f.nx+i] += pref.Weight * math.Exp(-(dx*dx+dy*dy)/twoSigmaSq)
			}
		}
	}

	f.applyMask(grid)

	maxV := 0.0
	for _, v := range grid {
		if v > maxV {
			maxV = v
		}
	}
	if maxV > 0 {
		for idx := range grid {
			grid[idx] /= maxV
		}
	}
	return grid
}

func (f *Field) applyMask(grid []float64) {
	for idx, inside := range f.mask {
		if !inside {
			grid[idx] = 0
		}
	}
}

// Sample returns Φ(x, y, type): 0 outside the polygon, otherwise the
// bilinear interpolation of the type's grid. Untyped and any type the
// field wasn't built with returns a flat 0.5 (masked).
func (f *Field) Sample(x, y float64, t roomdata.RoomType) float64 {
	if !geom.PointInPolygon(geom.Point{X: x, Y: y}, f.poly) {
		return 0
	}

	qx := int(math.Round(x / f.resolution))
	qy := int(math.Round(y / f.resolution))
	key := cacheKey{qx, qy, t}
	if v, ok := f.cache[key]; ok {
		return v
	}

	grid, ok := f.grids[t]
	if !ok {
		v := 0.5
		f.cache[key] = v
		return v
	}

	v := f.bilinear(x, y, grid)
	f.cache[key] = v
	return v
}

func (f *Field) bilinear(x, y float64, grid []float64) float64 {
	gx := (x - f.bounds.MinX) / f.resolution
	gy := (y - f.bounds.MinY) / f.resolution

	i0 := int(math.Floor(gx))
	j0 := int(math.Floor(gy))
	i1 := i0 + 1
	j1 := j0 + 1

	i0 = clampInt(i0, 0, f.nx-1)
	i1 = clampInt(i1, 0, f.nx-1)
	j0 = clampInt(j0, 0, f.ny-1)
	j1 = clampInt(j1, 0, f.ny-1)

	wx := gx - math.Floor(gx)
	wy := gy - math.Floor(gy)

	v00 := grid[j0*f.nx+i0]
	v10 := grid[j0*f.nx+i1]
	v01 := grid[j1*f.nx+i0]
	v11 := grid[j1*f.nx+i1]

	return (1-wx)*(1-wy)*v00 + wx*(1-wy)*v10 + (1-wx)*wy*v01 + wx*wy*v11
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Gradient returns (∂Φ/∂x, ∂Φ/∂y) at (x, y) via central differences with
// step 0.1*resolution.
func (f *Field) Gradient(x, y float64, t roomdata.RoomType) (float64, float64) {
	eps := 0.1 * f.resolution
	dx := (f.Sample(x+eps, y, t) - f.Sample(x-eps, y, t)) / (2 * eps)
	dy := (f.Sample(x, y+eps, t) - f.Sample(x, y-eps, t)) / (2 * eps)
	return dx, dy
}

// ArgmaxInWindow scans the grid within bbox intersected with a circular
// window of the given radius centered on bbox's center, returning the
// point achieving the maximum Φ for t. Ties are broken by lexicographic
// grid order (row-major, then column).
func (f *Field) ArgmaxInWindow(t roomdata.RoomType, bbox geom.Rect, radius float64) geom.Point {
	grid, ok := f.grids[t]
	if !ok {
		return bbox.Center()
	}

	center := bbox.Center()
	best := geom.Point{X: center.X, Y: center.Y}
	bestVal := math.Inf(-1)

	for j := 0; j < f.ny; j++ {
		y := f.yAt(j)
		if y < bbox.MinY || y > bbox.MaxY {
			continue
		}
		for i := 0; i < f.nx; i++ {
			x := f.xAt(i)
			if x < bbox.MinX || x > bbox.MaxX {
				continue
			}
			if radius > 0 {
				dx, dy := x-center.X, y-center.Y
				if dx*dx+dy*dy > radius*radius {
					continue
				}
			}
			v := grid[j*f.nx+i]
			if v > bestVal {
				bestVal = v
				best = geom.Point{X: x, Y: y}
			}
		}
	}
	return best
}

// Bounds returns the plot's bounding box the field was built over.
func (f *Field) Bounds() geom.Rect { return f.bounds }
