package placer

import (
	"math"
	"sort"

	"github.com/vastuforge/floorplan/pkg/geom"
	"github.com/vastuforge/floorplan/pkg/graph"
	"github.com/vastuforge/floorplan/pkg/layout"
	"github.com/vastuforge/floorplan/pkg/rng"
	"github.com/vastuforge/floorplan/pkg/roomdata"
)

// applyAttraction adds, for every weighted adjacency edge (i,j), a spring
// force pulling the pair toward the ideal distance d* = idealDistance(i,j)
// with magnitude k_a * weight * (d - d*) (spec.md §4.4).
func (p *ForceDirectedPlacer) applyAttraction(g *graph.Graph, state []layout.RoomState, byID map[string]int, forces []vec2) {
	seen := make(map[[2]int]bool)
	aIDs := make([]string, 0, len(g.Adjacency))
	for aID := range g.Adjacency {
		aIDs = append(aIDs, aID)
	}
	sort.Strings(aIDs)
	for _, aID := range aIDs {
		edges := g.Adjacency[aID]
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
			if seen[key] {
				continue
			}
			seen[key] = true

			a, b := &state[ai], &state[bi]
			dx, dy := b.CenterX-a.CenterX, b.CenterY-a.CenterY
			d := math.Hypot(dx, dy)
			if d < 1e-6 {
				continue
			}
			dStar := p.idealDistance(a, b)
			mag := p.config.AlphaAttraction * e.Weight * (d - dStar)
			ux, uy := dx/d, dy/d

			forces[ai].x += mag * ux
			forces[ai].y += mag * uy
			forces[bi].x -= mag * ux
			forces[bi].y -= mag * uy
		}
	}
}

// applyRepulsion adds, for every pair not joined by an adjacency edge, a
// force pushing the pair apart with magnitude k_r * (R_rep / d). Pairs at
// degenerate distance (d < 0.1) are pushed apart along a random unit
// vector rather than dividing by a near-zero distance (spec.md §4.4).
// Outdoor/indoor pairs get this same repulsion applied asymmetrically:
// only the outdoor room's force accumulator receives it, so indoor rooms
// are not pushed by outdoor placement (spec.md §4.4's asymmetric note).
func (p *ForceDirectedPlacer) applyRepulsion(g *graph.Graph, state []layout.RoomState, byID map[string]int, ids []string, forces []vec2, r *rng.RNG) {
	adjacent := adjacentIndexSet(g, byID)

	for ii := 0; ii < len(ids); ii++ {
		ai := byID[ids[ii]]
		for jj := ii + 1; jj < len(ids); jj++ {
			bi := byID[ids[jj]]
			key := [2]int{ai, bi}
			if ai > bi {
				key = [2]int{bi, ai}
			}
			if adjacent[key] {
				continue
			}

			a, b := &state[ai], &state[bi]
			dx, dy := b.CenterX-a.CenterX, b.CenterY-a.CenterY
			d := math.Hypot(dx, dy)
			var ux, uy float64
			if d < 0.1 {
				theta := r.Float64Range(0, 2*math.Pi)
				ux, uy = math.Cos(theta), math.Sin(theta)
				d = 0.1
			} else {
				ux, uy = dx/d, dy/d
			}
			mag := p.config.AlphaRepulsion * (p.config.RepulsionRadius / d)

			aOutdoor, bOutdoor := a.Type.IsOutdoor(), b.Type.IsOutdoor()
			asymmetric := aOutdoor != bOutdoor

			if !asymmetric || bOutdoor {
				forces[bi].x += mag * ux
				forces[bi].y += mag * uy
			}
			if !asymmetric || aOutdoor {
				forces[ai].x -= mag * ux
				forces[ai].y -= mag * uy
			}
		}
	}
}

// adjacentIndexSet returns the set of index pairs joined by a graph edge.
func adjacentIndexSet(g *graph.Graph, byID map[string]int) map[[2]int]bool {
	set := make(map[[2]int]bool)
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
			set[key] = true
		}
	}
	return set
}

// applyVastu adds a force pulling each room toward its cached Vastu
// target position, magnitude k_v * weight_type, zeroed once the room is
// within 0.5m of the target (spec.md §4.4).
func (p *ForceDirectedPlacer) applyVastu(state []layout.RoomState, targets []geom.Point, forces []vec2) {
	for i := range state {
		target := targets[i]
		dx, dy := target.X-state[i].CenterX, target.Y-state[i].CenterY
		d := math.Hypot(dx, dy)
		if d < 0.5 {
			continue
		}
		weight := roomdata.Preference(state[i].Type).Weight
		mag := p.config.AlphaVastu * weight
		forces[i].x += mag * dx / d
		forces[i].y += mag * dy / d
	}
}

// applyBoundary adds a force keeping each room inside the plot, with a
// formula dispatched on Plot.Shape (spec.md §4.4):
//   - rectangular: linear penalty proportional to penetration depth past
//     each of the four edges.
//   - polygon (irregular/l-shaped): projects every corner that has exited
//     onto the boundary and pushes toward that projection, scaled by
//     penetration.
//   - circular: radial push toward the center once a corner exceeds the
//     radius.
//   - triangular: same linear penalty as rectangular against the two
//     axis-aligned legs, plus a penalty against the hypotenuse measured
//     by that edge's own inward normal.
func (p *ForceDirectedPlacer) applyBoundary(state []layout.RoomState, plot *layout.Plot, forces []vec2) {
	for i := range state {
		switch plot.Shape {
		case layout.Circular:
			p.boundaryCircular(&state[i], plot, &forces[i])
		case layout.Rectangular:
			p.boundaryRectangular(&state[i], plot, &forces[i])
		case layout.Triangular:
			p.boundaryTriangular(&state[i], plot, &forces[i])
		default:
			p.boundaryPolygon(&state[i], plot, &forces[i])
		}
	}
}

func (p *ForceDirectedPlacer) boundaryRectangular(room *layout.RoomState, plot *layout.Plot, f *vec2) {
	bbox := plot.BoundingBox()
	rect := room.Rect()

	if pen := bbox.MinX - rect.MinX; pen > 0 {
		f.x += p.config.AlphaBoundary * pen
	}
	if pen := rect.MaxX - bbox.MaxX; pen > 0 {
		f.x -= p.config.AlphaBoundary * pen
	}
	if pen := bbox.MinY - rect.MinY; pen > 0 {
		f.y += p.config.AlphaBoundary * pen
	}
	if pen := rect.MaxY - bbox.MaxY; pen > 0 {
		f.y -= p.config.AlphaBoundary * pen
	}
}

// boundaryTriangular treats the plot's bounding box legs (x=0 and y=0,
// assuming the right-triangle convention of a plot anchored at the
// origin) the same as the rectangular case but scaled 5x hard, then adds
// a penalty against the hypotenuse (the line through (W,0) and (0,L)),
// scaled 5x as well (spec.md §4.4: "hard left/top via rectangular terms
// scaled by 5" and the hypotenuse overshoot term "contributes
// -k_b * 5 * v * grad").
func (p *ForceDirectedPlacer) boundaryTriangular(room *layout.RoomState, plot *layout.Plot, f *vec2) {
	const triangularScale = 5.0

	rect := room.Rect()
	if pen := -rect.MinX; pen > 0 {
		f.x += p.config.AlphaBoundary * triangularScale * pen
	}
	if pen := -rect.MinY; pen > 0 {
		f.y += p.config.AlphaBoundary * triangularScale * pen
	}

	w, l := plot.Width, plot.Length
	if w <= 0 || l <= 0 {
		return
	}
	// Hypotenuse: x/w + y/l = 1, inward normal points toward the origin.
	normX, normY := 1/w, 1/l
	normLen := math.Hypot(normX, normY)
	normX, normY = normX/normLen, normY/normLen

	for _, c := range rect.Corners() {
		signedDist := (c.X/w + c.Y/l - 1) / normLen
		if signedDist > 0 {
			f.x -= p.config.AlphaBoundary * triangularScale * signedDist * normX
			f.y -= p.config.AlphaBoundary * triangularScale * signedDist * normY
		}
	}
}

func (p *ForceDirectedPlacer) boundaryCircular(room *layout.RoomState, plot *layout.Plot, f *vec2) {
	if plot.Circle == nil {
		return
	}
	cx, cy, radius := plot.Circle.Center.X, plot.Circle.Center.Y, plot.Circle.Radius
	rect := room.Rect()
	for _, c := range rect.Corners() {
		dx, dy := c.X-cx, c.Y-cy
		d := math.Hypot(dx, dy)
		if d <= radius || d < 1e-9 {
			continue
		}
		pen := d - radius
		f.x -= p.config.AlphaBoundary * pen * dx / d
		f.y -= p.config.AlphaBoundary * pen * dy / d
	}
}

// boundaryPolygon pushes any corner that has exited the polygon back
// in toward its projection onto the nearest boundary edge, scaled by
// penetration depth (distance from the corner to its projection).
func (p *ForceDirectedPlacer) boundaryPolygon(room *layout.RoomState, plot *layout.Plot, f *vec2) {
	poly := plot.EffectivePolygon()
	rect := room.Rect()
	for _, c := range rect.Corners() {
		if geom.PointInPolygon(c, poly) {
			continue
		}
		proj := geom.ProjectOntoPolygon(c, poly)
		dx, dy := proj.X-c.X, proj.Y-c.Y
		d := math.Hypot(dx, dy)
		if d < 1e-9 {
			continue
		}
		f.x += p.config.AlphaBoundary * dx
		f.y += p.config.AlphaBoundary * dy
	}
}
