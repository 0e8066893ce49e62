package placer

import (
	"fmt"
	"math"
	"sort"

	"github.com/vastuforge/floorplan/pkg/geom"
	"github.com/vastuforge/floorplan/pkg/graph"
	"github.com/vastuforge/floorplan/pkg/layout"
	"github.com/vastuforge/floorplan/pkg/rng"
	"github.com/vastuforge/floorplan/pkg/roomdata"
	"github.com/vastuforge/floorplan/pkg/spatial"
	"github.com/vastuforge/floorplan/pkg/vastu"
)

// ForceDirectedPlacer is the only placer implementation. It treats each
// room as a point mass with rectangular extent subject to attraction,
// repulsion, Vastu, and boundary forces, integrates a damped dynamical
// system to quasi-equilibrium, and deterministically resolves residual
// overlaps (spec.md §4.4).
type ForceDirectedPlacer struct {
	config *Config
}

// NewForceDirectedPlacer creates a placer with the given config.
func NewForceDirectedPlacer(config *Config) *ForceDirectedPlacer {
	if config == nil {
		config = DefaultConfig()
	}
	return &ForceDirectedPlacer{config: config}
}

// Name identifies this placer algorithm.
func (p *ForceDirectedPlacer) Name() string { return "force_directed" }

func init() {
	Register("force_directed", func(c *Config) Placer {
		return NewForceDirectedPlacer(c)
	})
}

type vec2 struct{ x, y float64 }

// Place runs the placer over rooms. fixed names rooms whose velocity is
// pinned to zero and whose position is never updated, implementing the
// two-phase indoor/outdoor split as a single code path (spec.md §4.4,
// §9 design note 7). An empty/nil fixed recovers single-phase behavior.
func (p *ForceDirectedPlacer) Place(g *graph.Graph, rooms []layout.RoomState, plot *layout.Plot, field *vastu.Field, fixed map[string]bool, r *rng.RNG) (*layout.Layout, error) {
	if g == nil {
		return nil, fmt.Errorf("placer: cannot place with nil graph")
	}
	if len(rooms) == 0 {
		return nil, fmt.Errorf("placer: cannot place empty room list")
	}
	if plot == nil {
		return nil, fmt.Errorf("placer: cannot place with nil plot")
	}
	if r == nil {
		return nil, fmt.Errorf("placer: cannot place with nil RNG")
	}

	state := make([]layout.RoomState, len(rooms))
	copy(state, rooms)
	byID := make(map[string]int, len(state))
	ids := make([]string, len(state))
	for i := range state {
		byID[state[i].ID] = i
		ids[i] = state[i].ID
		if fixed != nil && fixed[state[i].ID] {
			state[i].Fixed = true
		}
	}
	sort.Strings(ids)

	p.assignDimensions(state, r)

	targets := p.vastuTargets(state, field, plot)
	vel := make([]vec2, len(state))
	p.initializePositions(state, byID, ids, plot, field, targets, r)

	index := spatial.NewGrid(5.0)

	converged := false
	iterations := 0
	for iter := 0; iter < p.config.IterMax; iter++ {
		iterations = iter + 1

		index.Clear()
		for i := range state {
			index.Insert(i, state[i].Rect())
		}

		forces := make([]vec2, len(state))
		p.applyAttraction(g, state, byID, forces)
		p.applyRepulsion(g, state, byID, ids, forces, r)
		p.applyVastu(state, targets, forces)
		p.applyBoundary(state, plot, forces)

		maxVel := 0.0
		for i := range state {
			if state[i].Fixed {
				vel[i] = vec2{}
				continue
			}
			vel[i].x = (vel[i].x + forces[i].x) * p.config.Damping
			vel[i].y = (vel[i].y + forces[i].y) * p.config.Damping
			state[i].CenterX += vel[i].x * p.config.DT
			state[i].CenterY += vel[i].y * p.config.DT

			projected := plot.ProjectPoint(geom.Point{X: state[i].CenterX, Y: state[i].CenterY})
			state[i].CenterX, state[i].CenterY = p.clampCenterInsidePlot(state[i], plot, projected)

			speed := math.Hypot(vel[i].x, vel[i].y)
			if speed > maxVel {
				maxVel = speed
			}
		}

		if maxVel < p.config.ConvergenceEps {
			converged = true
			break
		}
	}

	if s := p.config.GridSnap; s > 0 {
		for i := range state {
			if state[i].Fixed {
				continue
			}
			snapped := geom.Point{X: math.Round(state[i].CenterX/s) * s, Y: math.Round(state[i].CenterY/s) * s}
			state[i].CenterX, state[i].CenterY = p.clampCenterInsidePlot(state[i], plot, plot.ProjectPoint(snapped))
		}
	}

	warnings := p.resolveOverlaps(state, ids, plot, index, r)

	out := &layout.Layout{
		Rooms:      state,
		Iterations: iterations,
		Converged:  converged,
		Warnings:   warnings,
	}
	return out, nil
}

// assignDimensions fixes each non-fixed room's (w,h) from its preferred
// size with a small uniform jitter, clipped to [min,max] (spec.md §4.4:
// "Dimensions are fixed at placer entry"). Rooms that already carry a
// positive width/height (explicit request targets, or state carried over
// from phase one of a two-phase solve) are left untouched.
func (p *ForceDirectedPlacer) assignDimensions(state []layout.RoomState, r *rng.RNG) {
	for i := range state {
		if state[i].Fixed || (state[i].W > 0 && state[i].H > 0) {
			continue
		}
		size := roomdata.SizeOf(state[i].Type)
		w := size.PreferredW * (1 + signedRange(r, p.config.DimensionJitter))
		h := size.PreferredH * (1 + signedRange(r, p.config.DimensionJitter))
		state[i].W = clampf(w, size.MinW, size.MaxW)
		state[i].H = clampf(h, size.MinH, size.MaxH)
		if state[i].TargetArea == 0 {
			state[i].TargetArea = state[i].W * state[i].H
		}
		state[i].OriginalArea = state[i].W * state[i].H
	}
}

// signedRange returns a uniform sample in [-spread, spread), or 0 when
// spread <= 0 (rng.Float64Range panics on an empty interval).
func signedRange(r *rng.RNG, spread float64) float64 {
	if spread <= 0 {
		return 0
	}
	return r.Float64Range(-spread, spread)
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// vastuTargets computes, once per room, the target position the Vastu
// force pulls toward: the argmax of Φ for that room's type within the
// plot bounding box, unless the room carries an effective preferred
// direction override, in which case the target is that direction's
// anchor point instead.
func (p *ForceDirectedPlacer) vastuTargets(state []layout.RoomState, field *vastu.Field, plot *layout.Plot) []geom.Point {
	targets := make([]geom.Point, len(state))
	cache := make(map[roomdata.RoomType]geom.Point)
	bbox := plot.BoundingBox()
	for i := range state {
		if dir, ok := effectivePreferredDirection(&state[i]); ok {
			fx, fy := dir.AnchorFraction()
			targets[i] = geom.Point{X: bbox.MinX + fx*bbox.Width(), Y: bbox.MinY + fy*bbox.Height()}
			continue
		}

		t := state[i].Type
		if pt, ok := cache[t]; ok {
			targets[i] = pt
			continue
		}
		pt := field.ArgmaxInWindow(t, bbox, 0)
		cache[t] = pt
		targets[i] = pt
	}
	return targets
}

// effectivePreferredDirection resolves the direction override, if any,
// that should take precedence over rs.Type's default VastuPreference.Preferred:
// a request-level houseFacing constraint always wins for the entrance
// room; otherwise a per-room preferredDirection applies.
func effectivePreferredDirection(rs *layout.RoomState) (roomdata.Direction, bool) {
	if rs.Type == roomdata.Entrance && rs.HasHouseFacing {
		return rs.HouseFacing, true
	}
	if rs.HasPreferredDirection {
		return rs.PreferredDirection, true
	}
	return 0, false
}

// initializePositions places each non-fixed room at its Vastu anchor
// (first preferred direction mapped into the plot frame; triangular
// plots use centroid + inradius*0.7*(cos theta, sin theta)), plus a
// small uniform offset, clipped into the polygon (spec.md §4.4).
// Iteration order is sorted by (priority, ID) so initial-placement order
// is deterministic and matches the priority field's documented intent.
func (p *ForceDirectedPlacer) initializePositions(state []layout.RoomState, byID map[string]int, ids []string, plot *layout.Plot, field *vastu.Field, targets []geom.Point, r *rng.RNG) {
	order := make([]string, len(ids))
	copy(order, ids)
	sort.Slice(order, func(a, b int) bool {
		pa := roomdata.Preference(state[byID[order[a]]].Type).Priority
		pb := roomdata.Preference(state[byID[order[b]]].Type).Priority
		if pa != pb {
			return pa < pb
		}
		return order[a] < order[b]
	})

	bbox := plot.BoundingBox()
	centroid := geom.PolygonCentroid(plot.EffectivePolygon())
	inradius := geom.PolygonInradius(plot.EffectivePolygon())

	for _, id := range order {
		i := byID[id]
		if state[i].Fixed {
			continue
		}

		pref := roomdata.Preference(state[i].Type)
		var preferredDir roomdata.Direction
		hasPreferred := false
		if len(pref.Preferred) > 0 {
			preferredDir, hasPreferred = pref.Preferred[0], true
		}
		if dir, ok := effectivePreferredDirection(&state[i]); ok {
			preferredDir, hasPreferred = dir, true
		}

		var anchor geom.Point
		if plot.Shape == layout.Triangular && hasPreferred {
			theta := preferredDir.Angle()
			anchor = geom.Point{
				X: centroid.X + inradius*0.7*math.Cos(theta),
				Y: centroid.Y + inradius*0.7*math.Sin(theta),
			}
		} else {
			anchor = targets[i]
			if anchor == (geom.Point{}) {
				anchor = bbox.Center()
			}
		}

		ox := signedRange(r, p.config.InitialOffsetSpread)
		oy := signedRange(r, p.config.InitialOffsetSpread)

		candidate := geom.Point{X: anchor.X + ox, Y: anchor.Y + oy}
		rect := geom.NewRectCentered(candidate.X, candidate.Y, state[i].W, state[i].H)
		cornerOutside := false
		for _, c := range rect.Corners() {
			if !plot.Contains(c) {
				cornerOutside = true
				break
			}
		}
		if cornerOutside {
			candidate = plot.ProjectPoint(candidate)
		}

		state[i].CenterX = candidate.X
		state[i].CenterY = candidate.Y
	}
}

// clampCenterInsidePlot ensures the room's whole rectangle, not just its
// center, stays inside the plot by nudging the center away from the
// nearest boundary when a corner would otherwise exit.
func (p *ForceDirectedPlacer) clampCenterInsidePlot(room layout.RoomState, plot *layout.Plot, projectedCenter geom.Point) (float64, float64) {
	cx, cy := projectedCenter.X, projectedCenter.Y
	for pass := 0; pass < 4; pass++ {
		rect := geom.NewRectCentered(cx, cy, room.W, room.H)
		moved := false
		for _, c := range rect.Corners() {
			if !plot.Contains(c) {
				q := plot.ProjectPoint(c)
				cx += q.X - c.X
				cy += q.Y - c.Y
				moved = true
				break
			}
		}
		if !moved {
			break
		}
	}
	return cx, cy
}

// idealDistance is the d* of spec.md §4.4's attraction term and the
// separation target of overlap resolution: (max(w_i,h_i)+max(w_j,h_j))/2
// + ideal_spacing. Per spec.md §9 open question 2, this does not
// correspond to any exact geometric touching condition for rectangles of
// differing aspect ratios; it is preserved as-is for reproducibility.
func (p *ForceDirectedPlacer) idealDistance(a, b *layout.RoomState) float64 {
	return (math.Max(a.W, a.H)+math.Max(b.W, b.H))/2 + p.config.IdealSpacing
}
