package refine

import (
	"math"

	"github.com/vastuforge/floorplan/pkg/geom"
	"github.com/vastuforge/floorplan/pkg/layout"
	"github.com/vastuforge/floorplan/pkg/rng"
	"github.com/vastuforge/floorplan/pkg/spatial"
)

// proposeMove clones rooms, picks a uniformly random non-fixed room, and
// applies one of the five move types chosen per cfg.Moves.effective,
// then, when cfg.GridSnap > 0, snaps the moved room's center to the grid
// (spec.md §4.5). Corners, and rooms other than the moved one, are not
// snapped. movable must be non-empty; callers check this before proposing.
func proposeMove(rooms []layout.RoomState, plot *layout.Plot, movable []int, cfg *Config, r *rng.RNG) []layout.RoomState {
	next := make([]layout.RoomState, len(rooms))
	copy(next, rooms)

	idx := movable[r.Intn(len(movable))]
	weights := cfg.Moves.effective(cfg.AllowRotations)

	switch pickMove(weights, r) {
	case moveTranslate:
		applyTranslate(&next[idx], cfg, r)
	case moveRotate:
		applyRotate(&next[idx], cfg, r)
	case moveResize:
		applyResize(&next[idx], cfg, r)
	case moveVastuHop:
		applyVastuHop(&next[idx], plot, cfg, r)
	case moveAlign:
		applyAlign(next, idx, cfg)
	}

	if cfg.GridSnap > 0 {
		snapToGrid(&next[idx], cfg.GridSnap)
	}
	return next
}

type moveKind int

const (
	moveTranslate moveKind = iota
	moveRotate
	moveResize
	moveVastuHop
	moveAlign
)

// pickMove samples a move kind from the five-way distribution
// (translate, rotate, resize, vastu_hop, align).
func pickMove(w [5]float64, r *rng.RNG) moveKind {
	roll := r.Float64()
	cum := 0.0
	for i, p := range w {
		cum += p
		if roll < cum {
			return moveKind(i)
		}
	}
	return moveAlign
}

func applyTranslate(room *layout.RoomState, cfg *Config, r *rng.RNG) {
	room.CenterX = r.NormFloat64(room.CenterX, cfg.TransSigma)
	room.CenterY = r.NormFloat64(room.CenterY, cfg.TransSigma)
}

func applyRotate(room *layout.RoomState, cfg *Config, r *rng.RNG) {
	if !cfg.AllowRotations {
		return
	}
	room.Rotation += r.NormFloat64(0, cfg.RotateSigma)
}

// applyResize scales (w,h) by (s, 1/s) with s in [ResizeMin, ResizeMax],
// preserving w*h.
func applyResize(room *layout.RoomState, cfg *Config, r *rng.RNG) {
	s := r.Float64Range(cfg.ResizeMin, cfg.ResizeMax)
	room.W *= s
	room.H /= s
}

// applyVastuHop tries up to HopAttempts uniform points in the plot
// bounding box and jumps the room's center to the first one inside the
// plot (spec.md §4.5).
func applyVastuHop(room *layout.RoomState, plot *layout.Plot, cfg *Config, r *rng.RNG) {
	bbox := plot.BoundingBox()
	for i := 0; i < cfg.HopAttempts; i++ {
		x := r.Float64Range(bbox.MinX, bbox.MaxX)
		y := r.Float64Range(bbox.MinY, bbox.MaxY)
		if plot.Contains(geom.Point{X: x, Y: y}) {
			room.CenterX, room.CenterY = x, y
			return
		}
	}
}

// applyAlign finds the nearest neighbor within 2*SlideStep and moves the
// room one SlideStep toward the closest pair of boundary points
// (spec.md §4.5). No-op if no neighbor is within range.
func applyAlign(rooms []layout.RoomState, idx int, cfg *Config) {
	index := spatial.NewGrid(1.0)
	for i := range rooms {
		if i != idx {
			index.Insert(i, rooms[i].Rect())
		}
	}
	candidates := index.QueryWithin(rooms[idx].Rect(), 2*cfg.SlideStep)
	other, otherDist := -1, math.Inf(1)
	for _, c := range candidates {
		d := rectDistance(rooms[idx].Rect(), rooms[c].Rect())
		if d <= 2*cfg.SlideStep && (d < otherDist || (d == otherDist && c < other)) {
			other, otherDist = c, d
		}
	}
	if other < 0 {
		return
	}

	p1, p2 := closestCorners(rooms[idx].Rect(), rooms[other].Rect())
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	d := math.Hypot(dx, dy)
	if d < 1e-8 {
		return
	}
	rooms[idx].CenterX += (dx / d) * cfg.SlideStep
	rooms[idx].CenterY += (dy / d) * cfg.SlideStep
}

// closestCorners returns the closest pair of corners between two
// rectangles, a cheap substitute for the original's closest_points
// search over polygon vertices.
func closestCorners(a, b geom.Rect) (geom.Point, geom.Point) {
	best := math.Inf(1)
	var bp1, bp2 geom.Point
	for _, p1 := range a.Corners() {
		for _, p2 := range b.Corners() {
			d := math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
			if d < best {
				best = d
				bp1, bp2 = p1, p2
			}
		}
	}
	return bp1, bp2
}

// snapToGrid rounds the room's center to the nearest multiple of size.
func snapToGrid(room *layout.RoomState, size float64) {
	room.CenterX = math.Round(room.CenterX/size) * size
	room.CenterY = math.Round(room.CenterY/size) * size
}
