// Package layout defines the RoomState/Layout types shared, by value and
// by explicit ownership transfer, between the placer and the refiner.
// Per spec.md §9's design note, there is a single owned Layout passed
// between subsystems; neither subsystem holds long-lived references into
// the other's buffers.
package layout

import (
	"math"

	"github.com/vastuforge/floorplan/pkg/geom"
	"github.com/vastuforge/floorplan/pkg/roomdata"
)

// RoomState is the mutable per-room state threaded through placement and
// refinement: a rectangle (center, width, height, rotation) plus the
// bookkeeping the energy/scoring terms need.
type RoomState struct {
	ID           string
	Name         string
	Type         roomdata.RoomType
	CenterX      float64
	CenterY      float64
	W, H         float64
	Rotation     float64 // radians; at rest in {0, pi/2}, arbitrary once the refiner's rotate move is enabled
	OriginalArea float64
	TargetArea   float64
	Fixed        bool // pinned during a two-phase solve's second pass

	// PreferredDirection/HasPreferredDirection carry a per-room Vastu
	// override (request's preferredDirection field), consulted by the
	// placer's Vastu targeting ahead of the type's default preference.
	PreferredDirection    roomdata.Direction
	HasPreferredDirection bool

	// HouseFacing/HasHouseFacing carry the request-level houseFacing
	// constraint, broadcast onto every room but only ever consulted for
	// the Entrance room, which it overrides ahead of both the type
	// default and any per-room PreferredDirection.
	HouseFacing    roomdata.Direction
	HasHouseFacing bool
}

// Rect returns the axis-aligned bounding rectangle for this room. When
// Rotation is a multiple of pi this is exact; for an arbitrary
// rotation it is the rectangle's own local frame, not its rotated AABB —
// callers needing the true rotated footprint use geom.RotatedRectPolygon
// via Polygon().
func (r *RoomState) Rect() geom.Rect {
	return geom.NewRectCentered(r.CenterX, r.CenterY, r.W, r.H)
}

// Polygon returns the room's footprint as a polygon, honoring rotation.
func (r *RoomState) Polygon() geom.Polygon {
	return geom.RotatedRectPolygon(r.CenterX, r.CenterY, r.W, r.H, r.Rotation)
}

// Area returns w*h, invariant under rotation.
func (r *RoomState) Area() float64 {
	return r.W * r.H
}

// Clone returns a deep (value) copy; RoomState has no reference fields,
// so this is a plain struct copy, named for clarity at call sites that
// snapshot the best-seen layout.
func (r RoomState) Clone() RoomState {
	return r
}

// Layout is an ordered sequence of RoomState, one per input RoomRequest,
// plus the derived solve bookkeeping (spec.md §3).
type Layout struct {
	Rooms      []RoomState
	Iterations int
	Converged  bool
	Score      float64
	Warnings   []string
	History    []float64 // energy/score trace, populated when requested
}

// NewLayout returns an empty layout.
func NewLayout() *Layout {
	return &Layout{}
}

// Clone returns a deep copy of the layout: the Rooms slice and Warnings
// slice are copied so mutating the clone never touches the original
// (needed by the refiner's best-seen-layout bookkeeping).
func (l *Layout) Clone() *Layout {
	rooms := make([]RoomState, len(l.Rooms))
	copy(rooms, l.Rooms)
	warnings := make([]string, len(l.Warnings))
	copy(warnings, l.Warnings)
	history := make([]float64, len(l.History))
	copy(history, l.History)
	return &Layout{
		Rooms:      rooms,
		Iterations: l.Iterations,
		Converged:  l.Converged,
		Score:      l.Score,
		Warnings:   warnings,
		History:    history,
	}
}

// IndexOf returns the index of the room with the given ID, or -1.
func (l *Layout) IndexOf(id string) int {
	for i := range l.Rooms {
		if l.Rooms[i].ID == id {
			return i
		}
	}
	return -1
}

// AddWarning appends a warning if it isn't already present.
func (l *Layout) AddWarning(msg string) {
	for _, w := range l.Warnings {
		if w == msg {
			return
		}
	}
	l.Warnings = append(l.Warnings, msg)
}

// Direction classifies which compass octant a room's centroid falls in
// relative to a bounding rectangle, for the Response's per-room
// direction label and for test assertions like S1's "kitchen in SE
// quadrant."
func Direction(center geom.Point, bounds geom.Rect) roomdata.Direction {
	fx := (center.X - bounds.MinX) / math.Max(bounds.Width(), 1e-9)
	fy := (center.Y - bounds.MinY) / math.Max(bounds.Height(), 1e-9)

	const lo, hi = 1.0 / 3, 2.0 / 3
	switch {
	case fx < lo && fy < lo:
		return roomdata.SouthWest
	case fx < lo && fy > hi:
		return roomdata.NorthWest
	case fx > hi && fy < lo:
		return roomdata.SouthEast
	case fx > hi && fy > hi:
		return roomdata.NorthEast
	case fx < lo:
		return roomdata.West
	case fx > hi:
		return roomdata.East
	case fy < lo:
		return roomdata.South
	case fy > hi:
		return roomdata.North
	default:
		return roomdata.Center
	}
}
