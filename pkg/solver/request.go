package solver

import (
	"github.com/vastuforge/floorplan/pkg/geom"
	"github.com/vastuforge/floorplan/pkg/roomdata"
)

// RoomRequest describes one room the caller wants placed (spec.md §6).
// TargetWidth/TargetHeight of 0 mean "use the type's preferred size."
type RoomRequest struct {
	ID                 string  `json:"id" yaml:"id"`
	Name               string  `json:"name" yaml:"name"`
	Type               string  `json:"type" yaml:"type"`
	TargetWidth        float64 `json:"targetWidth" yaml:"targetWidth"`
	TargetHeight       float64 `json:"targetHeight" yaml:"targetHeight"`
	PreferredDirection string  `json:"preferredDirection" yaml:"preferredDirection"`
}

// CircleConstraint gives the plot's circular boundary when PlotShape is
// circular and no explicit polygon is supplied.
type CircleConstraint struct {
	CenterX float64 `json:"centerX" yaml:"centerX"`
	CenterY float64 `json:"centerY" yaml:"centerY"`
	Radius  float64 `json:"radius" yaml:"radius"`
}

// Constraints bundles the optional, loosely-typed constraint object from
// spec.md §6.
type Constraints struct {
	HouseFacing    string            `json:"houseFacing,omitempty" yaml:"houseFacing,omitempty"` // overrides entrance's preferred direction
	Circle         *CircleConstraint `json:"circle,omitempty" yaml:"circle,omitempty"`
	PlotPolygon    []geom.Point      `json:"plotPolygon,omitempty" yaml:"plotPolygon,omitempty"` // fallback location for the polygon
	MinCirculation float64           `json:"minCirculation,omitempty" yaml:"minCirculation,omitempty"` // meters, default 0.8 when zero
}

// Request is the solver's external input (spec.md §6): a plot boundary
// and a list of rooms to place within it.
type Request struct {
	Rooms []RoomRequest `json:"rooms" yaml:"rooms"`

	PlotWidth   float64      `json:"plotWidth" yaml:"plotWidth"`
	PlotLength  float64      `json:"plotLength" yaml:"plotLength"`
	PlotShape   string       `json:"plotShape" yaml:"plotShape"`
	PlotPolygon []geom.Point `json:"plotPolygon,omitempty" yaml:"plotPolygon,omitempty"`
	Orientation string       `json:"orientation,omitempty" yaml:"orientation,omitempty"`

	OutdoorFixtures []string `json:"outdoorFixtures,omitempty" yaml:"outdoorFixtures,omitempty"`

	Constraints Constraints `json:"constraints,omitempty" yaml:"constraints,omitempty"`

	OptimizationLevel int    `json:"optimizationLevel,omitempty" yaml:"optimizationLevel,omitempty"` // 1,2,3; scales refiner MaxIters and StallPatience, not the cooling schedule
	VastuSchool       string `json:"vastuSchool,omitempty" yaml:"vastuSchool,omitempty"`              // classical|modern|flexible

	Seed uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// roomType resolves the request room's type, falling back to Untyped for
// anything roomdata doesn't recognize (spec.md §3: unrecognized tag is
// not an error).
func (rr *RoomRequest) roomType() roomdata.RoomType {
	return roomdata.ParseRoomType(rr.Type)
}
