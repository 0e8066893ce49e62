package solver

import "github.com/vastuforge/floorplan/pkg/validation"

// RoomResponse is one placed room in the solver's output (spec.md §6):
// (X,Y) is the bottom-left corner of the axis-aligned rectangle.
type RoomResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Direction string  `json:"direction"`
}

// Metrics is the optional quality breakdown attached to every Response
// (SPEC_FULL.md §4.6 NEW: implemented unconditionally, not optional, per
// the supplemented original_source/routers/validation.py breakdown).
type Metrics struct {
	OverlapArea      float64 `json:"overlapArea"`
	VastuScore       float64 `json:"vastuScore"`
	AspectRatioScore float64 `json:"aspectRatioScore"`
	BoundaryScore    float64 `json:"boundaryScore"`
	CirculationScore float64 `json:"circulationScore"`
	AdjacencyScore   float64 `json:"adjacencyScore"`
	TotalScore       float64 `json:"totalScore"`
}

// Response is the solver's external output (spec.md §6).
type Response struct {
	Rooms      []RoomResponse `json:"rooms"`
	Score      float64        `json:"score"`
	Iterations int            `json:"iterations"`
	Converged  bool           `json:"converged"`
	Warnings   []string       `json:"warnings,omitempty"`
	Metrics    *Metrics       `json:"metrics,omitempty"`

	// Validation is the independent hard/soft constraint report from
	// pkg/validation, run once against the final layout alongside the
	// score breakdown above.
	Validation *validation.ValidationReport `json:"validation,omitempty"`
}
