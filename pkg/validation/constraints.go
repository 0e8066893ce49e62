package validation

import (
	"fmt"

	"github.com/vastuforge/floorplan/pkg/geom"
	"github.com/vastuforge/floorplan/pkg/graph"
	"github.com/vastuforge/floorplan/pkg/layout"
	"github.com/vastuforge/floorplan/pkg/vastu"
)

// CheckContainment ensures every room's rectangle lies fully within the
// plot boundary. Hard constraint.
func CheckContainment(l *layout.Layout, plot *layout.Plot) ConstraintResult {
	violations := 0
	for _, room := range l.Rooms {
		for _, c := range room.Rect().Corners() {
			if !plot.Contains(c) {
				violations++
				break
			}
		}
	}

	details := "all rooms are contained within the plot boundary"
	if violations > 0 {
		details = fmt.Sprintf("%d room(s) have a corner outside the plot boundary", violations)
	}

	return NewHardConstraintResult(
		"Containment",
		"forall room in rooms: plot.contains(room.rect)",
		violations == 0,
		details,
	)
}

// CheckNoOverlaps ensures no pair of rooms overlaps by more than tau.
// Hard constraint.
func CheckNoOverlaps(l *layout.Layout, tau float64) ConstraintResult {
	violations := 0
	for i := range l.Rooms {
		for j := i + 1; j < len(l.Rooms); j++ {
			overlap := geom.RectOrRotatedRectOverlapArea(l.Rooms[i].Rect(), l.Rooms[i].Rotation, l.Rooms[j].Rect(), l.Rooms[j].Rotation)
			if overlap > tau {
				violations++
			}
		}
	}

	details := "no room pair overlaps beyond tolerance"
	if violations > 0 {
		details = fmt.Sprintf("%d room pair(s) overlap beyond tolerance %.4f m^2", violations, tau)
	}

	return NewHardConstraintResult(
		"NoOverlaps",
		"forall i,j: overlap_area(i,j) <= tau",
		violations == 0,
		details,
	)
}

// CheckAdjacencySatisfaction scores the fraction of required-adjacency
// pairs that are touching (or within a small gap). Soft constraint.
func CheckAdjacencySatisfaction(l *layout.Layout, g *graph.Graph) ConstraintResult {
	score := CalculateAdjacencySatisfaction(l, g)
	details := fmt.Sprintf("%.0f%% of required adjacency pairs satisfied", score*100)
	return NewSoftConstraintResult("AdjacencySatisfaction", "satisfied_pairs / required_pairs", score, details)
}

// CheckVastuScore scores the mean Phi sampled at each room's center.
// Soft constraint.
func CheckVastuScore(l *layout.Layout, field *vastu.Field) ConstraintResult {
	score := CalculateVastuScore(l, field)
	details := fmt.Sprintf("mean Vastu potential across rooms: %.3f", score)
	return NewSoftConstraintResult("VastuScore", "mean(Phi(center_i, type_i))", score, details)
}

// CheckCirculation scores the fraction of non-adjacent room pairs that
// keep at least minGap clearance. Soft constraint.
func CheckCirculation(l *layout.Layout, g *graph.Graph, minGap float64) ConstraintResult {
	violations, total := circulationViolations(l, g, minGap)
	score := 1.0
	if total > 0 {
		score = 1 - float64(violations)/float64(total)
	}
	details := fmt.Sprintf("%d/%d non-adjacent pairs keep the minimum circulation gap of %.2fm", total-violations, total, minGap)
	return NewSoftConstraintResult("Circulation", "gap(i,j) >= min_gap for non-adjacent pairs", score, details)
}
