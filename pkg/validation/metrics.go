package validation

import (
	"math"

	"github.com/vastuforge/floorplan/pkg/geom"
	"github.com/vastuforge/floorplan/pkg/graph"
	"github.com/vastuforge/floorplan/pkg/layout"
	"github.com/vastuforge/floorplan/pkg/vastu"
)

// CalculateOverlapArea sums the overlap area across all room pairs.
func CalculateOverlapArea(l *layout.Layout) float64 {
	total := 0.0
	for i := range l.Rooms {
		for j := i + 1; j < len(l.Rooms); j++ {
			total += geom.RectOrRotatedRectOverlapArea(l.Rooms[i].Rect(), l.Rooms[i].Rotation, l.Rooms[j].Rect(), l.Rooms[j].Rotation)
		}
	}
	return total
}

// CalculateContainmentViolations counts rooms with at least one corner
// outside the plot.
func CalculateContainmentViolations(l *layout.Layout, plot *layout.Plot) int {
	violations := 0
	for _, room := range l.Rooms {
		for _, c := range room.Rect().Corners() {
			if !plot.Contains(c) {
				violations++
				break
			}
		}
	}
	return violations
}

// CalculateAdjacencySatisfaction returns the fraction, in [0,1], of
// required-adjacency pairs whose rooms are touching or within a small
// gap. A graph with no required pairs is trivially satisfied (1.0).
func CalculateAdjacencySatisfaction(l *layout.Layout, g *graph.Graph) float64 {
	byID := make(map[string]int, len(l.Rooms))
	for i := range l.Rooms {
		byID[l.Rooms[i].ID] = i
	}

	required := make(map[[2]int]bool)
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
			required[key] = true
		}
	}

	if len(required) == 0 {
		return 1.0
	}

	const closeEnough = 0.3 // meters
	satisfied := 0
	for key := range required {
		a, b := l.Rooms[key[0]].Rect(), l.Rooms[key[1]].Rect()
		if gapBetween(a, b) <= closeEnough {
			satisfied++
		}
	}
	return float64(satisfied) / float64(len(required))
}

// gapBetween returns the clearance between two axis-aligned rectangles
// (0 if they touch or overlap).
func gapBetween(a, b geom.Rect) float64 {
	dx := math.Max(0, math.Max(a.MinX-b.MaxX, b.MinX-a.MaxX))
	dy := math.Max(0, math.Max(a.MinY-b.MaxY, b.MinY-a.MaxY))
	return math.Hypot(dx, dy)
}

// CalculateVastuScore returns the mean Phi sampled at each room's
// center, in [0,1].
func CalculateVastuScore(l *layout.Layout, field *vastu.Field) float64 {
	if len(l.Rooms) == 0 || field == nil {
		return 0
	}
	total := 0.0
	for _, room := range l.Rooms {
		total += field.Sample(room.CenterX, room.CenterY, room.Type)
	}
	return total / float64(len(l.Rooms))
}

// circulationViolations counts, among non-adjacent room pairs, how many
// fall short of minGap clearance, and the total pairs considered.
func circulationViolations(l *layout.Layout, g *graph.Graph, minGap float64) (violations, total int) {
	if minGap <= 0 {
		return 0, 0
	}
	byID := make(map[string]int, len(l.Rooms))
	for i := range l.Rooms {
		byID[l.Rooms[i].ID] = i
	}
	adjacent := make(map[[2]int]bool)
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
			adjacent[key] = true
		}
	}

	for i := range l.Rooms {
		for j := i + 1; j < len(l.Rooms); j++ {
			key := [2]int{i, j}
			if adjacent[key] {
				continue
			}
			total++
			if gapBetween(l.Rooms[i].Rect(), l.Rooms[j].Rect()) < minGap {
				violations++
			}
		}
	}
	return violations, total
}
