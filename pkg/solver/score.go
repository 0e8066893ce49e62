package solver

import (
	"math"
	"sort"

	"github.com/vastuforge/floorplan/pkg/geom"
	"github.com/vastuforge/floorplan/pkg/graph"
	"github.com/vastuforge/floorplan/pkg/layout"
	"github.com/vastuforge/floorplan/pkg/roomdata"
	"github.com/vastuforge/floorplan/pkg/vastu"
)

// scoreResult bundles the final [0,100] score with its metric breakdown,
// computed per spec.md §4.6's "Final score" paragraph.
type scoreResult struct {
	score   float64
	metrics *Metrics
}

// computeScore implements spec.md §4.6's final score formula. Design
// Note 4 of spec.md §9 asks that the exact constants be kept in a table
// rather than re-derived; they appear inline here, one per term, matching
// the single paragraph they come from.
func computeScore(l *layout.Layout, g *graph.Graph, plot *layout.Plot, field *vastu.Field, overlapTolerance, minCirculation float64) scoreResult {
	overlapCount, overlapArea := countOverlaps(l, overlapTolerance)

	edgePenalty, adjacencySatisfied, adjacencyTotal := adjacencyDistancePenalty(l, g)

	boundaryPenalty := boundaryPenaltySum(l, plot)

	vastuBonus, vastuMean := vastuBonusAndMean(l, field)

	aspectPenalty := aspectRatioPenalty(l)

	circulationSatisfied, circulationTotal := circulationSatisfaction(l, g, minCirculation)

	raw := 100.0 -
		15.0*float64(overlapCount) -
		edgePenalty -
		boundaryPenalty +
		vastuBonus -
		aspectPenalty

	final := math.Max(0, math.Min(100, raw))

	adjacencyScore := 100.0
	if adjacencyTotal > 0 {
		adjacencyScore = 100.0 * float64(adjacencySatisfied) / float64(adjacencyTotal)
	}
	circulationScore := 100.0
	if circulationTotal > 0 {
		circulationScore = 100.0 * float64(circulationSatisfied) / float64(circulationTotal)
	}

	return scoreResult{
		score: final,
		metrics: &Metrics{
			OverlapArea:      overlapArea,
			VastuScore:       vastuMean,
			AspectRatioScore: math.Max(0, 100-aspectPenalty),
			BoundaryScore:    math.Max(0, 100-boundaryPenalty),
			CirculationScore: circulationScore,
			AdjacencyScore:   adjacencyScore,
			TotalScore:       final,
		},
	}
}

func countOverlaps(l *layout.Layout, tau float64) (count int, area float64) {
	for i := range l.Rooms {
		for j := i + 1; j < len(l.Rooms); j++ {
			a := geom.RectOrRotatedRectOverlapArea(l.Rooms[i].Rect(), l.Rooms[i].Rotation, l.Rooms[j].Rect(), l.Rooms[j].Rotation)
			area += a
			if a > tau {
				count++
			}
		}
	}
	return count, area
}

// adjacencyDistancePenalty sums 0.5*(dist-10) for every required edge
// whose rooms end up more than 10m apart center-to-center, and reports
// how many of the graph's edges are "satisfied" (touching or within 10m)
// for the AdjacencyScore metric.
func adjacencyDistancePenalty(l *layout.Layout, g *graph.Graph) (penalty float64, satisfied, total int) {
	byID := make(map[string]int, len(l.Rooms))
	for i := range l.Rooms {
		byID[l.Rooms[i].ID] = i
	}
	seen := make(map[[2]string]bool)
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
			key := [2]string{aID, e.To}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			if seen[key] {
				continue
			}
			seen[key] = true

			bi, ok := byID[e.To]
			if !ok {
				continue
			}
			total++
			d := math.Hypot(l.Rooms[ai].CenterX-l.Rooms[bi].CenterX, l.Rooms[ai].CenterY-l.Rooms[bi].CenterY)
			if d > 10 {
				penalty += 0.5 * (d - 10)
			} else {
				satisfied++
			}
		}
	}
	return penalty, satisfied, total
}

// boundaryPenaltySum charges 10 per out-of-plot room for rectangular and
// triangular plots, and a distance-scaled penalty for polygon/circular
// plots (spec.md §4.6).
func boundaryPenaltySum(l *layout.Layout, plot *layout.Plot) float64 {
	penalty := 0.0
	for i := range l.Rooms {
		rect := l.Rooms[i].Rect()
		outside := false
		maxDist := 0.0
		for _, c := range rect.Corners() {
			if !plot.Contains(c) {
				outside = true
				proj := plot.ProjectPoint(c)
				d := math.Hypot(c.X-proj.X, c.Y-proj.Y)
				if d > maxDist {
					maxDist = d
				}
			}
		}
		if !outside {
			continue
		}
		switch plot.Shape {
		case layout.Rectangular, layout.Triangular:
			penalty += 10
		default:
			penalty += 10 * (1 + maxDist)
		}
	}
	return penalty
}

// vastuBonusAndMean returns the sum of per-room Vastu bonuses (1.5*weight
// for preferred, 0.5*weight for acceptable, -2*weight for avoid) plus the
// mean sampled Φ across all rooms.
func vastuBonusAndMean(l *layout.Layout, field *vastu.Field) (bonus, mean float64) {
	if len(l.Rooms) == 0 {
		return 0, 0
	}
	var total float64
	for i := range l.Rooms {
		room := &l.Rooms[i]
		pref := roomdata.Preference(room.Type)
		dir := directionOf(room, field)

		switch {
		case containsDirection(pref.Preferred, dir):
			bonus += 1.5 * pref.Weight
		case containsDirection(pref.Acceptable, dir):
			bonus += 0.5 * pref.Weight
		case containsDirection(pref.Avoid, dir):
			bonus -= 2 * pref.Weight
		}

		if field != nil {
			total += field.Sample(room.CenterX, room.CenterY, room.Type)
		}
	}
	if field != nil {
		mean = total / float64(len(l.Rooms))
	}
	return bonus, mean
}

// directionOf classifies a room's centroid relative to the Vastu field's
// bounding box (falling back to the room's own position when field is
// nil, which should not occur in a normal solve).
func directionOf(room *layout.RoomState, field *vastu.Field) roomdata.Direction {
	var bounds geom.Rect
	if field != nil {
		bounds = field.Bounds()
	} else {
		bounds = geom.Rect{MinX: room.CenterX, MinY: room.CenterY, MaxX: room.CenterX + 1, MaxY: room.CenterY + 1}
	}
	return layout.Direction(geom.Point{X: room.CenterX, Y: room.CenterY}, bounds)
}

func containsDirection(dirs []roomdata.Direction, d roomdata.Direction) bool {
	for _, x := range dirs {
		if x == d {
			return true
		}
	}
	return false
}

// aspectRatioPenalty charges 3*(ratio-2.2) for rooms more elongated than
// 2.2:1 (spec.md §4.6).
func aspectRatioPenalty(l *layout.Layout) float64 {
	penalty := 0.0
	for i := range l.Rooms {
		w, h := l.Rooms[i].W, l.Rooms[i].H
		if w <= 0 || h <= 0 {
			continue
		}
		ratio := math.Max(w, h) / math.Min(w, h)
		if ratio > 2.2 {
			penalty += 3 * (ratio - 2.2)
		}
	}
	return penalty
}

// circulationSatisfaction reports, among non-adjacent room pairs, how
// many keep at least minGap clearance.
func circulationSatisfaction(l *layout.Layout, g *graph.Graph, minGap float64) (satisfied, total int) {
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
			a, b := l.Rooms[i].Rect(), l.Rooms[j].Rect()
			dx := math.Max(0, math.Max(a.MinX-b.MaxX, b.MinX-a.MaxX))
			dy := math.Max(0, math.Max(a.MinY-b.MaxY, b.MinY-a.MaxY))
			if math.Hypot(dx, dy) >= minGap {
				satisfied++
			}
		}
	}
	return satisfied, total
}
