package spatial

import (
	"math"

	"github.com/vastuforge/floorplan/pkg/geom"
)

// Indexer maps axis-aligned rectangles to candidate room indices for fast
// overlap and neighbor queries. Candidate sets are supersets of the true
// answer; callers must recheck (spec.md §4.3). A single grid
// implementation backs the interface per spec.md §9's design note
// ("conditional availability of the spatial index... a single index type
// with a grid implementation"); an R-tree could be added behind the same
// interface without touching callers, but none of the examples in this
// corpus pull in an R-tree dependency, so none is wired here.
type Indexer interface {
	Insert(id int, r geom.Rect)
	Clear()
	QueryOverlapCandidates(r geom.Rect) []int
	QueryWithin(r geom.Rect, radius float64) []int
}

type cell struct{ i, j int }

// Grid is a uniform-bucket spatial index keyed by (floor(x/S), floor(y/S)).
// Cell size should be chosen so the average bucket holds only a handful of
// rooms (spec.md §4.3: "≤ 4 for the typical plot and room sizes").
type Grid struct {
	cellSize float64
	buckets  map[cell][]int
}

// NewGrid creates an empty Grid with the given cell size. Default cell
// size is 5 m for the placer, 1 m for the refiner where finer-grained
// queries matter (spec.md §3).
func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 5.0
	}
	return &Grid{cellSize: cellSize, buckets: make(map[cell][]int)}
}

func (g *Grid) cellsFor(r geom.Rect) (iMin, jMin, iMax, jMax int) {
	iMin = int(math.Floor(r.MinX / g.cellSize))
	jMin = int(math.Floor(r.MinY / g.cellSize))
	iMax = int(math.Floor(r.MaxX / g.cellSize))
	jMax = int(math.Floor(r.MaxY / g.cellSize))
	return
}

// Insert adds id to every cell overlapped by r's bounding box.
func (g *Grid) Insert(id int, r geom.Rect) {
	iMin, jMin, iMax, jMax := g.cellsFor(r)
	for i := iMin; i <= iMax; i++ {
		for j := jMin; j <= jMax; j++ {
			c := cell{i, j}
			g.buckets[c] = append(g.buckets[c], id)
		}
	}
}

// Clear empties the index, ready for reuse on the next iteration/move.
func (g *Grid) Clear() {
	for k := range g.buckets {
		delete(g.buckets, k)
	}
}

// QueryOverlapCandidates returns the union of bucket contents touching
// r's bounding box, deduplicated.
func (g *Grid) QueryOverlapCandidates(r geom.Rect) []int {
	return g.queryRect(r)
}

// QueryWithin expands r by radius in every direction before querying,
// returning candidates that might lie within radius of r.
func (g *Grid) QueryWithin(r geom.Rect, radius float64) []int {
	expanded := geom.Rect{
		MinX: r.MinX - radius, MinY: r.MinY - radius,
		MaxX: r.MaxX + radius, MaxY: r.MaxY + radius,
	}
	return g.queryRect(expanded)
}

func (g *Grid) queryRect(r geom.Rect) []int {
	iMin, jMin, iMax, jMax := g.cellsFor(r)
	seen := make(map[int]bool)
	var out []int
	for i := iMin; i <= iMax; i++ {
		for j := jMin; j <= jMax; j++ {
			for _, id := range g.buckets[cell{i, j}] {
				if !seen[id] {
					seen[id] = true
					out = append(out, id)
				}
			}
		}
	}
	return out
}
