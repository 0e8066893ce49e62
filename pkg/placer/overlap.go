package placer

import (
	"fmt"
	"math"
	"sort"

	"github.com/vastuforge/floorplan/pkg/geom"
	"github.com/vastuforge/floorplan/pkg/layout"
	"github.com/vastuforge/floorplan/pkg/rng"
	"github.com/vastuforge/floorplan/pkg/spatial"
)

// resolveOverlaps runs up to OverlapResolutionSweeps passes pushing any
// pair of rooms whose footprints overlap by more than OverlapTolerance
// apart along their separation direction by half the shortfall against
// idealDistance (spec.md §4.4's post-integration overlap resolution,
// grounded on the teacher's resolveOverlaps/separateRooms in
// force_directed.go, generalized from grid cells to continuous
// coordinates). The spatial index is rebuilt at the start of every
// sweep since positions move between sweeps.
func (p *ForceDirectedPlacer) resolveOverlaps(state []layout.RoomState, ids []string, plot *layout.Plot, index *spatial.Grid, r *rng.RNG) []string {
	byID := make(map[string]int, len(state))
	for i := range state {
		byID[state[i].ID] = i
	}

	var warnings []string

	for sweep := 0; sweep < p.config.OverlapResolutionSweeps; sweep++ {
		index.Clear()
		for i := range state {
			index.Insert(i, state[i].Rect())
		}

		moved := false
		for _, id := range ids {
			i := byID[id]
			candidates := index.QueryOverlapCandidates(state[i].Rect())
			sort.Ints(candidates)
			for _, j := range candidates {
				if j <= i {
					continue
				}
				a, b := &state[i], &state[j]
				overlap := geom.RectOrRotatedRectOverlapArea(a.Rect(), a.Rotation, b.Rect(), b.Rotation)
				if overlap <= p.config.OverlapTolerance {
					continue
				}

				dx, dy := b.CenterX-a.CenterX, b.CenterY-a.CenterY
				d := math.Hypot(dx, dy)
				var ux, uy float64
				if d < 1e-6 {
					theta := r.Float64Range(0, 2*math.Pi)
					ux, uy = math.Cos(theta), math.Sin(theta)
					d = 0
				} else {
					ux, uy = dx/d, dy/d
				}

				shortfall := p.idealDistance(a, b) - d
				if shortfall <= 0 {
					continue
				}
				push := shortfall / 2

				if !a.Fixed {
					a.CenterX -= push * ux
					a.CenterY -= push * uy
					proj := plot.ProjectPoint(geom.Point{X: a.CenterX, Y: a.CenterY})
					a.CenterX, a.CenterY = p.clampCenterInsidePlot(*a, plot, proj)
				}
				if !b.Fixed {
					b.CenterX += push * ux
					b.CenterY += push * uy
					proj := plot.ProjectPoint(geom.Point{X: b.CenterX, Y: b.CenterY})
					b.CenterX, b.CenterY = p.clampCenterInsidePlot(*b, plot, proj)
				}
				moved = true
			}
		}

		if !moved {
			break
		}
	}

	for i := 0; i < len(state); i++ {
		for j := i + 1; j < len(state); j++ {
			overlap := geom.RectOrRotatedRectOverlapArea(state[i].Rect(), state[i].Rotation, state[j].Rect(), state[j].Rotation)
			if overlap > p.config.OverlapTolerance {
				warnings = append(warnings, fmt.Sprintf("residual overlap between %s and %s after overlap resolution: %.4f m^2", state[i].ID, state[j].ID, overlap))
			}
		}
	}

	return warnings
}
