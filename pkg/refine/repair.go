package refine

import (
	"math"

	"github.com/vastuforge/floorplan/pkg/geom"
	"github.com/vastuforge/floorplan/pkg/layout"
	"github.com/vastuforge/floorplan/pkg/spatial"
)

// localRepair runs one deterministic pass: push overlapping pairs apart
// proportional to overlap area, snap to grid, then scale any
// out-of-bounds room's displacement from the plot centroid by 0.9 until
// it re-enters (spec.md §4.5's periodic local repair, grounded on the
// original's deterministic_local_improve).
func localRepair(rooms []layout.RoomState, plot *layout.Plot, cfg *Config) []layout.RoomState {
	out := make([]layout.RoomState, len(rooms))
	copy(out, rooms)

	index := spatial.NewGrid(1.0)
	for i := range out {
		index.Insert(i, out[i].Rect())
	}

	for i := range out {
		if out[i].Fixed {
			continue
		}
		candidates := index.QueryOverlapCandidates(out[i].Rect())
		var repX, repY float64
		any := false
		for _, j := range candidates {
			if j == i {
				continue
			}
			overlap := geom.RectOrRotatedRectOverlapArea(out[i].Rect(), out[i].Rotation, rooms[j].Rect(), rooms[j].Rotation)
			if overlap <= 0 {
				continue
			}
			dx := out[i].CenterX - rooms[j].CenterX
			dy := out[i].CenterY - rooms[j].CenterY
			d := math.Hypot(dx, dy)
			if d <= 0 {
				continue
			}
			scale := math.Min(overlap, cfg.SlideStep)
			repX += (dx / d) * scale
			repY += (dy / d) * scale
			any = true
		}
		if any {
			out[i].CenterX += repX
			out[i].CenterY += repY
		}
	}

	if cfg.GridSnap > 0 {
		for i := range out {
			if !out[i].Fixed {
				snapToGrid(&out[i], cfg.GridSnap)
			}
		}
	}

	centroid := geom.PolygonCentroid(plot.EffectivePolygon())
	for i := range out {
		if out[i].Fixed {
			continue
		}
		scale := 0.9
		for attempts := 0; attempts < 20 && !roomInsidePlot(out[i], plot); attempts++ {
			dx := out[i].CenterX - centroid.X
			dy := out[i].CenterY - centroid.Y
			out[i].CenterX -= dx * (1 - scale)
			out[i].CenterY -= dy * (1 - scale)
		}
	}

	return out
}

func roomInsidePlot(room layout.RoomState, plot *layout.Plot) bool {
	for _, c := range room.Rect().Corners() {
		if !plot.Contains(c) {
			return false
		}
	}
	return true
}
