package export

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	svg "github.com/ajstarks/svgo"
	"github.com/vastuforge/floorplan/pkg/solver"
)

// SVGOptions configures floor-plan SVG rendering.
type SVGOptions struct {
	Width       int    // Canvas width in pixels
	Height      int    // Canvas height in pixels
	ShowLabels  bool   // Show room id/type labels
	ColorByType bool   // Color rooms by RoomType
	ShowLegend  bool   // Show legend explaining colors
	Margin      int    // Canvas margin in pixels (default: 50)
	Title       string // Optional title for the drawing
	ShowStats   bool   // Show score/iteration statistics
}

// DefaultSVGOptions returns sensible default SVG export options.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:       1000,
		Height:      1000,
		ShowLabels:  true,
		ColorByType: true,
		ShowLegend:  true,
		Margin:      60,
		Title:       "Floor Plan",
		ShowStats:   true,
	}
}

// ExportSVG renders a solved response as a floor-plan drawing: one
// rectangle per room, scaled and flipped into SVG's top-left-origin,
// y-down coordinate system from the solver's bottom-left-origin, y-up
// meters.
func ExportSVG(resp *solver.Response, opts SVGOptions) ([]byte, error) {
	if resp == nil {
		return nil, fmt.Errorf("response cannot be nil")
	}
	if len(resp.Rooms) == 0 {
		return nil, fmt.Errorf("response must contain at least one room")
	}

	if opts.Width <= 0 {
		opts.Width = 1000
	}
	if opts.Height <= 0 {
		opts.Height = 1000
	}
	if opts.Margin <= 0 {
		opts.Margin = 60
	}

	headerSpace := 0
	if opts.Title != "" || opts.ShowStats {
		headerSpace = 50
	}

	minX, minY, maxX, maxY := planBounds(resp.Rooms)
	planW, planH := maxX-minX, maxY-minY
	if planW <= 0 {
		planW = 1
	}
	if planH <= 0 {
		planH = 1
	}

	drawW := float64(opts.Width - 2*opts.Margin)
	drawH := float64(opts.Height - 2*opts.Margin - headerSpace)
	scale := drawW / planW
	if s := drawH / planH; s < scale {
		scale = s
	}

	toCanvas := func(x, y float64) (int, int) {
		cx := float64(opts.Margin) + (x-minX)*scale
		cy := float64(opts.Margin+headerSpace) + (maxY-y)*scale // flip Y
		return int(cx), int(cy)
	}

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:#1a1a2e")

	rooms := append([]solver.RoomResponse(nil), resp.Rooms...)
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })

	for _, rm := range rooms {
		x0, y0 := toCanvas(rm.X, rm.Y+rm.Height)
		x1, y1 := toCanvas(rm.X+rm.Width, rm.Y)
		w, h := x1-x0, y1-y0
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}

		color := roomColor(rm.Type, opts.ColorByType)
		canvas.Rect(x0, y0, w, h, fmt.Sprintf("fill:%s;stroke:#fff;stroke-width:2;opacity:0.9", color))

		if opts.ShowLabels {
			cx, cy := x0+w/2, y0+h/2
			canvas.Text(cx, cy, rm.ID,
				"text-anchor:middle;font-size:12px;font-family:monospace;fill:#0b0b14;font-weight:600")
			canvas.Text(cx, cy+14, rm.Direction,
				"text-anchor:middle;font-size:9px;font-family:monospace;fill:#0b0b14")
		}
	}

	if opts.ShowLegend {
		drawLegend(canvas, opts, rooms)
	}
	if opts.Title != "" || opts.ShowStats {
		drawHeader(canvas, resp, opts)
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveSVGToFile renders resp and saves the SVG to a file. The file is
// created with 0644 permissions.
func SaveSVGToFile(resp *solver.Response, filepath string, opts SVGOptions) error {
	data, err := ExportSVG(resp, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

func planBounds(rooms []solver.RoomResponse) (minX, minY, maxX, maxY float64) {
	minX, minY = rooms[0].X, rooms[0].Y
	maxX, maxY = rooms[0].X+rooms[0].Width, rooms[0].Y+rooms[0].Height
	for _, rm := range rooms[1:] {
		if rm.X < minX {
			minX = rm.X
		}
		if rm.Y < minY {
			minY = rm.Y
		}
		if rm.X+rm.Width > maxX {
			maxX = rm.X + rm.Width
		}
		if rm.Y+rm.Height > maxY {
			maxY = rm.Y + rm.Height
		}
	}
	return minX, minY, maxX, maxY
}

// roomTypeColors assigns a fixed color per canonical room type, grouped
// by function (wet rooms in blue-greens, sleeping in purples, social in
// warm tones, outdoor in natural greens) so the same type always reads
// the same way across plans.
var roomTypeColors = map[string]string{
	"entrance":       "#ecc94b",
	"kitchen":        "#f59e0b",
	"master_bedroom": "#9f7aea",
	"bedroom":        "#b794f4",
	"bathroom":       "#4299e1",
	"toilet":         "#63b3ed",
	"pooja":          "#ffd700",
	"living":         "#48bb78",
	"hall":           "#38b2ac",
	"dining":         "#ed8936",
	"study":          "#805ad5",
	"store":          "#718096",
	"balcony":        "#90cdf4",
	"garden":         "#2f855a",
	"lawn":           "#38a169",
	"parking":        "#a0aec0",
	"swimming_pool":  "#3182ce",
	"driveway":       "#718096",
	"deck":           "#c05621",
	"patio":          "#d69e2e",
	"terrace":        "#2c7a7b",
	"trees":          "#276749",
	"bore_well":      "#4a5568",
	"water_tank":     "#2b6cb0",
}

func roomColor(roomType string, colorByType bool) string {
	if !colorByType {
		return "#4a5568"
	}
	if c, ok := roomTypeColors[roomType]; ok {
		return c
	}
	return "#4a5568"
}

// drawLegend renders a legend of the room types present in the drawing.
func drawLegend(canvas *svg.SVG, opts SVGOptions, rooms []solver.RoomResponse) {
	seen := make(map[string]bool)
	var types []string
	for _, rm := range rooms {
		if !seen[rm.Type] {
			seen[rm.Type] = true
			types = append(types, rm.Type)
		}
	}
	sort.Strings(types)

	legendX := opts.Width - opts.Margin - 160
	legendY := opts.Margin + 20
	legendH := 30 + 20*len(types)

	canvas.Rect(legendX-10, legendY-15, 170, legendH,
		"fill:#2d3748;stroke:#4a5568;stroke-width:1;opacity:0.95;rx:5")
	canvas.Text(legendX, legendY, "Room Types",
		"font-size:13px;font-weight:bold;fill:#e2e8f0")
	legendY += 22

	for _, t := range types {
		canvas.Rect(legendX, legendY-10, 14, 14, fmt.Sprintf("fill:%s;stroke:#fff;stroke-width:1", roomColor(t, opts.ColorByType)))
		canvas.Text(legendX+22, legendY, t, "font-size:11px;fill:#cbd5e0")
		legendY += 20
	}
}

// drawHeader renders a title and summary statistics at the top of the
// drawing.
func drawHeader(canvas *svg.SVG, resp *solver.Response, opts SVGOptions) {
	headerY := 25
	if opts.Title != "" {
		canvas.Text(opts.Width/2, headerY, opts.Title,
			"text-anchor:middle;font-size:20px;font-weight:bold;fill:#e2e8f0;font-family:sans-serif")
		headerY += 25
	}
	if opts.ShowStats {
		stats := fmt.Sprintf("Rooms: %d | Score: %.1f | Iterations: %d | Converged: %v",
			len(resp.Rooms), resp.Score, resp.Iterations, resp.Converged)
		canvas.Text(opts.Width/2, headerY, stats,
			"text-anchor:middle;font-size:12px;fill:#a0aec0;font-family:monospace")
	}
}
