package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vastuforge/floorplan/pkg/export"
	"github.com/vastuforge/floorplan/pkg/solver"
	"github.com/vastuforge/floorplan/pkg/validation"
	"gopkg.in/yaml.v3"
)

const version = "1.0.0"

// CLI flags
var (
	requestPath = flag.String("request", "", "Path to a JSON or YAML room request file (required)")
	configPath  = flag.String("config", "", "Path to a YAML solver configuration file (optional)")
	outputDir   = flag.String("output", ".", "Output directory for generated files")
	format      = flag.String("format", "json", "Export format: json, svg, or all")
	seedFlag    = flag.Uint64("seed", 0, "Override the seed from the request (0 = use request seed)")
	verbose     = flag.Bool("verbose", false, "Enable verbose output")
	versionF    = flag.Bool("version", false, "Print version and exit")
	help        = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("floorplan version %s\n", version)
		os.Exit(0)
	}

	if *help {
		printHelp()
		os.Exit(0)
	}

	if *requestPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -request flag is required")
		printUsage()
		os.Exit(1)
	}

	validFormats := map[string]bool{"json": true, "svg": true, "all": true}
	if !validFormats[*format] {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q, must be one of: json, svg, all\n", *format)
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	if *verbose {
		fmt.Printf("Loading request from %s\n", *requestPath)
	}
	req, err := loadRequest(*requestPath)
	if err != nil {
		return fmt.Errorf("failed to load request: %w", err)
	}

	cfg := solver.DefaultConfig()
	if *configPath != "" {
		if *verbose {
			fmt.Printf("Loading solver config from %s\n", *configPath)
		}
		cfg, err = solver.LoadConfig(*configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	if *seedFlag != 0 {
		if *verbose {
			fmt.Printf("Overriding seed from %d to %d\n", req.Seed, *seedFlag)
		}
		req.Seed = *seedFlag
	}
	cfg.Seed = req.Seed

	if *verbose {
		fmt.Printf("Using seed: %d\n", req.Seed)
		fmt.Printf("Rooms: %d\n", len(req.Rooms))
		fmt.Printf("Plot: %gx%g (%s)\n", req.PlotWidth, req.PlotLength, req.PlotShape)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	obs := &cliObserver{verbose: *verbose}

	start := time.Now()
	if *verbose {
		fmt.Println("Solving floor plan...")
	}
	resp, err := solver.Solve(ctx, req, cfg, obs)
	if err != nil {
		return fmt.Errorf("solve failed: %w", err)
	}
	elapsed := time.Since(start)

	if *verbose {
		fmt.Printf("Solve completed in %v\n", elapsed)
		printStats(resp)
	}

	baseName := fmt.Sprintf("floorplan_%d", req.Seed)

	if *format == "json" || *format == "all" {
		if err := exportJSON(resp, baseName); err != nil {
			return err
		}
	}
	if *format == "svg" || *format == "all" {
		if err := exportSVG(resp, req.Seed, baseName); err != nil {
			return err
		}
	}

	fmt.Printf("Successfully solved floor plan (seed=%d, score=%.1f) in %v\n", req.Seed, resp.Score, elapsed)
	return nil
}

// loadRequest reads a Request from a JSON or YAML file, sniffed by
// extension (anything not .json is treated as YAML).
func loadRequest(path string) (*solver.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var req solver.Request
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	}
	return &req, nil
}

func exportJSON(resp *solver.Response, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".json")
	if *verbose {
		fmt.Printf("Exporting JSON to %s\n", filename)
	}
	if err := export.SaveJSONToFile(resp, filename); err != nil {
		return fmt.Errorf("failed to export JSON: %w", err)
	}
	if *verbose {
		info, _ := os.Stat(filename)
		fmt.Printf("  Wrote %d bytes\n", info.Size())
	}
	return nil
}

func exportSVG(resp *solver.Response, seed uint64, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".svg")
	if *verbose {
		fmt.Printf("Exporting SVG to %s\n", filename)
	}
	opts := export.DefaultSVGOptions()
	opts.Title = fmt.Sprintf("Floor Plan (seed=%d)", seed)
	if err := export.SaveSVGToFile(resp, filename, opts); err != nil {
		return fmt.Errorf("failed to export SVG: %w", err)
	}
	if *verbose {
		info, _ := os.Stat(filename)
		fmt.Printf("  Wrote %d bytes\n", info.Size())
	}
	return nil
}

func printStats(resp *solver.Response) {
	fmt.Println("\nFloor Plan Statistics:")
	fmt.Printf("  Rooms: %d\n", len(resp.Rooms))
	fmt.Printf("  Score: %.2f\n", resp.Score)
	fmt.Printf("  Iterations: %d\n", resp.Iterations)
	fmt.Printf("  Converged: %v\n", resp.Converged)

	if resp.Metrics != nil {
		m := resp.Metrics
		fmt.Println("\nMetrics:")
		fmt.Printf("  OverlapArea: %.4f m^2\n", m.OverlapArea)
		fmt.Printf("  VastuScore: %.3f\n", m.VastuScore)
		fmt.Printf("  AspectRatioScore: %.2f\n", m.AspectRatioScore)
		fmt.Printf("  BoundaryScore: %.2f\n", m.BoundaryScore)
		fmt.Printf("  CirculationScore: %.2f\n", m.CirculationScore)
		fmt.Printf("  AdjacencyScore: %.2f\n", m.AdjacencyScore)
	}

	if len(resp.Warnings) > 0 {
		fmt.Printf("\nWarnings: %d\n", len(resp.Warnings))
		for _, w := range resp.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}

	if resp.Validation != nil {
		fmt.Println()
		fmt.Print(validation.Summary(resp.Validation))
	}
}

// cliObserver wires solver.Observer to stdout, gated on -verbose.
type cliObserver struct {
	verbose bool
}

func (o *cliObserver) Counter(name string, delta int) {
	if o.verbose {
		fmt.Printf("  [%s] +%d\n", name, delta)
	}
}

func (o *cliObserver) Logf(format string, args ...any) {
	if o.verbose {
		fmt.Printf(format+"\n", args...)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage: floorplan -request <request.json> [options]")
	fmt.Fprintln(os.Stderr, "\nRun 'floorplan -help' for detailed help")
}

func printHelp() {
	fmt.Printf("floorplan version %s\n\n", version)
	fmt.Println("A command-line tool for solving Vastu-aware floor plan layouts.")
	fmt.Println("\nUsage:")
	fmt.Println("  floorplan -request <request.json> [options]")
	fmt.Println("\nRequired Flags:")
	fmt.Println("  -request string")
	fmt.Println("        Path to a JSON or YAML room request file")
	fmt.Println("\nOptional Flags:")
	fmt.Println("  -config string")
	fmt.Println("        Path to a YAML solver configuration file")
	fmt.Println("  -output string")
	fmt.Println("        Output directory for generated files (default: current directory)")
	fmt.Println("  -format string")
	fmt.Println("        Export format: json, svg, or all (default: json)")
	fmt.Println("  -seed uint")
	fmt.Println("        Override the seed from the request (0 = use request seed) (default: 0)")
	fmt.Println("  -verbose")
	fmt.Println("        Enable verbose output")
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println("\nExamples:")
	fmt.Println("  # Solve a floor plan with default JSON export")
	fmt.Println("  floorplan -request house.json")
	fmt.Println("\n  # Solve with a custom seed and both export formats")
	fmt.Println("  floorplan -request house.json -seed 12345 -format all -output ./out")
	fmt.Println("\n  # Solve with an SVG visualization and verbose output")
	fmt.Println("  floorplan -request house.json -format svg -verbose")
	fmt.Println("\nRequest File:")
	fmt.Println("  The JSON or YAML request file specifies the plot boundary and the")
	fmt.Println("  rooms to place within it: plotWidth, plotLength, plotShape, rooms[]")
	fmt.Println("  (id, type, targetWidth, targetHeight), optimizationLevel, vastuSchool,")
	fmt.Println("  and an optional seed.")
}
