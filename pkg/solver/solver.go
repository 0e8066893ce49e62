// Package solver orchestrates the placer and refiner stages into a single
// Vastu-aware floor-plan solve, mirroring the teacher's
// dungeon.DefaultGenerator.Generate five-stage pipeline: normalize the
// request, derive a per-stage RNG, run each stage, and assemble a scored
// response.
package solver

import (
	"context"
	"fmt"

	"github.com/vastuforge/floorplan/pkg/geom"
	"github.com/vastuforge/floorplan/pkg/graph"
	"github.com/vastuforge/floorplan/pkg/layout"
	"github.com/vastuforge/floorplan/pkg/placer"
	"github.com/vastuforge/floorplan/pkg/refine"
	"github.com/vastuforge/floorplan/pkg/rng"
	"github.com/vastuforge/floorplan/pkg/roomdata"
	"github.com/vastuforge/floorplan/pkg/validation"
	"github.com/vastuforge/floorplan/pkg/vastu"
)

// Solve runs the full placement-and-refinement pipeline for req under cfg,
// reporting progress through obs (a nil obs falls back to NoopObserver).
// When req contains outdoor rooms, the solve runs in two phases per
// spec.md §4.4 design note 7: indoor rooms are solved to completion first,
// then carried forward fixed while outdoor rooms are placed and refined
// around them. This guarantees indoor positions are identical whether or
// not outdoor fixtures were requested, for the same seed.
func Solve(ctx context.Context, req *Request, cfg *Config, obs Observer) (*Response, error) {
	if obs == nil {
		obs = NoopObserver{}
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	effective := *cfg
	if req.Seed != 0 {
		effective.Seed = req.Seed
	}
	if req.OptimizationLevel != 0 {
		effective.OptimizationLevel = req.OptimizationLevel
	}
	if req.VastuSchool != "" {
		effective.VastuSchool = req.VastuSchool
	}
	cfg = &effective
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("solver: %w", err)
	}

	plot, err := normalizePlot(req)
	if err != nil {
		return nil, fmt.Errorf("solver: invalid request: %w", err)
	}
	rooms, err := buildRoomStates(req)
	if err != nil {
		return nil, fmt.Errorf("solver: invalid request: %w", err)
	}

	g := buildGraph(req, req.Seed)
	outdoor := partitionOutdoor(req)

	roomTypes := make([]roomdata.RoomType, 0, len(rooms))
	for i := range rooms {
		roomTypes = append(roomTypes, rooms[i].Type)
	}
	field, err := vastu.NewField(plot.EffectivePolygon(), roomTypes, cfg.VastuResolution, cfg.VastuSigma)
	if err != nil {
		return nil, fmt.Errorf("solver: building vastu field: %w", err)
	}

	placerCfg := placer.DefaultConfig()
	placerCfg.IterMax = cfg.PlacerMaxIterations
	placerCfg.ConvergenceEps = cfg.PlacerConvergence

	minCirculation := req.Constraints.MinCirculation
	if minCirculation <= 0 {
		minCirculation = cfg.MinCirculation
	}

	refineCfg := refine.DefaultConfig()
	maxIters, stallPatience := cfg.optimizationBudget()
	refineCfg.MaxIters = maxIters
	refineCfg.StallPatience = stallPatience
	refineCfg.Alpha = cfg.RefineAlpha
	refineCfg.T0 = cfg.RefineT0
	refineCfg.MinTemp = cfg.RefineTMin
	refineCfg.LambdaVastu *= cfg.vastuSchoolWeight()
	refineCfg.MinCirculationGap = minCirculation

	p, err := placer.Get("force_directed", placerCfg)
	if err != nil {
		return nil, fmt.Errorf("solver: %w", err)
	}
	ref, err := refine.Get("simulated_annealing", refineCfg)
	if err != nil {
		return nil, fmt.Errorf("solver: %w", err)
	}

	hasOutdoor := false
	for _, v := range outdoor {
		if v {
			hasOutdoor = true
			break
		}
	}

	var final *layout.Layout
	if !hasOutdoor {
		final, err = solveSinglePhase(ctx, p, ref, g, rooms, plot, field, cfg, obs)
		if err != nil {
			return nil, err
		}
	} else {
		final, err = solveTwoPhase(ctx, p, ref, g, rooms, plot, field, outdoor, cfg, obs)
		if err != nil {
			return nil, err
		}
	}

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("solver: %w", ctx.Err())
	default:
	}

	result := computeScore(final, g, plot, field, refineCfg.OverlapTolerance, minCirculation)

	report, err := validation.NewValidator().Validate(ctx, final, g, plot, field, minCirculation, refineCfg.OverlapTolerance)
	if err != nil {
		return nil, fmt.Errorf("solver: validation: %w", err)
	}
	warnings := append([]string{}, final.Warnings...)
	warnings = append(warnings, report.Warnings...)
	warnings = append(warnings, report.Errors...)

	resp := &Response{
		Rooms:      buildRoomResponses(final, plot),
		Score:      result.score,
		Iterations: final.Iterations,
		Converged:  final.Converged,
		Warnings:   warnings,
		Metrics:    result.metrics,
		Validation: report,
	}
	obs.Logf("solve complete: score=%.2f iterations=%d converged=%v", resp.Score, resp.Iterations, resp.Converged)
	return resp, nil
}

func solveSinglePhase(ctx context.Context, p placer.Placer, ref refine.RefinerAlgorithm, g *graph.Graph, rooms []layout.RoomState, plot *layout.Plot, field *vastu.Field, cfg *Config, obs Observer) (*layout.Layout, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("solver: %w", ctx.Err())
	default:
	}
	r := rng.NewRNG(cfg.Seed, "placer", cfg.Hash())
	placed, err := p.Place(g, rooms, plot, field, nil, r)
	if err != nil {
		return nil, fmt.Errorf("solver: placement failed: %w", err)
	}
	obs.Counter("placer.iterations", placed.Iterations)

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("solver: %w", ctx.Err())
	default:
	}
	rr := rng.NewRNG(cfg.Seed, "refine", cfg.Hash())
	refined, err := ref.Refine(ctx, placed, g, plot, field, nil, rr)
	if err != nil {
		return nil, fmt.Errorf("solver: refinement failed: %w", err)
	}
	obs.Counter("refine.iterations", refined.Iterations)
	return refined, nil
}

// solveTwoPhase runs the indoor subset through the full pipeline in
// isolation, then places and refines the combined room set with the
// indoor rooms pinned at their phase-one positions (spec.md §4.4 design
// note 7, spec.md §8 property 8 / scenario S4).
func solveTwoPhase(ctx context.Context, p placer.Placer, ref refine.RefinerAlgorithm, g *graph.Graph, rooms []layout.RoomState, plot *layout.Plot, field *vastu.Field, outdoor map[string]bool, cfg *Config, obs Observer) (*layout.Layout, error) {
	var indoorRooms, outdoorRooms []layout.RoomState
	for _, rm := range rooms {
		if outdoor[rm.ID] {
			outdoorRooms = append(outdoorRooms, rm)
		} else {
			indoorRooms = append(indoorRooms, rm)
		}
	}
	if len(indoorRooms) == 0 {
		return solveSinglePhase(ctx, p, ref, g, rooms, plot, field, cfg, obs)
	}

	indoorLayout, err := solveSinglePhase(ctx, p, ref, g, indoorRooms, plot, field, cfg, obs)
	if err != nil {
		return nil, fmt.Errorf("solver: indoor phase: %w", err)
	}

	fixed := make(map[string]bool, len(indoorLayout.Rooms))
	combined := make([]layout.RoomState, 0, len(rooms))
	for i := range indoorLayout.Rooms {
		rm := indoorLayout.Rooms[i]
		rm.Fixed = true
		combined = append(combined, rm)
		fixed[rm.ID] = true
	}
	combined = append(combined, outdoorRooms...)

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("solver: %w", ctx.Err())
	default:
	}
	r := rng.NewRNG(cfg.Seed, "placer-outdoor", cfg.Hash())
	placed, err := p.Place(g, combined, plot, field, fixed, r)
	if err != nil {
		return nil, fmt.Errorf("solver: outdoor placement failed: %w", err)
	}

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("solver: %w", ctx.Err())
	default:
	}
	rr := rng.NewRNG(cfg.Seed, "refine-outdoor", cfg.Hash())
	refined, err := ref.Refine(ctx, placed, g, plot, field, fixed, rr)
	if err != nil {
		return nil, fmt.Errorf("solver: outdoor refinement failed: %w", err)
	}
	return refined, nil
}

func buildRoomResponses(l *layout.Layout, plot *layout.Plot) []RoomResponse {
	out := make([]RoomResponse, len(l.Rooms))
	bounds := plot.BoundingBox()
	for i := range l.Rooms {
		rm := &l.Rooms[i]
		dir := layout.Direction(geom.Point{X: rm.CenterX, Y: rm.CenterY}, bounds)
		out[i] = RoomResponse{
			ID:        rm.ID,
			Name:      rm.Name,
			Type:      rm.Type.String(),
			X:         rm.CenterX - rm.W/2,
			Y:         rm.CenterY - rm.H/2,
			Width:     rm.W,
			Height:    rm.H,
			Direction: dir.String(),
		}
	}
	return out
}
