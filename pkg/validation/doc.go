// Package validation provides constraint checking and metrics calculation
// for a solved floor plan.
//
// # Hard constraints
//
// Must be satisfied for a layout to be considered valid:
//
//   - Containment: every room's footprint lies within the plot boundary.
//   - No overlaps: no two rooms' footprints overlap by more than the
//     overlap tolerance.
//
// # Soft constraints
//
// Optimization targets that are reported but do not fail validation:
//
//   - Adjacency satisfaction: required adjacency pairs are touching or
//     close.
//   - Vastu score: mean Φ sampled at each room's center, unscaled by the
//     Vastu school.
//   - Circulation: minimum gap between non-adjacent rooms.
//
// # Usage
//
//	validator := validation.NewValidator()
//	report, err := validator.Validate(ctx, layout, g, plot, field, minGap, overlapTolerance)
//	if !report.Passed {
//	    log.Printf("validation failed: %v", report.Errors)
//	}
package validation
