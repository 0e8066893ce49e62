package validation

import (
	"context"
	"fmt"

	"github.com/vastuforge/floorplan/pkg/graph"
	"github.com/vastuforge/floorplan/pkg/layout"
	"github.com/vastuforge/floorplan/pkg/vastu"
)

// Validator checks a solved layout's hard and soft constraints and
// computes its quality metrics.
type Validator interface {
	Validate(ctx context.Context, l *layout.Layout, g *graph.Graph, plot *layout.Plot, field *vastu.Field, minCirculationGap, overlapTolerance float64) (*ValidationReport, error)
}

// DefaultValidator is the only Validator implementation.
type DefaultValidator struct{}

// NewValidator returns a DefaultValidator.
func NewValidator() Validator {
	return &DefaultValidator{}
}

// Validate runs the hard and soft constraint checks and computes
// metrics for l.
func (v *DefaultValidator) Validate(ctx context.Context, l *layout.Layout, g *graph.Graph, plot *layout.Plot, field *vastu.Field, minCirculationGap, overlapTolerance float64) (*ValidationReport, error) {
	if l == nil || len(l.Rooms) == 0 {
		return nil, fmt.Errorf("validation: cannot validate an empty layout")
	}
	if plot == nil {
		return nil, fmt.Errorf("validation: cannot validate with a nil plot")
	}
	if g == nil {
		g = graph.NewGraph(0)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	report := NewValidationReport()

	v.checkHardConstraints(l, plot, overlapTolerance, report)
	v.checkSoftConstraints(l, g, field, minCirculationGap, report)

	circulationV, _ := circulationViolations(l, g, minCirculationGap)
	report.Metrics = &Metrics{
		OverlapArea:           CalculateOverlapArea(l),
		ContainmentViolations: CalculateContainmentViolations(l, plot),
		AdjacencySatisfaction: CalculateAdjacencySatisfaction(l, g),
		VastuScore:            CalculateVastuScore(l, field),
		CirculationViolations: circulationV,
	}

	report.Passed = len(report.Errors) == 0
	return report, nil
}

func (v *DefaultValidator) checkHardConstraints(l *layout.Layout, plot *layout.Plot, overlapTolerance float64, report *ValidationReport) {
	if result := CheckContainment(l, plot); !result.Satisfied {
		report.Errors = append(report.Errors, result.Details)
		report.HardConstraintResults = append(report.HardConstraintResults, result)
	} else {
		report.HardConstraintResults = append(report.HardConstraintResults, result)
	}

	if result := CheckNoOverlaps(l, overlapTolerance); !result.Satisfied {
		report.Errors = append(report.Errors, result.Details)
		report.HardConstraintResults = append(report.HardConstraintResults, result)
	} else {
		report.HardConstraintResults = append(report.HardConstraintResults, result)
	}
}

func (v *DefaultValidator) checkSoftConstraints(l *layout.Layout, g *graph.Graph, field *vastu.Field, minGap float64, report *ValidationReport) {
	if result := CheckAdjacencySatisfaction(l, g); result.Score < 0.8 {
		report.Warnings = append(report.Warnings, result.Details)
		report.SoftConstraintResults = append(report.SoftConstraintResults, result)
	} else {
		report.SoftConstraintResults = append(report.SoftConstraintResults, result)
	}

	if field != nil {
		if result := CheckVastuScore(l, field); result.Score < 0.4 {
			report.Warnings = append(report.Warnings, result.Details)
			report.SoftConstraintResults = append(report.SoftConstraintResults, result)
		} else {
			report.SoftConstraintResults = append(report.SoftConstraintResults, result)
		}
	}

	if minGap > 0 {
		if result := CheckCirculation(l, g, minGap); result.Score < 0.8 {
			report.Warnings = append(report.Warnings, result.Details)
			report.SoftConstraintResults = append(report.SoftConstraintResults, result)
		} else {
			report.SoftConstraintResults = append(report.SoftConstraintResults, result)
		}
	}
}
