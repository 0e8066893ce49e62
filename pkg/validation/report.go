package validation

import "fmt"

// Constraint identifies a single check: its kind, severity, and the
// expression it evaluates, mirroring the original dungeon validator's
// report shape.
type Constraint struct {
	Kind     string
	Severity string // "hard" or "soft"
	Expr     string
}

// ConstraintResult is the outcome of evaluating one Constraint against a
// layout.
type ConstraintResult struct {
	Constraint *Constraint
	Satisfied  bool
	Score      float64 // 1.0/0.0 for hard constraints, continuous for soft
	Details    string
}

// Metrics holds the derived quality measurements computed alongside
// constraint checking.
type Metrics struct {
	OverlapArea           float64
	ContainmentViolations int
	AdjacencySatisfaction float64 // fraction of required pairs satisfied, in [0,1]
	VastuScore            float64 // mean Phi at room centers, in [0,1]
	CirculationViolations int
}

// ValidationReport is the full result of validating a layout.
type ValidationReport struct {
	Passed                bool
	HardConstraintResults []ConstraintResult
	SoftConstraintResults []ConstraintResult
	Metrics               *Metrics
	Warnings              []string
	Errors                []string
}

// NewValidationReport returns an empty, passing report.
func NewValidationReport() *ValidationReport {
	return &ValidationReport{
		Passed:                true,
		HardConstraintResults: []ConstraintResult{},
		SoftConstraintResults: []ConstraintResult{},
		Warnings:              []string{},
		Errors:                []string{},
	}
}

// NewHardConstraintResult builds a pass/fail result (score 1.0 or 0.0).
func NewHardConstraintResult(kind, expr string, satisfied bool, details string) ConstraintResult {
	score := 0.0
	if satisfied {
		score = 1.0
	}
	return ConstraintResult{
		Constraint: &Constraint{Kind: kind, Severity: "hard", Expr: expr},
		Satisfied:  satisfied,
		Score:      score,
		Details:    details,
	}
}

// NewSoftConstraintResult builds a continuous-score result; satisfied is
// true above 0.5.
func NewSoftConstraintResult(kind, expr string, score float64, details string) ConstraintResult {
	return ConstraintResult{
		Constraint: &Constraint{Kind: kind, Severity: "soft", Expr: expr},
		Satisfied:  score > 0.5,
		Score:      score,
		Details:    details,
	}
}

// HasErrors reports whether the report failed any hard constraint.
func HasErrors(report *ValidationReport) bool {
	return len(report.Errors) > 0
}

// HasWarnings reports whether any soft constraint scored poorly.
func HasWarnings(report *ValidationReport) bool {
	return len(report.Warnings) > 0
}

// GetFailedConstraints returns the hard constraints that did not pass.
func GetFailedConstraints(report *ValidationReport) []ConstraintResult {
	var failed []ConstraintResult
	for _, r := range report.HardConstraintResults {
		if !r.Satisfied {
			failed = append(failed, r)
		}
	}
	return failed
}

// GetLowScoringConstraints returns soft constraints scoring below threshold.
func GetLowScoringConstraints(report *ValidationReport, threshold float64) []ConstraintResult {
	var low []ConstraintResult
	for _, r := range report.SoftConstraintResults {
		if r.Score < threshold {
			low = append(low, r)
		}
	}
	return low
}

// Summary renders a human-readable report, used by the CLI's -verbose flag.
func Summary(report *ValidationReport) string {
	status := "PASSED"
	if !report.Passed {
		status = "FAILED"
	}
	s := fmt.Sprintf("Validation: %s\n", status)

	s += "Hard constraints:\n"
	for _, r := range report.HardConstraintResults {
		mark := "ok"
		if !r.Satisfied {
			mark = "FAIL"
		}
		s += fmt.Sprintf("  [%s] %s: %s\n", mark, r.Constraint.Kind, r.Details)
	}

	s += "Soft constraints:\n"
	for _, r := range report.SoftConstraintResults {
		s += fmt.Sprintf("  %s: %.3f (%s)\n", r.Constraint.Kind, r.Score, r.Details)
	}

	if report.Metrics != nil {
		m := report.Metrics
		s += fmt.Sprintf("Metrics: overlap=%.4fm^2 containment_violations=%d adjacency=%.2f vastu=%.2f circulation_violations=%d\n",
			m.OverlapArea, m.ContainmentViolations, m.AdjacencySatisfaction, m.VastuScore, m.CirculationViolations)
	}

	for _, w := range report.Warnings {
		s += fmt.Sprintf("warning: %s\n", w)
	}
	for _, e := range report.Errors {
		s += fmt.Sprintf("error: %s\n", e)
	}

	return s
}
