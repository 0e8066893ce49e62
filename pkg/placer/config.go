package placer

import "fmt"

// Config holds the force-directed placer's physical constants. Defaults
// for AlphaAttraction/AlphaRepulsion/AlphaVastu/AlphaBoundary, DT,
// Damping, and RepulsionRadius are taken from the original
// implementation's GraphSolverParams to preserve its empirical tuning;
// IterMax and ConvergenceEps follow spec.md §4.4 directly, which
// specifies different values than the original (100 iterations, not
// 800).
type Config struct {
	DT      float64 // integration time step
	Damping float64 // velocity damping factor mu

	AlphaAttraction float64 // k_a, adjacency spring constant
	AlphaRepulsion  float64 // k_r, non-adjacent repulsion constant
	AlphaVastu      float64 // k_v, Vastu pull constant
	AlphaBoundary   float64 // k_b, boundary penalty constant

	RepulsionRadius float64 // R_rep, meters
	IdealSpacing    float64 // added to d* in the attraction ideal-distance formula

	IterMax        int     // placer stops after this many steps regardless of convergence
	ConvergenceEps float64 // stop when max velocity magnitude falls below this

	OverlapResolutionSweeps int     // post-integration overlap resolution attempts
	OverlapTolerance        float64 // tau, m^2

	DimensionJitter     float64 // uniform +/- fraction applied to preferred dimensions at placer entry
	InitialOffsetSpread float64 // uniform offset added to each axis of the initial Vastu-anchored position

	GridSnap float64 // quantization applied after integration, 0 disables
}

// DefaultConfig returns spec.md §4.4's defaults.
func DefaultConfig() *Config {
	return &Config{
		DT:                      0.1,
		Damping:                 0.8,
		AlphaAttraction:         0.7,
		AlphaRepulsion:          0.8,
		AlphaVastu:              1.2,
		AlphaBoundary:           2.0,
		RepulsionRadius:         5.0,
		IdealSpacing:            0.3,
		IterMax:                 100,
		ConvergenceEps:          0.01,
		OverlapResolutionSweeps: 20,
		OverlapTolerance:        1e-3,
		DimensionJitter:         0.05,
		InitialOffsetSpread:     0.5,
		GridSnap:                0,
	}
}

// Validate checks config invariants.
func (c *Config) Validate() error {
	if c.DT <= 0 {
		return fmt.Errorf("placer: DT must be > 0, got %f", c.DT)
	}
	if c.Damping < 0 || c.Damping > 1 {
		return fmt.Errorf("placer: Damping must be in [0,1], got %f", c.Damping)
	}
	if c.IterMax <= 0 {
		return fmt.Errorf("placer: IterMax must be > 0, got %d", c.IterMax)
	}
	if c.ConvergenceEps < 0 {
		return fmt.Errorf("placer: ConvergenceEps must be >= 0, got %f", c.ConvergenceEps)
	}
	if c.RepulsionRadius <= 0 {
		return fmt.Errorf("placer: RepulsionRadius must be > 0, got %f", c.RepulsionRadius)
	}
	if c.OverlapResolutionSweeps < 0 {
		return fmt.Errorf("placer: OverlapResolutionSweeps must be >= 0, got %d", c.OverlapResolutionSweeps)
	}
	return nil
}
