package refine

import "fmt"

// MoveProbs holds the unnormalized weights for the translate/resize/
// vastu_hop/align moves. The rotate weight is not stored here: it is
// derived from Config.AllowRotations at each proposal (spec.md §4.5:
// "0.1 if rotations allowed else 0"), so a single flag controls both
// whether rotation ever fires and its share of the move distribution.
type MoveProbs struct {
	Translate float64
	Resize    float64
	VastuHop  float64
	Align     float64
}

// effective returns the five-way move distribution (translate, rotate,
// resize, vastu_hop, align) normalized to sum to 1, with the rotate
// weight set per allowRotations.
func (m MoveProbs) effective(allowRotations bool) [5]float64 {
	rotate := 0.0
	if allowRotations {
		rotate = 0.1
	}
	w := [5]float64{m.Translate, rotate, m.Resize, m.VastuHop, m.Align}
	total := 0.0
	for _, v := range w {
		total += v
	}
	if total <= 0 {
		return [5]float64{0.25, 0, 0.25, 0.25, 0.25}
	}
	for i := range w {
		w[i] /= total
	}
	return w
}

// Config holds the simulated-annealing refiner's tunables. Defaults are
// taken from the original implementation's SAParams (spec.md §4.5).
type Config struct {
	T0       float64 // initial temperature
	Alpha    float64 // geometric cooling rate
	MinTemp  float64
	MaxIters int
	StallPatience       int
	CoolingStep         int
	LocalRepairInterval int

	TransSigma     float64 // meters, stddev of translate move
	RotateSigma    float64 // radians, stddev of rotate move
	ResizeMin      float64
	ResizeMax      float64
	AllowRotations bool
	HopAttempts    int
	SlideStep      float64 // meters, align move step and neighbor search radius factor
	GridSnap       float64 // meters, 0 disables
	MinCirculationGap float64

	Moves MoveProbs

	OverlapTolerance  float64 // tau, m^2
	LambdaOverlap     float64
	LambdaVastu       float64
	LambdaAdjacency   float64
	LambdaCirculation float64
	LambdaBoundary    float64
	LambdaArea        float64
	LambdaAlign       float64
	AlignTolerance    float64 // for "aligned edges" slope/endpoint matching
}

// DefaultConfig returns spec.md §4.5's defaults.
func DefaultConfig() *Config {
	return &Config{
		T0:                  1.0,
		Alpha:               0.995,
		MinTemp:             1e-3,
		MaxIters:            3000,
		StallPatience:       300,
		CoolingStep:         10,
		LocalRepairInterval: 100,

		TransSigma:        0.5,
		RotateSigma:       0.5235987755982988, // pi/6 = 30 degrees
		ResizeMin:         0.9,
		ResizeMax:         1.1,
		AllowRotations:    false,
		HopAttempts:       10,
		SlideStep:         0.1,
		GridSnap:          0.01,
		MinCirculationGap: 0.8,

		Moves: MoveProbs{Translate: 0.5, Resize: 0.2, VastuHop: 0.1, Align: 0.1},

		OverlapTolerance:  1e-3,
		LambdaOverlap:     1e5,
		LambdaVastu:       1.0,
		LambdaAdjacency:   0.8,
		LambdaCirculation: 1.2,
		LambdaBoundary:    2.0,
		LambdaArea:        0.7,
		LambdaAlign:       0.5,
		AlignTolerance:    0.1,
	}
}

// Validate checks config invariants.
func (c *Config) Validate() error {
	if c.T0 <= 0 {
		return fmt.Errorf("refine: T0 must be > 0, got %f", c.T0)
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf("refine: Alpha must be in (0,1), got %f", c.Alpha)
	}
	if c.MaxIters <= 0 {
		return fmt.Errorf("refine: MaxIters must be > 0, got %d", c.MaxIters)
	}
	if c.StallPatience <= 0 {
		return fmt.Errorf("refine: StallPatience must be > 0, got %d", c.StallPatience)
	}
	if c.CoolingStep <= 0 {
		return fmt.Errorf("refine: CoolingStep must be > 0, got %d", c.CoolingStep)
	}
	return nil
}
