package solver

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the tuning knobs for a solve, separate from the
// per-request Request (spec.md §9 design note / SPEC_FULL.md §3 NEW):
// YAML-loadable, hashed for per-stage RNG derivation, mirroring the
// teacher's dungeon.Config shape.
type Config struct {
	Seed uint64 `yaml:"seed" json:"seed"`

	OptimizationLevel int    `yaml:"optimizationLevel" json:"optimizationLevel"`
	VastuSchool       string `yaml:"vastuSchool" json:"vastuSchool"`

	PlacerMaxIterations int     `yaml:"placerMaxIterations" json:"placerMaxIterations"`
	PlacerConvergence   float64 `yaml:"placerConvergence" json:"placerConvergence"`

	RefineMaxIters      int     `yaml:"refineMaxIters" json:"refineMaxIters"`
	RefineStallPatience int     `yaml:"refineStallPatience" json:"refineStallPatience"`
	RefineAlpha         float64 `yaml:"refineAlpha" json:"refineAlpha"`
	RefineT0            float64 `yaml:"refineT0" json:"refineT0"`
	RefineTMin          float64 `yaml:"refineTMin" json:"refineTMin"`

	VastuResolution float64 `yaml:"vastuResolution" json:"vastuResolution"`
	VastuSigma      float64 `yaml:"vastuSigma" json:"vastuSigma"`

	MinCirculation float64 `yaml:"minCirculation" json:"minCirculation"`
}

// DefaultConfig returns the spec's §4 defaults at optimization level 2
// (balanced) and the classical Vastu school.
func DefaultConfig() *Config {
	return &Config{
		OptimizationLevel:   2,
		VastuSchool:         "classical",
		PlacerMaxIterations: 100,
		PlacerConvergence:   0.01,
		RefineMaxIters:      3000,
		RefineStallPatience: 300,
		RefineAlpha:         0.995,
		RefineT0:            1.0,
		RefineTMin:          1e-3,
		VastuResolution:     0.05,
		VastuSigma:          2.0,
		MinCirculation:      0.8,
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.OptimizationLevel < 1 || c.OptimizationLevel > 3 {
		return fmt.Errorf("solver: optimizationLevel must be in [1,3], got %d", c.OptimizationLevel)
	}
	switch c.VastuSchool {
	case "classical", "modern", "flexible", "":
	default:
		return fmt.Errorf("solver: unrecognized vastuSchool %q", c.VastuSchool)
	}
	if c.PlacerMaxIterations <= 0 {
		return fmt.Errorf("solver: placerMaxIterations must be > 0, got %d", c.PlacerMaxIterations)
	}
	if c.RefineMaxIters <= 0 {
		return fmt.Errorf("solver: refineMaxIters must be > 0, got %d", c.RefineMaxIters)
	}
	if c.MinCirculation < 0 {
		return fmt.Errorf("solver: minCirculation must be >= 0, got %f", c.MinCirculation)
	}
	return nil
}

// vastuSchoolWeight scales the refiner energy's Vastu term by school
// (spec.md §6: "scales the Vastu weight in the energy by {1.0, 0.6, 0.3}").
func (c *Config) vastuSchoolWeight() float64 {
	switch c.VastuSchool {
	case "modern":
		return 0.6
	case "flexible":
		return 0.3
	default:
		return 1.0
	}
}

// optimizationBudget scales the refiner's iteration budget by
// OptimizationLevel: 1 (fast) halves it, 3 (thorough) doubles it.
func (c *Config) optimizationBudget() (maxIters, stallPatience int) {
	switch c.OptimizationLevel {
	case 1:
		return c.RefineMaxIters / 2, c.RefineStallPatience / 2
	case 3:
		return c.RefineMaxIters * 2, c.RefineStallPatience * 2
	default:
		return c.RefineMaxIters, c.RefineStallPatience
	}
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("solver: reading config file: %w", err)
	}
	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes parses YAML configuration from a byte slice,
// merging it over DefaultConfig so partial files are accepted.
func LoadConfigFromBytes(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("solver: parsing YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("solver: validation failed: %w", err)
	}
	return cfg, nil
}

// ToYAML serializes the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Hash computes a deterministic hash of the configuration, feeding
// rng.NewRNG's configHash parameter exactly as the teacher's
// dungeon.Config.Hash() does.
func (c *Config) Hash() []byte {
	data, err := c.ToYAML()
	if err != nil {
		h := sha256.New()
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], c.Seed)
		h.Write(buf[:])
		return h.Sum(nil)
	}
	h := sha256.New()
	h.Write(data)
	return h.Sum(nil)
}
