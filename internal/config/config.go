package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/nlolab/internal/optics"
)

const (
	DefaultGridMin    = -5.0
	DefaultGridMax    = 5.0
	DefaultGridPoints = 1000
	DefaultMean       = 0.0
	DefaultVariance   = 1.0
	DefaultTauMin     = -35
	DefaultTauMax     = 35
	DefaultTauScale   = 0.1
	DefaultRelTol     = 1e-9
	DefaultMaxPoints  = 4096
)

type Config struct {
	Crystal  optics.Crystal   `yaml:"crystal"`
	Pulse    PulseConfig      `yaml:"pulse"`
	Grid     GridConfig       `yaml:"grid"`
	Dials    DialsConfig      `yaml:"dials"`
	Numerics NumericsConfig   `yaml:"numerics"`
	SHG      optics.SHGParams `yaml:"shg"`
	Display  DisplayConfig    `yaml:"display"`
}

type PulseConfig struct {
	Mean     float64 `yaml:"mean"`
	Variance float64 `yaml:"variance"`
}

type GridConfig struct {
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
	Points int     `yaml:"points"`
	// SurfacePoints is the per-axis resolution of 2D meshes.
	SurfacePoints int `yaml:"surface_points"`
}

type DialConfig struct {
	Min   int     `yaml:"min"`
	Max   int     `yaml:"max"`
	Scale float64 `yaml:"scale"`
	Unit  string  `yaml:"unit"`
}

type DialsConfig struct {
	Tau   DialConfig `yaml:"tau"`
	Phi   DialConfig `yaml:"phi"`
	Theta DialConfig `yaml:"theta"`
}

type NumericsConfig struct {
	Method    string  `yaml:"method"`
	RelTol    float64 `yaml:"rel_tol"`
	MaxPoints int     `yaml:"max_points"`
}

type DisplayConfig struct {
	Theme  string `yaml:"theme"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Crystal: optics.DefaultCrystal(),
		Pulse: PulseConfig{
			Mean:     DefaultMean,
			Variance: DefaultVariance,
		},
		Grid: GridConfig{
			Min:           DefaultGridMin,
			Max:           DefaultGridMax,
			Points:        DefaultGridPoints,
			SurfacePoints: 40,
		},
		Dials: DialsConfig{
			Tau:   DialConfig{Min: DefaultTauMin, Max: DefaultTauMax, Scale: DefaultTauScale, Unit: "ns"},
			Phi:   DialConfig{Min: 0, Max: 360, Scale: 1, Unit: "°"},
			Theta: DialConfig{Min: 0, Max: 180, Scale: 1, Unit: "°"},
		},
		Numerics: NumericsConfig{
			Method:    "closed",
			RelTol:    DefaultRelTol,
			MaxPoints: DefaultMaxPoints,
		},
		SHG: optics.DefaultSHGParams(),
		Display: DisplayConfig{
			Theme:  "cyberpunk",
			Width:  60,
			Height: 20,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Crystal.Validate(); err != nil {
		return err
	}
	if err := c.SHG.Validate(); err != nil {
		return err
	}
	if !(c.Pulse.Variance > 0) {
		return fmt.Errorf("pulse.variance must be positive, got %g", c.Pulse.Variance)
	}
	if c.Grid.Points < 2 {
		return fmt.Errorf("grid.points must be at least 2, got %d", c.Grid.Points)
	}
	if c.Grid.SurfacePoints < 2 {
		return fmt.Errorf("grid.surface_points must be at least 2, got %d", c.Grid.SurfacePoints)
	}
	if !(c.Grid.Max > c.Grid.Min) {
		return fmt.Errorf("grid.max (%g) must exceed grid.min (%g)", c.Grid.Max, c.Grid.Min)
	}
	for name, d := range map[string]DialConfig{"tau": c.Dials.Tau, "phi": c.Dials.Phi, "theta": c.Dials.Theta} {
		if d.Max <= d.Min {
			return fmt.Errorf("dials.%s: max (%d) must exceed min (%d)", name, d.Max, d.Min)
		}
		if d.Scale == 0 {
			return fmt.Errorf("dials.%s: scale must be non-zero", name)
		}
	}
	switch c.Numerics.Method {
	case "closed", "quadrature":
	default:
		return fmt.Errorf("numerics.method must be closed or quadrature, got %q", c.Numerics.Method)
	}
	return nil
}

// SampleGrid builds the 1D grid described by c.Grid.
func (c *Config) SampleGrid() (optics.Grid, error) {
	return optics.Linspace(c.Grid.Min, c.Grid.Max, c.Grid.Points)
}

// SurfaceGrid builds the per-axis grid used for 2D meshes.
func (c *Config) SurfaceGrid() (optics.Grid, error) {
	return optics.Linspace(c.Grid.Min, c.Grid.Max, c.Grid.SurfacePoints)
}

func (c *Config) Estimator() (optics.Estimator, error) {
	return optics.EstimatorByName(c.Numerics.Method, c.Numerics.RelTol, c.Numerics.MaxPoints)
}

// ApplyPreset replaces the crystal with a named preset.
func (c *Config) ApplyPreset(name string) error {
	cr := GetPreset(name)
	if cr == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, ListPresets())
	}
	c.Crystal = *cr
	return nil
}
