package optics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Grid is an ordered, evenly spaced sample vector.
type Grid []float64

// Linspace returns n evenly spaced points on [min, max].
func Linspace(min, max float64, n int) (Grid, error) {
	if n < 2 {
		return nil, domainErr("linspace", "n", float64(n), "need at least 2 points")
	}
	if !(max > min) {
		return nil, domainErr("linspace", "max", max, "max must exceed min")
	}
	return Grid(floats.Span(make([]float64, n), min, max)), nil
}

func (g Grid) Clone() Grid {
	c := make(Grid, len(g))
	copy(c, g)
	return c
}

// Shift returns g with every sample moved by -d, i.e. the abscissa of g(x-d).
func (g Grid) Shift(d float64) Grid {
	out := g.Clone()
	floats.AddConst(-d, out)
	return out
}

func (g Grid) IsFinite() bool {
	for _, v := range g {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Mesh is a 2D surface sampled on the outer product of X and Y.
// Row i corresponds to Y[i], column j to X[j].
type Mesh struct {
	X, Y Grid
	Z    *mat.Dense
}

func (m *Mesh) Dims() (rows, cols int) { return m.Z.Dims() }

// Range returns the minimum and maximum of Z.
func (m *Mesh) Range() (lo, hi float64) {
	return mat.Min(m.Z), mat.Max(m.Z)
}

// Crystal holds the refractive indices of a uniaxial crystal at the
// fundamental (w) and second-harmonic (2w) wavelengths plus its length.
type Crystal struct {
	Name   string  `yaml:"name"`
	NoW    float64 `yaml:"no_w"`
	NeW    float64 `yaml:"ne_w"`
	No2W   float64 `yaml:"no_2w"`
	Ne2W   float64 `yaml:"ne_2w"`
	Length float64 `yaml:"length_m"`
	C      float64 `yaml:"c"`
}

const (
	DefaultNoW    = 1.4938
	DefaultNeW    = 1.4598
	DefaultNo2W   = 1.5124
	DefaultNe2W   = 1.4704
	DefaultLength = 0.5e-2 // m
	SpeedOfLight  = 3.0e8  // m/s
)

func DefaultCrystal() Crystal {
	return Crystal{
		Name:   "default",
		NoW:    DefaultNoW,
		NeW:    DefaultNeW,
		No2W:   DefaultNo2W,
		Ne2W:   DefaultNe2W,
		Length: DefaultLength,
		C:      SpeedOfLight,
	}
}

// WalkOffNs returns the walk-off delay of the fundamental wave.
func (c Crystal) WalkOffNs() (float64, error) {
	return WalkOff(c.NoW, c.NeW, c.Length, c.C)
}

// Validate rejects non-physical indices and lengths.
func (c Crystal) Validate() error {
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"no_w", c.NoW}, {"ne_w", c.NeW}, {"no_2w", c.No2W}, {"ne_2w", c.Ne2W},
	} {
		if !(p.v >= 1) || math.IsInf(p.v, 0) {
			return domainErr("crystal", p.name, p.v, "refractive index must be finite and >= 1")
		}
	}
	if !(c.Length > 0) {
		return domainErr("crystal", "length_m", c.Length, "must be positive")
	}
	if !(c.C > 0) {
		return domainErr("crystal", "c", c.C, "must be positive")
	}
	return nil
}
