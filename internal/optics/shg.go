package optics

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// SHGParams are the constants of the SHG field approximation.
type SHGParams struct {
	LambdaW        float64 `yaml:"lambda_w"`
	Lambda2W       float64 `yaml:"lambda_2w"`
	AlphaDeg       float64 `yaml:"alpha_deg"`
	Chi2           float64 `yaml:"chi2"`
	AlphaCollinear float64 `yaml:"alpha_collinear_deg"`
	Chi2Collinear  float64 `yaml:"chi2_collinear"`
}

func DefaultSHGParams() SHGParams {
	return SHGParams{
		LambdaW:        1064e-9,
		Lambda2W:       532e-9,
		AlphaDeg:       10.132,
		Chi2:           -1.17e-8,
		AlphaCollinear: 41.3,
		Chi2Collinear:  -7.95e-9,
	}
}

func (p SHGParams) Validate() error {
	if !(p.LambdaW > 0) {
		return domainErr("shg", "lambda_w", p.LambdaW, "must be positive")
	}
	if !(p.Lambda2W > 0) {
		return domainErr("shg", "lambda_2w", p.Lambda2W, "must be positive")
	}
	if math.Abs(math.Cos(p.AlphaDeg*math.Pi/180)) < 1e-12 {
		return domainErr("shg", "alpha_deg", p.AlphaDeg, "cos(alpha) vanishes")
	}
	return nil
}

// Epsilon2W approximates the second-harmonic field in the collinear
// geometry.
func Epsilon2W(cr Crystal, p SHGParams, x0, y0, z0, dz float64) complex128 {
	r2 := x0*x0 + y0*y0
	k2 := 2 * math.Pi / p.Lambda2W
	coupling := complex(0, 16*p.Chi2Collinear*math.Pi*p.LambdaW*p.LambdaW) / complex(cr.C*cr.C*k2, 0)
	return complex(cr.No2W*cr.Ne2W*r2, 0) -
		complex(dz, 0)*coupling*cmplx.Exp(complex(0, k2*z0))*complex(cr.NoW*cr.NeW, 0)
}

// IntensityPhase splits a field into |e|^2 and arg(e).
func IntensityPhase(e complex128) (intensity, phase float64) {
	a := cmplx.Abs(e)
	return a * a, cmplx.Phase(e)
}

// SHGField samples the second-harmonic intensity and phase on xs × ys at
// depth z0 and step dz.
func SHGField(cr Crystal, p SHGParams, xs, ys Grid, z0, dz float64) (intensity, phase *Mesh, err error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	if len(xs) == 0 || len(ys) == 0 {
		return nil, nil, domainErr("shg", "points", 0, "empty grid")
	}
	iz := mat.NewDense(len(ys), len(xs), nil)
	pz := mat.NewDense(len(ys), len(xs), nil)
	for i, y := range ys {
		for j, x := range xs {
			in, ph := IntensityPhase(Epsilon2W(cr, p, x, y, z0, dz))
			iz.Set(i, j, in)
			pz.Set(i, j, ph)
		}
	}
	return &Mesh{X: xs.Clone(), Y: ys.Clone(), Z: iz}, &Mesh{X: xs.Clone(), Y: ys.Clone(), Z: pz}, nil
}
