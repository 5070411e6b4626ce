package optics

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

func checkVariance(op string, variance float64) error {
	if math.IsNaN(variance) || math.IsInf(variance, 0) || variance <= 0 {
		return domainErr(op, "variance", variance, "must be finite and positive")
	}
	return nil
}

// GaussianAt evaluates exp(-(x-mean)^2 / (2*variance)).
func GaussianAt(x, mean, variance float64) (float64, error) {
	if err := checkVariance("gaussian", variance); err != nil {
		return 0, err
	}
	return gaussian(x, mean, variance), nil
}

func gaussian(x, mean, variance float64) float64 {
	d := x - mean
	return math.Exp(-d * d / (2 * variance))
}

// Gaussian evaluates the profile at every sample of xs.
func Gaussian(xs Grid, mean, variance float64) (Grid, error) {
	if err := checkVariance("gaussian", variance); err != nil {
		return nil, err
	}
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return nil, domainErr("gaussian", "mean", mean, "must be finite")
	}
	out := make(Grid, len(xs))
	for i, x := range xs {
		out[i] = gaussian(x, mean, variance)
	}
	return out, nil
}

// GaussianSurface samples amplitude * g(x) * g(y) on the outer product of
// xs and ys. This is the two-beam intensity seen by the photodiode with the
// overlap coefficient folded into amplitude.
func GaussianSurface(xs, ys Grid, mean, variance, amplitude float64) (*Mesh, error) {
	if len(xs) == 0 || len(ys) == 0 {
		return nil, domainErr("gaussian surface", "points", 0, "empty grid")
	}
	gx, err := Gaussian(xs, mean, variance)
	if err != nil {
		return nil, err
	}
	gy, err := Gaussian(ys, mean, variance)
	if err != nil {
		return nil, err
	}
	z := mat.NewDense(len(ys), len(xs), nil)
	z.Outer(amplitude, mat.NewVecDense(len(gy), gy), mat.NewVecDense(len(gx), gx))
	return &Mesh{X: xs.Clone(), Y: ys.Clone(), Z: z}, nil
}
