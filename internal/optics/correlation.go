package optics

import (
	"errors"
	"math"

	"github.com/san-kum/nlolab/internal/quadrature"
)

// Estimator computes the overlap coefficient between a Gaussian profile and
// its copy delayed by tau.
type Estimator interface {
	Coefficient(mean, variance, tau float64) (float64, error)
	Name() string
}

// Correlation returns exp(-tau^2 / (4*variance)), the closed form of
//
//	∫ g(x) g(x-tau) dx / ∫ g(x)^2 dx
//
// for g(x) = exp(-(x-mean)^2 / (2*variance)). It is independent of mean.
func Correlation(mean, variance, tau float64) (float64, error) {
	if err := checkVariance("correlation", variance); err != nil {
		return 0, err
	}
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return 0, domainErr("correlation", "mean", mean, "must be finite")
	}
	if math.IsNaN(tau) || math.IsInf(tau, 0) {
		return 0, domainErr("correlation", "tau", tau, "must be finite")
	}
	if tau == 0 {
		return 1, nil
	}
	return math.Exp(-tau * tau / (4 * variance)), nil
}

// CorrelationQuad evaluates both overlap integrals numerically with q.
func CorrelationQuad(q *quadrature.Adaptive, mean, variance, tau float64) (float64, error) {
	// Validates the same inputs as the closed form.
	if _, err := Correlation(mean, variance, tau); err != nil {
		return 0, err
	}
	if tau == 0 {
		return 1, nil
	}
	sigma := math.Sqrt(variance)

	f := func(x float64) float64 { return gaussian(x, mean, variance) }
	g := func(x float64) float64 { return gaussian(x-tau, mean, variance) }

	num, err := q.Infinite(func(x float64) float64 { return f(x) * g(x) }, mean+tau/2, sigma)
	if err != nil {
		return 0, integrationErr("correlation numerator", num, err)
	}
	den, err := q.Infinite(func(x float64) float64 { v := f(x); return v * v }, mean, sigma)
	if err != nil {
		return 0, integrationErr("correlation denominator", den, err)
	}
	if den.Value <= 0 {
		return 0, &IntegrationError{Op: "correlation denominator", Evals: den.Evals, Estimate: den.Value}
	}
	return num.Value / den.Value, nil
}

func integrationErr(op string, r quadrature.Result, err error) error {
	ie := &IntegrationError{Op: op, Evals: r.Evals, Estimate: r.Value, RelErr: r.RelErr, Wrapped: err}
	var qerr *quadrature.Error
	if errors.As(err, &qerr) {
		ie.Evals, ie.Estimate, ie.RelErr = qerr.Result.Evals, qerr.Result.Value, qerr.Result.RelErr
	}
	return ie
}

// ClosedForm is the default Estimator.
type ClosedForm struct{}

func (ClosedForm) Name() string { return "closed" }

func (ClosedForm) Coefficient(mean, variance, tau float64) (float64, error) {
	return Correlation(mean, variance, tau)
}

// Quadrature estimates the coefficient numerically, the way a bench
// measurement would integrate the photodiode signal.
type Quadrature struct {
	Q *quadrature.Adaptive
}

func NewQuadrature(relTol float64, maxPoints int) *Quadrature {
	q := quadrature.NewAdaptive()
	if relTol > 0 {
		q.RelTol = relTol
	}
	if maxPoints > 0 {
		q.MaxPoints = maxPoints
	}
	return &Quadrature{Q: q}
}

func (e *Quadrature) Name() string { return "quadrature" }

func (e *Quadrature) Coefficient(mean, variance, tau float64) (float64, error) {
	return CorrelationQuad(e.Q, mean, variance, tau)
}

// EstimatorByName resolves "closed" or "quadrature".
func EstimatorByName(name string, relTol float64, maxPoints int) (Estimator, error) {
	switch name {
	case "", "closed":
		return ClosedForm{}, nil
	case "quadrature", "quad":
		return NewQuadrature(relTol, maxPoints), nil
	}
	return nil, errors.New("optics: unknown correlation method: " + name)
}

// Intensity returns the photodiode intensity gamma^2 for a delay tau
// measured against the walk-off delay tauM.
func Intensity(e Estimator, mean, variance, tau, tauM float64) (float64, error) {
	gamma, err := e.Coefficient(mean, variance, tau-tauM)
	if err != nil {
		return 0, err
	}
	return gamma * gamma, nil
}
