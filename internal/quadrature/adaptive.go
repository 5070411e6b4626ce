package quadrature

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

var (
	ErrNoConvergence = errors.New("quadrature: tolerance not reached")
	ErrNonFinite     = errors.New("quadrature: integrand produced NaN or Inf")
	ErrBadInterval   = errors.New("quadrature: invalid interval")
)

// Result is the outcome of one adaptive integration.
type Result struct {
	Value  float64
	RelErr float64
	Points int
	Evals  int
}

// Error carries the last estimate of a failed integration.
type Error struct {
	Result  Result
	Wrapped error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v (points=%d, value=%g, rel err=%.2e)", e.Wrapped, e.Result.Points, e.Result.Value, e.Result.RelErr)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Adaptive refines a Gauss-Legendre rule by doubling its order until two
// successive estimates agree to RelTol.
type Adaptive struct {
	RelTol    float64
	AbsTol    float64
	MinPoints int
	MaxPoints int
	// Concurrent is passed through to quad.Fixed; 0 evaluates serially.
	Concurrent int
}

func NewAdaptive() *Adaptive {
	return &Adaptive{
		RelTol:    1e-9,
		AbsTol:    1e-300,
		MinPoints: 16,
		MaxPoints: 4096,
	}
}

// Infinite integrates f over the real line. The substitution
// x = center + scale*t/(1-t^2) maps (-1, 1) onto (-inf, inf); center and
// scale should roughly locate the bulk of f so that the rule resolves it.
func (a *Adaptive) Infinite(f func(float64) float64, center, scale float64) (Result, error) {
	if math.IsNaN(center) || math.IsInf(center, 0) || !(scale > 0) || math.IsInf(scale, 0) {
		return Result{}, ErrBadInterval
	}
	g := func(t float64) float64 {
		d := 1 - t*t
		if d <= 0 {
			return 0
		}
		v := f(center + scale*t/d)
		if v == 0 {
			return 0
		}
		return v * scale * (1 + t*t) / (d * d)
	}
	return a.refine(g, -1, 1)
}

func (a *Adaptive) refine(f func(float64) float64, min, max float64) (Result, error) {
	minPts, maxPts := a.MinPoints, a.MaxPoints
	if minPts < 2 {
		minPts = 2
	}
	if maxPts < minPts {
		maxPts = minPts
	}

	n := minPts
	prev := quad.Fixed(f, min, max, n, quad.Legendre{}, a.Concurrent)
	evals := n
	if math.IsNaN(prev) || math.IsInf(prev, 0) {
		return Result{Value: prev, Points: n, Evals: evals}, &Error{Result: Result{Value: prev, Points: n, Evals: evals}, Wrapped: ErrNonFinite}
	}
	res := Result{Value: prev, RelErr: math.Inf(1), Points: n}
	for n*2 <= maxPts {
		n *= 2
		cur := quad.Fixed(f, min, max, n, quad.Legendre{}, a.Concurrent)
		evals += n
		if math.IsNaN(cur) || math.IsInf(cur, 0) {
			res = Result{Value: cur, Points: n, Evals: evals, RelErr: math.Inf(1)}
			return res, &Error{Result: res, Wrapped: ErrNonFinite}
		}
		diff := math.Abs(cur - prev)
		scale := math.Abs(cur)
		rel := 0.0
		if scale > 0 {
			rel = diff / scale
		} else if diff > 0 {
			rel = math.Inf(1)
		}
		res = Result{Value: cur, RelErr: rel, Points: n, Evals: evals}
		if rel <= a.RelTol || diff <= a.AbsTol {
			return res, nil
		}
		prev = cur
	}
	return res, &Error{Result: res, Wrapped: ErrNoConvergence}
}
