package analysis

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/san-kum/nlolab/internal/optics"
)

// SweepConfig describes an intensity sweep over tau in [Min, Max].
type SweepConfig struct {
	Min, Max float64
	Points   int
	Mean     float64
	Variance float64
	// TauM is the walk-off delay the correlation is measured against.
	TauM    float64
	Workers int
}

// Point is one sample of a sweep.
type Point struct {
	Tau       float64
	Gamma     float64
	Intensity float64
}

// Sweep evaluates gamma(tau - TauM) and the photodiode intensity gamma^2
// at every tau. Points are independent and written to their own slot, so
// the result order matches the tau grid regardless of Workers. The first
// failing point, in grid order, is returned as the error.
func Sweep(ctx context.Context, est optics.Estimator, cfg SweepConfig, logger *log.Logger) ([]Point, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	taus, err := optics.Linspace(cfg.Min, cfg.Max, cfg.Points)
	if err != nil {
		return nil, err
	}

	out := make([]Point, len(taus))
	errs := make([]error, len(taus))
	parallelFor(len(taus), 16, cfg.Workers, func(start, end int) {
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			tau := taus[i]
			g, err := est.Coefficient(cfg.Mean, cfg.Variance, tau-cfg.TauM)
			if err != nil {
				errs[i] = fmt.Errorf("tau=%g: %w", tau, err)
				continue
			}
			out[i] = Point{Tau: tau, Gamma: g, Intensity: g * g}
		}
	})

	for _, err := range errs {
		if err != nil {
			logger.Warn("sweep failed", "method", est.Name(), "err", err)
			return nil, err
		}
	}
	logger.Debug("sweep done", "method", est.Name(), "points", len(out), "tau_m", cfg.TauM)
	return out, nil
}

// Peak returns the point with the largest intensity.
func Peak(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	best := points[0]
	for _, p := range points[1:] {
		if p.Intensity > best.Intensity {
			best = p
		}
	}
	return best, true
}
