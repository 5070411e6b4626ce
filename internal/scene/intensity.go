package scene

import (
	"fmt"

	"github.com/san-kum/nlolab/internal/config"
	"github.com/san-kum/nlolab/internal/optics"
)

const (
	intensitySamples = 100
	intensityTauMax  = 3.5
)

// Intensity is the photodiode signal I(tau) = γ(tau - tau_m)^2 over a fixed
// range of delays. It has no dials.
type Intensity struct {
	mean, variance float64
	taus           optics.Grid
	tauM           float64
	est            optics.Estimator
}

func NewIntensity(cfg *config.Config, est optics.Estimator) (*Intensity, error) {
	tauM, err := cfg.Crystal.WalkOffNs()
	if err != nil {
		return nil, fmt.Errorf("walk-off: %w", err)
	}
	taus, err := optics.Linspace(-intensityTauMax, intensityTauMax, intensitySamples)
	if err != nil {
		return nil, err
	}
	return &Intensity{mean: cfg.Pulse.Mean, variance: cfg.Pulse.Variance, taus: taus, tauM: tauM, est: est}, nil
}

func (s *Intensity) Name() string        { return "intensity" }
func (s *Intensity) Description() string { return "photodiode intensity vs delay" }
func (s *Intensity) Dials() []DialSpec   { return nil }

func (s *Intensity) Render(Params) (*RenderState, error) {
	ys := make([]float64, len(s.taus))
	for i, tau := range s.taus {
		v, err := optics.Intensity(s.est, s.mean, s.variance, tau, s.tauM)
		if err != nil {
			return nil, fmt.Errorf("intensity at tau=%g: %w", tau, err)
		}
		ys[i] = v
	}
	return &RenderState{
		Scene:  s.Name(),
		Title:  "Photo-diode's intensity",
		XLabel: "τ",
		YLabel: "Intensity",
		Series: []Series{
			{Name: "I(τ)", X: s.taus.Clone(), Y: ys},
			{Name: "τm", X: []float64{s.tauM, s.tauM}, Y: []float64{0, 1}},
		},
		ZMin:    0,
		ZMax:    1,
		Readout: []string{fmt.Sprintf("τm: %.1f ns", s.tauM)},
	}, nil
}
