package scene

import (
	"fmt"

	"github.com/san-kum/nlolab/internal/config"
	"github.com/san-kum/nlolab/internal/optics"
)

// Gaussian shows the two-beam intensity surface at the photodiode. The
// delay is measured against the crystal walk-off, so tau = tau_m gives the
// full overlap.
type Gaussian struct {
	mean, variance float64
	grid           optics.Grid
	surface        optics.Grid
	tauM           float64
	est            optics.Estimator
	dial           DialSpec
}

func NewGaussian(cfg *config.Config, est optics.Estimator) (*Gaussian, error) {
	tauM, err := cfg.Crystal.WalkOffNs()
	if err != nil {
		return nil, fmt.Errorf("walk-off: %w", err)
	}
	grid, err := cfg.SampleGrid()
	if err != nil {
		return nil, err
	}
	surface, err := cfg.SurfaceGrid()
	if err != nil {
		return nil, err
	}
	return &Gaussian{
		mean:     cfg.Pulse.Mean,
		variance: cfg.Pulse.Variance,
		grid:     grid,
		surface:  surface,
		tauM:     tauM,
		est:      est,
		dial:     tauDial(cfg, "τ"),
	}, nil
}

func (g *Gaussian) Name() string        { return "gaussian" }
func (g *Gaussian) Description() string { return "photodiode intensity surface" }
func (g *Gaussian) Dials() []DialSpec   { return []DialSpec{g.dial} }

func (g *Gaussian) Render(p Params) (*RenderState, error) {
	tau, err := p.get("tau")
	if err != nil {
		return nil, err
	}
	gamma, err := g.est.Coefficient(g.mean, g.variance, tau-g.tauM)
	if err != nil {
		return nil, fmt.Errorf("correlation at tau=%g: %w", tau, err)
	}
	gamma = optics.Round(gamma, 2)
	amp := gamma * gamma

	mesh, err := optics.GaussianSurface(g.surface, g.surface, g.mean, g.variance, amp)
	if err != nil {
		return nil, err
	}
	profile, err := optics.Gaussian(g.grid, g.mean, g.variance)
	if err != nil {
		return nil, err
	}
	for i := range profile {
		profile[i] *= amp
	}

	return &RenderState{
		Scene:  g.Name(),
		Title:  overlapTitle(gamma),
		XLabel: "x",
		YLabel: "y",
		ZLabel: "Intensity",
		Series: []Series{
			{Name: "γ² f(x)", X: g.grid.Clone(), Y: profile},
		},
		Panels:      []Panel{{Title: "Intensity", Mesh: mesh}},
		ZMin:        0,
		ZMax:        1,
		Coefficient: gamma,
		Readout: []string{
			fmt.Sprintf("τm: %.1f ns", g.tauM),
			fmt.Sprintf("τ - τm: %.2f ns", tau-g.tauM),
		},
	}, nil
}
