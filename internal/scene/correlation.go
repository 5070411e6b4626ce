package scene

import (
	"fmt"

	"github.com/san-kum/nlolab/internal/config"
	"github.com/san-kum/nlolab/internal/optics"
)

// Correlation overlays a Gaussian pulse and its copy delayed by tau.
type Correlation struct {
	mean, variance float64
	grid           optics.Grid
	est            optics.Estimator
	dial           DialSpec
}

func NewCorrelation(cfg *config.Config, est optics.Estimator) (*Correlation, error) {
	grid, err := cfg.SampleGrid()
	if err != nil {
		return nil, err
	}
	return &Correlation{
		mean:     cfg.Pulse.Mean,
		variance: cfg.Pulse.Variance,
		grid:     grid,
		est:      est,
		dial:     tauDial(cfg, "Tau"),
	}, nil
}

func tauDial(cfg *config.Config, label string) DialSpec {
	d := cfg.Dials.Tau
	return DialSpec{Name: "tau", Label: label, Unit: d.Unit, Min: d.Min, Max: d.Max, Scale: d.Scale}
}

func (c *Correlation) Name() string        { return "correlation" }
func (c *Correlation) Description() string { return "pulse overlap vs delay" }
func (c *Correlation) Dials() []DialSpec   { return []DialSpec{c.dial} }

func (c *Correlation) Render(p Params) (*RenderState, error) {
	tau, err := p.get("tau")
	if err != nil {
		return nil, err
	}
	f, err := optics.Gaussian(c.grid, c.mean, c.variance)
	if err != nil {
		return nil, err
	}
	g, err := optics.Gaussian(c.grid.Shift(tau), c.mean, c.variance)
	if err != nil {
		return nil, err
	}
	gamma, err := c.est.Coefficient(c.mean, c.variance, tau)
	if err != nil {
		return nil, fmt.Errorf("correlation at tau=%g: %w", tau, err)
	}
	gamma = optics.Round(gamma, 2)

	return &RenderState{
		Scene:  c.Name(),
		Title:  overlapTitle(gamma),
		XLabel: "time",
		YLabel: "value",
		Series: []Series{
			{Name: "f(x)", X: c.grid.Clone(), Y: f},
			{Name: fmt.Sprintf("g(x - %g)", tau), X: c.grid.Clone(), Y: g},
		},
		ZMin:        0,
		ZMax:        1,
		Coefficient: gamma,
	}, nil
}

func overlapTitle(gamma float64) string {
	return fmt.Sprintf("Overlap: γ_corr = %.2f", gamma)
}
