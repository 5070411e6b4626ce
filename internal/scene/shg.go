package scene

import (
	"fmt"

	"github.com/san-kum/nlolab/internal/config"
	"github.com/san-kum/nlolab/internal/optics"
)

// SHGDepths are the z planes sampled by the SHG scene.
var SHGDepths = []float64{0, 0.1, 0.2}

const shgPoints = 100

// SHG samples the second-harmonic intensity and phase over the (x0, y0)
// plane at each of SHGDepths.
type SHG struct {
	crystal optics.Crystal
	params  optics.SHGParams
	xs, ys  optics.Grid
}

func NewSHG(cfg *config.Config) (*SHG, error) {
	xs, err := optics.Linspace(-1, 1, shgPoints)
	if err != nil {
		return nil, err
	}
	return &SHG{crystal: cfg.Crystal, params: cfg.SHG, xs: xs, ys: xs.Clone()}, nil
}

func (s *SHG) Name() string        { return "shg" }
func (s *SHG) Description() string { return "second-harmonic intensity and phase" }
func (s *SHG) Dials() []DialSpec   { return nil }

func (s *SHG) Render(Params) (*RenderState, error) {
	panels := make([]Panel, 0, 2*len(SHGDepths))
	for _, z := range SHGDepths {
		in, ph, err := optics.SHGField(s.crystal, s.params, s.xs, s.ys, z, 0)
		if err != nil {
			return nil, fmt.Errorf("shg at z=%g: %w", z, err)
		}
		panels = append(panels,
			Panel{Title: fmt.Sprintf("Intensity of SHG at z=%g", z), Mesh: in},
			Panel{Title: fmt.Sprintf("Phase of SHG at z=%g", z), Mesh: ph},
		)
	}
	return &RenderState{
		Scene:  s.Name(),
		Title:  "Second harmonic generation",
		XLabel: "x0",
		YLabel: "y0",
		Panels: panels,
	}, nil
}
