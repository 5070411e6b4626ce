package scene

import (
	"fmt"

	"github.com/san-kum/nlolab/internal/config"
	"github.com/san-kum/nlolab/internal/optics"
)

// Phase reports whether the crystal is phase-matched for SHG.
type Phase struct {
	crystal optics.Crystal
}

func NewPhase(cfg *config.Config) *Phase { return &Phase{crystal: cfg.Crystal} }

func (s *Phase) Name() string        { return "phase" }
func (s *Phase) Description() string { return "SHG phase-matching check" }
func (s *Phase) Dials() []DialSpec   { return nil }

func (s *Phase) Render(Params) (*RenderState, error) {
	r, err := optics.PhaseMatch(s.crystal)
	if err != nil {
		return nil, err
	}
	return &RenderState{
		Scene: s.Name(),
		Title: r.String(),
		Readout: []string{
			fmt.Sprintf("no(ω)/no(2ω) - ne(ω)/ne(2ω) = %.5f", r.Mismatch),
			fmt.Sprintf("tolerance: %.2f", optics.PhaseMatchTolerance),
		},
	}, nil
}
