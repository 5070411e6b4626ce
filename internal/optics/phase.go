package optics

import "math"

// PhaseMatchTolerance is the mismatch below which a crystal is treated as
// phase-matched for SHG.
const PhaseMatchTolerance = 0.01

type PhaseMatchResult struct {
	Mismatch float64
	Matched  bool
}

// PhaseMatch evaluates no_w/no_2w - ne_w/ne_2w against PhaseMatchTolerance.
func PhaseMatch(c Crystal) (PhaseMatchResult, error) {
	if c.No2W == 0 {
		return PhaseMatchResult{}, domainErr("phase match", "no_2w", c.No2W, "division by zero")
	}
	if c.Ne2W == 0 {
		return PhaseMatchResult{}, domainErr("phase match", "ne_2w", c.Ne2W, "division by zero")
	}
	m := c.NoW/c.No2W - c.NeW/c.Ne2W
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return PhaseMatchResult{}, domainErr("phase match", "mismatch", m, "not finite")
	}
	return PhaseMatchResult{Mismatch: m, Matched: math.Abs(m) < PhaseMatchTolerance}, nil
}

func (r PhaseMatchResult) String() string {
	if r.Matched {
		return "The crystal is phase-matched for Second Harmonic Generation (SHG)."
	}
	return "The crystal may not be efficiently phase-matched for SHG."
}
