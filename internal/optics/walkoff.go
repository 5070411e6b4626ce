package optics

import "math"

// WalkOff returns the delay accumulated between the ordinary and
// extraordinary components over a crystal of length (m), in nanoseconds
// rounded to one decimal:
//
//	no*ne*length / (2*c*|no-ne|) * 1e9
func WalkOff(no, ne, length, c float64) (float64, error) {
	for _, p := range []struct {
		name string
		v    float64
	}{{"no", no}, {"ne", ne}, {"length", length}, {"c", c}} {
		if math.IsNaN(p.v) || math.IsInf(p.v, 0) {
			return 0, domainErr("walk-off", p.name, p.v, "must be finite")
		}
	}
	if no == ne {
		return 0, domainErr("walk-off", "ne", ne, "equal to no, crystal is not birefringent")
	}
	if length <= 0 {
		return 0, domainErr("walk-off", "length", length, "must be positive")
	}
	if c <= 0 {
		return 0, domainErr("walk-off", "c", c, "must be positive")
	}
	sec := no * ne * length / (2 * c * math.Abs(no-ne))
	return Round(sec*1e9, 1), nil
}

// Round rounds v half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
