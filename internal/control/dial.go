package control

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/nlolab/internal/scene"
)

var (
	ErrUnknownDial = errors.New("control: unknown dial")
	ErrBadRange    = errors.New("control: invalid dial range")
)

// Dial is a bounded integer control with a fixed linear scale.
type Dial struct {
	Name     string
	Label    string
	Unit     string
	Min, Max int
	Baseline int
	Scale    float64
	value    int
}

func NewDial(spec scene.DialSpec) (*Dial, error) {
	if spec.Max <= spec.Min {
		return nil, fmt.Errorf("%w: %s [%d, %d]", ErrBadRange, spec.Name, spec.Min, spec.Max)
	}
	if spec.Scale == 0 || math.IsNaN(spec.Scale) || math.IsInf(spec.Scale, 0) {
		return nil, fmt.Errorf("%w: %s scale %g", ErrBadRange, spec.Name, spec.Scale)
	}
	d := &Dial{
		Name:     spec.Name,
		Label:    spec.Label,
		Unit:     spec.Unit,
		Min:      spec.Min,
		Max:      spec.Max,
		Baseline: spec.Baseline,
		Scale:    spec.Scale,
	}
	d.Baseline = d.clamp(spec.Baseline)
	d.value = d.Baseline
	return d, nil
}

func (d *Dial) clamp(v int) int {
	if v < d.Min {
		return d.Min
	}
	if v > d.Max {
		return d.Max
	}
	return v
}

// Set clamps v into range and returns the stored value.
func (d *Dial) Set(v int) int {
	d.value = d.clamp(v)
	return d.value
}

func (d *Dial) Value() int { return d.value }

func (d *Dial) Reset() { d.value = d.Baseline }

// Physical returns value*Scale. Scales that are reciprocals of integers
// (0.1, 0.25) divide instead so decimal steps come out exact.
func (d *Dial) Physical() float64 {
	return Scaled(d.value, d.Scale)
}

func Scaled(v int, scale float64) float64 {
	if math.Abs(scale) < 1 {
		inv := 1 / scale
		if inv == math.Round(inv) {
			return float64(v) / inv
		}
	}
	return float64(v) * scale
}

// Fraction is the dial position in [0, 1].
func (d *Dial) Fraction() float64 {
	return float64(d.value-d.Min) / float64(d.Max-d.Min)
}

// Text is the label shown next to the dial.
func (d *Dial) Text() string {
	s := fmt.Sprintf("%s: %.2f", d.Label, d.Physical())
	switch d.Unit {
	case "":
	case "°":
		s += d.Unit
	default:
		s += " " + d.Unit
	}
	return s
}
