package scene

import (
	"errors"
	"fmt"

	"github.com/san-kum/nlolab/internal/optics"
)

var (
	ErrUnknownScene = errors.New("scene: unknown scene")
	ErrMissingParam = errors.New("scene: missing parameter")
)

// Params maps dial names to physical values.
type Params map[string]float64

func (p Params) get(name string) (float64, error) {
	v, ok := p[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	return v, nil
}

// DialSpec describes a bounded integer control and its mapping to
// physical units.
type DialSpec struct {
	Name     string
	Label    string
	Unit     string
	Min, Max int
	Baseline int
	Scale    float64
}

type Series struct {
	Name string
	X, Y []float64
}

type Panel struct {
	Title string
	Mesh  *optics.Mesh
}

type Segment struct {
	From, To optics.Vec3
	Accent   bool
}

// RenderState is the complete, UI-agnostic description of one frame.
type RenderState struct {
	Scene  string
	Title  string
	XLabel string
	YLabel string
	ZLabel string

	Series    []Series
	Panels    []Panel
	Wireframe []Segment
	// Bounds is the symmetric axis limit for wireframe scenes.
	Bounds float64
	ZMin   float64
	ZMax   float64

	// Coefficient is the rounded overlap coefficient, when the scene has one.
	Coefficient float64
	Readout     []string
}

type Scene interface {
	Name() string
	Description() string
	Dials() []DialSpec
	Render(p Params) (*RenderState, error)
}
