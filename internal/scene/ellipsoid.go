package scene

import (
	"fmt"

	"github.com/san-kum/nlolab/internal/config"
	"github.com/san-kum/nlolab/internal/optics"
)

const (
	ellipsoidRings    = 24
	ellipsoidSegments = 12
	ellipsoidBounds   = 2.0
)

// Ellipsoid draws the second-harmonic indicatrix and the direction
// selected by the phi and theta dials.
type Ellipsoid struct {
	shape optics.Ellipsoid
	rings [][]optics.Vec3
	phi   DialSpec
	theta DialSpec
}

func NewEllipsoid(cfg *config.Config) (*Ellipsoid, error) {
	shape := optics.Indicatrix(cfg.Crystal)
	rings, err := shape.Mesh(ellipsoidRings+1, ellipsoidSegments+1)
	if err != nil {
		return nil, err
	}
	d := cfg.Dials
	return &Ellipsoid{
		shape: shape,
		rings: rings,
		phi:   DialSpec{Name: "phi", Label: "Phi", Unit: d.Phi.Unit, Min: d.Phi.Min, Max: d.Phi.Max, Scale: d.Phi.Scale},
		theta: DialSpec{Name: "theta", Label: "Theta", Unit: d.Theta.Unit, Min: d.Theta.Min, Max: d.Theta.Max, Scale: d.Theta.Scale},
	}, nil
}

func (e *Ellipsoid) Name() string        { return "ellipsoid" }
func (e *Ellipsoid) Description() string { return "index ellipsoid" }
func (e *Ellipsoid) Dials() []DialSpec   { return []DialSpec{e.phi, e.theta} }

func (e *Ellipsoid) Render(p Params) (*RenderState, error) {
	phiDeg, err := p.get("phi")
	if err != nil {
		return nil, err
	}
	thetaDeg, err := p.get("theta")
	if err != nil {
		return nil, err
	}
	end := e.shape.Point(optics.Deg2Rad(phiDeg), optics.Deg2Rad(thetaDeg))

	segs := make([]Segment, 0, 2*len(e.rings)*len(e.rings[0])+1)
	for i, ring := range e.rings {
		for j := 1; j < len(ring); j++ {
			segs = append(segs, Segment{From: ring[j-1], To: ring[j]})
		}
		if i > 0 {
			prev := e.rings[i-1]
			for j := range ring {
				segs = append(segs, Segment{From: prev[j], To: ring[j]})
			}
		}
	}
	segs = append(segs, Segment{From: optics.Vec3{}, To: end, Accent: true})

	return &RenderState{
		Scene:     e.Name(),
		Title:     fmt.Sprintf("Coordinates: (X:%.2f, Y:%.2f, Z:%.2f)", end.X, end.Y, end.Z),
		XLabel:    "X",
		YLabel:    "Y",
		ZLabel:    "Z",
		Wireframe: segs,
		Bounds:    ellipsoidBounds,
		ZMin:      -ellipsoidBounds,
		ZMax:      ellipsoidBounds,
		Readout: []string{
			fmt.Sprintf("a=b=ne(2ω): %.4f", e.shape.A),
			fmt.Sprintf("c=no(2ω): %.4f", e.shape.C),
		},
	}, nil
}
