package export

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"

	"github.com/san-kum/nlolab/internal/scene"
	"github.com/san-kum/nlolab/internal/viz"
)

var ErrNoWireframe = errors.New("export: render state has nothing to project")

// projection is the square, in dots, segments are projected into.
const projection = 1000

// SaveWireframe projects the 3D content of st through cam and saves it as
// one line per segment. Accent segments are drawn in a second color.
func SaveWireframe(st *scene.RenderState, cam *viz.Camera, path string) error {
	segs, bounds, ok := viz.Segments(st)
	if !ok {
		return ErrNoWireframe
	}
	p := plot.New()
	p.Title.Text = st.Title
	p.HideAxes()
	p.X.Min, p.X.Max = 0, projection
	p.Y.Min, p.Y.Max = 0, projection

	base := color.Gray{Y: 90}
	accent := plotutil.Color(0)
	for _, s := range segs {
		x0, y0, ok0 := cam.Project(s.From, bounds, projection, projection)
		x1, y1, ok1 := cam.Project(s.To, bounds, projection, projection)
		if !ok0 || !ok1 {
			continue
		}
		// Canvas rows grow downwards, plot y grows upwards.
		l, err := plotter.NewLine(plotter.XYs{
			{X: float64(x0), Y: float64(projection - y0)},
			{X: float64(x1), Y: float64(projection - y1)},
		})
		if err != nil {
			return fmt.Errorf("export: wireframe segment: %w", err)
		}
		l.Color = base
		if s.Accent {
			l.Color = accent
			l.Width *= 2
		}
		p.Add(l)
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	return p.Save(TileWidth, TileWidth, path)
}
