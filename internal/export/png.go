package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/nlolab/internal/optics"
	"github.com/san-kum/nlolab/internal/scene"
)

var (
	ErrNoSeries = errors.New("export: render state has no series")
	ErrNoPanels = errors.New("export: render state has no panels")
)

// Size of one plot tile.
var (
	TileWidth  = 5 * vg.Inch
	TileHeight = 4 * vg.Inch
)

// SaveLines plots every series of st on one set of axes and saves it. The
// format follows the file extension.
func SaveLines(st *scene.RenderState, path string) error {
	if len(st.Series) == 0 {
		return ErrNoSeries
	}
	p := plot.New()
	p.Title.Text = st.Title
	p.X.Label.Text = st.XLabel
	p.Y.Label.Text = st.YLabel
	if st.ZMax > st.ZMin {
		p.Y.Min, p.Y.Max = st.ZMin, st.ZMax
	}

	args := make([]interface{}, 0, 2*len(st.Series))
	for _, s := range st.Series {
		if len(s.X) != len(s.Y) {
			return fmt.Errorf("export: series %q has %d x and %d y values", s.Name, len(s.X), len(s.Y))
		}
		xys := make(plotter.XYs, len(s.X))
		for i := range s.X {
			xys[i].X, xys[i].Y = s.X[i], s.Y[i]
		}
		args = append(args, s.Name, xys)
	}
	if err := plotutil.AddLines(p, args...); err != nil {
		return fmt.Errorf("export: add lines: %w", err)
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	return p.Save(TileWidth, TileHeight, path)
}

// meshGrid adapts an optics.Mesh to plotter.GridXYZ.
type meshGrid struct{ m *optics.Mesh }

func (g meshGrid) Dims() (c, r int) {
	r, c = g.m.Dims()
	return c, r
}
func (g meshGrid) Z(c, r int) float64 { return g.m.Z.At(r, c) }
func (g meshGrid) X(c int) float64    { return g.m.X[c] }
func (g meshGrid) Y(r int) float64    { return g.m.Y[r] }

// SaveHeatMaps draws each panel of st as a heat map, laid out cols tiles
// wide, and writes the image as PNG.
func SaveHeatMaps(st *scene.RenderState, path string, cols int) error {
	if len(st.Panels) == 0 {
		return ErrNoPanels
	}
	cols = max(1, min(cols, len(st.Panels)))
	rows := (len(st.Panels) + cols - 1) / cols

	pal := palette.Heat(64, 1)
	plots := make([][]*plot.Plot, rows)
	for r := range plots {
		plots[r] = make([]*plot.Plot, cols)
	}
	for i, panel := range st.Panels {
		p := plot.New()
		p.Title.Text = panel.Title
		p.X.Label.Text = st.XLabel
		p.Y.Label.Text = st.YLabel
		hm := plotter.NewHeatMap(meshGrid{panel.Mesh}, pal)
		// Constant panels would otherwise divide by zero in the palette lookup.
		if hm.Max == hm.Min {
			hm.Max = hm.Min + 1
		}
		p.Add(hm)
		plots[i/cols][i%cols] = p
	}

	img := vgimg.New(vg.Length(cols)*TileWidth, vg.Length(rows)*TileHeight)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: rows, Cols: cols,
		PadX: vg.Millimeter, PadY: vg.Millimeter,
		PadTop: vg.Points(2), PadBottom: vg.Points(2),
		PadLeft: vg.Points(2), PadRight: vg.Points(2),
	}
	canvases := plot.Align(plots, tiles, dc)
	for r := range plots {
		for c, p := range plots[r] {
			if p != nil {
				p.Draw(canvases[r][c])
			}
		}
	}

	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("export: write png: %w", err)
	}
	return f.Close()
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
