package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/nlolab/internal/optics"
	"github.com/san-kum/nlolab/internal/scene"
)

// FrameOptions controls how a RenderState is drawn to text.
type FrameOptions struct {
	Theme  Theme
	Camera *Camera
	// Cols and Rows size the main graphic in terminal cells.
	Cols, Rows int
	// Base and Accent are redrawn in place when they match Cols x Rows.
	Base, Accent *Canvas
}

func (o FrameOptions) withDefaults() FrameOptions {
	if o.Theme.Name == "" {
		o.Theme = Themes[0]
	}
	if o.Camera == nil {
		o.Camera = NewCamera()
	}
	if o.Cols <= 0 {
		o.Cols = 60
	}
	if o.Rows <= 0 {
		o.Rows = 20
	}
	return o
}

// Frame draws one render state: the title, then a wireframe, surface,
// heat maps or line chart depending on what the state carries, then the
// readout lines.
func Frame(st *scene.RenderState, opts FrameOptions) string {
	opts = opts.withDefaults()
	sty := newStyles(opts.Theme)

	parts := []string{sty.title.Render(st.Title)}
	switch {
	case len(st.Wireframe) > 0:
		parts = append(parts, layered(st, opts, sty))
	case len(st.Panels) == 1:
		parts = append(parts, sty.muted.Render(st.Panels[0].Title))
		parts = append(parts, layered(st, opts, sty))
	case len(st.Panels) > 1:
		parts = append(parts, heatmapGrid(st.Panels, opts.Cols, opts.Rows, sty))
	}
	if len(st.Series) > 0 {
		rows := opts.Rows
		if len(st.Panels) > 0 || len(st.Wireframe) > 0 {
			rows = max(4, opts.Rows/3)
		}
		parts = append(parts, Chart(st, opts.Theme, opts.Cols, rows))
	}
	for _, line := range st.Readout {
		parts = append(parts, sty.value.Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Chart plots every series of st on a shared x axis with asciigraph.
func Chart(st *scene.RenderState, t Theme, cols, rows int) string {
	if len(st.Series) == 0 {
		return ""
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range st.Series {
		for _, x := range s.X {
			lo, hi = math.Min(lo, x), math.Max(hi, x)
		}
	}
	if !(hi > lo) {
		hi = lo + 1
	}

	data := make([][]float64, len(st.Series))
	names := make([]string, len(st.Series))
	colors := make([]asciigraph.AnsiColor, len(st.Series))
	for i, s := range st.Series {
		data[i] = Resample(s.X, s.Y, lo, hi, cols)
		names[i] = s.Name
		colors[i] = t.seriesColor(i)
	}

	opts := []asciigraph.Option{
		asciigraph.Height(rows),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(names...),
	}
	if st.ZMax > st.ZMin {
		opts = append(opts, asciigraph.LowerBound(st.ZMin), asciigraph.UpperBound(st.ZMax))
	}
	if st.XLabel != "" {
		opts = append(opts, asciigraph.Caption(fmt.Sprintf("%s [%.2f, %.2f]", st.XLabel, lo, hi)))
	}
	return asciigraph.PlotMany(data, opts...)
}

// Resample interpolates (xs, ys) onto n columns spanning [lo, hi].
// Columns outside the sampled range are NaN. A series whose xs are all
// equal, such as a vertical marker, lands in a single column at max(ys).
func Resample(xs, ys []float64, lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	if len(xs) == 0 || n < 2 {
		return out
	}
	col := func(x float64) float64 { return (x - lo) / (hi - lo) * float64(n-1) }

	if len(xs) == 1 || xs[0] == xs[len(xs)-1] {
		c := int(math.Round(col(xs[0])))
		if c >= 0 && c < n {
			top := math.Inf(-1)
			for _, y := range ys {
				top = math.Max(top, y)
			}
			out[c] = top
		}
		return out
	}

	k := 0
	for i := range out {
		x := lo + float64(i)/float64(n-1)*(hi-lo)
		if x < xs[0] || x > xs[len(xs)-1] {
			continue
		}
		for k < len(xs)-2 && xs[k+1] < x {
			k++
		}
		x0, x1 := xs[k], xs[k+1]
		t := 0.0
		if x1 != x0 {
			t = (x - x0) / (x1 - x0)
		}
		out[i] = ys[k] + t*(ys[k+1]-ys[k])
	}
	return out
}

var shades = []rune(" ·░▒▓█")

// Heatmap renders a mesh as shaded characters, cols wide and rows tall,
// with the first mesh row at the bottom.
func Heatmap(m *optics.Mesh, cols, rows int) string {
	mr, mc := m.Dims()
	if mr == 0 || mc == 0 || cols <= 0 || rows <= 0 {
		return ""
	}
	lo, hi := m.Range()
	span := hi - lo

	var b strings.Builder
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		i := (rows - 1 - r) * (mr - 1) / max(rows-1, 1)
		for c := 0; c < cols; c++ {
			j := c * (mc - 1) / max(cols-1, 1)
			level := 0
			if span > 0 {
				level = int((m.Z.At(i, j) - lo) / span * float64(len(shades)-1))
			}
			b.WriteRune(shades[max(0, min(level, len(shades)-1))])
		}
	}
	return b.String()
}

// heatmapGrid lays panels out in pairs, side by side.
func heatmapGrid(panels []scene.Panel, cols, rows int, sty styles) string {
	w := max(8, cols/2-2)
	h := max(4, rows/max(1, (len(panels)+1)/2)-1)
	var lines []string
	for i := 0; i < len(panels); i += 2 {
		var cells []string
		for _, p := range panels[i:min(i+2, len(panels))] {
			lo, hi := p.Mesh.Range()
			head := sty.muted.Render(fmt.Sprintf("%s  [%.3g, %.3g]", p.Title, lo, hi))
			cells = append(cells, lipgloss.NewStyle().PaddingRight(2).Render(
				lipgloss.JoinVertical(lipgloss.Left, head, sty.sub.Render(Heatmap(p.Mesh, w, h)))))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
