package viz

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/nlolab/internal/config"
	"github.com/san-kum/nlolab/internal/control"
	"github.com/san-kum/nlolab/internal/optics"
	"github.com/san-kum/nlolab/internal/scene"
)

func TestCanvasDots(t *testing.T) {
	c := NewCanvas(2, 1)
	w, h := c.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 4, h)

	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)
	assert.Equal(t, "⠁⢀", c.String())

	c.Clear()
	c.Line(0, 0, 3, 0)
	assert.Equal(t, "⠉⠉", c.String())
}

func TestCanvasDiagonal(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Line(3, 3, 0, 0)
	got := c.String()
	assert.NotEqual(t, "⠀⠀", got)
	for _, r := range got {
		assert.NotEqual(t, brailleBlank, r)
	}
}

func TestOverlayPlain(t *testing.T) {
	base, top := NewCanvas(3, 2), NewCanvas(3, 2)
	base.Line(0, 0, 5, 7)
	plain := lipgloss.NewStyle()
	assert.Equal(t, base.String(), Overlay(base, top, plain, plain))

	top.Set(0, 7)
	out := Overlay(base, top, plain, plain)
	assert.Equal(t, 2, strings.Count(out, "\n")+1)
}

func TestCameraProjectsOrigin(t *testing.T) {
	cam := NewCamera()
	x, y, ok := cam.Project(optics.Vec3{}, 2, 100, 80)
	require.True(t, ok)
	assert.Equal(t, 50, x)
	assert.Equal(t, 40, y)

	_, up, ok := cam.Project(optics.Vec3{Z: 1}, 1, 100, 80)
	require.True(t, ok)
	assert.Less(t, up, 40)
}

func TestCameraZoomClamps(t *testing.T) {
	cam := NewCamera()
	for i := 0; i < 50; i++ {
		cam.ZoomBy(2)
	}
	assert.Equal(t, 8.0, cam.Zoom)
	cam.Orbit(0, 10)
	assert.Equal(t, 1.5, cam.Pitch)
}

func TestResample(t *testing.T) {
	out := Resample([]float64{0, 1, 2}, []float64{0, 10, 20}, 0, 2, 5)
	assert.InDeltaSlice(t, []float64{0, 5, 10, 15, 20}, out, 1e-12)

	out = Resample([]float64{1, 2}, []float64{1, 1}, 0, 2, 3)
	assert.True(t, math.IsNaN(out[0]))
	assert.Equal(t, 1.0, out[1])

	marker := Resample([]float64{0.5, 0.5}, []float64{0, 1}, 0, 1, 3)
	assert.Equal(t, 1.0, marker[1])
	assert.True(t, math.IsNaN(marker[0]))
	assert.True(t, math.IsNaN(marker[2]))
}

func TestHeatmapShape(t *testing.T) {
	m := &optics.Mesh{
		X: optics.Grid{0, 1, 2},
		Y: optics.Grid{0, 1},
		Z: mat.NewDense(2, 3, []float64{0, 0, 0, 1, 1, 1}),
	}
	out := Heatmap(m, 6, 4)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	for _, l := range lines {
		assert.Equal(t, 6, utf8.RuneCountInString(l))
	}
	// Row 0 of the mesh is drawn last.
	assert.Equal(t, "      ", lines[3])
	assert.Equal(t, "██████", lines[0])
}

func TestSurfaceSegmentsStayInCube(t *testing.T) {
	xs, _ := optics.Linspace(-3, 3, 40)
	m, err := optics.GaussianSurface(xs, xs, 0, 1, 1)
	require.NoError(t, err)
	segs := SurfaceSegments(m, 0, 1)
	require.NotEmpty(t, segs)
	for _, s := range segs {
		for _, p := range []optics.Vec3{s.From, s.To} {
			assert.LessOrEqual(t, math.Abs(p.X), 1.0)
			assert.LessOrEqual(t, math.Abs(p.Y), 1.0)
			assert.LessOrEqual(t, math.Abs(p.Z), 0.5+1e-12)
		}
	}
}

func TestThemes(t *testing.T) {
	th, ok := ThemeByName("ocean")
	assert.True(t, ok)
	assert.Equal(t, "ocean", th.Name)

	th, ok = ThemeByName("nope")
	assert.False(t, ok)
	assert.Equal(t, "cyberpunk", th.Name)

	assert.Equal(t, "retro", nextTheme("cyberpunk").Name)
	assert.Equal(t, "cyberpunk", nextTheme("sunset").Name)
	assert.Len(t, ThemeNames(), len(Themes))
}

func newBinding(t *testing.T, name string) *control.Binding {
	t.Helper()
	s, err := scene.NewRegistry(config.DefaultConfig(), nil).Get(name)
	require.NoError(t, err)
	b, err := control.NewBinding(s, nil)
	require.NoError(t, err)
	return b
}

func press(m tea.Model, keys ...tea.KeyMsg) tea.Model {
	for _, k := range keys {
		m, _ = m.Update(k)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestFrameEveryScene(t *testing.T) {
	reg := scene.NewRegistry(config.DefaultConfig(), nil)
	for _, name := range reg.List() {
		b := newBinding(t, name)
		out := Frame(b.State(), FrameOptions{Cols: 40, Rows: 12})
		assert.Contains(t, out, b.State().Title, name)
	}
}

func TestExplorerDrivesBinding(t *testing.T) {
	b := newBinding(t, "correlation")
	e := NewExplorer(b, Options{Theme: "retro"})
	assert.Equal(t, "retro", e.Theme().Name)

	for i := 0; i < 17; i++ {
		press(e, tea.KeyMsg{Type: tea.KeyRight})
	}
	assert.Equal(t, 1.7, b.Params()["tau"])
	assert.Equal(t, 0.49, b.State().Coefficient)
	assert.Contains(t, e.View(), "Tau: 1.70 ns")

	press(e, runes("H"))
	assert.Equal(t, 0.7, b.Params()["tau"])

	press(e, runes("r"))
	assert.Equal(t, 0.0, b.Params()["tau"])
	assert.Contains(t, e.View(), "Overlap: γ_corr = 1.00")

	press(e, runes("t"))
	assert.Equal(t, "minimal", e.Theme().Name)
	assert.NoError(t, e.Err())
}

func TestExplorerCyclesDials(t *testing.T) {
	b := newBinding(t, "ellipsoid")
	e := NewExplorer(b, Options{})
	press(e, tea.KeyMsg{Type: tea.KeyTab}, runes("L"))
	assert.Equal(t, 1, e.Focus())
	assert.Equal(t, 10.0, b.Params()["theta"])
	assert.Equal(t, 0.0, b.Params()["phi"])

	press(e, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, e.Focus())
	press(e, runes("?"))
	assert.Contains(t, e.View(), "KEYBOARD SHORTCUTS")
}

func TestExplorerResetKeys(t *testing.T) {
	b := newBinding(t, "ellipsoid")
	e := NewExplorer(b, Options{Theme: "ocean"})
	press(e, runes("L"), tea.KeyMsg{Type: tea.KeyTab}, runes("L"))
	require.Equal(t, scene.Params{"phi": 10, "theta": 10}, b.Params())

	press(e, runes("r"))
	assert.Equal(t, scene.Params{"phi": 10, "theta": 0}, b.Params())
	press(e, runes("R"))
	assert.Equal(t, scene.Params{"phi": 0, "theta": 0}, b.Params())

	press(e, runes("T"))
	assert.Equal(t, "ocean", e.Theme().Name)
	press(e, runes("t"))
	assert.NotEqual(t, "ocean", e.Theme().Name)
}

func TestExplorerRedrawsItsCanvases(t *testing.T) {
	b := newBinding(t, "ellipsoid")
	e := NewExplorer(b, Options{Cols: 30, Rows: 12})
	base, accent := e.base, e.accent
	require.NotNil(t, base)

	e.View()
	press(e, runes("x"), runes("L"))
	e.View()
	assert.Same(t, base, e.base)
	assert.Same(t, accent, e.accent)

	fresh, freshAccent, ok := Layers(b.State(), e.camera, 30, 12)
	require.True(t, ok)
	assert.Equal(t, fresh.String(), e.base.String())
	assert.Equal(t, freshAccent.String(), e.accent.String())

	e.Update(tea.WindowSizeMsg{Width: 80, Height: 22})
	assert.Same(t, base, e.base)
	e.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.NotSame(t, base, e.base)
	assert.Equal(t, 50, e.base.Cols)
	assert.Equal(t, 30, e.base.Rows)
}

func TestDrawLayersClearsFirst(t *testing.T) {
	st := &scene.RenderState{}
	base, accent := NewCanvas(4, 2), NewCanvas(4, 2)
	base.Set(0, 0)
	assert.False(t, DrawLayers(st, NewCamera(), base, accent))
	assert.True(t, base.Dot(0, 0))

	_, _, ok := Layers(st, NewCamera(), 4, 2)
	assert.False(t, ok)

	st.Wireframe = []scene.Segment{{From: optics.Vec3{}, To: optics.Vec3{}}}
	st.Bounds = 1
	require.True(t, DrawLayers(st, NewCamera(), base, accent))
	assert.False(t, base.Dot(0, 0))
}

func TestMenuOpensAndReturns(t *testing.T) {
	m := NewMenu(scene.NewRegistry(config.DefaultConfig(), nil), Options{Cols: 40, Rows: 12})
	assert.Equal(t, "correlation", m.Selected())
	assert.Contains(t, m.View(), "NLOLAB")

	press(m, runes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.Explorer())
	assert.Equal(t, "ellipsoid", m.Explorer().binding.Scene().Name())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	m.Update(cmd())
	assert.Nil(t, m.Explorer())
}
