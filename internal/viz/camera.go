package viz

import (
	"math"

	"github.com/san-kum/nlolab/internal/optics"
	"github.com/san-kum/nlolab/internal/scene"
)

// Camera orbits the origin with Z up. Points are normalised by the scene
// bounds before projection, so the unit cube fills most of the canvas.
type Camera struct {
	Yaw, Pitch float64
	Zoom       float64
	Distance   float64
}

func NewCamera() *Camera {
	return &Camera{Yaw: -0.6, Pitch: 0.35, Zoom: 1, Distance: 5}
}

func (c *Camera) Orbit(dyaw, dpitch float64) {
	c.Yaw += dyaw
	c.Pitch = math.Max(-1.5, math.Min(1.5, c.Pitch+dpitch))
}

func (c *Camera) ZoomBy(f float64) {
	c.Zoom = math.Max(0.2, math.Min(8, c.Zoom*f))
}

// Project maps p onto a w x h dot area. ok is false for points behind
// the eye.
func (c *Camera) Project(p optics.Vec3, bounds float64, w, h int) (x, y int, ok bool) {
	if bounds > 0 {
		p = p.Scale(1 / bounds)
	}
	cy, sy := math.Cos(c.Yaw), math.Sin(c.Yaw)
	px, py := p.X*cy-p.Y*sy, p.X*sy+p.Y*cy
	cp, sp := math.Cos(c.Pitch), math.Sin(c.Pitch)
	depth := py*cp - p.Z*sp
	up := py*sp + p.Z*cp

	d := c.Distance + depth
	if d < 0.1 {
		return 0, 0, false
	}
	s := c.Distance / d * c.Zoom * 0.45 * float64(min(w, h))
	return w/2 + int(math.Round(px*s)), h/2 - int(math.Round(up*s)), true
}

// DrawSegments projects segs onto two canvases: regular segments on base
// and accented ones on accent.
func (c *Camera) DrawSegments(base, accent *Canvas, segs []scene.Segment, bounds float64) {
	w, h := base.Size()
	for _, s := range segs {
		x0, y0, ok0 := c.Project(s.From, bounds, w, h)
		x1, y1, ok1 := c.Project(s.To, bounds, w, h)
		if !ok0 || !ok1 {
			continue
		}
		if s.Accent {
			accent.Line(x0, y0, x1, y1)
		} else {
			base.Line(x0, y0, x1, y1)
		}
	}
}

// surfaceLines is the largest number of mesh lines drawn per axis.
const surfaceLines = 20

// SurfaceSegments turns a mesh into a wireframe inside the unit cube. X
// and Y are scaled by their largest magnitude, Z is mapped from
// [zmin, zmax] to [-0.5, 0.5]. When zmax <= zmin the mesh range is used.
func SurfaceSegments(m *optics.Mesh, zmin, zmax float64) []scene.Segment {
	rows, cols := m.Dims()
	if rows == 0 || cols == 0 {
		return nil
	}
	if !(zmax > zmin) {
		zmin, zmax = m.Range()
		if !(zmax > zmin) {
			zmax = zmin + 1
		}
	}
	xs := maxAbs(m.X)
	ys := maxAbs(m.Y)
	pt := func(i, j int) optics.Vec3 {
		return optics.Vec3{
			X: m.X[j] / xs,
			Y: m.Y[i] / ys,
			Z: (m.Z.At(i, j)-zmin)/(zmax-zmin) - 0.5,
		}
	}
	rstep := max(1, rows/surfaceLines)
	cstep := max(1, cols/surfaceLines)

	var segs []scene.Segment
	for i := 0; i < rows; i += rstep {
		for j := cstep; j < cols; j += cstep {
			segs = append(segs, scene.Segment{From: pt(i, j-cstep), To: pt(i, j)})
		}
	}
	for j := 0; j < cols; j += cstep {
		for i := rstep; i < rows; i += rstep {
			segs = append(segs, scene.Segment{From: pt(i-rstep, j), To: pt(i, j)})
		}
	}
	return segs
}

func maxAbs(g optics.Grid) float64 {
	m := 0.0
	for _, v := range g {
		m = math.Max(m, math.Abs(v))
	}
	if m == 0 {
		return 1
	}
	return m
}

// Layers projects the 3D content of st, either its wireframe or the
// surface of its only panel, onto a fresh base and accent canvas. ok is
// false when st has nothing three dimensional to draw.
func Layers(st *scene.RenderState, cam *Camera, cols, rows int) (base, accent *Canvas, ok bool) {
	if _, _, ok := Segments(st); !ok {
		return nil, nil, false
	}
	base, accent = NewCanvas(cols, rows), NewCanvas(cols, rows)
	DrawLayers(st, cam, base, accent)
	return base, accent, true
}

// DrawLayers clears base and accent and draws the 3D content of st into
// them. Both canvases must have the same size. It reports false, leaving
// the canvases untouched, when st has nothing three dimensional.
func DrawLayers(st *scene.RenderState, cam *Camera, base, accent *Canvas) bool {
	segs, bounds, ok := Segments(st)
	if !ok {
		return false
	}
	base.Clear()
	accent.Clear()
	cam.DrawSegments(base, accent, segs, bounds)
	return true
}

// Segments returns the 3D segments of st and the half-width of the cube
// they live in: the wireframe itself, or the normalized surface of a single
// panel.
func Segments(st *scene.RenderState) ([]scene.Segment, float64, bool) {
	switch {
	case len(st.Wireframe) > 0:
		return st.Wireframe, st.Bounds, true
	case len(st.Panels) == 1:
		return SurfaceSegments(st.Panels[0].Mesh, st.ZMin, st.ZMax), 1, true
	}
	return nil, 0, false
}

func layered(st *scene.RenderState, opts FrameOptions, sty styles) string {
	base, accent := opts.Base, opts.Accent
	if !fits(base, opts.Cols, opts.Rows) || !fits(accent, opts.Cols, opts.Rows) {
		base, accent = NewCanvas(opts.Cols, opts.Rows), NewCanvas(opts.Cols, opts.Rows)
	}
	if !DrawLayers(st, opts.Camera, base, accent) {
		return ""
	}
	return Overlay(base, accent, sty.sub, sty.accent)
}

func fits(c *Canvas, cols, rows int) bool {
	return c != nil && c.Cols == cols && c.Rows == rows
}
