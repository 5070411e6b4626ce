package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const brailleBlank rune = 0x2800

// brailleBits[row][col] is the dot bit for a position inside a 2x4 cell.
var brailleBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells addressed in dots. A canvas of
// Cols x Rows cells has 2*Cols x 4*Rows dots, origin top left.
type Canvas struct {
	Cols, Rows int
	cells      []rune
}

func NewCanvas(cols, rows int) *Canvas {
	cols, rows = max(cols, 1), max(rows, 1)
	c := &Canvas{Cols: cols, Rows: rows, cells: make([]rune, cols*rows)}
	c.Clear()
	return c
}

// Size returns the drawable area in dots.
func (c *Canvas) Size() (w, h int) { return 2 * c.Cols, 4 * c.Rows }

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = brailleBlank
	}
}

// Set lights one dot. Out of range dots are ignored.
func (c *Canvas) Set(x, y int) {
	w, h := c.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	c.cells[(y/4)*c.Cols+x/2] |= brailleBits[y%4][x%2]
}

// Line draws a Bresenham line between two dots, inclusive.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x1 < x0 {
		sx = -1
	}
	if y1 < y0 {
		sy = -1
	}
	e := dx + dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Dot reports whether the dot at (x, y) is lit.
func (c *Canvas) Dot(x, y int) bool {
	w, h := c.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return false
	}
	return c.cells[(y/4)*c.Cols+x/2]&brailleBits[y%4][x%2] != 0
}

func (c *Canvas) cell(col, row int) rune { return c.cells[row*c.Cols+col] }

func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < c.Cols; col++ {
			b.WriteRune(c.cell(col, row))
		}
	}
	return b.String()
}

// Overlay merges top onto base. Cells touched by top are drawn with
// topStyle, everything else with baseStyle. Both canvases must share a
// size.
func Overlay(base, top *Canvas, baseStyle, topStyle lipgloss.Style) string {
	var b strings.Builder
	for row := 0; row < base.Rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		var run []rune
		accent := false
		flush := func() {
			if len(run) == 0 {
				return
			}
			if accent {
				b.WriteString(topStyle.Render(string(run)))
			} else {
				b.WriteString(baseStyle.Render(string(run)))
			}
			run = run[:0]
		}
		for col := 0; col < base.Cols; col++ {
			t := top.cell(col, row)
			isTop := t != brailleBlank
			if isTop != accent {
				flush()
				accent = isTop
			}
			run = append(run, base.cell(col, row)|t)
		}
		flush()
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
