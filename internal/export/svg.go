package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/nlolab/internal/viz"
)

// Layer is one canvas drawn in a single colour.
type Layer struct {
	Canvas *viz.Canvas
	Color  string
}

// CanvasSVG converts braille canvases to an SVG image, one circle per lit
// dot and scale user units per dot. Layers are drawn in order and must
// share a size.
func CanvasSVG(layers []Layer, scale float64, background string) string {
	if len(layers) == 0 || layers[0].Canvas == nil {
		return ""
	}
	w, h := layers[0].Canvas.Size()
	width, height := float64(w)*scale, float64(h)*scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	r := scale * 0.4
	for _, l := range layers {
		fmt.Fprintf(&sb, "<g fill=\"%s\">\n", l.Color)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if l.Canvas.Dot(x, y) {
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
						(float64(x)+0.5)*scale, (float64(y)+0.5)*scale, r)
				}
			}
		}
		sb.WriteString("</g>\n")
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}

// SaveSVG writes CanvasSVG output to path.
func SaveSVG(path string, layers []Layer, scale float64, background string) error {
	if len(layers) == 0 {
		return fmt.Errorf("export: no layers to draw")
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(CanvasSVG(layers, scale, background)), 0o644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
