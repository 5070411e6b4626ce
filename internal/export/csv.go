package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/san-kum/nlolab/internal/analysis"
)

// Column names of a sweep table.
const (
	ColTau       = "tau_ns"
	ColGamma     = "gamma"
	ColIntensity = "intensity"
)

// SweepFrame turns sweep points into a dataframe with one row per tau.
// Values are kept as shortest round-trip strings; gota's float columns
// print with %f and would flush small intensities to zero.
func SweepFrame(pts []analysis.Point) dataframe.DataFrame {
	tau := make([]string, len(pts))
	gamma := make([]string, len(pts))
	inten := make([]string, len(pts))
	for i, p := range pts {
		tau[i], gamma[i], inten[i] = formatFloat(p.Tau), formatFloat(p.Gamma), formatFloat(p.Intensity)
	}
	return dataframe.New(
		series.New(tau, series.String, ColTau),
		series.New(gamma, series.String, ColGamma),
		series.New(inten, series.String, ColIntensity),
	)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes pts as CSV with a header row.
func WriteCSV(w io.Writer, pts []analysis.Point) error {
	if err := SweepFrame(pts).WriteCSV(w); err != nil {
		return fmt.Errorf("export: write csv: %w", err)
	}
	return nil
}

// ReadCSV loads a table written by WriteCSV.
func ReadCSV(r io.Reader) ([]analysis.Point, error) {
	df := dataframe.ReadCSV(r)
	if df.Err != nil {
		return nil, fmt.Errorf("export: read csv: %w", df.Err)
	}
	cols := make(map[string][]float64, 3)
	for _, name := range []string{ColTau, ColGamma, ColIntensity} {
		s := df.Col(name)
		if s.Err != nil {
			return nil, fmt.Errorf("export: read csv: %w", s.Err)
		}
		cols[name] = s.Float()
	}
	pts := make([]analysis.Point, df.Nrow())
	for i := range pts {
		pts[i] = analysis.Point{Tau: cols[ColTau][i], Gamma: cols[ColGamma][i], Intensity: cols[ColIntensity][i]}
	}
	return pts, nil
}
