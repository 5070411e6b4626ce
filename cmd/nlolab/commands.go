package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/nlolab/internal/analysis"
	"github.com/san-kum/nlolab/internal/config"
	"github.com/san-kum/nlolab/internal/control"
	"github.com/san-kum/nlolab/internal/export"
	"github.com/san-kum/nlolab/internal/optics"
	"github.com/san-kum/nlolab/internal/scene"
	"github.com/san-kum/nlolab/internal/storage"
	"github.com/san-kum/nlolab/internal/viz"
)

// renderStatic renders a scene without dials and prints it.
func renderStatic(cmd *cobra.Command, name string) (*scene.RenderState, error) {
	s, err := env.reg.Get(name)
	if err != nil {
		return nil, err
	}
	st, err := s.Render(nil)
	if err != nil {
		return nil, err
	}
	t, _ := viz.ThemeByName(env.cfg.Display.Theme)
	fmt.Fprintln(cmd.OutOrStdout(), viz.Frame(st, viz.FrameOptions{
		Theme: t,
		Cols:  env.cfg.Display.Width,
		Rows:  env.cfg.Display.Height,
	}))
	return st, nil
}

func runIntensity(cmd *cobra.Command, args []string) error {
	st, err := renderStatic(cmd, "intensity")
	if err != nil {
		return err
	}
	if outFile == "" {
		return nil
	}
	if err := export.SaveLines(st, outFile); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", outFile)
	return nil
}

func runSHG(cmd *cobra.Command, args []string) error {
	st, err := renderStatic(cmd, "shg")
	if err != nil {
		return err
	}
	if outFile == "" {
		return nil
	}
	if err := export.SaveHeatMaps(st, outFile, 2); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", outFile)
	return nil
}

func runPhase(cmd *cobra.Command, args []string) error {
	r, err := optics.PhaseMatch(env.cfg.Crystal)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "mismatch: %.6f\n%s\n", r.Mismatch, r)
	return nil
}

func runWalkOff(cmd *cobra.Command, args []string) error {
	tauM, err := env.cfg.Crystal.WalkOffNs()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "tau_m = %.1f ns\n", tauM)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	est, err := env.cfg.Estimator()
	if err != nil {
		return err
	}
	tauM, err := env.cfg.Crystal.WalkOffNs()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sc := analysis.SweepConfig{
		Min:      sweepMin,
		Max:      sweepMax,
		Points:   sweepPoints,
		Mean:     env.cfg.Pulse.Mean,
		Variance: env.cfg.Pulse.Variance,
		TauM:     tauM,
		Workers:  sweepWorkers,
	}
	pts, err := analysis.Sweep(ctx, est, sc, env.logger)
	if err != nil {
		return err
	}

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(env.cfg.Crystal.Name, est.Name(), sc, pts)
		if err != nil {
			return err
		}
		env.logger.Info("sweep stored", "id", id, "dir", dataDir)
	}

	if csvFile != "" {
		f, err := os.Create(csvFile)
		if err != nil {
			return err
		}
		if err := export.WriteCSV(f, pts); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		env.logger.Info("sweep written", "path", csvFile, "points", len(pts))
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "TAU (ns)\tGAMMA\tINTENSITY\n")
	for _, p := range pts {
		fmt.Fprintf(w, "%.3f\t%.4f\t%.4f\n", p.Tau, p.Gamma, p.Intensity)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if peak, ok := analysis.Peak(pts); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "\npeak at tau=%.3f ns (tau_m=%.1f ns, method=%s)\n", peak.Tau, tauM, est.Name())
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return showRun(cmd, args[0])
	}
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCRYSTAL\tTIME\tMETHOD\tRANGE (ns)\tPOINTS\tPEAK (ns)")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f..%.2f\t%d\t%.3f\n",
			run.ID,
			run.Crystal,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Method,
			run.Min, run.Max,
			run.Points,
			run.PeakTau,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, id string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(id)
	if err != nil {
		return err
	}
	pts, err := st.LoadSweep(id)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  crystal=%s  method=%s  tau_m=%.1f ns\n\n", meta.ID, meta.Crystal, meta.Method, meta.TauM)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "TAU (ns)\tGAMMA\tINTENSITY\n")
	for _, p := range pts {
		fmt.Fprintf(w, "%.3f\t%.4f\t%.4g\n", p.Tau, p.Gamma, p.Intensity)
	}
	return w.Flush()
}

func runAutocorr(cmd *cobra.Command, args []string) error {
	grid, err := env.cfg.SampleGrid()
	if err != nil {
		return err
	}
	f, err := optics.Gaussian(grid, env.cfg.Pulse.Mean, env.cfg.Pulse.Variance)
	if err != nil {
		return err
	}
	ac, err := analysis.SampledAutocorrelation(f, grid[1]-grid[0])
	if err != nil {
		return err
	}
	est, err := env.cfg.Estimator()
	if err != nil {
		return err
	}
	dev, err := analysis.Deviation(ac, est, env.cfg.Pulse.Mean, env.cfg.Pulse.Variance, maxLag)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "LAG\tSAMPLED\t%s\n", est.Name())
	for _, lag := range []float64{0, 0.5, 1, 2, 3.5} {
		if lag > maxLag {
			continue
		}
		want, err := est.Coefficient(env.cfg.Pulse.Mean, env.cfg.Pulse.Variance, lag)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%.2f\t%.6f\t%.6f\n", lag, ac.At(lag), want)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	var curve []float64
	for i, lag := range ac.Lags {
		if lag >= -maxLag && lag <= maxLag {
			curve = append(curve, ac.Values[i])
		}
	}
	if len(curve) > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(curve,
			asciigraph.Height(8),
			asciigraph.Width(env.cfg.Display.Width),
			asciigraph.Caption(fmt.Sprintf("sampled autocorrelation, |lag| <= %g", maxLag))))
	}
	fmt.Fprintf(out, "\nmax deviation: %.3g\n", dev)
	return nil
}

func runPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "PRESET\tNAME\tno(w)\tne(w)\tL (m)\ttau_m (ns)\n")
	for _, name := range config.ListPresets() {
		c := config.GetPreset(name)
		tauM, err := c.WalkOffNs()
		if err != nil {
			env.logger.Warn("preset walk-off", "preset", name, "err", err)
			fmt.Fprintf(w, "%s\t%s\t%.4f\t%.4f\t%g\t-\n", name, c.Name, c.NoW, c.NeW, c.Length)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%.4f\t%.4f\t%g\t%.1f\n", name, c.Name, c.NoW, c.NeW, c.Length, tauM)
	}
	return w.Flush()
}

func runConfig(cmd *cobra.Command, args []string) error {
	path := "nlolab.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if err := config.Save(path, env.cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

// snapshot saves the current state of a binding to the files requested by
// --png and --svg.
func snapshot(cmd *cobra.Command, b *control.Binding) error {
	st := b.State()
	out := cmd.OutOrStdout()
	if snapPNG != "" {
		var err error
		switch {
		case len(st.Wireframe) > 0:
			err = export.SaveWireframe(st, viz.NewCamera(), snapPNG)
		case len(st.Panels) > 0:
			err = export.SaveHeatMaps(st, snapPNG, 2)
		default:
			err = export.SaveLines(st, snapPNG)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "saved %s\n", snapPNG)
	}
	if snapSVG != "" {
		t, _ := viz.ThemeByName(env.cfg.Display.Theme)
		base, accent, ok := viz.Layers(st, viz.NewCamera(), env.cfg.Display.Width, env.cfg.Display.Height)
		if !ok {
			return fmt.Errorf("scene %s has no 3D view for --svg", b.Scene().Name())
		}
		layers := []export.Layer{
			{Canvas: base, Color: string(t.Text)},
			{Canvas: accent, Color: string(t.Accent)},
		}
		if err := export.SaveSVG(snapSVG, layers, 4, "#0a0a0a"); err != nil {
			return err
		}
		fmt.Fprintf(out, "saved %s\n", snapSVG)
	}
	fmt.Fprintln(out, b.State().Title)
	return nil
}
