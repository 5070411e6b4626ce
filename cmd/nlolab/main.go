package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/nlolab/internal/config"
	"github.com/san-kum/nlolab/internal/control"
	"github.com/san-kum/nlolab/internal/scene"
	"github.com/san-kum/nlolab/internal/viz"
)

var (
	configFile string
	preset     string
	logLevel   string
	method     string
	theme      string
	dataDir    string

	outFile string

	sweepMin     float64
	sweepMax     float64
	sweepPoints  int
	sweepWorkers int
	csvFile      string
	saveRun      bool

	maxLag float64

	dialValues map[string]int
	snapPNG    string
	snapSVG    string
)

// app is the state shared by every command once flags are parsed.
type app struct {
	cfg    *config.Config
	reg    *scene.Registry
	logger *log.Logger
}

var env app

// main registers the commands, opens the scene menu when none is given and
// exits with status 1 on any error.
func main() {
	rootCmd := &cobra.Command{
		Use:               "nlolab",
		Short:             "nonlinear optics explorer: pulse correlation, walk-off, SHG",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(env.reg, env.vizOptions())
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "crystal preset (see `nlolab presets`)")
	pf.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	pf.StringVar(&method, "method", "closed", "correlation method: closed or quadrature")
	pf.StringVar(&theme, "theme", "", "TUI color theme: "+strings.Join(viz.ThemeNames(), ", "))
	pf.StringVar(&dataDir, "data", ".nlolab", "directory for stored sweeps")

	for _, name := range []string{"correlation", "gaussian", "ellipsoid"} {
		rootCmd.AddCommand(dialCommand(name))
	}

	intensityCmd := &cobra.Command{
		Use:   "intensity",
		Short: "photodiode intensity against delay",
		Args:  cobra.NoArgs,
		RunE:  runIntensity,
	}
	intensityCmd.Flags().StringVar(&outFile, "out", "", "also save the chart as PNG")

	shgCmd := &cobra.Command{
		Use:   "shg",
		Short: "second-harmonic intensity and phase maps",
		Args:  cobra.NoArgs,
		RunE:  runSHG,
	}
	shgCmd.Flags().StringVar(&outFile, "out", "", "also save the heat maps as PNG")

	phaseCmd := &cobra.Command{
		Use:   "phase",
		Short: "check the SHG phase-matching condition",
		Args:  cobra.NoArgs,
		RunE:  runPhase,
	}

	walkoffCmd := &cobra.Command{
		Use:   "walkoff",
		Short: "print the walk-off delay tau_m",
		Args:  cobra.NoArgs,
		RunE:  runWalkOff,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "tabulate intensity over a delay range",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepMin, "min", -3.5, "first delay (ns)")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 3.5, "last delay (ns)")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 15, "number of delays")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "parallel workers (0: GOMAXPROCS)")
	sweepCmd.Flags().StringVar(&csvFile, "csv", "", "write the table to a CSV file")
	sweepCmd.Flags().BoolVar(&saveRun, "save", false, "store the sweep under --data")

	runsCmd := &cobra.Command{
		Use:   "runs [id]",
		Short: "list stored sweeps, or print one of them",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listRuns,
	}

	autocorrCmd := &cobra.Command{
		Use:   "autocorr",
		Short: "compare the FFT autocorrelation of the sampled pulse with the closed form",
		Args:  cobra.NoArgs,
		RunE:  runAutocorr,
	}
	autocorrCmd.Flags().Float64Var(&maxLag, "max-lag", 3.5, "largest lag compared")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list crystal presets",
		Args:  cobra.NoArgs,
		RunE:  runPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfig,
	}

	rootCmd.AddCommand(intensityCmd, shgCmd, phaseCmd, walkoffCmd, sweepCmd, runsCmd, autocorrCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		if env.logger != nil {
			env.logger.Error(err)
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// setup builds the logger and the effective config: defaults, then the
// config file, then the preset, then explicitly set flags.
func setup(cmd *cobra.Command, args []string) error {
	lvl, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	env.logger = log.NewWithOptions(os.Stderr, log.Options{Level: lvl, Prefix: "nlolab"})

	cfg := config.DefaultConfig()
	if configFile != "" {
		if cfg, err = config.Load(configFile); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		env.logger.Debug("config loaded", "path", configFile)
	}
	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return err
		}
		env.logger.Debug("preset applied", "preset", preset, "crystal", cfg.Crystal.Name)
	}
	if cmd.Flags().Changed("method") {
		cfg.Numerics.Method = method
	}
	if cmd.Flags().Changed("theme") {
		cfg.Display.Theme = theme
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	env.cfg = cfg
	env.reg = scene.NewRegistry(cfg, env.logger)
	return nil
}

func (a app) vizOptions() viz.Options {
	return viz.Options{
		Theme:  a.cfg.Display.Theme,
		Cols:   a.cfg.Display.Width,
		Rows:   a.cfg.Display.Height,
		Logger: a.logger,
	}
}

// dialCommand opens the explorer on one interactive scene.
func dialCommand(name string) *cobra.Command {
	short := map[string]string{
		"correlation": "overlap of a pulse and its delayed copy (tau dial)",
		"gaussian":    "photodiode intensity surface (tau dial, offset by tau_m)",
		"ellipsoid":   "index ellipsoid with a phi/theta direction",
	}[name]
	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := env.reg.Get(name)
			if err != nil {
				return err
			}
			b, err := control.NewBinding(s, env.logger)
			if err != nil {
				return err
			}
			for dial, v := range dialValues {
				if _, err := b.OnParameterChanged(dial, v); err != nil {
					return err
				}
			}
			if snapPNG != "" || snapSVG != "" {
				return snapshot(cmd, b)
			}
			return viz.Run(b, env.vizOptions())
		},
	}
	cmd.Flags().StringToIntVar(&dialValues, "at", nil, "initial control values, e.g. --at tau=17")
	cmd.Flags().StringVar(&snapPNG, "png", "", "save a PNG snapshot instead of opening the TUI")
	cmd.Flags().StringVar(&snapSVG, "svg", "", "save an SVG snapshot of the 3D view instead of opening the TUI")
	return cmd
}
