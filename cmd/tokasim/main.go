package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/plasmalab/tokasim/internal/analysis"
	"github.com/plasmalab/tokasim/internal/automation"
	"github.com/plasmalab/tokasim/internal/config"
	"github.com/plasmalab/tokasim/internal/control"
	"github.com/plasmalab/tokasim/internal/device"
	"github.com/plasmalab/tokasim/internal/engine"
	"github.com/plasmalab/tokasim/internal/export"
	"github.com/plasmalab/tokasim/internal/metrics"
	"github.com/plasmalab/tokasim/internal/optim"
	"github.com/plasmalab/tokasim/internal/plasma"
	"github.com/plasmalab/tokasim/internal/safety"
	"github.com/plasmalab/tokasim/internal/shot"
	"github.com/plasmalab/tokasim/internal/storage"
	"github.com/plasmalab/tokasim/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	seed       int64
	configFile string

	targetCurrent float64
	heatingPower  float64
	kp            float64
	ki            float64
	kd            float64

	channel string
	outPath string
	format  string

	scanRuns int
	scanTime float64
	scanSeed int64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tokasim",
		Short: "tokamak shot simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".tokasim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a shot",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShot,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "shot duration (s)")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().Float64Var(&targetCurrent, "target", 2.0, "programmed flat-top current (MA)")
	runCmd.Flags().Float64Var(&heatingPower, "power", 5.0, "auxiliary heating power (MW)")
	runCmd.Flags().Float64Var(&kp, "kp", config.DefaultKp, "vertical feedback kp")
	runCmd.Flags().Float64Var(&ki, "ki", config.DefaultKi, "vertical feedback ki")
	runCmd.Flags().Float64Var(&kd, "kd", config.DefaultKd, "vertical feedback kd")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run a shot with the live dashboard",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	liveCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	liveCmd.Flags().Float64Var(&kp, "kp", config.DefaultKp, "vertical feedback kp")
	liveCmd.Flags().Float64Var(&ki, "ki", config.DefaultKi, "vertical feedback ki")
	liveCmd.Flags().Float64Var(&kd, "kd", config.DefaultKd, "vertical feedback kd")
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored shots",
		RunE:  listShots,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [shot_id]",
		Short: "plot stored shot channels",
		Args:  cobra.ExactArgs(1),
		RunE:  plotShot,
	}
	plotCmd.Flags().StringVar(&channel, "channel", "", "plot a single channel by name")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [shot_id]",
		Short: "frequency analysis of a stored channel",
		Args:  cobra.ExactArgs(1),
		RunE:  spectrumShot,
	}
	spectrumCmd.Flags().StringVar(&channel, "channel", "", "channel to analyze (default mhd_activity)")
	spectrumCmd.Flags().StringVar(&outPath, "out", "", "also render the spectrum to a file (.png or .svg)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [shot_id]",
		Short: "export shot data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [shot_id]",
		Short: "export shot data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	renderCmd := &cobra.Command{
		Use:   "render [shot_id]",
		Short: "render shot channels to image files",
		Args:  cobra.ExactArgs(1),
		RunE:  renderShot,
	}
	renderCmd.Flags().StringVar(&format, "format", "png", "image format (png or svg)")
	renderCmd.Flags().StringVar(&outPath, "out", "", "output directory (default <data>/<shot_id>/plots)")
	renderCmd.Flags().StringVar(&channel, "channel", "", "render a single channel by name")

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets, or show one as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showPresets,
	}

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "map disruption fraction over current and heating power",
		RunE:  scanShots,
	}
	scanCmd.Flags().IntVar(&scanRuns, "runs", 8, "shots per operating point")
	scanCmd.Flags().Float64Var(&scanTime, "time", 4.0, "shot duration (s)")
	scanCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	scanCmd.Flags().Int64Var(&scanSeed, "seed", 1, "base seed")

	tuneCmd := &cobra.Command{
		Use:   "tune [preset]",
		Short: "grid search the vertical feedback gains",
		Args:  cobra.MaximumNArgs(1),
		RunE:  tuneGains,
	}
	tuneCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	tuneCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	campaignCmd := &cobra.Command{
		Use:   "campaign [file]",
		Short: "run a scripted sequence of shots",
		Args:  cobra.ExactArgs(1),
		RunE:  runCampaign,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the advancement engine",
		RunE:  benchEngine,
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, spectrumCmd, exportCSVCmd, exportJSONCmd, renderCmd, presetsCmd, scanCmd, tuneCmd, campaignCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadShotConfig resolves the effective configuration: preset, then config
// file, then explicit CLI flags, later sources winning.
func loadShotConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	name := "flattop"
	if len(args) > 0 {
		name = args[0]
	}

	preset := config.GetPreset(name)
	if preset == nil {
		return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}
	cfg := *preset

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
		name = strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("target") {
		cfg.Schedule.TargetCurrent = targetCurrent
	}
	if cmd.Flags().Changed("power") {
		if len(cfg.Actuators.Heating) == 0 {
			cfg.Actuators.Heating = []config.HeatingConfig{{Power: heatingPower, Frequency: 148.4e9}}
		} else {
			cfg.Actuators.Heating[0].Power = heatingPower
		}
	}
	if cmd.Flags().Changed("kp") {
		cfg.Vertical.Kp = kp
	}
	if cmd.Flags().Changed("ki") {
		cfg.Vertical.Ki = ki
	}
	if cmd.Flags().Changed("kd") {
		cfg.Vertical.Kd = kd
	}

	return &cfg, name, nil
}

func verticalPID(cfg *config.Config) *control.VerticalPID {
	if !cfg.Vertical.Enabled {
		return nil
	}
	return control.NewVerticalPID(cfg.Vertical.Kp, cfg.Vertical.Ki, cfg.Vertical.Kd)
}

func buildController(cfg *config.Config, dev device.Params, pid *control.VerticalPID) shot.Controller {
	var parts []shot.Controller
	if cfg.Schedule.Enabled {
		sched := control.NewSchedule(dev, cfg.Schedule.TargetCurrent,
			cfg.Schedule.RampUpTime, cfg.Schedule.FlatTopTime, cfg.Schedule.RampDownTime)
		sched.HeatingStart = cfg.Schedule.HeatingStart
		sched.HoldDensity = cfg.Schedule.HoldDensity
		parts = append(parts, sched)
	}
	if pid != nil {
		parts = append(parts, pid)
	}

	switch len(parts) {
	case 0:
		return control.Static{}
	case 1:
		return parts[0]
	default:
		return control.NewComposite(parts...)
	}
}

// buildShot assembles one shot from the effective config. The vertical
// controller is passed in so the live dashboard can share the instance
// across resets for gain tuning.
func buildShot(cfg *config.Config, pid *control.VerticalPID) (*engine.Engine, *plasma.State, *plasma.Actuators, shot.Controller, *safety.Monitor) {
	dev := cfg.ToDevice()
	eng := engine.New(dev, cfg.Seed)
	s := cfg.BuildState()
	act := cfg.BuildActuators()
	ctrl := buildController(cfg, dev, pid)

	var mon *safety.Monitor
	if cfg.Safety.Enabled {
		mon = safety.NewMonitor(dev)
		if cfg.Safety.MHDThreshold > 0 {
			mon.Threshold = cfg.Safety.MHDThreshold
		}
	}

	return eng, s, act, ctrl, mon
}

func defaultMetrics(cfg *config.Config) []shot.Metric {
	threshold := cfg.Safety.MHDThreshold
	if threshold <= 0 {
		threshold = safety.DefaultMHDThreshold
	}
	return []shot.Metric{
		metrics.NewMHDQuiet(threshold),
		metrics.NewPeakBetaN(),
		metrics.NewVerticalExcursion(),
		metrics.NewVerticalIAE(),
		metrics.NewControlEffort(),
		metrics.NewHeatingEnergy(),
		metrics.NewConfinementEstimate(),
	}
}

func shotConfig(cfg *config.Config) shot.Config {
	return shot.Config{
		Dt:               cfg.Dt,
		Duration:         cfg.Duration,
		Seed:             cfg.Seed,
		Validate:         cfg.Validate,
		TrackConfinement: cfg.TrackConfinement,
	}
}

func runShot(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadShotConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	eng, s, act, ctrl, mon := buildShot(cfg, verticalPID(cfg))

	runner := shot.New(eng, ctrl)
	if mon != nil {
		runner.SetMonitor(mon)
	}
	for _, m := range defaultMetrics(cfg) {
		runner.AddMetric(m)
	}

	shotCfg := shotConfig(cfg)

	fmt.Printf("running %s shot...\n", name)
	start := time.Now()

	result, err := runner.Run(context.Background(), s, act, shotCfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	shotID, err := st.Save(name, shotCfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("shot id: %s\n", shotID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("final phase: %s\n", result.FinalPhase)
	if result.Disrupted {
		fmt.Printf("disrupted at t=%.3fs\n", result.DisruptionTime)
	}
	for _, stepErr := range result.Errors {
		fmt.Printf("aborted: %v\n", stepErr)
	}

	fmt.Println("\nmetrics:")
	for mname, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", mname, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadShotConfig(cmd, args)
	if err != nil {
		return err
	}

	pid := verticalPID(cfg)
	build := func() (*engine.Engine, *plasma.State, *plasma.Actuators, shot.Controller, *safety.Monitor) {
		return buildShot(cfg, pid)
	}

	m := viz.NewModel(build, pid, cfg.Dt)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listShots(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	shots, err := st.List()
	if err != nil {
		return err
	}

	if len(shots) == 0 {
		fmt.Println("no shots found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tDURATION\tDT\tPHASE\tDISRUPTED")

	for _, s := range shots {
		disrupted := "-"
		if s.Disrupted {
			disrupted = fmt.Sprintf("t=%.3fs", s.DisruptionTime)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%s\n",
			s.ID,
			s.Preset,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.Duration,
			s.Dt,
			s.FinalPhase,
			disrupted,
		)
	}

	return w.Flush()
}

func channelIndex(name string) (int, error) {
	for i, col := range plasma.HistoryColumns {
		if col == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown channel: %s (available: %s)", name, strings.Join(plasma.HistoryColumns, ", "))
}

func channelData(states [][]float64, idx int) []float64 {
	data := make([]float64, len(states))
	for i := range states {
		if idx < len(states[i]) {
			data[i] = states[i][idx]
		}
	}
	return data
}

func plotShot(cmd *cobra.Command, args []string) error {
	shotID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(shotID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(shotID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("shot: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(states))

	printChannel := func(idx int) {
		caption := fmt.Sprintf("x%d vs time", idx)
		if idx < len(plasma.HistoryColumns) {
			caption = plasma.HistoryColumns[idx]
		}

		graph := asciigraph.Plot(channelData(states, idx),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if channel != "" {
		idx, err := channelIndex(channel)
		if err != nil {
			return err
		}
		printChannel(idx)
		return nil
	}

	numVars := len(states[0])
	maxPlots := 6
	if numVars > maxPlots {
		numVars = maxPlots
	}
	for idx := 0; idx < numVars; idx++ {
		printChannel(idx)
	}

	return nil
}

func spectrumShot(cmd *cobra.Command, args []string) error {
	shotID := args[0]

	ch := channel
	if ch == "" {
		ch = "mhd_activity"
	}
	idx, err := channelIndex(ch)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	meta, err := st.Load(shotID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(shotID)
	if err != nil {
		return err
	}

	data := channelData(states, idx)
	spec := analysis.PowerSpectrum(data, meta.Dt)
	if spec == nil {
		return fmt.Errorf("not enough samples for a spectrum (%d)", len(data))
	}

	fmt.Printf("spectrum: %s\n", meta.ID)
	fmt.Printf("channel: %s\n\n", ch)

	quarter := len(spec.Power) / 4
	if quarter < 8 {
		quarter = len(spec.Power)
	}
	graph := asciigraph.Plot(spec.Power[:quarter],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", ch)),
	)
	fmt.Println(graph)
	fmt.Println()

	freq, power := analysis.DominantFrequency(data, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz (power %.4g)\n", freq, power)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	if outPath != "" {
		title := fmt.Sprintf("Power Spectrum (%s)", ch)
		if err := export.SaveSpectrumPlot(outPath, title, spec); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outPath)
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	shotID := args[0]

	st := storage.New(dataDir)
	states, times, err := st.LoadStates(shotID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := append([]string{"time"}, plasma.HistoryColumns...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	shotID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(shotID)
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(shotID)
	if err != nil {
		return err
	}

	result := &shot.Result{
		Times:          times,
		Records:        states,
		Metrics:        meta.Metrics,
		FinalPhase:     plasma.ParsePhase(meta.FinalPhase),
		StepsTaken:     meta.Steps,
		Disrupted:      meta.Disrupted,
		DisruptionTime: meta.DisruptionTime,
	}
	cfg := shot.Config{Dt: meta.Dt, Duration: meta.Duration, Seed: meta.Seed}

	return storage.WriteJSON(os.Stdout, meta.Preset, cfg, result)
}

func renderShot(cmd *cobra.Command, args []string) error {
	shotID := args[0]

	if format != "png" && format != "svg" {
		return fmt.Errorf("unsupported format: %s (png or svg)", format)
	}

	st := storage.New(dataDir)
	states, times, err := st.LoadStates(shotID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to render")
	}

	dir := outPath
	if dir == "" {
		dir = filepath.Join(dataDir, shotID, "plots")
	}

	if channel != "" {
		idx, err := channelIndex(channel)
		if err != nil {
			return err
		}
		title, unit := export.Label(channel)
		path := filepath.Join(dir, channel+"."+format)
		if err := export.SaveChannelPlot(path, title, unit, times, channelData(states, idx)); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
		return nil
	}

	if err := export.SaveShotPlots(dir, format, times, states); err != nil {
		return err
	}
	fmt.Printf("wrote %d plots to %s\n", len(plasma.HistoryColumns), dir)
	return nil
}

func showPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		names := config.ListPresets()
		sort.Strings(names)
		fmt.Println("presets:")
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}
		return nil
	}

	cfg := config.GetPreset(args[0])
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

func scanShots(cmd *cobra.Command, args []string) error {
	currents := []float64{1.0, 1.5, 2.0, 2.5, 3.0}
	powers := []float64{0.0, 5.0, 10.0, 20.0}

	fmt.Printf("scanning %dx%d operating points, %d shots each\n\n",
		len(currents), len(powers), scanRuns)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TARGET_MA\tPOWER_MW\tDISRUPTED\tPEAK_BETA_N")

	for _, current := range currents {
		for _, power := range powers {
			cfg := config.DefaultConfig()
			cfg.Dt = dt
			cfg.Duration = scanTime
			cfg.Seed = scanSeed
			cfg.Schedule.TargetCurrent = current
			if power > 0 {
				cfg.Actuators.Heating = []config.HeatingConfig{{Power: power, Frequency: 148.4e9}}
			} else {
				cfg.Actuators.Heating = nil
			}

			dev := cfg.ToDevice()
			ens := &shot.Ensemble{
				Dev:       dev,
				NumRuns:   scanRuns,
				Seed:      scanSeed,
				State:     cfg.BuildState,
				Actuators: cfg.BuildActuators,
				Controller: func() shot.Controller {
					return buildController(cfg, dev, verticalPID(cfg))
				},
				Monitor: func() *safety.Monitor { return safety.NewMonitor(dev) },
				Metrics: func() []shot.Metric { return []shot.Metric{metrics.NewPeakBetaN()} },
			}

			results, err := ens.Run(context.Background(), shotConfig(cfg))
			if err != nil {
				return err
			}

			peak := 0.0
			for _, r := range results {
				if v := r.Metrics["peak_beta_n"]; v > peak {
					peak = v
				}
			}

			fmt.Fprintf(w, "%.1f\t%.1f\t%.0f%%\t%.2f\n",
				current, power, 100*shot.DisruptedFraction(results), peak)
		}
	}

	return w.Flush()
}

func tuneGains(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"vde"}
	}
	cfg, name, err := loadShotConfig(cmd, args)
	if err != nil {
		return err
	}

	cfg.Vertical.Enabled = true
	if cfg.InitState.VerticalPosition == 0 {
		cfg.InitState.VerticalPosition = 0.05
	}

	kps := []float64{0.125, 0.25, 0.5, 1.0, 2.0}
	kds := []float64{0.0, 0.005, 0.01}

	fmt.Printf("tuning vertical feedback on %s (%d grid points)\n", name, len(kps)*len(kds))

	objective := func(ctx context.Context, params map[string]float64) (float64, error) {
		trial := *cfg
		trial.Vertical.Kp = params["kp"]
		trial.Vertical.Ki = 0
		trial.Vertical.Kd = params["kd"]

		eng, s, act, ctrl, mon := buildShot(&trial, verticalPID(&trial))
		runner := shot.New(eng, ctrl)
		if mon != nil {
			runner.SetMonitor(mon)
		}
		runner.AddMetric(metrics.NewVerticalIAE())

		result, err := runner.Run(ctx, s, act, shotConfig(&trial))
		if err != nil {
			return 0, err
		}
		return result.Metrics["vertical_iae"], nil
	}

	search := optim.NewGridSearch([]string{"kp", "kd"}, [][]float64{kps, kds})
	best, val, err := search.Search(context.Background(), objective)
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("no grid point completed")
	}

	fmt.Printf("best gains: kp=%.3f kd=%.3f\n", best["kp"], best["kd"])
	fmt.Printf("integrated |z|: %.6f m*s\n", val)
	return nil
}

func runCampaign(cmd *cobra.Command, args []string) error {
	camp, err := automation.Load(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("campaign: %s (%d steps)\n", camp.Name, len(camp.Steps))
	if camp.Description != "" {
		fmt.Println(camp.Description)
	}
	fmt.Println()

	step := 0
	results, err := camp.Run(context.Background(), func(ctx context.Context, preset string, cfg *config.Config) (*shot.Result, error) {
		step++
		fmt.Printf("step %d/%d: %s\n", step, len(camp.Steps), preset)

		eng, s, act, ctrl, mon := buildShot(cfg, verticalPID(cfg))
		runner := shot.New(eng, ctrl)
		if mon != nil {
			runner.SetMonitor(mon)
		}
		for _, m := range defaultMetrics(cfg) {
			runner.AddMetric(m)
		}

		result, err := runner.Run(ctx, s, act, shotConfig(cfg))
		if err != nil {
			return nil, err
		}

		shotID, err := st.Save(preset, shotConfig(cfg), result)
		if err != nil {
			return nil, err
		}

		status := result.FinalPhase.String()
		if result.Disrupted {
			status = fmt.Sprintf("disrupted t=%.3fs", result.DisruptionTime)
		}
		fmt.Printf("  %s  %s\n", shotID, status)
		return result, nil
	})
	if err != nil {
		return err
	}

	disrupted := 0
	for _, r := range results {
		if r.Disrupted {
			disrupted++
		}
	}
	fmt.Printf("\ncompleted %d shots, %d disrupted\n", len(results), disrupted)
	return nil
}

func benchEngine(cmd *cobra.Command, args []string) error {
	durations := []float64{1.0, 5.0, 10.0}
	dts := []float64{0.0005, 0.001, 0.002}

	fmt.Printf("benchmarking the advancement engine\n\n")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, step := range dts {
			cfg := config.DefaultConfig()
			cfg.Dt = step
			cfg.Duration = dur
			cfg.Seed = 42
			cfg.Validate = false

			eng, s, act, ctrl, mon := buildShot(cfg, verticalPID(cfg))
			runner := shot.New(eng, ctrl)
			if mon != nil {
				runner.SetMonitor(mon)
			}

			start := time.Now()
			result, err := runner.Run(context.Background(), s, act, shotConfig(cfg))
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%v\t%.0f\n",
				dur, step, result.StepsTaken, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}
