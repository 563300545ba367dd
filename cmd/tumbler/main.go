package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/soundphys/tumbler/internal/analysis"
	"github.com/soundphys/tumbler/internal/audio"
	"github.com/soundphys/tumbler/internal/config"
	"github.com/soundphys/tumbler/internal/drum"
	"github.com/soundphys/tumbler/internal/notes"
	"github.com/soundphys/tumbler/internal/server"
	"github.com/soundphys/tumbler/internal/storage"
	"github.com/soundphys/tumbler/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string

	rpm           float64
	drumCm        float64
	vanes         int
	vaneHeightPct float64
	ball          string

	duration float64
	noAudio  bool
	addr     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tumbler",
		Short: "ball-in-a-dryer physics sequencer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, args)
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".tumbler", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use a named session preset")
	rootCmd.PersistentFlags().Float64Var(&rpm, "rpm", 0, "override drum rpm")
	rootCmd.PersistentFlags().Float64Var(&drumCm, "drum-cm", 0, "override drum radius (cm)")
	rootCmd.PersistentFlags().IntVar(&vanes, "vanes", 0, "override vane count")
	rootCmd.PersistentFlags().Float64Var(&vaneHeightPct, "vane-height", 0, "override vane height (%)")
	rootCmd.PersistentFlags().StringVar(&ball, "ball", "", "override ball preset")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal session",
		RunE:  runLive,
	}
	liveCmd.Flags().BoolVar(&noAudio, "no-audio", false, "disable audio output")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "headless run, saves the collision log",
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&duration, "time", 30.0, "simulated duration (s)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list session and ball presets",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("sessions:")
			for _, name := range config.ListPresets() {
				c := config.GetPreset(name)
				fmt.Printf("  %-14s %3.0f rpm, %d vanes, %s ball, %s scale\n",
					name, c.RPM, c.Vanes, c.Ball, c.Scale)
			}
			fmt.Println("balls:")
			for _, name := range drum.ListBallPresets() {
				p := drum.BallPresets[name]
				fmt.Printf("  %-14s r=%.3fm m=%.4fkg e=%.2f cd=%.2f\n",
					name, p.Radius, p.Mass, p.Restitution, p.DragCoeff)
			}
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "impact statistics for a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "stream frames and events over a websocket",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")

	rootCmd.AddCommand(liveCmd, runCmd, presetsCmd, listCmd, analyzeCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves precedence: preset or file, then flag overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	switch {
	case preset != "":
		if cfg = config.GetPreset(preset); cfg == nil {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
	case configFile != "":
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, err
		}
	}
	if rpm > 0 {
		cfg.RPM = rpm
	}
	if drumCm > 0 {
		cfg.DrumCm = drumCm
	}
	if vanes > 0 {
		cfg.Vanes = vanes
	}
	if vaneHeightPct > 0 {
		cfg.VaneHeightPct = vaneHeightPct
	}
	if ball != "" {
		cfg.Ball = ball
	}
	return cfg, nil
}

// buildSession constructs the simulation and note mapper from a config.
func buildSession(cfg *config.Config) (*drum.Simulation, *notes.Mapper, error) {
	sim, err := drum.New(drum.DefaultDrumConfig())
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Apply(sim); err != nil {
		return nil, nil, err
	}

	scale, ok := notes.Scales[cfg.Scale]
	if !ok {
		return nil, nil, fmt.Errorf("unknown scale %q", cfg.Scale)
	}
	mapper, err := notes.NewMapper(cfg.RootNote, scale)
	if err != nil {
		return nil, nil, err
	}
	mapper.Rebuild(sim.Surfaces())
	return sim, mapper, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sim, mapper, err := buildSession(cfg)
	if err != nil {
		return err
	}

	var synth *audio.Synth
	if !noAudio {
		synth = audio.NewSynth()
		if err := synth.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "audio unavailable, running silent: %v\n", err)
			synth = nil
		}
	}

	return tui.Run(cfg, sim, mapper, synth)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sim, mapper, err := buildSession(cfg)
	if err != nil {
		return err
	}

	var events []storage.EventRecord
	var simTime float64
	sim.OnCollision(func(sf drum.Surface, speed float64) {
		note, _ := mapper.Note(sf.ID)
		events = append(events, storage.EventRecord{
			Time:    simTime,
			Surface: sf.ID,
			Kind:    sf.Kind.String(),
			Index:   sf.Index,
			Speed:   speed,
			Note:    note,
		})
	})

	frameDt := 1.0 / float64(cfg.FrameRate)
	for simTime = 0; simTime < duration; simTime += frameDt {
		sim.Advance(frameDt)
	}

	stats := analysis.Impacts(events)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Preset:        preset,
		RPM:           cfg.RPM,
		DrumRadius:    sim.Config().Radius,
		VaneCount:     cfg.Vanes,
		Ball:          cfg.Ball,
		Duration:      duration,
		MeanImpact:    stats.MeanSpeed,
		LoudestImpact: stats.MaxSpeed,
	}, events)
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d impacts over %.1fs\n\n", runID, stats.Count, duration)
	printStats(stats)

	if speeds := analysis.SpeedSeries(events); len(speeds) >= 2 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(speeds,
			asciigraph.Height(8),
			asciigraph.Width(64),
			asciigraph.Caption("impact speed, m/s")))
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tRPM\tVANES\tBALL\tIMPACTS\tLOUDEST")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.0f\t%d\t%s\t%d\t%.2f\n",
			r.ID, r.Timestamp.Format("2006-01-02 15:04:05"),
			r.RPM, r.VaneCount, r.Ball, r.EventCount, r.LoudestImpact)
	}
	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	events, err := st.LoadEvents(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %s ball, %.0f rpm, %d vanes\n\n", meta.ID, meta.Ball, meta.RPM, meta.VaneCount)
	stats := analysis.Impacts(events)
	printStats(stats)

	rhythm := analysis.RhythmSpectrum(events, meta.Duration)
	if rhythm.DominantHz > 0 {
		fmt.Printf("\ndominant rhythm: %.2f Hz (%.2fs period)\n", rhythm.DominantHz, 1/rhythm.DominantHz)
	}
	return nil
}

func printStats(stats analysis.ImpactStats) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "impacts\t%d\n", stats.Count)
	fmt.Fprintf(w, "mean speed\t%.3f m/s\n", stats.MeanSpeed)
	fmt.Fprintf(w, "std dev\t%.3f\n", stats.StdDev)
	fmt.Fprintf(w, "median\t%.3f m/s\n", stats.Median)
	fmt.Fprintf(w, "p90\t%.3f m/s\n", stats.P90)
	fmt.Fprintf(w, "loudest\t%.3f m/s\n", stats.MaxSpeed)
	w.Flush()

	if len(stats.PerKind) > 0 {
		fmt.Fprintln(w)
		for kind, n := range stats.PerKind {
			fmt.Fprintf(w, "%s\t%d\n", kind, n)
		}
		w.Flush()
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sim, mapper, err := buildSession(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv := server.New(sim, mapper, cfg.FrameRate)
	return srv.ListenAndServe(ctx, addr)
}
