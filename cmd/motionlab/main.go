package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/motionlab/internal/config"
	"github.com/san-kum/motionlab/internal/engine"
	"github.com/san-kum/motionlab/internal/export"
	"github.com/san-kum/motionlab/internal/scenario"
	"github.com/san-kum/motionlab/internal/storage"
	"github.com/san-kum/motionlab/internal/telemetry"
	"github.com/san-kum/motionlab/internal/transport/ws"
	"github.com/san-kum/motionlab/internal/viz"
)

var (
	dataDir    string
	debug      bool
	configFile string
	preset     string

	dt        float64
	duration  float64
	seed      int64
	emotion   string
	intensity float64
	level     int
	auto      bool

	svgField string
	svgOut   string

	addr        string
	metricsAddr string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "motionlab",
		Short: "procedural physics and animation lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".motionlab", "data directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a scene headless and store the trace",
		Args:  cobra.ExactArgs(1),
		RunE:  runScene,
	}
	addSceneFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run trace to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export one trace field as an SVG plot",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgField, "field", "energy", "trace field (energy, step_ms, particles, awake)")
	exportSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default stdout)")

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "interactive terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSceneFlags(liveCmd)

	serveCmd := &cobra.Command{
		Use:   "serve [scene]",
		Short: "stream frames over websocket",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runServe,
	}
	addSceneFlags(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "websocket listen address")
	serveCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "prometheus listen address (empty disables)")

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "benchmark a scene across quality levels",
		Args:  cobra.ExactArgs(1),
		RunE:  benchScene,
	}
	benchCmd.Flags().Float64Var(&duration, "time", 3.0, "simulated seconds per level")

	presetsCmd := &cobra.Command{
		Use:   "presets [scene]",
		Short: "list scenes and their presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenes := config.Scenes()
			if len(args) == 1 {
				scenes = args[:1]
			}
			for _, sc := range scenes {
				ps := config.ListPresets(sc)
				if len(ps) == 0 {
					fmt.Printf("no presets for scene: %s\n", sc)
					continue
				}
				fmt.Printf("%s:\n", sc)
				for _, p := range ps {
					fmt.Printf("  %s\n", p)
				}
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, liveCmd, serveCmd, benchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "preset name")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "tick timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&emotion, "emotion", "", "emotional state")
	cmd.Flags().Float64Var(&intensity, "intensity", config.DefaultIntensity, "emotion intensity 0..1")
	cmd.Flags().IntVar(&level, "quality", 4, "quality level 0..4")
	cmd.Flags().BoolVar(&auto, "auto-quality", true, "adaptive quality")
	cmd.Flags().SortFlags = false
}

// buildConfig layers preset, config file, and explicit flags, in that
// order of increasing precedence.
func buildConfig(cmd *cobra.Command, scene string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Scene = scene

	if preset != "" {
		p := config.GetPreset(scene, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(scene))
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		loaded.Scene = scene
		cfg = loaded
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
	if cmd.Flags().Changed("emotion") {
		cfg.Emotion = emotion
	}
	if cmd.Flags().Changed("intensity") {
		cfg.Intensity = intensity
	}
	if cmd.Flags().Changed("quality") {
		cfg.Quality.Level = level
		cfg.Quality.Auto = false
	}
	if cmd.Flags().Changed("auto-quality") {
		cfg.Quality.Auto = auto
	}
	return cfg, nil
}

func newLogger() (*zap.Logger, error) {
	return telemetry.NewLogger(debug)
}

func runScene(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("running %s...\n", cfg.Scene)
	start := time.Now()

	runner := scenario.NewRunner(log)
	result, err := runner.Run(ctx, cfg)
	if err != nil {
		return err
	}
	result.Preset = preset
	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Dt, cfg.Seed, preset, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", result.Ticks)
	fmt.Println("\nmetrics:")
	fmt.Print(viz.SummarizeMetrics(result.Metrics))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tPRESET\tEMOTION\tTIME\tDURATION\tTICKS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.2fs\t%d\n",
			run.ID,
			run.Scene,
			run.Preset,
			run.Emotion,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Ticks,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s  emotion: %s  ticks: %d\n\n", meta.Scene, meta.Emotion, meta.Ticks)
	fmt.Print(viz.PlotFrames(frames, 80))
	fmt.Println("\nmetrics:")
	fmt.Print(viz.SummarizeMetrics(meta.Metrics))
	return nil
}

func loadResult(runID string) (*storage.RunMetadata, *scenario.Result, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, &scenario.Result{
		Scene:    meta.Scene,
		Preset:   meta.Preset,
		Emotion:  meta.Emotion,
		Duration: meta.Duration,
		Ticks:    meta.Ticks,
		Frames:   frames,
		Metrics:  meta.Metrics,
	}, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	return export.WriteJSON(os.Stdout, meta.Dt, result)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, result, err := loadResult(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	if err := w.Write([]string{"t", "step_ms", "level", "bodies", "particles", "energy", "awake"}); err != nil {
		return err
	}
	for _, f := range result.Frames {
		record := []string{
			strconv.FormatFloat(f.T, 'f', 6, 64),
			strconv.FormatFloat(f.StepMs, 'f', 4, 64),
			strconv.Itoa(f.Level),
			strconv.Itoa(f.Bodies),
			strconv.Itoa(f.Particles),
			strconv.FormatFloat(f.Energy, 'f', 6, 64),
			strconv.Itoa(f.Awake),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, result, err := loadResult(args[0])
	if err != nil {
		return err
	}

	svg, err := export.TraceToSVG(result.Frames, svgField, 800, 300)
	if err != nil {
		return err
	}
	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	return os.WriteFile(svgOut, []byte(svg), 0644)
}

func runLive(cmd *cobra.Command, args []string) error {
	scene := "companion"
	if len(args) > 0 {
		scene = args[0]
	}
	cfg, err := buildConfig(cmd, scene)
	if err != nil {
		return err
	}

	runner := scenario.NewRunner(zap.NewNop())
	build := func() (*engine.Engine, error) { return runner.Build(cfg) }

	model, err := viz.NewModel(build, scene, cfg.Dt)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func runServe(cmd *cobra.Command, args []string) error {
	scene := "companion"
	if len(args) > 0 {
		scene = args[0]
	}
	cfg, err := buildConfig(cmd, scene)
	if err != nil {
		return err
	}

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	runner := scenario.NewRunner(log)
	eng, err := runner.Build(cfg)
	if err != nil {
		return err
	}

	srv := ws.NewServer(log, eng, cfg.Dt)

	if metricsAddr != "" {
		collector := telemetry.NewCollector()
		srv.OnStats(collector.Observe)
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		go func() {
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				log.Error("metrics server stopped", zap.Error(err))
			}
		}()
		log.Info("metrics listening", zap.String("addr", metricsAddr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go srv.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", srv.HandleWS)
	httpSrv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info("websocket listening", zap.String("addr", addr), zap.String("scene", scene))
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func benchScene(cmd *cobra.Command, args []string) error {
	scene := args[0]
	runner := scenario.NewRunner(zap.NewNop())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LEVEL\tTICKS\tTIME\tAVG STEP\tTICKS/SEC")

	for lvl := 0; lvl <= 4; lvl++ {
		cfg := config.DefaultConfig()
		cfg.Scene = scene
		cfg.Duration = duration
		cfg.Quality.Auto = false
		cfg.Quality.Level = lvl

		start := time.Now()
		result, err := runner.Run(context.Background(), cfg)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%d\t%d\t%v\t%.3fms\t%.0f\n",
			lvl, result.Ticks, elapsed.Round(time.Millisecond),
			result.Metrics["step_ms"],
			float64(result.Ticks)/elapsed.Seconds())
	}
	return w.Flush()
}
