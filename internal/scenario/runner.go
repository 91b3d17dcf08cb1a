package scenario

import (
	"context"

	"go.uber.org/zap"

	"github.com/san-kum/motionlab/internal/config"
	"github.com/san-kum/motionlab/internal/engine"
	"github.com/san-kum/motionlab/internal/metrics"
	"github.com/san-kum/motionlab/internal/quality"
)

// Frame is one tick's record in a run trace.
type Frame struct {
	T         float64 `json:"t"`
	StepMs    float64 `json:"step_ms"`
	Level     int     `json:"level"`
	Bodies    int     `json:"bodies"`
	Particles int     `json:"particles"`
	Energy    float64 `json:"energy"`
	Awake     int     `json:"awake"`
}

// Result is a completed run: the frame trace plus aggregated metrics.
type Result struct {
	Scene    string             `json:"scene"`
	Preset   string             `json:"preset,omitempty"`
	Emotion  string             `json:"emotion"`
	Duration float64            `json:"duration"`
	Ticks    int                `json:"ticks"`
	Frames   []Frame            `json:"frames"`
	Metrics  map[string]float64 `json:"metrics"`
}

type Runner struct {
	log      *zap.Logger
	registry *Registry
}

func NewRunner(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{log: log, registry: NewRegistry()}
}

func (r *Runner) Registry() *Registry { return r.registry }

// Build assembles an engine for the config without running it. Used by the
// live view and the websocket server, which drive their own loops.
func (r *Runner) Build(cfg *config.Config) (*engine.Engine, error) {
	setup, err := r.registry.Get(cfg.Scene)
	if err != nil {
		return nil, err
	}

	ecfg := engine.DefaultConfig()
	ecfg.Seed = cfg.Seed
	ecfg.Physics.Seed = cfg.Seed
	ecfg.AutoQuality = cfg.Quality.Auto

	e := engine.New(ecfg, r.log.Named("engine"))
	if !cfg.Quality.Auto {
		e.SetQuality(quality.Level(cfg.Quality.Level))
	}
	if err := setup(e, cfg); err != nil {
		return nil, err
	}
	return e, nil
}

// Run executes the configured scene for its full duration, recording every
// frame. Cancellation returns the partial trace with the context error.
func (r *Runner) Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	e, err := r.Build(cfg)
	if err != nil {
		return nil, err
	}

	dt := cfg.Dt
	if dt <= 0 {
		dt = config.DefaultDt
	}
	ticks := int(cfg.Duration / dt)
	mets := metrics.Defaults()

	res := &Result{
		Scene:    cfg.Scene,
		Emotion:  cfg.Emotion,
		Duration: cfg.Duration,
		Frames:   make([]Frame, 0, ticks),
	}

	r.log.Info("run starting",
		zap.String("scene", cfg.Scene),
		zap.String("emotion", cfg.Emotion),
		zap.Int("ticks", ticks))

	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			res.Ticks = i
			res.Metrics = collect(mets)
			return res, err
		}

		st := e.Update(dt)
		for _, m := range mets {
			m.Observe(st, e.World())
		}
		res.Frames = append(res.Frames, snapshot(st, e))
	}

	res.Ticks = ticks
	res.Metrics = collect(mets)

	r.log.Info("run finished",
		zap.Int("frames", len(res.Frames)),
		zap.Float64("avgStepMs", res.Metrics["step_ms"]))
	return res, nil
}

func snapshot(st engine.Stats, e *engine.Engine) Frame {
	energy := 0.0
	awake := 0
	for _, b := range e.World().Bodies() {
		v := b.Velocity.Len()
		energy += 0.5 * b.Mass * v * v
		if !b.Sleeping && !b.Static {
			awake++
		}
	}
	return Frame{
		T:         st.SimTime,
		StepMs:    st.StepMs,
		Level:     int(st.Level),
		Bodies:    st.Bodies,
		Particles: st.Particles,
		Energy:    energy,
		Awake:     awake,
	}
}

func collect(mets []metrics.Metric) map[string]float64 {
	out := make(map[string]float64, len(mets))
	for _, m := range mets {
		out[m.Name()] = m.Value()
	}
	return out
}
