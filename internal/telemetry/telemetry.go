// Package telemetry wires structured logging and Prometheus metrics for
// long-running engine hosts (the websocket server in particular).
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/san-kum/motionlab/internal/engine"
)

// NewLogger builds the process logger. Debug mode switches to the
// development encoder with human-readable output.
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// Collector exposes per-tick engine stats as Prometheus series.
type Collector struct {
	registry *prometheus.Registry

	stepDuration prometheus.Histogram
	ticks        prometheus.Counter
	bodies       prometheus.Gauge
	particles    prometheus.Gauge
	animations   prometheus.Gauge
	quality      prometheus.Gauge
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		stepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "motionlab",
			Name:      "step_duration_ms",
			Help:      "Wall time spent per engine tick.",
			Buckets:   []float64{0.5, 1, 2, 4, 8, 12, 16, 24, 33, 50},
		}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "motionlab",
			Name:      "ticks_total",
			Help:      "Engine ticks processed.",
		}),
		bodies: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "motionlab",
			Name:      "bodies",
			Help:      "Rigid bodies in the world.",
		}),
		particles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "motionlab",
			Name:      "particles_live",
			Help:      "Particles currently alive across all emitters.",
		}),
		animations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "motionlab",
			Name:      "animations_active",
			Help:      "Objects with an attached animation state.",
		}),
		quality: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "motionlab",
			Name:      "quality_level",
			Help:      "Current quality ladder level.",
		}),
	}
	c.registry.MustRegister(c.stepDuration, c.ticks, c.bodies, c.particles, c.animations, c.quality)
	return c
}

// Observe records one tick. Safe to pass as an engine step observer.
func (c *Collector) Observe(st engine.Stats) {
	c.stepDuration.Observe(st.StepMs)
	c.ticks.Inc()
	c.bodies.Set(float64(st.Bodies))
	c.particles.Set(float64(st.Particles))
	c.animations.Set(float64(st.Animations))
	c.quality.Set(float64(st.Level))
}

// Handler serves the collector's registry in Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
