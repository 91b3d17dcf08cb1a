// Package quality adapts simulation fidelity to the measured frame budget.
// The governor watches step times over a sliding window and moves one level
// at a time, so a single slow frame never causes a visible quality cliff.
package quality

import "go.uber.org/zap"

// Level indexes the fidelity ladder, 0 lowest to Max highest.
type Level int

const Max Level = 4

// Settings bundles every knob a level controls.
type Settings struct {
	FixedStep       float64
	MaxSubSteps     int
	SoftIterations  int
	ClothResolution int
	VortexCount     int
	MaxParticles    int
}

var levels = [Max + 1]Settings{
	{FixedStep: 1.0 / 30, MaxSubSteps: 1, SoftIterations: 1, ClothResolution: 4, VortexCount: 0, MaxParticles: 64},
	{FixedStep: 1.0 / 60, MaxSubSteps: 2, SoftIterations: 2, ClothResolution: 6, VortexCount: 1, MaxParticles: 128},
	{FixedStep: 1.0 / 60, MaxSubSteps: 2, SoftIterations: 3, ClothResolution: 8, VortexCount: 2, MaxParticles: 256},
	{FixedStep: 1.0 / 120, MaxSubSteps: 3, SoftIterations: 3, ClothResolution: 8, VortexCount: 3, MaxParticles: 384},
	{FixedStep: 1.0 / 120, MaxSubSteps: 4, SoftIterations: 4, ClothResolution: 10, VortexCount: 4, MaxParticles: 512},
}

// SettingsFor returns the knob bundle for a level, clamped to the ladder.
func SettingsFor(l Level) Settings {
	if l < 0 {
		l = 0
	}
	if l > Max {
		l = Max
	}
	return levels[l]
}

const (
	defaultWindow = 60

	// Milliseconds. Downgrade when the window average blows the frame
	// budget; upgrade on a fast average, except that the final step onto
	// the top level also requires the worst frame to show headroom.
	downgradeAvgMs = 16.0
	upgradeAvgMs   = 8.0
	upgradeMaxMs   = 12.0
)

// Governor accumulates step timings and steps the quality level.
type Governor struct {
	log    *zap.Logger
	level  Level
	window int

	sum   float64
	max   float64
	count int

	onChange func(Level, Settings)
}

func NewGovernor(log *zap.Logger) *Governor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Governor{log: log, level: Max, window: defaultWindow}
}

// OnChange registers the callback fired on every level transition.
func (g *Governor) OnChange(fn func(Level, Settings)) { g.onChange = fn }

// Level reports the current quality level.
func (g *Governor) Level() Level { return g.level }

// Settings reports the knob bundle for the current level.
func (g *Governor) Settings() Settings { return SettingsFor(g.level) }

// SetWindow overrides the decision window size in ticks.
func (g *Governor) SetWindow(n int) {
	if n > 0 {
		g.window = n
	}
}

// SetLevel forces a level directly, bypassing the window. Used for manual
// quality selection.
func (g *Governor) SetLevel(l Level) {
	if l < 0 {
		l = 0
	}
	if l > Max {
		l = Max
	}
	if l == g.level {
		return
	}
	g.log.Info("quality set", zap.Int("level", int(l)))
	g.transition(l)
}

// Observe records one step duration in milliseconds. Once a full window has
// accumulated the governor decides, moving at most one level, and starts a
// fresh window.
func (g *Governor) Observe(stepMs float64) {
	g.sum += stepMs
	g.count++
	if stepMs > g.max {
		g.max = stepMs
	}
	if g.count < g.window {
		return
	}

	avg := g.sum / float64(g.count)
	switch {
	case avg > downgradeAvgMs && g.level > 0:
		g.logDecision("downgrade", avg)
		g.transition(g.level - 1)
	case avg < upgradeAvgMs && g.level < Max && (g.level+1 < Max || g.max < upgradeMaxMs):
		g.logDecision("upgrade", avg)
		g.transition(g.level + 1)
	default:
		g.resetWindow()
	}
}

func (g *Governor) logDecision(dir string, avg float64) {
	g.log.Info("quality "+dir,
		zap.Int("level", int(g.level)),
		zap.Float64("avgMs", avg),
		zap.Float64("maxMs", g.max))
}

func (g *Governor) transition(to Level) {
	g.level = to
	g.resetWindow()
	if g.onChange != nil {
		g.onChange(to, SettingsFor(to))
	}
}

func (g *Governor) resetWindow() {
	g.sum = 0
	g.max = 0
	g.count = 0
}
