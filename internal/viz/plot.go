package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/motionlab/internal/scenario"
)

// PlotFrames renders a run trace as stacked terminal charts.
func PlotFrames(frames []scenario.Frame, width int) string {
	if len(frames) < 2 {
		return "not enough frames to plot\n"
	}
	if width <= 0 {
		width = 70
	}

	energy := make([]float64, len(frames))
	stepMs := make([]float64, len(frames))
	load := make([]float64, len(frames))
	for i, f := range frames {
		energy[i] = f.Energy
		stepMs[i] = f.StepMs
		load[i] = float64(f.Particles)
	}

	var b strings.Builder
	b.WriteString(asciigraph.Plot(energy,
		asciigraph.Height(8), asciigraph.Width(width),
		asciigraph.Caption("kinetic energy")))
	b.WriteString("\n\n")
	b.WriteString(asciigraph.Plot(stepMs,
		asciigraph.Height(6), asciigraph.Width(width),
		asciigraph.Caption("step time (ms)")))
	b.WriteString("\n\n")
	b.WriteString(asciigraph.Plot(load,
		asciigraph.Height(6), asciigraph.Width(width),
		asciigraph.Caption("live particles")))
	b.WriteString("\n")
	return b.String()
}

// SummarizeMetrics formats a run's aggregate metrics as aligned rows.
func SummarizeMetrics(metrics map[string]float64) string {
	var b strings.Builder
	for _, name := range []string{"kinetic_energy", "step_ms", "particle_load", "restlessness"} {
		if v, ok := metrics[name]; ok {
			fmt.Fprintf(&b, "%-16s %10.4f\n", name, v)
		}
	}
	for name, v := range metrics {
		switch name {
		case "kinetic_energy", "step_ms", "particle_load", "restlessness":
		default:
			fmt.Fprintf(&b, "%-16s %10.4f\n", name, v)
		}
	}
	return b.String()
}
