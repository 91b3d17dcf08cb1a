// Package export writes run artifacts to portable formats: SVG stills
// of the braille canvas, SVG trace plots, and JSON dumps of full runs.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/motionlab/internal/scenario"
	"github.com/san-kum/motionlab/internal/viz"
)

var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// CanvasToSVG renders a braille canvas as an SVG still, one circle per
// lit dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}
	if scale <= 0 {
		scale = 4
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#7fd4ff">
`, width, height, width, height))

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := r - 0x2800
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&dotBits[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TraceToSVG plots one frame field over time as an SVG polyline.
// Supported fields: energy, step_ms, particles, awake.
func TraceToSVG(frames []scenario.Frame, field string, width, height int) (string, error) {
	if len(frames) < 2 {
		return "", fmt.Errorf("export: need at least 2 frames, got %d", len(frames))
	}
	pick, err := fieldPicker(field)
	if err != nil {
		return "", err
	}

	minY, maxY := pick(frames[0]), pick(frames[0])
	for _, f := range frames {
		v := pick(f)
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2

	t0 := frames[0].T
	rangeT := frames[len(frames)-1].T - t0
	if rangeT == 0 {
		rangeT = 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="#7fd4ff" stroke-width="1.5" d="M`,
		width, height, width, height))

	for i, f := range frames {
		x := (f.T - t0) / rangeT * float64(width)
		y := float64(height) - (pick(f)-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString("\"/>\n</svg>")
	return sb.String(), nil
}

func fieldPicker(field string) (func(scenario.Frame) float64, error) {
	switch field {
	case "energy":
		return func(f scenario.Frame) float64 { return f.Energy }, nil
	case "step_ms":
		return func(f scenario.Frame) float64 { return f.StepMs }, nil
	case "particles":
		return func(f scenario.Frame) float64 { return float64(f.Particles) }, nil
	case "awake":
		return func(f scenario.Frame) float64 { return float64(f.Awake) }, nil
	default:
		return nil, fmt.Errorf("export: unknown trace field %q", field)
	}
}
