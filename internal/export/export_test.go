package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/san-kum/motionlab/internal/scenario"
	"github.com/san-kum/motionlab/internal/viz"
)

func traceFixture() *scenario.Result {
	return &scenario.Result{
		Scene:    "fountain",
		Preset:   "gentle",
		Emotion:  "calm",
		Duration: 0.05,
		Ticks:    3,
		Frames: []scenario.Frame{
			{T: 0.016, StepMs: 1.0, Level: 4, Bodies: 1, Particles: 5, Energy: 1.0, Awake: 1},
			{T: 0.033, StepMs: 1.1, Level: 4, Bodies: 1, Particles: 9, Energy: 0.8, Awake: 1},
			{T: 0.050, StepMs: 0.9, Level: 4, Bodies: 1, Particles: 12, Energy: 0.6, Awake: 0},
		},
		Metrics: map[string]float64{"kinetic_energy": 0.8},
	}
}

func TestCanvasToSVGEmitsDots(t *testing.T) {
	c := viz.NewCanvas(4, 4)
	c.Set(0, 0)
	c.Set(3, 5)

	svg := CanvasToSVG(c, 4)
	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML header")
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("expected 2 dots, got %d", got)
	}
}

func TestCanvasToSVGEmptyCanvas(t *testing.T) {
	svg := CanvasToSVG(viz.NewCanvas(4, 4), 4)
	if strings.Contains(svg, "<circle") {
		t.Error("empty canvas produced dots")
	}
	if CanvasToSVG(nil, 4) != "" {
		t.Error("nil canvas should yield empty output")
	}
}

func TestTraceToSVG(t *testing.T) {
	svg, err := TraceToSVG(traceFixture().Frames, "energy", 200, 100)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(svg, "<path") {
		t.Error("missing polyline path")
	}
	if got := strings.Count(svg, " L"); got != 2 {
		t.Errorf("expected 2 line segments, got %d", got)
	}
}

func TestTraceToSVGUnknownField(t *testing.T) {
	if _, err := TraceToSVG(traceFixture().Frames, "velocity", 200, 100); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestTraceToSVGTooFewFrames(t *testing.T) {
	if _, err := TraceToSVG(traceFixture().Frames[:1], "energy", 200, 100); err == nil {
		t.Error("expected error for single frame")
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, 1.0/60.0, traceFixture()); err != nil {
		t.Fatal(err)
	}

	var doc runDocument
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Scene != "fountain" || doc.Preset != "gentle" || doc.Emotion != "calm" {
		t.Errorf("run identity lost: %+v", doc)
	}
	if len(doc.Frames) != 3 || doc.Frames[2].Particles != 12 {
		t.Error("frames not preserved")
	}
	if doc.Metrics["kinetic_energy"] != 0.8 {
		t.Error("metrics not preserved")
	}
}
