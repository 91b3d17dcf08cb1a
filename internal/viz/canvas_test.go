package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/motionlab/internal/scenario"
)

func TestCanvasSetLightsDot(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("dot not set")
	}
	if c.Grid[0][0] != 0x2800|0x01 {
		t.Errorf("wrong dot bit: %x", c.Grid[0][0])
	}
}

func TestCanvasOutOfBoundsIgnored(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(100, 0)
	c.Set(0, 100)
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatal("out of bounds write landed on the grid")
			}
		}
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(3, 3)
	c.Line(0, 0, 5, 11)
	c.Clear()
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatal("clear left dots behind")
			}
		}
	}
}

func TestLineEndpoints(t *testing.T) {
	c := NewCanvas(8, 8)
	c.Line(0, 0, 15, 31)
	if c.Grid[0][0] == 0x2800 {
		t.Error("line start not drawn")
	}
	if c.Grid[7][7] == 0x2800 {
		t.Error("line end not drawn")
	}
}

func TestCircleZeroRadiusIsDot(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Circle(4, 8, 0)
	lit := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				lit++
			}
		}
	}
	if lit != 1 {
		t.Errorf("expected a single lit cell, got %d", lit)
	}
}

func TestPixelSize(t *testing.T) {
	c := NewCanvas(10, 5)
	w, h := c.PixelSize()
	if w != 20 || h != 20 {
		t.Errorf("pixel size = %dx%d, want 20x20", w, h)
	}
}

func TestStringShape(t *testing.T) {
	c := NewCanvas(6, 3)
	out := c.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(lines))
	}
	for _, line := range lines {
		if len([]rune(line)) != 6 {
			t.Errorf("row width %d, want 6", len([]rune(line)))
		}
	}
}

func TestPlotFramesNeedsData(t *testing.T) {
	out := PlotFrames(nil, 40)
	if !strings.Contains(out, "not enough frames") {
		t.Error("expected placeholder for empty trace")
	}
}

func TestPlotFramesRendersCaptions(t *testing.T) {
	frames := []scenario.Frame{
		{T: 0.0, StepMs: 1, Energy: 2, Particles: 3},
		{T: 0.1, StepMs: 2, Energy: 1, Particles: 4},
		{T: 0.2, StepMs: 1, Energy: 0, Particles: 5},
	}
	out := PlotFrames(frames, 40)
	for _, caption := range []string{"kinetic energy", "step time (ms)", "live particles"} {
		if !strings.Contains(out, caption) {
			t.Errorf("missing caption %q", caption)
		}
	}
}
