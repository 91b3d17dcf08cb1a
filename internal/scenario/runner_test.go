package scenario

import (
	"context"
	"testing"

	"github.com/san-kum/motionlab/internal/config"
)

func TestRegistryCoversAllPresetScenes(t *testing.T) {
	r := NewRegistry()
	for _, sceneName := range config.Scenes() {
		if _, err := r.Get(sceneName); err != nil {
			t.Errorf("preset scene %s has no builder: %v", sceneName, err)
		}
	}
}

func TestUnknownScene(t *testing.T) {
	r := NewRunner(nil)
	cfg := config.DefaultConfig()
	cfg.Scene = "does-not-exist"

	if _, err := r.Run(context.Background(), cfg); err == nil {
		t.Error("expected error for unknown scene")
	}
}

func TestRunProducesFrames(t *testing.T) {
	r := NewRunner(nil)
	cfg := config.DefaultConfig()
	cfg.Scene = "ballpit"
	cfg.Duration = 0.5
	cfg.Bodies = config.BodiesConfig{Count: 4, Radius: 0.3, Restitution: 0.5, SpawnHeight: 2}

	res, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	wantTicks := int(cfg.Duration / cfg.Dt)
	if res.Ticks != wantTicks || len(res.Frames) != wantTicks {
		t.Fatalf("expected %d frames, got %d", wantTicks, len(res.Frames))
	}
	if res.Frames[0].Bodies != 4 {
		t.Errorf("expected 4 bodies in frame, got %d", res.Frames[0].Bodies)
	}
	if res.Frames[len(res.Frames)-1].T <= res.Frames[0].T {
		t.Error("sim time did not advance across frames")
	}
	if _, ok := res.Metrics["kinetic_energy"]; !ok {
		t.Error("metrics missing kinetic_energy")
	}
	if _, ok := res.Metrics["step_ms"]; !ok {
		t.Error("metrics missing step_ms")
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	r := NewRunner(nil)
	cfg := config.DefaultConfig()
	cfg.Scene = "companion"
	cfg.Duration = 1000

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := r.Run(ctx, cfg)
	if err == nil {
		t.Fatal("expected context error")
	}
	if res == nil {
		t.Fatal("cancellation should still return the partial trace")
	}
	if len(res.Frames) != 0 {
		t.Errorf("pre-cancelled run recorded %d frames", len(res.Frames))
	}
}

func TestBallpitSettles(t *testing.T) {
	r := NewRunner(nil)
	cfg := *config.GetPreset("ballpit", "dead")
	cfg.Duration = 6
	cfg.Quality = config.QualityConfig{Auto: false, Level: 2}

	res, err := r.Run(context.Background(), &cfg)
	if err != nil {
		t.Fatal(err)
	}

	last := res.Frames[len(res.Frames)-1]
	first := res.Frames[0]
	if last.Energy >= first.Energy && first.Energy > 0 {
		t.Errorf("dead ballpit did not lose energy: %f -> %f", first.Energy, last.Energy)
	}
}

func TestEmitterScenePopulatesParticles(t *testing.T) {
	r := NewRunner(nil)
	cfg := *config.GetPreset("fountain", "gentle")
	cfg.Duration = 1
	cfg.Dt = config.DefaultDt

	res, err := r.Run(context.Background(), &cfg)
	if err != nil {
		t.Fatal(err)
	}
	if res.Frames[len(res.Frames)-1].Particles == 0 {
		t.Error("fountain produced no particles")
	}
}
