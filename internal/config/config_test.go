package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scene != "companion" {
		t.Errorf("expected scene companion, got %s", cfg.Scene)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.Emotion != "neutral" {
		t.Errorf("expected neutral emotion, got %s", cfg.Emotion)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("ballpit", "bouncy")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Bodies.Restitution != 0.92 {
		t.Errorf("expected restitution 0.92, got %f", cfg.Bodies.Restitution)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	cfg := GetPreset("ballpit", "nonexistent")
	if cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}

	cfg = GetPreset("nonexistent", "drop")
	if cfg != nil {
		t.Error("expected nil for nonexistent scene")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("companion")
	if len(presets) == 0 {
		t.Error("expected presets for companion")
	}

	presets = ListPresets("nonexistent")
	if presets != nil {
		t.Error("expected nil for nonexistent scene")
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	body := []byte("scene: fountain\nemotion: joy\nemitter:\n  rate: 75\n")
	if err := os.WriteFile(path, body, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scene != "fountain" || cfg.Emotion != "joy" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Emitter.Rate != 75 {
		t.Errorf("nested override not applied: %f", cfg.Emitter.Rate)
	}
	// Untouched fields keep defaults.
	if cfg.Dt != DefaultDt {
		t.Errorf("default dt lost: %f", cfg.Dt)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Seed = 99

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Seed != 99 {
		t.Errorf("seed lost in round trip: %d", loaded.Seed)
	}
}
