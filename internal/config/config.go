package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt        = 1.0 / 60.0
	DefaultDuration  = 10.0
	DefaultIntensity = 0.5
	DefaultGravityY  = -9.8
	DefaultRate      = 40.0
	DefaultBodies    = 8
)

type Config struct {
	Scene     string  `yaml:"scene"`
	Duration  float64 `yaml:"duration"`
	Dt        float64 `yaml:"dt"`
	Seed      int64   `yaml:"seed"`
	Emotion   string  `yaml:"emotion"`
	Intensity float64 `yaml:"intensity"`

	Quality QualityConfig `yaml:"quality"`
	Physics PhysicsConfig `yaml:"physics"`
	Emitter EmitterConfig `yaml:"emitter"`
	Cloth   ClothConfig   `yaml:"cloth"`
	Bodies  BodiesConfig  `yaml:"bodies"`
}

type QualityConfig struct {
	Auto  bool `yaml:"auto"`
	Level int  `yaml:"level"`
}

type PhysicsConfig struct {
	GravityY       float64 `yaml:"gravity_y"`
	FixedStep      float64 `yaml:"fixed_step"`
	MaxSubSteps    int     `yaml:"max_substeps"`
	VortexStrength float64 `yaml:"vortex_strength"`
	Floor          bool    `yaml:"floor"`
	FloorY         float64 `yaml:"floor_y"`
	Drag           float64 `yaml:"drag"`
}

type EmitterConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Shape       string  `yaml:"shape"`
	Rate        float64 `yaml:"rate"`
	Radius      float64 `yaml:"radius"`
	Speed       float64 `yaml:"speed"`
	Spread      float64 `yaml:"spread"`
	Wiggle      float64 `yaml:"wiggle"`
	Physics     bool    `yaml:"physics"`
	LifetimeMin float64 `yaml:"lifetime_min"`
	LifetimeMax float64 `yaml:"lifetime_max"`
}

type ClothConfig struct {
	Enabled bool    `yaml:"enabled"`
	Cols    int     `yaml:"cols"`
	Rows    int     `yaml:"rows"`
	Spacing float64 `yaml:"spacing"`
}

type BodiesConfig struct {
	Count       int     `yaml:"count"`
	Radius      float64 `yaml:"radius"`
	Restitution float64 `yaml:"restitution"`
	SpawnHeight float64 `yaml:"spawn_height"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene:     "companion",
		Duration:  DefaultDuration,
		Dt:        DefaultDt,
		Seed:      1,
		Emotion:   "neutral",
		Intensity: DefaultIntensity,
		Quality:   QualityConfig{Auto: true, Level: 4},
		Physics: PhysicsConfig{
			GravityY:    DefaultGravityY,
			FixedStep:   1.0 / 120.0,
			MaxSubSteps: 4,
			Floor:       true,
		},
		Emitter: EmitterConfig{
			Shape:       "sphere",
			Rate:        DefaultRate,
			Radius:      0.5,
			Speed:       2.0,
			LifetimeMin: 1.0,
			LifetimeMax: 2.5,
			Physics:     true,
		},
		Cloth: ClothConfig{Cols: 8, Rows: 8, Spacing: 0.25},
		Bodies: BodiesConfig{
			Count:       DefaultBodies,
			Radius:      0.4,
			Restitution: 0.6,
			SpawnHeight: 4.0,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
