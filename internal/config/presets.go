package config

// Presets are curated scene variants, keyed by scene then preset name.
var Presets = map[string]map[string]*Config{
	"companion": {
		"idle": {
			Scene: "companion", Emotion: "neutral", Intensity: 0.4,
			Dt: DefaultDt, Duration: 20.0,
		},
		"joyful": {
			Scene: "companion", Emotion: "joy", Intensity: 0.9,
			Dt: DefaultDt, Duration: 20.0,
			Emitter: EmitterConfig{Enabled: true, Shape: "sphere", Rate: 60,
				Radius: 0.4, Speed: 2.5, LifetimeMin: 0.8, LifetimeMax: 1.6, Physics: true},
		},
		"contemplative": {
			Scene: "companion", Emotion: "reflective", Intensity: 0.6,
			Dt: DefaultDt, Duration: 30.0,
		},
	},
	"fountain": {
		"gentle": {
			Scene: "fountain", Emotion: "calm", Intensity: 0.5,
			Dt: DefaultDt, Duration: 15.0,
			Emitter: EmitterConfig{Enabled: true, Shape: "disc", Rate: 30,
				Radius: 0.3, Speed: 4, Spread: 0.2,
				LifetimeMin: 1.5, LifetimeMax: 3, Physics: true},
			Physics: PhysicsConfig{GravityY: -9.8, Floor: true},
		},
		"burst": {
			Scene: "fountain", Emotion: "excited", Intensity: 1.0,
			Dt: DefaultDt, Duration: 10.0,
			Emitter: EmitterConfig{Enabled: true, Shape: "point", Rate: 120,
				Speed: 7, Spread: 0.5, LifetimeMin: 0.5, LifetimeMax: 1.2,
				Physics: true, Wiggle: 1.5},
			Physics: PhysicsConfig{GravityY: -9.8, Floor: true},
		},
	},
	"drape": {
		"slow": {
			Scene: "drape", Emotion: "calm", Intensity: 0.3,
			Dt: DefaultDt, Duration: 12.0,
			Cloth:   ClothConfig{Enabled: true, Cols: 10, Rows: 10, Spacing: 0.2},
			Physics: PhysicsConfig{GravityY: -4.0, Floor: false},
		},
		"windy": {
			Scene: "drape", Emotion: "curious", Intensity: 0.7,
			Dt: DefaultDt, Duration: 20.0,
			Cloth:   ClothConfig{Enabled: true, Cols: 12, Rows: 8, Spacing: 0.22},
			Physics: PhysicsConfig{GravityY: -9.8, VortexStrength: 2.5},
		},
	},
	"ballpit": {
		"drop": {
			Scene: "ballpit", Emotion: "joy", Intensity: 0.8,
			Dt: DefaultDt, Duration: 12.0,
			Bodies:  BodiesConfig{Count: 16, Radius: 0.35, Restitution: 0.7, SpawnHeight: 5},
			Physics: PhysicsConfig{GravityY: -9.8, Floor: true},
		},
		"bouncy": {
			Scene: "ballpit", Emotion: "excited", Intensity: 1.0,
			Dt: DefaultDt, Duration: 15.0,
			Bodies:  BodiesConfig{Count: 24, Radius: 0.3, Restitution: 0.92, SpawnHeight: 6},
			Physics: PhysicsConfig{GravityY: -9.8, Floor: true},
		},
		"dead": {
			Scene: "ballpit", Emotion: "neutral", Intensity: 0.2,
			Dt: DefaultDt, Duration: 8.0,
			Bodies:  BodiesConfig{Count: 12, Radius: 0.4, Restitution: 0.05, SpawnHeight: 3},
			Physics: PhysicsConfig{GravityY: -9.8, Floor: true},
		},
	},
	"storm": {
		"vortex": {
			Scene: "storm", Emotion: "excited", Intensity: 0.9,
			Dt: DefaultDt, Duration: 25.0,
			Emitter: EmitterConfig{Enabled: true, Shape: "box", Rate: 80,
				Speed: 1, LifetimeMin: 2, LifetimeMax: 4, Physics: true, Wiggle: 2},
			Bodies:  BodiesConfig{Count: 6, Radius: 0.5, Restitution: 0.5, SpawnHeight: 2},
			Physics: PhysicsConfig{GravityY: -2.0, VortexStrength: 5.0, Drag: 0.4},
		},
	},
}

func GetPreset(sceneName, preset string) *Config {
	scenePresets, ok := Presets[sceneName]
	if !ok {
		return nil
	}
	cfg, ok := scenePresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(sceneName string) []string {
	scenePresets, ok := Presets[sceneName]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenePresets))
	for name := range scenePresets {
		names = append(names, name)
	}
	return names
}

// Scenes lists every scene that has at least one preset.
func Scenes() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
