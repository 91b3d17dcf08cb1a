package ws

// Command is a client request applied between simulation ticks.
type Command struct {
	Type      string  `json:"type"` // "emotion", "quality", "pause"
	Emotion   string  `json:"emotion,omitempty"`
	Intensity float64 `json:"intensity,omitempty"`
	Level     int     `json:"level,omitempty"`
	Paused    bool    `json:"paused,omitempty"`
}

// BodyState is one rigid body's pose in a frame broadcast.
type BodyState struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Radius float64 `json:"r"`
	Asleep bool    `json:"asleep,omitempty"`
}

// ParticleState is a particle's position plus visual scalars.
type ParticleState struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Z       float64 `json:"z"`
	Size    float64 `json:"size"`
	Opacity float64 `json:"opacity"`
}

// FrameMessage is broadcast to every client once per tick.
type FrameMessage struct {
	Type      string          `json:"type"` // always "frame"
	Tick      uint64          `json:"tick"`
	SimTime   float64         `json:"sim_time"`
	StepMs    float64         `json:"step_ms"`
	Level     int             `json:"level"`
	Emotion   string          `json:"emotion"`
	Bodies    []BodyState     `json:"bodies"`
	Particles []ParticleState `json:"particles"`
}

// AckMessage reports the result of a command back to its sender.
type AckMessage struct {
	Type  string `json:"type"` // always "ack"
	Cmd   string `json:"cmd"`
	Error string `json:"error,omitempty"`
}
