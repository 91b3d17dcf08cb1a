// Package ws streams engine frames to websocket clients and applies
// their emotion and quality commands between ticks.
package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/san-kum/motionlab/internal/anim"
	"github.com/san-kum/motionlab/internal/engine"
	"github.com/san-kum/motionlab/internal/particles"
	"github.com/san-kum/motionlab/internal/quality"
	"github.com/san-kum/motionlab/internal/scene"
)

const commandBuffer = 64

type pendingCommand struct {
	cmd    Command
	client *SafeWriter
}

// Server owns an engine and fans its frames out to connected clients.
// The simulation loop is the only goroutine touching the engine;
// commands from read loops are queued and applied between ticks.
type Server struct {
	log      *zap.Logger
	eng      *engine.Engine
	dt       float64
	upgrader websocket.Upgrader

	commands chan pendingCommand
	paused   bool

	mu      sync.RWMutex
	clients map[*SafeWriter]struct{}

	onStats func(engine.Stats)
}

func NewServer(log *zap.Logger, eng *engine.Engine, dt float64) *Server {
	if dt <= 0 {
		dt = 1.0 / 60.0
	}
	return &Server{
		log: log,
		eng: eng,
		dt:  dt,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		commands: make(chan pendingCommand, commandBuffer),
		clients:  make(map[*SafeWriter]struct{}),
	}
}

// OnStats registers an observer called once per tick, after Update.
func (s *Server) OnStats(fn func(engine.Stats)) { s.onStats = fn }

// ClientCount reports the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Run drives the engine at the configured rate until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Duration(float64(time.Second) * s.dt))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.closeAll()
			return ctx.Err()
		case pc := <-s.commands:
			s.apply(pc)
		case <-ticker.C:
			s.drainCommands()
			if s.paused {
				continue
			}
			st := s.eng.Update(s.dt)
			if s.onStats != nil {
				s.onStats(st)
			}
			s.broadcast(s.frame(st))
		}
	}
}

func (s *Server) drainCommands() {
	for {
		select {
		case pc := <-s.commands:
			s.apply(pc)
		default:
			return
		}
	}
}

func (s *Server) apply(pc pendingCommand) {
	ack := AckMessage{Type: "ack", Cmd: pc.cmd.Type}
	switch pc.cmd.Type {
	case "emotion":
		if err := s.eng.SetEmotionalState(anim.Emotion(pc.cmd.Emotion), pc.cmd.Intensity); err != nil {
			ack.Error = err.Error()
		}
	case "quality":
		s.eng.SetQuality(quality.Level(pc.cmd.Level))
	case "pause":
		s.paused = pc.cmd.Paused
	default:
		ack.Error = "unknown command type"
	}
	if pc.client != nil {
		if err := pc.client.WriteJSON(ack); err != nil {
			s.log.Debug("ack write failed", zap.Error(err))
		}
	}
}

func (s *Server) frame(st engine.Stats) FrameMessage {
	msg := FrameMessage{
		Type:    "frame",
		Tick:    st.Tick,
		SimTime: st.SimTime,
		StepMs:  st.StepMs,
		Level:   int(st.Level),
		Emotion: string(s.eng.Generator().Emotion()),
	}

	for _, b := range s.eng.World().Bodies() {
		msg.Bodies = append(msg.Bodies, BodyState{
			X: b.Position.X(), Y: b.Position.Y(), Z: b.Position.Z(),
			Radius: b.Radius,
			Asleep: b.Sleeping,
		})
	}

	s.eng.Stage().Each(func(p scene.Primitive) bool {
		if part, ok := p.(*particles.Particle); ok {
			msg.Particles = append(msg.Particles, ParticleState{
				X: part.Position.X(), Y: part.Position.Y(), Z: part.Position.Z(),
				Size:    part.Size,
				Opacity: part.Opacity,
			})
		}
		return true
	})

	return msg
}

func (s *Server) broadcast(msg FrameMessage) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for c := range s.clients {
		if err := c.WriteJSON(msg); err != nil {
			s.log.Debug("frame write failed, dropping client", zap.Error(err))
			go s.remove(c)
		}
	}
}

func (s *Server) remove(c *SafeWriter) {
	s.mu.Lock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		c.Close()
	}
	s.mu.Unlock()
}

func (s *Server) closeAll() {
	s.mu.Lock()
	for c := range s.clients {
		c.Close()
		delete(s.clients, c)
	}
	s.mu.Unlock()
}

// HandleWS upgrades the request and runs the client's read loop.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	client := NewSafeWriter(conn)

	s.mu.Lock()
	s.clients[client] = struct{}{}
	s.mu.Unlock()
	s.log.Info("client connected", zap.String("remote", conn.RemoteAddr().String()))

	defer func() {
		s.remove(client)
		s.log.Info("client disconnected", zap.String("remote", conn.RemoteAddr().String()))
	}()

	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug("read error", zap.Error(err))
			}
			return
		}
		select {
		case s.commands <- pendingCommand{cmd: cmd, client: client}:
		default:
			s.log.Warn("command queue full, dropping", zap.String("type", cmd.Type))
		}
	}
}
