package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/motionlab/internal/anim"
	"github.com/san-kum/motionlab/internal/engine"
	"github.com/san-kum/motionlab/internal/quality"
)

const (
	liveWidth       = 72
	liveHeight      = 22
	historyCapacity = 300
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(11)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model is the live TUI: an engine stepped at 60fps with interactive
// emotion, intensity, and quality controls.
type Model struct {
	build     func() (*engine.Engine, error)
	eng       *engine.Engine
	view      *View
	sceneName string

	running   bool
	dt        float64
	emotion   int
	intensity float64

	msHistory []float64
	lastErr   error
}

// NewModel wraps a fresh engine plus its rebuild function for resets.
func NewModel(build func() (*engine.Engine, error), sceneName string, dt float64) (Model, error) {
	eng, err := build()
	if err != nil {
		return Model{}, err
	}
	return Model{
		build:     build,
		eng:       eng,
		view:      NewView(liveWidth, liveHeight, 7),
		sceneName: sceneName,
		running:   true,
		dt:        dt,
		intensity: eng.Generator().Intensity(),
		msHistory: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "e":
			m.cycleEmotion(1)
		case "E":
			m.cycleEmotion(-1)
		case "up", "k":
			m.adjustIntensity(0.1)
		case "down", "j":
			m.adjustIntensity(-0.1)
		case "0", "1", "2", "3", "4":
			m.eng.SetQuality(quality.Level(msg.String()[0] - '0'))
		}
	case TickMsg:
		if m.running {
			st := m.eng.Update(m.dt)
			m.msHistory = append(m.msHistory, st.StepMs)
			if len(m.msHistory) > historyCapacity {
				m.msHistory = m.msHistory[1:]
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) reset() {
	eng, err := m.build()
	if err != nil {
		m.lastErr = err
		return
	}
	m.eng = eng
	m.msHistory = m.msHistory[:0]
	m.intensity = eng.Generator().Intensity()
}

func (m *Model) cycleEmotion(dir int) {
	all := anim.Emotions()
	m.emotion = (m.emotion + dir + len(all)) % len(all)
	if err := m.eng.SetEmotionalState(all[m.emotion], m.intensity); err != nil {
		m.lastErr = err
	}
}

func (m *Model) adjustIntensity(delta float64) {
	m.intensity += delta
	if m.intensity < 0 {
		m.intensity = 0
	}
	if m.intensity > 1 {
		m.intensity = 1
	}
	if err := m.eng.SetEmotionalState(m.eng.Generator().Emotion(), m.intensity); err != nil {
		m.lastErr = err
	}
}

func (m Model) View() string {
	canvasView := canvasStyle.Render(m.view.Render(m.eng))

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.sceneName)) + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.msHistory) > 1 {
		chart := asciigraph.Plot(m.msHistory,
			asciigraph.Height(4), asciigraph.Width(28),
			asciigraph.Caption("step ms"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	w := m.eng.World()
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", w.Time())) + "\n")
	s.WriteString(labelStyle.Render("Emotion") + accentStyle.Render(string(m.eng.Generator().Emotion())) + "\n")
	s.WriteString(labelStyle.Render("Intensity") + valueStyle.Render(fmt.Sprintf("%.1f", m.eng.Generator().Intensity())) + "\n")
	s.WriteString(labelStyle.Render("Quality") + valueStyle.Render(fmt.Sprintf("L%d", m.eng.Governor().Level())) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d", len(w.Bodies()))) + "\n")
	s.WriteString(labelStyle.Render("Soft") + valueStyle.Render(fmt.Sprintf("%d", len(w.SoftBodies()))) + "\n")
	if m.lastErr != nil {
		s.WriteString("\n" + accentStyle.Render("err: "+m.lastErr.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render(
		"\n─────────────────────\nSP:Pause R:Reset Q:Quit\nE:Emotion ↑↓:Intensity 0-4:Quality"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
