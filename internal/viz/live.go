package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/grabsim/internal/pose"
	"github.com/san-kum/grabsim/internal/sim"
)

const (
	width           = 60
	height          = 20
	historyCapacity = 300
	trailCapacity   = 120

	// pixels per metre in the front view
	scale = 60.0
)

// outline is the object footprint drawn in its local XY plane.
var outline = []mgl64.Vec3{{-0.4, -0.04, 0}, {0.4, -0.04, 0}, {0.4, 0.04, 0}, {-0.4, 0.04, 0}}

type TickMsg time.Time

// Model steps one session per tick and renders it.
type Model struct {
	sim      *sim.Simulator
	scenario func() sim.Scenario
	cfg      sim.Config
	name     string

	session *sim.Session
	origin  pose.Pose
	canvas  *Canvas
	running bool
	err     error

	angles []float64
	trail  [][2]int
}

func NewModel(s *sim.Simulator, scenario func() sim.Scenario, cfg sim.Config) (Model, error) {
	m := Model{
		sim:      s,
		scenario: scenario,
		cfg:      cfg,
		canvas:   NewCanvas(width, height),
		running:  true,
	}
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) reset() error {
	sc := m.scenario()
	ss, err := m.sim.Start(sc, m.cfg)
	if err != nil {
		return err
	}
	m.name = sc.Name()
	m.session = ss
	m.origin = ss.Pose()
	m.err = nil
	m.angles = make([]float64, 0, historyCapacity)
	m.trail = make([][2]int, 0, trailCapacity)
	return nil
}

func (m Model) tick() tea.Cmd {
	interval := time.Duration(m.cfg.Dt * float64(time.Second))
	return tea.Tick(interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case ".":
			if !m.running {
				m.step()
			}
		case "r":
			if err := m.reset(); err != nil {
				m.err = err
			}
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// Finished reports whether the session ran to its end or failed.
func (m Model) Finished() bool { return m.err != nil || m.session.Done() }

func (m Model) Err() error { return m.err }

func (m Model) Time() float64 { return m.session.Time() }

func (m *Model) step() {
	if m.Finished() {
		return
	}
	p, err := m.session.Step()
	if err != nil {
		m.err = err
		return
	}
	m.angles = append(m.angles, pose.Angle(m.origin.Rotation, p.Rotation))
	if len(m.angles) > historyCapacity {
		m.angles = m.angles[1:]
	}
	x, y := m.project(p.Position)
	m.trail = append(m.trail, [2]int{x, y})
	if len(m.trail) > trailCapacity {
		m.trail = m.trail[1:]
	}
}

// project maps a world point to canvas sub-pixels, looking down -Z with the
// object's starting position at the centre.
func (m *Model) project(v mgl64.Vec3) (int, int) {
	w, h := m.canvas.Size()
	d := v.Sub(m.origin.Position)
	return w/2 + int(d.X()*scale), h/2 - int(d.Y()*scale)
}

func (m *Model) draw() {
	m.canvas.Clear()
	for _, pt := range m.trail {
		m.canvas.Set(pt[0], pt[1])
	}

	p := m.session.Pose()
	for i := range outline {
		x0, y0 := m.project(p.TransformPoint(outline[i]))
		x1, y1 := m.project(p.TransformPoint(outline[(i+1)%len(outline)]))
		m.canvas.Line(x0, y0, x1, y1)
	}
	for _, h := range m.session.Rig.Hands() {
		x, y := m.project(h.Pose().Position)
		m.canvas.Mark(x, y, 3)
	}
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return errorStyle.Render("ERROR " + m.err.Error())
	case m.session.Done():
		return pausedStyle.Render("DONE")
	case !m.running:
		return pausedStyle.Render("PAUSED")
	}
	return runningStyle.Render("RUNNING")
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	rig := m.session.Rig
	tracked := rig.Tracked()
	p := m.session.Pose()

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(m.status() + "\n\n")

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs / %.2fs", m.session.Time(), m.cfg.Duration))
	row("Object", tracked.Name)
	row("Holding", fmt.Sprintf("%d", rig.Holding(tracked.Name)))
	row("Height", fmt.Sprintf("%+.3fm", p.Position.Y()-m.origin.Position.Y()))
	if n := len(m.angles); n > 0 {
		row("Rotation", fmt.Sprintf("%.3f rad", m.angles[n-1]))
	}

	if c, err := rig.Manager.Context(tracked.Name); err == nil && len(c.Last.Weights) > 0 {
		s.WriteString("\nWEIGHTS\n")
		for i, w := range c.Last.Weights {
			s.WriteString(fmt.Sprintf("  #%d %s %.2f\n", i, weightBar(w, 12), w))
		}
	}

	if len(m.angles) > 1 {
		chart := asciigraph.Plot(m.angles, asciigraph.Height(5), asciigraph.Width(36), asciigraph.Caption("rotation (rad)"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause .:Step R:Restart Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// Run shows the model full screen until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
