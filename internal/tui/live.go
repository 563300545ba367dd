// Package tui is the interactive terminal session: a live drum view fed by
// the simulation, an impact log, and keyboard control over every knob the
// engine exposes.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/soundphys/tumbler/internal/audio"
	"github.com/soundphys/tumbler/internal/config"
	"github.com/soundphys/tumbler/internal/drum"
	"github.com/soundphys/tumbler/internal/notes"
	"github.com/soundphys/tumbler/internal/viz"
)

const (
	canvasCols = 44
	canvasRows = 22

	maxLogRows     = 8
	maxSpeedPoints = 60

	flashDuration = 120 * time.Millisecond
)

type tickMsg time.Time

type impactRow struct {
	at      time.Time
	surface drum.Surface
	speed   float64
	note    int
}

// Model drives the live session. All simulation access happens inside
// Update, on bubbletea's single event loop.
type Model struct {
	sim    *drum.Simulation
	mapper *notes.Mapper
	synth  *audio.Synth // nil when audio is unavailable
	cfg    *config.Config

	canvas *viz.Canvas

	paused   bool
	lastTick time.Time
	simTime  float64

	log       []impactRow
	speeds    []float64
	flashID   string
	flashTill time.Time

	ballNames []string
	ballIdx   int

	width, height int
	err           error
}

func NewModel(cfg *config.Config, sim *drum.Simulation, mapper *notes.Mapper, synth *audio.Synth) *Model {
	m := &Model{
		sim:       sim,
		mapper:    mapper,
		synth:     synth,
		cfg:       cfg,
		canvas:    viz.NewCanvas(canvasCols, canvasRows),
		ballNames: drum.ListBallPresets(),
	}
	for i, name := range m.ballNames {
		if name == cfg.Ball {
			m.ballIdx = i
		}
	}

	sim.OnCollision(m.onCollision)
	return m
}

func (m *Model) onCollision(sf drum.Surface, speed float64) {
	now := time.Now()
	note, _ := m.mapper.Note(sf.ID)

	m.log = append(m.log, impactRow{at: now, surface: sf, speed: speed, note: note})
	if len(m.log) > maxLogRows {
		m.log = m.log[len(m.log)-maxLogRows:]
	}
	m.speeds = append(m.speeds, speed)
	if len(m.speeds) > maxSpeedPoints {
		m.speeds = m.speeds[len(m.speeds)-maxSpeedPoints:]
	}
	m.flashID = sf.ID
	m.flashTill = now.Add(flashDuration)

	if m.synth != nil {
		m.synth.Trigger(notes.Frequency(note), audio.ImpactAmp(speed))
	}
}

func (m *Model) Init() tea.Cmd {
	m.lastTick = time.Now()
	return tick(m.cfg.FrameRate)
}

func tick(frameRate int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(frameRate), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		dt := now.Sub(m.lastTick).Seconds()
		m.lastTick = now
		if !m.paused {
			m.sim.Advance(dt)
			m.simTime += dt
		}
		if now.After(m.flashTill) {
			m.flashID = ""
		}
		return m, tick(m.cfg.FrameRate)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := m.sim.Toggles()

	switch msg.String() {
	case "q", "ctrl+c":
		if m.synth != nil {
			m.synth.Stop()
		}
		return m, tea.Quit

	case " ":
		m.paused = !m.paused

	case "r":
		m.sim.Reset()
		m.simTime = 0
		m.log = nil
		m.speeds = nil

	case "up":
		m.adjustDrum(m.cfg.RPM+5, m.cfg.Vanes)
	case "down":
		m.adjustDrum(max(0, m.cfg.RPM-5), m.cfg.Vanes)
	case "right":
		m.adjustDrum(m.cfg.RPM, m.cfg.Vanes+1)
	case "left":
		if m.cfg.Vanes > 1 {
			m.adjustDrum(m.cfg.RPM, m.cfg.Vanes-1)
		}

	case "b":
		m.ballIdx = (m.ballIdx + 1) % len(m.ballNames)
		m.err = m.sim.ApplyBallPreset(m.ballNames[m.ballIdx])

	case "g":
		if t.Gravity == drum.GravityEarth {
			t.Gravity = drum.GravityMoon
		} else {
			t.Gravity = drum.GravityEarth
		}
		m.err = m.sim.SetToggles(t)
	case "c":
		t.Coriolis = !t.Coriolis
		m.err = m.sim.SetToggles(t)
	case "s":
		t.CoriolisSign = -t.CoriolisSign
		m.err = m.sim.SetToggles(t)
	case "f":
		t.Centrifugal = !t.Centrifugal
		m.err = m.sim.SetToggles(t)
	case "d":
		t.AirDrag = !t.AirDrag
		m.err = m.sim.SetToggles(t)
	case "m":
		if t.Drag == drum.DragLinear {
			t.Drag = drum.DragQuadratic
		} else {
			t.Drag = drum.DragLinear
		}
		m.err = m.sim.SetToggles(t)
	case "l":
		m.cfg.LintTrap = !m.cfg.LintTrap
		m.sim.SetLintTrap(m.cfg.LintTrap, m.cfg.LintThreshold)
	}
	return m, nil
}

// adjustDrum applies new drum parameters and, on success, rebuilds the
// note mapping: the old surface IDs die with the regeneration.
func (m *Model) adjustDrum(rpm float64, vanes int) {
	if err := m.sim.SetParameters(rpm, m.cfg.DrumCm, vanes, m.cfg.VaneHeightPct); err != nil {
		m.err = err
		return
	}
	m.cfg.RPM = rpm
	m.cfg.Vanes = vanes
	m.mapper.Rebuild(m.sim.Surfaces())
	m.flashID = ""
	m.err = nil
}

func (m *Model) View() string {
	viz.DrawDrum(m.canvas, m.sim, m.flashID)

	left := viz.Panel.Render(m.canvas.String())
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.statusView(),
		m.logView(),
		m.graphView(),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	help := viz.KeyHint.Render(
		"space pause · r reset · ↑↓ rpm · ←→ vanes · b ball · g gravity · f centrifugal · c coriolis · s sign · d drag · m model · l lint trap · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, body, help)
}

func (m *Model) statusView() string {
	t := m.sim.Toggles()
	dbg := m.sim.Debug()

	status := viz.StatusRunning.Render("● running")
	if m.paused {
		status = viz.StatusPaused.Render("◌ paused")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %s\n", viz.Title.Render("tumbler"), status)
	fmt.Fprintf(&sb, "%s %s  %s %s\n",
		viz.Label.Render("rpm"), viz.Value.Render(fmt.Sprintf("%.0f", m.cfg.RPM)),
		viz.Label.Render("vanes"), viz.Value.Render(fmt.Sprintf("%d", m.cfg.Vanes)))
	fmt.Fprintf(&sb, "%s %s  %s %s\n",
		viz.Label.Render("ball"), viz.Value.Render(m.ballNames[m.ballIdx]),
		viz.Label.Render("gravity"), viz.Value.Render(t.Gravity.String()))
	fmt.Fprintf(&sb, "%s %s\n", viz.Label.Render("forces"), viz.Value.Render(forceLine(t)))
	fmt.Fprintf(&sb, "%s |v|=%.2f r=%.2f cf=%.2f co=%.2f",
		viz.Label.Render("state"), dbg.Speed, dbg.RadialDistance, dbg.CentrifugalMag, dbg.CoriolisMag)
	if m.err != nil {
		fmt.Fprintf(&sb, "\n%s", viz.ImpactLoud.Render(m.err.Error()))
	}
	return viz.Panel.Render(sb.String())
}

func forceLine(t drum.ForceToggles) string {
	var parts []string
	if t.Centrifugal {
		parts = append(parts, "centrifugal")
	}
	if t.Coriolis {
		parts = append(parts, fmt.Sprintf("coriolis(%+.0f)", t.CoriolisSign))
	}
	if t.AirDrag {
		parts = append(parts, "drag:"+t.Drag.String())
	}
	if len(parts) == 0 {
		return "gravity only"
	}
	return strings.Join(parts, " ")
}

func (m *Model) logView() string {
	if len(m.log) == 0 {
		return viz.Panel.Render(viz.Subtle.Render("no impacts yet"))
	}
	var sb strings.Builder
	for i := len(m.log) - 1; i >= 0; i-- {
		row := m.log[i]
		style := viz.ImpactSoft
		if row.speed > 1.5 {
			style = viz.ImpactLoud
		}
		line := fmt.Sprintf("%-18s %5.2f m/s  note %3d", row.surface.ID, row.speed, row.note)
		sb.WriteString(viz.SurfaceColor(row.surface.ColorTag).Render("▌") + style.Render(line))
		if i > 0 {
			sb.WriteByte('\n')
		}
	}
	return viz.Panel.Render(sb.String())
}

func (m *Model) graphView() string {
	if len(m.speeds) < 2 {
		return ""
	}
	graph := asciigraph.Plot(m.speeds,
		asciigraph.Height(5),
		asciigraph.Width(40),
		asciigraph.Caption("impact speed, m/s"))
	return viz.Panel.Render(graph)
}

// Run starts the live session and blocks until quit.
func Run(cfg *config.Config, sim *drum.Simulation, mapper *notes.Mapper, synth *audio.Synth) error {
	p := tea.NewProgram(NewModel(cfg, sim, mapper, synth))
	_, err := p.Run()
	return err
}
