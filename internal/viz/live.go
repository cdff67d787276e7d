package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/plasmalab/tokasim/internal/control"
	"github.com/plasmalab/tokasim/internal/engine"
	"github.com/plasmalab/tokasim/internal/plasma"
	"github.com/plasmalab/tokasim/internal/safety"
	"github.com/plasmalab/tokasim/internal/shot"
)

const (
	framesPerSecond = 30
	chartWidth      = 54
	chartHeight     = 4
)

var (
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	alertStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(0, 1)
	chartsStyle      = lipgloss.NewStyle().Padding(1, 2)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(44)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Setup builds a fresh shot for the dashboard. Reset calls it again, so
// every run starts from the same programmed conditions.
type Setup func() (*engine.Engine, *plasma.State, *plasma.Actuators, shot.Controller, *safety.Monitor)

// Model drives a live shot inside the terminal. Each animation tick
// advances the engine by enough steps to track wall-clock time.
type Model struct {
	build Setup

	eng  *engine.Engine
	s    *plasma.State
	act  *plasma.Actuators
	ctrl shot.Controller
	mon  *safety.Monitor

	// pid, when set, is exposed for live gain tuning.
	pid       *control.VerticalPID
	paramKeys []string
	selected  int

	dt           float64
	stepsPerTick int
	running      bool
	diverged     bool
	showHelp     bool
}

func NewModel(build Setup, pid *control.VerticalPID, dt float64) Model {
	eng, s, act, ctrl, mon := build()

	steps := int(1.0/(framesPerSecond*dt) + 0.5)
	if steps < 1 {
		steps = 1
	}

	var keys []string
	if pid != nil {
		for k := range pid.GetParams() {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}

	return Model{
		build:        build,
		eng:          eng,
		s:            s,
		act:          act,
		ctrl:         ctrl,
		mon:          mon,
		pid:          pid,
		paramKeys:    keys,
		dt:           dt,
		stepsPerTick: steps,
		running:      true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/framesPerSecond, func(t time.Time) tea.Msg { return TickMsg(t) })
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
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && !m.diverged {
			for i := 0; i < m.stepsPerTick; i++ {
				m.step()
				if m.diverged {
					break
				}
			}
		}
		return m, tea.Tick(time.Second/framesPerSecond, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// step mirrors one runner iteration: control, advance, clock, history,
// safety checks.
func (m *Model) step() {
	if m.ctrl != nil {
		m.ctrl.Apply(m.act, m.s, m.act.Time)
	}
	m.eng.Advance(m.s, m.act, m.dt)
	m.act.Time += m.dt
	m.act.Iteration++

	if !m.s.Finite() {
		m.diverged = true
		m.running = false
		return
	}

	if m.act.History != nil {
		m.act.History.Push(m.s.Snapshot())
	}
	if m.mon != nil {
		m.mon.Check(m.s, m.act)
	}
}

func (m *Model) reset() {
	m.eng, m.s, m.act, m.ctrl, m.mon = m.build()
	m.diverged = false
	m.running = true
	if m.pid != nil {
		m.pid.Reset()
	}
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if m.pid == nil || len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	m.pid.SetParam(key, m.pid.GetParams()[key]*factor)
}

func (m Model) status() string {
	switch {
	case m.diverged:
		return alertStyle.Render("DIVERGED")
	case m.act.MitigationActive:
		return alertStyle.Render(fmt.Sprintf("MITIGATION (disrupted t=%.3fs)", m.act.DisruptionTime))
	case m.act.DisruptionDetected:
		return alertStyle.Render(fmt.Sprintf("DISRUPTED t=%.3fs", m.act.DisruptionTime))
	case !m.running:
		return statusStyle.Render("PAUSED")
	}
	return statusStyle.Render("RUNNING")
}

func (m Model) chart(field int, caption string) string {
	if m.act.History == nil || m.act.History.Len() < 2 {
		return ""
	}
	data := m.act.History.Channel(field)
	plot := asciigraph.Plot(data,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Caption(caption),
	)
	return graphStyle.Render(plot) + "\n"
}

func (m Model) View() string {
	var charts strings.Builder
	charts.WriteString(m.chart(0, "Ip (MA)"))
	charts.WriteString("\n")
	charts.WriteString(m.chart(8, "W (MJ)"))
	charts.WriteString("\n")
	charts.WriteString(m.chart(7, "MHD"))
	charts.WriteString("\n")
	charts.WriteString(m.chart(4, "z (m)"))

	var s strings.Builder
	s.WriteString(headerStyle.Render("TOKASIM  "+strings.ToUpper(m.act.Phase.String())) + "\n")
	s.WriteString(m.status() + "\n\n")

	row := func(label, format string, v float64) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(fmt.Sprintf(format, v)) + "\n")
	}
	row("Time", "%.3f s", m.act.Time)
	row("Current", "%.3f MA", m.s.PlasmaCurrent)
	row("q95", "%.2f", m.s.Q95)
	row("beta_N", "%.2f", m.s.BetaN)
	row("T core", "%.2f keV", m.s.TemperatureCore)
	row("n core", "%.2f e19", m.s.DensityCore)
	row("W stored", "%.2f MJ", m.s.StoredEnergy)
	row("MHD", "%.3f", m.s.MHDActivity)
	row("z", "%+.4f m", m.s.VerticalPosition)
	row("Heating", "%.1f MW", m.act.TotalHeatingPower())

	if m.mon != nil {
		flags := m.mon.Evaluate(m.s)
		if flags.Any() {
			s.WriteString("\n" + alertStyle.Render("ALERTS") + "\n")
			for _, a := range flagLines(flags) {
				s.WriteString(alertStyle.Render("  "+a) + "\n")
			}
		}
	}

	s.WriteString("\nVERTICAL CONTROL\n")
	if m.pid != nil {
		params := m.pid.GetParams()
		for i, k := range m.paramKeys {
			line := fmt.Sprintf("%-8s %.4f", k, params[k])
			if i == m.selected {
				s.WriteString(activeParamStyle.Render("> "+line) + "\n")
			} else {
				s.WriteString("  " + labelStyle.Render(line) + "\n")
			}
		}
	} else {
		s.WriteString(labelStyle.Render("  (open loop)") + "\n")
	}

	s.WriteString(helpStyle.Render("\nSP:Pause R:Reset Q:Quit\nTab:Select ↑↓:Tune ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		chartsStyle.Render(charts.String()),
		statsStyle.Render(s.String()),
	)
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

func flagLines(f safety.Flags) []string {
	var lines []string
	if f.LowSafetyFactor {
		lines = append(lines, "low edge safety factor")
	}
	if f.BetaLimit {
		lines = append(lines, "beta limit exceeded")
	}
	if f.VerticalDisplacement {
		lines = append(lines, "vertical displacement")
	}
	if f.DensityLimit {
		lines = append(lines, "density limit exceeded")
	}
	return lines
}

const helpText = `
  Space    - Pause/Resume shot
  R        - Reset shot
  Q        - Quit
  Tab      - Select PID parameter
  Up/K     - Increase parameter (+5%)
  Down/J   - Decrease parameter (-5%)
  ?        - Toggle this help
`
