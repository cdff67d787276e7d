package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/plasmalab/tokasim/internal/control"
	"github.com/plasmalab/tokasim/internal/device"
	"github.com/plasmalab/tokasim/internal/engine"
	"github.com/plasmalab/tokasim/internal/plasma"
	"github.com/plasmalab/tokasim/internal/safety"
	"github.com/plasmalab/tokasim/internal/shot"
)

func testSetup() Setup {
	return func() (*engine.Engine, *plasma.State, *plasma.Actuators, shot.Controller, *safety.Monitor) {
		dev := device.Default()
		eng := engine.New(dev, 1)
		s := &plasma.State{
			PlasmaCurrent:   2.0,
			RadialPosition:  dev.MajorRadius,
			Elongation:      1.8,
			Triangularity:   0.4,
			TemperatureCore: 15.0,
			TemperatureEdge: 1.5,
			DensityCore:     10.0,
			DensityEdge:     3.0,
			StoredEnergy:    8.3,
		}
		act := plasma.NewActuators(dev)
		act.PFCoils[0] = 20.0
		act.FuelRate = 2.3e20
		return eng, s, act, nil, safety.NewMonitor(dev)
	}
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	updated, _ := m.Update(TickMsg(time.Now()))
	next, ok := updated.(Model)
	if !ok {
		t.Fatal("update should return the dashboard model")
	}
	return next
}

func key(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatal("update should return the dashboard model")
	}
	return next
}

func TestModelStepsOnTick(t *testing.T) {
	m := NewModel(testSetup(), nil, 0.001)

	m = tick(t, m)
	if m.act.Iteration != uint64(m.stepsPerTick) {
		t.Errorf("expected %d steps after one tick, got %d", m.stepsPerTick, m.act.Iteration)
	}
	if m.act.History.Len() != m.stepsPerTick {
		t.Errorf("expected history to record every step, got %d", m.act.History.Len())
	}
}

func TestModelPauseStopsStepping(t *testing.T) {
	m := NewModel(testSetup(), nil, 0.001)

	m = key(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = tick(t, m)
	if m.act.Iteration != 0 {
		t.Errorf("paused shot should not step, got %d iterations", m.act.Iteration)
	}

	m = key(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = tick(t, m)
	if m.act.Iteration == 0 {
		t.Error("resumed shot should step again")
	}
}

func TestModelQuitKey(t *testing.T) {
	m := NewModel(testSetup(), nil, 0.001)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected quit message from q key")
	}
}

func TestModelResetRestoresShot(t *testing.T) {
	m := NewModel(testSetup(), nil, 0.001)

	m = tick(t, m)
	m = key(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if m.act.Iteration != 0 {
		t.Errorf("reset should rebuild the shot, got %d iterations", m.act.Iteration)
	}
	if !m.running {
		t.Error("reset shot should be running")
	}
}

func TestModelParamTuning(t *testing.T) {
	pid := control.NewVerticalPID(1.0, 0.0, 0.0)
	m := NewModel(testSetup(), pid, 0.001)

	// sorted keys: Kd, Ki, Kp, Target
	m = key(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = key(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = key(t, m, tea.KeyMsg{Type: tea.KeyUp})

	if pid.Kp != 1.05 {
		t.Errorf("expected Kp raised to 1.05, got %f", pid.Kp)
	}
}

func TestViewShowsChannels(t *testing.T) {
	m := NewModel(testSetup(), nil, 0.001)
	m = tick(t, m)

	view := m.View()
	for _, want := range []string{"TOKASIM", "q95", "Ip (MA)", "W stored", "RUNNING"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
