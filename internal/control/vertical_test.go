package control

import (
	"math"
	"testing"

	"github.com/plasmalab/tokasim/internal/device"
	"github.com/plasmalab/tokasim/internal/engine"
	"github.com/plasmalab/tokasim/internal/plasma"
)

func displacedState(dev device.Params, z float64) *plasma.State {
	return &plasma.State{
		PlasmaCurrent:    2.0,
		RadialPosition:   dev.MajorRadius,
		VerticalPosition: z,
		Elongation:       1.8,
		Triangularity:    0.4,
		TemperatureCore:  15.0,
		TemperatureEdge:  1.5,
		DensityCore:      10.0,
		DensityEdge:      3.0,
		StoredEnergy:     8.3,
	}
}

func TestVerticalPIDPushesBack(t *testing.T) {
	dev := device.Default()
	pid := NewVerticalPID(1.0, 0.0, 0.0)
	s := displacedState(dev, 0.05)
	act := plasma.NewActuators(dev)

	pid.Apply(act, s, 0.0)

	for i, c := range act.VerticalCoils {
		if c >= 0 {
			t.Errorf("coil %d: expected negative command for upward displacement, got %f", i, c)
		}
		if c != act.VerticalCoils[0] {
			t.Errorf("coil %d: command should match coil 0", i)
		}
	}
	if math.Abs(act.VerticalCoils[0]-(-0.05)) > 1e-12 {
		t.Errorf("first command should be Kp*err = -0.05, got %f", act.VerticalCoils[0])
	}
}

func TestVerticalPIDDerivativeTerm(t *testing.T) {
	dev := device.Default()
	pid := NewVerticalPID(0.0, 0.0, 1.0)
	act := plasma.NewActuators(dev)

	s := displacedState(dev, 0.05)
	pid.Apply(act, s, 0.0)

	s.VerticalPosition = 0.06
	pid.Apply(act, s, 0.001)

	// err moved from -0.05 to -0.06 over 1 ms
	want := -10.0
	if math.Abs(act.VerticalCoils[0]-want) > 1e-9 {
		t.Errorf("expected derivative command %f, got %f", want, act.VerticalCoils[0])
	}
}

func TestVerticalPIDReset(t *testing.T) {
	dev := device.Default()
	pid := NewVerticalPID(2.0, 1.0, 1.0)
	act := plasma.NewActuators(dev)
	s := displacedState(dev, 0.05)

	pid.Apply(act, s, 0.0)
	pid.Apply(act, s, 0.001)
	pid.Reset()

	pid.Apply(act, s, 0.002)
	if math.Abs(act.VerticalCoils[0]-(-0.1)) > 1e-12 {
		t.Errorf("after reset expected pure proportional command -0.1, got %f", act.VerticalCoils[0])
	}
}

func TestVerticalPIDHoldsColumn(t *testing.T) {
	dev := device.Default()
	eng := engine.New(dev, 1)
	pid := NewVerticalPID(0.5, 0.0, 0.0)
	s := displacedState(dev, 0.05)
	act := plasma.NewActuators(dev)

	dt := 0.001
	time := 0.0
	for i := 0; i < 200; i++ {
		pid.Apply(act, s, time)
		eng.Advance(s, act, dt)
		time += dt
	}

	if math.Abs(s.VerticalPosition) > 1e-3 {
		t.Errorf("feedback should recenter the column, |z| = %f", math.Abs(s.VerticalPosition))
	}
	if math.Abs(s.VerticalPosition) > dev.VerticalDisplacementMax {
		t.Error("column should stay inside the displacement limit")
	}
}

func TestVerticalPIDParams(t *testing.T) {
	pid := NewVerticalPID(1.0, 2.0, 3.0)

	params := pid.GetParams()
	if params["Kp"] != 1.0 || params["Ki"] != 2.0 || params["Kd"] != 3.0 {
		t.Errorf("unexpected params %v", params)
	}

	pid.SetParam("Kp", 5.0)
	if pid.Kp != 5.0 {
		t.Errorf("SetParam should update Kp, got %f", pid.Kp)
	}
	pid.SetParam("Target", 0.01)
	if pid.Target != 0.01 {
		t.Errorf("SetParam should update Target, got %f", pid.Target)
	}
}
