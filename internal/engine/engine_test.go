package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/plasmalab/tokasim/internal/device"
	"github.com/plasmalab/tokasim/internal/physics"
	"github.com/plasmalab/tokasim/internal/plasma"
)

func flatTopState(p device.Params) *plasma.State {
	return &plasma.State{
		PlasmaCurrent:   2.0,
		RadialPosition:  p.MajorRadius,
		Elongation:      1.8,
		Triangularity:   0.4,
		TemperatureCore: 15.0,
		DensityCore:     10.0,
		StoredEnergy:    8.3,
	}
}

// equilibriumDrive sets the PF coil voltage source and fueling that hold
// current and density constant for the given state.
func equilibriumDrive(act *plasma.Actuators, dev device.Params, s *plasma.State) {
	act.PFCoils[0] = 1.0e-6 * s.PlasmaCurrent * physics.AmpsPerMA / 0.1
	vol := physics.PlasmaVolume(dev, s.Elongation)
	act.FuelRate = s.DensityCore * physics.DensityScale * vol / 10.0
}

func TestAdvanceCurrentDecayWithoutDrive(t *testing.T) {
	dev := device.Default()
	e := New(dev, 1)
	s := flatTopState(dev)
	s.PlasmaCurrent = 15.0
	act := plasma.NewActuators(dev)

	e.Advance(s, act, 0.001)

	// dIp/dt = -R*Ip/L = -3e7 A/s at 15 MA, so 0.03 MA lost per ms.
	if math.Abs(s.PlasmaCurrent-14.97) > 1e-9 {
		t.Errorf("expected 14.97 MA after resistive decay, got %f", s.PlasmaCurrent)
	}
}

func TestAdvanceOpenLoopHeatedStep(t *testing.T) {
	dev := device.Default()
	e := New(dev, 1)
	s := &plasma.State{
		PlasmaCurrent:   15.0,
		RadialPosition:  dev.MajorRadius,
		Elongation:      1.7,
		TemperatureCore: 15.0,
		DensityCore:     1.0,
		StoredEnergy:    5.0,
	}
	act := plasma.NewActuators(dev)
	act.Heating[0] = plasma.HeatingSystem{Power: 10.0, Enabled: true}

	e.Advance(s, act, 0.001)

	// Open coils: only resistive decay acts on the current, well under 1%
	// in a millisecond. Heating (10 MW) beats the loss (5 MJ / 5 s).
	if math.Abs(s.PlasmaCurrent-15.0) > 0.15 {
		t.Errorf("expected current within 1%% of 15 MA, got %f", s.PlasmaCurrent)
	}
	if s.StoredEnergy <= 5.0 {
		t.Errorf("expected stored energy to rise under net heating, got %f", s.StoredEnergy)
	}
}

func TestAdvanceCurrentHeldByLoopVoltage(t *testing.T) {
	dev := device.Default()
	e := New(dev, 1)
	s := flatTopState(dev)
	act := plasma.NewActuators(dev)
	equilibriumDrive(act, dev, s)

	for i := 0; i < 100; i++ {
		e.Advance(s, act, 0.001)
		act.Time += 0.001
	}

	if math.Abs(s.PlasmaCurrent-2.0) > 1e-9 {
		t.Errorf("expected current held at 2.0 MA, got %f", s.PlasmaCurrent)
	}
}

func TestAdvanceEnergyEquilibrium(t *testing.T) {
	dev := device.Default()
	e := New(dev, 1)
	s := flatTopState(dev)
	act := plasma.NewActuators(dev)
	equilibriumDrive(act, dev, s)

	// Heating exactly balances the confinement loss W/tau.
	s.StoredEnergy = 50.0
	act.ConfinementTime = 5.0
	act.Heating[0] = plasma.HeatingSystem{Power: 10.0, Enabled: true}

	e.Advance(s, act, 0.01)

	if math.Abs(s.StoredEnergy-50.0) > 1e-9 {
		t.Errorf("expected stored energy held at 50 MJ, got %f", s.StoredEnergy)
	}
}

func TestAdvanceEnergyRelaxesTowardBalance(t *testing.T) {
	dev := device.Default()
	e := New(dev, 1)
	s := flatTopState(dev)
	act := plasma.NewActuators(dev)
	equilibriumDrive(act, dev, s)
	act.Heating[0] = plasma.HeatingSystem{Power: 10.0, Enabled: true}
	act.ConfinementTime = 5.0

	// W should relax toward P*tau = 50 MJ from below.
	s.StoredEnergy = 8.3
	for i := 0; i < 2000; i++ {
		e.Advance(s, act, 0.01)
		act.Time += 0.01
	}

	if s.StoredEnergy < 40.0 || s.StoredEnergy > 50.0 {
		t.Errorf("expected stored energy approaching 50 MJ, got %f", s.StoredEnergy)
	}
}

func TestAdvanceDisabledHeatingIgnored(t *testing.T) {
	dev := device.Default()
	e := New(dev, 1)
	s := flatTopState(dev)
	act := plasma.NewActuators(dev)
	act.Heating[0] = plasma.HeatingSystem{Power: 50.0, Enabled: false}
	act.Heating[1] = plasma.HeatingSystem{Power: 10.0, Enabled: true}

	w0 := s.StoredEnergy
	e.Advance(s, act, 0.01)

	// Only the enabled 10 MW contributes: dW = (10 - W/tau) * dt.
	expected := w0 + (10.0-w0/act.ConfinementTime)*0.01
	if math.Abs(s.StoredEnergy-expected) > 1e-12 {
		t.Errorf("expected stored energy %f, got %f", expected, s.StoredEnergy)
	}
}

func TestAdvanceTemperatureTracksEnergy(t *testing.T) {
	dev := device.Default()
	e := New(dev, 1)
	s := flatTopState(dev)
	act := plasma.NewActuators(dev)
	equilibriumDrive(act, dev, s)

	nBefore := s.DensityCore
	wBefore := s.StoredEnergy
	e.Advance(s, act, 0.01)

	// T = W / (1.5 n V e), with W for this step and the pre-step density.
	vol := physics.PlasmaVolume(dev, s.Elongation)
	wAfter := wBefore + (0.0-wBefore/act.ConfinementTime)*0.01
	expected := wAfter * physics.JoulesPerMJ /
		(1.5 * nBefore * physics.DensityScale * vol * physics.ElectronCharge * physics.EVPerKeV)

	if math.Abs(s.TemperatureCore-expected) > 1e-12 {
		t.Errorf("expected temperature %f, got %f", expected, s.TemperatureCore)
	}
}

func TestAdvanceDensityDecayAndRefuel(t *testing.T) {
	dev := device.Default()
	e := New(dev, 1)

	// Without fueling the density decays on the particle time.
	s := flatTopState(dev)
	act := plasma.NewActuators(dev)
	e.Advance(s, act, 0.01)
	if math.Abs(s.DensityCore-10.0*(1.0-0.01/10.0)) > 1e-9 {
		t.Errorf("expected density 9.99, got %f", s.DensityCore)
	}

	// Equilibrium fueling holds it.
	s2 := flatTopState(dev)
	act2 := plasma.NewActuators(dev)
	equilibriumDrive(act2, dev, s2)
	e.Advance(s2, act2, 0.01)
	if math.Abs(s2.DensityCore-10.0) > 1e-9 {
		t.Errorf("expected density held at 10.0, got %f", s2.DensityCore)
	}
}

func TestAdvanceVerticalUpdateRule(t *testing.T) {
	dev := device.Default()
	e := New(dev, 1)
	s := flatTopState(dev)
	s.VerticalPosition = 0.01
	act := plasma.NewActuators(dev)
	act.VerticalCoils[0] = 2.0e-5
	dt := 0.001

	// Reproduce the documented update: z += z*dt + 0.5*a*dt^2 with
	// a = (F - 0.1 z)/m evaluated on post-current, post-density values.
	sCopy := s.Clone()
	e.Advance(s, act, dt)

	vol := physics.PlasmaVolume(dev, sCopy.Elongation)
	ipAfter := s.PlasmaCurrent
	nAfter := s.DensityCore
	mass := nAfter * physics.DensityScale * vol * (physics.ProtonMass + physics.ElectronMass)
	force := act.VerticalCoils[0] * ipAfter * 0.1
	accel := (force - 0.1*sCopy.VerticalPosition) / mass
	expected := sCopy.VerticalPosition + sCopy.VerticalPosition*dt + 0.5*accel*dt*dt

	if math.Abs(s.VerticalPosition-expected) > 1e-12 {
		t.Errorf("expected vertical position %e, got %e", expected, s.VerticalPosition)
	}
}

func TestAdvanceRecomputesStabilityFigures(t *testing.T) {
	dev := device.Default()
	e := New(dev, 1)
	s := flatTopState(dev)
	act := plasma.NewActuators(dev)
	equilibriumDrive(act, dev, s)

	e.Advance(s, act, 0.001)

	if math.Abs(s.Q95-physics.SafetyFactor(dev, 0.95, s.PlasmaCurrent)) > 1e-12 {
		t.Errorf("q95 not consistent with kernel: %f", s.Q95)
	}
	if math.Abs(s.BetaN-physics.BetaNormalized(dev, s)) > 1e-12 {
		t.Errorf("betaN not consistent with kernel: %f", s.BetaN)
	}
}

func TestAdvanceMHDBaselineBounds(t *testing.T) {
	dev := device.Default()
	e := New(dev, 7)
	s := flatTopState(dev)
	act := plasma.NewActuators(dev)
	equilibriumDrive(act, dev, s)

	// Quiet flat-top: no penalty should fire, leaving baseline noise only.
	for i := 0; i < 200; i++ {
		e.Advance(s, act, 0.001)
		act.Time += 0.001
		if s.MHDActivity < -0.1-1e-9 || s.MHDActivity > 0.15+1e-9 {
			t.Fatalf("expected baseline MHD in [-0.1, 0.15], got %f at step %d", s.MHDActivity, i)
		}
	}
}

func TestAdvancePenalties(t *testing.T) {
	dev := device.Default()

	tests := []struct {
		name string
		prep func(*plasma.State, *plasma.Actuators)
		min  float64
		max  float64
	}{
		{
			// 15 MA puts q95 far below the floor; nothing else fires.
			name: "low q95",
			prep: func(s *plasma.State, act *plasma.Actuators) {
				s.PlasmaCurrent = 15.0
				act.PFCoils[0] = 1.0e-6 * 15.0 * physics.AmpsPerMA / 0.1
			},
			min: 0.4, max: 0.65,
		},
		{
			// High stored energy at 2 MA drives betaN over the limit
			// while q95 stays comfortable.
			name: "beta limit",
			prep: func(s *plasma.State, act *plasma.Actuators) {
				s.StoredEnergy = 100.0
				s.DensityCore = 30.0
			},
			min: 0.2, max: 0.45,
		},
		{
			// A displaced column beyond the VDE bound.
			name: "vertical displacement",
			prep: func(s *plasma.State, act *plasma.Actuators) {
				s.VerticalPosition = 0.2
			},
			min: 0.6, max: 0.85,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(dev, 3)
			s := flatTopState(dev)
			act := plasma.NewActuators(dev)
			equilibriumDrive(act, dev, s)
			tt.prep(s, act)

			e.Advance(s, act, 0.001)

			if s.MHDActivity < tt.min || s.MHDActivity > tt.max {
				t.Errorf("expected MHD in [%.2f, %.2f], got %f", tt.min, tt.max, s.MHDActivity)
			}
		})
	}
}

func TestAdvanceDeterministicBySeed(t *testing.T) {
	dev := device.Default()
	e1 := New(dev, 42)
	e2 := New(dev, 42)

	s1 := flatTopState(dev)
	s2 := flatTopState(dev)
	act1 := plasma.NewActuators(dev)
	act2 := plasma.NewActuators(dev)
	equilibriumDrive(act1, dev, s1)
	equilibriumDrive(act2, dev, s2)

	for i := 0; i < 500; i++ {
		e1.Advance(s1, act1, 0.001)
		e2.Advance(s2, act2, 0.001)
		act1.Time += 0.001
		act2.Time += 0.001
	}

	if *s1 != *s2 {
		t.Errorf("expected identical trajectories for equal seeds:\n%+v\n%+v", s1, s2)
	}

	e3 := New(dev, 43)
	s3 := flatTopState(dev)
	act3 := plasma.NewActuators(dev)
	equilibriumDrive(act3, dev, s3)
	for i := 0; i < 500; i++ {
		e3.Advance(s3, act3, 0.001)
		act3.Time += 0.001
	}
	if s3.MHDActivity == s1.MHDActivity {
		t.Error("expected different noise for different seeds")
	}
}

func TestAdvanceCheckedErrors(t *testing.T) {
	dev := device.Default()

	tests := []struct {
		name string
		prep func(*plasma.State, *plasma.Actuators) float64
		want error
	}{
		{
			name: "negative dt",
			prep: func(s *plasma.State, act *plasma.Actuators) float64 { return -0.01 },
			want: ErrTimestep,
		},
		{
			name: "nan dt",
			prep: func(s *plasma.State, act *plasma.Actuators) float64 { return math.NaN() },
			want: ErrTimestep,
		},
		{
			name: "zero confinement time",
			prep: func(s *plasma.State, act *plasma.Actuators) float64 {
				act.ConfinementTime = 0
				return 0.01
			},
			want: ErrConfinement,
		},
		{
			name: "nan input state",
			prep: func(s *plasma.State, act *plasma.Actuators) float64 {
				s.StoredEnergy = math.NaN()
				return 0.01
			},
			want: ErrNonFiniteState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(dev, 1)
			s := flatTopState(dev)
			act := plasma.NewActuators(dev)
			dt := tt.prep(s, act)

			err := e.AdvanceChecked(s, act, dt)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestAdvanceCheckedPropagatesDivergence(t *testing.T) {
	dev := device.Default()
	e := New(dev, 1)
	s := flatTopState(dev)
	s.DensityCore = 0 // temperature division blows up
	act := plasma.NewActuators(dev)

	err := e.AdvanceChecked(s, act, 0.01)
	if !errors.Is(err, ErrNonFiniteState) {
		t.Errorf("expected non-finite state error, got %v", err)
	}
}

func TestStepErrorWrapping(t *testing.T) {
	err := &StepError{Step: 12, Time: 0.012, Wrapped: ErrNonFiniteState}

	if !errors.Is(err, ErrNonFiniteState) {
		t.Error("expected StepError to unwrap to sentinel")
	}
	if err.Error() == "" {
		t.Error("expected formatted message")
	}
}

func BenchmarkAdvance(b *testing.B) {
	dev := device.Default()
	e := New(dev, 1)
	s := flatTopState(dev)
	act := plasma.NewActuators(dev)
	equilibriumDrive(act, dev, s)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Advance(s, act, 0.001)
	}
}
