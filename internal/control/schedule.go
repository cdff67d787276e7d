package control

import (
	"github.com/plasmalab/tokasim/internal/device"
	"github.com/plasmalab/tokasim/internal/engine"
	"github.com/plasmalab/tokasim/internal/plasma"
)

// trimTau sets how fast the current trim pulls toward the programmed value.
const trimTau = 1.0

// Schedule programs a full shot: current ramp-up, flat top with auxiliary
// heating, ramp-down, shutdown. It drives PF coil 1 through the engine's
// inverse circuit maps, tracking the programmed current with a first-order
// trim, and toggles the heating systems configured on the actuator block.
//
// Once a disruption is flagged the schedule stands down: heating off,
// drive and fueling zeroed. Phase bookkeeping then belongs to the monitor.
type Schedule struct {
	Dev device.Params

	TargetCurrent float64
	RampUpTime    float64
	FlatTopTime   float64
	RampDownTime  float64

	// HeatingStart is the shot time when the configured heating systems
	// enable. They disable again at the end of the flat top.
	HeatingStart float64

	// HoldDensity fuels to balance particle losses each step.
	HoldDensity bool
}

func NewSchedule(dev device.Params, targetMA, rampUp, flatTop, rampDown float64) *Schedule {
	return &Schedule{
		Dev:           dev,
		TargetCurrent: targetMA,
		RampUpTime:    rampUp,
		FlatTopTime:   flatTop,
		RampDownTime:  rampDown,
		HeatingStart:  rampUp,
		HoldDensity:   true,
	}
}

func (c *Schedule) Apply(act *plasma.Actuators, s *plasma.State, t float64) {
	if act.DisruptionDetected {
		for i := range act.Heating {
			act.Heating[i].Enabled = false
		}
		act.PFCoils[0] = 0
		act.FuelRate = 0
		return
	}

	rampEnd := c.RampUpTime
	flatEnd := rampEnd + c.FlatTopTime
	downEnd := flatEnd + c.RampDownTime

	var programmed, slope float64
	switch {
	case t < rampEnd:
		act.Phase = plasma.PhaseRampUp
		slope = c.TargetCurrent / c.RampUpTime
		programmed = slope * t
	case t < flatEnd:
		act.Phase = plasma.PhaseFlatTop
		slope = 0
		programmed = c.TargetCurrent
	case t < downEnd:
		act.Phase = plasma.PhaseRampDown
		slope = -c.TargetCurrent / c.RampDownTime
		programmed = c.TargetCurrent + slope*(t-flatEnd)
	default:
		act.Phase = plasma.PhaseSafeShutdown
		act.PFCoils[0] = 0
		act.FuelRate = 0
		for i := range act.Heating {
			act.Heating[i].Enabled = false
		}
		return
	}

	act.Target.PlasmaCurrent = programmed
	act.PFCoils[0] = engine.RampPF(s.PlasmaCurrent, slope+(programmed-s.PlasmaCurrent)/trimTau)

	heatingOn := t >= c.HeatingStart && t < flatEnd
	for i := range act.Heating {
		act.Heating[i].Enabled = heatingOn && act.Heating[i].Power > 0
	}

	if c.HoldDensity {
		act.FuelRate = engine.HoldFuelRate(c.Dev, s)
	}
}
