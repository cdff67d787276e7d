package plasma

import "github.com/plasmalab/tokasim/internal/device"

// Phase is the shot phase tracked by the control layer. The advancement
// engine reads it for bookkeeping only and never branches on it.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseRampUp
	PhaseFlatTop
	PhaseRampDown
	PhaseDisruption
	PhaseMitigation
	PhaseSafeShutdown
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseRampUp:
		return "ramp_up"
	case PhaseFlatTop:
		return "flat_top"
	case PhaseRampDown:
		return "ramp_down"
	case PhaseDisruption:
		return "disruption"
	case PhaseMitigation:
		return "mitigation"
	case PhaseSafeShutdown:
		return "safe_shutdown"
	default:
		return "unknown"
	}
}

// ParsePhase maps a phase name back to its value. Unknown names map to
// PhaseInit.
func ParsePhase(name string) Phase {
	for p := PhaseInit; p <= PhaseSafeShutdown; p++ {
		if p.String() == name {
			return p
		}
	}
	return PhaseInit
}

// HeatingSystem is one auxiliary heating channel.
type HeatingSystem struct {
	Power     float64 // MW
	Frequency float64 // Hz
	Enabled   bool
}

// Actuators carries the coil currents, heating systems and injection rates
// driving the plasma, plus the shot bookkeeping the control layer maintains:
// clock, iteration count, phase, history ring and disruption flags.
type Actuators struct {
	PFCoils         [device.NumPFCoils]float64
	VerticalCoils   [device.NumVerticalCoils]float64
	HorizontalCoils [device.NumHorizontalCoils]float64
	Heating         [device.NumHeatingSystems]HeatingSystem

	FuelRate     float64 // particles/s
	ImpurityRate float64

	Target State

	Phase     Phase
	Time      float64
	Iteration uint64
	History   *History

	DisruptionDetected bool
	MitigationActive   bool
	DisruptionTime     float64

	// ConfinementTime divides the stored-energy loss term in the energy
	// balance. Refreshed from the scaling law when tracking is on.
	ConfinementTime float64
	FusionGain      float64
}

func NewActuators(dev device.Params) *Actuators {
	return &Actuators{
		History:         NewHistory(),
		ConfinementTime: dev.ConfinementTimeDefault,
	}
}

// TotalHeatingPower sums the power of all enabled heating systems, in MW.
func (a *Actuators) TotalHeatingPower() float64 {
	total := 0.0
	for i := range a.Heating {
		if a.Heating[i].Enabled {
			total += a.Heating[i].Power
		}
	}
	return total
}
