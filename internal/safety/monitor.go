package safety

import (
	"math"

	"github.com/plasmalab/tokasim/internal/device"
	"github.com/plasmalab/tokasim/internal/plasma"
)

// DefaultMHDThreshold is the activity level that latches disruption
// detection. Baseline noise tops out at 0.15; the smallest instability
// penalty pushes the level past 0.4.
const DefaultMHDThreshold = 0.3

// Monitor watches the advancing state and raises the disruption flags on
// the actuator block. It decides nothing about mitigation beyond engaging
// the flag once the device response time has elapsed; action selection
// belongs to the mitigation system.
type Monitor struct {
	dev       device.Params
	Threshold float64

	// Disruptions counts detection latches over the monitor's lifetime.
	Disruptions int
}

func NewMonitor(dev device.Params) *Monitor {
	return &Monitor{
		dev:       dev,
		Threshold: DefaultMHDThreshold,
	}
}

// Check inspects the post-step state and updates the disruption flags.
// Detection latches: once raised it stays raised for the rest of the shot.
func (m *Monitor) Check(s *plasma.State, act *plasma.Actuators) {
	if act.DisruptionDetected {
		if !act.MitigationActive && act.Time-act.DisruptionTime >= m.dev.MitigationResponseTime {
			act.MitigationActive = true
			act.Phase = plasma.PhaseMitigation
		}
		return
	}

	if s.MHDActivity > m.Threshold {
		act.DisruptionDetected = true
		act.DisruptionTime = act.Time
		act.Phase = plasma.PhaseDisruption
		m.Disruptions++
	}
}

// Evaluate reports which operating limits the state currently violates.
// The density limit is the Greenwald value Ip/(pi a^2) in 1e20 m^-3.
func (m *Monitor) Evaluate(s *plasma.State) Flags {
	greenwald := 10.0 * s.PlasmaCurrent / (math.Pi * m.dev.MinorRadius * m.dev.MinorRadius)
	return Flags{
		LowSafetyFactor:      s.Q95 < m.dev.Q95Min,
		BetaLimit:            s.BetaN > m.dev.BetaNormalLimit,
		VerticalDisplacement: math.Abs(s.VerticalPosition) > m.dev.VerticalDisplacementMax,
		DensityLimit:         s.DensityCore > greenwald,
	}
}

// Predict summarizes the disruption risk for the mitigation system. The
// probability saturates as MHD activity climbs past twice the detection
// threshold; the horizon shrinks from the device warning time toward zero.
func (m *Monitor) Predict(s *plasma.State) Prediction {
	level := s.MHDActivity / (2.0 * m.Threshold)
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}

	flags := m.Evaluate(s)
	cause := "mhd_activity"
	switch {
	case flags.VerticalDisplacement:
		cause = "vertical_displacement_event"
	case flags.LowSafetyFactor:
		cause = "low_edge_safety_factor"
	case flags.BetaLimit:
		cause = "beta_limit_exceeded"
	case flags.DensityLimit:
		cause = "density_limit_exceeded"
	}

	return Prediction{
		Probability:      level,
		TimeToDisruption: (1.0 - level) * m.dev.DisruptionWarningTime,
		Cause:            cause,
	}
}
