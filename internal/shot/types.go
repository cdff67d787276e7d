package shot

import "github.com/plasmalab/tokasim/internal/plasma"

// Controller programs the actuators between engine steps. Implementations
// mutate act in place; the runner calls Apply with the start-of-step time.
type Controller interface {
	Apply(act *plasma.Actuators, s *plasma.State, t float64)
}

// Metric accumulates a scalar over a shot.
type Metric interface {
	Name() string
	Observe(s *plasma.State, act *plasma.Actuators, t float64)
	Value() float64
	Reset()
}

// Observer is called once per step with the pre-step state.
type Observer interface {
	OnStep(s *plasma.State, act *plasma.Actuators, t float64)
}

// Config holds the per-shot run settings.
type Config struct {
	Dt       float64
	Duration float64
	Seed     int64

	// Validate runs each step through the checked advancement path and
	// stops the shot on a non-finite state.
	Validate bool

	// TrackConfinement refreshes the tracked confinement time from the
	// scaling law whenever heating power is applied.
	TrackConfinement bool
}

func DefaultConfig() Config {
	return Config{
		Dt:       0.001,
		Duration: 10.0,
		Seed:     1,
		Validate: true,
	}
}

// Result collects a completed (or aborted) shot.
type Result struct {
	Times   []float64
	Records [][]float64
	Metrics map[string]float64

	FinalState plasma.State
	FinalPhase plasma.Phase

	StepsTaken     int
	Disrupted      bool
	DisruptionTime float64
	Errors         []error
}

// Channel extracts one recorded column over time.
func (r *Result) Channel(field int) []float64 {
	out := make([]float64, len(r.Records))
	for i, rec := range r.Records {
		if field < len(rec) {
			out[i] = rec[field]
		}
	}
	return out
}
