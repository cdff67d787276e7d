package shot

import (
	"context"
	"fmt"

	"github.com/plasmalab/tokasim/internal/engine"
	"github.com/plasmalab/tokasim/internal/physics"
	"github.com/plasmalab/tokasim/internal/plasma"
	"github.com/plasmalab/tokasim/internal/safety"
)

// Runner drives one plasma shot: controller, engine step, history,
// safety monitor and metrics, in that order, every timestep.
type Runner struct {
	eng       *engine.Engine
	ctrl      Controller
	monitor   *safety.Monitor
	metrics   []Metric
	observers []Observer
}

func New(eng *engine.Engine, ctrl Controller) *Runner {
	return &Runner{
		eng:     eng,
		ctrl:    ctrl,
		metrics: make([]Metric, 0),
	}
}

func (r *Runner) AddMetric(m Metric)           { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)       { r.observers = append(r.observers, o) }
func (r *Runner) SetMonitor(m *safety.Monitor) { r.monitor = m }

// Run advances the shot from the given initial state until the configured
// duration elapses, the context is canceled, or validation stops it.
// The state and actuators are mutated in place; the returned result holds
// snapshot records of the whole trajectory.
func (r *Runner) Run(ctx context.Context, s *plasma.State, act *plasma.Actuators, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:   make([]float64, 0, steps+1),
		Records: make([][]float64, 0, steps+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	record := func() {
		row := s.Snapshot()
		result.Times = append(result.Times, act.Time)
		result.Records = append(result.Records, append([]float64(nil), row[:]...))
	}
	record()

	dev := r.eng.Device()

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			r.finish(result, s, act)
			return result, ctx.Err()
		default:
		}

		if r.ctrl != nil {
			r.ctrl.Apply(act, s, act.Time)
		}

		if cfg.TrackConfinement {
			if p := act.TotalHeatingPower(); p > 0 {
				act.ConfinementTime = physics.ConfinementTime(dev, s, p)
			}
		}

		for _, m := range r.metrics {
			m.Observe(s, act, act.Time)
		}
		for _, obs := range r.observers {
			obs.OnStep(s, act, act.Time)
		}

		if cfg.Validate {
			if err := r.eng.AdvanceChecked(s, act, cfg.Dt); err != nil {
				stepErr := &engine.StepError{Step: act.Iteration, Time: act.Time, Wrapped: err}
				result.Errors = append(result.Errors, stepErr)
				break
			}
		} else {
			r.eng.Advance(s, act, cfg.Dt)
		}

		act.Time += cfg.Dt
		act.Iteration++
		result.StepsTaken++

		if act.History != nil {
			act.History.Push(s.Snapshot())
		}

		if r.monitor != nil {
			r.monitor.Check(s, act)
		}

		record()
	}

	r.finish(result, s, act)
	return result, nil
}

func (r *Runner) finish(result *Result, s *plasma.State, act *plasma.Actuators) {
	result.FinalState = s.Clone()
	result.FinalPhase = act.Phase
	result.Disrupted = act.DisruptionDetected
	result.DisruptionTime = act.DisruptionTime

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
