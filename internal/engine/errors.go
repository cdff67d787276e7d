package engine

import (
	"errors"
	"fmt"
)

// Domain errors for state advancement.
var (
	// ErrNonFiniteState indicates a NaN or Inf in the plasma state.
	ErrNonFiniteState = errors.New("engine: state not finite (NaN or Inf detected)")

	// ErrTimestep indicates a non-positive or non-finite timestep.
	ErrTimestep = errors.New("engine: timestep must be positive and finite")

	// ErrConfinement indicates a non-positive tracked confinement time,
	// which would blow up the energy loss term.
	ErrConfinement = errors.New("engine: confinement time must be positive")
)

// StepError wraps an advancement error with shot context.
type StepError struct {
	Step    uint64
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
