package metrics

import "github.com/plasmalab/tokasim/internal/plasma"

// HeatingEnergy integrates auxiliary heating power over the shot. With
// power in MW and time in seconds the value comes out in MJ.
type HeatingEnergy struct {
	name    string
	total   float64
	prevT   float64
	samples int
}

func NewHeatingEnergy() *HeatingEnergy {
	return &HeatingEnergy{
		name: "heating_energy",
	}
}

func (e *HeatingEnergy) Name() string { return e.name }

func (e *HeatingEnergy) Observe(s *plasma.State, act *plasma.Actuators, t float64) {
	if e.samples > 0 {
		e.total += act.TotalHeatingPower() * (t - e.prevT)
	}
	e.prevT = t
	e.samples++
}

func (e *HeatingEnergy) Value() float64 {
	return e.total
}

func (e *HeatingEnergy) Reset() {
	e.total = 0
	e.prevT = 0
	e.samples = 0
}

// ConfinementEstimate recovers the energy confinement time from the power
// balance, tau = W / (P - dW/dt), averaged over samples where net input
// power is positive. In steady state this reduces to W/P.
type ConfinementEstimate struct {
	name    string
	sum     float64
	count   int
	prevW   float64
	prevT   float64
	samples int
}

func NewConfinementEstimate() *ConfinementEstimate {
	return &ConfinementEstimate{
		name: "confinement_estimate",
	}
}

func (e *ConfinementEstimate) Name() string { return e.name }

func (e *ConfinementEstimate) Observe(s *plasma.State, act *plasma.Actuators, t float64) {
	if e.samples > 0 && t > e.prevT {
		dWdt := (s.StoredEnergy - e.prevW) / (t - e.prevT)
		net := act.TotalHeatingPower() - dWdt
		if net > 1e-9 {
			e.sum += s.StoredEnergy / net
			e.count++
		}
	}
	e.prevW = s.StoredEnergy
	e.prevT = t
	e.samples++
}

func (e *ConfinementEstimate) Value() float64 {
	if e.count == 0 {
		return 0
	}
	return e.sum / float64(e.count)
}

func (e *ConfinementEstimate) Reset() {
	e.sum = 0
	e.count = 0
	e.prevW = 0
	e.prevT = 0
	e.samples = 0
}
