package engine

import (
	"math"
	"math/rand"

	"github.com/plasmalab/tokasim/internal/device"
	"github.com/plasmalab/tokasim/internal/physics"
	"github.com/plasmalab/tokasim/internal/plasma"
)

// Evolution constants for the reduced state model.
const (
	// Plasma circuit inductance and resistance for the current loop.
	plasmaInductance = 5.0e-7 // H
	plasmaResistance = 1.0e-6 // ohm

	// Loop voltage induced per unit current in the first PF coil.
	loopVoltsPerPF = 0.1

	// Particle confinement time for the density balance.
	particleTau = 10.0 // s

	// Vertical force per unit vertical-coil current per MA of plasma
	// current, and the restoring damping on the displacement.
	verticalForceGain = 0.1
	verticalDamping   = 0.1
)

// Engine advances a plasma state through one explicit timestep at a time.
// All randomness flows through the injected source, so a fixed seed gives a
// reproducible trajectory. The engine mutates only the State; clock,
// iteration count, history and phase stay with the caller.
type Engine struct {
	dev device.Params
	rng *rand.Rand
}

func New(dev device.Params, seed int64) *Engine {
	return &Engine{
		dev: dev,
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (e *Engine) Device() device.Params {
	return e.dev
}

// Advance integrates the state forward by dt seconds under the given
// actuator settings. act.Time is read as the start-of-step time for the
// MHD baseline; act is not mutated.
//
// The update sequence is fixed: plasma current, stored energy and core
// temperature, core density, vertical position, then the derived stability
// figures with their instability penalties. The temperature update reads
// the pre-update density; the vertical force reads the post-update current.
func (e *Engine) Advance(s *plasma.State, act *plasma.Actuators, dt float64) {
	// Current evolution: single-turn RL circuit driven by PF coil 1.
	vLoop := act.PFCoils[0] * loopVoltsPerPF
	dIpDt := (vLoop - plasmaResistance*s.PlasmaCurrent*physics.AmpsPerMA) / plasmaInductance
	s.PlasmaCurrent += dIpDt * dt / physics.AmpsPerMA

	// Energy balance: heating in, confinement losses out.
	pHeating := act.TotalHeatingPower()
	pLoss := s.StoredEnergy / act.ConfinementTime
	s.StoredEnergy += (pHeating - pLoss) * dt

	volume := physics.PlasmaVolume(e.dev, s.Elongation)
	s.TemperatureCore = s.StoredEnergy * physics.JoulesPerMJ /
		(1.5 * s.DensityCore * physics.DensityScale * volume * physics.ElectronCharge * physics.EVPerKeV)

	// Density evolution: fueling source against particle losses.
	sOut := s.DensityCore * physics.DensityScale * volume / particleTau
	dnDt := (act.FuelRate - sOut) / volume
	s.DensityCore += dnDt * dt / physics.DensityScale

	// Vertical position: coil force against damping on the plasma mass.
	mass := s.DensityCore * physics.DensityScale * volume * (physics.ProtonMass + physics.ElectronMass)
	fVertical := 0.0
	for _, c := range act.VerticalCoils {
		fVertical += c * s.PlasmaCurrent * verticalForceGain
	}
	dVzDt := (fVertical - verticalDamping*s.VerticalPosition) / mass
	s.VerticalPosition += s.VerticalPosition*dt + 0.5*dVzDt*dt*dt

	// Derived stability figures.
	s.Q95 = physics.SafetyFactor(e.dev, 0.95, s.PlasmaCurrent)
	s.BetaN = physics.BetaNormalized(e.dev, s)
	s.MHDActivity = 0.1*math.Sin(act.Time*100.0) + 0.05*e.rng.Float64()

	// Instability penalties accrue additively onto the MHD level.
	if s.Q95 < e.dev.Q95Min {
		s.MHDActivity += 0.5
	}
	if s.BetaN > e.dev.BetaNormalLimit {
		s.MHDActivity += 0.3
	}
	if math.Abs(s.VerticalPosition) > e.dev.VerticalDisplacementMax {
		s.MHDActivity += 0.7
	}
}

// AdvanceChecked validates inputs, advances, and reports a sentinel error
// when the step produced a non-finite state. The state is left as the step
// wrote it, for inspection.
func (e *Engine) AdvanceChecked(s *plasma.State, act *plasma.Actuators, dt float64) error {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return ErrTimestep
	}
	if act.ConfinementTime <= 0 {
		return ErrConfinement
	}
	if !s.Finite() {
		return ErrNonFiniteState
	}

	e.Advance(s, act, dt)

	if !s.Finite() {
		return ErrNonFiniteState
	}
	return nil
}
