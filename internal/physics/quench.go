package physics

import "math"

// Disruption decay time constants, seconds.
const (
	ThermalQuenchTau = 0.001
	CurrentQuenchTau = 0.01
)

// ThermalQuench is the stored energy remaining t seconds after thermal
// quench onset. Impurity content accelerates the collapse: at
// impurity = 1 the remaining energy is halved on top of the exponential.
func ThermalQuench(t, initialEnergy, impurity float64) float64 {
	e := initialEnergy * math.Exp(-t/ThermalQuenchTau)
	return e * (1.0 - 0.5*impurity)
}

// CurrentQuench is the plasma current remaining t seconds after the thermal
// quench, decaying on the resistive timescale with a linear resistance
// correction. Large t or resistance drives the result negative; callers
// clamp if they need a physical current.
func CurrentQuench(t, initialCurrent, resistance float64) float64 {
	i := initialCurrent * math.Exp(-t/CurrentQuenchTau)
	return i * (1.0 - 0.1*resistance*t)
}
