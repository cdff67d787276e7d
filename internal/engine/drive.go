package engine

import (
	"github.com/plasmalab/tokasim/internal/device"
	"github.com/plasmalab/tokasim/internal/physics"
	"github.com/plasmalab/tokasim/internal/plasma"
)

// Inverse actuator maps for the circuit and particle balance models.
// Controllers and presets use these to program equilibria and ramps
// without re-deriving the engine constants.

// HoldPF returns the PF coil 1 current whose induced loop voltage exactly
// cancels resistive decay at the given plasma current.
func HoldPF(ipMA float64) float64 {
	return plasmaResistance * ipMA * physics.AmpsPerMA / loopVoltsPerPF
}

// RampPF returns the PF coil 1 current that drives the plasma current at
// the given slope (MA/s) from the given current.
func RampPF(ipMA, slopeMAPerSec float64) float64 {
	v := plasmaInductance*slopeMAPerSec*physics.AmpsPerMA +
		plasmaResistance*ipMA*physics.AmpsPerMA
	return v / loopVoltsPerPF
}

// HoldFuelRate returns the fueling rate (particles/s) that balances the
// particle losses at the state's density and elongation.
func HoldFuelRate(dev device.Params, s *plasma.State) float64 {
	vol := physics.PlasmaVolume(dev, s.Elongation)
	return s.DensityCore * physics.DensityScale * vol / particleTau
}
