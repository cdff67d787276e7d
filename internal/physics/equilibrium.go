package physics

import (
	"math"

	"github.com/plasmalab/tokasim/internal/device"
)

// FluxSurface evaluates the parabolic approximation to the equilibrium
// poloidal flux at a point (R, Z) in the poloidal plane. psiAxis is the
// on-axis flux; the value falls to zero at the plasma boundary and is zero
// everywhere outside it.
func FluxSurface(p device.Params, r, z, psiAxis float64) float64 {
	dR := r - p.MajorRadius
	rNorm := math.Sqrt(dR*dR+z*z) / p.MinorRadius
	if rNorm >= 1.0 {
		return 0.0
	}
	return psiAxis * (1.0 - rNorm*rNorm)
}

// PlasmaVolume is the elongated torus volume 2 pi^2 R0 a^2 kappa.
func PlasmaVolume(p device.Params, elongation float64) float64 {
	return 2.0 * math.Pi * math.Pi * p.MajorRadius * p.MinorRadius * p.MinorRadius * elongation
}
