package physics

import (
	"math"

	"github.com/plasmalab/tokasim/internal/device"
)

// DisruptionForce estimates the net force on the vessel during a current
// quench: an inductive term from the current decaying on CurrentQuenchTau
// against the summed poloidal coil field, plus the magnetic pressure of the
// total field acting over the minor radius. ipMA is the pre-quench plasma
// current in MA; coilCurrents are the PF coil currents.
func DisruptionForce(p device.Params, ipMA float64, coilCurrents []float64) float64 {
	dIpDt := -ipMA / CurrentQuenchTau
	bCoil := 0.0
	for _, c := range coilCurrents {
		bCoil += c * 1e-6 / (2.0 * math.Pi * p.MajorRadius)
	}
	lorentz := dIpDt * bCoil * p.MinorRadius

	bTotal := math.Sqrt(p.ToroidalField*p.ToroidalField +
		(Mu0*ipMA*AmpsPerMA)/(2.0*math.Pi*p.MinorRadius))
	pressure := bTotal * bTotal / (2.0 * Mu0)

	return lorentz + pressure*p.MinorRadius
}
