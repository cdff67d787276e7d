package physics

import (
	"math"

	"github.com/plasmalab/tokasim/internal/device"
	"github.com/plasmalab/tokasim/internal/plasma"
)

// Beta is the ratio of volume-averaged plasma pressure to total magnetic
// pressure. The average pressure is taken as one third of the core value;
// the field combines the toroidal field with the current-induced poloidal
// field in quadrature.
func Beta(p device.Params, s *plasma.State) float64 {
	pressureAvg := (s.DensityCore * DensityScale * s.TemperatureCore * JoulesPerKeV) / 3.0
	bPol := Mu0 * s.PlasmaCurrent * AmpsPerMA / (2.0 * math.Pi * p.MinorRadius)
	bTotal := math.Sqrt(p.ToroidalField*p.ToroidalField + bPol*bPol)
	return 2.0 * Mu0 * pressureAvg / (bTotal * bTotal)
}

// BetaNormalized is the Troyon-normalized beta: beta in percent times
// a*Bt/Ip with Ip in MA.
func BetaNormalized(p device.Params, s *plasma.State) float64 {
	beta := Beta(p, s) * 100.0
	return beta * p.MinorRadius * p.ToroidalField / s.PlasmaCurrent
}
