package physics

import (
	"math"

	"github.com/plasmalab/tokasim/internal/device"
	"github.com/plasmalab/tokasim/internal/plasma"
)

// ConfinementTime evaluates the empirical energy confinement scaling for the
// current state and total heating power in MW. Current enters in MA and
// density in 1e20 m^-3 (hence the 0.1 on the tracked value).
//
// The power exponent is negative, so the result diverges as heatingMW
// approaches zero; callers gate on heating power before use.
func ConfinementTime(p device.Params, s *plasma.State, heatingMW float64) float64 {
	n20 := s.DensityCore * 0.1
	tau := 0.0562 *
		math.Pow(s.PlasmaCurrent, 0.93) *
		math.Pow(p.ToroidalField, 0.15) *
		math.Pow(n20, 0.41) *
		math.Pow(p.MajorRadius, 1.97) *
		math.Pow(p.MinorRadius, 0.58) *
		math.Pow(s.Elongation, 0.78)
	return tau * math.Pow(heatingMW, -0.69)
}
