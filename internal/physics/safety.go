package physics

import (
	"math"

	"github.com/plasmalab/tokasim/internal/device"
)

// SafetyFactor evaluates the cylindrical safety factor profile at normalized
// radius rNorm for a plasma current ipMA in MA. A quadratic shaping
// correction (1 + 0.5 r^2) steepens the profile toward the edge.
//
// The result diverges as ipMA approaches zero and is negative for negative
// current; callers decide what current range is meaningful.
func SafetyFactor(p device.Params, rNorm, ipMA float64) float64 {
	ip := ipMA * AmpsPerMA
	q := (2.0 * math.Pi * p.ToroidalField * rNorm * rNorm * p.MinorRadius * p.MinorRadius) /
		(Mu0 * p.MajorRadius * ip)
	q *= 1.0 + 0.5*rNorm*rNorm
	return q
}
