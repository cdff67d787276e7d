package physics

import (
	"math"

	"github.com/plasmalab/tokasim/internal/device"
)

// DepositionBins is the radial resolution of the ECRH deposition profile.
const DepositionBins = 10

// Deposition is the result of an ECRH heating calculation.
type Deposition struct {
	// Absorption is the absorbed power fraction in [0, 1].
	Absorption float64
	// TempRise is the resulting core temperature increment in keV.
	TempRise float64
	// Profile is the normalized radial deposition shape over equal bins
	// from axis to edge. It depends only on geometry, not on the launched
	// frequency.
	Profile [DepositionBins]float64
}

// ECRH evaluates electron cyclotron resonance heating for a launched wave of
// the given power (MW) and frequency (Hz) into a plasma of core density
// densityCore (1e19 m^-3). Within 1 GHz of the cyclotron frequency the
// absorbed fraction is 0.8; outside it falls off as a Gaussian in the
// frequency mismatch.
func ECRH(p device.Params, powerMW, frequency, densityCore float64) Deposition {
	fce := ElectronCharge * p.ToroidalField / (2.0 * math.Pi * ElectronMass)

	var absorption float64
	if math.Abs(frequency-fce) < 1e9 {
		absorption = 0.8
	} else {
		df := frequency - fce
		absorption = 0.3 * math.Exp(-df*df/(2.0*1e18))
	}

	var d Deposition
	d.Absorption = absorption
	for i := 0; i < DepositionBins; i++ {
		r := float64(i) / float64(DepositionBins)
		d.Profile[i] = math.Exp(-(r - 0.5) * (r - 0.5) / 0.1)
	}

	powerDeposited := powerMW * absorption
	d.TempRise = powerDeposited / (densityCore * DensityScale * ElectronCharge * EVPerKeV)
	return d
}
