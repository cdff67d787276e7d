package physics

import "math"

// Physical constants, SI.
const (
	Mu0            = 4.0e-7 * math.Pi // vacuum permeability, H/m
	ElectronCharge = 1.602e-19        // C
	ElectronMass   = 9.109e-31        // kg
	ProtonMass     = 1.673e-27        // kg
)

// Unit conversions between state units and SI.
const (
	AmpsPerMA    = 1e6       // plasma current is tracked in MA
	DensityScale = 1e19      // densities are tracked in 1e19 m^-3
	JoulesPerKeV = 1.602e-16 // per particle
	JoulesPerMJ  = 1e6       // stored energy is tracked in MJ
	EVPerKeV     = 1000.0
)
