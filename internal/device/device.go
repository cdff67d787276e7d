package device

// Actuator channel counts. Array sizes elsewhere depend on these.
const (
	NumPFCoils         = 10
	NumVerticalCoils   = 4
	NumHorizontalCoils = 4
	NumHeatingSystems  = 3
)

// Params holds the machine geometry, field, targets and operating limits.
// Lengths in meters, fields in tesla, currents in MA, temperatures in keV,
// densities in units of 1e19 m^-3, times in seconds, powers in MW.
type Params struct {
	MajorRadius   float64
	MinorRadius   float64
	ToroidalField float64
	PlasmaCurrent float64

	TemperatureCore float64
	DensityCore     float64
	BetaTarget      float64
	LiTarget        float64

	Q95Min           float64
	Q95Max           float64
	BetaNormalLimit  float64
	LowerHybridLimit float64

	CurrentRampLimit        float64
	VerticalDisplacementMax float64
	RadiationPeakLimit      float64
	WallLoadLimit           float64

	CurrentRiseTime        float64
	ConfinementTimeDefault float64
	DisruptionWarningTime  float64
	MitigationResponseTime float64
}

// Default returns the reference machine.
func Default() Params {
	return Params{
		MajorRadius:   1.8,
		MinorRadius:   0.6,
		ToroidalField: 5.3,
		PlasmaCurrent: 15.0,

		TemperatureCore: 15.0,
		DensityCore:     10.0,
		BetaTarget:      0.03,
		LiTarget:        1.0,

		Q95Min:           3.0,
		Q95Max:           5.0,
		BetaNormalLimit:  3.5,
		LowerHybridLimit: 0.8,

		CurrentRampLimit:        3.0,
		VerticalDisplacementMax: 0.15,
		RadiationPeakLimit:      10.0,
		WallLoadLimit:           1.0,

		CurrentRiseTime:        30.0,
		ConfinementTimeDefault: 5.0,
		DisruptionWarningTime:  0.05,
		MitigationResponseTime: 0.01,
	}
}
