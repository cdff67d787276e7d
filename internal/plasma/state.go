package plasma

import "math"

// State is the macroscopic plasma state advanced by the engine.
// Units: current in MA, positions in m, temperatures in keV, densities in
// 1e19 m^-3, stored energy in MJ, powers in MW.
type State struct {
	PlasmaCurrent      float64
	Q95                float64
	BetaN              float64
	InternalInductance float64

	RadialPosition   float64
	VerticalPosition float64
	Elongation       float64
	Triangularity    float64

	TemperatureCore float64
	TemperatureEdge float64
	DensityCore     float64
	DensityEdge     float64

	MHDActivity  float64
	NTMAmplitude float64
	ELMFrequency float64

	NeutronRate           float64
	ImpurityConcentration float64
	RadiationPower        float64

	StoredEnergy float64
}

func (s *State) Clone() State {
	return *s
}

// Finite reports whether every field is a finite number.
func (s *State) Finite() bool {
	for _, v := range s.fields() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s *State) fields() [19]float64 {
	return [19]float64{
		s.PlasmaCurrent, s.Q95, s.BetaN, s.InternalInductance,
		s.RadialPosition, s.VerticalPosition, s.Elongation, s.Triangularity,
		s.TemperatureCore, s.TemperatureEdge, s.DensityCore, s.DensityEdge,
		s.MHDActivity, s.NTMAmplitude, s.ELMFrequency,
		s.NeutronRate, s.ImpurityConcentration, s.RadiationPower,
		s.StoredEnergy,
	}
}

// Snapshot packs the history row for this state.
func (s *State) Snapshot() [HistoryFields]float64 {
	return [HistoryFields]float64{
		s.PlasmaCurrent,
		s.Q95,
		s.BetaN,
		s.InternalInductance,
		s.VerticalPosition,
		s.TemperatureCore,
		s.DensityCore,
		s.MHDActivity,
		s.StoredEnergy,
		s.NTMAmplitude,
	}
}

// HistoryColumns names the snapshot fields, in row order.
var HistoryColumns = []string{
	"plasma_current",
	"q95",
	"beta_n",
	"li",
	"z_position",
	"temp_core",
	"density_core",
	"mhd_activity",
	"stored_energy",
	"ntm_amplitude",
}
