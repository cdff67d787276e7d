package metrics

import (
	"math"

	"github.com/plasmalab/tokasim/internal/plasma"
)

// PeakBetaN tracks the highest normalized beta reached during the shot.
type PeakBetaN struct {
	name string
	peak float64
}

func NewPeakBetaN() *PeakBetaN {
	return &PeakBetaN{name: "peak_beta_n"}
}

func (p *PeakBetaN) Name() string { return p.name }

func (p *PeakBetaN) Observe(s *plasma.State, act *plasma.Actuators, t float64) {
	if s.BetaN > p.peak {
		p.peak = s.BetaN
	}
}

func (p *PeakBetaN) Value() float64 {
	return p.peak
}

func (p *PeakBetaN) Reset() {
	p.peak = 0
}

// VerticalExcursion tracks the largest vertical displacement magnitude.
type VerticalExcursion struct {
	name string
	max  float64
}

func NewVerticalExcursion() *VerticalExcursion {
	return &VerticalExcursion{name: "vertical_excursion"}
}

func (v *VerticalExcursion) Name() string { return v.name }

func (v *VerticalExcursion) Observe(s *plasma.State, act *plasma.Actuators, t float64) {
	if z := math.Abs(s.VerticalPosition); z > v.max {
		v.max = z
	}
}

func (v *VerticalExcursion) Value() float64 {
	return v.max
}

func (v *VerticalExcursion) Reset() {
	v.max = 0
}
