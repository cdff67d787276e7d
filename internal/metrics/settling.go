package metrics

import (
	"math"

	"github.com/plasmalab/tokasim/internal/plasma"
)

// VerticalIAE integrates |z| over the shot. Smaller values mean the
// column was held tighter; vertical feedback tuning minimizes this.
type VerticalIAE struct {
	name    string
	sum     float64
	prevT   float64
	samples int
}

func NewVerticalIAE() *VerticalIAE {
	return &VerticalIAE{name: "vertical_iae"}
}

func (v *VerticalIAE) Name() string { return v.name }

func (v *VerticalIAE) Observe(s *plasma.State, act *plasma.Actuators, t float64) {
	if v.samples > 0 && t > v.prevT {
		v.sum += math.Abs(s.VerticalPosition) * (t - v.prevT)
	}
	v.prevT = t
	v.samples++
}

func (v *VerticalIAE) Value() float64 {
	return v.sum
}

func (v *VerticalIAE) Reset() {
	v.sum = 0
	v.prevT = 0
	v.samples = 0
}
