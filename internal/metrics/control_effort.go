package metrics

import (
	"math"

	"github.com/plasmalab/tokasim/internal/plasma"
)

// ControlEffort averages the total commanded coil current magnitude per
// step. High values flag shots that lean hard on the control system.
type ControlEffort struct {
	name    string
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{
		name: "control_effort",
	}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) Observe(s *plasma.State, act *plasma.Actuators, t float64) {
	for _, v := range act.PFCoils {
		c.sum += math.Abs(v)
	}
	for _, v := range act.VerticalCoils {
		c.sum += math.Abs(v)
	}
	for _, v := range act.HorizontalCoils {
		c.sum += math.Abs(v)
	}
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
