package control

import (
	"github.com/plasmalab/tokasim/internal/plasma"
	"github.com/plasmalab/tokasim/internal/shot"
)

// Composite chains controllers, applying them in order each step. Later
// controllers see actuator values written by earlier ones, so feedback
// loops go after the schedule that sets the feedforward drive.
type Composite struct {
	controllers []shot.Controller
}

func NewComposite(controllers ...shot.Controller) *Composite {
	return &Composite{controllers: controllers}
}

func (c *Composite) Apply(act *plasma.Actuators, s *plasma.State, t float64) {
	for _, ctrl := range c.controllers {
		ctrl.Apply(act, s, t)
	}
}

// Static leaves the actuator block exactly as configured. Used for open
// loop shots where the preset already encodes the full waveform.
type Static struct{}

func (Static) Apply(act *plasma.Actuators, s *plasma.State, t float64) {}
