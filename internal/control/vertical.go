package control

import "github.com/plasmalab/tokasim/internal/plasma"

// VerticalPID holds the plasma column at a target vertical position by
// driving all vertical field coils with a common PID command. The loop
// must run every step: the vertical instability grows on the millisecond
// scale, so a stale command lets the column walk off toward the wall.
type VerticalPID struct {
	Kp       float64
	Ki       float64
	Kd       float64
	Target   float64
	integral float64
	prevErr  float64
	prevT    float64
	first    bool
}

func NewVerticalPID(kp, ki, kd float64) *VerticalPID {
	return &VerticalPID{
		Kp:    kp,
		Ki:    ki,
		Kd:    kd,
		first: true,
	}
}

func (p *VerticalPID) Apply(act *plasma.Actuators, s *plasma.State, t float64) {
	err := p.Target - s.VerticalPosition

	if p.first {
		p.prevErr = err
		p.prevT = t
		p.first = false
		p.drive(act, p.Kp*err)
		return
	}

	dt := t - p.prevT
	if dt > 0 {
		p.integral += err * dt
		derivative := (err - p.prevErr) / dt

		u := p.Kp*err + p.Ki*p.integral + p.Kd*derivative

		p.prevErr = err
		p.prevT = t

		p.drive(act, u)
		return
	}
	p.drive(act, p.Kp*err)
}

func (p *VerticalPID) drive(act *plasma.Actuators, u float64) {
	for i := range act.VerticalCoils {
		act.VerticalCoils[i] = u
	}
}

// Reset clears integral and derivative state
func (p *VerticalPID) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.first = true
}

// GetParams returns tunable parameters for live adjustment
func (p *VerticalPID) GetParams() map[string]float64 {
	return map[string]float64{
		"Kp":     p.Kp,
		"Ki":     p.Ki,
		"Kd":     p.Kd,
		"Target": p.Target,
	}
}

// SetParam adjusts a PID parameter
func (p *VerticalPID) SetParam(name string, value float64) {
	switch name {
	case "Kp":
		p.Kp = value
	case "Ki":
		p.Ki = value
	case "Kd":
		p.Kd = value
	case "Target":
		p.Target = value
	}
}
