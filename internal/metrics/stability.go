package metrics

import "github.com/plasmalab/tokasim/internal/plasma"

// MHDQuiet reports the fraction of samples with MHD activity below the
// threshold. A value of 1.0 means a quiet shot.
type MHDQuiet struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewMHDQuiet(threshold float64) *MHDQuiet {
	return &MHDQuiet{
		name:      "mhd_quiet",
		threshold: threshold,
	}
}

func (m *MHDQuiet) Name() string {
	return m.name
}

func (m *MHDQuiet) Observe(s *plasma.State, act *plasma.Actuators, t float64) {
	m.samples++
	if s.MHDActivity > m.threshold {
		m.violations++
	}
}

func (m *MHDQuiet) Value() float64 {
	if m.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(m.violations)/float64(m.samples)
}

func (m *MHDQuiet) Reset() {
	m.violations = 0
	m.samples = 0
}
