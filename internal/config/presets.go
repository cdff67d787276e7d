package config

// Presets are complete shot programs for the reference machine. Each is
// built over DefaultConfig, so unset blocks keep their defaults.
var Presets = map[string]*Config{
	"flattop":    flattopPreset(),
	"ohmic":      ohmicPreset(),
	"rampup":     rampupPreset(),
	"vde":        vdePreset(),
	"disruption": disruptionPreset(),
}

// flattopPreset ramps to 2 MA, heats through an 8 second flat top and
// ramps back down. The quiet reference shot.
func flattopPreset() *Config {
	return DefaultConfig()
}

// ohmicPreset runs the same current program without auxiliary heating,
// so the stored energy decays on the confinement time.
func ohmicPreset() *Config {
	cfg := DefaultConfig()
	cfg.Duration = 5.0
	cfg.Actuators.Heating = nil
	cfg.Schedule.FlatTopTime = 3.0
	cfg.Schedule.RampDownTime = 1.0
	return cfg
}

// rampupPreset stretches the current rise to exercise the ramp tracking.
func rampupPreset() *Config {
	cfg := DefaultConfig()
	cfg.InitState.PlasmaCurrent = 0.1
	cfg.Schedule.TargetCurrent = 2.2
	cfg.Schedule.RampUpTime = 3.0
	cfg.Schedule.FlatTopTime = 5.0
	cfg.Schedule.RampDownTime = 2.0
	cfg.Schedule.HeatingStart = 3.0
	return cfg
}

// vdePreset kicks the column vertically with no position feedback. The
// displacement runs away past the limit and the monitor fires mitigation.
func vdePreset() *Config {
	cfg := DefaultConfig()
	cfg.Duration = 2.0
	cfg.InitState = InitStateConfig{
		PlasmaCurrent:   2.0,
		Elongation:      1.8,
		Triangularity:   0.4,
		TemperatureCore: 15.0,
		TemperatureEdge: 1.5,
		DensityCore:     10.0,
		DensityEdge:     3.0,
	}
	cfg.Actuators = ActuatorConfig{
		PFCoils:       []float64{20.0},
		VerticalCoils: []float64{0.1, 0.1, 0.1, 0.1},
		FuelRate:      2.3e20,
	}
	cfg.Schedule.Enabled = false
	cfg.Vertical.Enabled = false
	return cfg
}

// disruptionPreset holds the full design current, far below the edge
// safety factor floor. MHD activity saturates and the shot disrupts.
func disruptionPreset() *Config {
	cfg := DefaultConfig()
	cfg.Duration = 0.5
	cfg.InitState = InitStateConfig{
		PlasmaCurrent:   15.0,
		Elongation:      1.8,
		Triangularity:   0.4,
		TemperatureCore: 15.0,
		TemperatureEdge: 1.5,
		DensityCore:     10.0,
		DensityEdge:     3.0,
	}
	cfg.Actuators = ActuatorConfig{
		PFCoils:  []float64{150.0},
		FuelRate: 2.3e20,
	}
	cfg.Schedule.Enabled = false
	cfg.Vertical.Enabled = false
	return cfg
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
