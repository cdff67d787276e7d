package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/plasmalab/tokasim/internal/device"
	"github.com/plasmalab/tokasim/internal/physics"
	"github.com/plasmalab/tokasim/internal/plasma"
)

const (
	DefaultDt       = 0.001
	DefaultDuration = 10.0
	DefaultKp       = 0.5
	DefaultKi       = 0.0
	DefaultKd       = 0.0
)

type Config struct {
	Dt               float64 `yaml:"dt"`
	Duration         float64 `yaml:"duration"`
	Seed             int64   `yaml:"seed"`
	Validate         bool    `yaml:"validate"`
	TrackConfinement bool    `yaml:"track_confinement"`

	Device    DeviceConfig    `yaml:"device"`
	InitState InitStateConfig `yaml:"init_state"`
	Actuators ActuatorConfig  `yaml:"actuators"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
	Vertical  VerticalConfig  `yaml:"vertical_control"`
	Safety    SafetyConfig    `yaml:"safety"`
}

type DeviceConfig struct {
	MajorRadius   float64 `yaml:"major_radius"`
	MinorRadius   float64 `yaml:"minor_radius"`
	ToroidalField float64 `yaml:"toroidal_field"`
	PlasmaCurrent float64 `yaml:"plasma_current"`

	TemperatureCore float64 `yaml:"temperature_core"`
	DensityCore     float64 `yaml:"density_core"`
	BetaTarget      float64 `yaml:"beta_target"`
	LiTarget        float64 `yaml:"li_target"`

	Q95Min           float64 `yaml:"q95_min"`
	Q95Max           float64 `yaml:"q95_max"`
	BetaNormalLimit  float64 `yaml:"beta_n_limit"`
	LowerHybridLimit float64 `yaml:"lower_hybrid_limit"`

	CurrentRampLimit        float64 `yaml:"current_ramp_limit"`
	VerticalDisplacementMax float64 `yaml:"vertical_displacement_max"`
	RadiationPeakLimit      float64 `yaml:"radiation_peak_limit"`
	WallLoadLimit           float64 `yaml:"wall_load_limit"`

	CurrentRiseTime        float64 `yaml:"current_rise_time"`
	ConfinementTimeDefault float64 `yaml:"confinement_time_default"`
	DisruptionWarningTime  float64 `yaml:"disruption_warning_time"`
	MitigationResponseTime float64 `yaml:"mitigation_response_time"`
}

type InitStateConfig struct {
	PlasmaCurrent    float64 `yaml:"plasma_current"`
	RadialPosition   float64 `yaml:"radial_position"`
	VerticalPosition float64 `yaml:"vertical_position"`
	Elongation       float64 `yaml:"elongation"`
	Triangularity    float64 `yaml:"triangularity"`

	TemperatureCore float64 `yaml:"temperature_core"`
	TemperatureEdge float64 `yaml:"temperature_edge"`
	DensityCore     float64 `yaml:"density_core"`
	DensityEdge     float64 `yaml:"density_edge"`

	ImpurityConcentration float64 `yaml:"impurity_concentration"`

	// StoredEnergy left at zero is derived from the core temperature and
	// density so the first energy step starts in balance.
	StoredEnergy float64 `yaml:"stored_energy"`
}

type HeatingConfig struct {
	Power     float64 `yaml:"power"`
	Frequency float64 `yaml:"frequency"`
	Enabled   bool    `yaml:"enabled"`
}

type ActuatorConfig struct {
	PFCoils         []float64       `yaml:"pf_coils"`
	VerticalCoils   []float64       `yaml:"vertical_coils"`
	HorizontalCoils []float64       `yaml:"horizontal_coils"`
	Heating         []HeatingConfig `yaml:"heating"`
	FuelRate        float64         `yaml:"fuel_rate"`
	ImpurityRate    float64         `yaml:"impurity_rate"`
}

type ScheduleConfig struct {
	Enabled       bool    `yaml:"enabled"`
	TargetCurrent float64 `yaml:"target_current"`
	RampUpTime    float64 `yaml:"ramp_up_time"`
	FlatTopTime   float64 `yaml:"flat_top_time"`
	RampDownTime  float64 `yaml:"ramp_down_time"`
	HeatingStart  float64 `yaml:"heating_start"`
	HoldDensity   bool    `yaml:"hold_density"`
}

type VerticalConfig struct {
	Enabled bool    `yaml:"enabled"`
	Kp      float64 `yaml:"kp"`
	Ki      float64 `yaml:"ki"`
	Kd      float64 `yaml:"kd"`
}

type SafetyConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MHDThreshold float64 `yaml:"mhd_threshold"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:               DefaultDt,
		Duration:         DefaultDuration,
		Seed:             1,
		Validate:         true,
		TrackConfinement: true,
		Device:           deviceConfigFrom(device.Default()),
		InitState: InitStateConfig{
			PlasmaCurrent:   0.5,
			Elongation:      1.8,
			Triangularity:   0.4,
			TemperatureCore: 2.0,
			TemperatureEdge: 0.2,
			DensityCore:     5.0,
			DensityEdge:     1.5,
		},
		Actuators: ActuatorConfig{
			Heating: []HeatingConfig{
				{Power: 5.0, Frequency: 148.4e9},
			},
		},
		Schedule: ScheduleConfig{
			Enabled:       true,
			TargetCurrent: 2.0,
			RampUpTime:    0.5,
			FlatTopTime:   8.0,
			RampDownTime:  1.5,
			HeatingStart:  0.5,
			HoldDensity:   true,
		},
		Vertical: VerticalConfig{
			Enabled: true,
			Kp:      DefaultKp,
			Ki:      DefaultKi,
			Kd:      DefaultKd,
		},
		Safety: SafetyConfig{
			Enabled:      true,
			MHDThreshold: 0.3,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func deviceConfigFrom(p device.Params) DeviceConfig {
	return DeviceConfig{
		MajorRadius:   p.MajorRadius,
		MinorRadius:   p.MinorRadius,
		ToroidalField: p.ToroidalField,
		PlasmaCurrent: p.PlasmaCurrent,

		TemperatureCore: p.TemperatureCore,
		DensityCore:     p.DensityCore,
		BetaTarget:      p.BetaTarget,
		LiTarget:        p.LiTarget,

		Q95Min:           p.Q95Min,
		Q95Max:           p.Q95Max,
		BetaNormalLimit:  p.BetaNormalLimit,
		LowerHybridLimit: p.LowerHybridLimit,

		CurrentRampLimit:        p.CurrentRampLimit,
		VerticalDisplacementMax: p.VerticalDisplacementMax,
		RadiationPeakLimit:      p.RadiationPeakLimit,
		WallLoadLimit:           p.WallLoadLimit,

		CurrentRiseTime:        p.CurrentRiseTime,
		ConfinementTimeDefault: p.ConfinementTimeDefault,
		DisruptionWarningTime:  p.DisruptionWarningTime,
		MitigationResponseTime: p.MitigationResponseTime,
	}
}

// ToDevice converts the device block back into machine parameters.
func (c *Config) ToDevice() device.Params {
	d := c.Device
	return device.Params{
		MajorRadius:   d.MajorRadius,
		MinorRadius:   d.MinorRadius,
		ToroidalField: d.ToroidalField,
		PlasmaCurrent: d.PlasmaCurrent,

		TemperatureCore: d.TemperatureCore,
		DensityCore:     d.DensityCore,
		BetaTarget:      d.BetaTarget,
		LiTarget:        d.LiTarget,

		Q95Min:           d.Q95Min,
		Q95Max:           d.Q95Max,
		BetaNormalLimit:  d.BetaNormalLimit,
		LowerHybridLimit: d.LowerHybridLimit,

		CurrentRampLimit:        d.CurrentRampLimit,
		VerticalDisplacementMax: d.VerticalDisplacementMax,
		RadiationPeakLimit:      d.RadiationPeakLimit,
		WallLoadLimit:           d.WallLoadLimit,

		CurrentRiseTime:        d.CurrentRiseTime,
		ConfinementTimeDefault: d.ConfinementTimeDefault,
		DisruptionWarningTime:  d.DisruptionWarningTime,
		MitigationResponseTime: d.MitigationResponseTime,
	}
}

// BuildState assembles the initial plasma state. Derived figures are
// prefilled so the first recorded sample is already consistent.
func (c *Config) BuildState() *plasma.State {
	dev := c.ToDevice()
	i := c.InitState
	s := &plasma.State{
		PlasmaCurrent:         i.PlasmaCurrent,
		RadialPosition:        i.RadialPosition,
		VerticalPosition:      i.VerticalPosition,
		Elongation:            i.Elongation,
		Triangularity:         i.Triangularity,
		TemperatureCore:       i.TemperatureCore,
		TemperatureEdge:       i.TemperatureEdge,
		DensityCore:           i.DensityCore,
		DensityEdge:           i.DensityEdge,
		ImpurityConcentration: i.ImpurityConcentration,
		StoredEnergy:          i.StoredEnergy,
	}
	if s.RadialPosition == 0 {
		s.RadialPosition = dev.MajorRadius
	}
	if s.StoredEnergy == 0 && s.TemperatureCore > 0 && s.DensityCore > 0 {
		volume := physics.PlasmaVolume(dev, s.Elongation)
		s.StoredEnergy = 1.5 * s.DensityCore * physics.DensityScale * volume *
			s.TemperatureCore * physics.ElectronCharge * physics.EVPerKeV / physics.JoulesPerMJ
	}
	if s.PlasmaCurrent > 0 {
		s.Q95 = physics.SafetyFactor(dev, 0.95, s.PlasmaCurrent)
		s.BetaN = physics.BetaNormalized(dev, s)
	}
	return s
}

// BuildActuators assembles the actuator block, bounding the configured
// coil lists to the machine channel counts.
func (c *Config) BuildActuators() *plasma.Actuators {
	dev := c.ToDevice()
	act := plasma.NewActuators(dev)
	a := c.Actuators

	for i := 0; i < len(a.PFCoils) && i < device.NumPFCoils; i++ {
		act.PFCoils[i] = a.PFCoils[i]
	}
	for i := 0; i < len(a.VerticalCoils) && i < device.NumVerticalCoils; i++ {
		act.VerticalCoils[i] = a.VerticalCoils[i]
	}
	for i := 0; i < len(a.HorizontalCoils) && i < device.NumHorizontalCoils; i++ {
		act.HorizontalCoils[i] = a.HorizontalCoils[i]
	}
	for i := 0; i < len(a.Heating) && i < device.NumHeatingSystems; i++ {
		act.Heating[i] = plasma.HeatingSystem{
			Power:     a.Heating[i].Power,
			Frequency: a.Heating[i].Frequency,
			Enabled:   a.Heating[i].Enabled,
		}
	}
	act.FuelRate = a.FuelRate
	act.ImpurityRate = a.ImpurityRate
	return act
}
