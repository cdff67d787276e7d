// Package automation runs scripted sequences of shots from YAML files.
package automation

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/plasmalab/tokasim/internal/config"
	"github.com/plasmalab/tokasim/internal/shot"
)

// Step is one shot in a campaign: a preset plus the overrides applied on
// top of it. Zero-valued overrides keep the preset's settings.
type Step struct {
	Preset        string  `yaml:"preset"`
	Duration      float64 `yaml:"duration"`
	Dt            float64 `yaml:"dt"`
	Seed          int64   `yaml:"seed"`
	TargetCurrent float64 `yaml:"target_current"`
	HeatingPower  float64 `yaml:"heating_power"`
}

// Campaign is a scripted sequence of shots run back to back.
type Campaign struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Load reads a campaign from a YAML file.
func Load(path string) (*Campaign, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Campaign
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if len(c.Steps) == 0 {
		return nil, fmt.Errorf("campaign %s has no steps", path)
	}
	return &c, nil
}

func (s *Step) presetName() string {
	if s.Preset == "" {
		return "flattop"
	}
	return s.Preset
}

// Config resolves the step into an effective shot configuration. The
// underlying preset is never mutated.
func (s *Step) Config() (*config.Config, error) {
	preset := config.GetPreset(s.presetName())
	if preset == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", s.Preset, config.ListPresets())
	}

	cfg := *preset
	if s.Duration > 0 {
		cfg.Duration = s.Duration
	}
	if s.Dt > 0 {
		cfg.Dt = s.Dt
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if s.TargetCurrent > 0 {
		cfg.Schedule.TargetCurrent = s.TargetCurrent
	}
	if s.HeatingPower > 0 {
		heating := make([]config.HeatingConfig, len(cfg.Actuators.Heating))
		copy(heating, cfg.Actuators.Heating)
		if len(heating) == 0 {
			heating = []config.HeatingConfig{{Frequency: 148.4e9}}
		}
		heating[0].Power = s.HeatingPower
		cfg.Actuators.Heating = heating
	}
	return &cfg, nil
}

// RunFunc executes one resolved shot and returns its result.
type RunFunc func(ctx context.Context, preset string, cfg *config.Config) (*shot.Result, error)

// Run executes all steps in order. A step error aborts the campaign and
// returns the results collected so far.
func (c *Campaign) Run(ctx context.Context, run RunFunc) ([]*shot.Result, error) {
	results := make([]*shot.Result, 0, len(c.Steps))

	for i := range c.Steps {
		step := &c.Steps[i]

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		result, err := run(ctx, step.presetName(), cfg)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		results = append(results, result)
	}

	return results, nil
}
