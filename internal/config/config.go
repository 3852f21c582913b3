package config

import (
	"fmt"
	"os"

	"github.com/san-kum/grabsim/internal/grab"
	"github.com/san-kum/grabsim/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultScenario = "bar_lift"
	DefaultDt       = 0.02
	DefaultDuration = 5.0
	DefaultNoise    = 0.0
)

type Config struct {
	Scenario  string      `yaml:"scenario"`
	Dt        float64     `yaml:"dt"`
	Duration  float64     `yaml:"duration"`
	Seed      int64       `yaml:"seed"`
	Noise     float64     `yaml:"noise"`
	RigidBody bool        `yaml:"rigid_body"`
	Solver    grab.Params `yaml:"solver"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:  DefaultScenario,
		Dt:        DefaultDt,
		Duration:  DefaultDuration,
		Noise:     DefaultNoise,
		RigidBody: true,
		Solver:    grab.DefaultParams(),
	}
}

// Load reads a YAML file over the defaults, so a file only needs the keys
// it changes.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto reads a YAML file over cfg. Keys missing from the file keep
// their current values. cfg is left untouched on error.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	merged := *cfg
	if err := yaml.Unmarshal(data, &merged); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if err := merged.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	*cfg = merged
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Scenario == "" {
		return fmt.Errorf("scenario is required")
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if c.Dt > c.Duration {
		return fmt.Errorf("dt (%f) cannot exceed duration (%f)", c.Dt, c.Duration)
	}
	if c.Noise < 0 {
		return fmt.Errorf("noise must be non-negative, got %f", c.Noise)
	}
	if c.Solver.Damping < 0 || c.Solver.Damping > 1 {
		return fmt.Errorf("solver.damping must be in [0,1], got %f", c.Solver.Damping)
	}
	if c.Solver.ProximityRadius <= 0 {
		return fmt.Errorf("solver.proximity_radius must be positive, got %f", c.Solver.ProximityRadius)
	}
	return nil
}

// Sim converts the file configuration into a simulator configuration.
func (c *Config) Sim() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Dt = c.Dt
	cfg.Duration = c.Duration
	cfg.Seed = c.Seed
	cfg.Noise = c.Noise
	cfg.RigidBody = c.RigidBody
	cfg.Solver = c.Solver
	return cfg
}
