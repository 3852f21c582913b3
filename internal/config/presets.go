package config

import "sort"

var Presets = map[string]map[string]*Config{
	"steady": {
		"still": preset("steady", func(c *Config) {}),
		"tremor": preset("steady", func(c *Config) {
			c.Noise = 0.003
			c.Duration = 10
		}),
	},
	"bar_lift": {
		"smooth": preset("bar_lift", func(c *Config) {}),
		"stiff": preset("bar_lift", func(c *Config) {
			c.Solver.Damping = 1
		}),
		"sluggish": preset("bar_lift", func(c *Config) {
			c.Solver.Damping = 0.1
		}),
	},
	"handoff": {
		"clean": preset("handoff", func(c *Config) {}),
		"shaky": preset("handoff", func(c *Config) {
			c.Noise = 0.005
			c.Seed = 42
		}),
	},
	"twist": {
		"tight": preset("twist", func(c *Config) {
			c.Solver.ProximityRadius = 0.05
		}),
		"loose": preset("twist", func(c *Config) {
			c.Solver.ProximityRadius = 0.2
		}),
	},
	"orbit": {
		"slow": preset("orbit", func(c *Config) {
			c.Duration = 12
		}),
		"fine": preset("orbit", func(c *Config) {
			c.Dt = 0.005
			c.Duration = 6
		}),
	},
	"single": {
		"loop": preset("single", func(c *Config) {
			c.Duration = 4
		}),
		"free": preset("single", func(c *Config) {
			c.RigidBody = false
		}),
	},
}

func preset(scenario string, fn func(*Config)) *Config {
	c := DefaultConfig()
	c.Scenario = scenario
	fn(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(scenario, name string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
