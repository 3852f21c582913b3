package scenario

import (
	"fmt"
	"sort"

	"github.com/san-kum/grabsim/internal/sim"
)

type entry struct {
	description string
	factory     func() sim.Scenario
}

// Registry maps scenario names to factories. Scenarios keep per-run state,
// so Get always builds a fresh one.
type Registry struct {
	scenarios map[string]entry
}

func NewRegistry() *Registry {
	r := &Registry{scenarios: make(map[string]entry)}

	r.add("single", "one hand carries a box along a loop", func() sim.Scenario { return NewSingle() })
	r.add("steady", "two hands hold a bar still", func() sim.Scenario { return NewSteady() })
	r.add("bar_lift", "right hand lifts its end of a bar", func() sim.Scenario { return NewBarLift() })
	r.add("handoff", "bar passes from the left hand to the right", func() sim.Scenario { return NewHandoff() })
	r.add("twist", "wrists counter-rotate on a bar", func() sim.Scenario { return NewTwist() })
	r.add("orbit", "two hands carry a bar around a vertical axis", func() sim.Scenario { return NewOrbit() })

	return r
}

func (r *Registry) add(name, description string, fn func() sim.Scenario) {
	r.scenarios[name] = entry{description: description, factory: fn}
}

func (r *Registry) Get(name string) (sim.Scenario, error) {
	fn, err := r.Factory(name)
	if err != nil {
		return nil, err
	}
	return fn(), nil
}

// Factory returns the constructor for name, for callers that need one
// scenario per run such as sim.Ensemble.
func (r *Registry) Factory(name string) (func() sim.Scenario, error) {
	e, ok := r.scenarios[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario: %s", name)
	}
	return e.factory, nil
}

func (r *Registry) Describe(name string) string {
	return r.scenarios[name].description
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
