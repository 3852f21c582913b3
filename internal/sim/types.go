package sim

import (
	"fmt"

	"github.com/san-kum/grabsim/internal/grab"
	"github.com/san-kum/grabsim/internal/pose"
)

// Scenario scripts the manipulators of a rig. Setup builds the scene; Step
// runs before every fixed update and is where hands move, grab and release.
type Scenario interface {
	Name() string
	Setup(r *Rig) error
	Step(r *Rig, t float64) error
}

type Metric interface {
	Name() string
	Observe(p pose.Pose, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(p pose.Pose, t float64)
}

type Config struct {
	Dt       float64
	Duration float64
	Seed     int64
	// Noise is the standard deviation, in metres, added to scripted hand positions.
	Noise         float64
	RigidBody     bool
	Solver        grab.Params
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.02,
		Duration:      5.0,
		Solver:        grab.DefaultParams(),
		RigidBody:     true,
		ValidateState: true,
	}
}

// Event is a lifecycle transition observed during a run.
type Event struct {
	Step   int     `json:"step"`
	Time   float64 `json:"time"`
	Object string  `json:"object"`
	Kind   string  `json:"kind"`
}

const (
	EventGrabStart = "grab_start"
	EventGrabEnd   = "grab_end"
	EventAttach    = "attach"
	EventDetach    = "detach"
)

type Result struct {
	Times       []float64
	Poses       []pose.Pose
	Attachments []int
	Events      []Event
	Metrics     map[string]float64
	StepsTaken  int
	Errors      []error
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
