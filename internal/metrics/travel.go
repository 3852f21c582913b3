package metrics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/grabsim/internal/pose"
	"github.com/san-kum/grabsim/internal/sim"
)

// Travel is the path length covered by the object position.
type Travel struct {
	name    string
	prev    mgl64.Vec3
	total   float64
	samples int
}

func NewTravel() *Travel {
	return &Travel{name: "travel"}
}

func (tr *Travel) Name() string { return tr.name }

func (tr *Travel) Observe(p pose.Pose, t float64) {
	if tr.samples > 0 {
		tr.total += p.Position.Sub(tr.prev).Len()
	}
	tr.prev = p.Position
	tr.samples++
}

func (tr *Travel) Value() float64 { return tr.total }

func (tr *Travel) Reset() {
	tr.total = 0
	tr.samples = 0
}

// Default returns a fresh set of the standard run metrics.
func Default() []sim.Metric {
	return []sim.Metric{
		NewAngularSpeed(),
		NewJitter(),
		NewDrift(),
		NewTravel(),
	}
}
