package metrics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/grabsim/internal/pose"
)

// AngularSpeed is the mean rotation rate of the object in rad/s.
type AngularSpeed struct {
	name    string
	prev    mgl64.Quat
	prevT   float64
	total   float64
	elapsed float64
	samples int
}

func NewAngularSpeed() *AngularSpeed {
	return &AngularSpeed{name: "angular_speed"}
}

func (a *AngularSpeed) Name() string { return a.name }

func (a *AngularSpeed) Observe(p pose.Pose, t float64) {
	if a.samples > 0 {
		a.total += pose.Angle(a.prev, p.Rotation)
		a.elapsed += t - a.prevT
	}
	a.prev, a.prevT = p.Rotation, t
	a.samples++
}

func (a *AngularSpeed) Value() float64 {
	if a.elapsed <= 0 {
		return 0
	}
	return a.total / a.elapsed
}

func (a *AngularSpeed) Reset() {
	a.total, a.elapsed = 0, 0
	a.samples = 0
}

// Jitter is the mean absolute change in per-step rotation angle, in rad.
// A smooth turn at constant rate scores 0.
type Jitter struct {
	name      string
	prev      mgl64.Quat
	prevStep  float64
	total     float64
	samples   int
	intervals int
}

func NewJitter() *Jitter {
	return &Jitter{name: "jitter"}
}

func (j *Jitter) Name() string { return j.name }

func (j *Jitter) Observe(p pose.Pose, t float64) {
	if j.samples > 0 {
		step := pose.Angle(j.prev, p.Rotation)
		if j.samples > 1 {
			j.total += math.Abs(step - j.prevStep)
			j.intervals++
		}
		j.prevStep = step
	}
	j.prev = p.Rotation
	j.samples++
}

func (j *Jitter) Value() float64 {
	if j.intervals == 0 {
		return 0
	}
	return j.total / float64(j.intervals)
}

func (j *Jitter) Reset() {
	j.total, j.prevStep = 0, 0
	j.samples, j.intervals = 0, 0
}

// Drift is the angle between the first and the latest observed rotation.
type Drift struct {
	name    string
	initial mgl64.Quat
	current mgl64.Quat
	samples int
}

func NewDrift() *Drift {
	return &Drift{name: "drift"}
}

func (d *Drift) Name() string { return d.name }

func (d *Drift) Observe(p pose.Pose, t float64) {
	if d.samples == 0 {
		d.initial = p.Rotation
	}
	d.current = p.Rotation
	d.samples++
}

func (d *Drift) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return pose.Angle(d.initial, d.current)
}

func (d *Drift) Reset() { d.samples = 0 }
