package scenario

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/grabsim/internal/hand"
	"github.com/san-kum/grabsim/internal/pose"
	"github.com/san-kum/grabsim/internal/sim"
)

type Single struct {
	Radius float64
	Period float64
}

func NewSingle() *Single { return &Single{Radius: 0.25, Period: 4} }

func (s *Single) Name() string { return "single" }

func (s *Single) Setup(r *sim.Rig) error {
	if _, err := r.AddObject(Box, boxPose); err != nil {
		return err
	}
	r.AddHand(RightHand, hand.Right, s.at(0))
	return nil
}

func (s *Single) at(t float64) pose.Pose {
	w := 2 * math.Pi / s.Period
	start := boxPose.TransformPoint(mgl64.Vec3{0, 0, -0.08})
	loop := mgl64.Vec3{
		s.Radius * math.Sin(w*t),
		0.1 * math.Sin(2*w*t),
		s.Radius * (1 - math.Cos(w*t)),
	}
	return pose.New(start.Add(loop), mgl64.QuatRotate(w*t/2, pose.Up))
}

func (s *Single) Step(r *sim.Rig, t float64) error {
	if t == 0 {
		if err := r.Grab(Box, RightHand); err != nil {
			return err
		}
	}
	return r.Place(RightHand, s.at(t))
}

// Steady holds a bar with both hands and never moves them.
type Steady struct{}

func NewSteady() *Steady { return &Steady{} }

func (s *Steady) Name() string           { return "steady" }
func (s *Steady) Setup(r *sim.Rig) error { return setupBar(r) }

func (s *Steady) Step(r *sim.Rig, t float64) error {
	if t == 0 {
		if err := grabBoth(r); err != nil {
			return err
		}
	}
	if err := r.Place(LeftHand, leftRest()); err != nil {
		return err
	}
	return r.Place(RightHand, rightRest())
}

// BarLift raises the right end of a bar while the left hand stays put.
type BarLift struct {
	Height float64
	Rise   float64
}

func NewBarLift() *BarLift { return &BarLift{Height: 0.3, Rise: 2} }

func (b *BarLift) Name() string           { return "bar_lift" }
func (b *BarLift) Setup(r *sim.Rig) error { return setupBar(r) }

func (b *BarLift) Step(r *sim.Rig, t float64) error {
	if t == 0 {
		if err := grabBoth(r); err != nil {
			return err
		}
	}
	lift := mgl64.Vec3{0, b.Height * smoothstep(t/b.Rise), 0}
	right := rightRest()
	right.Position = right.Position.Add(lift)
	if err := r.Place(LeftHand, leftRest()); err != nil {
		return err
	}
	return r.Place(RightHand, right)
}

// Handoff passes a bar from the left hand to the right hand while both
// carry it upward.
type Handoff struct {
	Join, Let, Drop float64
	Speed           float64

	joined, let, dropped bool
}

func NewHandoff() *Handoff { return &Handoff{Join: 1, Let: 2, Drop: 3, Speed: 0.1} }

func (h *Handoff) Name() string           { return "handoff" }
func (h *Handoff) Setup(r *sim.Rig) error { return setupBar(r) }

func (h *Handoff) Step(r *sim.Rig, t float64) error {
	switch {
	case t == 0:
		if err := r.Grab(Bar, LeftHand); err != nil {
			return err
		}
	case !h.joined && t >= h.Join:
		h.joined = true
		if err := r.Grab(Bar, RightHand); err != nil {
			return err
		}
	case !h.let && t >= h.Let:
		h.let = true
		if err := r.Release(Bar, LeftHand); err != nil {
			return err
		}
	case !h.dropped && t >= h.Drop:
		h.dropped = true
		if err := r.Release(Bar, RightHand); err != nil {
			return err
		}
	}

	up := mgl64.Vec3{0, h.Speed * math.Min(t, h.Drop), 0}
	left, right := leftRest(), rightRest()
	if !h.let {
		left.Position = left.Position.Add(up)
	}
	if !h.joined {
		// the right hand waits at the spot the bar will reach when it joins
		up = mgl64.Vec3{0, h.Speed * h.Join, 0}
	}
	right.Position = right.Position.Add(up)
	if err := r.Place(LeftHand, left); err != nil {
		return err
	}
	return r.Place(RightHand, right)
}

// Twist counter-rotates both wrists about the bar axis without moving the hands.
type Twist struct {
	Angle float64
	Ramp  float64
}

func NewTwist() *Twist { return &Twist{Angle: 0.8, Ramp: 2} }

func (tw *Twist) Name() string           { return "twist" }
func (tw *Twist) Setup(r *sim.Rig) error { return setupBar(r) }

func (tw *Twist) Step(r *sim.Rig, t float64) error {
	if t == 0 {
		if err := grabBoth(r); err != nil {
			return err
		}
	}
	a := tw.Angle * smoothstep(t/tw.Ramp)
	left, right := leftRest(), rightRest()
	left.Rotation = mgl64.QuatRotate(a, pose.Right).Mul(left.Rotation)
	right.Rotation = mgl64.QuatRotate(-a, pose.Right).Mul(right.Rotation)
	if err := r.Place(LeftHand, left); err != nil {
		return err
	}
	return r.Place(RightHand, right)
}

// Orbit carries a bar with both hands around a vertical axis through its
// centre, turning it to keep facing the axis.
type Orbit struct {
	Radius float64
	Period float64
}

func NewOrbit() *Orbit { return &Orbit{Radius: 0.3, Period: 6} }

func (o *Orbit) Name() string           { return "orbit" }
func (o *Orbit) Setup(r *sim.Rig) error { return setupBar(r) }

// carry is the rigid motion applied to the bar's rest pose at time t.
func (o *Orbit) carry(t float64) pose.Pose {
	angle := 2 * math.Pi * t / o.Period
	turn := mgl64.QuatRotate(angle, pose.Up)
	centre := barPose.Position.Add(mgl64.Vec3{0, 0, o.Radius})
	// rotate the bar about centre
	offset := barPose.Position.Sub(centre)
	moved := centre.Add(turn.Rotate(offset))
	return pose.New(moved.Sub(turn.Rotate(barPose.Position)), turn)
}

func (o *Orbit) Step(r *sim.Rig, t float64) error {
	if t == 0 {
		if err := grabBoth(r); err != nil {
			return err
		}
	}
	c := o.carry(t)
	if err := r.Place(LeftHand, c.Mul(leftRest())); err != nil {
		return err
	}
	return r.Place(RightHand, c.Mul(rightRest()))
}
