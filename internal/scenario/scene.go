package scenario

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/grabsim/internal/hand"
	"github.com/san-kum/grabsim/internal/pose"
	"github.com/san-kum/grabsim/internal/sim"
)

const (
	Bar = "bar"
	Box = "box"

	LeftHand  = "left"
	RightHand = "right"

	barHalfLength = 0.4
)

var (
	barPose = pose.New(mgl64.Vec3{0, 1, 0.4}, mgl64.QuatIdent())
	boxPose = pose.New(mgl64.Vec3{0, 1, 0.3}, mgl64.QuatIdent())

	leftGrip  = mgl64.Vec3{-barHalfLength, 0, 0}
	rightGrip = mgl64.Vec3{barHalfLength, 0, 0}

	// palms facing each other along the bar, fingers forward
	leftPalm  = mgl64.QuatRotate(-math.Pi/2, pose.Forward)
	rightPalm = mgl64.QuatRotate(math.Pi/2, pose.Forward)
)

// setupBar places the bar with a hand resting on each end.
func setupBar(r *sim.Rig) error {
	if _, err := r.AddObject(Bar, barPose); err != nil {
		return err
	}
	r.AddHand(LeftHand, hand.Left, leftRest())
	r.AddHand(RightHand, hand.Right, rightRest())
	return nil
}

func leftRest() pose.Pose  { return pose.New(barPose.TransformPoint(leftGrip), leftPalm) }
func rightRest() pose.Pose { return pose.New(barPose.TransformPoint(rightGrip), rightPalm) }

func grabBoth(r *sim.Rig) error {
	if err := r.Grab(Bar, LeftHand); err != nil {
		return err
	}
	return r.Grab(Bar, RightHand)
}

// smoothstep eases x in [0,1] with zero slope at both ends.
func smoothstep(x float64) float64 {
	x = math.Max(0, math.Min(1, x))
	return x * x * (3 - 2*x)
}
