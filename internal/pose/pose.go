package pose

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Local frame axes. Forward is +Z.
var (
	Right   = mgl64.Vec3{1, 0, 0}
	Up      = mgl64.Vec3{0, 1, 0}
	Forward = mgl64.Vec3{0, 0, 1}
)

type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

func New(position mgl64.Vec3, rotation mgl64.Quat) Pose {
	return Pose{Position: position, Rotation: rotation}
}

func Identity() Pose {
	return Pose{Rotation: mgl64.QuatIdent()}
}

// TransformPoint maps a point from local space to world space.
func (p Pose) TransformPoint(local mgl64.Vec3) mgl64.Vec3 {
	return p.Position.Add(p.Rotation.Rotate(local))
}

// InverseTransformPoint maps a world space point into local space.
func (p Pose) InverseTransformPoint(world mgl64.Vec3) mgl64.Vec3 {
	return p.Rotation.Inverse().Rotate(world.Sub(p.Position))
}

func (p Pose) TransformDirection(local mgl64.Vec3) mgl64.Vec3 {
	return p.Rotation.Rotate(local)
}

func (p Pose) InverseTransformDirection(world mgl64.Vec3) mgl64.Vec3 {
	return p.Rotation.Inverse().Rotate(world)
}

func (p Pose) Forward() mgl64.Vec3 {
	return p.Rotation.Rotate(Forward)
}

// Mul composes p with a pose expressed in p's local frame.
func (p Pose) Mul(local Pose) Pose {
	return Pose{
		Position: p.TransformPoint(local.Position),
		Rotation: p.Rotation.Mul(local.Rotation),
	}
}

// Inverse returns the pose that maps world space into p's local frame.
func (p Pose) Inverse() Pose {
	inv := p.Rotation.Inverse()
	return Pose{
		Position: inv.Rotate(p.Position.Mul(-1)),
		Rotation: inv,
	}
}

func (p Pose) IsValid() bool {
	vals := [7]float64{
		p.Position[0], p.Position[1], p.Position[2],
		p.Rotation.W, p.Rotation.V[0], p.Rotation.V[1], p.Rotation.V[2],
	}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ApproxEqual compares positions by distance and rotations by orientation,
// so q and -q are considered equal.
func (p Pose) ApproxEqual(other Pose, eps float64) bool {
	return Near(p.Position, other.Position, eps) &&
		Angle(p.Rotation, other.Rotation) <= eps
}

// Near reports whether a and b are within eps of each other. Unlike
// mgl64's ApproxEqualThreshold the tolerance is absolute.
func Near(a, b mgl64.Vec3, eps float64) bool {
	return a.Sub(b).Len() <= eps
}

func (p Pose) String() string {
	return fmt.Sprintf("pos(%.4f, %.4f, %.4f) rot(%.4f, %.4f, %.4f, %.4f)",
		p.Position[0], p.Position[1], p.Position[2],
		p.Rotation.W, p.Rotation.V[0], p.Rotation.V[1], p.Rotation.V[2])
}
