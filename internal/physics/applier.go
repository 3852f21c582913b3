package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/grabsim/internal/pose"
)

// Path identifies which update path committed a pose.
type Path int

const (
	PathDirect Path = iota
	PathKinematic
)

func (p Path) String() string {
	if p == PathKinematic {
		return "kinematic"
	}
	return "direct"
}

// Apply commits target to an object. With a body present the velocities are
// zeroed and the pose goes through the kinematic move; otherwise the
// transform is written directly.
func Apply(target pose.Pose, t *Transform, body Body) Path {
	if rb, ok := body.(*RigidBody); ok && rb == nil {
		body = nil
	}
	if body == nil {
		t.SetPosition(target.Position)
		t.SetRotation(target.Rotation)
		return PathDirect
	}

	body.SetVelocity(mgl64.Vec3{})
	body.SetAngularVelocity(mgl64.Vec3{})
	body.MovePosition(target.Position)
	body.MoveRotation(target.Rotation)
	return PathKinematic
}
