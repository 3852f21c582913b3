package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/grabsim/internal/pose"
)

// Body is the subset of a physics body the pose applier drives.
type Body interface {
	SetVelocity(v mgl64.Vec3)
	SetAngularVelocity(w mgl64.Vec3)
	MovePosition(p mgl64.Vec3)
	MoveRotation(q mgl64.Quat)
}

// RigidBody is a minimal rigid body. Requested moves are held until the
// owning World steps, so a move issued during a tick lands with that step
// rather than teleporting the transform immediately.
type RigidBody struct {
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3

	transform  *Transform
	pendingPos *mgl64.Vec3
	pendingRot *mgl64.Quat
	moves      int
}

func NewRigidBody(t *Transform) *RigidBody {
	return &RigidBody{transform: t}
}

func (b *RigidBody) Transform() *Transform { return b.transform }

func (b *RigidBody) SetVelocity(v mgl64.Vec3)        { b.Velocity = v }
func (b *RigidBody) SetAngularVelocity(w mgl64.Vec3) { b.AngularVelocity = w }

func (b *RigidBody) MovePosition(p mgl64.Vec3) {
	b.pendingPos = &p
	b.moves++
}

func (b *RigidBody) MoveRotation(q mgl64.Quat) {
	q = q.Normalize()
	b.pendingRot = &q
	b.moves++
}

// Moves reports how many kinematic move requests the body has received.
func (b *RigidBody) Moves() int { return b.moves }

// HasPendingMove reports whether a kinematic move is waiting for the next step.
func (b *RigidBody) HasPendingMove() bool {
	return b.pendingPos != nil || b.pendingRot != nil
}

// Step resolves a pending kinematic move, or integrates the body's
// velocities when no move was requested.
func (b *RigidBody) Step(dt float64) {
	if b.HasPendingMove() {
		if b.pendingPos != nil {
			b.transform.SetPosition(*b.pendingPos)
		}
		if b.pendingRot != nil {
			b.transform.SetRotation(*b.pendingRot)
		}
		b.pendingPos, b.pendingRot = nil, nil
		return
	}

	p := b.transform.Pose()
	b.transform.SetPosition(p.Position.Add(b.Velocity.Mul(dt)))

	w := b.AngularVelocity
	if angle := w.Len() * dt; angle > 0 {
		spin := mgl64.QuatRotate(angle, w.Normalize())
		b.transform.SetRotation(spin.Mul(p.Rotation))
	}
}

// Pose returns the body's committed pose, ignoring pending moves.
func (b *RigidBody) Pose() pose.Pose { return b.transform.Pose() }
