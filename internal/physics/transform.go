package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/grabsim/internal/pose"
)

// Transform is the mutable world pose of a scene object.
type Transform struct {
	pose pose.Pose
}

func NewTransform(p pose.Pose) *Transform {
	return &Transform{pose: p}
}

func (t *Transform) Pose() pose.Pose          { return t.pose }
func (t *Transform) Position() mgl64.Vec3     { return t.pose.Position }
func (t *Transform) Rotation() mgl64.Quat     { return t.pose.Rotation }
func (t *Transform) SetPosition(p mgl64.Vec3) { t.pose.Position = p }
func (t *Transform) SetRotation(q mgl64.Quat) { t.pose.Rotation = q.Normalize() }

func (t *Transform) SetPose(p pose.Pose) {
	t.SetPosition(p.Position)
	t.SetRotation(p.Rotation)
}
