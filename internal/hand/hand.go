// Package hand models the manipulators that grab objects.
package hand

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/grabsim/internal/pose"
)

type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// Hand is a tracked manipulator. Its pose is owned by whatever drives the
// tracking; grabbed objects only read it.
type Hand struct {
	ID   string
	Side Side

	pose pose.Pose
}

func New(id string, side Side, p pose.Pose) *Hand {
	return &Hand{ID: id, Side: side, pose: p}
}

func (h *Hand) Pose() pose.Pose { return h.pose }

func (h *Hand) SetPose(p pose.Pose) { h.pose = p }

func (h *Hand) MoveTo(position mgl64.Vec3) { h.pose.Position = position }

func (h *Hand) RotateTo(rotation mgl64.Quat) { h.pose.Rotation = rotation.Normalize() }

// Translate moves the hand by a world space offset.
func (h *Hand) Translate(delta mgl64.Vec3) {
	h.pose.Position = h.pose.Position.Add(delta)
}

// Turn applies a world space rotation to the hand's orientation.
func (h *Hand) Turn(q mgl64.Quat) {
	h.pose.Rotation = q.Mul(h.pose.Rotation).Normalize()
}

func (h *Hand) String() string {
	return h.ID + "(" + h.Side.String() + ")"
}
